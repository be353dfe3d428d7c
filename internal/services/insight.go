package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/analytics"
	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
)

// Insight types.
const (
	InsightRecommendation = "recommendation"
	InsightWarning        = "warning"
	InsightAchievement    = "achievement"
	InsightPrediction     = "prediction"
)

type Insight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// InsightContext is the aggregate summary handed to the oracle when asking
// for extra insights. It carries no raw entry text.
type InsightContext struct {
	TotalEntries     int            `json:"total_entries"`
	PositiveEntries  int            `json:"positive_entries"`
	NegativeEntries  int            `json:"negative_entries"`
	CurrentStreak    int            `json:"current_streak"`
	LongestStreak    int            `json:"longest_streak"`
	TopActivities    []string       `json:"top_activities"`
	MoodDistribution map[string]int `json:"mood_distribution"`
	ActiveGoals      int            `json:"active_goals"`
}

const maxInsights = 10

type InsightService interface {
	Get(ctx context.Context) ([]Insight, error)
}

type insightService struct {
	db        *gorm.DB
	log       *logger.Logger
	entryRepo repos.HabitEntryRepo
	goalRepo  repos.GoalRepo
	oracle    OracleClient
}

func NewInsightService(db *gorm.DB, log *logger.Logger, entryRepo repos.HabitEntryRepo, goalRepo repos.GoalRepo, oracle OracleClient) InsightService {
	return &insightService{
		db:        db,
		log:       log.With("service", "InsightService"),
		entryRepo: entryRepo,
		goalRepo:  goalRepo,
		oracle:    oracle,
	}
}

// Get builds the rule-based insight list and, when an oracle is configured,
// appends its suggestions. Oracle failures degrade silently to the rule-based
// list alone.
func (s *insightService) Get(ctx context.Context) ([]Insight, error) {
	entries, err := s.entryRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	if len(entries) == 0 {
		return []Insight{
			{
				Type:    InsightRecommendation,
				Title:   "Start logging",
				Message: "Log your first entry to start building your habit picture. Plain sentences like \"ran 5km this morning\" work best.",
			},
			{
				Type:    InsightRecommendation,
				Title:   "Small and steady",
				Message: "Pick one small habit and log it daily. Consistency beats intensity when you are starting out.",
			},
		}, nil
	}

	goals, err := s.goalRepo.GetActive(ctx, nil)
	if err != nil {
		s.log.Warn("failed to load goals for insights", "error", err)
		goals = nil
	}

	now := time.Now()
	current, longest := analytics.Streaks(entries, now)
	insights := make([]Insight, 0, maxInsights)

	if current >= 3 {
		insights = append(insights, Insight{
			Type:    InsightAchievement,
			Title:   fmt.Sprintf("%d-day streak", current),
			Message: fmt.Sprintf("You have logged something on %d days in a row. Keep the chain going today.", current),
		})
	}

	var negative int
	positiveByActivity := map[string]int{}
	for _, e := range entries {
		if e.Type == types.EntryTypeNegative {
			negative++
		}
		if e.Type == types.EntryTypePositive {
			positiveByActivity[e.Activity]++
		}
	}
	if len(entries) >= 5 && negative*100 >= len(entries)*40 {
		insights = append(insights, Insight{
			Type:    InsightWarning,
			Title:   "Negative patterns rising",
			Message: fmt.Sprintf("%d of your last %d entries were negative behaviors. Look at what triggers them and plan a replacement habit.", negative, len(entries)),
		})
	}

	if top, count := topActivity(positiveByActivity); top != "" && count >= 3 {
		insights = append(insights, Insight{
			Type:    InsightRecommendation,
			Title:   fmt.Sprintf("Lean into %s", top),
			Message: fmt.Sprintf("%s is your most consistent positive habit with %d entries. Consider stacking a new habit right after it.", top, count),
		})
	}

	for _, g := range goals {
		if g.TargetValue <= 0 || g.IsComplete() {
			continue
		}
		if g.CurrentValue*100 >= g.TargetValue*80 {
			insights = append(insights, Insight{
				Type:    InsightPrediction,
				Title:   fmt.Sprintf("Goal within reach: %s", g.Title),
				Message: fmt.Sprintf("You are at %.0f of %.0f %s. One more push finishes this %s goal.", g.CurrentValue, g.TargetValue, g.Unit, g.Period),
			})
		}
	}

	suggestions := analytics.MineStacks(entriesSince(entries, now.AddDate(0, 0, -analytics.StackWindowDays)), now)
	if len(suggestions) > 0 {
		top := suggestions[0]
		insights = append(insights, Insight{
			Type:    InsightRecommendation,
			Title:   "Habit stack detected",
			Message: fmt.Sprintf("%s and %s show up together on %d days. Chaining them explicitly could make both more reliable.", top.TriggerHabit, top.LinkedHabit, top.Occurrences),
		})
	}

	if s.oracle != nil {
		extra, err := s.oracle.GenerateInsights(ctx, s.buildContext(entries, goals, current, longest))
		if err != nil {
			s.log.Warn("oracle insights unavailable", "error", err)
		} else {
			insights = append(insights, extra...)
		}
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights, nil
}

func (s *insightService) buildContext(entries []*types.HabitEntry, goals []*types.Goal, current, longest int) InsightContext {
	ic := InsightContext{
		TotalEntries:     len(entries),
		CurrentStreak:    current,
		LongestStreak:    longest,
		MoodDistribution: map[string]int{},
		ActiveGoals:      len(goals),
	}
	activityCounts := map[string]int{}
	for _, e := range entries {
		switch e.Type {
		case types.EntryTypePositive:
			ic.PositiveEntries++
		case types.EntryTypeNegative:
			ic.NegativeEntries++
		}
		if e.Mood != "" {
			ic.MoodDistribution[e.Mood]++
		}
		activityCounts[e.Activity]++
	}
	type pair struct {
		name  string
		count int
	}
	pairs := make([]pair, 0, len(activityCounts))
	for name, count := range activityCounts {
		pairs = append(pairs, pair{name, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].name < pairs[j].name
	})
	for i := 0; i < len(pairs) && i < 5; i++ {
		ic.TopActivities = append(ic.TopActivities, pairs[i].name)
	}
	return ic
}

func topActivity(counts map[string]int) (string, int) {
	best, bestCount := "", 0
	for name, count := range counts {
		if count > bestCount || (count == bestCount && name < best) {
			best, bestCount = name, count
		}
	}
	return best, bestCount
}

func entriesSince(entries []*types.HabitEntry, since time.Time) []*types.HabitEntry {
	out := make([]*types.HabitEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Date.Before(since) {
			out = append(out, e)
		}
	}
	return out
}
