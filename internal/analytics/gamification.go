package analytics

import (
	"github.com/habitloop/habitloop-backend/internal/types"
)

// Point rule table.
const (
	PointsPositiveEntry = 10
	PointsNegativeEntry = -5
	PointsOtherEntry    = 5
	PointsCompletedGoal = 50
	PointsPerStreakDay  = 5
)

// ProfileStats are the single-dimension counters the badge catalogue tests
// against, recomputed from raw history on every snapshot.
type ProfileStats struct {
	TotalEntries       int `json:"total_entries"`
	PositiveEntries    int `json:"positive_entries"`
	MoodEntries        int `json:"mood_entries"`
	Before8amEntries   int `json:"before_8am_entries"`
	After9pmEntries    int `json:"after_9pm_entries"`
	DistinctActivities int `json:"distinct_activities"`
	DistinctCategories int `json:"distinct_categories"`
	CompletedGoals     int `json:"completed_goals"`
	CurrentStreak      int `json:"current_streak"`
}

// CollectStats derives the badge counters from the full entry and goal
// history.
func CollectStats(entries []*types.HabitEntry, goals []*types.Goal, currentStreak int) ProfileStats {
	stats := ProfileStats{
		TotalEntries:  len(entries),
		CurrentStreak: currentStreak,
	}
	activities := map[string]bool{}
	categories := map[string]bool{}
	for _, e := range entries {
		if e.Type == types.EntryTypePositive {
			stats.PositiveEntries++
		}
		if e.Mood != "" {
			stats.MoodEntries++
		}
		if e.Date.Hour() < 8 {
			stats.Before8amEntries++
		}
		if e.Date.Hour() >= 21 {
			stats.After9pmEntries++
		}
		activities[e.Activity] = true
		if e.Category != "" {
			categories[e.Category] = true
		}
	}
	stats.DistinctActivities = len(activities)
	stats.DistinctCategories = len(categories)
	for _, g := range goals {
		if g.IsComplete() {
			stats.CompletedGoals++
		}
	}
	return stats
}

// ComputePoints applies the fixed point table. Completed-goal bonuses are
// recounted on every call since the total is a live function of current data,
// not a ledger.
func ComputePoints(entries []*types.HabitEntry, goals []*types.Goal, currentStreak int) int {
	points := 0
	for _, e := range entries {
		switch e.Type {
		case types.EntryTypePositive:
			points += PointsPositiveEntry
		case types.EntryTypeNegative:
			points += PointsNegativeEntry
		default:
			points += PointsOtherEntry
		}
	}
	for _, g := range goals {
		if g.IsComplete() {
			points += PointsCompletedGoal
		}
	}
	points += currentStreak * PointsPerStreakDay
	return points
}

// Badge dimensions.
const (
	DimTotalEntries       = "total_entries"
	DimCurrentStreak      = "current_streak"
	DimCompletedGoals     = "completed_goals"
	DimMoodEntries        = "mood_entries"
	DimBefore8amEntries   = "before_8am_entries"
	DimAfter9pmEntries    = "after_9pm_entries"
	DimDistinctActivities = "distinct_activities"
	DimPositiveEntries    = "positive_entries"
	DimDistinctCategories = "distinct_categories"
)

// BadgeRule is one entry in the fixed badge catalogue: a single numeric
// threshold against one ProfileStats dimension.
type BadgeRule struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Dimension   string `json:"dimension"`
	Threshold   int    `json:"threshold"`
}

func (r BadgeRule) value(s ProfileStats) int {
	switch r.Dimension {
	case DimTotalEntries:
		return s.TotalEntries
	case DimCurrentStreak:
		return s.CurrentStreak
	case DimCompletedGoals:
		return s.CompletedGoals
	case DimMoodEntries:
		return s.MoodEntries
	case DimBefore8amEntries:
		return s.Before8amEntries
	case DimAfter9pmEntries:
		return s.After9pmEntries
	case DimDistinctActivities:
		return s.DistinctActivities
	case DimPositiveEntries:
		return s.PositiveEntries
	case DimDistinctCategories:
		return s.DistinctCategories
	}
	return 0
}

// Met reports whether the rule's threshold is reached.
func (r BadgeRule) Met(s ProfileStats) bool {
	return r.value(s) >= r.Threshold
}

// BadgeCatalogue is the fixed ordered badge table. A badge is granted at most
// once per profile, keyed by name.
var BadgeCatalogue = []BadgeRule{
	{Name: "First Step", Description: "Log your first entry", Icon: "👣", Category: "milestone", Dimension: DimTotalEntries, Threshold: 1},
	{Name: "Ten Strong", Description: "Log 10 entries", Icon: "🔟", Category: "milestone", Dimension: DimTotalEntries, Threshold: 10},
	{Name: "Habit Builder", Description: "Log 50 entries", Icon: "🧱", Category: "milestone", Dimension: DimTotalEntries, Threshold: 50},
	{Name: "Century Club", Description: "Log 100 entries", Icon: "💯", Category: "milestone", Dimension: DimTotalEntries, Threshold: 100},
	{Name: "Three In A Row", Description: "Keep a 3-day streak", Icon: "🔥", Category: "streak", Dimension: DimCurrentStreak, Threshold: 3},
	{Name: "Week Warrior", Description: "Keep a 7-day streak", Icon: "⚔️", Category: "streak", Dimension: DimCurrentStreak, Threshold: 7},
	{Name: "Monthly Master", Description: "Keep a 30-day streak", Icon: "📅", Category: "streak", Dimension: DimCurrentStreak, Threshold: 30},
	{Name: "Goal Getter", Description: "Complete a goal", Icon: "🎯", Category: "goals", Dimension: DimCompletedGoals, Threshold: 1},
	{Name: "Overachiever", Description: "Complete 5 goals", Icon: "🏅", Category: "goals", Dimension: DimCompletedGoals, Threshold: 5},
	{Name: "Mood Mapper", Description: "Log your mood 10 times", Icon: "🧠", Category: "insight", Dimension: DimMoodEntries, Threshold: 10},
	{Name: "Early Bird", Description: "Log 5 entries before 8am", Icon: "🌅", Category: "insight", Dimension: DimBefore8amEntries, Threshold: 5},
	{Name: "Night Owl", Description: "Log 5 entries after 9pm", Icon: "🦉", Category: "insight", Dimension: DimAfter9pmEntries, Threshold: 5},
	{Name: "Explorer", Description: "Track 5 different activities", Icon: "🧭", Category: "variety", Dimension: DimDistinctActivities, Threshold: 5},
	{Name: "Well Rounded", Description: "Track 5 different categories", Icon: "🌈", Category: "variety", Dimension: DimDistinctCategories, Threshold: 5},
	{Name: "Positivity Pro", Description: "Log 25 positive entries", Icon: "☀️", Category: "insight", Dimension: DimPositiveEntries, Threshold: 25},
}

// LevelDef is one rung of the fixed level ladder.
type LevelDef struct {
	Threshold int    `json:"threshold"`
	Title     string `json:"title"`
	Icon      string `json:"icon"`
}

var Levels = []LevelDef{
	{Threshold: 0, Title: "Newcomer", Icon: "🌱"},
	{Threshold: 50, Title: "Starter", Icon: "⭐"},
	{Threshold: 150, Title: "Builder", Icon: "🔨"},
	{Threshold: 300, Title: "Consistent", Icon: "🔥"},
	{Threshold: 500, Title: "Dedicated", Icon: "💪"},
	{Threshold: 800, Title: "Focused", Icon: "🎯"},
	{Threshold: 1200, Title: "Achiever", Icon: "🏆"},
	{Threshold: 1700, Title: "Champion", Icon: "👑"},
	{Threshold: 2500, Title: "Master", Icon: "💎"},
	{Threshold: 3500, Title: "Legend", Icon: "🚀"},
}

// LevelInfo reports the level reached for a point total and the progress
// toward the next rung. Above the top threshold progress saturates at 100
// with needed reported as 100.
type LevelInfo struct {
	Level        int    `json:"level"`
	Title        string `json:"title"`
	Icon         string `json:"icon"`
	Points       int    `json:"points"`
	NextProgress int    `json:"next_progress"`
	NextNeeded   int    `json:"next_needed"`
}

func LevelFor(points int) LevelInfo {
	idx := 0
	for i, def := range Levels {
		if points >= def.Threshold {
			idx = i
		}
	}
	def := Levels[idx]
	info := LevelInfo{
		Level:  idx + 1,
		Title:  def.Title,
		Icon:   def.Icon,
		Points: points,
	}
	if idx == len(Levels)-1 {
		info.NextProgress = 100
		info.NextNeeded = 100
		return info
	}
	next := Levels[idx+1]
	span := next.Threshold - def.Threshold
	info.NextProgress = (points - def.Threshold) * 100 / span
	info.NextNeeded = next.Threshold - points
	return info
}
