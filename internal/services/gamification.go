package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/analytics"
	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type GamificationSnapshot struct {
	Profile      *types.UserProfile     `json:"profile"`
	Level        analytics.LevelInfo    `json:"level"`
	Stats        analytics.ProfileStats `json:"stats"`
	Badges       []*types.Badge         `json:"badges"`
	NewBadges    []*types.Badge         `json:"new_badges"`
	TotalBadges  int                    `json:"total_badges"`
	BadgesInPlay int                    `json:"badges_in_play"`
}

type GamificationService interface {
	Snapshot(ctx context.Context) (*GamificationSnapshot, error)
}

type gamificationService struct {
	db          *gorm.DB
	log         *logger.Logger
	entryRepo   repos.HabitEntryRepo
	goalRepo    repos.GoalRepo
	profileRepo repos.UserProfileRepo
	badgeRepo   repos.BadgeRepo
}

func NewGamificationService(db *gorm.DB, log *logger.Logger, entryRepo repos.HabitEntryRepo, goalRepo repos.GoalRepo, profileRepo repos.UserProfileRepo, badgeRepo repos.BadgeRepo) GamificationService {
	return &gamificationService{
		db:          db,
		log:         log.With("service", "GamificationService"),
		entryRepo:   entryRepo,
		goalRepo:    goalRepo,
		profileRepo: profileRepo,
		badgeRepo:   badgeRepo,
	}
}

// Snapshot recomputes points, streaks and badge eligibility from the full
// history and persists the refreshed profile. Newly earned badges are created
// here; a badge is granted at most once, keyed by name.
func (s *gamificationService) Snapshot(ctx context.Context) (*GamificationSnapshot, error) {
	profile, err := s.profileRepo.GetOrCreateDefault(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var (
		entries []*types.HabitEntry
		goals   []*types.Goal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.entryRepo.GetAll(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.goalRepo.List(gctx, nil, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	now := time.Now()
	current, longest := analytics.Streaks(entries, now)
	if profile.LongestStreak > longest {
		longest = profile.LongestStreak
	}
	points := analytics.ComputePoints(entries, goals, current)
	stats := analytics.CollectStats(entries, goals, current)

	existing, err := s.badgeRepo.GetByUserID(ctx, nil, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}
	earned := map[string]bool{}
	for _, b := range existing {
		earned[b.Name] = true
	}

	var newBadges []*types.Badge
	for _, rule := range analytics.BadgeCatalogue {
		if earned[rule.Name] || !rule.Met(stats) {
			continue
		}
		requirement, err := json.Marshal(map[string]interface{}{
			"dimension": rule.Dimension,
			"threshold": rule.Threshold,
		})
		if err != nil {
			return nil, err
		}
		newBadges = append(newBadges, &types.Badge{
			Name:        rule.Name,
			Description: rule.Description,
			Icon:        rule.Icon,
			Category:    rule.Category,
			Requirement: datatypes.JSON(requirement),
			UserID:      profile.ID,
			EarnedAt:    now,
		})
	}
	if len(newBadges) > 0 {
		created, err := s.badgeRepo.Create(ctx, nil, newBadges)
		if err != nil {
			return nil, fmt.Errorf("failed to grant badges: %w", err)
		}
		newBadges = created
		existing = append(existing, created...)
	}

	fields := map[string]interface{}{
		"total_points":   points,
		"current_streak": current,
		"longest_streak": longest,
	}
	if len(entries) > 0 {
		last := entries[len(entries)-1].Date
		fields["last_activity_date"] = last
		profile.LastActivityDate = &last
	}
	if err := s.profileRepo.UpdateFields(ctx, nil, profile.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}
	profile.TotalPoints = points
	profile.CurrentStreak = current
	profile.LongestStreak = longest

	return &GamificationSnapshot{
		Profile:      profile,
		Level:        analytics.LevelFor(points),
		Stats:        stats,
		Badges:       existing,
		NewBadges:    newBadges,
		TotalBadges:  len(existing),
		BadgesInPlay: len(analytics.BadgeCatalogue),
	}, nil
}
