package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type CreateGoalInput struct {
	Title       string     `json:"title"`
	Activity    string     `json:"activity"`
	TargetValue float64    `json:"target_value"`
	Unit        string     `json:"unit"`
	Period      string     `json:"period"`
	EndDate     *time.Time `json:"end_date"`
}

// UpdateGoalInput carries a partial update; nil fields are untouched.
type UpdateGoalInput struct {
	Title       *string    `json:"title"`
	Activity    *string    `json:"activity"`
	TargetValue *float64   `json:"target_value"`
	Unit        *string    `json:"unit"`
	Period      *string    `json:"period"`
	IsActive    *bool      `json:"is_active"`
	EndDate     *time.Time `json:"end_date"`
}

type GoalService interface {
	Create(ctx context.Context, input CreateGoalInput) (*types.Goal, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateGoalInput) (*types.Goal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*types.Goal, error)
	RecalcProgressFor(ctx context.Context, entryActivity string, now time.Time) error
}

type goalService struct {
	db        *gorm.DB
	log       *logger.Logger
	goalRepo  repos.GoalRepo
	entryRepo repos.HabitEntryRepo
}

func NewGoalService(db *gorm.DB, log *logger.Logger, goalRepo repos.GoalRepo, entryRepo repos.HabitEntryRepo) GoalService {
	return &goalService{
		db:        db,
		log:       log.With("service", "GoalService"),
		goalRepo:  goalRepo,
		entryRepo: entryRepo,
	}
}

func validPeriod(period string) bool {
	switch period {
	case types.PeriodDaily, types.PeriodWeekly, types.PeriodMonthly:
		return true
	}
	return false
}

func (s *goalService) Create(ctx context.Context, input CreateGoalInput) (*types.Goal, error) {
	if input.Title == "" {
		return nil, Validationf("title is required")
	}
	if input.Activity == "" {
		return nil, Validationf("activity is required")
	}
	if input.TargetValue <= 0 {
		return nil, Validationf("target_value must be positive")
	}
	if !validPeriod(input.Period) {
		return nil, Validationf("period must be one of daily, weekly, monthly")
	}

	goal := &types.Goal{
		Title:       input.Title,
		Activity:    input.Activity,
		TargetValue: input.TargetValue,
		Unit:        input.Unit,
		Period:      input.Period,
		IsActive:    true,
		EndDate:     input.EndDate,
	}
	created, err := s.goalRepo.Create(ctx, nil, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return created, nil
}

func (s *goalService) Update(ctx context.Context, id uuid.UUID, input UpdateGoalInput) (*types.Goal, error) {
	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Activity != nil {
		fields["activity"] = *input.Activity
	}
	if input.TargetValue != nil {
		if *input.TargetValue <= 0 {
			return nil, Validationf("target_value must be positive")
		}
		fields["target_value"] = *input.TargetValue
	}
	if input.Unit != nil {
		fields["unit"] = *input.Unit
	}
	if input.Period != nil {
		if !validPeriod(*input.Period) {
			return nil, Validationf("period must be one of daily, weekly, monthly")
		}
		fields["period"] = *input.Period
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if input.EndDate != nil {
		fields["end_date"] = *input.EndDate
	}
	if err := s.goalRepo.UpdateFields(ctx, nil, id, fields); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return s.goalRepo.GetByID(ctx, nil, id)
}

func (s *goalService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.goalRepo.SoftDeleteByID(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

func (s *goalService) List(ctx context.Context, activeOnly bool) ([]*types.Goal, error) {
	return s.goalRepo.List(ctx, nil, activeOnly)
}

// PeriodWindow computes the goal progress window anchored at now: the current
// day, the Sunday-anchored week, or the calendar month, each closed at the
// final millisecond.
func PeriodWindow(period string, now time.Time) (time.Time, time.Time) {
	loc := now.Location()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	switch period {
	case types.PeriodWeekly:
		weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
		return weekStart, weekStart.AddDate(0, 0, 7).Add(-time.Millisecond)
	case types.PeriodMonthly:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return monthStart, monthStart.AddDate(0, 1, 0).Add(-time.Millisecond)
	default:
		return dayStart, dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
}

// RecalcProgressFor overwrites CurrentValue for every active goal whose
// activity is a case-insensitive substring of the new entry's activity. The
// value is re-derived as the sum of matching quantities inside the goal's
// current period window, never accumulated.
func (s *goalService) RecalcProgressFor(ctx context.Context, entryActivity string, now time.Time) error {
	goals, err := s.goalRepo.GetActive(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load active goals: %w", err)
	}

	lowerActivity := strings.ToLower(entryActivity)
	for _, goal := range goals {
		if !strings.Contains(lowerActivity, strings.ToLower(goal.Activity)) {
			continue
		}
		start, end := PeriodWindow(goal.Period, now)
		total, err := s.entryRepo.SumQuantityForActivity(ctx, nil, goal.Activity, start, end)
		if err != nil {
			s.log.Warn("Failed to sum goal progress", "goal_id", goal.ID, "error", err)
			continue
		}
		if err := s.goalRepo.UpdateFields(ctx, nil, goal.ID, map[string]interface{}{"current_value": total}); err != nil {
			s.log.Warn("Failed to store goal progress", "goal_id", goal.ID, "error", err)
		}
	}
	return nil
}
