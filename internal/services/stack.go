package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/analytics"
	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type CreateStackInput struct {
	TriggerHabit string `json:"trigger_habit"`
	LinkedHabit  string `json:"linked_habit"`
}

type StackService interface {
	Suggestions(ctx context.Context) ([]analytics.StackSuggestion, error)
	ListActive(ctx context.Context) ([]*types.HabitStack, error)
	Create(ctx context.Context, input CreateStackInput) (*types.HabitStack, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type stackService struct {
	db        *gorm.DB
	log       *logger.Logger
	stackRepo repos.HabitStackRepo
	entryRepo repos.HabitEntryRepo
}

func NewStackService(db *gorm.DB, log *logger.Logger, stackRepo repos.HabitStackRepo, entryRepo repos.HabitEntryRepo) StackService {
	return &stackService{
		db:        db,
		log:       log.With("service", "StackService"),
		stackRepo: stackRepo,
		entryRepo: entryRepo,
	}
}

func (s *stackService) Suggestions(ctx context.Context) ([]analytics.StackSuggestion, error) {
	now := time.Now()
	entries, err := s.entryRepo.GetSince(ctx, nil, now.AddDate(0, 0, -analytics.StackWindowDays))
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return analytics.MineStacks(entries, now), nil
}

func (s *stackService) ListActive(ctx context.Context) ([]*types.HabitStack, error) {
	return s.stackRepo.GetActive(ctx, nil)
}

func (s *stackService) Create(ctx context.Context, input CreateStackInput) (*types.HabitStack, error) {
	if input.TriggerHabit == "" {
		return nil, Validationf("trigger_habit is required")
	}
	if input.LinkedHabit == "" {
		return nil, Validationf("linked_habit is required")
	}
	stack := &types.HabitStack{
		TriggerHabit: input.TriggerHabit,
		LinkedHabit:  input.LinkedHabit,
		IsActive:     true,
	}
	created, err := s.stackRepo.Create(ctx, nil, stack)
	if err != nil {
		return nil, fmt.Errorf("failed to create stack: %w", err)
	}
	return created, nil
}

func (s *stackService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.stackRepo.Deactivate(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to deactivate stack: %w", err)
	}
	return nil
}
