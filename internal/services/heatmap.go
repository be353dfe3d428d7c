package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/analytics"
	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
)

type HeatmapService interface {
	Get(ctx context.Context, heatmapType string, rangeDays int) (interface{}, error)
}

type heatmapService struct {
	db        *gorm.DB
	log       *logger.Logger
	entryRepo repos.HabitEntryRepo
}

func NewHeatmapService(db *gorm.DB, log *logger.Logger, entryRepo repos.HabitEntryRepo) HeatmapService {
	return &heatmapService{
		db:        db,
		log:       log.With("service", "HeatmapService"),
		entryRepo: entryRepo,
	}
}

func (s *heatmapService) Get(ctx context.Context, heatmapType string, rangeDays int) (interface{}, error) {
	if rangeDays <= 0 {
		rangeDays = 30
	}
	now := time.Now()
	since := now.AddDate(0, 0, -(rangeDays - 1))
	since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, now.Location())

	entries, err := s.entryRepo.GetSince(ctx, nil, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	switch heatmapType {
	case analytics.HeatmapMood:
		return analytics.BuildMoodHeatmap(entries), nil
	case analytics.HeatmapActivity:
		return analytics.BuildActivityHeatmap(entries, now, rangeDays), nil
	case analytics.HeatmapSentiment:
		return analytics.BuildSentimentHeatmap(entries), nil
	}
	return nil, fmt.Errorf("unknown heatmap type %q", heatmapType)
}
