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

type StatsSummary struct {
	TotalEntries          int            `json:"total_entries"`
	TotalDistance         float64        `json:"total_distance"`
	TotalDurationMinutes  float64        `json:"total_duration_minutes"`
	AverageQuantity       float64        `json:"average_quantity"`
	MoodDistribution      map[string]int `json:"mood_distribution"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	ActivityDistribution  map[string]int `json:"activity_distribution"`
	CategoryDistribution  map[string]int `json:"category_distribution"`
}

type StreakBlock struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type StatsResult struct {
	Summary StatsSummary            `json:"summary"`
	Trends  []analytics.TrendBucket `json:"trends"`
	Streaks StreakBlock             `json:"streaks"`
}

type StatsService interface {
	Get(ctx context.Context, filter repos.EntryFilter, groupBy string) (*StatsResult, error)
}

type statsService struct {
	db        *gorm.DB
	log       *logger.Logger
	entryRepo repos.HabitEntryRepo
}

func NewStatsService(db *gorm.DB, log *logger.Logger, entryRepo repos.HabitEntryRepo) StatsService {
	return &statsService{
		db:        db,
		log:       log.With("service", "StatsService"),
		entryRepo: entryRepo,
	}
}

// Get re-derives every statistic from the filtered entry set on each call.
func (s *statsService) Get(ctx context.Context, filter repos.EntryFilter, groupBy string) (*StatsResult, error) {
	filter.Limit = 0
	filter.Offset = 0
	entries, _, err := s.entryRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	summary := StatsSummary{
		TotalEntries:          len(entries),
		MoodDistribution:      map[string]int{},
		SentimentDistribution: map[string]int{},
		ActivityDistribution:  map[string]int{},
		CategoryDistribution:  map[string]int{},
	}
	var quantitySum float64
	var quantityCount int
	for _, e := range entries {
		if e.Quantity != nil {
			quantitySum += *e.Quantity
			quantityCount++
			switch e.Unit {
			case "km", "miles":
				summary.TotalDistance += *e.Quantity
			case "minutes":
				summary.TotalDurationMinutes += *e.Quantity
			case "hours":
				summary.TotalDurationMinutes += *e.Quantity * 60
			}
		}
		if e.Mood != "" {
			summary.MoodDistribution[e.Mood]++
		}
		if e.Sentiment != "" {
			summary.SentimentDistribution[e.Sentiment]++
		}
		summary.ActivityDistribution[e.Activity]++
		if e.Category != "" {
			summary.CategoryDistribution[e.Category]++
		}
	}
	if quantityCount > 0 {
		summary.AverageQuantity = quantitySum / float64(quantityCount)
	}

	current, longest := analytics.Streaks(entries, time.Now())
	return &StatsResult{
		Summary: summary,
		Trends:  analytics.Trends(entries, groupBy),
		Streaks: StreakBlock{Current: current, Longest: longest},
	}, nil
}
