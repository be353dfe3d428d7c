package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/classifier"
	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
)

// CreateEntryInput is the payload for persisting a classified entry. RawText
// and Activity are required; everything else is optional.
type CreateEntryInput struct {
	RawText   string     `json:"raw_text"`
	Activity  string     `json:"activity"`
	Type      string     `json:"type"`
	Category  string     `json:"category"`
	Quantity  *float64   `json:"quantity"`
	Unit      string     `json:"unit"`
	Mood      string     `json:"mood"`
	Sentiment string     `json:"sentiment"`
	Trigger   string     `json:"trigger"`
	Notes     string     `json:"notes"`
	Tags      []string   `json:"tags"`
	Date      *time.Time `json:"date"`
}

type EntryPage struct {
	Entries []*types.HabitEntry `json:"entries"`
	Total   int64               `json:"total"`
	HasMore bool                `json:"has_more"`
}

type EntryService interface {
	Parse(ctx context.Context, text string) classifier.Record
	Create(ctx context.Context, input CreateEntryInput) (*types.HabitEntry, error)
	List(ctx context.Context, filter repos.EntryFilter) (*EntryPage, error)
	ExportCSV(ctx context.Context, filter repos.EntryFilter) ([]byte, error)
}

type entryService struct {
	db          *gorm.DB
	log         *logger.Logger
	entryRepo   repos.HabitEntryRepo
	goalService GoalService
	classifier  *classifier.Classifier
}

func NewEntryService(db *gorm.DB, log *logger.Logger, entryRepo repos.HabitEntryRepo, goalService GoalService, c *classifier.Classifier) EntryService {
	return &entryService{
		db:          db,
		log:         log.With("service", "EntryService"),
		entryRepo:   entryRepo,
		goalService: goalService,
		classifier:  c,
	}
}

// Parse never fails: oracle problems degrade silently to the rule tables
// inside the classifier.
func (s *entryService) Parse(ctx context.Context, text string) classifier.Record {
	return s.classifier.Classify(ctx, text)
}

func (s *entryService) Create(ctx context.Context, input CreateEntryInput) (*types.HabitEntry, error) {
	if input.RawText == "" {
		return nil, Validationf("raw_text is required")
	}
	if input.Activity == "" {
		return nil, Validationf("activity is required")
	}

	entry := &types.HabitEntry{
		RawText:   input.RawText,
		Activity:  input.Activity,
		Type:      input.Type,
		Category:  input.Category,
		Quantity:  input.Quantity,
		Unit:      input.Unit,
		Mood:      input.Mood,
		Sentiment: input.Sentiment,
		Trigger:   input.Trigger,
		Notes:     input.Notes,
	}
	if input.Date != nil {
		entry.Date = *input.Date
	}
	if len(input.Tags) > 0 {
		raw, err := json.Marshal(input.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize tags: %w", err)
		}
		entry.Tags = datatypes.JSON(raw)
	}

	created, err := s.entryRepo.Create(ctx, nil, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	// Goal progress is a derived side effect: its failure never surfaces to
	// the entry-creation caller.
	if created.Quantity != nil {
		if err := s.goalService.RecalcProgressFor(ctx, created.Activity, time.Now()); err != nil {
			s.log.Warn("Goal progress update failed after entry creation", "entry_id", created.ID, "error", err)
		}
	}
	return created, nil
}

func (s *entryService) List(ctx context.Context, filter repos.EntryFilter) (*EntryPage, error) {
	entries, total, err := s.entryRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	hasMore := false
	if filter.Limit > 0 {
		hasMore = int64(filter.Offset+len(entries)) < total
	}
	return &EntryPage{Entries: entries, Total: total, HasMore: hasMore}, nil
}

var csvHeader = []string{"id", "date", "raw_text", "activity", "type", "category", "quantity", "unit", "mood", "sentiment", "trigger", "notes", "tags"}

func (s *entryService) ExportCSV(ctx context.Context, filter repos.EntryFilter) ([]byte, error) {
	filter.Limit = 0
	filter.Offset = 0
	entries, _, err := s.entryRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, e := range entries {
		quantity := ""
		if e.Quantity != nil {
			quantity = strconv.FormatFloat(*e.Quantity, 'f', -1, 64)
		}
		row := []string{
			e.ID.String(),
			e.Date.Format(time.RFC3339),
			e.RawText,
			e.Activity,
			e.Type,
			e.Category,
			quantity,
			e.Unit,
			e.Mood,
			e.Sentiment,
			e.Trigger,
			e.Notes,
			string(e.Tags),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
