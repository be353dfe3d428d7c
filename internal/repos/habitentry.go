package repos

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

// EntryFilter narrows entry listings. Activity is a case-insensitive
// substring match; Category and Mood are exact; date bounds are inclusive.
type EntryFilter struct {
	Activity  string
	Category  string
	Mood      string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

type HabitEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.HabitEntry) (*types.HabitEntry, error)
	List(ctx context.Context, tx *gorm.DB, filter EntryFilter) ([]*types.HabitEntry, int64, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.HabitEntry, error)
	GetSince(ctx context.Context, tx *gorm.DB, since time.Time) ([]*types.HabitEntry, error)
	SumQuantityForActivity(ctx context.Context, tx *gorm.DB, activity string, start, end time.Time) (float64, error)
}

type habitEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitEntryRepo(db *gorm.DB, baseLog *logger.Logger) HabitEntryRepo {
	return &habitEntryRepo{db: db, log: baseLog.With("repo", "HabitEntryRepo")}
}

func (r *habitEntryRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.HabitEntry) (*types.HabitEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func applyEntryFilter(q *gorm.DB, filter EntryFilter) *gorm.DB {
	if filter.Activity != "" {
		q = q.Where("LOWER(activity) LIKE ?", "%"+strings.ToLower(filter.Activity)+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Mood != "" {
		q = q.Where("mood = ?", filter.Mood)
	}
	if filter.StartDate != nil {
		q = q.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("date <= ?", *filter.EndDate)
	}
	return q
}

func (r *habitEntryRepo) List(ctx context.Context, tx *gorm.DB, filter EntryFilter) ([]*types.HabitEntry, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	base := applyEntryFilter(transaction.WithContext(ctx).Model(&types.HabitEntry{}), filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := applyEntryFilter(transaction.WithContext(ctx).Model(&types.HabitEntry{}), filter).
		Order("date DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var results []*types.HabitEntry
	if err := q.Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *habitEntryRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.HabitEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.HabitEntry
	if err := transaction.WithContext(ctx).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitEntryRepo) GetSince(ctx context.Context, tx *gorm.DB, since time.Time) ([]*types.HabitEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.HabitEntry
	if err := transaction.WithContext(ctx).
		Where("date >= ?", since).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *habitEntryRepo) SumQuantityForActivity(ctx context.Context, tx *gorm.DB, activity string, start, end time.Time) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var total *float64
	err := transaction.WithContext(ctx).
		Model(&types.HabitEntry{}).
		Select("SUM(quantity)").
		Where("LOWER(activity) LIKE ?", "%"+strings.ToLower(activity)+"%").
		Where("quantity IS NOT NULL").
		Where("date >= ? AND date <= ?", start, end).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
