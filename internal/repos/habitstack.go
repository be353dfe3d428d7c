package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type HabitStackRepo interface {
	Create(ctx context.Context, tx *gorm.DB, stack *types.HabitStack) (*types.HabitStack, error)
	GetActive(ctx context.Context, tx *gorm.DB) ([]*types.HabitStack, error)
	Deactivate(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type habitStackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHabitStackRepo(db *gorm.DB, baseLog *logger.Logger) HabitStackRepo {
	return &habitStackRepo{db: db, log: baseLog.With("repo", "HabitStackRepo")}
}

func (r *habitStackRepo) Create(ctx context.Context, tx *gorm.DB, stack *types.HabitStack) (*types.HabitStack, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(stack).Error; err != nil {
		return nil, err
	}
	return stack, nil
}

func (r *habitStackRepo) GetActive(ctx context.Context, tx *gorm.DB) ([]*types.HabitStack, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.HabitStack
	if err := transaction.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Deactivate is the stack "delete": IsActive drops to false and never comes
// back.
func (r *habitStackRepo) Deactivate(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.HabitStack{}).
		Where("id = ?", id).
		Update("is_active", false).Error; err != nil {
		return err
	}
	return nil
}
