package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type BadgeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, badges []*types.Badge) ([]*types.Badge, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Badge, error)
}

type badgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	return &badgeRepo{db: db, log: baseLog.With("repo", "BadgeRepo")}
}

func (r *badgeRepo) Create(ctx context.Context, tx *gorm.DB, badges []*types.Badge) ([]*types.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(badges) == 0 {
		return []*types.Badge{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *badgeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Badge, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Badge
	if userID == uuid.Nil {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
