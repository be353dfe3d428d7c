package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile holds gamification state. TotalPoints and CurrentStreak are
// fully recomputed from the entry history on every snapshot; LongestStreak is
// monotonically max'd against its stored value.
type UserProfile struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TotalPoints      int            `gorm:"not null;default:0" json:"total_points"`
	CurrentStreak    int            `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak    int            `gorm:"not null;default:0" json:"longest_streak"`
	LastActivityDate *time.Time     `json:"last_activity_date,omitempty"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserProfile) TableName() string { return "user_profile" }

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
