package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HabitStack is a trigger->linked activity pairing the user has accepted,
// either from a mined suggestion or entered manually. Deletion is a soft
// deactivate (IsActive=false); stacks are never reactivated.
type HabitStack struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TriggerHabit string         `gorm:"not null" json:"trigger_habit"`
	LinkedHabit  string         `gorm:"not null" json:"linked_habit"`
	IsActive     bool           `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (HabitStack) TableName() string { return "habit_stack" }

func (s *HabitStack) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
