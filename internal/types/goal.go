package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// Goal is a user-defined quantity target. CurrentValue is a derived cache:
// it is recomputed from matching entries whenever a quantified entry for the
// activity is logged, never accumulated incrementally. EndDate is stored but
// not enforced anywhere.
type Goal struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Activity     string         `gorm:"not null;index" json:"activity"`
	TargetValue  float64        `gorm:"not null" json:"target_value"`
	CurrentValue float64        `gorm:"not null;default:0" json:"current_value"`
	Unit         string         `json:"unit,omitempty"`
	Period       string         `gorm:"not null" json:"period"`
	IsActive     bool           `gorm:"not null;default:true;index" json:"is_active"`
	EndDate      *time.Time     `json:"end_date,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Goal) TableName() string { return "goal" }

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (g *Goal) IsComplete() bool {
	return g.CurrentValue >= g.TargetValue
}
