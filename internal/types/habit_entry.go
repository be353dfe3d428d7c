package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry type labels assigned by the classifier.
const (
	EntryTypePositive  = "positive habit"
	EntryTypeNegative  = "negative behavior"
	EntryTypeNeutral   = "neutral activity"
	EntryTypeEmotional = "emotional event"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// HabitEntry is one logged occurrence. RawText and Activity are always
// present; everything else is best-effort extraction. Entries are never
// edited in place.
type HabitEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RawText   string         `gorm:"column:raw_text;not null" json:"raw_text"`
	Activity  string         `gorm:"not null;index" json:"activity"`
	Type      string         `gorm:"index" json:"type,omitempty"`
	Category  string         `gorm:"index" json:"category,omitempty"`
	Quantity  *float64       `json:"quantity,omitempty"`
	Unit      string         `json:"unit,omitempty"`
	Mood      string         `gorm:"index" json:"mood,omitempty"`
	Sentiment string         `json:"sentiment,omitempty"`
	Trigger   string         `json:"trigger,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	Tags      datatypes.JSON `json:"tags,omitempty"`
	Date      time.Time      `gorm:"not null;index" json:"date"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (HabitEntry) TableName() string { return "habit_entry" }

func (e *HabitEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	return nil
}
