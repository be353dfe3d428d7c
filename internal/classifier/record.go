package classifier

import (
	"context"

	"github.com/habitloop/habitloop-backend/internal/logger"
)

// Record is the structured result of classifying one free-text entry.
type Record struct {
	Activity  string   `json:"activity" yaml:"activity"`
	Type      string   `json:"type" yaml:"type"`
	Category  string   `json:"category" yaml:"category"`
	Quantity  *float64 `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit      string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Mood      string   `json:"mood,omitempty" yaml:"mood,omitempty"`
	Sentiment string   `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	Trigger   string   `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Notes     string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Tags      []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Oracle is the optional external language-model assist. It is a single
// best-effort attempt with no retry; any error or unusable payload sends the
// classifier down the deterministic path.
type Oracle interface {
	ExtractRecord(ctx context.Context, text string) (*Record, error)
}

type Classifier struct {
	log      *logger.Logger
	rulebook *Rulebook
	oracle   Oracle
}

// New builds a classifier over the compiled-in rulebook. oracle may be nil,
// in which case only the deterministic path runs.
func New(log *logger.Logger, oracle Oracle) *Classifier {
	return &Classifier{
		log:      log.With("service", "Classifier"),
		rulebook: DefaultRulebook(),
		oracle:   oracle,
	}
}

// Classify never fails: the oracle tier is consulted first when available,
// and any failure or gap falls through to the rule tables.
func (c *Classifier) Classify(ctx context.Context, text string) Record {
	if c.oracle != nil {
		rec, err := c.oracle.ExtractRecord(ctx, text)
		if err == nil && rec != nil && rec.Activity != "" {
			c.rulebook.FillGaps(rec, text)
			return *rec
		}
		if err != nil {
			c.log.Debug("Oracle extraction failed, using fallback rules", "error", err)
		}
	}
	return c.rulebook.Classify(text)
}
