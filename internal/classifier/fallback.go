package classifier

import (
	"regexp"
	"strings"

	"github.com/habitloop/habitloop-backend/internal/types"
)

const (
	defaultActivity = "unspecified activity"
	defaultCategory = "habits"
)

// containsAny reports whether any phrase occurs in lower starting at a word
// boundary. The right edge stays open so stemmed phrases like "meditat" and
// "argu" still hit their inflections; the left boundary keeps short phrases
// like "ran" from matching inside "drank".
func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if containsAtBoundary(lower, p) {
			return true
		}
	}
	return false
}

func containsAtBoundary(lower, phrase string) bool {
	for from := 0; ; {
		i := strings.Index(lower[from:], phrase)
		if i < 0 {
			return false
		}
		i += from
		if i == 0 || !isWordChar(lower[i-1]) {
			return true
		}
		from = i + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

func (r ActivityRule) matches(lower string) bool {
	if !containsAny(lower, r.Phrases) {
		return false
	}
	if len(r.AlsoNeeds) > 0 && !containsAny(lower, r.AlsoNeeds) {
		return false
	}
	return true
}

// Classify is the deterministic tier: a pure function of the input text.
func (rb *Rulebook) Classify(text string) Record {
	lower := strings.ToLower(text)

	rec := Record{
		Activity: defaultActivity,
		Type:     types.EntryTypeNeutral,
	}
	for _, rule := range rb.Activities {
		if rule.matches(lower) {
			rec.Activity = rule.Activity
			rec.Type = rule.Type
			rec.Category = rule.Category
			break
		}
	}

	if q, unit, ok := ExtractQuantity(text); ok {
		rec.Quantity = &q
		rec.Unit = unit
	}
	rec.Trigger = rb.DetectTrigger(text)
	rec.Mood = rb.InferMood(lower)
	rec.Sentiment = rb.InferSentiment(lower)
	rec.Tags = rb.ExtractTags(lower)
	if rec.Category == "" {
		rec.Category = rb.InferCategory(rec.Activity)
	}
	return rec
}

// FillGaps applies the inference helpers to a record the oracle produced but
// left partially empty. The quantity regex runs as a backstop too.
func (rb *Rulebook) FillGaps(rec *Record, text string) {
	lower := strings.ToLower(text)
	if rec.Type == "" {
		rec.Type = types.EntryTypeNeutral
	}
	if rec.Quantity == nil {
		if q, unit, ok := ExtractQuantity(text); ok {
			rec.Quantity = &q
			rec.Unit = unit
		}
	}
	if rec.Mood == "" {
		rec.Mood = rb.InferMood(lower)
	}
	if rec.Sentiment == "" {
		rec.Sentiment = rb.InferSentiment(lower)
	}
	if len(rec.Tags) == 0 {
		rec.Tags = rb.ExtractTags(lower)
	}
	if rec.Category == "" {
		rec.Category = rb.InferCategory(rec.Activity)
	}
}

var causeClauseRe = regexp.MustCompile(`(?i)\b(?:because|cause|since)\b(?:\s+of)?\s+([a-zA-Z0-9' ]{3,60})`)

// DetectTrigger runs the ordered trigger phrase tables; first match wins,
// empty string when nothing matches.
func (rb *Rulebook) DetectTrigger(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range rb.Triggers {
		if !containsAny(lower, rule.Phrases) {
			continue
		}
		if rule.CaptureClause {
			if m := causeClauseRe.FindStringSubmatch(text); len(m) == 2 {
				clause := strings.TrimSpace(strings.ToLower(m[1]))
				if clause != "" {
					return clause
				}
			}
		}
		return rule.Trigger
	}
	return ""
}
