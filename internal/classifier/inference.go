package classifier

import (
	"strings"

	"github.com/habitloop/habitloop-backend/internal/types"
)

// InferMood runs the ordered mood phrase table; first phrase-set hit wins.
func (rb *Rulebook) InferMood(lower string) string {
	for _, rule := range rb.Moods {
		if containsAny(lower, rule.Phrases) {
			return rule.Mood
		}
	}
	return "neutral"
}

// InferSentiment counts word-boundary hits against the positive and negative
// word lists. More negative hits than positive yields "negative", the reverse
// yields "positive", ties (including zero-zero) are "neutral".
func (rb *Rulebook) InferSentiment(lower string) string {
	var pos, neg int
	for _, w := range rb.PositiveWords {
		if containsAtBoundary(lower, w) {
			pos++
		}
	}
	for _, w := range rb.NegativeWords {
		if containsAtBoundary(lower, w) {
			neg++
		}
	}
	switch {
	case neg > pos:
		return types.SentimentNegative
	case pos > neg:
		return types.SentimentPositive
	default:
		return types.SentimentNeutral
	}
}

// ExtractTags runs every tag group independently; each group contributes at
// most one tag and result order follows the table order.
func (rb *Rulebook) ExtractTags(lower string) []string {
	var tags []string
	for _, rule := range rb.Tags {
		if containsAny(lower, rule.Phrases) {
			tags = append(tags, rule.Tag)
		}
	}
	return tags
}

// InferCategory maps the resolved activity to a category when the classifier
// supplied none.
func (rb *Rulebook) InferCategory(activity string) string {
	lower := strings.ToLower(activity)
	for _, rule := range rb.Categories {
		if containsAny(lower, rule.Phrases) {
			return rule.Category
		}
	}
	return defaultCategory
}
