package analytics

import (
	"sort"
	"time"

	"github.com/habitloop/habitloop-backend/internal/types"
)

// Grouping granularities for trend buckets.
const (
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"
)

// TrendBucket is one calendar bucket of aggregated entries. AvgMoodScore is a
// running mean over the shared 1..5 mood lookup.
type TrendBucket struct {
	Period        string         `json:"period"`
	Count         int            `json:"count"`
	TotalQuantity float64        `json:"total_quantity"`
	Activities    map[string]int `json:"activities"`
	AvgMoodScore  float64        `json:"avg_mood_score"`
}

// BucketKey derives the bucket key for a timestamp: ISO date for days, the
// ISO date of that week's Sunday for weeks, "YYYY-MM" for months.
func BucketKey(t time.Time, groupBy string) string {
	switch groupBy {
	case GroupByWeek:
		sunday := t.AddDate(0, 0, -int(t.Weekday()))
		return sunday.Format("2006-01-02")
	case GroupByMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// Trends groups entries into day/week/month buckets sorted ascending by key.
func Trends(entries []*types.HabitEntry, groupBy string) []TrendBucket {
	buckets := map[string]*TrendBucket{}
	for _, e := range entries {
		key := BucketKey(e.Date, groupBy)
		b, ok := buckets[key]
		if !ok {
			b = &TrendBucket{Period: key, Activities: map[string]int{}}
			buckets[key] = b
		}
		b.Count++
		if e.Quantity != nil {
			b.TotalQuantity += *e.Quantity
		}
		b.Activities[e.Activity]++
		score := float64(MoodScore(e.Mood))
		b.AvgMoodScore += (score - b.AvgMoodScore) / float64(b.Count)
	}

	out := make([]TrendBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
