package analytics

import (
	"testing"
	"time"

	"github.com/habitloop/habitloop-backend/internal/types"
)

func moodEntry(date time.Time, mood, typ string) *types.HabitEntry {
	return &types.HabitEntry{Activity: "run", Mood: mood, Type: typ, Date: date}
}

func TestBuildMoodHeatmap(t *testing.T) {
	d1 := time.Date(2026, 8, 24, 7, 0, 0, 0, time.UTC)  // Monday 7am
	d2 := time.Date(2026, 8, 25, 22, 0, 0, 0, time.UTC) // Tuesday 10pm
	entries := []*types.HabitEntry{
		moodEntry(d1, "happy", types.EntryTypePositive),   // 5
		moodEntry(d1, "tired", types.EntryTypeNegative),   // 2
		moodEntry(d1, "happy", types.EntryTypePositive),   // 5
		moodEntry(d2, "sad", types.EntryTypeEmotional),    // 1
	}

	hm := BuildMoodHeatmap(entries)

	if len(hm.Days) != 2 {
		t.Fatalf("days=%d, want 2", len(hm.Days))
	}
	day1 := hm.Days[0]
	if day1.Date != "2026-08-24" {
		t.Fatalf("first day=%q", day1.Date)
	}
	if day1.AvgScore != 4 { // (5+2+5)/3
		t.Fatalf("avg=%v, want 4", day1.AvgScore)
	}
	if day1.Dominant != "happy" {
		t.Fatalf("dominant=%q, want happy", day1.Dominant)
	}
	if day1.Intensity != 4 {
		t.Fatalf("intensity=%d, want 4", day1.Intensity)
	}

	if len(hm.Hours) != 24 {
		t.Fatalf("hours=%d, want 24", len(hm.Hours))
	}
	if hm.Hours[7].Count != 3 || hm.Hours[7].AvgScore != 4 {
		t.Fatalf("hour 7 = %+v", hm.Hours[7])
	}
	if hm.Hours[22].Count != 1 || hm.Hours[22].AvgScore != 1 {
		t.Fatalf("hour 22 = %+v", hm.Hours[22])
	}
	if hm.Hours[3].Count != 0 {
		t.Fatalf("hour 3 should be empty")
	}

	monday := hm.Weekdays[1]
	if monday.Count != 3 || monday.Positive != 2 || monday.Negative != 1 {
		t.Fatalf("monday = %+v", monday)
	}

	if hm.Summary.Days != 2 {
		t.Fatalf("summary days=%d", hm.Summary.Days)
	}
	if hm.Summary.BestDay != "2026-08-24" || hm.Summary.WorstDay != "2026-08-25" {
		t.Fatalf("best=%q worst=%q", hm.Summary.BestDay, hm.Summary.WorstDay)
	}
	if hm.Summary.AvgScore != 2.5 { // (4 + 1) / 2
		t.Fatalf("summary avg=%v, want 2.5", hm.Summary.AvgScore)
	}
}

func TestBuildMoodHeatmapDominantTieFirstEncountered(t *testing.T) {
	d := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	entries := []*types.HabitEntry{
		moodEntry(d, "calm", types.EntryTypePositive),
		moodEntry(d, "happy", types.EntryTypePositive),
	}
	hm := BuildMoodHeatmap(entries)
	if hm.Days[0].Dominant != "calm" {
		t.Fatalf("dominant=%q, want first-encountered mood on tie", hm.Days[0].Dominant)
	}
}

func TestBuildActivityHeatmap(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	day := func(offset int, hour int) time.Time {
		return time.Date(2026, 8, 31+offset, hour, 0, 0, 0, time.UTC)
	}

	var entries []*types.HabitEntry
	// 12 distinct activities with descending counts so the top-10 cut applies.
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	for i, name := range names {
		for n := 0; n <= len(names)-i; n++ {
			entries = append(entries, &types.HabitEntry{Activity: name, Date: day(-1, 9)})
		}
	}

	hm := BuildActivityHeatmap(entries, now, 7)
	if len(hm.Activities) != 10 {
		t.Fatalf("activities=%d, want top 10", len(hm.Activities))
	}
	top := hm.Activities[0]
	if top.Activity != "a" {
		t.Fatalf("top activity=%q, want a", top.Activity)
	}
	if len(top.Daily) != 7 {
		t.Fatalf("daily grid=%d, want dense 7 days", len(top.Daily))
	}
	var nonZero int
	for _, dc := range top.Daily {
		if dc.Count > 0 {
			nonZero++
			if dc.Date != "2026-08-30" {
				t.Fatalf("count on %q, want 2026-08-30", dc.Date)
			}
		}
	}
	if nonZero != 1 {
		t.Fatalf("nonZero=%d, want 1 (rest zero-filled)", nonZero)
	}
	// 2026-08-30 is a Sunday.
	if top.Weekdays[0] != top.Total {
		t.Fatalf("weekday histogram=%v, total=%d", top.Weekdays, top.Total)
	}
}

func TestBuildSentimentHeatmap(t *testing.T) {
	d1 := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC) // Monday, week of Sunday 2026-08-23
	d2 := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	sentiment := func(date time.Time, s string) *types.HabitEntry {
		return &types.HabitEntry{Activity: "run", Sentiment: s, Date: date}
	}
	entries := []*types.HabitEntry{
		sentiment(d1, types.SentimentPositive),
		sentiment(d1, types.SentimentNegative),
		sentiment(d2, types.SentimentNegative),
		sentiment(d2, types.SentimentNeutral),
		sentiment(d2, types.SentimentPositive),
	}

	hm := BuildSentimentHeatmap(entries)

	if len(hm.Days) != 2 {
		t.Fatalf("days=%d", len(hm.Days))
	}
	if hm.Days[0].Dominant != types.SentimentPositive {
		t.Fatalf("day1 dominant=%q, want positive on tie", hm.Days[0].Dominant)
	}

	if len(hm.Weeks) != 1 {
		t.Fatalf("weeks=%d, want 1", len(hm.Weeks))
	}
	week := hm.Weeks[0]
	if week.WeekStart != "2026-08-23" {
		t.Fatalf("week start=%q", week.WeekStart)
	}
	if week.Positive != 2 || week.Neutral != 1 || week.Negative != 2 {
		t.Fatalf("week counts=%+v", week)
	}
	if week.PositiveRatio != 40 {
		t.Fatalf("week ratio=%d, want 40", week.PositiveRatio)
	}

	if hm.Totals.Total != 5 || hm.Totals.PositiveRatio != 40 {
		t.Fatalf("totals=%+v", hm.Totals)
	}
}

func TestBuildSentimentHeatmapDominantOrder(t *testing.T) {
	cases := []struct {
		name          string
		pos, neu, neg int
		want          string
	}{
		{"positive_wins_tie", 1, 1, 1, types.SentimentPositive},
		{"negative_beats_neutral", 0, 1, 1, types.SentimentNegative},
		{"neutral_only_when_strictly_ahead", 0, 2, 1, types.SentimentNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dominantSentiment(tc.pos, tc.neu, tc.neg); got != tc.want {
				t.Fatalf("dominantSentiment(%d,%d,%d)=%q, want %q", tc.pos, tc.neu, tc.neg, got, tc.want)
			}
		})
	}
}

func TestBuildSentimentHeatmapEmpty(t *testing.T) {
	hm := BuildSentimentHeatmap(nil)
	if hm.Totals.PositiveRatio != 0 || hm.Totals.Total != 0 {
		t.Fatalf("empty totals=%+v", hm.Totals)
	}
}
