package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/habitloop/habitloop-backend/internal/types"
)

// Heatmap view types.
const (
	HeatmapMood      = "mood"
	HeatmapActivity  = "activity"
	HeatmapSentiment = "sentiment"
)

type MoodDay struct {
	Date      string  `json:"date"`
	AvgScore  float64 `json:"avg_score"`
	Dominant  string  `json:"dominant_mood"`
	Count     int     `json:"count"`
	Intensity int     `json:"intensity"`
}

type MoodHour struct {
	Hour     int     `json:"hour"`
	AvgScore float64 `json:"avg_score"`
	Count    int     `json:"count"`
}

type MoodWeekday struct {
	Weekday  int     `json:"weekday"`
	AvgScore float64 `json:"avg_score"`
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
	Count    int     `json:"count"`
}

type MoodSummary struct {
	Days     int     `json:"days"`
	AvgScore float64 `json:"avg_score"`
	BestDay  string  `json:"best_day"`
	WorstDay string  `json:"worst_day"`
}

type MoodHeatmap struct {
	Days     []MoodDay     `json:"days"`
	Hours    []MoodHour    `json:"hours"`
	Weekdays []MoodWeekday `json:"weekdays"`
	Summary  MoodSummary   `json:"summary"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ActivityGrid struct {
	Activity string     `json:"activity"`
	Total    int        `json:"total"`
	Daily    []DayCount `json:"daily"`
	Weekdays [7]int     `json:"weekdays"`
}

type ActivityHeatmap struct {
	Activities []ActivityGrid `json:"activities"`
}

type SentimentDay struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
	Dominant string `json:"dominant"`
}

type SentimentWeek struct {
	WeekStart     string `json:"week_start"`
	Positive      int    `json:"positive"`
	Neutral       int    `json:"neutral"`
	Negative      int    `json:"negative"`
	PositiveRatio int    `json:"positive_ratio"`
}

type SentimentTotals struct {
	Positive      int `json:"positive"`
	Neutral       int `json:"neutral"`
	Negative      int `json:"negative"`
	Total         int `json:"total"`
	PositiveRatio int `json:"positive_ratio"`
}

type SentimentHeatmap struct {
	Days   []SentimentDay  `json:"days"`
	Weeks  []SentimentWeek `json:"weeks"`
	Totals SentimentTotals `json:"totals"`
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

// BuildMoodHeatmap computes per-day, per-hour and per-weekday mood aggregates
// over the window plus a best/worst day summary. Day ties in the summary go
// to the later date.
func BuildMoodHeatmap(entries []*types.HabitEntry) MoodHeatmap {
	type acc struct {
		sum    int
		count  int
		moods  map[string]int
		order  []string
	}
	dayAcc := map[string]*acc{}
	var hourSum, hourCount [24]int
	var wdSum, wdCount, wdPos, wdNeg [7]int

	for _, e := range entries {
		score := MoodScore(e.Mood)
		key := dayKey(e.Date)
		a, ok := dayAcc[key]
		if !ok {
			a = &acc{moods: map[string]int{}}
			dayAcc[key] = a
		}
		a.sum += score
		a.count++
		if _, seen := a.moods[e.Mood]; !seen {
			a.order = append(a.order, e.Mood)
		}
		a.moods[e.Mood]++

		h := e.Date.Hour()
		hourSum[h] += score
		hourCount[h]++

		wd := int(e.Date.Weekday())
		wdSum[wd] += score
		wdCount[wd]++
		switch e.Type {
		case types.EntryTypePositive:
			wdPos[wd]++
		case types.EntryTypeNegative:
			wdNeg[wd]++
		}
	}

	days := make([]MoodDay, 0, len(dayAcc))
	for key, a := range dayAcc {
		avg := float64(a.sum) / float64(a.count)
		dominant := ""
		best := 0
		for _, mood := range a.order {
			if a.moods[mood] > best {
				best = a.moods[mood]
				dominant = mood
			}
		}
		intensity := int(math.Round(avg))
		if intensity < 1 {
			intensity = 1
		}
		if intensity > 5 {
			intensity = 5
		}
		days = append(days, MoodDay{Date: key, AvgScore: avg, Dominant: dominant, Count: a.count, Intensity: intensity})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	hours := make([]MoodHour, 24)
	for h := 0; h < 24; h++ {
		hours[h] = MoodHour{Hour: h, Count: hourCount[h]}
		if hourCount[h] > 0 {
			hours[h].AvgScore = float64(hourSum[h]) / float64(hourCount[h])
		}
	}

	weekdays := make([]MoodWeekday, 7)
	for wd := 0; wd < 7; wd++ {
		weekdays[wd] = MoodWeekday{Weekday: wd, Positive: wdPos[wd], Negative: wdNeg[wd], Count: wdCount[wd]}
		if wdCount[wd] > 0 {
			weekdays[wd].AvgScore = float64(wdSum[wd]) / float64(wdCount[wd])
		}
	}

	summary := MoodSummary{Days: len(days)}
	if len(days) > 0 {
		var total float64
		bestScore := math.Inf(-1)
		worstScore := math.Inf(1)
		// days ascends by date, so >=/<= resolve ties to the later day.
		for _, d := range days {
			total += d.AvgScore
			if d.AvgScore >= bestScore {
				bestScore = d.AvgScore
				summary.BestDay = d.Date
			}
			if d.AvgScore <= worstScore {
				worstScore = d.AvgScore
				summary.WorstDay = d.Date
			}
		}
		summary.AvgScore = total / float64(len(days))
	}

	return MoodHeatmap{Days: days, Hours: hours, Weekdays: weekdays, Summary: summary}
}

// BuildActivityHeatmap returns the top 10 activities by window count, each
// with a zero-filled daily grid across every day of the window and a weekday
// histogram.
func BuildActivityHeatmap(entries []*types.HabitEntry, now time.Time, rangeDays int) ActivityHeatmap {
	type acc struct {
		total    int
		daily    map[string]int
		weekdays [7]int
	}
	byActivity := map[string]*acc{}
	for _, e := range entries {
		a, ok := byActivity[e.Activity]
		if !ok {
			a = &acc{daily: map[string]int{}}
			byActivity[e.Activity] = a
		}
		a.total++
		a.daily[dayKey(e.Date)]++
		a.weekdays[int(e.Date.Weekday())]++
	}

	names := make([]string, 0, len(byActivity))
	for name := range byActivity {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if byActivity[names[i]].total != byActivity[names[j]].total {
			return byActivity[names[i]].total > byActivity[names[j]].total
		}
		return names[i] < names[j]
	})
	if len(names) > 10 {
		names = names[:10]
	}

	loc := now.Location()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(rangeDays - 1))
	grids := make([]ActivityGrid, 0, len(names))
	for _, name := range names {
		a := byActivity[name]
		grid := ActivityGrid{Activity: name, Total: a.total, Weekdays: a.weekdays}
		for i := 0; i < rangeDays; i++ {
			key := dayKey(start.AddDate(0, 0, i))
			grid.Daily = append(grid.Daily, DayCount{Date: key, Count: a.daily[key]})
		}
		grids = append(grids, grid)
	}
	return ActivityHeatmap{Activities: grids}
}

// dominantSentiment breaks ties in favor of positive, then negative.
func dominantSentiment(pos, neu, neg int) string {
	if pos >= neu && pos >= neg {
		return types.SentimentPositive
	}
	if neg >= neu {
		return types.SentimentNegative
	}
	return types.SentimentNeutral
}

func ratioPercent(pos, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(pos) / float64(total) * 100))
}

// BuildSentimentHeatmap computes per-day and per-Sunday-week sentiment counts
// plus window totals with an integer-percent positive ratio.
func BuildSentimentHeatmap(entries []*types.HabitEntry) SentimentHeatmap {
	type counts struct{ pos, neu, neg int }
	dayCounts := map[string]*counts{}
	weekCounts := map[string]*counts{}
	var totals counts

	bump := func(c *counts, sentiment string) {
		switch sentiment {
		case types.SentimentPositive:
			c.pos++
		case types.SentimentNegative:
			c.neg++
		default:
			c.neu++
		}
	}

	for _, e := range entries {
		dk := dayKey(e.Date)
		if dayCounts[dk] == nil {
			dayCounts[dk] = &counts{}
		}
		bump(dayCounts[dk], e.Sentiment)

		wk := BucketKey(e.Date, GroupByWeek)
		if weekCounts[wk] == nil {
			weekCounts[wk] = &counts{}
		}
		bump(weekCounts[wk], e.Sentiment)
		bump(&totals, e.Sentiment)
	}

	days := make([]SentimentDay, 0, len(dayCounts))
	for key, c := range dayCounts {
		days = append(days, SentimentDay{
			Date:     key,
			Positive: c.pos,
			Neutral:  c.neu,
			Negative: c.neg,
			Dominant: dominantSentiment(c.pos, c.neu, c.neg),
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	weeks := make([]SentimentWeek, 0, len(weekCounts))
	for key, c := range weekCounts {
		weeks = append(weeks, SentimentWeek{
			WeekStart:     key,
			Positive:      c.pos,
			Neutral:       c.neu,
			Negative:      c.neg,
			PositiveRatio: ratioPercent(c.pos, c.pos+c.neu+c.neg),
		})
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].WeekStart < weeks[j].WeekStart })

	total := totals.pos + totals.neu + totals.neg
	return SentimentHeatmap{
		Days:  days,
		Weeks: weeks,
		Totals: SentimentTotals{
			Positive:      totals.pos,
			Neutral:       totals.neu,
			Negative:      totals.neg,
			Total:         total,
			PositiveRatio: ratioPercent(totals.pos, total),
		},
	}
}
