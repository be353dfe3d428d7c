package analytics

import (
	"sort"
	"time"

	"github.com/habitloop/habitloop-backend/internal/types"
)

// Streaks derives the current and longest consecutive-day streaks from the
// entry history. The current streak walks back one calendar day at a time
// from today; any gap ends the count, so a day without entries today means a
// current streak of zero. The longest streak is the maximum consecutive run
// anywhere in the history.
func Streaks(entries []*types.HabitEntry, now time.Time) (current int, longest int) {
	if len(entries) == 0 {
		return 0, 0
	}

	loc := now.Location()
	seen := map[string]time.Time{}
	for _, e := range entries {
		d := e.Date.In(loc)
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		seen[day.Format("2006-01-02")] = day
	}

	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	cursor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	for {
		if _, ok := seen[cursor.Format("2006-01-02")]; !ok {
			break
		}
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}
