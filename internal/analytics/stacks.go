package analytics

import (
	"sort"
	"time"

	"github.com/habitloop/habitloop-backend/internal/types"
)

// StackWindowDays is the trailing window the miner considers.
const StackWindowDays = 30

// StackSuggestion is a candidate habit pairing. Strength is the co-occurrence
// count normalized by the rarer activity's total day count.
type StackSuggestion struct {
	TriggerHabit string  `json:"trigger_habit"`
	LinkedHabit  string  `json:"linked_habit"`
	Strength     float64 `json:"strength"`
	Occurrences  int     `json:"occurrences"`
}

type pairKey struct{ a, b string }

func orderedPair(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// MineStacks discovers co-occurring positive activities within the same
// calendar day over the trailing window. A pair qualifies when its strength
// is at least 0.5 and it co-occurred on at least 2 days; the top 5 by
// strength are returned. Fewer than 3 qualifying entries yield no
// suggestions.
func MineStacks(entries []*types.HabitEntry, now time.Time) []StackSuggestion {
	cutoff := now.AddDate(0, 0, -StackWindowDays)

	byDay := map[string]map[string]bool{}
	qualifying := 0
	for _, e := range entries {
		if e.Type != types.EntryTypePositive || e.Date.Before(cutoff) {
			continue
		}
		qualifying++
		key := dayKey(e.Date)
		if byDay[key] == nil {
			byDay[key] = map[string]bool{}
		}
		byDay[key][e.Activity] = true
	}
	if qualifying < 3 {
		return nil
	}

	coCounts := map[pairKey]int{}
	dayCounts := map[string]int{}
	for _, activities := range byDay {
		names := make([]string, 0, len(activities))
		for name := range activities {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			dayCounts[name]++
		}
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				coCounts[orderedPair(names[i], names[j])]++
			}
		}
	}

	var suggestions []StackSuggestion
	for pair, co := range coCounts {
		if co < 2 {
			continue
		}
		minDays := dayCounts[pair.a]
		if dayCounts[pair.b] < minDays {
			minDays = dayCounts[pair.b]
		}
		strength := float64(co) / float64(minDays)
		if strength < 0.5 {
			continue
		}
		suggestions = append(suggestions, StackSuggestion{
			TriggerHabit: pair.a,
			LinkedHabit:  pair.b,
			Strength:     strength,
			Occurrences:  co,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Strength != suggestions[j].Strength {
			return suggestions[i].Strength > suggestions[j].Strength
		}
		if suggestions[i].Occurrences != suggestions[j].Occurrences {
			return suggestions[i].Occurrences > suggestions[j].Occurrences
		}
		return suggestions[i].TriggerHabit < suggestions[j].TriggerHabit
	})
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}
