package analytics

import (
	"testing"
	"time"

	"github.com/habitloop/habitloop-backend/internal/types"
)

func positiveEntry(date time.Time, activity string) *types.HabitEntry {
	return &types.HabitEntry{Activity: activity, Type: types.EntryTypePositive, Date: date}
}

func TestMineStacksEmitsStrongPair(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	// run+meditate together on 2 of 3 days, each always appearing together.
	entries := []*types.HabitEntry{
		positiveEntry(day(-1), "run"),
		positiveEntry(day(-1), "meditate"),
		positiveEntry(day(-2), "run"),
		positiveEntry(day(-2), "meditate"),
		positiveEntry(day(-3), "read"),
	}

	got := MineStacks(entries, now)
	if len(got) != 1 {
		t.Fatalf("len=%d, want 1 suggestion: %+v", len(got), got)
	}
	s := got[0]
	if s.TriggerHabit != "meditate" || s.LinkedHabit != "run" {
		t.Fatalf("pair=%s/%s", s.TriggerHabit, s.LinkedHabit)
	}
	if s.Strength != 1.0 {
		t.Fatalf("strength=%v, want 1.0", s.Strength)
	}
	if s.Occurrences != 2 {
		t.Fatalf("occurrences=%d, want 2", s.Occurrences)
	}
}

func TestMineStacksSingleCoOccurrenceSuppressed(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	entries := []*types.HabitEntry{
		positiveEntry(day(-1), "run"),
		positiveEntry(day(-1), "meditate"),
		positiveEntry(day(-2), "run"),
		positiveEntry(day(-3), "meditate"),
	}
	if got := MineStacks(entries, now); len(got) != 0 {
		t.Fatalf("expected no suggestions for a single co-occurrence day, got %+v", got)
	}
}

func TestMineStacksFilters(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	t.Run("too_few_entries", func(t *testing.T) {
		entries := []*types.HabitEntry{
			positiveEntry(day(-1), "run"),
			positiveEntry(day(-1), "meditate"),
		}
		if got := MineStacks(entries, now); got != nil {
			t.Fatalf("expected nil under 3 qualifying entries, got %+v", got)
		}
	})

	t.Run("negative_entries_ignored", func(t *testing.T) {
		entries := []*types.HabitEntry{
			positiveEntry(day(-1), "run"),
			{Activity: "doomscroll", Type: types.EntryTypeNegative, Date: day(-1)},
			positiveEntry(day(-2), "run"),
			{Activity: "doomscroll", Type: types.EntryTypeNegative, Date: day(-2)},
			positiveEntry(day(-3), "run"),
		}
		if got := MineStacks(entries, now); len(got) != 0 {
			t.Fatalf("negative entries should not pair, got %+v", got)
		}
	})

	t.Run("outside_window_ignored", func(t *testing.T) {
		entries := []*types.HabitEntry{
			positiveEntry(day(-40), "run"),
			positiveEntry(day(-40), "meditate"),
			positiveEntry(day(-41), "run"),
			positiveEntry(day(-41), "meditate"),
		}
		if got := MineStacks(entries, now); got != nil {
			t.Fatalf("entries outside the 30-day window should not qualify, got %+v", got)
		}
	})

	t.Run("weak_pair_suppressed", func(t *testing.T) {
		// Pair on 2 days but run appears on 5 days and meditate on 5 days:
		// strength 2/5 < 0.5.
		var entries []*types.HabitEntry
		for i := 1; i <= 5; i++ {
			entries = append(entries, positiveEntry(day(-i), "run"))
		}
		for i := 4; i <= 8; i++ {
			entries = append(entries, positiveEntry(day(-i), "meditate"))
		}
		if got := MineStacks(entries, now); len(got) != 0 {
			t.Fatalf("weak pair should be suppressed, got %+v", got)
		}
	})
}

func TestMineStacksTopFive(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	// Seven activities all done together on 3 days: C(7,2)=21 perfect pairs.
	acts := []string{"a", "b", "c", "d", "e", "f", "g"}
	var entries []*types.HabitEntry
	for i := 1; i <= 3; i++ {
		for _, a := range acts {
			entries = append(entries, positiveEntry(day(-i), a))
		}
	}
	got := MineStacks(entries, now)
	if len(got) != 5 {
		t.Fatalf("len=%d, want capped at 5", len(got))
	}
	for _, s := range got {
		if s.Strength != 1.0 || s.Occurrences != 3 {
			t.Fatalf("unexpected suggestion %+v", s)
		}
	}
}
