package services

import (
	"context"
	"testing"
	"time"

	"github.com/habitloop/habitloop-backend/internal/types"
)

func TestPeriodWindow(t *testing.T) {
	// 2026-08-26 is a Wednesday.
	now := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		period    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			period:    types.PeriodDaily,
			wantStart: time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond),
		},
		{
			period:    types.PeriodWeekly,
			wantStart: time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond),
		},
		{
			period:    types.PeriodMonthly,
			wantStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).Add(-time.Millisecond),
		},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			start, end := PeriodWindow(tt.period, now)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
		})
	}
}

func TestGoalCreateValidation(t *testing.T) {
	log := testLogger(t)
	svc := NewGoalService(nil, log, &fakeGoalRepo{}, &fakeEntryRepo{})

	tests := []struct {
		name  string
		input CreateGoalInput
	}{
		{"missing title", CreateGoalInput{Activity: "run", TargetValue: 10, Period: types.PeriodWeekly}},
		{"missing activity", CreateGoalInput{Title: "Run more", TargetValue: 10, Period: types.PeriodWeekly}},
		{"zero target", CreateGoalInput{Title: "Run more", Activity: "run", Period: types.PeriodWeekly}},
		{"bad period", CreateGoalInput{Title: "Run more", Activity: "run", TargetValue: 10, Period: "yearly"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.input); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	goal, err := svc.Create(context.Background(), CreateGoalInput{
		Title: "Run more", Activity: "run", TargetValue: 20, Unit: "km", Period: types.PeriodWeekly,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !goal.IsActive {
		t.Error("new goal should be active")
	}
}

func TestRecalcProgressForSumsPeriodWindow(t *testing.T) {
	log := testLogger(t)
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	goalRepo := &fakeGoalRepo{}
	goal, _ := goalRepo.Create(context.Background(), nil, &types.Goal{
		Title: "Monthly mileage", Activity: "run", TargetValue: 50, Unit: "km",
		Period: types.PeriodMonthly, IsActive: true,
	})

	q := func(v float64) *float64 { return &v }
	entryRepo := &fakeEntryRepo{entries: []*types.HabitEntry{
		{Activity: "run", Quantity: q(5), Date: time.Date(2026, 8, 10, 7, 0, 0, 0, time.UTC)},
		{Activity: "run", Quantity: q(7), Date: time.Date(2026, 8, 20, 7, 0, 0, 0, time.UTC)},
		{Activity: "run", Quantity: q(9), Date: time.Date(2026, 7, 30, 7, 0, 0, 0, time.UTC)},
		{Activity: "yoga", Quantity: q(30), Date: time.Date(2026, 8, 21, 7, 0, 0, 0, time.UTC)},
	}}

	svc := NewGoalService(nil, log, goalRepo, entryRepo)
	if err := svc.RecalcProgressFor(context.Background(), "run", now); err != nil {
		t.Fatalf("RecalcProgressFor: %v", err)
	}
	if goal.CurrentValue != 12 {
		t.Errorf("CurrentValue = %v, want 12", goal.CurrentValue)
	}

	// Non-matching activity leaves the goal untouched.
	if err := svc.RecalcProgressFor(context.Background(), "meditate", now); err != nil {
		t.Fatalf("RecalcProgressFor: %v", err)
	}
	if goal.CurrentValue != 12 {
		t.Errorf("CurrentValue after unrelated entry = %v, want 12", goal.CurrentValue)
	}
}

func TestRecalcProgressForMatchesSubstring(t *testing.T) {
	log := testLogger(t)
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	goalRepo := &fakeGoalRepo{}
	goal, _ := goalRepo.Create(context.Background(), nil, &types.Goal{
		Title: "Daily reading", Activity: "read", TargetValue: 30, Unit: "pages",
		Period: types.PeriodDaily, IsActive: true,
	})

	q := func(v float64) *float64 { return &v }
	entryRepo := &fakeEntryRepo{entries: []*types.HabitEntry{
		{Activity: "read", Quantity: q(20), Date: now.Add(-time.Hour)},
	}}

	svc := NewGoalService(nil, log, goalRepo, entryRepo)
	if err := svc.RecalcProgressFor(context.Background(), "read fiction", now); err != nil {
		t.Fatalf("RecalcProgressFor: %v", err)
	}
	if goal.CurrentValue != 20 {
		t.Errorf("CurrentValue = %v, want 20", goal.CurrentValue)
	}
}
