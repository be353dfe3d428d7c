package services

import (
	"context"
	"testing"
	"time"

	"github.com/habitloop/habitloop-backend/internal/types"
)

func newGamificationFixture(t *testing.T, entryRepo *fakeEntryRepo, goalRepo *fakeGoalRepo) (GamificationService, *fakeProfileRepo, *fakeBadgeRepo) {
	t.Helper()
	log := testLogger(t)
	profileRepo := &fakeProfileRepo{}
	badgeRepo := &fakeBadgeRepo{}
	svc := NewGamificationService(nil, log, entryRepo, goalRepo, profileRepo, badgeRepo)
	return svc, profileRepo, badgeRepo
}

func TestSnapshotGrantsBadgesOnce(t *testing.T) {
	now := time.Now()
	entryRepo := &fakeEntryRepo{entries: []*types.HabitEntry{
		{Activity: "run", Type: types.EntryTypePositive, Date: now},
	}}
	svc, _, badgeRepo := newGamificationFixture(t, entryRepo, &fakeGoalRepo{})

	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.NewBadges) == 0 {
		t.Fatal("first snapshot should grant at least one badge")
	}
	found := false
	for _, b := range snap.NewBadges {
		if b.Name == "First Step" {
			found = true
		}
	}
	if !found {
		t.Error("First Step should be granted after the first entry")
	}
	granted := len(badgeRepo.badges)

	snap, err = svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("second Snapshot: %v", err)
	}
	if len(snap.NewBadges) != 0 {
		t.Errorf("second snapshot granted %d badges, want 0", len(snap.NewBadges))
	}
	if len(badgeRepo.badges) != granted {
		t.Errorf("badge count changed from %d to %d across identical snapshots", granted, len(badgeRepo.badges))
	}
}

func TestSnapshotRecomputesPointsAndStreak(t *testing.T) {
	now := time.Now()
	entryRepo := &fakeEntryRepo{entries: []*types.HabitEntry{
		{Activity: "run", Type: types.EntryTypePositive, Date: now},
		{Activity: "meditate", Type: types.EntryTypePositive, Date: now.AddDate(0, 0, -1)},
		{Activity: "doomscroll", Type: types.EntryTypeNegative, Date: now.AddDate(0, 0, -1)},
	}}
	goalRepo := &fakeGoalRepo{}
	goalRepo.Create(context.Background(), nil, &types.Goal{
		Title: "Done", Activity: "run", TargetValue: 10, CurrentValue: 10,
		Period: types.PeriodWeekly, IsActive: true,
	})
	svc, profileRepo, _ := newGamificationFixture(t, entryRepo, goalRepo)

	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	// 10 + 10 - 5 entry points, 50 goal bonus, 2-day streak at 5 apiece.
	wantPoints := 10 + 10 - 5 + 50 + 2*5
	if snap.Profile.TotalPoints != wantPoints {
		t.Errorf("TotalPoints = %d, want %d", snap.Profile.TotalPoints, wantPoints)
	}
	if snap.Profile.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", snap.Profile.CurrentStreak)
	}
	if profileRepo.profile.TotalPoints != wantPoints {
		t.Errorf("persisted TotalPoints = %d, want %d", profileRepo.profile.TotalPoints, wantPoints)
	}
	if profileRepo.profile.LastActivityDate == nil {
		t.Error("LastActivityDate should be set")
	}
	if snap.Level.Points != wantPoints {
		t.Errorf("Level.Points = %d, want %d", snap.Level.Points, wantPoints)
	}
}

func TestSnapshotKeepsStoredLongestStreak(t *testing.T) {
	now := time.Now()
	entryRepo := &fakeEntryRepo{entries: []*types.HabitEntry{
		{Activity: "run", Type: types.EntryTypePositive, Date: now},
	}}
	svc, profileRepo, _ := newGamificationFixture(t, entryRepo, &fakeGoalRepo{})

	profileRepo.GetOrCreateDefault(context.Background(), nil)
	profileRepo.profile.LongestStreak = 14

	snap, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Profile.LongestStreak != 14 {
		t.Errorf("LongestStreak = %d, want stored high-water mark 14", snap.Profile.LongestStreak)
	}
}
