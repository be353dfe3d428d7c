package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/types"
)

func testLogger(t interface{ Fatalf(string, ...interface{}) }) *logger.Logger {
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

type fakeEntryRepo struct {
	entries []*types.HabitEntry
}

func (r *fakeEntryRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.HabitEntry) (*types.HabitEntry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *fakeEntryRepo) List(ctx context.Context, tx *gorm.DB, filter repos.EntryFilter) ([]*types.HabitEntry, int64, error) {
	matched := make([]*types.HabitEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if filter.Activity != "" && !strings.Contains(strings.ToLower(e.Activity), strings.ToLower(filter.Activity)) {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Mood != "" && e.Mood != filter.Mood {
			continue
		}
		if filter.StartDate != nil && e.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.Date.After(*filter.EndDate) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *fakeEntryRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.HabitEntry, error) {
	out := append([]*types.HabitEntry{}, r.entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeEntryRepo) GetSince(ctx context.Context, tx *gorm.DB, since time.Time) ([]*types.HabitEntry, error) {
	var out []*types.HabitEntry
	for _, e := range r.entries {
		if !e.Date.Before(since) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeEntryRepo) SumQuantityForActivity(ctx context.Context, tx *gorm.DB, activity string, start, end time.Time) (float64, error) {
	var total float64
	for _, e := range r.entries {
		if e.Quantity == nil {
			continue
		}
		if !strings.Contains(strings.ToLower(e.Activity), strings.ToLower(activity)) {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		total += *e.Quantity
	}
	return total, nil
}

type fakeGoalRepo struct {
	goals []*types.Goal
}

func (r *fakeGoalRepo) Create(ctx context.Context, tx *gorm.DB, goal *types.Goal) (*types.Goal, error) {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	r.goals = append(r.goals, goal)
	return goal, nil
}

func (r *fakeGoalRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Goal, error) {
	for _, g := range r.goals {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeGoalRepo) List(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]*types.Goal, error) {
	var out []*types.Goal
	for _, g := range r.goals {
		if activeOnly && !g.IsActive {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeGoalRepo) GetActive(ctx context.Context, tx *gorm.DB) ([]*types.Goal, error) {
	return r.List(ctx, tx, true)
}

func (r *fakeGoalRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	g, err := r.GetByID(ctx, tx, id)
	if err != nil {
		return err
	}
	for key, value := range fields {
		switch key {
		case "title":
			g.Title = value.(string)
		case "activity":
			g.Activity = value.(string)
		case "target_value":
			g.TargetValue = value.(float64)
		case "current_value":
			g.CurrentValue = value.(float64)
		case "unit":
			g.Unit = value.(string)
		case "period":
			g.Period = value.(string)
		case "is_active":
			g.IsActive = value.(bool)
		case "end_date":
			d := value.(time.Time)
			g.EndDate = &d
		default:
			return fmt.Errorf("unexpected field %q", key)
		}
	}
	return nil
}

func (r *fakeGoalRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	for i, g := range r.goals {
		if g.ID == id {
			r.goals = append(r.goals[:i], r.goals[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeProfileRepo struct {
	profile *types.UserProfile
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.UserProfile, error) {
	if r.profile == nil || r.profile.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.profile, nil
}

func (r *fakeProfileRepo) GetOrCreateDefault(ctx context.Context, tx *gorm.DB) (*types.UserProfile, error) {
	if r.profile == nil {
		r.profile = &types.UserProfile{ID: uuid.New()}
	}
	return r.profile, nil
}

func (r *fakeProfileRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	if r.profile == nil || r.profile.ID != id {
		return gorm.ErrRecordNotFound
	}
	for key, value := range fields {
		switch key {
		case "total_points":
			r.profile.TotalPoints = value.(int)
		case "current_streak":
			r.profile.CurrentStreak = value.(int)
		case "longest_streak":
			r.profile.LongestStreak = value.(int)
		case "last_activity_date":
			d := value.(time.Time)
			r.profile.LastActivityDate = &d
		default:
			return fmt.Errorf("unexpected field %q", key)
		}
	}
	return nil
}

type fakeBadgeRepo struct {
	badges []*types.Badge
}

func (r *fakeBadgeRepo) Create(ctx context.Context, tx *gorm.DB, badges []*types.Badge) ([]*types.Badge, error) {
	for _, b := range badges {
		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
		r.badges = append(r.badges, b)
	}
	return badges, nil
}

func (r *fakeBadgeRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Badge, error) {
	var out []*types.Badge
	for _, b := range r.badges {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeStackRepo struct {
	stacks []*types.HabitStack
}

func (r *fakeStackRepo) Create(ctx context.Context, tx *gorm.DB, stack *types.HabitStack) (*types.HabitStack, error) {
	if stack.ID == uuid.Nil {
		stack.ID = uuid.New()
	}
	r.stacks = append(r.stacks, stack)
	return stack, nil
}

func (r *fakeStackRepo) GetActive(ctx context.Context, tx *gorm.DB) ([]*types.HabitStack, error) {
	var out []*types.HabitStack
	for _, s := range r.stacks {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStackRepo) Deactivate(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	for _, s := range r.stacks {
		if s.ID == id {
			s.IsActive = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
