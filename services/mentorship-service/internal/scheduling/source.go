package scheduling

import (
	"context"
	"time"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

// RuleSource returns the active recurring windows for one weekday.
type RuleSource interface {
	ListActiveGlobalSchedules(ctx context.Context, weekday time.Weekday) ([]model.RuleWindow, error)
	ListActiveMentorAvailability(ctx context.Context, weekday time.Weekday) ([]model.RuleWindow, error)
}

type storeSource struct {
	store storage.RuleStore
}

// NewStoreSource adapts a rule repository to a RuleSource.
func NewStoreSource(store storage.RuleStore) RuleSource {
	return storeSource{store: store}
}

func (s storeSource) ListActiveGlobalSchedules(ctx context.Context, weekday time.Weekday) ([]model.RuleWindow, error) {
	rows, err := s.store.ListActiveSchedulesForWeekday(ctx, weekday)
	if err != nil {
		return nil, err
	}
	out := make([]model.RuleWindow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Window())
	}
	return out, nil
}

func (s storeSource) ListActiveMentorAvailability(ctx context.Context, weekday time.Weekday) ([]model.RuleWindow, error) {
	rows, err := s.store.ListActiveMentorAvailabilityForWeekday(ctx, weekday)
	if err != nil {
		return nil, err
	}
	out := make([]model.RuleWindow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Window())
	}
	return out, nil
}
