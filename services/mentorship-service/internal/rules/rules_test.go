package rules

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/events"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage/memory"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) actions(t *testing.T) []string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		var p events.RuleChanged
		require.NoError(t, json.Unmarshal(e.Payload, &p))
		out = append(out, p.Kind+":"+p.Action)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func newService() (*Service, *recorder) {
	rec := &recorder{}
	return NewService(memory.New(), rec, slog.New(slog.NewTextHandler(io.Discard, nil))), rec
}

func TestCreateScheduleValidation(t *testing.T) {
	svc, rec := newService()
	ctx := context.Background()

	cases := []struct {
		name string
		in   ScheduleInput
	}{
		{"missing fields", ScheduleInput{DayOfWeek: ptr(1)}},
		{"weekday too large", ScheduleInput{DayOfWeek: ptr(7), StartTime: ptr("09:00"), EndTime: ptr("10:00")}},
		{"negative weekday", ScheduleInput{DayOfWeek: ptr(-1), StartTime: ptr("09:00"), EndTime: ptr("10:00")}},
		{"bad start", ScheduleInput{DayOfWeek: ptr(1), StartTime: ptr("9:00"), EndTime: ptr("10:00")}},
		{"bad end", ScheduleInput{DayOfWeek: ptr(1), StartTime: ptr("09:00"), EndTime: ptr("24:00")}},
		{"inverted", ScheduleInput{DayOfWeek: ptr(1), StartTime: ptr("10:00"), EndTime: ptr("09:00")}},
		{"empty window", ScheduleInput{DayOfWeek: ptr(1), StartTime: ptr("10:00"), EndTime: ptr("10:00")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSchedule(ctx, tc.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Empty(t, rec.events)
}

func TestScheduleLifecyclePublishesEvents(t *testing.T) {
	svc, rec := newService()
	ctx := context.Background()

	sch, err := svc.CreateSchedule(ctx, ScheduleInput{DayOfWeek: ptr(1), StartTime: ptr(" 08:00 "), EndTime: ptr("18:00")})
	require.NoError(t, err)
	assert.True(t, sch.IsActive)
	assert.Equal(t, time.Monday, sch.DayOfWeek)
	assert.Equal(t, "08:00", sch.StartTime)

	updated, err := svc.UpdateSchedule(ctx, sch.ID, ScheduleInput{EndTime: ptr("12:00"), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "08:00", updated.StartTime)
	assert.Equal(t, "12:00", updated.EndTime)
	assert.False(t, updated.IsActive)

	_, err = svc.UpdateSchedule(ctx, sch.ID, ScheduleInput{StartTime: ptr("13:00")})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.DeleteSchedule(ctx, sch.ID))
	assert.ErrorIs(t, svc.DeleteSchedule(ctx, sch.ID), storage.ErrNotFound)
	_, err = svc.UpdateSchedule(ctx, "missing", ScheduleInput{})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.Equal(t, []string{"global:created", "global:updated", "global:deleted"}, rec.actions(t))
	for _, e := range rec.events {
		assert.Equal(t, events.TypeRuleChanged, e.Type)
		assert.Equal(t, sch.ID, e.AggregateID)
	}
}

func TestMentorAvailabilityLifecycle(t *testing.T) {
	svc, rec := newService()
	ctx := context.Background()

	_, err := svc.CreateMentorAvailability(ctx, AvailabilityInput{MentorID: ptr("  "), DayOfWeek: ptr(2), StartTime: ptr("08:00"), EndTime: ptr("12:00")})
	assert.ErrorIs(t, err, ErrValidation)

	a, err := svc.CreateMentorAvailability(ctx, AvailabilityInput{MentorID: ptr("ana"), DayOfWeek: ptr(2), StartTime: ptr("08:00"), EndTime: ptr("12:00")})
	require.NoError(t, err)
	assert.Equal(t, "ana", a.MentorID)

	_, err = svc.CreateMentorAvailability(ctx, AvailabilityInput{MentorID: ptr("ana"), DayOfWeek: ptr(4), StartTime: ptr("13:00"), EndTime: ptr("17:00"), IsActive: ptr(false)})
	require.NoError(t, err)

	list, err := svc.ListMentorAvailability(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	updated, err := svc.UpdateMentorAvailability(ctx, a.ID, AvailabilityInput{DayOfWeek: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, updated.DayOfWeek)

	_, err = svc.UpdateMentorAvailability(ctx, a.ID, AvailabilityInput{DayOfWeek: ptr(9)})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.DeleteMentorAvailability(ctx, a.ID))
	assert.Equal(t, []string{"mentor:created", "mentor:created", "mentor:updated", "mentor:deleted"}, rec.actions(t))
}
