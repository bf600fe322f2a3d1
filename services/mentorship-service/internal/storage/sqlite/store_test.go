package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestScheduleLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	sch, err := s.CreateSchedule(ctx, model.GlobalSchedule{DayOfWeek: time.Tuesday, StartTime: "08:00", EndTime: "12:00", IsActive: true})
	require.NoError(t, err)

	got, err := s.GetSchedule(ctx, sch.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, got.DayOfWeek)
	assert.Equal(t, "08:00", got.StartTime)
	assert.True(t, got.IsActive)
	assert.WithinDuration(t, sch.CreatedAt, got.CreatedAt, time.Millisecond)

	got.EndTime = "10:00"
	got.IsActive = false
	updated, err := s.UpdateSchedule(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "10:00", updated.EndTime)
	assert.False(t, updated.IsActive)

	active, err := s.ListActiveSchedulesForWeekday(ctx, time.Tuesday)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := s.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteSchedule(ctx, sch.ID))
	_, err = s.GetSchedule(ctx, sch.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.UpdateSchedule(ctx, sch)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMentorAvailabilityFilters(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	for _, a := range []model.MentorAvailability{
		{MentorID: "pedro", DayOfWeek: time.Monday, StartTime: "15:00", EndTime: "18:00", IsActive: true},
		{MentorID: "carlos", DayOfWeek: time.Monday, StartTime: "14:00", EndTime: "17:00", IsActive: true},
		{MentorID: "carlos", DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "12:00", IsActive: true},
		{MentorID: "carlos", DayOfWeek: time.Wednesday, StartTime: "10:00", EndTime: "13:00", IsActive: true},
		{MentorID: "ana", DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "12:00", IsActive: false},
	} {
		_, err := s.CreateMentorAvailability(ctx, a)
		require.NoError(t, err)
	}

	monday, err := s.ListActiveMentorAvailabilityForWeekday(ctx, time.Monday)
	require.NoError(t, err)
	require.Len(t, monday, 3)
	assert.Equal(t, "carlos", monday[0].MentorID)
	assert.Equal(t, "09:00", monday[0].StartTime)
	assert.Equal(t, "pedro", monday[2].MentorID)

	carlos, err := s.ListMentorAvailability(ctx, "carlos")
	require.NoError(t, err)
	assert.Len(t, carlos, 3)

	all, err := s.ListMentorAvailability(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	assert.ErrorIs(t, s.DeleteMentorAvailability(ctx, "missing"), storage.ErrNotFound)
}

func TestOpenFilePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rules.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.CreateSchedule(ctx, model.GlobalSchedule{DayOfWeek: time.Friday, StartTime: "08:00", EndTime: "18:00", IsActive: true})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.ListActiveSchedulesForWeekday(ctx, time.Friday)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
