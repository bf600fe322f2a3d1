package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

func TestScheduleCRUD(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	s := NewWithClock(func() time.Time { return created })

	sch, err := s.CreateSchedule(ctx, model.GlobalSchedule{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "11:00", IsActive: true})
	require.NoError(t, err)
	require.NotEmpty(t, sch.ID)
	assert.Equal(t, created, sch.CreatedAt)

	sch.EndTime = "12:00"
	sch.CreatedAt = time.Time{}
	updated, err := s.UpdateSchedule(ctx, sch)
	require.NoError(t, err)
	assert.Equal(t, "12:00", updated.EndTime)
	assert.Equal(t, created, updated.CreatedAt)

	got, err := s.GetSchedule(ctx, sch.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, s.DeleteSchedule(ctx, sch.ID))
	_, err = s.GetSchedule(ctx, sch.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteSchedule(ctx, sch.ID), storage.ErrNotFound)
	_, err = s.UpdateSchedule(ctx, sch)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestActiveRulesForWeekday(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, _ = s.CreateSchedule(ctx, model.GlobalSchedule{DayOfWeek: time.Monday, StartTime: "14:00", EndTime: "15:00", IsActive: true})
	_, _ = s.CreateSchedule(ctx, model.GlobalSchedule{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "10:00", IsActive: true})
	_, _ = s.CreateSchedule(ctx, model.GlobalSchedule{DayOfWeek: time.Monday, StartTime: "07:00", EndTime: "08:00", IsActive: false})
	_, _ = s.CreateSchedule(ctx, model.GlobalSchedule{DayOfWeek: time.Tuesday, StartTime: "09:00", EndTime: "10:00", IsActive: true})

	got, err := s.ListActiveSchedulesForWeekday(ctx, time.Monday)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "09:00", got[0].StartTime)
	assert.Equal(t, "14:00", got[1].StartTime)

	none, err := s.ListActiveSchedulesForWeekday(ctx, time.Sunday)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, _ = s.CreateMentorAvailability(ctx, model.MentorAvailability{MentorID: "m1", DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "10:00", IsActive: true})
	_, _ = s.CreateMentorAvailability(ctx, model.MentorAvailability{MentorID: "m2", DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "10:00", IsActive: false})
	_, _ = s.CreateMentorAvailability(ctx, model.MentorAvailability{MentorID: "m2", DayOfWeek: time.Friday, StartTime: "09:00", EndTime: "10:00", IsActive: true})

	monday, err := s.ListActiveMentorAvailabilityForWeekday(ctx, time.Monday)
	require.NoError(t, err)
	require.Len(t, monday, 1)
	assert.Equal(t, "m1", monday[0].MentorID)

	m2, err := s.ListMentorAvailability(ctx, "m2")
	require.NoError(t, err)
	assert.Len(t, m2, 2)

	all, err := s.ListMentorAvailability(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAppointmentsByMentorSortedByDate(t *testing.T) {
	ctx := context.Background()
	s := New()
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	_, _ = s.CreateAppointment(ctx, model.Appointment{UserName: "late", Date: day.Add(15 * time.Hour), MentorID: "m1"})
	_, _ = s.CreateAppointment(ctx, model.Appointment{UserName: "early", Date: day.Add(9 * time.Hour), MentorID: "m1"})
	_, _ = s.CreateAppointment(ctx, model.Appointment{UserName: "other", Date: day.Add(10 * time.Hour), MentorID: "m2"})

	got, err := s.ListAppointmentsByMentor(ctx, "m1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].UserName)
	assert.Equal(t, "late", got[1].UserName)

	all, err := s.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUsersAndCatalog(t *testing.T) {
	ctx := context.Background()
	s := New()

	u, err := s.CreateUser(ctx, model.User{Email: "Mentor@Example.com", Role: model.RoleMentor, Name: "M"})
	require.NoError(t, err)

	byEmail, err := s.GetUserByEmail(ctx, "mentor@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.True(t, storage.IsNotFound(err))

	mentors, err := s.ListUsersByRole(ctx, model.RoleMentor)
	require.NoError(t, err)
	assert.Len(t, mentors, 1)

	require.NoError(t, s.UpsertProgram(ctx, model.Program{ID: "p1", Name: "Web"}))
	require.NoError(t, s.UpsertProgram(ctx, model.Program{ID: "p1", Name: "Web Dev"}))
	progs, err := s.ListPrograms(ctx)
	require.NoError(t, err)
	require.Len(t, progs, 1)
	assert.Equal(t, "Web Dev", progs[0].Name)

	require.NoError(t, s.UpsertAppointmentType(ctx, model.AppointmentType{ID: "t1", Name: "Intro", DurationMinutes: 30}))
	typ, err := s.GetAppointmentType(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 30, typ.DurationMinutes)
	_, err = s.GetProgram(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
