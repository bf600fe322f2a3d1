package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/mentorconnect/libs/db"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

// Runs against a disposable database only when TEST_DATABASE_URL is set.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.Open(ctx, url, db.PoolOptions{MaxConns: 2})
	require.NoError(t, err)
	s := New(pool)
	require.NoError(t, s.Migrate(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE appointments, mentor_availability, appointment_schedules, appointment_types, programs, users`)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestRuleRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sch, err := s.CreateSchedule(ctx, model.GlobalSchedule{DayOfWeek: time.Saturday, StartTime: "09:00", EndTime: "13:00", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, sch.DayOfWeek)

	active, err := s.ListActiveSchedulesForWeekday(ctx, time.Saturday)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, sch.ID, active[0].ID)

	sch.IsActive = false
	_, err = s.UpdateSchedule(ctx, sch)
	require.NoError(t, err)
	active, err = s.ListActiveSchedulesForWeekday(ctx, time.Saturday)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, s.DeleteSchedule(ctx, sch.ID))
	assert.ErrorIs(t, s.DeleteSchedule(ctx, sch.ID), storage.ErrNotFound)
	_, err = s.GetSchedule(ctx, sch.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAppointmentMentorIsNullable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertProgram(ctx, model.Program{ID: "7b0e5c1e-2a51-4e8a-9d3e-0f2b4b1c9a01", Name: "Web"}))
	require.NoError(t, s.UpsertAppointmentType(ctx, model.AppointmentType{ID: "7b0e5c1e-2a51-4e8a-9d3e-0f2b4b1c9a02", Name: "Intro", DurationMinutes: 30}))
	mentor, err := s.CreateUser(ctx, model.User{Email: "m@example.com", PasswordHash: "x", Role: model.RoleMentor, Name: "M"})
	require.NoError(t, err)

	a, err := s.CreateAppointment(ctx, model.Appointment{
		UserName: "Student", UserEmail: "s@example.com", Phone: "3001234567",
		ProgramID: "7b0e5c1e-2a51-4e8a-9d3e-0f2b4b1c9a01", NumberDocument: "123",
		Date: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), AppointmentTypeID: "7b0e5c1e-2a51-4e8a-9d3e-0f2b4b1c9a02",
		Status: model.StatusPending,
	})
	require.NoError(t, err)
	assert.Empty(t, a.MentorID)

	a.MentorID = mentor.ID
	a.Status = model.StatusAssigned
	_, err = s.UpdateAppointment(ctx, a)
	require.NoError(t, err)

	got, err := s.ListAppointmentsByMentor(ctx, mentor.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.StatusAssigned, got[0].Status)
}
