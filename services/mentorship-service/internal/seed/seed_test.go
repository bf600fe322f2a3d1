package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage/memory"
)

func TestDemoSeedsOnce(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	opts := Options{Now: func() time.Time { return now }, BcryptCost: bcrypt.MinCost}

	require.NoError(t, Demo(ctx, store, store, opts, logger))
	require.NoError(t, Demo(ctx, store, store, opts, logger))

	mentors, err := store.ListUsersByRole(ctx, model.RoleMentor)
	require.NoError(t, err)
	assert.Len(t, mentors, 3)

	admin, err := store.GetUserByEmail(ctx, "admin@mentorconnect.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	schedules, err := store.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Len(t, schedules, 6)

	rules, err := store.ListMentorAvailability(ctx, StableID("user", "carlos"))
	require.NoError(t, err)
	assert.Len(t, rules, 4)

	appts, err := store.ListAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, appts, 6)
	assert.True(t, appts[0].Date.After(now))

	programs, err := store.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Len(t, programs, 5)
}

func TestStableIDIsDeterministic(t *testing.T) {
	assert.Equal(t, StableID("program", "x"), StableID("program", "x"))
	assert.NotEqual(t, StableID("program", "x"), StableID("program_type", "x"))
}
