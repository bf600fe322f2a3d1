package identity

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/md-rashed-zaman/mentorconnect/libs/auth"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage/memory"
)

func newService(t *testing.T) (*Service, *auth.Signer, model.User) {
	t.Helper()
	store := memory.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("mentor123"), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := store.CreateUser(context.Background(), model.User{
		Email: "carlos@mentorconnect.com", PasswordHash: string(hash), Role: model.RoleMentor, Name: "Carlos Ruiz",
	})
	require.NoError(t, err)
	signer := auth.NewSigner("test-secret", time.Hour)
	return NewService(store, signer, slog.New(slog.NewTextHandler(io.Discard, nil))), signer, u
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, signer, u := newService(t)

	sess, err := svc.Login(context.Background(), " Carlos@MentorConnect.com ", "mentor123", model.RoleMentor)
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.User.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)

	claims, err := signer.Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID())
	assert.Equal(t, "mentor", claims.Role)
	assert.Equal(t, "Carlos Ruiz", claims.Name)
}

func TestLoginRejections(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	cases := []struct {
		name, email, password string
		role                  model.Role
	}{
		{"unknown email", "nobody@mentorconnect.com", "mentor123", model.RoleMentor},
		{"wrong password", "carlos@mentorconnect.com", "nope", model.RoleMentor},
		{"wrong role", "carlos@mentorconnect.com", "mentor123", model.RoleAdmin},
		{"empty password", "carlos@mentorconnect.com", "", model.RoleMentor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.email, tc.password, tc.role)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestHashPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.Error(t, err)

	hash, err := HashPassword("long-enough")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("long-enough")))
}

func TestLoginUnknownEmailStillComparesPassword(t *testing.T) {
	svc, _, _ := newService(t)
	var hashes [][]byte
	svc.compare = func(hash, password []byte) error {
		hashes = append(hashes, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	_, err := svc.Login(context.Background(), "nobody@mentorconnect.com", "mentor123", model.RoleMentor)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, hashes, 1)
	cost, err := bcrypt.Cost(hashes[0])
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	_, err = svc.Login(context.Background(), "carlos@mentorconnect.com", "nope", model.RoleMentor)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Len(t, hashes, 2)
}
