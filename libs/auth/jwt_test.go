package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)
	token, exp, err := s.Sign("user-1", "admin", "Admin User", "admin@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin@example.com", claims.Email)

	_, err = NewSigner("wrong-secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	s := NewSigner("test-secret", time.Minute)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := s.Sign("user-1", "mentor", "", "")
	require.NoError(t, err)

	_, err = NewSigner("test-secret", time.Minute).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireRole(t *testing.T) {
	s := NewSigner("test-secret", time.Hour)
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RequireAuth(s, RequireRole(ok, "admin"))

	mentorToken, _, err := s.Sign("m-1", "mentor", "", "")
	require.NoError(t, err)
	adminToken, _, err := s.Sign("a-1", "admin", "", "")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer badtoken", http.StatusUnauthorized},
		{"wrong role", "Bearer " + mentorToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rw := httptest.NewRecorder()
			h.ServeHTTP(rw, req)
			assert.Equal(t, tc.want, rw.Code)
		})
	}
}
