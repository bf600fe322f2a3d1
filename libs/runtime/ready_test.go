package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyzReportsFailingChecks(t *testing.T) {
	mux := NewBaseMuxWithReady(
		ReadyCheck{Name: "db", Check: func(context.Context) error { return nil }},
		ReadyCheck{Name: "kafka", Check: func(context.Context) error { return errors.New("down") }},
	)

	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rw.Code)

	var report readyReport
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &report))
	assert.Equal(t, "unavailable", report.Status)
	assert.Equal(t, map[string]string{"db": "ok", "kafka": "down"}, report.Checks)
}

func TestReadyzWithoutChecks(t *testing.T) {
	rw := httptest.NewRecorder()
	NewBaseMuxWithReady().ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rw.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rw.Body.String())
}

func TestReadyzCheckTimesOut(t *testing.T) {
	mux := NewBaseMuxWithReady(ReadyCheck{Name: "slow", Check: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/readyz", nil).WithContext(ctx))
	assert.Equal(t, http.StatusServiceUnavailable, rw.Code)
	assert.Contains(t, rw.Body.String(), "deadline exceeded")
}

func TestHealthzAlwaysOK(t *testing.T) {
	mux := NewBaseMuxWithReady()
	rw := httptest.NewRecorder()
	mux.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rw.Code)

	rw = httptest.NewRecorder()
	mux.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rw.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &http.Server{Handler: NewBaseMuxWithReady(), ReadHeaderTimeout: time.Second}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveListener(ctx, srv, ln, logger, time.Second) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
