package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a fixed-window limiter keyed by client address, for single-instance deployments.
type RateLimiter struct {
	limit     int
	window    time.Duration
	now       func() time.Time
	mu        sync.Mutex
	clients   map[string]*fixedWindow
	nextSweep time.Time
}

type fixedWindow struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		clients: map[string]*fixedWindow{},
	}
}

func (rl *RateLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if wait, ok := rl.allow(clientKey(r)); !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
				WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// allow counts one hit for key. When refused it also returns the time left in the window.
func (rl *RateLimiter) allow(key string) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.After(rl.nextSweep) {
		for k, fw := range rl.clients {
			if !now.Before(fw.resetAt) {
				delete(rl.clients, k)
			}
		}
		rl.nextSweep = now.Add(rl.window)
	}

	fw, ok := rl.clients[key]
	if !ok || !now.Before(fw.resetAt) {
		rl.clients[key] = &fixedWindow{count: 1, resetAt: now.Add(rl.window)}
		return 0, true
	}
	if fw.count >= rl.limit {
		return fw.resetAt.Sub(now), false
	}
	fw.count++
	return 0, true
}

func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
