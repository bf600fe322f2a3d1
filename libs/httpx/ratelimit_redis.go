package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window limiter shared by every service replica through Redis.
type RedisRateLimiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
	prefix string
}

// The script returns the hit count for the window and the window's remaining milliseconds.
var redisFixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

func NewRedisRateLimiter(rdb redis.Scripter, limit int, window time.Duration, prefix string) *RedisRateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisRateLimiter{rdb: rdb, limit: limit, window: window, prefix: prefix}
}

// Middleware refuses requests over the limit. When Redis fails, failOpen lets the request
// through instead of answering 503.
func (rl *RedisRateLimiter) Middleware(logger *slog.Logger, failOpen bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			count, ttl, err := rl.hit(r.Context(), rl.prefix+":"+clientKey(r))
			if err != nil {
				logger.Warn("redis rate limiter error", "request_id", RequestIDFromContext(r.Context()), "err", err)
				if failOpen {
					next.ServeHTTP(w, r)
					return
				}
				WriteError(w, http.StatusServiceUnavailable, "rate limiter unavailable")
				return
			}
			if count > int64(rl.limit) {
				if ttl > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
				}
				WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RedisRateLimiter) hit(ctx context.Context, key string) (int64, time.Duration, error) {
	res, err := redisFixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("unexpected redis script result length %d", len(res))
	}
	count, err := toInt64(res[0])
	if err != nil {
		return 0, 0, err
	}
	pttl, err := toInt64(res[1])
	if err != nil {
		return 0, 0, err
	}
	return count, time.Duration(pttl) * time.Millisecond, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script value type %T", v)
	}
}

// RedisReadyCheck pings the client for /readyz.
func RedisReadyCheck(rdb *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if rdb == nil {
			return errors.New("redis not configured")
		}
		return rdb.Ping(ctx).Err()
	}
}
