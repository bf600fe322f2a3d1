package httpx

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CORSPolicy describes which browser origins may call the API.
type CORSPolicy struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// WithCORS answers preflights and decorates responses for allowed origins.
// An empty AllowedOrigins disables it. A preflight asking for a method outside
// AllowedMethods is refused with 403 so the browser blocks the real request.
func WithCORS(cfg CORSPolicy) Middleware {
	origins := normalizeList(cfg.AllowedOrigins)
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	methods := normalizeList(cfg.AllowedMethods)
	methodSet := make(map[string]bool, len(methods))
	for i, m := range methods {
		methods[i] = strings.ToUpper(m)
		methodSet[methods[i]] = true
	}
	allowMethods := strings.Join(methods, ", ")
	allowHeaders := strings.Join(normalizeList(cfg.AllowedHeaders), ", ")
	exposeHeaders := strings.Join(normalizeList(cfg.ExposedHeaders), ", ")
	var maxAge string
	if secs := int(cfg.MaxAge.Seconds()); secs > 0 {
		maxAge = strconv.Itoa(secs)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			allowOrigin, ok := matchOrigin(origin, origins, cfg.AllowCredentials)
			if origin == "" || !ok {
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Origin", allowOrigin)
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}

			requested := r.Header.Get("Access-Control-Request-Method")
			if r.Method != http.MethodOptions || requested == "" {
				if exposeHeaders != "" {
					h.Set("Access-Control-Expose-Headers", exposeHeaders)
				}
				next.ServeHTTP(w, r)
				return
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			if len(methodSet) > 0 && !methodSet[strings.ToUpper(requested)] {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			if allowMethods != "" {
				h.Set("Access-Control-Allow-Methods", allowMethods)
			}
			if allowHeaders != "" {
				h.Set("Access-Control-Allow-Headers", allowHeaders)
			}
			if maxAge != "" {
				h.Set("Access-Control-Max-Age", maxAge)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// matchOrigin echoes the caller's origin when credentials are allowed, since "*" is
// not honoured by browsers on credentialed requests.
func matchOrigin(origin string, allowed []string, allowCredentials bool) (string, bool) {
	for _, candidate := range allowed {
		switch {
		case candidate == "*" && allowCredentials:
			return origin, true
		case candidate == "*":
			return "*", true
		case strings.EqualFold(strings.TrimSuffix(candidate, "/"), origin):
			return origin, true
		}
	}
	return "", false
}
