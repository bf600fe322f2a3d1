package runtime

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLoggerWithLevel writes JSON records to stdout, tagged with the service name.
func NewLoggerWithLevel(service string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", service)
}

// NewTextLogger is the human-readable variant for command line tools.
func NewTextLogger(w io.Writer, service string, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("service", service)
}

// ParseLevel maps LOG_LEVEL style strings to slog levels. Unknown values fall back to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
