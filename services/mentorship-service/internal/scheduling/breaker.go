package scheduling

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
)

type BreakerConfig struct {
	// FailureThreshold is the number of consecutive store failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before letting a probe through.
	OpenTimeout time.Duration
	// HalfOpenRequests caps the probes allowed while half-open.
	HalfOpenRequests uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{FailureThreshold: 5, OpenTimeout: 30 * time.Second, HalfOpenRequests: 1}
}

type breakerSource struct {
	next    RuleSource
	global  *gobreaker.CircuitBreaker[[]model.RuleWindow]
	mentors *gobreaker.CircuitBreaker[[]model.RuleWindow]
}

// NewBreakerSource fails fast with gobreaker.ErrOpenState while the rule store keeps failing.
// Each list has its own breaker. Caller cancellation is not counted as a failure.
func NewBreakerSource(next RuleSource, cfg BreakerConfig, logger *slog.Logger) RuleSource {
	def := DefaultBreakerConfig()
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = def.HalfOpenRequests
	}
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.HalfOpenRequests,
			Timeout:     cfg.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= cfg.FailureThreshold
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("rule source breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			},
		}
	}
	return &breakerSource{
		next:    next,
		global:  gobreaker.NewCircuitBreaker[[]model.RuleWindow](settings("global_schedules")),
		mentors: gobreaker.NewCircuitBreaker[[]model.RuleWindow](settings("mentor_availability")),
	}
}

func (b *breakerSource) ListActiveGlobalSchedules(ctx context.Context, weekday time.Weekday) ([]model.RuleWindow, error) {
	return b.global.Execute(func() ([]model.RuleWindow, error) {
		return b.next.ListActiveGlobalSchedules(ctx, weekday)
	})
}

func (b *breakerSource) ListActiveMentorAvailability(ctx context.Context, weekday time.Weekday) ([]model.RuleWindow, error) {
	return b.mentors.Execute(func() ([]model.RuleWindow, error) {
		return b.next.ListActiveMentorAvailability(ctx, weekday)
	})
}
