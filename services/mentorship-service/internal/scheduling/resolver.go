// Package scheduling turns weekly rules into bookable start times for a calendar date.
package scheduling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	otelx "github.com/md-rashed-zaman/mentorconnect/libs/otel"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/availability"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
)

type Resolver struct {
	source RuleSource
	logger *slog.Logger
	step   time.Duration
	loc    *time.Location
	now    func() time.Time
	tracer trace.Tracer
}

type Option func(*Resolver)

func WithStep(step time.Duration) Option {
	return func(r *Resolver) {
		if step > 0 {
			r.step = step
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(r *Resolver) {
		if loc != nil {
			r.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

func NewResolver(source RuleSource, logger *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		source: source,
		logger: logger,
		step:   availability.DefaultStep,
		loc:    time.UTC,
		now:    time.Now,
		tracer: otelx.Tracer("mentorship-service/scheduling"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Location() *time.Location { return r.loc }

// AvailableAppointmentTimes returns the sorted, de-duplicated start times allowed by the
// global schedules for date's weekday. When date is today, times at or before the
// current minute are dropped.
func (r *Resolver) AvailableAppointmentTimes(ctx context.Context, date time.Time) ([]string, error) {
	day := date.In(r.loc)
	ctx, span := r.tracer.Start(ctx, "scheduling.AvailableAppointmentTimes",
		trace.WithAttributes(
			attribute.String("date", day.Format(time.DateOnly)),
			attribute.Int("weekday", int(day.Weekday())),
		))
	defer span.End()

	windows, err := r.source.ListActiveGlobalSchedules(ctx, day.Weekday())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list global schedules")
		return nil, fmt.Errorf("list global schedules: %w", err)
	}
	if len(windows) == 0 {
		return []string{}, nil
	}

	var slots []availability.TimeOfDay
	for _, w := range windows {
		slots = append(slots, r.windowSlots(w)...)
	}
	slots = availability.ApplyTodayCutoff(availability.Normalize(slots), day, r.now())
	span.SetAttributes(attribute.Int("slots", len(slots)))
	return availability.Strings(slots), nil
}

// MentorTimeSlots returns each mentor's start times for date's weekday, keyed by mentor id.
// Mentors without an active rule that day are absent. No today cutoff is applied.
func (r *Resolver) MentorTimeSlots(ctx context.Context, date time.Time) (map[string][]string, error) {
	day := date.In(r.loc)
	ctx, span := r.tracer.Start(ctx, "scheduling.MentorTimeSlots",
		trace.WithAttributes(
			attribute.String("date", day.Format(time.DateOnly)),
			attribute.Int("weekday", int(day.Weekday())),
		))
	defer span.End()

	windows, err := r.source.ListActiveMentorAvailability(ctx, day.Weekday())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list mentor availability")
		return nil, fmt.Errorf("list mentor availability: %w", err)
	}

	grouped := make(map[string][]availability.TimeOfDay)
	for _, w := range windows {
		slots := r.windowSlots(w)
		if len(slots) == 0 {
			continue
		}
		grouped[w.MentorID] = append(grouped[w.MentorID], slots...)
	}

	out := make(map[string][]string, len(grouped))
	for mentorID, slots := range grouped {
		out[mentorID] = availability.Strings(availability.Normalize(slots))
	}
	span.SetAttributes(attribute.Int("mentors", len(out)))
	return out, nil
}

func (r *Resolver) windowSlots(w model.RuleWindow) []availability.TimeOfDay {
	start, err := availability.ParseTimeOfDay(w.StartTime)
	if err != nil {
		r.logger.Warn("skipping rule with invalid start time", "rule_id", w.RuleID, "mentor_id", w.MentorID, "start_time", w.StartTime, "err", err)
		return nil
	}
	end, err := availability.ParseTimeOfDay(w.EndTime)
	if err != nil {
		r.logger.Warn("skipping rule with invalid end time", "rule_id", w.RuleID, "mentor_id", w.MentorID, "end_time", w.EndTime, "err", err)
		return nil
	}
	return availability.GenerateSlots(start, end, r.step)
}
