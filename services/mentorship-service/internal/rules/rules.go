// Package rules administers the weekly schedule rules the resolver reads.
package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/availability"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/events"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

var ErrValidation = errors.New("invalid rule")

const (
	kindGlobal = "global"
	kindMentor = "mentor"
)

type Service struct {
	store     storage.RuleStore
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(store storage.RuleStore, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{store: store, publisher: publisher, logger: logger, now: time.Now}
}

// ScheduleInput carries the writable fields of a global schedule. Nil fields are left unchanged on update.
type ScheduleInput struct {
	DayOfWeek *int
	StartTime *string
	EndTime   *string
	IsActive  *bool
}

type AvailabilityInput struct {
	MentorID  *string
	DayOfWeek *int
	StartTime *string
	EndTime   *string
	IsActive  *bool
}

func validateWindow(day int, start, end string) error {
	if day < 0 || day > 6 {
		return fmt.Errorf("%w: day_of_week must be between 0 and 6", ErrValidation)
	}
	s, err := availability.ParseTimeOfDay(start)
	if err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrValidation, err)
	}
	e, err := availability.ParseTimeOfDay(end)
	if err != nil {
		return fmt.Errorf("%w: end_time: %v", ErrValidation, err)
	}
	if s >= e {
		return fmt.Errorf("%w: start_time must be before end_time", ErrValidation)
	}
	return nil
}

func (in ScheduleInput) apply(sch *model.GlobalSchedule) {
	if in.DayOfWeek != nil {
		sch.DayOfWeek = time.Weekday(*in.DayOfWeek)
	}
	if in.StartTime != nil {
		sch.StartTime = strings.TrimSpace(*in.StartTime)
	}
	if in.EndTime != nil {
		sch.EndTime = strings.TrimSpace(*in.EndTime)
	}
	if in.IsActive != nil {
		sch.IsActive = *in.IsActive
	}
}

func (in AvailabilityInput) apply(a *model.MentorAvailability) {
	if in.MentorID != nil {
		a.MentorID = strings.TrimSpace(*in.MentorID)
	}
	if in.DayOfWeek != nil {
		a.DayOfWeek = time.Weekday(*in.DayOfWeek)
	}
	if in.StartTime != nil {
		a.StartTime = strings.TrimSpace(*in.StartTime)
	}
	if in.EndTime != nil {
		a.EndTime = strings.TrimSpace(*in.EndTime)
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
}

// dayOrInvalid keeps out-of-range weekdays detectable after conversion to time.Weekday.
func dayOrInvalid(p *int, fallback time.Weekday) int {
	if p != nil {
		return *p
	}
	return int(fallback)
}

func (s *Service) CreateSchedule(ctx context.Context, in ScheduleInput) (model.GlobalSchedule, error) {
	if in.DayOfWeek == nil || in.StartTime == nil || in.EndTime == nil {
		return model.GlobalSchedule{}, fmt.Errorf("%w: day_of_week, start_time and end_time are required", ErrValidation)
	}
	sch := model.GlobalSchedule{IsActive: true}
	in.apply(&sch)
	if err := validateWindow(*in.DayOfWeek, sch.StartTime, sch.EndTime); err != nil {
		return model.GlobalSchedule{}, err
	}
	created, err := s.store.CreateSchedule(ctx, sch)
	if err != nil {
		return model.GlobalSchedule{}, fmt.Errorf("create schedule: %w", err)
	}
	s.publishSchedule(ctx, "created", created)
	return created, nil
}

func (s *Service) UpdateSchedule(ctx context.Context, id string, in ScheduleInput) (model.GlobalSchedule, error) {
	sch, err := s.store.GetSchedule(ctx, id)
	if err != nil {
		return model.GlobalSchedule{}, err
	}
	day := dayOrInvalid(in.DayOfWeek, sch.DayOfWeek)
	in.apply(&sch)
	if err := validateWindow(day, sch.StartTime, sch.EndTime); err != nil {
		return model.GlobalSchedule{}, err
	}
	updated, err := s.store.UpdateSchedule(ctx, sch)
	if err != nil {
		return model.GlobalSchedule{}, err
	}
	s.publishSchedule(ctx, "updated", updated)
	return updated, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	sch, err := s.store.GetSchedule(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSchedule(ctx, id); err != nil {
		return err
	}
	s.publishSchedule(ctx, "deleted", sch)
	return nil
}

func (s *Service) GetSchedule(ctx context.Context, id string) (model.GlobalSchedule, error) {
	return s.store.GetSchedule(ctx, id)
}

func (s *Service) ListSchedules(ctx context.Context) ([]model.GlobalSchedule, error) {
	return s.store.ListSchedules(ctx)
}

func (s *Service) CreateMentorAvailability(ctx context.Context, in AvailabilityInput) (model.MentorAvailability, error) {
	if in.MentorID == nil || in.DayOfWeek == nil || in.StartTime == nil || in.EndTime == nil {
		return model.MentorAvailability{}, fmt.Errorf("%w: mentor_id, day_of_week, start_time and end_time are required", ErrValidation)
	}
	a := model.MentorAvailability{IsActive: true}
	in.apply(&a)
	if a.MentorID == "" {
		return model.MentorAvailability{}, fmt.Errorf("%w: mentor_id is required", ErrValidation)
	}
	if err := validateWindow(*in.DayOfWeek, a.StartTime, a.EndTime); err != nil {
		return model.MentorAvailability{}, err
	}
	created, err := s.store.CreateMentorAvailability(ctx, a)
	if err != nil {
		return model.MentorAvailability{}, fmt.Errorf("create mentor availability: %w", err)
	}
	s.publishAvailability(ctx, "created", created)
	return created, nil
}

func (s *Service) UpdateMentorAvailability(ctx context.Context, id string, in AvailabilityInput) (model.MentorAvailability, error) {
	a, err := s.store.GetMentorAvailability(ctx, id)
	if err != nil {
		return model.MentorAvailability{}, err
	}
	day := dayOrInvalid(in.DayOfWeek, a.DayOfWeek)
	in.apply(&a)
	if a.MentorID == "" {
		return model.MentorAvailability{}, fmt.Errorf("%w: mentor_id is required", ErrValidation)
	}
	if err := validateWindow(day, a.StartTime, a.EndTime); err != nil {
		return model.MentorAvailability{}, err
	}
	updated, err := s.store.UpdateMentorAvailability(ctx, a)
	if err != nil {
		return model.MentorAvailability{}, err
	}
	s.publishAvailability(ctx, "updated", updated)
	return updated, nil
}

func (s *Service) DeleteMentorAvailability(ctx context.Context, id string) error {
	a, err := s.store.GetMentorAvailability(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteMentorAvailability(ctx, id); err != nil {
		return err
	}
	s.publishAvailability(ctx, "deleted", a)
	return nil
}

// ListMentorAvailability lists every rule when mentorID is empty.
func (s *Service) ListMentorAvailability(ctx context.Context, mentorID string) ([]model.MentorAvailability, error) {
	return s.store.ListMentorAvailability(ctx, mentorID)
}

func (s *Service) publishSchedule(ctx context.Context, action string, sch model.GlobalSchedule) {
	s.publish(ctx, events.RuleChanged{
		Kind:      kindGlobal,
		Action:    action,
		RuleID:    sch.ID,
		DayOfWeek: int(sch.DayOfWeek),
		StartTime: sch.StartTime,
		EndTime:   sch.EndTime,
		IsActive:  sch.IsActive,
	})
}

func (s *Service) publishAvailability(ctx context.Context, action string, a model.MentorAvailability) {
	s.publish(ctx, events.RuleChanged{
		Kind:      kindMentor,
		Action:    action,
		RuleID:    a.ID,
		MentorID:  a.MentorID,
		DayOfWeek: int(a.DayOfWeek),
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		IsActive:  a.IsActive,
	})
}

// Event delivery is best effort; a failed publish never fails the mutation.
func (s *Service) publish(ctx context.Context, payload events.RuleChanged) {
	e, err := events.New(events.TypeRuleChanged, payload.RuleID, payload, s.now())
	if err == nil {
		err = s.publisher.Publish(ctx, e)
	}
	if err != nil {
		s.logger.Warn("rule event not published", "rule_id", payload.RuleID, "action", payload.Action, "err", err)
	}
}
