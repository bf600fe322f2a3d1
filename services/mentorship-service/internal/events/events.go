// Package events publishes domain events for downstream consumers (notifications, analytics).
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	TypeRuleChanged              = "schedule.rule.changed.v1"
	TypeAppointmentCreated       = "booking.appointment.created.v1"
	TypeAppointmentStatusChanged = "booking.appointment.status_changed.v1"
)

type Event struct {
	ID          string          `json:"event_id"`
	Type        string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// New builds an event with a fresh id. The payload is encoded as JSON.
func New(eventType, aggregateID string, payload any, now time.Time) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID,
		OccurredAt:  now.UTC(),
		Payload:     body,
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// LogPublisher records events in the service log. Used when no broker is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(_ context.Context, e Event) error {
	p.Logger.Info("domain event", "event_id", e.ID, "event_type", e.Type, "aggregate_id", e.AggregateID)
	return nil
}

// RuleChanged is the payload of TypeRuleChanged.
type RuleChanged struct {
	Kind      string `json:"kind"` // global or mentor
	Action    string `json:"action"`
	RuleID    string `json:"rule_id"`
	MentorID  string `json:"mentor_id,omitempty"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsActive  bool   `json:"is_active"`
}

// AppointmentChanged is the payload of the booking event types.
type AppointmentChanged struct {
	AppointmentID string    `json:"appointment_id"`
	Status        string    `json:"status"`
	MentorID      string    `json:"mentor_id,omitempty"`
	Date          time.Time `json:"date"`
	UserEmail     string    `json:"user_email"`
}
