package storage

import (
	"context"
	"errors"
	"time"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
)

var ErrNotFound = errors.New("not found")

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ScheduleRepository stores global appointment schedules.
type ScheduleRepository interface {
	CreateSchedule(ctx context.Context, s model.GlobalSchedule) (model.GlobalSchedule, error)
	GetSchedule(ctx context.Context, id string) (model.GlobalSchedule, error)
	UpdateSchedule(ctx context.Context, s model.GlobalSchedule) (model.GlobalSchedule, error)
	DeleteSchedule(ctx context.Context, id string) error
	ListSchedules(ctx context.Context) ([]model.GlobalSchedule, error)
	ListActiveSchedulesForWeekday(ctx context.Context, weekday time.Weekday) ([]model.GlobalSchedule, error)
}

// MentorAvailabilityRepository stores per-mentor recurring availability.
type MentorAvailabilityRepository interface {
	CreateMentorAvailability(ctx context.Context, a model.MentorAvailability) (model.MentorAvailability, error)
	GetMentorAvailability(ctx context.Context, id string) (model.MentorAvailability, error)
	UpdateMentorAvailability(ctx context.Context, a model.MentorAvailability) (model.MentorAvailability, error)
	DeleteMentorAvailability(ctx context.Context, id string) error
	ListMentorAvailability(ctx context.Context, mentorID string) ([]model.MentorAvailability, error)
	ListActiveMentorAvailabilityForWeekday(ctx context.Context, weekday time.Weekday) ([]model.MentorAvailability, error)
}

// RuleStore groups both rule repositories.
type RuleStore interface {
	ScheduleRepository
	MentorAvailabilityRepository
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, a model.Appointment) (model.Appointment, error)
	GetAppointment(ctx context.Context, id string) (model.Appointment, error)
	UpdateAppointment(ctx context.Context, a model.Appointment) (model.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	ListAppointmentsByMentor(ctx context.Context, mentorID string) ([]model.Appointment, error)
}

type CatalogRepository interface {
	ListPrograms(ctx context.Context) ([]model.Program, error)
	GetProgram(ctx context.Context, id string) (model.Program, error)
	ListAppointmentTypes(ctx context.Context) ([]model.AppointmentType, error)
	GetAppointmentType(ctx context.Context, id string) (model.AppointmentType, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	ListUsersByRole(ctx context.Context, role model.Role) ([]model.User, error)
}

// Store is everything the HTTP service needs.
type Store interface {
	RuleStore
	AppointmentRepository
	CatalogRepository
	UserRepository
	Ping(ctx context.Context) error
	Close()
}

// CatalogSeeder is implemented by stores that accept catalog rows directly.
type CatalogSeeder interface {
	UpsertProgram(ctx context.Context, p model.Program) error
	UpsertAppointmentType(ctx context.Context, t model.AppointmentType) error
}
