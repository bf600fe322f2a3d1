// Package memory is an in-process Store used by tests and single-node demos.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

type Store struct {
	mu           sync.RWMutex
	now          func() time.Time
	schedules    map[string]model.GlobalSchedule
	availability map[string]model.MentorAvailability
	appointments map[string]model.Appointment
	programs     map[string]model.Program
	types        map[string]model.AppointmentType
	users        map[string]model.User
}

var (
	_ storage.Store         = (*Store)(nil)
	_ storage.CatalogSeeder = (*Store)(nil)
)

func New() *Store {
	return NewWithClock(time.Now)
}

func NewWithClock(now func() time.Time) *Store {
	return &Store{
		now:          now,
		schedules:    map[string]model.GlobalSchedule{},
		availability: map[string]model.MentorAvailability{},
		appointments: map[string]model.Appointment{},
		programs:     map[string]model.Program{},
		types:        map[string]model.AppointmentType{},
		users:        map[string]model.User{},
	}
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close()                     {}

func (s *Store) CreateSchedule(_ context.Context, sch model.GlobalSchedule) (model.GlobalSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sch.ID = uuid.NewString()
	sch.CreatedAt = s.now().UTC()
	s.schedules[sch.ID] = sch
	return sch, nil
}

func (s *Store) GetSchedule(_ context.Context, id string) (model.GlobalSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sch, ok := s.schedules[id]
	if !ok {
		return model.GlobalSchedule{}, storage.ErrNotFound
	}
	return sch, nil
}

func (s *Store) UpdateSchedule(_ context.Context, sch model.GlobalSchedule) (model.GlobalSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.schedules[sch.ID]
	if !ok {
		return model.GlobalSchedule{}, storage.ErrNotFound
	}
	sch.CreatedAt = current.CreatedAt
	s.schedules[sch.ID] = sch
	return sch, nil
}

func (s *Store) DeleteSchedule(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schedules[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.schedules, id)
	return nil
}

func (s *Store) ListSchedules(_ context.Context) ([]model.GlobalSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.GlobalSchedule, 0, len(s.schedules))
	for _, sch := range s.schedules {
		out = append(out, sch)
	}
	sortSchedules(out)
	return out, nil
}

func (s *Store) ListActiveSchedulesForWeekday(_ context.Context, weekday time.Weekday) ([]model.GlobalSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.GlobalSchedule
	for _, sch := range s.schedules {
		if sch.IsActive && sch.DayOfWeek == weekday {
			out = append(out, sch)
		}
	}
	sortSchedules(out)
	return out, nil
}

func sortSchedules(in []model.GlobalSchedule) {
	sort.Slice(in, func(i, j int) bool {
		if in[i].DayOfWeek != in[j].DayOfWeek {
			return in[i].DayOfWeek < in[j].DayOfWeek
		}
		if in[i].StartTime != in[j].StartTime {
			return in[i].StartTime < in[j].StartTime
		}
		return in[i].ID < in[j].ID
	})
}

func (s *Store) CreateMentorAvailability(_ context.Context, a model.MentorAvailability) (model.MentorAvailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = s.now().UTC()
	s.availability[a.ID] = a
	return a, nil
}

func (s *Store) GetMentorAvailability(_ context.Context, id string) (model.MentorAvailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.availability[id]
	if !ok {
		return model.MentorAvailability{}, storage.ErrNotFound
	}
	return a, nil
}

func (s *Store) UpdateMentorAvailability(_ context.Context, a model.MentorAvailability) (model.MentorAvailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.availability[a.ID]
	if !ok {
		return model.MentorAvailability{}, storage.ErrNotFound
	}
	a.CreatedAt = current.CreatedAt
	s.availability[a.ID] = a
	return a, nil
}

func (s *Store) DeleteMentorAvailability(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.availability[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.availability, id)
	return nil
}

// ListMentorAvailability returns every rule when mentorID is empty.
func (s *Store) ListMentorAvailability(_ context.Context, mentorID string) ([]model.MentorAvailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MentorAvailability, 0)
	for _, a := range s.availability {
		if mentorID == "" || a.MentorID == mentorID {
			out = append(out, a)
		}
	}
	sortAvailability(out)
	return out, nil
}

func (s *Store) ListActiveMentorAvailabilityForWeekday(_ context.Context, weekday time.Weekday) ([]model.MentorAvailability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.MentorAvailability
	for _, a := range s.availability {
		if a.IsActive && a.DayOfWeek == weekday {
			out = append(out, a)
		}
	}
	sortAvailability(out)
	return out, nil
}

func sortAvailability(in []model.MentorAvailability) {
	sort.Slice(in, func(i, j int) bool {
		if in[i].MentorID != in[j].MentorID {
			return in[i].MentorID < in[j].MentorID
		}
		if in[i].DayOfWeek != in[j].DayOfWeek {
			return in[i].DayOfWeek < in[j].DayOfWeek
		}
		if in[i].StartTime != in[j].StartTime {
			return in[i].StartTime < in[j].StartTime
		}
		return in[i].ID < in[j].ID
	})
}

func (s *Store) CreateAppointment(_ context.Context, a model.Appointment) (model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = s.now().UTC()
	s.appointments[a.ID] = a
	return a, nil
}

func (s *Store) GetAppointment(_ context.Context, id string) (model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appointments[id]
	if !ok {
		return model.Appointment{}, storage.ErrNotFound
	}
	return a, nil
}

func (s *Store) UpdateAppointment(_ context.Context, a model.Appointment) (model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.appointments[a.ID]
	if !ok {
		return model.Appointment{}, storage.ErrNotFound
	}
	a.CreatedAt = current.CreatedAt
	s.appointments[a.ID] = a
	return a, nil
}

func (s *Store) DeleteAppointment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.appointments, id)
	return nil
}

func (s *Store) ListAppointments(_ context.Context) ([]model.Appointment, error) {
	return s.filterAppointments(func(model.Appointment) bool { return true }), nil
}

func (s *Store) ListAppointmentsByMentor(_ context.Context, mentorID string) ([]model.Appointment, error) {
	return s.filterAppointments(func(a model.Appointment) bool { return a.MentorID == mentorID }), nil
}

func (s *Store) filterAppointments(keep func(model.Appointment) bool) []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Appointment, 0)
	for _, a := range s.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) UpsertProgram(_ context.Context, p model.Program) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.programs[p.ID] = p
	return nil
}

func (s *Store) UpsertAppointmentType(_ context.Context, t model.AppointmentType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.types[t.ID] = t
	return nil
}

func (s *Store) ListPrograms(_ context.Context) ([]model.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Program, 0, len(s.programs))
	for _, p := range s.programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetProgram(_ context.Context, id string) (model.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.programs[id]
	if !ok {
		return model.Program{}, storage.ErrNotFound
	}
	return p, nil
}

func (s *Store) ListAppointmentTypes(_ context.Context) ([]model.AppointmentType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AppointmentType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetAppointmentType(_ context.Context, id string) (model.AppointmentType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.types[id]
	if !ok {
		return model.AppointmentType{}, storage.ErrNotFound
	}
	return t, nil
}

func (s *Store) CreateUser(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, storage.ErrNotFound
}

func (s *Store) ListUsersByRole(_ context.Context, role model.Role) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0)
	for _, u := range s.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
