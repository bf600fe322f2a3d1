// Package booking manages appointment requests from students, admins and mentors.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/events"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("appointment does not belong to requester")
	ErrNotPending = errors.New("only pending appointments can be changed")
)

type Store interface {
	storage.AppointmentRepository
	storage.CatalogRepository
	storage.UserRepository
}

type Service struct {
	store     Store
	publisher events.Publisher
	logger    *slog.Logger
	validate  *validator.Validate
	now       func() time.Time
}

func NewService(store Store, publisher events.Publisher, logger *slog.Logger) *Service {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Service{store: store, publisher: publisher, logger: logger, validate: v, now: time.Now}
}

// CreateRequest is the public booking form.
type CreateRequest struct {
	UserName              string    `json:"user_name" validate:"required,max=50"`
	UserEmail             string    `json:"user_email" validate:"required,email"`
	Phone                 string    `json:"phone" validate:"required,min=10,max=15"`
	ProgramID             string    `json:"program_id" validate:"required"`
	NumberDocument        string    `json:"number_document" validate:"required"`
	Date                  time.Time `json:"date" validate:"required"`
	AppointmentTypeID     string    `json:"appointment_type_id" validate:"required"`
	Details               string    `json:"details" validate:"max=200"`
	DataProcessingConsent bool      `json:"data_processing_consent" validate:"eq=true"`
}

// Owner identifies a student by the pair they booked with.
type Owner struct {
	Email          string `json:"email" validate:"required"`
	NumberDocument string `json:"number_document" validate:"required"`
}

type OwnerUpdate struct {
	Owner
	Date    *time.Time `json:"date"`
	Details *string    `json:"details" validate:"omitnil,max=200"`
}

type AdminUpdate struct {
	Status   *model.AppointmentStatus `json:"status"`
	Date     *time.Time               `json:"date"`
	Details  *string                  `json:"details" validate:"omitnil,max=200"`
	MentorID *string                  `json:"mentor_id"`
}

// View is an appointment with catalog and mentor names resolved.
type View struct {
	model.Appointment
	ProgramName     string
	TypeName        string
	DurationMinutes int
	MentorName      string
}

type MentorSummary struct {
	ID                string
	Name              string
	Email             string
	AppointmentsCount int
}

func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func trimCreate(req *CreateRequest) {
	req.UserName = strings.TrimSpace(req.UserName)
	req.UserEmail = strings.TrimSpace(req.UserEmail)
	req.Phone = strings.TrimSpace(req.Phone)
	req.ProgramID = strings.TrimSpace(req.ProgramID)
	req.NumberDocument = strings.TrimSpace(req.NumberDocument)
	req.AppointmentTypeID = strings.TrimSpace(req.AppointmentTypeID)
	req.Details = strings.TrimSpace(req.Details)
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (model.Appointment, error) {
	trimCreate(&req)
	if err := s.check(req); err != nil {
		return model.Appointment{}, err
	}
	if _, err := s.store.GetProgram(ctx, req.ProgramID); err != nil {
		if storage.IsNotFound(err) {
			return model.Appointment{}, fmt.Errorf("%w: program_id: unknown program", ErrValidation)
		}
		return model.Appointment{}, err
	}
	if _, err := s.store.GetAppointmentType(ctx, req.AppointmentTypeID); err != nil {
		if storage.IsNotFound(err) {
			return model.Appointment{}, fmt.Errorf("%w: appointment_type_id: unknown appointment type", ErrValidation)
		}
		return model.Appointment{}, err
	}

	a, err := s.store.CreateAppointment(ctx, model.Appointment{
		UserName:          req.UserName,
		UserEmail:         req.UserEmail,
		Phone:             req.Phone,
		ProgramID:         req.ProgramID,
		NumberDocument:    req.NumberDocument,
		Date:              req.Date,
		AppointmentTypeID: req.AppointmentTypeID,
		Details:           req.Details,
		Status:            model.StatusPending,
	})
	if err != nil {
		return model.Appointment{}, fmt.Errorf("create appointment: %w", err)
	}
	s.publish(ctx, events.TypeAppointmentCreated, a)
	return a, nil
}

func (s *Service) Search(ctx context.Context, owner Owner) ([]View, error) {
	if err := s.check(owner); err != nil {
		return nil, err
	}
	all, err := s.store.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	var mine []model.Appointment
	for _, a := range all {
		if owns(a, owner) {
			mine = append(mine, a)
		}
	}
	return s.enrich(ctx, mine)
}

func owns(a model.Appointment, o Owner) bool {
	return strings.EqualFold(a.UserEmail, strings.TrimSpace(o.Email)) && a.NumberDocument == strings.TrimSpace(o.NumberDocument)
}

// ownedPending loads an appointment the owner may still change.
func (s *Service) ownedPending(ctx context.Context, id string, owner Owner) (model.Appointment, error) {
	if err := s.check(owner); err != nil {
		return model.Appointment{}, err
	}
	a, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}
	if !owns(a, owner) {
		return model.Appointment{}, ErrForbidden
	}
	if a.Status != model.StatusPending {
		return model.Appointment{}, ErrNotPending
	}
	return a, nil
}

func (s *Service) Cancel(ctx context.Context, id string, owner Owner) (model.Appointment, error) {
	a, err := s.ownedPending(ctx, id, owner)
	if err != nil {
		return model.Appointment{}, err
	}
	a.Status = model.StatusCancelled
	updated, err := s.store.UpdateAppointment(ctx, a)
	if err != nil {
		return model.Appointment{}, err
	}
	s.publish(ctx, events.TypeAppointmentStatusChanged, updated)
	return updated, nil
}

func (s *Service) UpdateByOwner(ctx context.Context, id string, in OwnerUpdate) (model.Appointment, error) {
	if err := s.check(in); err != nil {
		return model.Appointment{}, err
	}
	a, err := s.ownedPending(ctx, id, in.Owner)
	if err != nil {
		return model.Appointment{}, err
	}
	if in.Date != nil && !in.Date.IsZero() {
		a.Date = *in.Date
	}
	if in.Details != nil {
		a.Details = strings.TrimSpace(*in.Details)
	}
	return s.store.UpdateAppointment(ctx, a)
}

func (s *Service) List(ctx context.Context) ([]View, error) {
	all, err := s.store.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, all)
}

// Assign sets the mentor and moves the appointment to assigned.
func (s *Service) Assign(ctx context.Context, id, mentorID string) (model.Appointment, error) {
	mentorID = strings.TrimSpace(mentorID)
	if mentorID == "" {
		return model.Appointment{}, fmt.Errorf("%w: mentor_id is required", ErrValidation)
	}
	if err := s.requireMentor(ctx, mentorID); err != nil {
		return model.Appointment{}, err
	}
	a, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}
	a.MentorID = mentorID
	a.Status = model.StatusAssigned
	updated, err := s.store.UpdateAppointment(ctx, a)
	if err != nil {
		return model.Appointment{}, err
	}
	s.publish(ctx, events.TypeAppointmentStatusChanged, updated)
	return updated, nil
}

func (s *Service) requireMentor(ctx context.Context, mentorID string) error {
	u, err := s.store.GetUser(ctx, mentorID)
	if err != nil {
		if storage.IsNotFound(err) {
			return fmt.Errorf("%w: mentor_id: unknown mentor", ErrValidation)
		}
		return err
	}
	if u.Role != model.RoleMentor {
		return fmt.Errorf("%w: mentor_id: user is not a mentor", ErrValidation)
	}
	return nil
}

func (s *Service) AdminUpdate(ctx context.Context, id string, in AdminUpdate) (model.Appointment, error) {
	if err := s.check(in); err != nil {
		return model.Appointment{}, err
	}
	if in.Status != nil && !in.Status.Valid() {
		return model.Appointment{}, fmt.Errorf("%w: status: unknown status %q", ErrValidation, *in.Status)
	}
	if in.MentorID != nil && strings.TrimSpace(*in.MentorID) != "" {
		if err := s.requireMentor(ctx, strings.TrimSpace(*in.MentorID)); err != nil {
			return model.Appointment{}, err
		}
	}
	a, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return model.Appointment{}, err
	}
	prevStatus := a.Status
	if in.Status != nil {
		a.Status = *in.Status
	}
	if in.Date != nil && !in.Date.IsZero() {
		a.Date = *in.Date
	}
	if in.Details != nil {
		a.Details = strings.TrimSpace(*in.Details)
	}
	if in.MentorID != nil {
		a.MentorID = strings.TrimSpace(*in.MentorID)
	}
	updated, err := s.store.UpdateAppointment(ctx, a)
	if err != nil {
		return model.Appointment{}, err
	}
	if updated.Status != prevStatus {
		s.publish(ctx, events.TypeAppointmentStatusChanged, updated)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteAppointment(ctx, id)
}

func (s *Service) MentorAppointments(ctx context.Context, mentorID string) ([]View, error) {
	list, err := s.store.ListAppointmentsByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, list)
}

func (s *Service) Mentors(ctx context.Context) ([]MentorSummary, error) {
	mentors, err := s.store.ListUsersByRole(ctx, model.RoleMentor)
	if err != nil {
		return nil, err
	}
	all, err := s.store.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(mentors))
	for _, a := range all {
		if a.MentorID != "" {
			counts[a.MentorID]++
		}
	}
	out := make([]MentorSummary, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, MentorSummary{ID: m.ID, Name: m.Name, Email: m.Email, AppointmentsCount: counts[m.ID]})
	}
	return out, nil
}

// enrich resolves names with one read per catalog table.
func (s *Service) enrich(ctx context.Context, list []model.Appointment) ([]View, error) {
	out := make([]View, 0, len(list))
	if len(list) == 0 {
		return out, nil
	}
	programs, err := s.store.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	types, err := s.store.ListAppointmentTypes(ctx)
	if err != nil {
		return nil, err
	}
	mentors, err := s.store.ListUsersByRole(ctx, model.RoleMentor)
	if err != nil {
		return nil, err
	}

	programNames := make(map[string]string, len(programs))
	for _, p := range programs {
		programNames[p.ID] = p.Name
	}
	typeByID := make(map[string]model.AppointmentType, len(types))
	for _, t := range types {
		typeByID[t.ID] = t
	}
	mentorNames := make(map[string]string, len(mentors))
	for _, m := range mentors {
		mentorNames[m.ID] = m.Name
	}

	for _, a := range list {
		t := typeByID[a.AppointmentTypeID]
		out = append(out, View{
			Appointment:     a,
			ProgramName:     programNames[a.ProgramID],
			TypeName:        t.Name,
			DurationMinutes: t.DurationMinutes,
			MentorName:      mentorNames[a.MentorID],
		})
	}
	return out, nil
}

func (s *Service) publish(ctx context.Context, eventType string, a model.Appointment) {
	e, err := events.New(eventType, a.ID, events.AppointmentChanged{
		AppointmentID: a.ID,
		Status:        string(a.Status),
		MentorID:      a.MentorID,
		Date:          a.Date,
		UserEmail:     a.UserEmail,
	}, s.now())
	if err == nil {
		err = s.publisher.Publish(ctx, e)
	}
	if err != nil {
		s.logger.Warn("appointment event not published", "appointment_id", a.ID, "event_type", eventType, "err", err)
	}
}
