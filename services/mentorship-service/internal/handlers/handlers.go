// Package handlers exposes the mentorship service over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/md-rashed-zaman/mentorconnect/libs/auth"
	"github.com/md-rashed-zaman/mentorconnect/libs/httpx"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/booking"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/identity"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/rules"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/scheduling"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/storage"
)

type Deps struct {
	Logger   *slog.Logger
	Resolver *scheduling.Resolver
	Rules    *rules.Service
	Booking  *booking.Service
	Identity *identity.Service
	Catalog  storage.CatalogRepository
	Signer   *auth.Signer
	// WriteLimit guards public writes. Nil disables it.
	WriteLimit httpx.Middleware
}

type Handler struct {
	Deps
}

func New(d Deps) *Handler {
	if d.WriteLimit == nil {
		d.WriteLimit = func(next http.Handler) http.Handler { return next }
	}
	return &Handler{Deps: d}
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	public := func(pattern string, fn http.HandlerFunc) { mux.Handle(pattern, fn) }
	limited := func(pattern string, fn http.HandlerFunc) { mux.Handle(pattern, h.WriteLimit(fn)) }
	authed := func(pattern string, fn http.HandlerFunc) { mux.Handle(pattern, auth.RequireAuth(h.Signer, fn)) }
	admin := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, auth.RequireAuth(h.Signer, auth.RequireRole(fn, string(model.RoleAdmin))))
	}
	mentor := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, auth.RequireAuth(h.Signer, auth.RequireRole(fn, string(model.RoleMentor))))
	}

	public("GET /api/v1/programs", h.ListPrograms)
	public("GET /api/v1/appointment-types", h.ListAppointmentTypes)
	public("GET /api/v1/available-times", h.AvailableTimes)
	public("GET /api/v1/available-mentor-slots", h.AvailableMentorSlots)
	public("GET /api/v1/mentor-availability", h.ListAllMentorAvailability)

	limited("POST /api/v1/appointments", h.CreateAppointment)
	limited("POST /api/v1/appointments/search", h.SearchAppointments)
	limited("POST /api/v1/appointments/{id}/cancel", h.CancelAppointment)
	limited("PATCH /api/v1/appointments/{id}", h.UpdateOwnAppointment)

	limited("POST /api/v1/auth/login", h.Login)
	public("POST /api/v1/auth/logout", h.Logout)
	authed("GET /api/v1/auth/me", h.Me)

	admin("GET /api/v1/admin/appointment-schedules", h.ListSchedules)
	admin("POST /api/v1/admin/appointment-schedules", h.CreateSchedule)
	admin("GET /api/v1/admin/appointment-schedules/{id}", h.GetSchedule)
	admin("PATCH /api/v1/admin/appointment-schedules/{id}", h.UpdateSchedule)
	admin("DELETE /api/v1/admin/appointment-schedules/{id}", h.DeleteSchedule)

	admin("POST /api/v1/admin/mentor-availability", h.CreateMentorAvailability)
	admin("GET /api/v1/admin/mentor-availability/{mentorId}", h.ListMentorAvailability)
	admin("PATCH /api/v1/admin/mentor-availability/rules/{id}", h.UpdateMentorAvailability)
	admin("DELETE /api/v1/admin/mentor-availability/rules/{id}", h.DeleteMentorAvailability)

	admin("GET /api/v1/admin/appointments", h.AdminListAppointments)
	admin("PATCH /api/v1/admin/appointments/{id}", h.AdminUpdateAppointment)
	admin("PATCH /api/v1/admin/appointments/{id}/assign", h.AssignAppointment)
	admin("DELETE /api/v1/admin/appointments/{id}", h.AdminDeleteAppointment)
	admin("GET /api/v1/admin/mentors", h.ListMentors)

	mentor("GET /api/v1/mentor/appointments", h.MentorAppointments)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

// writeServiceError maps domain errors to status codes. Unknown errors are logged and reported as fallback.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, rules.ErrValidation), errors.Is(err, booking.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrNotPending):
		httpx.WriteError(w, http.StatusBadRequest, "only pending appointments can be changed")
	case errors.Is(err, booking.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "you are not allowed to change this appointment")
	case storage.IsNotFound(err):
		httpx.WriteError(w, http.StatusNotFound, "not found")
	default:
		h.Logger.Error(fallback,
			"request_id", httpx.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"err", err,
		)
		httpx.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
