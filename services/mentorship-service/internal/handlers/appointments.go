package handlers

import (
	"net/http"
	"strings"

	"github.com/md-rashed-zaman/mentorconnect/libs/auth"
	"github.com/md-rashed-zaman/mentorconnect/libs/httpx"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/booking"
)

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req booking.CreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.Booking.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create appointment")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAppointmentJSON(a))
}

func (h *Handler) SearchAppointments(w http.ResponseWriter, r *http.Request) {
	var owner booking.Owner
	if !decodeJSON(w, r, &owner) {
		return
	}
	list, err := h.Booking.Search(r.Context(), owner)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to search appointments")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toViewList(list))
}

func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	var owner booking.Owner
	if !decodeJSON(w, r, &owner) {
		return
	}
	a, err := h.Booking.Cancel(r.Context(), r.PathValue("id"), owner)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to cancel appointment")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message":     "appointment cancelled",
		"appointment": toAppointmentJSON(a),
	})
}

func (h *Handler) UpdateOwnAppointment(w http.ResponseWriter, r *http.Request) {
	var in booking.OwnerUpdate
	if !decodeJSON(w, r, &in) {
		return
	}
	a, err := h.Booking.UpdateByOwner(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to update appointment")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message":     "appointment updated",
		"appointment": toAppointmentJSON(a),
	})
}

func (h *Handler) AdminListAppointments(w http.ResponseWriter, r *http.Request) {
	list, err := h.Booking.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to fetch appointments")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toViewList(list))
}

func (h *Handler) AssignAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MentorID string `json:"mentor_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.Booking.Assign(r.Context(), r.PathValue("id"), strings.TrimSpace(req.MentorID))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to assign mentor")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAppointmentJSON(a))
}

func (h *Handler) AdminUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var in booking.AdminUpdate
	if !decodeJSON(w, r, &in) {
		return
	}
	a, err := h.Booking.AdminUpdate(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to update appointment")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAppointmentJSON(a))
}

func (h *Handler) AdminDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.Booking.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeServiceError(w, r, err, "failed to delete appointment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListMentors(w http.ResponseWriter, r *http.Request) {
	mentors, err := h.Booking.Mentors(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to fetch mentors")
		return
	}
	out := make([]map[string]any, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, map[string]any{
			"id":                 m.ID,
			"name":               m.Name,
			"email":              m.Email,
			"appointments_count": m.AppointmentsCount,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) MentorAppointments(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	list, err := h.Booking.MentorAppointments(r.Context(), claims.UserID())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to fetch mentor appointments")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toViewList(list))
}
