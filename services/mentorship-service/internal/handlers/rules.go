package handlers

import (
	"net/http"

	"github.com/md-rashed-zaman/mentorconnect/libs/httpx"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/rules"
)

type ruleRequest struct {
	MentorID  *string `json:"mentor_id"`
	DayOfWeek *int    `json:"day_of_week"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	IsActive  *bool   `json:"is_active"`
}

func (q ruleRequest) schedule() rules.ScheduleInput {
	return rules.ScheduleInput{DayOfWeek: q.DayOfWeek, StartTime: q.StartTime, EndTime: q.EndTime, IsActive: q.IsActive}
}

func (q ruleRequest) availability() rules.AvailabilityInput {
	return rules.AvailabilityInput{MentorID: q.MentorID, DayOfWeek: q.DayOfWeek, StartTime: q.StartTime, EndTime: q.EndTime, IsActive: q.IsActive}
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	list, err := h.Rules.ListSchedules(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to fetch appointment schedules")
		return
	}
	out := make([]scheduleJSON, 0, len(list))
	for _, s := range list {
		out = append(out, toScheduleJSON(s))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	s, err := h.Rules.GetSchedule(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to fetch appointment schedule")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toScheduleJSON(s))
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req ruleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.Rules.CreateSchedule(r.Context(), req.schedule())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create appointment schedule")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toScheduleJSON(s))
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req ruleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s, err := h.Rules.UpdateSchedule(r.Context(), r.PathValue("id"), req.schedule())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to update appointment schedule")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toScheduleJSON(s))
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.Rules.DeleteSchedule(r.Context(), r.PathValue("id")); err != nil {
		h.writeServiceError(w, r, err, "failed to delete appointment schedule")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateMentorAvailability(w http.ResponseWriter, r *http.Request) {
	var req ruleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.Rules.CreateMentorAvailability(r.Context(), req.availability())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create mentor availability")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAvailabilityJSON(a))
}

func (h *Handler) ListMentorAvailability(w http.ResponseWriter, r *http.Request) {
	list, err := h.Rules.ListMentorAvailability(r.Context(), r.PathValue("mentorId"))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to fetch mentor availability")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAvailabilityList(list))
}

func (h *Handler) UpdateMentorAvailability(w http.ResponseWriter, r *http.Request) {
	var req ruleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.Rules.UpdateMentorAvailability(r.Context(), r.PathValue("id"), req.availability())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to update mentor availability")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAvailabilityJSON(a))
}

func (h *Handler) DeleteMentorAvailability(w http.ResponseWriter, r *http.Request) {
	if err := h.Rules.DeleteMentorAvailability(r.Context(), r.PathValue("id")); err != nil {
		h.writeServiceError(w, r, err, "failed to delete mentor availability")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
