package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/md-rashed-zaman/mentorconnect/libs/httpx"
)

// parseDate accepts YYYY-MM-DD in the service location, or an RFC 3339 timestamp.
func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if d, err := time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
		return d, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}

func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if strings.TrimSpace(raw) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "date parameter is required")
		return time.Time{}, false
	}
	d, ok := parseDate(raw, h.Resolver.Location())
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

func (h *Handler) AvailableTimes(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	times, err := h.Resolver.AvailableAppointmentTimes(r.Context(), date)
	if err != nil {
		h.Logger.Error("available times failed", "request_id", httpx.RequestIDFromContext(r.Context()), "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "availability unavailable")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, times)
}

func (h *Handler) AvailableMentorSlots(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	slots, err := h.Resolver.MentorTimeSlots(r.Context(), date)
	if err != nil {
		h.Logger.Error("mentor slots failed", "request_id", httpx.RequestIDFromContext(r.Context()), "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, "availability unavailable")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, slots)
}

func (h *Handler) ListAllMentorAvailability(w http.ResponseWriter, r *http.Request) {
	list, err := h.Rules.ListMentorAvailability(r.Context(), "")
	if err != nil {
		h.writeServiceError(w, r, err, "failed to fetch mentor availability")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAvailabilityList(list))
}
