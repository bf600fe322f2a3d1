package handlers

import (
	"net/http"

	"github.com/md-rashed-zaman/mentorconnect/libs/httpx"
)

func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.Catalog.ListPrograms(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to fetch programs")
		return
	}
	out := make([]map[string]any, 0, len(programs))
	for _, p := range programs {
		out = append(out, map[string]any{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) ListAppointmentTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Catalog.ListAppointmentTypes(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to fetch appointment types")
		return
	}
	out := make([]map[string]any, 0, len(types))
	for _, t := range types {
		out = append(out, map[string]any{
			"id":               t.ID,
			"name":             t.Name,
			"duration_minutes": t.DurationMinutes,
			"description":      t.Description,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
