package handlers

import (
	"errors"
	"net/http"

	"github.com/md-rashed-zaman/mentorconnect/libs/auth"
	"github.com/md-rashed-zaman/mentorconnect/libs/httpx"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/identity"
	"github.com/md-rashed-zaman/mentorconnect/services/mentorship-service/internal/model"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	role := model.Role(req.Role)
	if role != model.RoleAdmin && role != model.RoleMentor {
		httpx.WriteError(w, http.StatusBadRequest, "role must be admin or mentor")
		return
	}
	sess, err := h.Identity.Login(r.Context(), req.Email, req.Password, role)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.writeServiceError(w, r, err, "login failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"token":      sess.Token,
		"expires_at": formatTime(sess.ExpiresAt),
		"user": map[string]any{
			"id":    sess.User.ID,
			"email": sess.User.Email,
			"name":  sess.User.Name,
			"role":  string(sess.User.Role),
		},
	})
}

// Logout is a no-op: tokens are stateless and the client discards them.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"id":    claims.UserID(),
		"email": claims.Email,
		"name":  claims.Name,
		"role":  claims.Role,
	})
}
