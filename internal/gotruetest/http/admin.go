package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/service"
	"github.com/supaflow/supabase-auth-go/pkg/httpx"
	"github.com/supaflow/supabase-auth-go/pkg/slogx"

	"github.com/google/uuid"
)

type adminDeleteRequest struct {
	ShouldSoftDelete bool `json:"should_soft_delete"`
}

func (r *Router) handleAdminDeleteUser(w http.ResponseWriter, req *http.Request) {
	if !r.checkAPIKey(w, req) {
		return
	}
	ctx := req.Context()
	log := slogx.FromContext(ctx)

	// Admin endpoints require the service role credential, not just any
	// known apikey.
	if req.Header.Get("apikey") != r.serviceRoleKey || r.serviceRoleKey == "" {
		writeAuthError(w, http.StatusForbidden, "User not allowed")
		return
	}

	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		writeAuthError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var body adminDeleteRequest
	if req.Body != nil {
		// An absent or empty body means a hard delete.
		_ = json.NewDecoder(req.Body).Decode(&body)
	}

	if err := r.Users.DeleteUser(ctx, id.String(), body.ShouldSoftDelete); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeAuthError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error("delete user failed", "user_id", id.String(), "err", err)
		writeAuthError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{})
}
