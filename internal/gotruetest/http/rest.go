package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/service"
	"github.com/supaflow/supabase-auth-go/pkg/httpx"
	"github.com/supaflow/supabase-auth-go/pkg/slogx"
)

// handleUsersTable serves a narrow PostgREST-shaped read of the users
// table: only equality filtering on id is supported, which is all the SDK
// issues. Results are always a JSON array.
func (r *Router) handleUsersTable(w http.ResponseWriter, req *http.Request) {
	if !r.checkAPIKey(w, req) {
		return
	}
	ctx := req.Context()
	log := slogx.FromContext(ctx)

	if req.Header.Get("Accept-Profile") != "auth" {
		httpx.WriteJSON(w, http.StatusNotFound, map[string]any{
			"message": "relation does not exist",
		})
		return
	}

	filter := req.URL.Query().Get("id")
	id, ok := strings.CutPrefix(filter, "eq.")
	if !ok {
		httpx.WriteJSON(w, http.StatusBadRequest, map[string]any{
			"message": "unsupported filter: " + filter,
		})
		return
	}

	user, err := r.Users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteJSON(w, http.StatusOK, []apiUser{})
			return
		}
		log.Error("users table query failed", "user_id", id, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"message": "internal error",
		})
		return
	}

	factors, err := r.Users.Factors(ctx, user.ID)
	if err != nil {
		log.Error("failed to load factors", "user_id", user.ID, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, map[string]any{
			"message": "internal error",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, []apiUser{mapUser(user, factors)})
}
