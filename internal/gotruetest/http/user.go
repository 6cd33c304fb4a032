package http

import (
	"net/http"

	"github.com/supaflow/supabase-auth-go/pkg/httpx"
	"github.com/supaflow/supabase-auth-go/pkg/slogx"
)

func (r *Router) handleUserInfo(w http.ResponseWriter, req *http.Request) {
	if !r.checkAPIKey(w, req) {
		return
	}
	ctx := req.Context()
	log := slogx.FromContext(ctx)

	claims, err := r.Tokens.ParseAccessToken(bearerToken(req))
	if err != nil {
		writeAuthError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := r.Users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		log.Warn("failed to load user", "user_id", claims.Subject, "err", err)
		writeAuthError(w, http.StatusUnauthorized, "User not found")
		return
	}

	factors, err := r.Users.Factors(ctx, user.ID)
	if err != nil {
		log.Error("failed to load factors", "user_id", user.ID, "err", err)
		writeAuthError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, mapUser(user, factors))
}
