package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/service"
	"github.com/supaflow/supabase-auth-go/pkg/httpx"
	"github.com/supaflow/supabase-auth-go/pkg/slogx"
)

type passwordGrantRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type refreshGrantRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *Router) handleToken(w http.ResponseWriter, req *http.Request) {
	if !r.checkAPIKey(w, req) {
		return
	}

	switch req.URL.Query().Get("grant_type") {
	case "password":
		r.handlePasswordGrant(w, req)
	case "refresh_token":
		r.handleRefreshGrant(w, req)
	default:
		writeGrantError(w, http.StatusBadRequest,
			"unsupported_grant_type", "Unsupported grant_type")
	}
}

func (r *Router) handlePasswordGrant(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	log := slogx.FromContext(ctx)

	var body passwordGrantRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeGrantError(w, http.StatusBadRequest, "invalid_request", "Could not read grant params")
		return
	}

	user, err := r.Users.Authenticate(ctx, body.Email, body.Phone, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials),
			errors.Is(err, service.ErrMissingIdentifier):
			writeGrantError(w, http.StatusUnauthorized, "invalid_grant", "Invalid login credentials")
		default:
			log.Error("password grant failed", "err", err)
			writeGrantError(w, http.StatusInternalServerError, "server_error", "Internal error")
		}
		return
	}

	pair, err := r.Tokens.IssuePair(ctx, user)
	if err != nil {
		log.Error("issue tokens", "user_id", user.ID, "err", err)
		writeGrantError(w, http.StatusInternalServerError, "server_error", "Error issuing tokens")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, mapTokens(pair, mapUser(user, nil)))
}

func (r *Router) handleRefreshGrant(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	log := slogx.FromContext(ctx)

	var body refreshGrantRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		writeGrantError(w, http.StatusBadRequest, "invalid_request", "Could not read grant params")
		return
	}

	pair, user, err := r.Tokens.RefreshGrant(ctx, body.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			writeGrantError(w, http.StatusBadRequest, "invalid_grant", "Invalid Refresh Token")
			return
		}
		log.Error("refresh grant failed", "err", err)
		writeGrantError(w, http.StatusInternalServerError, "server_error", "Internal error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, mapTokens(pair, mapUser(user, nil)))
}
