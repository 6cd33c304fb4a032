package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/service"
	"github.com/supaflow/supabase-auth-go/pkg/httpx"
	"github.com/supaflow/supabase-auth-go/pkg/slogx"
)

type signupRequest struct {
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phone_number"`
	Phone       string         `json:"phone"`
	Password    string         `json:"password"`
	Data        map[string]any `json:"data"`
}

func (r *Router) handleSignup(w http.ResponseWriter, req *http.Request) {
	if !r.checkAPIKey(w, req) {
		return
	}
	ctx := req.Context()
	log := slogx.FromContext(ctx)

	var body signupRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeAuthError(w, http.StatusBadRequest, "Could not read signup params")
		return
	}
	// Both request dialects are accepted for the phone identifier.
	phone := body.Phone
	if phone == "" {
		phone = body.PhoneNumber
	}
	if body.Password == "" {
		writeAuthError(w, http.StatusUnprocessableEntity, "Signup requires a password")
		return
	}

	user, err := r.Users.Signup(ctx, service.SignupParams{
		Email:    body.Email,
		Phone:    phone,
		Password: body.Password,
		Metadata: body.Data,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingIdentifier):
			writeAuthError(w, http.StatusUnprocessableEntity, "Signup requires an email or phone number")
		case errors.Is(err, service.ErrUserExists):
			writeAuthError(w, http.StatusUnprocessableEntity, "User already registered")
		default:
			log.Error("signup failed", "err", err)
			writeAuthError(w, http.StatusInternalServerError, "Database error saving new user")
		}
		return
	}

	pair, err := r.Tokens.IssuePair(ctx, user)
	if err != nil {
		log.Error("issue tokens after signup", "err", err)
		writeAuthError(w, http.StatusInternalServerError, "Error issuing tokens")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, mapTokens(pair, mapUser(user, nil)))
}
