package http

import (
	"net/http"
	"time"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/domain"
	"github.com/supaflow/supabase-auth-go/pkg/httpx"
)

// apiUser is the wire form of a user, matching the service's JSON contract.
type apiUser struct {
	ID           string         `json:"id"`
	Aud          string         `json:"aud,omitempty"`
	Role         string         `json:"role,omitempty"`
	Email        *string        `json:"email,omitempty"`
	Phone        *string        `json:"phone,omitempty"`
	LastSignInAt *time.Time     `json:"last_sign_in_at,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
	Factors      []apiFactor    `json:"factors,omitempty"`
	BannedUntil  *time.Time     `json:"banned_until,omitempty"`
	CreatedAt    *time.Time     `json:"created_at,omitempty"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
	DeletedAt    *time.Time     `json:"deleted_at,omitempty"`
}

type apiFactor struct {
	ID           string `json:"id"`
	FactorType   string `json:"factor_type"`
	FriendlyName string `json:"friendly_name,omitempty"`
	Status       string `json:"status"`
}

type tokenResponse struct {
	AccessToken  string  `json:"access_token"`
	TokenType    string  `json:"token_type"`
	ExpiresIn    int64   `json:"expires_in"`
	ExpiresAt    int64   `json:"expires_at"`
	RefreshToken string  `json:"refresh_token"`
	User         apiUser `json:"user"`
}

func mapUser(u domain.User, factors []domain.MFAFactor) apiUser {
	createdAt := u.CreatedAt
	updatedAt := u.UpdatedAt
	out := apiUser{
		ID:           u.ID,
		Aud:          u.Aud,
		Role:         u.Role,
		Email:        u.Email,
		Phone:        u.Phone,
		LastSignInAt: u.LastSignInAt,
		UserMetadata: u.Metadata,
		BannedUntil:  u.BannedUntil,
		CreatedAt:    &createdAt,
		UpdatedAt:    &updatedAt,
		DeletedAt:    u.DeletedAt,
	}
	for _, f := range factors {
		out.Factors = append(out.Factors, apiFactor{
			ID:           f.ID,
			FactorType:   f.FactorType,
			FriendlyName: f.FriendlyName,
			Status:       f.Status,
		})
	}
	return out
}

func mapTokens(pair domain.TokenPair, user apiUser) tokenResponse {
	return tokenResponse{
		AccessToken:  pair.AccessToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		ExpiresAt:    pair.ExpiresAt,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}
}

// writeAuthError writes an error in the auth endpoints' {code, msg} form.
func writeAuthError(w http.ResponseWriter, status int, msg string) {
	httpx.WriteJSON(w, status, map[string]any{
		"code": status,
		"msg":  msg,
	})
}

// writeGrantError writes an error in the token endpoint's OAuth2 form.
func writeGrantError(w http.ResponseWriter, status int, code, description string) {
	httpx.WriteJSON(w, status, map[string]any{
		"error":             code,
		"error_description": description,
	})
}
