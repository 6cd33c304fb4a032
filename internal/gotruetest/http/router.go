package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/supaflow/supabase-auth-go/internal/gotruetest/service"
	"github.com/supaflow/supabase-auth-go/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux *http.ServeMux

	anonKey        string
	serviceRoleKey string
	logger         *slog.Logger
	handler        http.Handler

	Users  *service.UserService
	Tokens *service.TokenService
}

func NewRouter(
	anonKey, serviceRoleKey string,
	users *service.UserService,
	tokens *service.TokenService,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:            http.NewServeMux(),
		anonKey:        anonKey,
		serviceRoleKey: serviceRoleKey,
		logger:         logger,
		Users:          users,
		Tokens:         tokens,
	}
}

func (r *Router) ApplyRoutes() {
	r.Mux.HandleFunc("POST /auth/v1/signup", r.handleSignup)
	r.Mux.HandleFunc("POST /auth/v1/token", r.handleToken)
	r.Mux.HandleFunc("GET /auth/v1/user", r.handleUserInfo)
	r.Mux.HandleFunc("POST /auth/v1/logout", r.handleLogout)
	r.Mux.HandleFunc("DELETE /auth/v1/admin/users/{id}", r.handleAdminDeleteUser)
	r.Mux.HandleFunc("GET /rest/v1/users", r.handleUsersTable)

	r.handler = slogx.HTTPMiddleware(r.logger)(r.Mux)
}

// ServeHTTP implements http.Handler for Router and applies the logging
// middleware. ApplyRoutes must have been called first.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// checkAPIKey rejects requests that do not carry a known apikey header.
// Returns false after writing the error response.
func (r *Router) checkAPIKey(w http.ResponseWriter, req *http.Request) bool {
	key := req.Header.Get("apikey")
	if key != r.anonKey && key != r.serviceRoleKey {
		writeAuthError(w, http.StatusUnauthorized, "No API key found in request")
		return false
	}
	return true
}

// bearerToken extracts the bearer credential from the Authorization header.
func bearerToken(req *http.Request) string {
	auth := req.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimPrefix(auth, prefix)
}
