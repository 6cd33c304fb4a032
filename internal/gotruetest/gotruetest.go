// Package gotruetest runs a small GoTrue-compatible auth service in
// process, backed by an in-memory sqlite database. It exists so the SDK's
// tests can exercise full request/response cycles without a real Supabase
// project.
package gotruetest

import (
	"log/slog"
	"net/http/httptest"
	"time"

	gotruehttp "github.com/supaflow/supabase-auth-go/internal/gotruetest/http"
	"github.com/supaflow/supabase-auth-go/internal/gotruetest/service"
	"github.com/supaflow/supabase-auth-go/internal/gotruetest/store/sqlite"
)

type Config struct {
	AnonKey        string
	ServiceRoleKey string
	JWTSecret      string
	Issuer         string
	AccessTTL      time.Duration
	Logger         *slog.Logger
}

// Server is a running in-process auth service.
type Server struct {
	// URL is the base URL clients should be built against.
	URL string

	// Users and Tokens allow tests to set up state directly, bypassing
	// the HTTP surface.
	Users  *service.UserService
	Tokens *service.TokenService

	httpServer *httptest.Server
	store      *sqlite.Store
}

// Start brings up the service on an ephemeral port. Callers must Close it.
func Start(cfg Config) (*Server, error) {
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "gotruetest"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "gotruetest-secret"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	st, err := sqlite.NewStore(":memory:")
	if err != nil {
		return nil, err
	}
	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, err
	}

	users := &service.UserService{Store: st, Logger: cfg.Logger}
	tokens := &service.TokenService{
		Store:     st,
		Secret:    []byte(cfg.JWTSecret),
		Issuer:    cfg.Issuer,
		AccessTTL: cfg.AccessTTL,
		Logger:    cfg.Logger,
	}

	router := gotruehttp.NewRouter(cfg.AnonKey, cfg.ServiceRoleKey, users, tokens, cfg.Logger)
	router.ApplyRoutes()

	httpServer := httptest.NewServer(router)

	return &Server{
		URL:        httpServer.URL,
		Users:      users,
		Tokens:     tokens,
		httpServer: httpServer,
		store:      st,
	}, nil
}

// Close shuts down the HTTP listener and the database.
func (s *Server) Close() {
	s.httpServer.Close()
	_ = s.store.Close()
}
