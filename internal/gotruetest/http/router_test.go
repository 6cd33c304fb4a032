package http_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gotruehttp "github.com/supaflow/supabase-auth-go/internal/gotruetest/http"
	"github.com/supaflow/supabase-auth-go/internal/gotruetest/service"
	"github.com/supaflow/supabase-auth-go/internal/gotruetest/store/sqlite"

	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.DiscardHandler)
	users := &service.UserService{Store: st, Logger: logger}
	tokens := &service.TokenService{
		Store:     st,
		Secret:    []byte("router-test-secret"),
		Issuer:    "test",
		AccessTTL: time.Hour,
		Logger:    logger,
	}

	router := gotruehttp.NewRouter("anon-key", "service-role-key", users, tokens, logger)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_RejectsUnknownAPIKey(t *testing.T) {
	t.Parallel()
	srv := newTestRouter(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/auth/v1/signup",
		strings.NewReader(`{"email": "a@b.co", "password": "p"}`))
	require.NoError(t, err)
	req.Header.Set("apikey", "not-a-key")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RejectsUnsupportedGrantType(t *testing.T) {
	t.Parallel()
	srv := newTestRouter(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/auth/v1/token?grant_type=magic_link",
		strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("apikey", "anon-key")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "unsupported_grant_type")
}

func TestRouter_AdminRequiresServiceRole(t *testing.T) {
	t.Parallel()
	srv := newTestRouter(t)

	req, err := http.NewRequest(http.MethodDelete,
		srv.URL+"/auth/v1/admin/users/123e4567-e89b-12d3-a456-426614174000", nil)
	require.NoError(t, err)
	req.Header.Set("apikey", "anon-key")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
