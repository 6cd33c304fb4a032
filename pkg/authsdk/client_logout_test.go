package authsdk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/supaflow/supabase-auth-go/pkg/authsdk"
)

func TestLogout_WireShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/v1/logout", r.URL.Path)
		require.Equal(t, "anon-key", r.Header.Get("apiKey"))
		require.Equal(t, "Bearer access-123", r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newServerClient(t, srv.URL, "")
	require.NoError(t, client.Logout(context.Background(), "access-123"))
}

func TestLogout_EmptyToken(t *testing.T) {
	t.Parallel()

	client := newOfflineClient(t, "")
	err := client.Logout(context.Background(), "")
	require.ErrorIs(t, err, authsdk.ErrInvalidParameters)
}

func TestLogout_InvalidToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code": 401, "msg": "invalid JWT"}`))
	}))
	defer srv.Close()

	client := newServerClient(t, srv.URL, "")
	err := client.Logout(context.Background(), "access-bad")
	require.ErrorIs(t, err, authsdk.ErrNotAuthorized)
}
