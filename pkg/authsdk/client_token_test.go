package authsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/supaflow/supabase-auth-go/pkg/authsdk"
)

func TestRefreshToken_WireShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/v1/token", r.URL.Path)
		require.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		require.Equal(t, "anon-key", r.Header.Get("apiKey"))
		require.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "refresh-old", body["refresh_token"])

		_, _ = w.Write([]byte(`{
			"access_token": "access-new",
			"token_type": "bearer",
			"expires_in": 3600,
			"refresh_token": "refresh-new"
		}`))
	}))
	defer srv.Close()

	client := newServerClient(t, srv.URL, "")
	tokens, err := client.RefreshToken(context.Background(), "refresh-old")
	require.NoError(t, err)
	require.Equal(t, "access-new", tokens.AccessToken)
	require.Equal(t, "refresh-new", tokens.RefreshToken)
}

func TestRefreshToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := newOfflineClient(t, "")
	_, err := client.RefreshToken(context.Background(), "")
	require.ErrorIs(t, err, authsdk.ErrInvalidParameters)
}

func TestRefreshToken_RevokedToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid_grant", "error_description": "Invalid Refresh Token: Already Used"}`))
	}))
	defer srv.Close()

	client := newServerClient(t, srv.URL, "")
	_, err := client.RefreshToken(context.Background(), "refresh-revoked")
	require.ErrorIs(t, err, authsdk.ErrInvalidParameters)
}

func TestRefreshToken_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newServerClient(t, srv.URL, "")
	_, err := client.RefreshToken(context.Background(), "refresh-old")
	require.ErrorIs(t, err, authsdk.ErrHTTP)
}
