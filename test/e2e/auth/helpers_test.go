package auth_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/http/httputil"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/supaflow/supabase-auth-go/pkg/authsdk"

	"github.com/docker/go-connections/nat"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common helpers for end-to-end tests against a real GoTrue and PostgREST
 * stack. The containers mirror a Supabase project closely enough for the
 * SDK: GoTrue owns the auth schema in postgres, PostgREST reads it, and a
 * local reverse proxy provides the /auth/v1 and /rest/v1 gateway prefixes.
 *
 * These tests need Docker and multi-hundred-megabyte images, so they are
 * skipped in -short mode.
 */

const (
	postgresImage  = "postgres:15-alpine"
	gotrueImage    = "supabase/gotrue:v2.151.0"
	postgrestImage = "postgrest/postgrest:v12.0.2"

	jwtSecret  = "e2e-test-jwt-secret-at-least-32-chars"
	dbPassword = "postgres"
)

// signKey mints an apikey JWT for the given postgres role, the way a
// Supabase project's anon and service role keys are minted.
func signKey(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":  "supabase",
		"role": role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return signed
}

// setupStack starts postgres, GoTrue and PostgREST and returns an SDK
// client wired through a gateway proxy, plus the gateway URL and the anon
// and service keys.
func setupStack(t *testing.T) (*authsdk.AuthClient, string, string, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based e2e test in short mode")
	}
	ctx := context.Background()

	net, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = net.Remove(ctx) })

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			Networks:     []string{net.Name},
			NetworkAliases: map[string][]string{
				net.Name: {"postgres"},
			},
			Env: map[string]string{
				"POSTGRES_PASSWORD": dbPassword,
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	gotrue, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        gotrueImage,
			Networks:     []string{net.Name},
			ExposedPorts: []string{"9999/tcp"},
			Env: map[string]string{
				"GOTRUE_DB_DRIVER":              "postgres",
				"GOTRUE_DB_DATABASE_URL":        "postgres://postgres:" + dbPassword + "@postgres:5432/postgres?sslmode=disable",
				"GOTRUE_DB_NAMESPACE":           "auth",
				"GOTRUE_API_HOST":               "0.0.0.0",
				"GOTRUE_API_PORT":               "9999",
				"API_EXTERNAL_URL":              "http://localhost:9999",
				"GOTRUE_SITE_URL":               "http://localhost:3000",
				"GOTRUE_JWT_SECRET":             jwtSecret,
				"GOTRUE_JWT_EXP":                "3600",
				"GOTRUE_JWT_DEFAULT_GROUP_NAME": "authenticated",
				"GOTRUE_JWT_ADMIN_ROLES":        "service_role",
				"GOTRUE_JWT_AUD":                "authenticated",
				"GOTRUE_MAILER_AUTOCONFIRM":     "true",
				"GOTRUE_SMS_AUTOCONFIRM":        "true",
				"GOTRUE_EXTERNAL_PHONE_ENABLED": "true",
				"GOTRUE_DISABLE_SIGNUP":         "false",
				"GOTRUE_LOG_LEVEL":              "info",
			},
			WaitingFor: wait.ForHTTP("/health").
				WithPort("9999/tcp").
				WithStartupTimeout(120 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = gotrue.Terminate(ctx) })

	// GoTrue's migrations created the auth schema; grant PostgREST's roles
	// read access to it.
	grantSQL := strings.Join([]string{
		`CREATE ROLE anon NOLOGIN`,
		`CREATE ROLE service_role NOLOGIN BYPASSRLS`,
		`CREATE ROLE authenticator LOGIN PASSWORD '` + dbPassword + `'`,
		`GRANT anon, service_role TO authenticator`,
		`GRANT USAGE ON SCHEMA auth TO anon, service_role`,
		`GRANT SELECT ON auth.users TO anon, service_role`,
	}, "; ")
	code, _, err := pg.Exec(ctx, []string{
		"psql", "-U", "postgres", "-d", "postgres", "-c", grantSQL,
	})
	require.NoError(t, err)
	require.Zero(t, code, "role grants failed")

	postgrest, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgrestImage,
			Networks:     []string{net.Name},
			ExposedPorts: []string{"3000/tcp"},
			Env: map[string]string{
				"PGRST_DB_URI":       "postgres://authenticator:" + dbPassword + "@postgres:5432/postgres",
				"PGRST_DB_SCHEMAS":   "auth",
				"PGRST_DB_ANON_ROLE": "anon",
				"PGRST_JWT_SECRET":   jwtSecret,
			},
			WaitingFor: wait.ForListeningPort("3000/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = postgrest.Terminate(ctx) })

	gateway := newGateway(t, ctx, gotrue, "9999", postgrest, "3000")

	anonKey := signKey(t, "anon")
	serviceKey := signKey(t, "service_role")

	client, err := authsdk.NewBuilder().
		APIURL(gateway).
		AnonKey(anonKey).
		ServiceRoleKey(serviceKey).
		Logger(slog.New(slog.DiscardHandler)).
		Build()
	require.NoError(t, err)

	return client, gateway, anonKey, serviceKey
}

// newGateway serves the Supabase gateway surface locally: /auth/v1/* is
// proxied to GoTrue and /rest/v1/* to PostgREST, each with the prefix
// stripped.
func newGateway(
	t *testing.T,
	ctx context.Context,
	gotrue testcontainers.Container, gotruePort string,
	postgrest testcontainers.Container, postgrestPort string,
) string {
	t.Helper()

	authTarget := containerURL(t, ctx, gotrue, gotruePort)
	restTarget := containerURL(t, ctx, postgrest, postgrestPort)

	mux := http.NewServeMux()
	mux.Handle("/auth/v1/", proxyTo(authTarget, "/auth/v1"))
	mux.Handle("/rest/v1/", proxyTo(restTarget, "/rest/v1"))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func containerURL(t *testing.T, ctx context.Context, c testcontainers.Container, port string) *url.URL {
	t.Helper()

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)

	u, err := url.Parse(fmt.Sprintf("http://%s:%s", host, mapped.Port()))
	require.NoError(t, err)
	return u
}

func proxyTo(target *url.URL, prefix string) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(req *http.Request) {
		director(req)
		req.URL.Path = strings.TrimPrefix(req.URL.Path, prefix)
		if req.URL.Path == "" {
			req.URL.Path = "/"
		}
	}
	return proxy
}
