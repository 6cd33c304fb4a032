package authsdk

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/supaflow/supabase-auth-go/pkg/postgrest"
)

// AuthClient is a client for a Supabase-compatible auth (GoTrue) service.
// It is immutable after construction and safe to share across goroutines:
// every operation only reads shared configuration and issues an independent
// network exchange.
type AuthClient struct {
	apiURL         string
	anonKey        string
	serviceRoleKey string // empty unless admin operations are enabled
	httpClient     *http.Client
	rest           *postgrest.Client
	logger         *slog.Logger
}

// NewClient creates an auth client for the project at apiURL
// (e.g. "https://your-project.supabase.co") using the anon key.
// Returns ErrInvalidParameters if either argument is missing or the URL is
// malformed. Admin operations require a service role key; use the Builder
// for that.
func NewClient(apiURL, anonKey string) (*AuthClient, error) {
	return NewBuilder().APIURL(apiURL).AnonKey(anonKey).Build()
}

// Builder constructs an AuthClient with optional configuration.
//
//	client, err := authsdk.NewBuilder().
//		APIURL("https://your-project.supabase.co").
//		AnonKey("your-anon-key").
//		ServiceRoleKey("your-service-role-key").
//		Build()
//
// The built client is immutable; there is no way to attach a service role
// key after Build.
type Builder struct {
	apiURL         string
	anonKey        string
	serviceRoleKey string
	httpClient     *http.Client
	logger         *slog.Logger
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// APIURL sets the base URL of the auth service.
func (b *Builder) APIURL(u string) *Builder {
	b.apiURL = u
	return b
}

// AnonKey sets the anonymous key used for public operations.
func (b *Builder) AnonKey(key string) *Builder {
	b.anonKey = key
	return b
}

// ServiceRoleKey sets the privileged key that enables admin operations.
func (b *Builder) ServiceRoleKey(key string) *Builder {
	b.serviceRoleKey = key
	return b
}

// HTTPClient sets a custom HTTP client, e.g. one with a rate-limited
// transport or a different timeout. The default times out after 10 seconds.
func (b *Builder) HTTPClient(hc *http.Client) *Builder {
	b.httpClient = hc
	return b
}

// Logger sets the structured logger for the client. Defaults to
// slog.Default().
func (b *Builder) Logger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Build validates the configuration and constructs the client.
// Returns ErrInvalidParameters if the API URL or anon key is missing or the
// URL does not parse as an absolute URL.
func (b *Builder) Build() (*AuthClient, error) {
	apiURL := strings.TrimSuffix(b.apiURL, "/")
	if apiURL == "" || b.anonKey == "" {
		return nil, ErrInvalidParameters
	}
	if u, err := url.Parse(apiURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidParameters
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthClient{
		apiURL:         apiURL,
		anonKey:        b.anonKey,
		serviceRoleKey: b.serviceRoleKey,
		httpClient:     httpClient,
		logger:         logger,
		rest: postgrest.New(apiURL+"/rest/v1",
			postgrest.WithSchema("auth"),
			postgrest.WithHeader("apikey", b.anonKey),
			postgrest.WithHTTPClient(httpClient),
		),
	}, nil
}
