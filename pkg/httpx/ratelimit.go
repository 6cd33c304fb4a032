package httpx

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters for outbound requests.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// DefaultClientLimit is a conservative default for talking to hosted auth
// services, which rate limit token endpoints aggressively.
var DefaultClientLimit = RateLimitConfig{
	RequestsPerWindow: 30,
	Window:            time.Minute,
	Burst:             10,
}

// RateLimitedTransport is an http.RoundTripper that throttles outbound
// requests before delegating to an underlying transport. It blocks until the
// limiter permits the request or the request context is cancelled.
type RateLimitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// NewRateLimitedTransport wraps base with an outbound rate limiter.
// A nil base uses http.DefaultTransport.
func NewRateLimitedTransport(base http.RoundTripper, cfg RateLimitConfig) *RateLimitedTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	limit := rate.Every(cfg.Window / time.Duration(cfg.RequestsPerWindow))
	return &RateLimitedTransport{
		base:    base,
		limiter: rate.NewLimiter(limit, cfg.Burst),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return t.base.RoundTrip(req)
}
