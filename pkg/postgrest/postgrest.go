// Package postgrest is a minimal client for PostgREST-style table endpoints.
//
// It covers only what reading from an exposed table requires: a schema
// profile, column selection, equality filters, and per-request bearer auth.
// Responses are returned raw so callers own status classification and
// decoding.
package postgrest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client issues read queries against a PostgREST endpoint.
type Client struct {
	baseURL    string
	schema     string
	headers    http.Header
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithSchema selects a Postgres schema other than the endpoint default.
// It is sent as the Accept-Profile header on every query.
func WithSchema(schema string) Option {
	return func(c *Client) { c.schema = schema }
}

// WithHeader adds a header to every query, e.g. an apikey.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Set(key, value) }
}

// WithHTTPClient sets a custom HTTP client for queries.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the PostgREST endpoint at baseURL
// (e.g. "https://project.supabase.co/rest/v1").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		headers: make(http.Header),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// From starts a query against the named table.
func (c *Client) From(table string) *QueryBuilder {
	return &QueryBuilder{
		client: c,
		table:  table,
		params: make(url.Values),
	}
}

// QueryBuilder accumulates filters for a single table read.
type QueryBuilder struct {
	client *Client
	table  string
	params url.Values
	bearer string
}

// Select sets the columns to return. PostgREST treats "*" as all columns.
func (q *QueryBuilder) Select(columns string) *QueryBuilder {
	q.params.Set("select", columns)
	return q
}

// Eq adds an equality filter on column.
func (q *QueryBuilder) Eq(column, value string) *QueryBuilder {
	q.params.Set(column, "eq."+value)
	return q
}

// Auth sets the bearer token for this query.
func (q *QueryBuilder) Auth(token string) *QueryBuilder {
	q.bearer = token
	return q
}

// Execute sends the query. The caller owns the response body.
func (q *QueryBuilder) Execute(ctx context.Context) (*http.Response, error) {
	u := q.client.baseURL + "/" + q.table
	if len(q.params) > 0 {
		u += "?" + q.params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range q.client.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if q.client.schema != "" {
		req.Header.Set("Accept-Profile", q.client.schema)
	}
	if q.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+q.bearer)
	}

	resp, err := q.client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}
