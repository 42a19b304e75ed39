// Package client provides the HTTP client shared by the faucet and ledger
// clients.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout bounds every request unless overridden.
const DefaultTimeout = 30 * time.Second

// Client wraps resty.Client with the CLI's defaults.
type Client struct {
	rc *resty.Client
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout sets the request timeout. Zero disables it, which streaming
// consumers require.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.rc.SetTimeout(timeout)
	}
}

// WithHeader adds a custom header to all requests.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.rc.SetHeader(key, value)
	}
}

// New creates a new Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		rc: resty.New().SetTimeout(DefaultTimeout),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HTTPClient returns the underlying *http.Client, carrying the configured
// timeout and transport.
func (c *Client) HTTPClient() *http.Client {
	return c.rc.GetClient()
}

// Get performs a GET request with the given query parameters.
func (c *Client) Get(ctx context.Context, url string, query map[string]string) (*resty.Response, error) {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	return resp, nil
}

// RequestResult contains timing and response information.
type RequestResult struct {
	Response  *resty.Response
	Latency   time.Duration
	LatencyMs int64
}

// TimedGet performs a GET request and records the latency.
func (c *Client) TimedGet(ctx context.Context, url string, query map[string]string) (*RequestResult, error) {
	start := time.Now()
	resp, err := c.Get(ctx, url, query)
	latency := time.Since(start)

	if err != nil {
		return nil, err
	}

	return &RequestResult{
		Response:  resp,
		Latency:   latency,
		LatencyMs: latency.Milliseconds(),
	}, nil
}

// ParseRetryAfter extracts the Retry-After header value as a duration.
// Returns 0 if the header is not present or invalid.
func ParseRetryAfter(resp *resty.Response) time.Duration {
	retryAfter := resp.Header().Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	// Try parsing as seconds
	var seconds int
	if _, err := fmt.Sscanf(retryAfter, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	// Try parsing as HTTP-date (RFC 7231)
	if t, err := http.ParseTime(retryAfter); err == nil {
		return time.Until(t)
	}

	return 0
}
