// Package api is the HTTP transport to the sadaqah service: one typed
// method per remote endpoint, with timeout, retry and error classification.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"sadaqah_go/internal/domain"
	"sadaqah_go/internal/fault"
	"sadaqah_go/internal/infra"
)

const (
	// HeaderAPIKey carries the API key on every authenticated request.
	HeaderAPIKey = "x-api-key"

	healthPath = "/api/health"

	unknownErrorMessage = "Unknown error occurred"
)

// Limiter paces requests. *infra.RateLimiter satisfies it.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Client talks to the remote service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    Limiter
	retry      RetryPolicy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLimiter sets the request pacer.
func WithLimiter(l Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// NewClient creates a client for cfg.API.Host using cfg.API.Key.
func NewClient(cfg *infra.Config, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.API.Host,
		apiKey:  cfg.API.Key,
		httpClient: &http.Client{
			Timeout: infra.RequestTimeout,
		},
		retry: DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends one logical request, retrying on timeout, and decodes a 2xx body into out.
// Every returned error is a *fault.Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out domain.Validator) error {
	public := path == healthPath
	if !public && c.apiKey == "" {
		return fault.ErrAPIKeyMissing
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return &fault.Error{Category: fault.CategoryUnknown, Message: fault.MsgUnknown, Cause: err}
		}
	}

	return c.retry.Do(ctx, method+" "+path, func(ctx context.Context) error {
		return c.attempt(ctx, method, u, payload, public, out)
	})
}

func (c *Client) attempt(ctx context.Context, method, u string, payload []byte, public bool, out domain.Validator) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fault.Classify(err)
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fault.Classify(err)
	}
	c.setHeaders(req, public)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fault.Classify(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fault.Classify(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fault.Classify(statusError(resp, raw))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return malformed(resp.StatusCode, fmt.Errorf("%w: %v", domain.ErrMalformed, err))
	}
	if err := out.Validate(); err != nil {
		return malformed(resp.StatusCode, err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, public bool) {
	req.Header.Set("Content-Type", "application/json")
	if public {
		return
	}
	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set("X-Content-Type-Options", "nosniff")
	req.Header.Set("X-Frame-Options", "DENY")
	req.Header.Set("Accept", "application/json")
}

// statusError builds the raw failure for a non-2xx response from its error body.
func statusError(resp *http.Response, raw []byte) *fault.StatusError {
	var er domain.ErrorResponse
	if err := json.Unmarshal(raw, &er); err != nil {
		er.Error = unknownErrorMessage
	}
	if er.Error == "" {
		er.Error = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return &fault.StatusError{StatusCode: resp.StatusCode, Message: er.Error, Code: er.Code}
}

// malformed reports a 2xx body that does not have the documented shape.
func malformed(status int, err error) *fault.Error {
	return &fault.Error{
		Category:   fault.CategoryUnknown,
		Message:    fault.MsgUnknown,
		StatusCode: status,
		Cause:      err,
	}
}
