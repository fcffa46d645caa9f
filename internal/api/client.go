package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"

	"researchconnect/internal/domain"
	"researchconnect/internal/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Credentials is the session token issued after OTP confirmation. It is
// carried explicitly by the client rather than living in ambient storage.
type Credentials struct {
	Token string
}

// Set reports whether a token is present.
func (c Credentials) Set() bool { return c.Token != "" }

// Client talks to the ResearchConnect REST API. Transient failures
// (network errors, 429, 5xx) are retried with exponential backoff;
// 4xx responses are not.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	log        *logger.Logger
	maxRetries uint64
}

// Option adjusts a Client.
type Option func(*Client)

// WithTimeout sets the per-request transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRetries caps how many times a failed call is retried. Zero or
// negative keeps the default.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxRetries = uint64(n)
		}
	}
}

// WithCredentials seeds the client with an existing session token.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) { c.creds = creds }
}

// WithHTTPClient swaps the underlying HTTP client, for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient builds a client for the API at baseURL.
func NewClient(baseURL string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
		maxRetries: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetCredentials installs the session token for subsequent calls.
func (c *Client) SetCredentials(creds Credentials) { c.creds = creds }

// Credentials returns the current session token.
func (c *Client) Credentials() Credentials { return c.creds }

// StatusError is a non-success API response that is not worth retrying.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Body)
}

// do runs one API call, marshalling in (when non-nil) as the JSON body and
// decoding the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	c.log.Debug("api request", "method", method, "path", path)

	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.creds.Set() {
			req.Header.Set("Authorization", "Bearer "+c.creds.Token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.log.Warn("api request failed", "method", method, "path", path, "error", err)
			return err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			c.log.Warn("api retryable status", "method", method, "path", path, "status", resp.StatusCode)
			return &StatusError{Status: resp.StatusCode, Body: string(respBody)}
		case resp.StatusCode == http.StatusUnauthorized:
			return backoff.Permanent(domain.ErrNotAuthenticated)
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(domain.ErrNotFound)
		case resp.StatusCode >= 400:
			return backoff.Permanent(&StatusError{Status: resp.StatusCode, Body: string(respBody)})
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}
