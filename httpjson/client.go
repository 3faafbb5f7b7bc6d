// Package httpjson is a small HTTP client that moves request and response
// bodies through a jsonmap Context, so wire naming, date patterns and
// registered adapters apply to HTTP traffic the same way they do to files.
package httpjson

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jm "github.com/kyantra/jsonmap"
)

// Auth applies authentication to outgoing requests.
type Auth interface {
	Apply(req *http.Request)
}

// BasicAuth implements HTTP basic authentication.
type BasicAuth struct {
	Username string
	Password string
}

func (b BasicAuth) Apply(req *http.Request) {
	req.SetBasicAuth(b.Username, b.Password)
}

// BearerAuth implements bearer token authentication.
type BearerAuth struct {
	Token string
}

func (b BearerAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+b.Token)
}

// Logger is the optional logging hook. A nil logger disables logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Client wraps http.Client with a conversion context and registry of
// endpoints rooted at BaseURL.
type Client struct {
	http.Client
	BaseURL      string
	Context      *jm.Context
	Auth         Auth
	Logger       Logger
	MaxAttempts  int           // 0 means no retries
	RetryBackoff time.Duration // initial backoff, doubled per attempt
}

// StatusError reports a non-2xx response. Body carries up to the first 4 KiB
// of the response for diagnostics.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("httpjson: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Get fetches url relative to BaseURL and decodes the response body into a T.
func Get[T any](ctx context.Context, c *Client, url string) (T, error) {
	return roundTrip[T](ctx, c, http.MethodGet, url, nil)
}

// Post encodes body with the client's context and decodes the response into a
// T. A nil body sends no payload.
func Post[T any](ctx context.Context, c *Client, url string, body any) (T, error) {
	return roundTrip[T](ctx, c, http.MethodPost, url, body)
}

// Put is Post with the PUT method.
func Put[T any](ctx context.Context, c *Client, url string, body any) (T, error) {
	return roundTrip[T](ctx, c, http.MethodPut, url, body)
}

// Delete issues a DELETE and decodes any response body into a T.
func Delete[T any](ctx context.Context, c *Client, url string) (T, error) {
	return roundTrip[T](ctx, c, http.MethodDelete, url, nil)
}

func roundTrip[T any](ctx context.Context, c *Client, method, url string, body any) (T, error) {
	var zero T
	cc := c.conversionContext()

	var payload io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := jm.EncodeTo(cc, body, &buf); err != nil {
			return zero, err
		}
		payload = &buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+url, payload)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Accept", jm.ContentType)
	if body != nil {
		req.Header.Set("Content-Type", jm.ContentType)
	}
	if c.Auth != nil {
		c.Auth.Apply(req)
	}

	resp, err := c.doWithRetry(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return zero, &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}
	return jm.DecodeFrom[T](cc, resp.Body)
}

func (c *Client) conversionContext() *jm.Context {
	if c.Context != nil {
		return c.Context
	}
	return jm.Default()
}

// doWithRetry retries transport errors and retryable statuses with
// exponential backoff, honoring request context cancellation.
func (c *Client) doWithRetry(req *http.Request) (*http.Response, error) {
	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := c.RetryBackoff
	if backoff <= 0 {
		backoff = 250 * time.Millisecond
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		attemptReq := req
		if attempt > 1 && req.GetBody != nil {
			// The previous attempt drained the body; rewind for the resend.
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			attemptReq = req.Clone(req.Context())
			attemptReq.Body = body
		}
		resp, err := c.Client.Do(attemptReq)
		if err == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = &StatusError{StatusCode: resp.StatusCode}
			resp.Body.Close()
		}
		if attempt == attempts {
			break
		}
		if c.Logger != nil {
			c.Logger.Warn("retrying request",
				"method", req.Method, "url", req.URL.String(),
				"attempt", attempt, "error", lastErr)
		}
		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, lastErr
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
