// Package fetch provides a small retrying HTTP client. Retries are driven by
// a caller-supplied set of retryable status codes and a deterministic
// exponential backoff schedule; the client never interprets failures beyond
// the retry/no-retry decision, classification is left to the caller.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"seoaudit/pkg/logger"
)

// maxErrBody bounds how much of an upstream error body is kept on StatusError.
const maxErrBody = 2048

// Config controls the retry behavior of a single Do call.
type Config struct {
	// MaxRetries is the number of retries after the initial attempt, so a call
	// performs at most 1+MaxRetries requests.
	MaxRetries int
	// BaseDelay is the delay before the first retry; subsequent retries double it.
	BaseDelay time.Duration
	// RetryableStatuses is the set of response status codes that trigger a retry.
	RetryableStatuses map[int]struct{}
}

// Retryable reports whether the given status code is in the retryable set.
func (c Config) Retryable(status int) bool {
	_, ok := c.RetryableStatuses[status]

	return ok
}

// Backoff computes the delay to wait before retry number attempt (1-based)
// as base * 2^(attempt-1). It is a pure function of its inputs so the
// schedule can be tested without sleeping; delays strictly increase across
// attempts.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	return base << (attempt - 1)
}

// StatusError reports that a request kept failing with a retryable status
// until the retry budget was exhausted, or that the upstream answered with a
// non-success status. It carries the final status code and a bounded slice of
// the response body as the developer-facing detail.
type StatusError struct {
	// Code is the HTTP status of the final attempt.
	Code int
	// Body is the (truncated, trimmed) response body of the final attempt.
	Body string
	// Attempts is how many requests were performed in total.
	Attempts int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d after %d attempt(s): %s", e.Code, e.Attempts, e.Body)
}

// Client issues HTTP requests with bounded exponential-backoff retries.
// Each Do call is independent; the client holds no per-call mutable state and
// is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	// sleep waits for the given duration or until the context is canceled.
	// It is replaceable in tests to avoid real waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// New constructs a Client on top of the provided http.Client.
func New(httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		sleep:      sleepContext,
	}
}

// WithSleeper returns the client with a replacement sleep function. Intended
// for tests that must observe the backoff schedule without real delays.
func (c *Client) WithSleeper(sleep func(ctx context.Context, d time.Duration) error) *Client {
	c.sleep = sleep

	return c
}

// Do performs the request, retrying with exponential backoff while the
// response status is in cfg.RetryableStatuses and the retry budget lasts.
//
// Outcomes:
//   - A response with a non-retryable status (success or not) is returned to
//     the caller unread.
//   - A transport-level failure (no response received) is returned immediately
//     without retrying.
//   - Exhaustion of the retry budget on a retryable status yields a
//     *StatusError carrying the final status code and body.
func (c *Client) Do(ctx context.Context, req *http.Request, cfg Config) (*http.Response, error) {
	attempts := cfg.MaxRetries + 1

	for attempt := 1; ; attempt++ {
		r, err := cloneRequest(ctx, req)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(r)
		if err != nil {
			return nil, fmt.Errorf("could not send request: %w", err)
		}

		if !cfg.Retryable(resp.StatusCode) {
			return resp, nil
		}

		body := readErrBody(resp)

		if attempt >= attempts {
			return nil, &StatusError{Code: resp.StatusCode, Body: body, Attempts: attempt}
		}

		delay := Backoff(cfg.BaseDelay, attempt)
		logger.Debug(ctx, "retrying request",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay))

		if err := c.sleep(ctx, delay); err != nil {
			return nil, fmt.Errorf("canceled while waiting to retry: %w", err)
		}
	}
}

// cloneRequest copies the request for one attempt, rewinding the body when a
// GetBody factory is available.
func cloneRequest(ctx context.Context, req *http.Request) (*http.Request, error) {
	r := req.Clone(ctx)
	if req.Body == nil || req.GetBody == nil {
		return r, nil
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("could not rewind request body: %w", err)
	}
	r.Body = body

	return r, nil
}

// readErrBody drains and closes the response body, returning a bounded,
// trimmed copy for diagnostics.
func readErrBody(resp *http.Response) string {
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(b))
}

// sleepContext waits for d or until ctx is canceled, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err() //nolint: wrapcheck
	case <-t.C:
		return nil
	}
}
