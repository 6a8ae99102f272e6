package fetch_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"seoaudit/pkg/fetch"
	"seoaudit/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newClient(fn rtFunc) (*fetch.Client, *[]time.Duration) {
	var delays []time.Duration
	c := fetch.New(&http.Client{Transport: fn}).
		WithSleeper(func(ctx context.Context, d time.Duration) error {
			delays = append(delays, d)

			return nil
		})

	return c, &delays
}

func retryCfg(maxRetries int) fetch.Config {
	return fetch.Config{
		MaxRetries: maxRetries,
		BaseDelay:  2500 * time.Millisecond,
		RetryableStatuses: map[int]struct{}{
			429: {}, 500: {}, 502: {}, 503: {}, 504: {},
		},
	}
}

func TestBackoffSchedule(t *testing.T) {
	base := 2500 * time.Millisecond

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 1, want: 2500 * time.Millisecond},
		{attempt: 2, want: 5 * time.Second},
		{attempt: 3, want: 10 * time.Second},
		{attempt: 4, want: 20 * time.Second},
		// attempts below 1 are clamped
		{attempt: 0, want: 2500 * time.Millisecond},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, fetch.Backoff(base, tc.attempt), "attempt %d", tc.attempt)
	}

	// delays strictly increase across attempts
	prev := time.Duration(0)
	for attempt := 1; attempt <= 8; attempt++ {
		d := fetch.Backoff(base, attempt)
		require.Greater(t, d, prev, "attempt %d", attempt)
		prev = d
	}
}

func TestDo_RetryBudgetExhausted(t *testing.T) {
	var attempts int
	c, delays := newClient(func(r *http.Request) (*http.Response, error) {
		attempts++

		return &http.Response{
			StatusCode: http.StatusServiceUnavailable,
			Body:       io.NopCloser(strings.NewReader("try later")),
		}, nil
	})

	req, err := http.NewRequest(http.MethodGet, "https://audit.test/run", nil)
	require.NoError(t, err)

	_, err = c.Do(context.Background(), req, retryCfg(4))
	require.Error(t, err)

	// 1 initial attempt + 4 retries
	require.Equal(t, 5, attempts)

	var statusErr *fetch.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	require.Equal(t, "try later", statusErr.Body)
	require.Equal(t, 5, statusErr.Attempts)

	// one delay per retry, strictly increasing
	require.Len(t, *delays, 4)
	for i := 1; i < len(*delays); i++ {
		require.Greater(t, (*delays)[i], (*delays)[i-1])
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	var attempts int
	c, delays := newClient(func(r *http.Request) (*http.Response, error) {
		attempts++
		if attempts < 3 {
			return &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(strings.NewReader("slow down")),
			}, nil
		}

		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("ok")),
		}, nil
	})

	req, err := http.NewRequest(http.MethodGet, "https://audit.test/run", nil)
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), req, retryCfg(4))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 3, attempts)
	require.Len(t, *delays, 2)
}

func TestDo_NonRetryableStatusReturnsResponse(t *testing.T) {
	var attempts int
	c, delays := newClient(func(r *http.Request) (*http.Response, error) {
		attempts++

		return &http.Response{
			StatusCode: http.StatusBadRequest,
			Body:       io.NopCloser(strings.NewReader("bad query")),
		}, nil
	})

	req, err := http.NewRequest(http.MethodGet, "https://audit.test/run", nil)
	require.NoError(t, err)

	resp, err := c.Do(context.Background(), req, retryCfg(4))
	require.NoError(t, err, "non-retryable statuses are surfaced, not retried")
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, 1, attempts)
	require.Empty(t, *delays)
}

func TestDo_TransportErrorNotRetried(t *testing.T) {
	var attempts int
	boom := errors.New("connection refused")
	c, delays := newClient(func(r *http.Request) (*http.Response, error) {
		attempts++

		return nil, boom
	})

	req, err := http.NewRequest(http.MethodGet, "https://audit.test/run", nil)
	require.NoError(t, err)

	_, err = c.Do(context.Background(), req, retryCfg(4))
	require.Error(t, err)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, attempts)
	require.Empty(t, *delays)
}

func TestDo_CancellationWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var attempts int
	c := fetch.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		attempts++

		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("")),
		}, nil
	})}).WithSleeper(func(ctx context.Context, d time.Duration) error {
		cancel()

		return ctx.Err()
	})

	req, err := http.NewRequest(http.MethodGet, "https://audit.test/run", nil)
	require.NoError(t, err)

	_, err = c.Do(ctx, req, retryCfg(4))
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, attempts)
}
