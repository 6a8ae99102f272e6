package psi_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"seoaudit/pkg/fetch"
	"seoaudit/pkg/logger"
	"seoaudit/pkg/pagespeed/psi"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc, apiKey string) *psi.Client {
	fetcher := fetch.New(&http.Client{Transport: fn}).
		WithSleeper(func(ctx context.Context, d time.Duration) error { return nil })

	return psi.New(fetcher, psi.Options{
		APIKey:     apiKey,
		Strategy:   "mobile",
		MaxRetries: 4,
		BaseDelay:  2500 * time.Millisecond,
	})
}

const sampleBody = `{
	"lighthouseResult": {
		"finalUrl": "https://example.com/",
		"categories": {
			"performance": {"score": 0.45},
			"seo": {"score": 0.95},
			"accessibility": {"score": 0.88},
			"best-practices": {"score": 0.92}
		},
		"audits": {
			"meta-description": {"title": "Document has a meta description", "description": "Meta descriptions matter.", "score": 1},
			"render-blocking-resources": {"title": "Eliminate render-blocking resources", "description": "Resources block first paint.", "score": null}
		}
	}
}`

func TestClient_Analyze_success(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "www.googleapis.com", r.URL.Host)
		require.Equal(t, "/pagespeedonline/v5/runPagespeed", r.URL.Path)

		q := r.URL.Query()
		require.Equal(t, "https://example.com", q.Get("url"))
		require.ElementsMatch(t,
			[]string{"performance", "seo", "accessibility", "best-practices"},
			q["category"])
		require.Equal(t, "mobile", q.Get("strategy"))
		require.Equal(t, "test-key", q.Get("key"))

		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(sampleBody)),
		}, nil
	}, "test-key")

	report, err := c.Analyze(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/", report.FinalURL)

	require.NotNil(t, report.Categories.Performance)
	require.InDelta(t, 0.45, *report.Categories.Performance, 1e-9)
	require.NotNil(t, report.Categories.SEO)
	require.InDelta(t, 0.95, *report.Categories.SEO, 1e-9)
	require.NotNil(t, report.Categories.Accessibility)
	require.InDelta(t, 0.88, *report.Categories.Accessibility, 1e-9)
	require.NotNil(t, report.Categories.BestPractices)
	require.InDelta(t, 0.92, *report.Categories.BestPractices, 1e-9)

	meta, ok := report.Checks["meta-description"]
	require.True(t, ok)
	require.Equal(t, "Document has a meta description", meta.Title)
	require.NotNil(t, meta.Score)

	rbr, ok := report.Checks["render-blocking-resources"]
	require.True(t, ok)
	require.Nil(t, rbr.Score, "null scores must decode to nil")
}

func TestClient_Analyze_noAPIKeyOmitsParam(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		_, hasKey := r.URL.Query()["key"]
		require.False(t, hasKey, "unkeyed requests must not send an empty key param")

		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(sampleBody)),
		}, nil
	}, "")

	_, err := c.Analyze(context.Background(), "https://example.com")
	require.NoError(t, err)
}

func TestClient_Analyze_retriesThenExhausts(t *testing.T) {
	var attempts int
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		attempts++

		return &http.Response{
			StatusCode: http.StatusServiceUnavailable,
			Body:       io.NopCloser(strings.NewReader("maintenance")),
		}, nil
	}, "")

	_, err := c.Analyze(context.Background(), "https://example.com")
	require.Error(t, err)
	require.Equal(t, 5, attempts, "1 initial attempt + 4 retries")

	var statusErr *fetch.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestClient_Analyze_non2xxNotRetryable(t *testing.T) {
	var attempts int
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		attempts++

		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader("unknown url")),
		}, nil
	}, "")

	_, err := c.Analyze(context.Background(), "https://example.com")
	require.Error(t, err)
	require.Equal(t, 1, attempts)

	var statusErr *fetch.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.Code)
	require.Contains(t, statusErr.Body, "unknown url")
}

func TestClient_Analyze_badJSON(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("{not json")),
		}, nil
	}, "")

	_, err := c.Analyze(context.Background(), "https://example.com")
	require.Error(t, err)
	require.Contains(t, err.Error(), "could not decode response")
}
