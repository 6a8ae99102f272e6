// Package psi provides a pagespeed.Client implementation backed by the
// Google PageSpeed Insights API.
package psi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"seoaudit/pkg/fetch"
	"seoaudit/pkg/pagespeed"
)

// DefaultEndpoint is the public PageSpeed Insights v5 endpoint.
const DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

// categories are the report categories requested on every run.
var categories = []string{"performance", "seo", "accessibility", "best-practices"} //nolint: gochecknoglobals

// RetryableStatuses is the set of upstream statuses worth retrying: rate
// limiting and transient 5xx responses.
func RetryableStatuses() map[int]struct{} {
	return map[int]struct{}{
		http.StatusTooManyRequests:     {},
		http.StatusInternalServerError: {},
		http.StatusBadGateway:          {},
		http.StatusServiceUnavailable:  {},
		http.StatusGatewayTimeout:      {},
	}
}

// Options configure the PageSpeed Insights client. Retry bounds come from
// application configuration so the policy lives in one named place instead
// of inlined literals at the call sites.
type Options struct {
	// Endpoint is the API URL; empty means DefaultEndpoint.
	Endpoint string
	// APIKey is the optional API key. When empty, requests are sent unkeyed
	// and are subject to the provider's stricter anonymous rate limits.
	APIKey string
	// Strategy selects the analysis strategy, "mobile" or "desktop".
	Strategy string
	// MaxRetries bounds retries after the initial attempt.
	MaxRetries int
	// BaseDelay is the first retry delay; each further retry doubles it.
	BaseDelay time.Duration
}

// Client talks to the PageSpeed Insights REST API and fulfills the
// pagespeed.Client interface. It is safe for concurrent use.
type Client struct {
	fetcher *fetch.Client
	opts    Options
}

// New constructs a Client that uses the provided fetch.Client and options to
// interact with the PageSpeed Insights API.
func New(fetcher *fetch.Client, opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}

	return &Client{
		fetcher: fetcher,
		opts:    opts,
	}
}

// rawResponse mirrors just the parts of the loose upstream payload we
// consume. Everything else is discarded on decode.
type rawResponse struct {
	LighthouseResult struct {
		FinalURL   string `json:"finalUrl"`
		Categories struct {
			Performance   *rawCategory `json:"performance"`
			SEO           *rawCategory `json:"seo"`
			Accessibility *rawCategory `json:"accessibility"`
			BestPractices *rawCategory `json:"best-practices"`
		} `json:"categories"`
		Audits map[string]struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Score       *float64 `json:"score"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

type rawCategory struct {
	Score *float64 `json:"score"`
}

// Analyze runs a PageSpeed audit for the target URL.
// It retries transient upstream failures per the configured policy and
// decodes the response into the strict pagespeed.Report shape. Failures are
// returned raw (*fetch.StatusError for status failures, wrapped transport
// errors otherwise) for the caller to classify.
func (c *Client) Analyze(ctx context.Context, URL string) (*pagespeed.Report, error) {
	// https://developers.google.com/speed/docs/insights/v5/reference/pagespeedapi/runpagespeed
	q := url.Values{}
	q.Set("url", URL)
	for _, cat := range categories {
		q.Add("category", cat)
	}
	q.Set("strategy", c.opts.Strategy)
	if c.opts.APIKey != "" {
		q.Set("key", c.opts.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.fetcher.Do(ctx, req, fetch.Config{
		MaxRetries:        c.opts.MaxRetries,
		BaseDelay:         c.opts.BaseDelay,
		RetryableStatuses: RetryableStatuses(),
	})
	if err != nil {
		return nil, err //nolint: wrapcheck
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &fetch.StatusError{Code: resp.StatusCode, Body: string(b), Attempts: 1}
	}

	// successful
	var raw rawResponse
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	out := &pagespeed.Report{
		FinalURL: raw.LighthouseResult.FinalURL,
		Checks:   make(map[string]pagespeed.Check, len(raw.LighthouseResult.Audits)),
	}
	if cat := raw.LighthouseResult.Categories.SEO; cat != nil {
		out.Categories.SEO = cat.Score
	}
	if cat := raw.LighthouseResult.Categories.Performance; cat != nil {
		out.Categories.Performance = cat.Score
	}
	if cat := raw.LighthouseResult.Categories.Accessibility; cat != nil {
		out.Categories.Accessibility = cat.Score
	}
	if cat := raw.LighthouseResult.Categories.BestPractices; cat != nil {
		out.Categories.BestPractices = cat.Score
	}
	for id, audit := range raw.LighthouseResult.Audits {
		out.Checks[id] = pagespeed.Check{
			Title:       audit.Title,
			Description: audit.Description,
			Score:       audit.Score,
		}
	}

	return out, nil
}

// Ensure Client conforms to the pagespeed.Client interface at compile time.
var _ pagespeed.Client = (*Client)(nil)
