// Package pagespeed defines the abstraction and data types used to run a
// page audit against a backing provider and retrieve its raw report.
package pagespeed

import (
	"context"
)

// CategoryScores holds the raw per-category fractions of a report. Each value
// is in [0, 1]; nil means the provider did not score that category.
type CategoryScores struct {
	SEO           *float64
	Performance   *float64
	Accessibility *float64
	BestPractices *float64
}

// Check is one named audit from the raw report. Score is a 0-1 fraction and
// nil when the check produced no numeric result.
type Check struct {
	Title       string
	Description string
	Score       *float64
}

// Report is the raw provider report, already decoded into a strict shape.
// The loose upstream JSON never travels past the client that produced this.
type Report struct {
	// FinalURL is the URL the provider ended up auditing after redirects.
	FinalURL string
	// Categories holds the raw 0-1 category fractions.
	Categories CategoryScores
	// Checks maps provider audit IDs (e.g. "meta-description") to results.
	Checks map[string]Check
}

// Client is the abstraction for audit providers. Implementations run an
// audit for a URL and return the raw report.
//
//go:generate mockgen -package mockpagespeed -source=interface.go -destination=mock/mockpagespeed.go *
type Client interface {
	// Analyze audits the target URL and returns the provider's raw report.
	// Failures are surfaced raw (status or transport errors) so the caller
	// can classify them.
	Analyze(ctx context.Context, URL string) (*Report, error)
}
