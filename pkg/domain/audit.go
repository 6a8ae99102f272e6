package domain

import (
	"math"
	"time"
)

// Severity classifies a single audited check.
type Severity string

const (
	// SeverityCritical indicates a check that scored below 0.5.
	SeverityCritical Severity = "critical"
	// SeverityWarning indicates a check without a numeric score, or one that
	// scored in [0.5, 0.9).
	SeverityWarning Severity = "warning"
	// SeverityPassed indicates a check that scored 0.9 or above.
	SeverityPassed Severity = "passed"
)

// ClassifySeverity maps a raw 0-1 check score into a Severity. A nil score
// means the check produced no numeric result and is reported as a warning.
func ClassifySeverity(score *float64) Severity {
	switch {
	case score == nil:
		return SeverityWarning
	case *score < 0.5:
		return SeverityCritical
	case *score < 0.9:
		return SeverityWarning
	default:
		return SeverityPassed
	}
}

// Scores holds the four 0-100 category scores of an audit plus the derived
// overall score. Overall is always the rounded arithmetic mean of the four
// sub-scores; construct values through NewScores so the invariant holds.
type Scores struct {
	SEO           int `json:"seo"`
	Performance   int `json:"performance"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"bestPractices"`
	Overall       int `json:"overall"`
}

// NewScores builds a Scores value from the four category scores and derives
// the overall score from them.
func NewScores(seo, performance, accessibility, bestPractices int) Scores {
	sum := seo + performance + accessibility + bestPractices

	return Scores{
		SEO:           seo,
		Performance:   performance,
		Accessibility: accessibility,
		BestPractices: bestPractices,
		Overall:       int(math.Round(float64(sum) / 4)),
	}
}

// FractionToScore converts a raw 0-1 category fraction into a 0-100 integer.
func FractionToScore(f float64) int {
	return int(math.Round(f * 100))
}

// Issue is one evaluated check from the audit response.
type Issue struct {
	// Title is the short name of the check, e.g. "Image elements have [alt] attributes".
	Title string `json:"title"`
	// Description explains the check in human terms.
	Description string `json:"description"`
	// Severity is the bucket the check fell into.
	Severity Severity `json:"severity"`
}

// AuditResult is the normalized outcome of one successful audit. It is
// created once per successful upstream call and is immutable thereafter;
// the orchestrator caches it per normalized URL for the session lifetime.
type AuditResult struct {
	// URL is the normalized audit target and the cache key (lowercased).
	URL string `json:"url"`
	// Scores holds the four category scores plus the derived overall score.
	Scores Scores `json:"scores"`

	// Critical, Warnings and Passed are the bucketed checks, in checklist order.
	Critical []Issue `json:"critical"`
	Warnings []Issue `json:"warnings"`
	Passed   []Issue `json:"passed"`

	// CreatedAt is when the audit completed.
	CreatedAt time.Time `json:"createdAt"`
}
