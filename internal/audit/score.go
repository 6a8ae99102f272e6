package audit

import (
	"time"

	"seoaudit/pkg/domain"
	"seoaudit/pkg/pagespeed"
)

// checklist is the fixed, ordered set of provider audits we report on.
// Entries absent from a raw report are skipped, not reported as failing.
var checklist = []string{ //nolint: gochecknoglobals
	"viewport",
	"document-title",
	"meta-description",
	"http-status-code",
	"link-text",
	"crawlable-anchors",
	"is-crawlable",
	"robots-txt",
	"image-alt",
	"hreflang",
	"canonical",
	"structured-data",
	"is-on-https",
	"redirects-http",
	"uses-responsive-images",
	"uses-optimized-images",
	"render-blocking-resources",
	"unused-css-rules",
	"uses-text-compression",
	"server-response-time",
	"largest-contentful-paint",
	"cumulative-layout-shift",
	"total-blocking-time",
}

// buildResult converts a raw provider report into the immutable AuditResult:
// category fractions become 0-100 integers, the overall score is derived,
// and every checklist entry present in the report is classified and bucketed.
func buildResult(normalizedURL string, report *pagespeed.Report, now time.Time) *domain.AuditResult {
	res := &domain.AuditResult{
		URL: normalizedURL,
		Scores: domain.NewScores(
			fraction(report.Categories.SEO),
			fraction(report.Categories.Performance),
			fraction(report.Categories.Accessibility),
			fraction(report.Categories.BestPractices),
		),
		CreatedAt: now,
	}

	for _, id := range checklist {
		check, ok := report.Checks[id]
		if !ok {
			continue
		}

		issue := domain.Issue{
			Title:       check.Title,
			Description: check.Description,
			Severity:    domain.ClassifySeverity(check.Score),
		}
		switch issue.Severity {
		case domain.SeverityCritical:
			res.Critical = append(res.Critical, issue)
		case domain.SeverityWarning:
			res.Warnings = append(res.Warnings, issue)
		case domain.SeverityPassed:
			res.Passed = append(res.Passed, issue)
		}
	}

	return res
}

// fraction unwraps an optional 0-1 category fraction, treating an unscored
// category as zero.
func fraction(f *float64) int {
	if f == nil {
		return 0
	}

	return domain.FractionToScore(*f)
}
