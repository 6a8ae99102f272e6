package audit

import (
	"context"

	"seoaudit/pkg/domain"
)

// Auditor drives the end-to-end audit flow: input validation, session cache
// lookup, the upstream fetch and scoring. Failures are always classified;
// callers never see a raw upstream error.
//
//go:generate mockgen -package mockaudit -source=interface.go -destination=mock/mockaudit.go *
type Auditor interface {
	// Run audits the raw user-supplied URL and returns the normalized result,
	// serving repeated audits of the same URL from the session cache.
	Run(ctx context.Context, rawURL string) (*domain.AuditResult, error)
}
