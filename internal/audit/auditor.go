// Package audit implements the audit orchestrator: it validates and
// normalizes the target URL, fetches the raw report from the audit provider,
// derives the scored result and maintains the session result cache.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"seoaudit/pkg/domain"
	"seoaudit/pkg/logger"
	"seoaudit/pkg/pagespeed"
)

// auditor is the concrete implementation of the Auditor interface.
// It owns the session cache; no other component is permitted to mutate it.
type auditor struct {
	// provider runs the actual audit against the external API.
	provider pagespeed.Client
	// cache holds completed results for the lifetime of this auditor.
	cache *resultCache
	// now is replaceable in tests.
	now func() time.Time
}

// New creates an Auditor backed by the provided audit provider. Each Auditor
// owns its own session cache, so tests can construct a fresh one per case.
func New(provider pagespeed.Client) Auditor {
	return &auditor{
		provider: provider,
		cache:    newResultCache(),
		now:      time.Now,
	}
}

// Run executes one audit: Validating -> (CacheHit | Fetching) -> Scoring.
// Within one invocation the steps are strictly sequential; concurrent
// invocations for different URLs are independent. In-flight duplicates for
// the same URL are not coalesced, only completed results are cached.
func (a *auditor) Run(ctx context.Context, rawURL string) (*domain.AuditResult, error) {
	normalized, err := Normalize(rawURL)
	if err != nil {
		return nil, Classify(ctx, rawURL, err)
	}
	ctx = logger.WithFields(ctx, zap.String("url", normalized))

	key := CacheKey(normalized)
	if res := a.cache.get(key); res != nil {
		logger.Debug(ctx, "audit served from session cache")

		return res, nil
	}

	logger.Info(ctx, "running audit")
	report, err := a.provider.Analyze(ctx, normalized)
	if err != nil {
		return nil, Classify(ctx, normalized, err)
	}

	res := buildResult(normalized, report, a.now())
	a.cache.put(key, res)

	logger.Info(ctx, "audit complete",
		zap.Int("overall", res.Scores.Overall),
		zap.Int("critical", len(res.Critical)),
		zap.Int("warnings", len(res.Warnings)),
		zap.Int("passed", len(res.Passed)))

	return res, nil
}
