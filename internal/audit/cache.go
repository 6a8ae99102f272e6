package audit

import (
	"sync"

	"seoaudit/pkg/domain"
)

// resultCache is the session-scoped audit result cache: an in-memory,
// non-expiring map from cache key (lowercased normalized URL) to a completed
// result. Only the orchestrator writes it, and only completed results enter
// it, so two concurrent audits of the same new URL may both hit the network;
// that looseness is accepted and documented rather than deduplicated away.
//
// The service runtime is multi-threaded, hence the mutex.
type resultCache struct {
	mu      sync.Mutex
	results map[string]*domain.AuditResult
}

func newResultCache() *resultCache {
	return &resultCache{results: make(map[string]*domain.AuditResult)}
}

// get returns the cached result for key, or nil.
func (c *resultCache) get(key string) *domain.AuditResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.results[key]
}

// put stores a completed result under key.
func (c *resultCache) put(key string, res *domain.AuditResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results[key] = res
}
