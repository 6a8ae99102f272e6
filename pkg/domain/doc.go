// Package domain contains the core domain entities of the audit service.
// These types represent the business concepts (audit reports, issues and
// sales leads) and are intentionally free of infrastructure concerns so they
// can be shared across packages.
package domain
