// Package controller holds the HTTP middlewares and helper handlers the
// audit API server is assembled from: permissive CORS, a request-scoped
// access logger, per-request metrics and a pprof mount.
package controller
