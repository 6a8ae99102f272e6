// Package metrics holds shared instrument configuration.
package metrics

// DefaultBuckets are the latency histogram boundaries, in seconds, used by
// the request middleware. Audits that retried long enough to pass the last
// boundary land in the +Inf bucket.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals
