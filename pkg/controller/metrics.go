package controller

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"seoaudit/pkg/metrics"
)

// WithMetrics returns a middleware that records a request counter and a
// latency histogram for every handled request, labeled by method, path
// pattern and status code. Instrument creation failures are ignored and the
// middleware degrades to a pass-through.
func WithMetrics(next http.Handler, mp metric.MeterProvider) http.Handler {
	meter := mp.Meter("seoaudit/api")

	requests, cErr := meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of handled HTTP requests."))
	latency, hErr := meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request latency in seconds."),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if cErr != nil || hErr != nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		// The route surface is a handful of fixed paths, so the raw path
		// (query excluded) keeps cardinality bounded.
		attrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("route", r.URL.Path),
			attribute.String("status", strconv.Itoa(rec.status)),
		)
		requests.Add(r.Context(), 1, attrs)
		latency.Record(r.Context(), time.Since(start).Seconds(), attrs)
	})
}
