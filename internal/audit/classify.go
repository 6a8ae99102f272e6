package audit

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"seoaudit/pkg/fetch"
	"seoaudit/pkg/logger"
	"seoaudit/pkg/serrors"
)

// User-facing messages per failure class. Raw upstream text never appears
// here; it stays on the developer message only.
const (
	rateLimitedMessage = "Our audit engine is handling a lot of requests right now. " +
		"Please wait a minute and try again — sites audited earlier in this session are served instantly. " +
		"You can also call us and we will run the audit for you."
	notFoundMessage = "We could not reach that website. Double-check the address and try again."
	upstreamMessage = "The audit engine had a hiccup. We already retried a few times — please try again shortly."
	networkMessage  = "We could not reach the audit engine. Check your connection and try again."
	timeoutMessage  = "The audit took too long to respond. Please try again."
	genericMessage  = "Something unexpected went wrong while auditing the site. Please try again."
)

// Classify maps a raw failure from the audit provider into exactly one
// semantic error with a stable kind, an optional upstream status and a
// user-facing message. It never panics and never returns nil for a non-nil
// input; anything unrecognized falls back to ErrUnclassified with the raw
// text kept as the developer message only.
//
// The classified error is logged with the offending URL so failures are
// observable even when callers only render the user message.
func Classify(ctx context.Context, rawURL string, err error) *serrors.Error {
	if err == nil {
		return nil
	}

	out := classify(err)

	fields := []zap.Field{
		zap.String("component", "audit"),
		zap.String("url", rawURL),
		zap.Error(out),
	}
	if out.Kind() != nil {
		fields = append(fields, zap.String("kind", out.Kind().Error()))
	}
	if status, ok := out.Status(); ok {
		fields = append(fields, zap.Int("status", status))
	}
	logger.Error(ctx, "audit failed", fields...)

	return out
}

func classify(err error) *serrors.Error {
	// Already classified (e.g. a validation failure) passes through untouched.
	var sem *serrors.Error
	if errors.As(err, &sem) {
		return sem
	}

	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Code == http.StatusTooManyRequests:
			return serrors.Wrap(serrors.ErrRateLimited, err, "audit API rate limited").
				WithStatus(statusErr.Code).
				WithUser(rateLimitedMessage)
		case statusErr.Code == http.StatusNotFound:
			return serrors.Wrap(serrors.ErrNotFound, err, "audit target not found").
				WithStatus(statusErr.Code).
				WithUser(notFoundMessage)
		case statusErr.Code >= 500:
			return serrors.Wrap(serrors.ErrUpstream, err, "audit API server error").
				WithStatus(statusErr.Code).
				WithUser(upstreamMessage)
		default:
			return serrors.Wrap(serrors.ErrUnclassified, err, "unexpected audit API status").
				WithStatus(statusErr.Code).
				WithUser(genericMessage)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return serrors.Wrap(serrors.ErrTimeout, err, "audit timed out").
			WithUser(timeoutMessage)
	}

	// No response received at all.
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return serrors.Wrap(serrors.ErrNetwork, err, "network failure calling audit API").
			WithUser(networkMessage)
	}

	return serrors.Wrap(serrors.ErrUnclassified, err, "unexpected audit failure").
		WithUser(genericMessage)
}
