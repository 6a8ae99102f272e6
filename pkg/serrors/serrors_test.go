package serrors_test

import (
	"errors"
	"seoaudit/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrValidation,
		serrors.ErrNotFound,
		serrors.ErrRateLimited,
		serrors.ErrUpstream,
		serrors.ErrNetwork,
		serrors.ErrBadRequest,
		serrors.ErrInternal,
		serrors.ErrTimeout,
		serrors.ErrUnavailable,
		serrors.ErrUnclassified,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}

	// Ensure some expected inequalities
	require.NotEqual(t, serrors.ErrRateLimited, serrors.ErrUpstream, "RateLimited should not equal Upstream")
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")

	e1 := serrors.With(serrors.ErrNotFound, "audit for %q not found", "example.com")
	require.Equal(t, `audit for "example.com" not found`, e1.Error(), "With() Error() mismatch")

	e2 := serrors.Wrap(serrors.ErrNetwork, base, "fetching audit")
	require.Equal(t, "fetching audit: connection refused", e2.Error(), "Wrap() Error() mismatch")

	e3 := serrors.KindOnly(serrors.ErrNotFound)
	require.Equal(t, "NOT_FOUND", e3.Error(), "KindOnly Error() mismatch")
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrUpstream, base, "fetching")

	require.ErrorIs(t, e, serrors.ErrUpstream)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrRateLimited, "errors.Is should not match a different kind")
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrValidation, base, "validating")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrValidation, k)

	var ce customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, "root cause", ce.msg)
}

func TestUserMessageFallback(t *testing.T) {
	e := serrors.With(serrors.ErrUnclassified, "upstream said: %s", "weird payload")
	require.NotEmpty(t, e.UserMessage())
	require.NotContains(t, e.UserMessage(), "weird payload", "raw upstream text must not leak to the user")

	e = e.WithUser("We could not audit this site right now.")
	require.Equal(t, "We could not audit this site right now.", e.UserMessage())
}

func TestStatusAttachment(t *testing.T) {
	e := serrors.With(serrors.ErrNetwork, "no response")
	_, ok := e.Status()
	require.False(t, ok, "network errors carry no status")

	e = serrors.With(serrors.ErrRateLimited, "too many requests").WithStatus(429)
	status, ok := e.Status()
	require.True(t, ok)
	require.Equal(t, 429, status)
}
