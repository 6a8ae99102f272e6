package audit

import (
	"net/url"
	"strings"

	"seoaudit/pkg/serrors"
)

// invalidURLMessage is shown whenever the visitor's input cannot become a
// well-formed audit target.
const invalidURLMessage = "Please enter a valid website address, e.g. example.com."

// Normalize returns the canonical audit target for a raw user-supplied URL
// string. The rules are intentionally strict so the result doubles as the
// session cache key:
//   - Trim surrounding whitespace
//   - Strip any existing scheme and a leading "www."
//   - Force the https scheme
//   - Lower-case the host
//   - Reject empty input and anything that does not parse as a URL
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", serrors.With(serrors.ErrValidation, "empty URL input").
			WithUser(invalidURLMessage)
	}

	// strip scheme, if any
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimPrefix(s, "www.")

	u, err := url.Parse("https://" + s)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrValidation, err, "could not parse URL %q", raw).
			WithUser(invalidURLMessage)
	}
	if u.Host == "" {
		return "", serrors.With(serrors.ErrValidation, "URL %q has no host", raw).
			WithUser(invalidURLMessage)
	}
	u.Host = strings.ToLower(u.Host)

	return u.String(), nil
}

// CacheKey derives the session cache key for a normalized URL.
func CacheKey(normalized string) string {
	return strings.ToLower(normalized)
}
