package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind. It allows distinguishing semantic kinds from ordinary errors.
type Kind interface {
	error
	isKind()
}

// kind is an unexported implementation of Kind used as a sentinel value for a
// semantic error category.
type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided
// name/description. Kinds are comparable and can be used with errors.Is/As
// through the serrors.Error wrapper.
func NewKind(name string) Kind { return kind{s: name} }

// Default Kinds cover the failure taxonomy of the audit service. They are
// sentinels and can be matched with errors.Is/As through the Error wrapper.
var (
	// ErrValidation indicates bad or empty user input; it never reaches the network.
	ErrValidation = NewKind("VALIDATION")
	// ErrNotFound indicates the requested entity or target site was not found.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrRateLimited indicates the upstream audit API rejected us with HTTP 429.
	ErrRateLimited = NewKind("RATE_LIMITED")
	// ErrUpstream indicates a 5xx from the upstream audit API after retries.
	ErrUpstream = NewKind("UPSTREAM")
	// ErrNetwork indicates no response was received at all.
	ErrNetwork = NewKind("NETWORK")
	// ErrBadRequest indicates the client sent invalid data to our API.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrInternal indicates an internal server error.
	ErrInternal = NewKind("INTERNAL")
	// ErrTimeout indicates the operation timed out.
	ErrTimeout = NewKind("TIMEOUT")
	// ErrUnavailable indicates an external collaborator is temporarily unavailable.
	ErrUnavailable = NewKind("UNAVAILABLE")
	// ErrUnclassified is the fallback for anything the classifier does not recognize.
	ErrUnclassified = NewKind("UNCLASSIFIED")
)

// Error represents a semantic error carrying a kind (sentinel), an optional
// wrapped cause, a developer message, an optional user-facing message and an
// optional upstream HTTP status code. It fully supports errors.Is/errors.As
// and unwrapping.
//
// Matching semantics:
//   - errors.Is(err, target) will match if target matches either the kind
//     sentinel or the wrapped error.
//   - errors.As(err, target) will succeed for either the kind sentinel or the
//     wrapped error.
//
// The developer message (Error()/Message()) may contain raw upstream text;
// the user message never does. When no user message was attached,
// UserMessage() falls back to a generic one so callers can always render it.
type Error struct {
	kind    Kind   // semantic kind sentinel
	err     error  // wrapped cause (optional)
	msg     string // developer message
	userMsg string // user-facing message (optional)
	status  int    // upstream HTTP status, 0 when none
}

// With constructs a new semantic error with the given kind and an arbitrary
// developer message. Use Wrap if you also want to wrap a concrete cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind, wraps the provided
// cause (err) and allows adding an arbitrary developer message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind without extra
// message or concrete cause.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// WithUser returns the error with a user-facing message attached. The message
// is what UIs render; it must never contain raw upstream text.
func (e *Error) WithUser(msgFmt string, args ...any) *Error {
	e.userMsg = fmt.Sprintf(msgFmt, args...)

	return e
}

// WithStatus returns the error with the upstream HTTP status that produced it.
func (e *Error) WithStatus(status int) *Error {
	e.status = status

	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped error, enabling errors.Unwrap/Is/As to traverse
// the underlying cause chain.
func (e *Error) Unwrap() error { return e.err }

// Is enables matching against either the semantic kind sentinel or the wrapped
// error in the chain. This ensures that errors.Is works for both.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As enables type assertions against either the semantic kind sentinel or the
// wrapped error in the chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the developer message attached to this error.
func (e *Error) Message() string { return e.msg }

// UserMessage returns the user-facing message, or a generic fallback when
// none was attached. The result is always safe to show to an end user.
func (e *Error) UserMessage() string {
	if e == nil || e.userMsg == "" {
		return "Something unexpected went wrong. Please try again in a moment."
	}

	return e.userMsg
}

// Status returns the upstream HTTP status code that produced this error and
// whether one is known. Network-level failures carry no status.
func (e *Error) Status() (int, bool) {
	if e == nil || e.status == 0 {
		return 0, false
	}

	return e.status, true
}

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }
