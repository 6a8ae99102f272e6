// Package lead implements the lead capture pipeline: contact-form
// validation, assembly of the denormalized notification payload and dispatch
// to the two outbound channels (form relay POST and WhatsApp deep link).
package lead

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"seoaudit/pkg/domain"
	"seoaudit/pkg/serrors"
)

// emailRe accepts the basic local@domain.tld shape; full RFC parsing is not
// the goal, catching obvious typos before dispatch is.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks a contact form and returns a map of field name to
// user-facing error message. An empty map means the form may be submitted.
// It is a pure function: no network, no logging.
func Validate(form domain.ContactForm) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(form.Name) == "" {
		errs["name"] = "Please enter your full name."
	}

	email := strings.TrimSpace(form.Email)
	switch {
	case email == "":
		errs["email"] = "Please enter your email address."
	case !emailRe.MatchString(email):
		errs["email"] = "Please enter a valid email address."
	}

	if strings.TrimSpace(form.Phone) == "" {
		errs["phone"] = "Please enter your phone number."
	}

	// company is optional

	return errs
}

// ValidateForm runs Validate and converts a non-empty field map into the
// semantic error a blocked submission carries. Callers that can short-circuit
// before any expensive work (the HTTP handler, before it runs an audit)
// share this with Pipeline.Submit so both reject identically.
func ValidateForm(form domain.ContactForm) error {
	fieldErrs := Validate(form)
	if len(fieldErrs) == 0 {
		return nil
	}

	return serrors.Wrap(serrors.ErrValidation,
		&ValidationError{Fields: fieldErrs},
		"contact form rejected").
		WithUser("Please correct the highlighted fields and try again.")
}

// ValidationError reports a blocked submission together with the per-field
// messages, so callers can render them next to the inputs.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface with a stable field ordering.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	return fmt.Sprintf("invalid contact form fields: %s", strings.Join(fields, ", "))
}
