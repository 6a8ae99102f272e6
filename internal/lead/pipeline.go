package lead

import (
	"context"
	"time"

	"go.uber.org/zap"

	"seoaudit/pkg/domain"
	"seoaudit/pkg/logger"
)

// Pipeline converts a validated contact form plus an audit result into a
// LeadSubmission and dispatches it to the two outbound channels. The relay
// POST is awaited so the caller can report success or failure; the WhatsApp
// deep link is prepared and logged but never auto-dispatched, so it cannot
// fail the submission. Submissions are independent; resubmitting the form
// dispatches a new lead with no dedup.
type Pipeline struct {
	relay *Relay
	// waPhone is the destination phone for the WhatsApp deep link.
	waPhone string
	// now is replaceable in tests.
	now func() time.Time
}

// NewPipeline constructs a Pipeline dispatching through the given relay and
// preparing deep links for the given WhatsApp phone number.
func NewPipeline(relay *Relay, waPhone string) *Pipeline {
	return &Pipeline{
		relay:   relay,
		waPhone: waPhone,
		now:     time.Now,
	}
}

// Submit validates the form, builds the lead and dispatches it.
// Validation failures return a *ValidationError wrapped in ErrValidation and
// block all dispatch. Relay failures surface as ErrUnavailable with a
// retry-or-call-us user message; they never affect the underlying audit
// result, which stays cached and viewable. On success the built submission
// is returned along with the prepared deep link.
func (p *Pipeline) Submit(ctx context.Context,
	form domain.ContactForm,
	result *domain.AuditResult) (*domain.LeadSubmission, string, error) {
	if err := ValidateForm(form); err != nil {
		return nil, "", err
	}

	sub := BuildSubmission(form, result, p.now())
	ctx = logger.WithFields(ctx,
		zap.String("leadEmail", sub.Email),
		zap.String("website", sub.URL),
		zap.String("temperature", string(sub.Temperature)))

	if err := p.relay.Send(ctx, sub); err != nil {
		logger.Error(ctx, "lead relay dispatch failed", zap.Error(err))

		return nil, "", err
	}

	// Second channel: prepared but intentionally manual, log-only.
	deepLink := DeepLink(p.waPhone, sub)
	logger.Info(ctx, "lead dispatched", zap.String("whatsappLink", deepLink))

	return &sub, deepLink, nil
}
