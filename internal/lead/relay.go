package lead

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"seoaudit/pkg/domain"
	"seoaudit/pkg/serrors"
)

// relayFailedMessage is what the visitor sees when the relay rejects a lead.
const relayFailedMessage = "We could not send your request right now. " +
	"Please try again in a moment, or call us directly and we will take it from there."

// Relay posts lead notifications to the external form-relay endpoint.
// The endpoint accepts an arbitrary flat JSON object; any 2xx response is
// success and no response schema is consumed.
type Relay struct {
	httpClient *http.Client
	endpoint   string
	subject    string
}

// NewRelay constructs a Relay for the given endpoint. The subject line is
// included on every payload so the receiving inbox can filter audit leads.
func NewRelay(httpClient *http.Client, endpoint, subject string) *Relay {
	return &Relay{
		httpClient: httpClient,
		endpoint:   endpoint,
		subject:    subject,
	}
}

// Send posts the lead to the relay endpoint and reports success or failure.
// Failures come back as ErrUnavailable with a generic retry-or-call-us user
// message; the caller decides what to do with the audit itself (nothing —
// the cached result stays viewable).
func (r *Relay) Send(ctx context.Context, sub domain.LeadSubmission) error {
	payload := map[string]any{
		"_subject": fmt.Sprintf("%s [%s lead]", r.subject, sub.Temperature),

		"name":    sub.Name,
		"email":   sub.Email,
		"phone":   sub.Phone,
		"company": sub.Company,

		"website":              sub.URL,
		"overall_score":        sub.Scores.Overall,
		"seo_score":            sub.Scores.SEO,
		"performance_score":    sub.Scores.Performance,
		"accessibility_score":  sub.Scores.Accessibility,
		"best_practices_score": sub.Scores.BestPractices,
		"critical_count":       sub.CriticalCount,
		"warning_count":        sub.WarningCount,
		"top_issues":           strings.Join(sub.TopIssues, "; "),
		"lead_temperature":     string(sub.Temperature),
	}
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal lead payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not reach lead relay").
			WithUser(relayFailedMessage)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return serrors.With(serrors.ErrUnavailable, "lead relay returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(b))).
			WithStatus(resp.StatusCode).
			WithUser(relayFailedMessage)
	}

	return nil
}
