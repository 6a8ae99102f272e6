package v1handler

import (
	"fmt"
	"net/http"
	"time"

	"seoaudit/internal/report"
	"seoaudit/pkg/domain"
	"seoaudit/pkg/serrors"
)

// CreateAuditRequest is the payload for POST /v1/audits. Brands may omit the
// scheme; the URL is normalized before the audit runs.
type CreateAuditRequest struct {
	URL string `json:"url"`
}

// IssueView is the wire form of a single audit finding.
type IssueView struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity"`
}

// AuditResponse is the wire form of a finished audit.
type AuditResponse struct {
	URL           string      `json:"url"`
	Scores        ScoresView  `json:"scores"`
	Critical      []IssueView `json:"critical"`
	Warnings      []IssueView `json:"warnings"`
	Passed        []IssueView `json:"passed"`
	OverallLabel  string      `json:"overallLabel"`
	CriticalCount int         `json:"criticalCount"`
	WarningCount  int         `json:"warningCount"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// ScoresView carries the four category scores plus the overall mean, all on
// the 0-100 scale.
type ScoresView struct {
	SEO           int `json:"seo"`
	Performance   int `json:"performance"`
	Accessibility int `json:"accessibility"`
	BestPractices int `json:"bestPractices"`
	Overall       int `json:"overall"`
}

func issueViews(in []domain.Issue) []IssueView {
	out := make([]IssueView, 0, len(in))
	for _, is := range in {
		out = append(out, IssueView{
			Title:       is.Title,
			Description: is.Description,
			Severity:    string(is.Severity),
		})
	}

	return out
}

// DomainResultToV1 converts an audit result to its wire form.
func DomainResultToV1(in *domain.AuditResult) *AuditResponse {
	return &AuditResponse{
		URL: in.URL,
		Scores: ScoresView{
			SEO:           in.Scores.SEO,
			Performance:   in.Scores.Performance,
			Accessibility: in.Scores.Accessibility,
			BestPractices: in.Scores.BestPractices,
			Overall:       in.Scores.Overall,
		},
		Critical:      issueViews(in.Critical),
		Warnings:      issueViews(in.Warnings),
		Passed:        issueViews(in.Passed),
		OverallLabel:  report.ScoreLabel(in.Scores.Overall),
		CriticalCount: len(in.Critical),
		WarningCount:  len(in.Warnings),
		CreatedAt:     in.CreatedAt,
	}
}

// CreateAudit runs an audit for the submitted URL. Repeated requests for the
// same site within the server's lifetime are served from the session cache.
func (h *Handler) CreateAudit(w http.ResponseWriter, r *http.Request) {
	var req CreateAuditRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	result, err := h.deps.Auditor.Run(r.Context(), req.URL)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, DomainResultToV1(result))
}

// ExportAuditPDF renders the audit for ?url= as a downloadable PDF report.
// The audit itself is usually a cache hit because the client has already run
// it through CreateAudit.
func (h *Handler) ExportAuditPDF(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, r, serrors.With(serrors.ErrBadRequest, "missing url query parameter").
			WithUser("Pass the audited site as the url query parameter."))

		return
	}

	result, err := h.deps.Auditor.Run(r.Context(), rawURL)
	if err != nil {
		writeError(w, r, err)

		return
	}

	now := time.Now()
	pdf, err := report.ExportPDF(result, h.deps.Branding, now)
	if err != nil {
		writeError(w, r, serrors.Wrap(serrors.ErrInternal, err, "could not render PDF report"))

		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.Filename(result.URL, now)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
