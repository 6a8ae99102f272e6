// Package v1handler implements the version 1 HTTP handlers of the audit
// service: running audits, exporting PDF reports and capturing leads.
package v1handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"seoaudit/internal/audit"
	"seoaudit/internal/lead"
	"seoaudit/internal/report"
	"seoaudit/pkg/logger"
	"seoaudit/pkg/serrors"
)

// Deps carries the collaborators the handlers need.
type Deps struct {
	// Auditor runs audits and serves repeats from its session cache.
	Auditor audit.Auditor
	// Leads validates and dispatches contact form submissions.
	Leads *lead.Pipeline
	// Branding is printed on exported PDF reports.
	Branding report.Branding
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts all v1 routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/audits", h.CreateAudit)
	mux.HandleFunc("GET /v1/audits/pdf", h.ExportAuditPDF)
	mux.HandleFunc("POST /v1/leads", h.CreateLead)
}

// ErrorResponse is the JSON body written for every failed request. Message is
// always safe to render to an end user; Fields is only present for contact
// form validation failures.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// statusFor maps a semantic error kind to the HTTP status the client sees.
// Upstream and network failures map to 502 because from the caller's point of
// view this service is a gateway to the audit provider.
func statusFor(e *serrors.Error) int {
	switch {
	case errors.Is(e, serrors.ErrValidation), errors.Is(e, serrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(e, serrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(e, serrors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(e, serrors.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(e, serrors.ErrUpstream),
		errors.Is(e, serrors.ErrNetwork),
		errors.Is(e, serrors.ErrUnavailable),
		errors.Is(e, serrors.ErrUnclassified):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an ErrorResponse. Raw upstream text stays in the
// logs; the body only ever carries the user-facing message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var e *serrors.Error
	if !errors.As(err, &e) {
		logger.Error(r.Context(), "unhandled error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    serrors.ErrInternal.Error(),
			Message: serrors.KindOnly(serrors.ErrInternal).UserMessage(),
		})

		return
	}

	resp := ErrorResponse{
		Code:    e.Kind().Error(),
		Message: e.UserMessage(),
	}

	var vErr *lead.ValidationError
	if errors.As(err, &vErr) {
		resp.Fields = vErr.Fields
	}

	writeJSON(w, statusFor(e), resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "could not decode request body").
			WithUser("The request body is not valid JSON.")
	}

	return nil
}
