package v1handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"seoaudit/internal/lead"
	"seoaudit/pkg/domain"
)

// CreateLeadRequest is the payload for POST /v1/leads. URL names the audited
// site; the audit must be runnable (it is normally already in the session
// cache) because its scores ride along with the contact details.
type CreateLeadRequest struct {
	URL     string `json:"url"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
}

// LeadResponse acknowledges an accepted lead.
type LeadResponse struct {
	ID          string    `json:"id"`
	Temperature string    `json:"temperature"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateLead validates the contact form, attaches the site's audit result and
// dispatches the lead. The relay POST is awaited, so a 202 means the lead
// actually went out.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	form := domain.ContactForm{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
	}

	// Reject a bad form before the audit runs; a cache miss here would
	// otherwise sit through the full upstream retry envelope for nothing.
	if err := lead.ValidateForm(form); err != nil {
		writeError(w, r, err)

		return
	}

	result, err := h.deps.Auditor.Run(r.Context(), req.URL)
	if err != nil {
		writeError(w, r, err)

		return
	}

	sub, _, err := h.deps.Leads.Submit(r.Context(), form, result)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusAccepted, LeadResponse{
		ID:          uuid.UUID(sub.ID).String(),
		Temperature: string(sub.Temperature),
		CreatedAt:   sub.CreatedAt,
	})
}
