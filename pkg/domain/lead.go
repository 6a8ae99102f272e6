package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeadID uniquely identifies a lead submission.
// It wraps uuid.UUID to provide type safety at the domain layer.
type LeadID uuid.UUID

// Temperature is the three-tier sales urgency tag derived from the overall
// audit score. "Hot" is the worst score, i.e. the site most in need of help.
type Temperature string

const (
	// TemperatureHot marks leads with an overall score of 50 or below.
	TemperatureHot Temperature = "hot"
	// TemperatureWarm marks leads with an overall score in (50, 70].
	TemperatureWarm Temperature = "warm"
	// TemperatureCold marks leads with an overall score above 70.
	TemperatureCold Temperature = "cold"
)

// TemperatureFor derives the lead temperature from an overall audit score.
func TemperatureFor(overall int) Temperature {
	switch {
	case overall <= 50:
		return TemperatureHot
	case overall <= 70:
		return TemperatureWarm
	default:
		return TemperatureCold
	}
}

// ContactForm holds the raw contact fields a visitor submitted alongside an
// audit. Company is optional; everything else is required.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`
}

// LeadSubmission is the denormalized notification payload built from a
// contact form and the triggering audit result. It is created once per form
// submission, dispatched to the external sinks and then discarded; there is
// no local persistence and no dedup across submissions.
type LeadSubmission struct {
	ID LeadID `json:"id"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company,omitempty"`

	// Snapshot of the audit's key figures at submission time.
	URL           string      `json:"url"`
	Scores        Scores      `json:"scores"`
	CriticalCount int         `json:"criticalCount"`
	WarningCount  int         `json:"warningCount"`
	TopIssues     []string    `json:"topIssues"`
	Temperature   Temperature `json:"temperature"`

	CreatedAt time.Time `json:"createdAt"`
}
