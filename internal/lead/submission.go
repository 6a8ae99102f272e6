package lead

import (
	"time"

	"github.com/google/uuid"

	"seoaudit/pkg/domain"
)

// maxTopIssues bounds how many issue titles are denormalized onto a lead.
const maxTopIssues = 3

// BuildSubmission assembles the immutable notification payload from a valid
// contact form and the triggering audit result: the contact fields, a
// snapshot of the report's key figures and the derived lead temperature.
func BuildSubmission(form domain.ContactForm, result *domain.AuditResult, now time.Time) domain.LeadSubmission {
	return domain.LeadSubmission{
		ID: domain.LeadID(uuid.New()),

		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Company: form.Company,

		URL:           result.URL,
		Scores:        result.Scores,
		CriticalCount: len(result.Critical),
		WarningCount:  len(result.Warnings),
		TopIssues:     topIssues(result),
		Temperature:   domain.TemperatureFor(result.Scores.Overall),

		CreatedAt: now,
	}
}

// topIssues picks the most pressing issue titles: critical first, then
// warnings, capped at maxTopIssues.
func topIssues(result *domain.AuditResult) []string {
	titles := make([]string, 0, maxTopIssues)
	for _, issue := range result.Critical {
		if len(titles) == maxTopIssues {
			return titles
		}
		titles = append(titles, issue.Title)
	}
	for _, issue := range result.Warnings {
		if len(titles) == maxTopIssues {
			return titles
		}
		titles = append(titles, issue.Title)
	}

	return titles
}
