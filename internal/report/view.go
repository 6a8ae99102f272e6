// Package report turns a completed audit result into its presentation
// forms: a bounded view model shared by the API and the terminal renderer,
// and an exportable PDF document.
package report

import (
	"seoaudit/pkg/domain"
)

// Score labels and their thresholds. The same thresholds drive the label
// text, the terminal colors and the PDF rating column.
const (
	LabelGood = "Good"
	LabelFair = "Fair"
	LabelPoor = "Poor"

	goodThreshold = 80
	fairThreshold = 50
)

// ScoreLabel maps a 0-100 score to its rating label.
func ScoreLabel(score int) string {
	switch {
	case score >= goodThreshold:
		return LabelGood
	case score >= fairThreshold:
		return LabelFair
	default:
		return LabelPoor
	}
}

// CategoryView is one labeled category score.
type CategoryView struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Label string `json:"label"`
}

// View is the display transform of an AuditResult: scores with rating
// labels plus the issue buckets. It holds no business logic of its own.
type View struct {
	URL          string `json:"url"`
	Overall      int    `json:"overall"`
	OverallLabel string `json:"overallLabel"`

	Categories []CategoryView `json:"categories"`

	Critical []domain.Issue `json:"critical"`
	Warnings []domain.Issue `json:"warnings"`
	Passed   []domain.Issue `json:"passed"`
}

// NewView builds the view model for a result. A nil result yields nil.
func NewView(res *domain.AuditResult) *View {
	if res == nil {
		return nil
	}

	return &View{
		URL:          res.URL,
		Overall:      res.Scores.Overall,
		OverallLabel: ScoreLabel(res.Scores.Overall),
		Categories: []CategoryView{
			{Name: "Search Optimization", Score: res.Scores.SEO, Label: ScoreLabel(res.Scores.SEO)},
			{Name: "Performance", Score: res.Scores.Performance, Label: ScoreLabel(res.Scores.Performance)},
			{Name: "Accessibility", Score: res.Scores.Accessibility, Label: ScoreLabel(res.Scores.Accessibility)},
			{Name: "Best Practices", Score: res.Scores.BestPractices, Label: ScoreLabel(res.Scores.BestPractices)},
		},
		Critical: res.Critical,
		Warnings: res.Warnings,
		Passed:   res.Passed,
	}
}
