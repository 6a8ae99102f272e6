package audit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"seoaudit/internal/audit"
	"seoaudit/pkg/domain"
	"seoaudit/pkg/fetch"
	"seoaudit/pkg/logger"
	"seoaudit/pkg/pagespeed"
	mockpagespeed "seoaudit/pkg/pagespeed/mock"
	"seoaudit/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func f(v float64) *float64 { return &v }

// sampleReport mirrors the end-to-end scenario: four category fractions plus
// a mix of passed, critical and unscored checks.
func sampleReport() *pagespeed.Report {
	return &pagespeed.Report{
		FinalURL: "https://nexolance.agency/",
		Categories: pagespeed.CategoryScores{
			SEO:           f(0.95),
			Performance:   f(0.45),
			Accessibility: f(0.88),
			BestPractices: f(0.92),
		},
		Checks: map[string]pagespeed.Check{
			"meta-description": {
				Title:       "Document has a meta description",
				Description: "Meta descriptions summarize page content for search results.",
				Score:       f(1),
			},
			"image-alt": {
				Title:       "Image elements have [alt] attributes",
				Description: "Informative alt text helps search engines and screen readers.",
				Score:       f(0.3),
			},
			"render-blocking-resources": {
				Title:       "Eliminate render-blocking resources",
				Description: "Resources are blocking the first paint of the page.",
				Score:       nil,
			},
			// not part of the reported checklist, must be ignored
			"unminified-javascript": {
				Title: "Minify JavaScript",
				Score: f(0.1),
			},
		},
	}
}

func TestRun_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mockpagespeed.NewMockClient(ctrl)
	provider.EXPECT().
		Analyze(gomock.Any(), "https://nexolance.agency").
		Return(sampleReport(), nil)

	a := audit.New(provider)

	res, err := a.Run(context.Background(), "nexolance.agency")
	require.NoError(t, err)

	require.Equal(t, "https://nexolance.agency", res.URL)
	require.Equal(t, 95, res.Scores.SEO)
	require.Equal(t, 45, res.Scores.Performance)
	require.Equal(t, 88, res.Scores.Accessibility)
	require.Equal(t, 92, res.Scores.BestPractices)
	require.Equal(t, 80, res.Scores.Overall)

	require.Len(t, res.Critical, 1)
	require.Equal(t, "Image elements have [alt] attributes", res.Critical[0].Title)
	require.Equal(t, domain.SeverityCritical, res.Critical[0].Severity)

	require.Len(t, res.Warnings, 1)
	require.Equal(t, "Eliminate render-blocking resources", res.Warnings[0].Title)
	require.Equal(t, domain.SeverityWarning, res.Warnings[0].Severity, "unscored checks classify as warnings")

	require.Len(t, res.Passed, 1)
	require.Equal(t, "Document has a meta description", res.Passed[0].Title)
}

func TestRun_SecondCallServedFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mockpagespeed.NewMockClient(ctrl)
	// exactly one upstream call for both Run invocations
	provider.EXPECT().
		Analyze(gomock.Any(), "https://example.com").
		Return(sampleReport(), nil).
		Times(1)

	a := audit.New(provider)

	first, err := a.Run(context.Background(), "example.com")
	require.NoError(t, err)

	// different raw spelling, same normalized URL
	second, err := a.Run(context.Background(), "https://www.example.com")
	require.NoError(t, err)

	require.Same(t, first, second, "cached result must be returned as-is")
}

func TestRun_SeparateAuditorsDoNotShareCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mockpagespeed.NewMockClient(ctrl)
	provider.EXPECT().
		Analyze(gomock.Any(), "https://example.com").
		Return(sampleReport(), nil).
		Times(2)

	a1 := audit.New(provider)
	a2 := audit.New(provider)

	_, err := a1.Run(context.Background(), "example.com")
	require.NoError(t, err)
	_, err = a2.Run(context.Background(), "example.com")
	require.NoError(t, err)
}

func TestRun_ValidationFailureSkipsNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no EXPECT: any provider call fails the test
	provider := mockpagespeed.NewMockClient(ctrl)
	a := audit.New(provider)

	_, err := a.Run(context.Background(), "")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrValidation)

	var sem *serrors.Error
	require.ErrorAs(t, err, &sem)
	require.NotEmpty(t, sem.UserMessage())
}

func TestRun_UpstreamFailureClassified(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mockpagespeed.NewMockClient(ctrl)
	provider.EXPECT().
		Analyze(gomock.Any(), "https://example.com").
		Return(nil, &fetch.StatusError{Code: 503, Body: "maintenance", Attempts: 5})

	a := audit.New(provider)

	_, err := a.Run(context.Background(), "example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrUpstream)

	var sem *serrors.Error
	require.ErrorAs(t, err, &sem)
	status, ok := sem.Status()
	require.True(t, ok)
	require.Equal(t, 503, status)
	require.NotContains(t, sem.UserMessage(), "maintenance", "raw upstream text must not reach the user")
}

func TestRun_FailedAuditNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mockpagespeed.NewMockClient(ctrl)
	first := provider.EXPECT().
		Analyze(gomock.Any(), "https://example.com").
		Return(nil, &fetch.StatusError{Code: 500, Body: "boom", Attempts: 5})
	provider.EXPECT().
		Analyze(gomock.Any(), "https://example.com").
		Return(sampleReport(), nil).
		After(first)

	a := audit.New(provider)

	_, err := a.Run(context.Background(), "example.com")
	require.Error(t, err)

	res, err := a.Run(context.Background(), "example.com")
	require.NoError(t, err, "a failed audit must not poison the cache")
	require.Equal(t, 80, res.Scores.Overall)
}
