package lead

import (
	"fmt"
	"net/url"
	"strings"

	"seoaudit/pkg/domain"
)

// DeepLink builds the WhatsApp click-to-chat URI for a lead: a wa.me link
// with a URL-encoded human-readable summary. Constructing it is pure string
// work; it performs no network call and therefore can never fail or block a
// submission. Per current product behavior the link is prepared and logged
// only, never dispatched automatically.
func DeepLink(phone string, sub domain.LeadSubmission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New SEO audit lead (%s)\n", sub.Temperature)
	fmt.Fprintf(&b, "Name: %s\n", sub.Name)
	if sub.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", sub.Company)
	}
	fmt.Fprintf(&b, "Website: %s\n", sub.URL)
	fmt.Fprintf(&b, "Overall score: %d/100\n", sub.Scores.Overall)
	fmt.Fprintf(&b, "Critical issues: %d, warnings: %d\n", sub.CriticalCount, sub.WarningCount)
	if len(sub.TopIssues) > 0 {
		fmt.Fprintf(&b, "Top issues: %s\n", strings.Join(sub.TopIssues, "; "))
	}
	fmt.Fprintf(&b, "Contact: %s / %s", sub.Phone, sub.Email)

	return fmt.Sprintf("https://wa.me/%s?text=%s",
		strings.TrimPrefix(phone, "+"),
		url.QueryEscape(b.String()))
}
