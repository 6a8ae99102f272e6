package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"seoaudit/pkg/domain"
)

// maxIssuesPerTable bounds the critical and warning tables in the PDF.
const maxIssuesPerTable = 5

// Branding holds the fixed agency details printed on every exported report.
type Branding struct {
	// Name is the agency name in the document header.
	Name string
	// Phone, Email and Website make up the contact footer.
	Phone   string
	Email   string
	Website string
}

// Filename derives the deterministic download name for a result: the
// normalized host plus the date, with every non-alphanumeric character
// replaced by a dash.
func Filename(normalizedURL string, now time.Time) string {
	host := normalizedURL
	if u, err := url.Parse(normalizedURL); err == nil && u.Host != "" {
		host = u.Host
	}

	return fmt.Sprintf("seo-audit-%s-%s.pdf", sanitize(host), now.Format("2006-01-02"))
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return '-'
	}, s)
}

// ExportPDF renders the result into a branded multi-section PDF: header,
// overall summary, the category score table with rating labels, up to five
// critical issues, up to five warnings and the contact footer. A nil result
// is a no-op: nil bytes, nil error.
func ExportPDF(result *domain.AuditResult, brand Branding, now time.Time) ([]byte, error) {
	if result == nil {
		return nil, nil
	}

	desc, err := documentJSON(result, brand, now)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &buf, nil); err != nil {
		return nil, fmt.Errorf("could not create PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// The types below describe the pdfcpu create-from-JSON primitives we use.
// Only the fields we set are declared.

type pdfFont struct {
	Name  string `json:"name"`
	Size  int    `json:"size"`
	Color string `json:"col,omitempty"`
}

type pdfText struct {
	Value    string   `json:"value"`
	Position []int    `json:"position"`
	Width    int      `json:"width,omitempty"`
	Font     *pdfFont `json:"font,omitempty"`
}

type pdfTable struct {
	Position   []int      `json:"position"`
	Width      int        `json:"width"`
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	ColWidths  []int      `json:"colWidths,omitempty"`
	LineHeight int        `json:"lheight"`
	Font       *pdfFont   `json:"font,omitempty"`
	Header     *pdfHeader `json:"header,omitempty"`
	Values     [][]string `json:"values"`
}

type pdfHeader struct {
	Values          []string `json:"values"`
	BackgroundColor string   `json:"bgCol,omitempty"`
	Font            *pdfFont `json:"font,omitempty"`
}

type pdfContent struct {
	Text  []pdfText  `json:"text,omitempty"`
	Table []pdfTable `json:"table,omitempty"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfDocument struct {
	Paper  string             `json:"paper"`
	Origin string             `json:"origin"`
	Pages  map[string]pdfPage `json:"pages"`
}

// documentJSON builds the pdfcpu page description for a result.
func documentJSON(result *domain.AuditResult, brand Branding, now time.Time) ([]byte, error) {
	heading := &pdfFont{Name: "Helvetica-Bold", Size: 18}
	section := &pdfFont{Name: "Helvetica-Bold", Size: 12}
	body := &pdfFont{Name: "Helvetica", Size: 10}
	muted := &pdfFont{Name: "Helvetica", Size: 9, Color: "#666666"}

	text := []pdfText{
		{Value: brand.Name, Position: []int{50, 60}, Font: heading},
		{Value: "Website SEO Audit Report", Position: []int{50, 85}, Font: section},
		{Value: fmt.Sprintf("%s — audited %s", result.URL, now.Format("January 2, 2006")),
			Position: []int{50, 105}, Font: muted},
		{Value: fmt.Sprintf("Overall score: %d/100 (%s)",
			result.Scores.Overall, ScoreLabel(result.Scores.Overall)),
			Position: []int{50, 140}, Font: section},
		{Value: "Category scores", Position: []int{50, 175}, Font: section},
	}

	tables := []pdfTable{scoreTable(result, body)}
	y := 305

	if len(result.Critical) > 0 {
		text = append(text, pdfText{Value: "Critical issues", Position: []int{50, y}, Font: section})
		tbl := issueTable(result.Critical, []int{50, y + 15}, body)
		tables = append(tables, tbl)
		y += 15 + (tbl.Rows+1)*tbl.LineHeight + 30
	}
	if len(result.Warnings) > 0 && y < 640 {
		text = append(text, pdfText{Value: "Warnings", Position: []int{50, y}, Font: section})
		tbl := issueTable(result.Warnings, []int{50, y + 15}, body)
		tables = append(tables, tbl)
	}

	text = append(text, pdfText{
		Value: fmt.Sprintf("Ready to fix these issues? %s — %s — %s",
			brand.Phone, brand.Email, brand.Website),
		Position: []int{50, 790},
		Font:     muted,
	})

	doc := pdfDocument{
		Paper:  "A4",
		Origin: "upperLeft",
		Pages: map[string]pdfPage{
			"1": {Content: pdfContent{Text: text, Table: tables}},
		},
	}

	return json.Marshal(doc)
}

func scoreTable(result *domain.AuditResult, font *pdfFont) pdfTable {
	values := make([][]string, 0, 4)
	for _, c := range NewView(result).Categories {
		values = append(values, []string{c.Name, fmt.Sprintf("%d/100", c.Score), c.Label})
	}

	return pdfTable{
		Position:   []int{50, 190},
		Width:      495,
		Rows:       len(values),
		Cols:       3,
		ColWidths:  []int{50, 25, 25},
		LineHeight: 20,
		Font:       font,
		Header: &pdfHeader{
			Values:          []string{"Category", "Score", "Rating"},
			BackgroundColor: "#E8E8E8",
			Font:            &pdfFont{Name: "Helvetica-Bold", Size: 10},
		},
		Values: values,
	}
}

func issueTable(issues []domain.Issue, position []int, font *pdfFont) pdfTable {
	n := len(issues)
	if n > maxIssuesPerTable {
		n = maxIssuesPerTable
	}

	values := make([][]string, 0, n)
	for _, issue := range issues[:n] {
		values = append(values, []string{issue.Title, string(issue.Severity)})
	}

	return pdfTable{
		Position:   position,
		Width:      495,
		Rows:       len(values),
		Cols:       2,
		ColWidths:  []int{80, 20},
		LineHeight: 20,
		Font:       font,
		Header: &pdfHeader{
			Values:          []string{"Issue", "Severity"},
			BackgroundColor: "#E8E8E8",
			Font:            &pdfFont{Name: "Helvetica-Bold", Size: 10},
		},
		Values: values,
	}
}
