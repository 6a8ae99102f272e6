package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	good = color.New(color.FgGreen).SprintFunc()  //nolint: gochecknoglobals
	fair = color.New(color.FgYellow).SprintFunc() //nolint: gochecknoglobals
	poor = color.New(color.FgRed).SprintFunc()    //nolint: gochecknoglobals
	bold = color.New(color.Bold).SprintFunc()     //nolint: gochecknoglobals
)

// colorize wraps a string in the ANSI color matching its rating label.
func colorize(label, s string) string {
	switch label {
	case LabelGood:
		return good(s)
	case LabelFair:
		return fair(s)
	default:
		return poor(s)
	}
}

// WriteTerminal renders the view as a color-coded terminal report.
func WriteTerminal(w io.Writer, v *View) {
	if v == nil {
		return
	}

	fmt.Fprintf(w, "\n%s  %s\n\n", bold("SEO Audit Report"), v.URL)
	fmt.Fprintf(w, "  Overall score: %s (%s)\n\n",
		colorize(v.OverallLabel, fmt.Sprintf("%d/100", v.Overall)),
		colorize(v.OverallLabel, v.OverallLabel))

	for _, c := range v.Categories {
		fmt.Fprintf(w, "  %-20s %s %s\n", c.Name,
			colorize(c.Label, fmt.Sprintf("%3d", c.Score)),
			colorize(c.Label, c.Label))
	}

	if len(v.Critical) > 0 {
		fmt.Fprintf(w, "\n  %s\n", bold(fmt.Sprintf("Critical issues (%d)", len(v.Critical))))
		for _, issue := range v.Critical {
			fmt.Fprintf(w, "    %s %s\n", poor("✗"), issue.Title)
		}
	}
	if len(v.Warnings) > 0 {
		fmt.Fprintf(w, "\n  %s\n", bold(fmt.Sprintf("Warnings (%d)", len(v.Warnings))))
		for _, issue := range v.Warnings {
			fmt.Fprintf(w, "    %s %s\n", fair("!"), issue.Title)
		}
	}
	if len(v.Passed) > 0 {
		fmt.Fprintf(w, "\n  %s\n", bold(fmt.Sprintf("Passed checks (%d)", len(v.Passed))))
		for _, issue := range v.Passed {
			fmt.Fprintf(w, "    %s %s\n", good("✓"), issue.Title)
		}
	}
	fmt.Fprintln(w)
}
