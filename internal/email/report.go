package email

import (
	"fmt"
	"html"
	"strings"

	"vibecheck/internal/domain"
)

// RenderUnmatchedReport renders the subject, plain-text and HTML bodies of an
// unmatched-names report.
func RenderUnmatchedReport(report domain.UnmatchedReport) (subject, text, htmlBody string) {
	subject = fmt.Sprintf("VibeCheck: unmatched names from %s", report.Source)

	var tb, hb strings.Builder
	fmt.Fprintf(&tb, "Unmatched names from %s.\n", report.Source)
	hb.WriteString(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
`)
	fmt.Fprintf(&hb, "  <h2 style=\"color: #333;\">Unmatched names from %s</h2>\n", html.EscapeString(report.Source))

	writeSection(&tb, &hb, "Parties", report.Parties)
	writeSection(&tb, &hb, "Candidates", report.Candidates)

	tb.WriteString("\nAdd aliases or fix the election file to resolve them.\n")
	hb.WriteString("</body>\n</html>")
	return subject, tb.String(), hb.String()
}

func writeSection(tb, hb *strings.Builder, title string, names []domain.UnmatchedName) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(tb, "\n%s:\n", title)
	fmt.Fprintf(hb, "  <h3>%s</h3>\n  <ul>\n", title)
	for _, n := range names {
		fmt.Fprintf(tb, "  %4dx %s\n", n.Count, n.Label)
		fmt.Fprintf(hb, "    <li>%s <span style=\"color: #999;\">(%dx)</span></li>\n", html.EscapeString(n.Label), n.Count)
	}
	hb.WriteString("  </ul>\n")
}
