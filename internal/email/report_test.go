package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vibecheck/internal/domain"
	"vibecheck/internal/email"
)

func TestRenderUnmatchedReport(t *testing.T) {
	report := domain.UnmatchedReport{
		Source: "notubiz",
		Parties: []domain.UnmatchedName{
			{Label: "Partij <X>", Count: 3},
		},
		Candidates: []domain.UnmatchedName{
			{Label: "J. Jansen", Count: 1},
		},
	}

	subject, text, html := email.RenderUnmatchedReport(report)

	assert.Equal(t, "VibeCheck: unmatched names from notubiz", subject)
	assert.Contains(t, text, "Parties:\n     3x Partij <X>\n")
	assert.Contains(t, text, "Candidates:\n     1x J. Jansen\n")
	assert.Contains(t, html, "Partij &lt;X&gt;")
	assert.NotContains(t, html, "Partij <X>")
}

func TestRenderUnmatchedReport_SkipsEmptySections(t *testing.T) {
	_, text, _ := email.RenderUnmatchedReport(domain.UnmatchedReport{
		Source:  "polls",
		Parties: []domain.UnmatchedName{{Label: "Overig", Count: 2}},
	})

	assert.Contains(t, text, "Parties:")
	assert.NotContains(t, text, "Candidates:")
}
