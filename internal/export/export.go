// Package export renders poll results as CSV or Excel spreadsheets.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"vibecheck/internal/domain"
)

// Format is a spreadsheet format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat reads a format name; blank means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// columns is the header row of a poll export.
var columns = []string{
	"Poll Source",
	"Field Start",
	"Field End",
	"Sample Size",
	"Party",
	"Party ID",
	"Percentage",
	"Seats",
}

// pollRows converts a poll to one row per result line.
func pollRows(poll *domain.PollWithResults) [][]string {
	rows := make([][]string, 0, len(poll.Results))
	for _, r := range poll.Results {
		rows = append(rows, []string{
			poll.SourceName,
			formatDate(poll.FieldStart),
			poll.FieldEnd.Format(time.DateOnly),
			formatInt(poll.SampleSize),
			r.PartyNameRaw,
			formatID(r.PartyID),
			formatPercentage(r.Percentage),
			formatInt(r.Seats),
		})
	}
	return rows
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func formatPercentage(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 1, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces anything but letters, digits, - and _ with _,
// collapses runs of _ and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// Filename names the export of poll: {source}_{field_end}.{format}.
func Filename(poll *domain.PollWithResults, f Format) string {
	source := SanitizeFilename(poll.SourceName)
	if source == "" {
		source = "poll"
	}
	return fmt.Sprintf("%s_%s.%s", source, poll.FieldEnd.Format(time.DateOnly), f)
}
