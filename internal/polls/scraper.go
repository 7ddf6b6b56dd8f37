// Package polls reads opinion polls from their publishers: fieldwork
// periods and sample sizes from Dutch methodology text, and party results
// from published chart data.
package polls

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Source is one configured poll publication.
type Source struct {
	Name    string
	URL     string
	Type    string
	Enabled bool

	// Inline data, used by the manual source type.
	FieldStart  string
	FieldEnd    string
	PublishedAt string
	SampleSize  int
	Results     []json.RawMessage
}

// Scraped is a poll as read from its source, before party matching.
type Scraped struct {
	FieldStart  *time.Time
	FieldEnd    *time.Time
	PublishedAt *time.Time
	SampleSize  *int
	ChartTitle  string
	Results     []ResultRow
}

// Scraper reads one poll from a source.
type Scraper interface {
	Scrape(ctx context.Context, src Source) (*Scraped, error)
}

// Registry maps a source type to the scraper that handles it.
type Registry map[string]Scraper

// Lookup returns the scraper for a source type.
func (r Registry) Lookup(sourceType string) (Scraper, error) {
	s, ok := r[sourceType]
	if !ok {
		return nil, fmt.Errorf("no scraper for source type %q", sourceType)
	}
	return s, nil
}

// ManualScraper serves polls typed into the election file by hand.
type ManualScraper struct{}

func (ManualScraper) Scrape(_ context.Context, src Source) (*Scraped, error) {
	rows, err := ParseResults(SchemaManual, src.Results)
	if err != nil {
		return nil, err
	}
	out := &Scraped{
		FieldStart:  parseISODate(src.FieldStart),
		FieldEnd:    parseISODate(src.FieldEnd),
		PublishedAt: parseISODate(src.PublishedAt),
		Results:     rows,
	}
	if src.SampleSize > 0 {
		n := src.SampleSize
		out.SampleSize = &n
	}
	return out, nil
}

func parseISODate(s string) *time.Time {
	if s == "" {
		return nil
	}
	return ParsePublicationDate(s)
}
