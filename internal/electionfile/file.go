// Package electionfile reads the curated election YAML (election, parties,
// candidates, poll sources) and writes hydrated fields back without
// disturbing the rest of the document.
package electionfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"vibecheck/internal/polls"
)

// File is the parsed election YAML.
type File struct {
	Election       ElectionSpec        `yaml:"election"`
	Parties        []PartySpec         `yaml:"parties"`
	PollingSources []PollingSourceSpec `yaml:"polling_sources"`
	Topics         []string            `yaml:"topics"`
}

type ElectionSpec struct {
	Name string `yaml:"name"`
	City string `yaml:"city"`
	Date string `yaml:"date"`
}

type PartySpec struct {
	Name          string          `yaml:"name"`
	Abbreviation  string          `yaml:"abbreviation"`
	Website       string          `yaml:"website"`
	Logo          string          `yaml:"logo"`
	CurrentSeats  *int            `yaml:"current_seats"`
	PolledSeats   *int            `yaml:"polled_seats"`
	PollUpdatedAt string          `yaml:"poll_updated_at"`
	ProgramPDF    string          `yaml:"program_pdf"`
	Candidates    []CandidateSpec `yaml:"candidates"`
}

type CandidateSpec struct {
	Name     string `yaml:"name"`
	Position int    `yaml:"position"`
	Bluesky  string `yaml:"bluesky"`
	LinkedIn string `yaml:"linkedin"`
}

type PollingSourceSpec struct {
	Name        string           `yaml:"name"`
	URL         string           `yaml:"url"`
	Type        string           `yaml:"type"`
	Enabled     *bool            `yaml:"enabled"`
	FieldStart  string           `yaml:"field_start"`
	FieldEnd    string           `yaml:"field_end"`
	PublishedAt string           `yaml:"published_at"`
	SampleSize  int              `yaml:"sample_size"`
	Results     []map[string]any `yaml:"results"`
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading election file: %w", err)
	}
	return Parse(data)
}

// Parse parses election YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing election file: %w", err)
	}
	if f.Election.Name == "" || f.Election.City == "" || f.Election.Date == "" {
		return nil, fmt.Errorf("parsing election file: election name, city and date are required")
	}
	return &f, nil
}

// DataDir is the directory program PDF paths are relative to: the parent
// of the directory holding the election file.
func DataDir(path string) string {
	return filepath.Dir(filepath.Dir(path))
}

// ParsedDate returns the election day.
func (e ElectionSpec) ParsedDate() (time.Time, error) {
	d, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("election date %q: %w", e.Date, err)
	}
	return d, nil
}

// Slug identifies the election as "<city>-<year>", e.g. "amsterdam-2026".
func (e ElectionSpec) Slug() (string, error) {
	d, err := e.ParsedDate()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d", strings.ToLower(e.City), d.Year()), nil
}

// Matches reports whether filter names this party by name or abbreviation,
// ignoring case.
func (p PartySpec) Matches(filter string) bool {
	needle := strings.ToLower(strings.TrimSpace(filter))
	return strings.ToLower(p.Name) == needle || strings.ToLower(p.Abbreviation) == needle
}

// FilterParties returns the parties matching filter, or all when filter is empty.
func (f *File) FilterParties(filter string) []PartySpec {
	if strings.TrimSpace(filter) == "" {
		return f.Parties
	}
	var out []PartySpec
	for _, p := range f.Parties {
		if p.Matches(filter) {
			out = append(out, p)
		}
	}
	return out
}

// IsEnabled reports whether the source should be fetched; sources are
// enabled unless switched off.
func (s PollingSourceSpec) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Source converts the entry for the poll scrapers.
func (s PollingSourceSpec) Source() (polls.Source, error) {
	src := polls.Source{
		Name:        s.Name,
		URL:         s.URL,
		Type:        s.Type,
		Enabled:     s.IsEnabled(),
		FieldStart:  s.FieldStart,
		FieldEnd:    s.FieldEnd,
		PublishedAt: s.PublishedAt,
		SampleSize:  s.SampleSize,
	}
	for i, r := range s.Results {
		raw, err := json.Marshal(r)
		if err != nil {
			return polls.Source{}, fmt.Errorf("poll source %q result %d: %w", s.Name, i, err)
		}
		src.Results = append(src.Results, raw)
	}
	return src, nil
}
