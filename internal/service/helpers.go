package service

import (
	"strings"

	"vibecheck/internal/domain"
	"vibecheck/internal/match"
)

// optional returns nil for blank strings so they are stored as NULL.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func matchParties(parties []domain.Party) []match.Party {
	out := make([]match.Party, len(parties))
	for i, p := range parties {
		out[i] = match.Party{ID: p.ID, Name: p.Name, Abbreviation: p.Abbreviation}
	}
	return out
}

func matchCandidates(candidates []domain.Candidate) []match.Candidate {
	out := make([]match.Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = match.Candidate{ID: c.ID, Name: c.Name}
	}
	return out
}

func unmatchedNames(t *match.Tally) []domain.UnmatchedName {
	if t == nil {
		return nil
	}
	entries := t.MostCommon()
	out := make([]domain.UnmatchedName, len(entries))
	for i, e := range entries {
		out[i] = domain.UnmatchedName{Label: e.Label, Count: e.Count}
	}
	return out
}
