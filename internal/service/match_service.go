package service

import (
	"context"
	"strings"

	"vibecheck/internal/domain"
	"vibecheck/internal/match"
	"vibecheck/internal/port"
)

// MatchKind selects the matcher a preview runs.
type MatchKind string

const (
	MatchKindParty      MatchKind = "party"
	MatchKindPartyFuzzy MatchKind = "party_fuzzy"
	MatchKindCandidate  MatchKind = "candidate"
)

// MatchInput is the DTO for a matcher preview.
type MatchInput struct {
	Kind   MatchKind `json:"kind" binding:"required"`
	Labels []string  `json:"labels" binding:"required"`
}

// MatchPreview is how one raw label resolves.
type MatchPreview struct {
	Label   string       `json:"label"`
	Matched bool         `json:"matched"`
	ID      *int64       `json:"id,omitempty"`
	Name    string       `json:"name,omitempty"`
	Method  match.Method `json:"method,omitempty"`
	Score   float64      `json:"score,omitempty"`
}

// MatchService previews how raw labels resolve against the current
// election, for curating aliases.
type MatchService interface {
	Preview(ctx context.Context, input MatchInput) ([]MatchPreview, error)
}

type matchService struct {
	elections  port.ElectionRepository
	parties    port.PartyRepository
	candidates port.CandidateRepository
	matcher    *match.PartyMatcher
}

// NewMatchService creates a new MatchService implementation.
func NewMatchService(
	elections port.ElectionRepository,
	parties port.PartyRepository,
	candidates port.CandidateRepository,
	matcher *match.PartyMatcher,
) MatchService {
	return &matchService{
		elections:  elections,
		parties:    parties,
		candidates: candidates,
		matcher:    matcher,
	}
}

func (s *matchService) Preview(ctx context.Context, input MatchInput) ([]MatchPreview, error) {
	switch input.Kind {
	case MatchKindParty, MatchKindPartyFuzzy, MatchKindCandidate:
	default:
		return nil, domain.ErrInvalidMatchKind
	}

	election, err := s.elections.Current(ctx)
	if err != nil {
		return nil, err
	}

	names := map[int64]string{}
	var resolve func(string) match.Result

	if input.Kind == MatchKindCandidate {
		candidates, err := s.candidates.ListByElection(ctx, election.ID)
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			names[c.ID] = c.Name
		}
		refs := matchCandidates(candidates)
		resolve = func(raw string) match.Result { return match.MatchCandidate(raw, nil, refs) }
	} else {
		parties, err := s.parties.ListByElection(ctx, election.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range parties {
			names[p.ID] = p.Name
		}
		refs := matchParties(parties)
		if input.Kind == MatchKindPartyFuzzy {
			resolve = func(raw string) match.Result { return s.matcher.MatchFuzzy(raw, refs) }
		} else {
			resolve = func(raw string) match.Result { return s.matcher.Match(raw, refs) }
		}
	}

	out := make([]MatchPreview, 0, len(input.Labels))
	for _, label := range input.Labels {
		if strings.TrimSpace(label) == "" {
			continue
		}
		r := resolve(label)
		p := MatchPreview{
			Label:   label,
			Matched: r.Matched,
			ID:      r.IDPtr(),
			Method:  r.Method,
			Score:   r.Score,
		}
		if r.Matched {
			p.Name = names[r.ID]
		}
		out = append(out, p)
	}
	return out, nil
}
