package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"vibecheck/internal/domain"
	"vibecheck/internal/electionfile"
	"vibecheck/internal/match"
	"vibecheck/internal/port"
)

// HydrateInput selects the candidates to look up.
type HydrateInput struct {
	Platform    domain.SocialPlatform
	ConfigPath  string
	PartyFilter string
	DryRun      bool
}

// ProfileSuggestion is the best profile found for one candidate.
type ProfileSuggestion struct {
	Party       string         `json:"party"`
	Candidate   string         `json:"candidate"`
	Position    int            `json:"position"`
	Value       string         `json:"value"`
	DisplayName string         `json:"display_name"`
	Score       float64        `json:"score"`
	Decision    match.Decision `json:"decision"`
}

// HydrateResult lists what a hydration run found.
type HydrateResult struct {
	Checked   int                 `json:"checked"`
	Failed    int                 `json:"failed"`
	Accepted  []ProfileSuggestion `json:"accepted"`
	Suggested []ProfileSuggestion `json:"suggested"`
	Written   bool                `json:"written"`
}

// HydrateService finds social profiles for candidates that have none and
// writes confident matches back to the election file.
type HydrateService interface {
	Hydrate(ctx context.Context, input HydrateInput) (*HydrateResult, error)
}

type hydrateService struct {
	finders map[domain.SocialPlatform]port.ProfileFinder
}

// NewHydrateService creates a new HydrateService implementation.
func NewHydrateService(finders map[domain.SocialPlatform]port.ProfileFinder) HydrateService {
	return &hydrateService{finders: finders}
}

// platformRule describes how one platform is stored in the election file.
type platformRule struct {
	key        string
	thresholds match.Thresholds
	current    func(electionfile.CandidateSpec) string
	value      func(match.Profile) string
}

var platformRules = map[domain.SocialPlatform]platformRule{
	domain.PlatformBluesky: {
		key:        "bluesky",
		thresholds: match.BlueskyThresholds,
		current:    func(c electionfile.CandidateSpec) string { return c.Bluesky },
		value:      func(p match.Profile) string { return "@" + strings.TrimPrefix(p.Handle, "@") },
	},
	domain.PlatformLinkedIn: {
		key:        "linkedin",
		thresholds: match.LinkedInThresholds,
		current:    func(c electionfile.CandidateSpec) string { return c.LinkedIn },
		value:      func(p match.Profile) string { return p.Handle },
	},
}

func (s *hydrateService) Hydrate(ctx context.Context, input HydrateInput) (*HydrateResult, error) {
	rule, ok := platformRules[input.Platform]
	if !ok {
		return nil, fmt.Errorf("hydrate: unsupported platform %q", input.Platform)
	}
	finder, ok := s.finders[input.Platform]
	if !ok {
		return nil, fmt.Errorf("hydrate: no profile finder for %s", input.Platform)
	}

	file, err := electionfile.Load(input.ConfigPath)
	if err != nil {
		return nil, err
	}
	editor, err := electionfile.OpenEditor(input.ConfigPath)
	if err != nil {
		return nil, err
	}

	parties := file.FilterParties(input.PartyFilter)
	if len(parties) == 0 {
		log.Printf("hydrateService.Hydrate: WARNING: no party matches %q", input.PartyFilter)
	}

	result := &HydrateResult{}
	for _, party := range parties {
		for _, cand := range party.Candidates {
			if strings.TrimSpace(rule.current(cand)) != "" {
				continue
			}
			result.Checked++

			profiles, err := finder.FindProfiles(ctx, port.ProfileQuery{
				Name:  cand.Name,
				Party: party.Name,
				City:  file.Election.City,
			})
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				log.Printf("hydrateService.Hydrate: WARNING: %s (%s): %v", cand.Name, party.Name, err)
				result.Failed++
				continue
			}

			best := match.BestProfile(cand.Name, profiles, rule.thresholds)
			if best.Decision == match.DecisionNone {
				continue
			}
			suggestion := ProfileSuggestion{
				Party:       party.Name,
				Candidate:   cand.Name,
				Position:    cand.Position,
				Value:       rule.value(best.Profile),
				DisplayName: best.Profile.DisplayName,
				Score:       best.Score,
				Decision:    best.Decision,
			}

			if best.Decision == match.DecisionSuggest {
				log.Printf("hydrateService.Hydrate: suggest %s (%s) -> %s %q (%.2f)",
					cand.Name, party.Name, suggestion.Value, suggestion.DisplayName, suggestion.Score)
				result.Suggested = append(result.Suggested, suggestion)
				continue
			}

			log.Printf("hydrateService.Hydrate: accept %s (%s) -> %s %q (%.2f)",
				cand.Name, party.Name, suggestion.Value, suggestion.DisplayName, suggestion.Score)
			if err := editor.SetCandidateField(party.Name, cand.Position, rule.key, suggestion.Value); err != nil {
				return nil, err
			}
			result.Accepted = append(result.Accepted, suggestion)
		}
	}

	if input.DryRun || len(result.Accepted) == 0 {
		return result, nil
	}
	if err := editor.Save(); err != nil {
		return nil, err
	}
	result.Written = true
	log.Printf("hydrateService.Hydrate: wrote %d %s profiles to %s", len(result.Accepted), input.Platform, input.ConfigPath)
	return result, nil
}
