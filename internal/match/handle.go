package match

import (
	"regexp"
	"strings"

	"vibecheck/internal/textnorm"
)

// Thresholds decide what a profile similarity score means: at or above
// Accept the profile is linked automatically, at or above Suggest it is
// offered for manual review.
type Thresholds struct {
	Accept  float64
	Suggest float64
}

var (
	// BlueskyThresholds apply to Bluesky display names.
	BlueskyThresholds = Thresholds{Accept: 0.85, Suggest: 0.60}
	// LinkedInThresholds apply to names recovered from LinkedIn slugs,
	// which lose diacritics and particles and so score lower.
	LinkedInThresholds = Thresholds{Accept: 0.75, Suggest: 0.55}
)

// Decision classifies a profile match.
type Decision string

const (
	DecisionNone    Decision = "none"
	DecisionSuggest Decision = "suggest"
	DecisionAccept  Decision = "accept"
)

// Profile is one search hit on a social platform.
type Profile struct {
	Handle      string
	DisplayName string
}

// ProfileMatch is the best profile found for a person.
type ProfileMatch struct {
	Profile  Profile
	Score    float64
	Decision Decision
}

// BestProfile picks the profile whose display name is most similar to name,
// compared as ASCII-folded strings. Profiles without a display name are
// ignored; ties keep the first.
func BestProfile(name string, profiles []Profile, t Thresholds) ProfileMatch {
	target := textnorm.FoldASCII(name)
	best := ProfileMatch{Decision: DecisionNone}
	if target == "" {
		return best
	}
	for _, p := range profiles {
		label := textnorm.FoldASCII(p.DisplayName)
		if label == "" {
			continue
		}
		score := textnorm.Similarity(target, label)
		if score > best.Score {
			best.Profile = p
			best.Score = score
		}
	}
	switch {
	case best.Score >= t.Accept:
		best.Decision = DecisionAccept
	case best.Score >= t.Suggest:
		best.Decision = DecisionSuggest
	}
	return best
}

var slugSuffix = regexp.MustCompile(`-[0-9a-f]{4,}$`)

// SlugToName turns a LinkedIn profile slug such as "jan-de-vries-4a1b2c"
// into a comparable name ("jan de vries").
func SlugToName(slug string) string {
	s := slugSuffix.ReplaceAllString(slug, "")
	return strings.ReplaceAll(s, "-", " ")
}
