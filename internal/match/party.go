package match

import (
	"strings"

	"vibecheck/internal/textnorm"
)

// FuzzyThreshold is the minimum similarity MatchFuzzy accepts.
const FuzzyThreshold = 0.85

// PartyMatcher resolves raw party labels against an election's parties.
// It holds no mutable state and is safe for concurrent use.
type PartyMatcher struct {
	aliases AliasTable
}

// NewPartyMatcher creates a matcher using the given alias table.
func NewPartyMatcher(aliases AliasTable) *PartyMatcher {
	return &PartyMatcher{aliases: aliases}
}

// Match resolves raw in three tiers, stopping at the first hit:
// case-insensitive equality with a name or abbreviation, the alias table,
// then substring containment in either direction on normalized forms
// (name before abbreviation). Within a tier the first party in the
// caller's order wins.
func (m *PartyMatcher) Match(raw string, parties []Party) Result {
	lower := strings.ToLower(strings.TrimSpace(raw))
	norm := textnorm.Normalize(raw)
	if norm == "" {
		return unmatched(raw)
	}

	for _, p := range parties {
		if lower == strings.ToLower(p.Name) || lower == strings.ToLower(p.Abbreviation) {
			return Result{RawLabel: raw, ID: p.ID, Matched: true, Method: MethodExact}
		}
	}

	if target, ok := m.aliases.Lookup(raw); ok {
		target = strings.ToLower(target)
		for _, p := range parties {
			if target == strings.ToLower(p.Name) || target == strings.ToLower(p.Abbreviation) {
				return Result{RawLabel: raw, ID: p.ID, Matched: true, Method: MethodAlias}
			}
		}
	}

	for _, p := range parties {
		if textnorm.ContainsEither(norm, textnorm.Normalize(p.Name)) ||
			textnorm.ContainsEither(norm, textnorm.Normalize(p.Abbreviation)) {
			return Result{RawLabel: raw, ID: p.ID, Matched: true, Method: MethodSubstring}
		}
	}

	return unmatched(raw)
}

// MatchFuzzy scores raw against every party's name and abbreviation and
// accepts the best one if it reaches FuzzyThreshold. Ties keep the first
// candidate seen. The best score is reported even when nothing matched.
func (m *PartyMatcher) MatchFuzzy(raw string, parties []Party) Result {
	norm := textnorm.Normalize(raw)
	if norm == "" {
		return unmatched(raw)
	}

	var (
		bestID    int64
		bestScore float64
		found     bool
	)
	for _, p := range parties {
		for _, label := range [2]string{p.Name, p.Abbreviation} {
			candidate := textnorm.Normalize(label)
			if candidate == "" {
				continue
			}
			score := textnorm.Similarity(norm, candidate)
			if score > bestScore {
				bestScore = score
				bestID = p.ID
				found = true
			}
		}
	}

	if found && bestScore >= FuzzyThreshold {
		return Result{RawLabel: raw, ID: bestID, Matched: true, Method: MethodFuzzy, Score: bestScore}
	}
	return Result{RawLabel: raw, Score: bestScore}
}
