package match

import "vibecheck/internal/textnorm"

// AliasTable maps an alias key (see textnorm.Key) to the canonical party
// name or abbreviation it stands for. Build one with NewAliasTable; the
// zero value is an empty table.
type AliasTable struct {
	targets map[string]string
}

// NewAliasTable builds an immutable table from alias -> canonical target
// pairs. Aliases are keyed by textnorm.Key, so spelling and spacing
// variants of the same alias collapse together. Later entries win.
func NewAliasTable(pairs map[string]string) AliasTable {
	targets := make(map[string]string, len(pairs))
	for alias, target := range pairs {
		k := textnorm.Key(alias)
		if k == "" || target == "" {
			continue
		}
		targets[k] = target
	}
	return AliasTable{targets: targets}
}

// Lookup returns the canonical target for a raw label.
func (t AliasTable) Lookup(raw string) (string, bool) {
	if t.targets == nil {
		return "", false
	}
	target, ok := t.targets[textnorm.Key(raw)]
	return target, ok
}

// Len returns the number of distinct alias keys.
func (t AliasTable) Len() int {
	return len(t.targets)
}

// DefaultAliases returns the curated table for Amsterdam council labels.
func DefaultAliases() AliasTable {
	return NewAliasTable(map[string]string{
		"groenlinks":            "GroenLinks",
		"pvda":                  "PvdA",
		"partij van de arbeid":  "PvdA",
		"vvd":                   "VVD",
		"d66":                   "D66",
		"partij voor de dieren": "PvdD",
		"pvdd":                  "PvdD",
		"bij1":                  "BIJ1",
		"volt":                  "VOLT",
		"cda":                   "CDA",
		"sp":                    "SP",
		"ja21":                  "JA21",
		"denk":                  "DENK",
		"forum voor democratie": "FvD",
		"fvd":                   "FvD",
	})
}
