// Package match resolves free-form party and person labels from external
// sources to the canonical records of an election.
package match

// Party is the canonical party record a raw label can resolve to.
type Party struct {
	ID           int64
	Name         string
	Abbreviation string
}

// Candidate is the canonical candidate record a raw person label can resolve to.
type Candidate struct {
	ID   int64
	Name string
}

// Method names the tier that produced a match.
type Method string

const (
	MethodNone      Method = ""
	MethodExact     Method = "exact"
	MethodAlias     Method = "alias"
	MethodSubstring Method = "substring"
	MethodFuzzy     Method = "fuzzy"
	MethodSurname   Method = "surname"
)

// Result is the outcome of resolving one raw label. An unmatched result is
// a normal outcome, not an error; RawLabel is always set so callers can keep
// it for audit.
type Result struct {
	RawLabel string
	ID       int64
	Matched  bool
	Method   Method
	// Score is the best similarity seen, for fuzzy matching only.
	Score float64
}

// IDPtr returns the matched id or nil, ready for a nullable column.
func (r Result) IDPtr() *int64 {
	if !r.Matched {
		return nil
	}
	id := r.ID
	return &id
}

func unmatched(raw string) Result {
	return Result{RawLabel: raw}
}
