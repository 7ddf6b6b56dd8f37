package match

// MatchCandidate resolves a council person label to a candidate by equal
// surname keys; the first candidate in order wins. externalID is the
// source's own person id. It is accepted for the record but does not take
// part in matching.
func MatchCandidate(rawName string, externalID *int64, candidates []Candidate) Result {
	key := SurnameKey(rawName)
	if key == "" {
		return unmatched(rawName)
	}
	for _, c := range candidates {
		if SurnameKey(c.Name) == key {
			return Result{RawLabel: rawName, ID: c.ID, Matched: true, Method: MethodSurname}
		}
	}
	return unmatched(rawName)
}
