package match

import "sort"

// TallyEntry is one unmatched label and how often it was seen.
type TallyEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Tally counts unmatched labels over a batch. It is not safe for
// concurrent use.
type Tally struct {
	counts map[string]int
	order  []string
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{counts: map[string]int{}}
}

// Add records one occurrence of label.
func (t *Tally) Add(label string) {
	if _, seen := t.counts[label]; !seen {
		t.order = append(t.order, label)
	}
	t.counts[label]++
}

// Record adds r's label when r is unmatched and reports whether it did.
func (t *Tally) Record(r Result) bool {
	if r.Matched {
		return false
	}
	t.Add(r.RawLabel)
	return true
}

// Len returns the number of distinct labels.
func (t *Tally) Len() int {
	return len(t.order)
}

// MostCommon returns the labels by descending count, first-seen order on ties.
func (t *Tally) MostCommon() []TallyEntry {
	out := make([]TallyEntry, 0, len(t.order))
	for _, label := range t.order {
		out = append(out, TallyEntry{Label: label, Count: t.counts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
