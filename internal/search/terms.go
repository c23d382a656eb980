package search

import "strings"

// TermSet is the ordered collection of search keywords under construction.
// Terms are trimmed, non-blank, case-sensitive, and distinct; editing the
// set never triggers network I/O.
type TermSet struct {
	terms []string
}

// NewTermSet creates an empty term set.
func NewTermSet() *TermSet {
	return &TermSet{}
}

// Add trims raw and appends it when non-blank and not already present.
// Returns whether the set changed.
func (t *TermSet) Add(raw string) bool {
	term := strings.TrimSpace(raw)
	if term == "" {
		return false
	}
	for _, existing := range t.terms {
		if existing == term {
			return false
		}
	}
	t.terms = append(t.terms, term)
	return true
}

// RemoveAt deletes the term at the given position. Returns whether the set
// changed.
func (t *TermSet) RemoveAt(index int) bool {
	if index < 0 || index >= len(t.terms) {
		return false
	}
	t.terms = append(t.terms[:index], t.terms[index+1:]...)
	return true
}

// RemoveLast deletes the most recently added term. Convenience for the
// backspace-on-empty-input affordance.
func (t *TermSet) RemoveLast() bool {
	return t.RemoveAt(len(t.terms) - 1)
}

// Clear empties the set.
func (t *TermSet) Clear() {
	t.terms = nil
}

// Len returns the number of terms.
func (t *TermSet) Len() int {
	return len(t.terms)
}

// Terms returns a copy of the ordered term list.
func (t *TermSet) Terms() []string {
	out := make([]string, len(t.terms))
	copy(out, t.terms)
	return out
}
