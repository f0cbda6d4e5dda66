// Package prefilter provides fast candidate filtering for line search using
// extracted literal sequences.
//
// A prefilter quickly rejects haystacks that cannot possibly match the full
// pattern, so the automaton only runs on lines that contain a required
// literal. The strategy is selected from the extracted literals:
//   - Single literal → Memmem (substring search)
//   - Two or more literals → AhoCorasick (multi-pattern automaton)
//
// Example usage:
//
//	ast, _ := syntax.ParseString("(error|warning): .*")
//	seq := literal.New(literal.DefaultConfig()).Required(ast)
//	pf := prefilter.New(seq)
//	if pf != nil && !pf.IsMatch(line) {
//	    // skip the automaton, the line cannot match
//	}
package prefilter

import (
	"github.com/coregx/thegrep/literal"
)

// Prefilter is used to quickly find candidate matches before running the
// full automaton.
//
// Key methods:
//   - Find: returns the position of the next literal occurrence
//   - IsMatch: reports whether any literal occurs
//   - IsComplete: indicates if a prefilter hit is sufficient (no verification needed)
type Prefilter interface {
	// Find returns the index of the first literal occurrence starting at or
	// after start, or -1 if there is none.
	Find(haystack []byte, start int) int

	// IsMatch reports whether any literal occurs in haystack.
	IsMatch(haystack []byte) bool

	// IsComplete returns true if a prefilter hit guarantees that the pattern
	// matches somewhere in the haystack.
	//
	// This only holds for substring search. A full-string match must still be
	// verified by the automaton.
	IsComplete() bool

	// HeapBytes returns the number of bytes of heap memory used by this prefilter.
	HeapBytes() int

	// String names the strategy and its literals.
	String() string
}

// New selects the best prefilter for seq.
// Returns nil if seq is empty or contains an empty literal, which would
// match everywhere and filter nothing.
func New(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() {
		return nil
	}
	for _, lit := range seq.Literals() {
		if lit.Len() == 0 {
			return nil
		}
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		return newMemmem(lit.Bytes, lit.Complete)
	}

	pf, err := newAhoCorasick(seq)
	if err != nil {
		return nil
	}
	return pf
}
