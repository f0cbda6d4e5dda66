// Package literal provides types and operations for representing and manipulating
// literal byte sequences extracted from patterns.
//
// The primary use case is prefilter optimization: by extracting literal strings
// that every match must contain (e.g., "hello" from hello.*world), a search can
// reject lines that cannot match before running the automaton.
//
// Key concepts:
//   - A Literal is a concrete byte sequence that may appear in matches
//   - A Seq is a set of alternative literals (e.g., from alternations like foo|bar)
//   - Minimize drops literals made redundant by shorter ones
package literal

import (
	"bytes"
	"sort"
	"strings"
)

// Literal represents a literal byte sequence extracted from a pattern.
// The Complete flag indicates whether finding this literal in a haystack is
// enough to prove that the pattern matches somewhere in it (true) or only a
// necessary condition (false).
//
// Example:
//   - Pattern hello → Literal{[]byte("hello"), true}
//   - Pattern hello.*world → Literal{[]byte("hello"), false}
type Literal struct {
	// Bytes contains the UTF-8 encoded literal.
	Bytes []byte

	// Complete indicates whether finding the literal proves a match.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq represents a set of alternative literals.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Printf("Sequence has %d literals\n", seq.Len()) // Output: Sequence has 2 literals
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// Literals returns the literals in order. The slice must not be modified.
func (s *Seq) Literals() []Literal {
	if s == nil {
		return nil
	}
	return s.literals
}

// AllComplete reports whether every literal is complete. An empty sequence
// is never complete.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// MinLen returns the length of the shortest literal, or 0 for an empty sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	minLen := s.literals[0].Len()
	for _, lit := range s.literals[1:] {
		minLen = min(minLen, lit.Len())
	}
	return minLen
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}

	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		cloned[i] = Literal{
			Bytes:    bytes.Clone(lit.Bytes),
			Complete: lit.Complete,
		}
	}
	return &Seq{literals: cloned}
}

// MakeInexact clears the Complete flag of every literal.
func (s *Seq) MakeInexact() {
	if s == nil {
		return
	}
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}

// Minimize removes duplicate and redundant literals.
//
// For substring search, a literal L is redundant if a shorter kept literal S
// occurs inside L: any haystack containing L also contains S. Dropping L keeps
// both the "every match contains one of them" property and completeness.
//
// Literals are left sorted by length, then bytewise.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.SliceStable(s.literals, func(i, j int) bool {
		a, b := s.literals[i].Bytes, s.literals[j].Bytes
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return bytes.Compare(a, b) < 0
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		redundant := false
		for j := range kept {
			if bytes.Contains(current.Bytes, kept[j].Bytes) {
				// A duplicate that is complete upgrades the kept copy.
				if bytes.Equal(current.Bytes, kept[j].Bytes) && current.Complete {
					kept[j].Complete = true
				}
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, current)
		}
	}

	s.literals = kept
}

// String returns the literals as a bracketed, quoted list.
func (s *Seq) String() string {
	if s.IsEmpty() {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, lit := range s.literals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('"')
		sb.Write(lit.Bytes)
		sb.WriteByte('"')
	}
	sb.WriteByte(']')
	return sb.String()
}
