package prefilter

import (
	"fmt"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/thegrep/literal"
)

// AhoCorasick is a prefilter for two or more literals. All literals are
// searched in a single pass over the haystack.
type AhoCorasick struct {
	automaton *ahocorasick.Automaton
	count     int
	bytes     int
	complete  bool
}

func newAhoCorasick(seq *literal.Seq) (*AhoCorasick, error) {
	builder := ahocorasick.NewBuilder()
	total := 0
	for _, lit := range seq.Literals() {
		builder.AddPattern(lit.Bytes)
		total += lit.Len()
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build aho-corasick automaton: %w", err)
	}
	return &AhoCorasick{
		automaton: auto,
		count:     seq.Len(),
		bytes:     total,
		complete:  seq.AllComplete(),
	}, nil
}

// Find returns the start of the first literal occurrence at or after start,
// or -1.
func (a *AhoCorasick) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	m := a.automaton.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsMatch reports whether any literal occurs in haystack.
func (a *AhoCorasick) IsMatch(haystack []byte) bool {
	return a.automaton.IsMatch(haystack)
}

// IsComplete returns true when every literal is complete.
func (a *AhoCorasick) IsComplete() bool {
	return a.complete
}

// HeapBytes returns the total size of the literals, a lower bound on the
// automaton's footprint.
func (a *AhoCorasick) HeapBytes() int {
	return a.bytes
}

// String returns the strategy name and literal count.
func (a *AhoCorasick) String() string {
	return fmt.Sprintf("AhoCorasick(%d literals)", a.count)
}
