package prefilter

import (
	"bytes"
	"strconv"
)

// Memmem is a prefilter for a single literal.
type Memmem struct {
	needle   []byte
	complete bool
}

func newMemmem(needle []byte, complete bool) *Memmem {
	return &Memmem{
		needle:   bytes.Clone(needle),
		complete: complete,
	}
}

// Find returns the index of the first occurrence of the needle at or after
// start, or -1.
func (m *Memmem) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	pos := bytes.Index(haystack[start:], m.needle)
	if pos == -1 {
		return -1
	}
	return start + pos
}

// IsMatch reports whether the needle occurs in haystack.
func (m *Memmem) IsMatch(haystack []byte) bool {
	return bytes.Contains(haystack, m.needle)
}

// IsComplete returns true when finding the needle proves a match.
func (m *Memmem) IsComplete() bool {
	return m.complete
}

// HeapBytes returns the size of the stored needle.
func (m *Memmem) HeapBytes() int {
	return cap(m.needle)
}

// String returns the strategy name and needle.
func (m *Memmem) String() string {
	return "Memmem(" + strconv.Quote(string(m.needle)) + ")"
}
