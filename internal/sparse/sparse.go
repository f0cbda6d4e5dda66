// Package sparse provides the state sets used by NFA simulation.
//
// A sparse set supports O(1) insertion, membership testing and clearing
// while keeping its members in a dense slice in insertion order. The
// universe of values is fixed at construction: state IDs of one automaton.
package sparse

// SparseSet is a set of uint32 values drawn from [0, capacity).
//
// The sparse array maps a value to its index in dense. Stale entries in
// sparse are harmless because membership is confirmed against dense, which
// is what makes Clear constant time.
type SparseSet struct {
	sparse []uint32
	dense  []uint32
}

// NewSparseSet creates a set able to hold values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was absent.
// Panics if value >= Cap().
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense)) //nolint:gosec // G115: len(dense) <= capacity
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set. Values outside the
// universe are never members.
func (s *SparseSet) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return uint64(idx) < uint64(len(s.dense)) && s.dense[idx] == value
}

// Clear removes every element in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// Cap returns the size of the universe.
func (s *SparseSet) Cap() int {
	return len(s.sparse)
}

// IsEmpty reports whether the set has no elements.
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the elements in insertion order.
// The returned slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}

// Resize grows the universe to capacity, clearing the set. It never shrinks.
func (s *SparseSet) Resize(capacity uint32) {
	if int(capacity) > len(s.sparse) {
		s.sparse = make([]uint32, capacity)
		s.dense = make([]uint32, 0, capacity)
		return
	}
	s.Clear()
}
