package nfa

import (
	"fmt"
	"iter"
)

// StateID uniquely identifies an NFA state.
// It is the state's index in the arena and never changes once assigned.
type StateID uint32

// InvalidState marks an unresolved edge during construction.
// A built NFA never contains it.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of NFA state and determines which transitions are valid.
type StateKind uint8

const (
	// StateStart is the single entry state, always at index 0.
	// It has one epsilon edge.
	StateStart StateKind = iota

	// StateMatch consumes one character accepted by its Label
	// and moves to its next state.
	StateMatch

	// StateSplit has two epsilon edges (alternation and repetition).
	StateSplit

	// StateEnd is the single accepting state, always the last index.
	// It has no outgoing edges.
	StateEnd
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateStart:
		return "Start"
	case StateMatch:
		return "Match"
	case StateSplit:
		return "Split"
	case StateEnd:
		return "End"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Label is the condition on a Match state's edge: either one specific
// character or any character.
type Label struct {
	Any  bool
	Char rune
}

// AnyLabel returns the label that matches every character.
func AnyLabel() Label {
	return Label{Any: true}
}

// CharLabel returns the label that matches exactly c.
func CharLabel(c rune) Label {
	return Label{Char: c}
}

// Matches reports whether the label accepts r.
func (l Label) Matches(r rune) bool {
	return l.Any || l.Char == r
}

// String returns the character itself, or "ANY".
func (l Label) String() string {
	if l.Any {
		return "ANY"
	}
	return string(l.Char)
}

// State represents a single NFA state with its transitions.
// The state's kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// For Match
	label Label

	// For Start and Match
	next StateID

	// For Split: left is always resolved at creation, right may be
	// patched later
	left, right StateID
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// IsEnd returns true if this is the accepting state
func (s *State) IsEnd() bool {
	return s.kind == StateEnd
}

// IsEpsilon returns true for states whose edges consume no input
func (s *State) IsEpsilon() bool {
	return s.kind == StateStart || s.kind == StateSplit
}

// Label returns the edge label for Match states.
// Returns the zero Label for other kinds.
func (s *State) Label() Label {
	if s.kind == StateMatch {
		return s.label
	}
	return Label{}
}

// Next returns the single target of Start and Match states.
// Returns InvalidState for other kinds.
func (s *State) Next() StateID {
	if s.kind == StateStart || s.kind == StateMatch {
		return s.next
	}
	return InvalidState
}

// Split returns the two target states for Split states.
// Returns (InvalidState, InvalidState) for non-Split states.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// Edges returns the outgoing edge targets in order. The slice is freshly
// allocated.
func (s *State) Edges() []StateID {
	switch s.kind {
	case StateStart, StateMatch:
		return []StateID{s.next}
	case StateSplit:
		return []StateID{s.left, s.right}
	default:
		return nil
	}
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	switch s.kind {
	case StateStart:
		return fmt.Sprintf("Start -> %d", s.next)
	case StateMatch:
		if s.label.Any {
			return fmt.Sprintf("Match ANY -> %d", s.next)
		}
		return fmt.Sprintf("Match %q -> %d", s.label.Char, s.next)
	case StateSplit:
		return fmt.Sprintf("Split -> [%d, %d]", s.left, s.right)
	case StateEnd:
		return "End"
	default:
		return fmt.Sprintf("Unknown(%d)", s.kind)
	}
}

// NFA is a compiled Thompson automaton.
//
// States live in an arena: index 0 is the Start state and the last index is
// the End state. The NFA is immutable after Build and may be shared by any
// number of goroutines.
type NFA struct {
	states []State
}

// Start returns the ID of the Start state, which is always 0
func (n *NFA) Start() StateID {
	return 0
}

// End returns the ID of the End state, which is always the last index
func (n *NFA) End() StateID {
	return StateID(len(n.states) - 1) //nolint:gosec // G115: Build guarantees at least two states
}

// States returns the number of states in the arena
func (n *NFA) States() int {
	return len(n.states)
}

// State returns the state with the given ID.
// Returns nil if the ID is out of range.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// Iter returns an iterator over the states in index order
func (n *NFA) Iter() *StateIter {
	return &StateIter{nfa: n}
}

// All returns a range-over-func iterator of (id, state) pairs in index order.
func (n *NFA) All() iter.Seq2[StateID, *State] {
	return func(yield func(StateID, *State) bool) {
		for i := range n.states {
			if !yield(n.states[i].id, &n.states[i]) {
				return
			}
		}
	}
}

// StateIter iterates over NFA states in index order
type StateIter struct {
	nfa *NFA
	pos int
}

// Next returns the next state, or nil when exhausted
func (it *StateIter) Next() *State {
	if it.pos >= len(it.nfa.states) {
		return nil
	}
	s := &it.nfa.states[it.pos]
	it.pos++
	return s
}

// HasNext returns true if more states remain
func (it *StateIter) HasNext() bool {
	return it.pos < len(it.nfa.states)
}

// EpsilonClosure returns the Match and End states reachable from id through
// epsilon edges alone, in depth-first order with left arms first.
func (n *NFA) EpsilonClosure(id StateID) []StateID {
	if n.State(id) == nil {
		return nil
	}
	st := NewSimState(n)
	n.addClosure(st, st.curr, id)
	closure := make([]StateID, 0, st.curr.Len())
	for _, v := range st.curr.Values() {
		closure = append(closure, StateID(v))
	}
	return closure
}

// Accepts reports whether the automaton accepts exactly input.
// It allocates fresh working state; use a Simulator to reuse it.
func (n *NFA) Accepts(input string) bool {
	return n.accepts(NewSimState(n), input)
}

// String returns a summary of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, end: %d}", len(n.states), n.Start(), n.End())
}
