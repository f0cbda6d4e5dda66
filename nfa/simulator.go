package nfa

import (
	"sync"
	"unicode/utf8"

	"github.com/coregx/thegrep/internal/sparse"
)

// SimState holds the mutable working set of one simulation run.
// It must not be shared between goroutines; obtain one per run from a
// Simulator's pool or from NewSimState.
type SimState struct {
	// curr holds the active Match and End states before the next character,
	// next collects the states reached after it.
	curr, next *sparse.SparseSet

	// visited guards epsilon-closure traversal against the cycles that
	// repetition introduces. It is cleared once per step.
	visited *sparse.SparseSet

	// stack is the explicit DFS stack for epsilon-closure.
	stack []StateID
}

// NewSimState creates working state sized for n.
func NewSimState(n *NFA) *SimState {
	capacity := uint32(n.States()) //nolint:gosec // G115: state count fits StateID by construction
	return &SimState{
		curr:    sparse.NewSparseSet(capacity),
		next:    sparse.NewSparseSet(capacity),
		visited: sparse.NewSparseSet(capacity),
		stack:   make([]StateID, 0, 16),
	}
}

// reset prepares the state for a run over n, growing the sets if a
// larger automaton is being simulated.
func (st *SimState) reset(n *NFA) {
	capacity := uint32(n.States()) //nolint:gosec // G115: state count fits StateID by construction
	if st.curr.Cap() < int(capacity) {
		st.curr.Resize(capacity)
		st.next.Resize(capacity)
		st.visited.Resize(capacity)
	} else {
		st.curr.Clear()
		st.next.Clear()
		st.visited.Clear()
	}
	st.stack = st.stack[:0]
}

// Simulator runs full-string acceptance against one NFA.
//
// A Simulator is safe for concurrent use: every call takes its own SimState
// from a sync.Pool, and the NFA itself is never written.
type Simulator struct {
	nfa  *NFA
	pool sync.Pool
}

// NewSimulator creates a simulator for n.
func NewSimulator(n *NFA) *Simulator {
	s := &Simulator{nfa: n}
	s.pool.New = func() any {
		return NewSimState(n)
	}
	return s
}

// NFA returns the automaton being simulated.
func (s *Simulator) NFA() *NFA {
	return s.nfa
}

// Accepts reports whether the automaton accepts exactly input.
func (s *Simulator) Accepts(input string) bool {
	st := s.pool.Get().(*SimState)
	defer s.pool.Put(st)
	return s.nfa.accepts(st, input)
}

// AcceptsBytes is like Accepts for UTF-8 encoded bytes.
func (s *Simulator) AcceptsBytes(input []byte) bool {
	st := s.pool.Get().(*SimState)
	defer s.pool.Put(st)
	return s.nfa.acceptsBytes(st, input)
}

// AcceptsWithState runs Accepts using caller-provided working state.
// This avoids the pool for callers that already keep one SimState per
// goroutine.
func (s *Simulator) AcceptsWithState(st *SimState, input string) bool {
	return s.nfa.accepts(st, input)
}

func (n *NFA) accepts(st *SimState, input string) bool {
	n.begin(st)
	for _, r := range input {
		if !n.step(st, r) {
			return false
		}
	}
	return n.accepted(st)
}

func (n *NFA) acceptsBytes(st *SimState, input []byte) bool {
	n.begin(st)
	for len(input) > 0 {
		r, size := utf8.DecodeRune(input)
		if !n.step(st, r) {
			return false
		}
		input = input[size:]
	}
	return n.accepted(st)
}

// begin seeds the active set with the epsilon-closure of Start.
func (n *NFA) begin(st *SimState) {
	st.reset(n)
	n.addClosure(st, st.curr, n.Start())
}

// step advances every active state over r. It reports false once no state
// survives; an empty set can never become non-empty again.
func (n *NFA) step(st *SimState, r rune) bool {
	st.next.Clear()
	st.visited.Clear()
	for _, v := range st.curr.Values() {
		s := &n.states[v]
		if s.kind == StateMatch && s.label.Matches(r) {
			n.addClosure(st, st.next, s.next)
		}
	}
	st.curr, st.next = st.next, st.curr
	return !st.curr.IsEmpty()
}

func (n *NFA) accepted(st *SimState) bool {
	return st.curr.Contains(uint32(n.End()))
}

// addClosure folds the epsilon-closure of id into set. Only Match and End
// states are recorded; Start and Split are followed without consuming input.
func (n *NFA) addClosure(st *SimState, set *sparse.SparseSet, id StateID) {
	st.stack = append(st.stack[:0], id)
	for len(st.stack) > 0 {
		id = st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]

		if !st.visited.Insert(uint32(id)) {
			continue
		}

		s := &n.states[id]
		switch s.kind {
		case StateStart:
			st.stack = append(st.stack, s.next)
		case StateSplit:
			// Push right first so the left arm is explored first.
			st.stack = append(st.stack, s.right, s.left)
		case StateMatch, StateEnd:
			set.Insert(uint32(id))
		}
	}
}
