package nfa

import (
	"fmt"

	"github.com/coregx/thegrep/internal/conv"
)

// Builder constructs NFAs incrementally using a low-level API.
// States are appended to an arena and referenced by index; edges that are
// not yet known are left as InvalidState and resolved later with Patch.
// The Compiler drives a Builder for Thompson construction.
type Builder struct {
	states []State
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
	}
}

func (b *Builder) add(s State) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	s.id = id
	b.states = append(b.states, s)
	return id
}

// AddStart adds a Start state with an unresolved edge and returns its ID.
// It must be the first state added.
func (b *Builder) AddStart() StateID {
	return b.add(State{kind: StateStart, next: InvalidState})
}

// AddMatch adds a state that consumes one character accepted by label.
// Pass InvalidState as next to patch it later.
func (b *Builder) AddMatch(label Label, next StateID) StateID {
	return b.add(State{kind: StateMatch, label: label, next: next})
}

// AddSplit adds a state with epsilon transitions to two states.
// Pass InvalidState as right to leave the right arm dangling.
func (b *Builder) AddSplit(left, right StateID) StateID {
	return b.add(State{kind: StateSplit, left: left, right: right})
}

// AddEnd adds the accepting state. It must be the last state added.
func (b *Builder) AddEnd() StateID {
	return b.add(State{kind: StateEnd, next: InvalidState})
}

// Patch resolves the dangling edge of a state to target.
// For Start and Match the edge is next; for Split it is the right arm.
// Resolving an edge twice or patching End is an error.
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
			Err:     ErrInvalidState,
		}
	}

	s := &b.states[stateID]
	switch s.kind {
	case StateStart, StateMatch:
		if s.next != InvalidState {
			return &BuildError{Message: "edge already resolved", StateID: stateID}
		}
		s.next = target
		return nil
	case StateSplit:
		if s.right != InvalidState {
			return &BuildError{Message: "split arm already resolved", StateID: stateID}
		}
		s.right = target
		return nil
	default:
		return &BuildError{
			Message: fmt.Sprintf("cannot patch state of kind %s", s.kind),
			StateID: stateID,
		}
	}
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed:
// - index 0 is the only Start state
// - the last index is the only End state
// - every edge is resolved and points inside the arena
func (b *Builder) Validate() error {
	if len(b.states) < 2 {
		return &BuildError{Message: "NFA needs a Start and an End state", StateID: InvalidState}
	}
	last := len(b.states) - 1
	if b.states[0].kind != StateStart {
		return &BuildError{Message: "first state is not Start", StateID: 0}
	}
	if b.states[last].kind != StateEnd {
		return &BuildError{Message: "last state is not End", StateID: b.states[last].id}
	}

	for i := range b.states {
		s := &b.states[i]
		if s.kind == StateStart && i != 0 {
			return &BuildError{Message: "duplicate Start state", StateID: s.id}
		}
		if s.kind == StateEnd && i != last {
			return &BuildError{Message: "duplicate End state", StateID: s.id}
		}
		for _, target := range s.Edges() {
			if target == InvalidState {
				return &BuildError{Message: "dangling edge", StateID: s.id}
			}
			if int(target) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid target state %d", target),
					StateID: s.id,
					Err:     ErrInvalidState,
				}
			}
		}
	}

	return nil
}

// Build validates the arena and returns the finished NFA.
// The NFA owns a copy of the states, so the Builder may be discarded or
// reused.
func (b *Builder) Build() (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	states := make([]State, len(b.states))
	copy(states, b.states)
	return &NFA{states: states}, nil
}
