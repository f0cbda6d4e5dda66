// Package nfa provides a Thompson NFA (Non-deterministic Finite Automaton)
// built from a syntax.AST, and a simulator that decides full-string
// acceptance by tracking every active state at once.
//
// An NFA is an arena of states addressed by StateID. Loops created by
// repetition are plain index references back into the arena, so the
// automaton is immutable once built and safe for concurrent simulation.
package nfa

import (
	"errors"
	"fmt"

	"github.com/coregx/thegrep/syntax"
)

// Common NFA errors
var (
	// ErrInvalidState indicates a state ID outside the arena was used
	ErrInvalidState = errors.New("invalid NFA state")

	// ErrInvalidPattern indicates the pattern failed to parse
	ErrInvalidPattern = errors.New("invalid regex pattern")
)

// CompileError wraps compilation errors with additional context
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidPattern and the failure came from
// the parser.
func (e *CompileError) Is(target error) bool {
	if target != ErrInvalidPattern {
		return false
	}
	var perr *syntax.Error
	return errors.As(e.Err, &perr)
}

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID

	// Err is an optional sentinel such as ErrInvalidState.
	Err error
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap returns the sentinel, if any
func (e *BuildError) Unwrap() error {
	return e.Err
}
