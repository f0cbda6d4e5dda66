package nfa

import (
	"fmt"

	"github.com/coregx/thegrep/syntax"
)

// fragment is a partially built automaton: one entry state and the states
// whose edge is still dangling.
type fragment struct {
	start StateID
	ends  []StateID
}

// Compiler compiles syntax trees into Thompson NFAs
type Compiler struct {
	builder *Builder
}

// NewCompiler creates a new NFA compiler
func NewCompiler() *Compiler {
	return &Compiler{builder: NewBuilder()}
}

// Compile parses pattern and compiles it into an NFA.
// Parse failures are returned as a *CompileError wrapping a *syntax.Error.
func Compile(pattern string) (*NFA, error) {
	return NewCompiler().Compile(pattern)
}

// CompileAST compiles an already parsed tree into an NFA.
func CompileAST(ast syntax.AST) (*NFA, error) {
	return NewCompiler().CompileAST(ast)
}

// Compile compiles a regex pattern string into an NFA
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	ast, err := syntax.ParseString(pattern)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}

	return c.CompileAST(ast)
}

// CompileAST compiles a parsed syntax.AST into an NFA.
//
// Start is allocated first and End last, so the arena always begins with
// Start and ends with End.
func (c *Compiler) CompileAST(ast syntax.AST) (*NFA, error) {
	c.builder = NewBuilderWithCapacity(syntax.Size(ast) + 2)

	start := c.builder.AddStart()
	body, err := c.compile(ast)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	if err := c.builder.Patch(start, body.start); err != nil {
		return nil, &CompileError{Err: err}
	}

	end := c.builder.AddEnd()
	if err := c.patchAll(body.ends, end); err != nil {
		return nil, &CompileError{
			Err: fmt.Errorf("failed to connect to end state: %w", err),
		}
	}

	nfa, err := c.builder.Build()
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return nfa, nil
}

// compile recursively builds the fragment for one node
func (c *Compiler) compile(ast syntax.AST) (fragment, error) {
	switch n := ast.(type) {
	case syntax.AnyChar:
		return c.compileLabel(AnyLabel()), nil
	case syntax.Char:
		return c.compileLabel(CharLabel(n.C)), nil
	case syntax.Catenation:
		return c.compileCatenation(n.Left, n.Right)
	case syntax.Alternation:
		return c.compileAlternation(n.Left, n.Right)
	case syntax.Closure:
		return c.compileRepetition(n.Sub, false)
	case syntax.OneOrMore:
		return c.compileRepetition(n.Sub, true)
	default:
		return fragment{}, fmt.Errorf("%w: unsupported AST node %T", ErrInvalidPattern, ast)
	}
}

func (c *Compiler) compileLabel(label Label) fragment {
	id := c.builder.AddMatch(label, InvalidState)
	return fragment{start: id, ends: []StateID{id}}
}

func (c *Compiler) compileCatenation(left, right syntax.AST) (fragment, error) {
	l, err := c.compile(left)
	if err != nil {
		return fragment{}, err
	}
	r, err := c.compile(right)
	if err != nil {
		return fragment{}, err
	}
	if err := c.patchAll(l.ends, r.start); err != nil {
		return fragment{}, err
	}
	return fragment{start: l.start, ends: r.ends}, nil
}

func (c *Compiler) compileAlternation(left, right syntax.AST) (fragment, error) {
	l, err := c.compile(left)
	if err != nil {
		return fragment{}, err
	}
	r, err := c.compile(right)
	if err != nil {
		return fragment{}, err
	}
	split := c.builder.AddSplit(l.start, r.start)

	ends := make([]StateID, 0, len(l.ends)+len(r.ends))
	ends = append(ends, l.ends...)
	ends = append(ends, r.ends...)
	return fragment{start: split, ends: ends}, nil
}

// compileRepetition builds x* (atLeastOnce false) or x+ (atLeastOnce true).
// Both loop the child back into a split whose right arm is the exit; x*
// enters at the split so the child can be skipped, x+ enters at the child.
func (c *Compiler) compileRepetition(sub syntax.AST, atLeastOnce bool) (fragment, error) {
	child, err := c.compile(sub)
	if err != nil {
		return fragment{}, err
	}
	split := c.builder.AddSplit(child.start, InvalidState)
	if err := c.patchAll(child.ends, split); err != nil {
		return fragment{}, err
	}

	start := split
	if atLeastOnce {
		start = child.start
	}
	return fragment{start: start, ends: []StateID{split}}, nil
}

func (c *Compiler) patchAll(ends []StateID, target StateID) error {
	for _, id := range ends {
		if err := c.builder.Patch(id, target); err != nil {
			return err
		}
	}
	return nil
}
