package literal

import (
	"unicode/utf8"

	"github.com/coregx/thegrep/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals from cross products
type ExtractorConfig struct {
	// MaxLiterals limits the number of literals in any extracted set.
	// Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the byte length of each extracted literal.
	// Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Extractor extracts literal sequences from syntax trees.
//
// Example:
//
//	ast, _ := syntax.ParseString("(hello|world)x*")
//	extractor := literal.New(literal.DefaultConfig())
//	required := extractor.Required(ast)
//	// required = ["hello", "world"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
// Non-positive limits are replaced by the defaults.
func New(config ExtractorConfig) *Extractor {
	def := DefaultConfig()
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = def.MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = def.MaxLiteralLen
	}
	return &Extractor{config: config}
}

// Exact returns the complete language of ast when it is a small finite set
// of strings, or nil otherwise.
//
// Handles these node types:
//   - Char: the character itself
//   - Catenation: cross product of both sides
//   - Alternation: union of both sides
//   - AnyChar, Closure, OneOrMore: infinite or unbounded → nil
//
// Every returned literal is Complete.
func (e *Extractor) Exact(ast syntax.AST) *Seq {
	switch n := ast.(type) {
	case syntax.Char:
		return NewSeq(NewLiteral(utf8.AppendRune(nil, n.C), true))

	case syntax.Catenation:
		left := e.Exact(n.Left)
		if left == nil {
			return nil
		}
		right := e.Exact(n.Right)
		if right == nil {
			return nil
		}
		return e.cross(left, right)

	case syntax.Alternation:
		left := e.Exact(n.Left)
		if left == nil {
			return nil
		}
		right := e.Exact(n.Right)
		if right == nil {
			return nil
		}
		return e.union(left, right)

	default:
		return nil
	}
}

// Required returns a set of literals such that every string accepted by ast
// contains at least one of them, or nil when no useful set exists.
//
// Rules:
//   - the exact language, when small enough
//   - Catenation: the best of the exact runs and required sets of its items
//   - OneOrMore: the child's set (x+ occurs in a haystack iff x does)
//   - Alternation: union, only if both sides have a set
//   - Closure, AnyChar: nil (they may match without any literal)
//
// Sets containing U+FFFD are discarded: invalid input bytes decode to U+FFFD
// during matching, so a byte search for its encoding could miss them.
//
// Examples:
//
//	"hello"         → ["hello"] (complete)
//	"(foo|bar)+"    → ["foo", "bar"] (complete)
//	"ab.*cde"       → ["cde"]
//	".*"            → nil
func (e *Extractor) Required(ast syntax.AST) *Seq {
	seq := e.required(ast)
	if seq.IsEmpty() || containsReplacementChar(seq) {
		return nil
	}
	seq.Minimize()
	return seq
}

func (e *Extractor) required(ast syntax.AST) *Seq {
	if exact := e.Exact(ast); exact != nil {
		return exact
	}

	switch n := ast.(type) {
	case syntax.Catenation:
		return e.requiredCatenation(n)

	case syntax.OneOrMore:
		return e.required(n.Sub)

	case syntax.Alternation:
		left := e.required(n.Left)
		if left.IsEmpty() {
			return nil
		}
		right := e.required(n.Right)
		if right.IsEmpty() {
			return nil
		}
		return e.union(left, right)

	default:
		return nil
	}
}

// requiredCatenation flattens a catenation chain and picks the best
// candidate among maximal runs of exact items (joined by cross product) and
// the required sets of the remaining items. Candidates never cover the whole
// chain, so they are inexact.
func (e *Extractor) requiredCatenation(cat syntax.Catenation) *Seq {
	var best, run *Seq
	consider := func(candidate *Seq) {
		if candidate.IsEmpty() {
			return
		}
		candidate.MakeInexact()
		if better(candidate, best) {
			best = candidate
		}
	}

	for _, item := range flatten(cat) {
		exact := e.Exact(item)
		if exact == nil {
			consider(run)
			run = nil
			consider(e.required(item))
			continue
		}
		if run == nil {
			run = exact
			continue
		}
		if joined := e.cross(run, exact); joined != nil {
			run = joined
			continue
		}
		consider(run)
		run = exact
	}
	consider(run)
	return best
}

// flatten returns the items of a right-nested catenation chain in order.
func flatten(ast syntax.AST) []syntax.AST {
	var items []syntax.AST
	for {
		cat, ok := ast.(syntax.Catenation)
		if !ok {
			return append(items, ast)
		}
		items = append(items, flatten(cat.Left)...)
		ast = cat.Right
	}
}

// better prefers a longer shortest literal, then fewer literals.
func better(candidate, best *Seq) bool {
	if best == nil {
		return true
	}
	if candidate.MinLen() != best.MinLen() {
		return candidate.MinLen() > best.MinLen()
	}
	return candidate.Len() < best.Len()
}

// cross returns every concatenation a+b, or nil when the result exceeds the
// configured limits.
func (e *Extractor) cross(a, b *Seq) *Seq {
	if a.Len()*b.Len() > e.config.MaxLiterals {
		return nil
	}
	lits := make([]Literal, 0, a.Len()*b.Len())
	for _, x := range a.literals {
		for _, y := range b.literals {
			if x.Len()+y.Len() > e.config.MaxLiteralLen {
				return nil
			}
			joined := make([]byte, 0, x.Len()+y.Len())
			joined = append(joined, x.Bytes...)
			joined = append(joined, y.Bytes...)
			lits = append(lits, NewLiteral(joined, x.Complete && y.Complete))
		}
	}
	return NewSeq(lits...)
}

// union returns both sets combined, or nil when too many literals result.
func (e *Extractor) union(a, b *Seq) *Seq {
	if a.Len()+b.Len() > e.config.MaxLiterals {
		return nil
	}
	lits := make([]Literal, 0, a.Len()+b.Len())
	lits = append(lits, a.literals...)
	lits = append(lits, b.literals...)
	return NewSeq(lits...)
}

func containsReplacementChar(seq *Seq) bool {
	for _, lit := range seq.literals {
		for i := 0; i < len(lit.Bytes); {
			r, size := utf8.DecodeRune(lit.Bytes[i:])
			if r == utf8.RuneError {
				return true
			}
			i += size
		}
	}
	return false
}
