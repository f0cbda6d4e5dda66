// Package thegrep provides a small regular expression engine built on a
// Thompson NFA.
//
// The pattern language has literals, '.', '|', '*', '+' and parentheses.
// Every other character is a literal; there is no escaping. Patterns are
// lexed one character per token, parsed by recursive descent, compiled into
// an arena of NFA states and simulated by tracking all active states at
// once, so matching never backtracks and runs in O(len(input) * states).
//
// Basic usage:
//
//	// Compile a pattern
//	re, err := thegrep.Compile("(a|bc)*")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Full-string acceptance
//	re.Accepts("bcbca") // true
//	re.Accepts("bcx")   // false
//
// Search mode matches the pattern anywhere in the input, like grep:
//
//	config := thegrep.DefaultConfig()
//	config.Mode = thegrep.Search
//	re, err := thegrep.CompileWithConfig("err(or)+", config)
//	re.MatchString("an error occurred") // true
//
// Search mode is implemented by compiling `.*(pattern).*`; the simulator
// always decides full-string acceptance. Literal prefilters skip the
// automaton for inputs that cannot match.
package thegrep

import (
	"fmt"

	"github.com/coregx/thegrep/literal"
	"github.com/coregx/thegrep/nfa"
	"github.com/coregx/thegrep/prefilter"
	"github.com/coregx/thegrep/syntax"
)

// Mode selects how MatchString relates the pattern to the input.
type Mode uint8

const (
	// FullMatch requires the pattern to match the whole input.
	FullMatch Mode = iota

	// Search accepts inputs that contain a match anywhere.
	Search
)

// String returns "full" or "search".
func (m Mode) String() string {
	switch m {
	case FullMatch:
		return "full"
	case Search:
		return "search"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode parses "full" or "search".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "full":
		return FullMatch, nil
	case "search":
		return Search, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// Config controls compilation.
type Config struct {
	// Mode selects full-string or search matching. Default: FullMatch.
	Mode Mode

	// EnablePrefilter extracts required literals from the pattern and
	// checks them before running the automaton. Default: true.
	EnablePrefilter bool

	// MaxLiterals limits how many literals the prefilter may search for.
	// Default: 64.
	MaxLiterals int
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass to CompileWithConfig.
//
// Example:
//
//	config := thegrep.DefaultConfig()
//	config.EnablePrefilter = false // NFA only
//	re, _ := thegrep.CompileWithConfig("pattern", config)
func DefaultConfig() Config {
	return Config{
		Mode:            FullMatch,
		EnablePrefilter: true,
		MaxLiterals:     64,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Mode != FullMatch && c.Mode != Search {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, c.Mode)
	}
	if c.MaxLiterals < 0 {
		return fmt.Errorf("%w: MaxLiterals must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Regex represents a compiled pattern.
//
// A Regex is immutable and safe to use concurrently from multiple
// goroutines; each match takes its own working state from a pool.
//
// Example:
//
//	re := thegrep.MustCompile("ab*c")
//	if re.Accepts("abbbc") {
//	    println("accepted!")
//	}
type Regex struct {
	pattern string
	config  Config
	ast     syntax.AST
	nfa     *nfa.NFA
	sim     *nfa.Simulator
	pf      prefilter.Prefilter
}

// Compile compiles a pattern for full-string matching.
//
// Returns an error if the pattern is invalid. The error unwraps to a
// *syntax.Error carrying the offending position.
//
// Example:
//
//	re, err := thegrep.Compile("a|b")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("thegrep: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ast, err := syntax.ParseString(pattern)
	if err != nil {
		return nil, &nfa.CompileError{Pattern: pattern, Err: err}
	}

	body := ast
	if config.Mode == Search {
		body = syntax.Unanchored(ast)
	}
	automaton, err := nfa.CompileAST(body)
	if err != nil {
		return nil, &nfa.CompileError{Pattern: pattern, Err: err}
	}

	re := &Regex{
		pattern: pattern,
		config:  config,
		ast:     ast,
		nfa:     automaton,
		sim:     nfa.NewSimulator(automaton),
	}
	if config.EnablePrefilter {
		extractor := literal.New(literal.ExtractorConfig{MaxLiterals: config.MaxLiterals})
		re.pf = prefilter.New(extractor.Required(ast))
	}
	return re, nil
}

// Accepts reports whether the automaton accepts exactly input.
//
// In FullMatch mode this is whole-string matching of the pattern; in Search
// mode the automaton already contains the surrounding `.*`, so it reports
// whether input contains a match. The prefilter is not consulted.
func (r *Regex) Accepts(input string) bool {
	return r.sim.Accepts(input)
}

// Match reports whether b matches according to the configured Mode.
//
// When a prefilter is available it runs first: a miss rejects b without
// simulation, and in Search mode a complete prefilter hit accepts it.
func (r *Regex) Match(b []byte) bool {
	if r.pf != nil {
		if !r.pf.IsMatch(b) {
			return false
		}
		if r.config.Mode == Search && r.pf.IsComplete() {
			return true
		}
	}
	return r.sim.AcceptsBytes(b)
}

// MatchString reports whether s matches according to the configured Mode.
//
// Example:
//
//	config := thegrep.DefaultConfig()
//	config.Mode = thegrep.Search
//	re, _ := thegrep.CompileWithConfig("hello", config)
//	re.MatchString("hello world") // true
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// String returns the source text used to compile the pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Pattern returns the source text used to compile the pattern.
func (r *Regex) Pattern() string {
	return r.pattern
}

// Mode returns the configured matching mode.
func (r *Regex) Mode() Mode {
	return r.config.Mode
}

// AST returns the parsed pattern, without the Search mode wrapping.
func (r *Regex) AST() syntax.AST {
	return r.ast
}

// NFA returns the compiled automaton. In Search mode it includes the
// surrounding `.*`.
func (r *Regex) NFA() *nfa.NFA {
	return r.nfa
}

// Prefilter returns the literal prefilter, or nil if there is none.
func (r *Regex) Prefilter() prefilter.Prefilter {
	return r.pf
}
