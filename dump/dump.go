// Package dump renders tokens, syntax trees and automata as text for
// debugging, and NFAs as Graphviz graphs.
package dump

import (
	"fmt"
	"strings"

	"github.com/coregx/thegrep/nfa"
	"github.com/coregx/thegrep/syntax"
)

// Tokens returns the token stream of pattern, one token per line with its
// line:column position.
func Tokens(pattern string) string {
	var b strings.Builder
	for tok := range syntax.NewLexer(pattern).All() {
		fmt.Fprintf(&b, "%d:%d\t%s\n", tok.Pos.Line, tok.Pos.Column, tok)
	}
	return b.String()
}

// AST returns the syntax tree followed by a newline.
func AST(ast syntax.AST) string {
	return ast.String() + "\n"
}

// NFA returns the state arena, one state per line:
//
//	000 | Start -> 1
//	001 | Match 'a' -> 2
//	002 | End
func NFA(n *nfa.NFA) string {
	var b strings.Builder
	for id, s := range n.All() {
		fmt.Fprintf(&b, "%03d | %s\n", id, s)
	}
	return b.String()
}

// DOT returns n as Graphviz DOT text. The output depends only on the
// automaton, so equal NFAs produce byte-identical text.
func DOT(n *nfa.NFA) string {
	var b strings.Builder
	b.WriteString("digraph nfa {rankdir=LR;\n\tnode [shape = circle];\n")
	for id, s := range n.All() {
		switch s.Kind() {
		case nfa.StateStart:
			fmt.Fprintf(&b, "\tstart [shape=\"none\"]\n\tstart -> %d\n", s.Next())
		case nfa.StateMatch:
			fmt.Fprintf(&b, "\t%d -> %d [label=%s]\n", id, s.Next(), quoteLabel(s.Label().String()))
		case nfa.StateSplit:
			left, right := s.Split()
			fmt.Fprintf(&b, "\t%d -> %d [label=\"ε\"]\n\t%d -> %d [label=\"ε\"]\n", id, left, id, right)
		case nfa.StateEnd:
			fmt.Fprintf(&b, "\t%d [shape=\"doublecircle\"]\n", id)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// quoteLabel quotes s as a DOT string, escaping backslash, quote and newline.
func quoteLabel(s string) string {
	return `"` + labelEscaper.Replace(s) + `"`
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
