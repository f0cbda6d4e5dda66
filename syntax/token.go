// Package syntax turns a pattern string into an abstract syntax tree.
//
// The pipeline has two stages:
//   - Lexer: one token per character of the pattern, never fails
//   - Parser: recursive descent over the token stream, producing an AST
//
// The grammar, from lowest to highest precedence:
//
//	RegExpr    ::= Catenation ('|' RegExpr)?
//	Catenation ::= Repetition Catenation?
//	Repetition ::= Atom ('*' | '+')?
//	Atom       ::= '(' RegExpr ')' | '.' | Literal
//
// Alternation is right-associative. Catenation continues while the next
// token can start an Atom.
package syntax

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// TokenKind identifies the kind of a Token.
type TokenKind uint8

const (
	// TokenLiteral is any character without a dedicated meaning.
	TokenLiteral TokenKind = iota

	// TokenLeftParen is '('.
	TokenLeftParen

	// TokenRightParen is ')'.
	TokenRightParen

	// TokenAlternation is '|'.
	TokenAlternation

	// TokenZeroOrMore is '*'.
	TokenZeroOrMore

	// TokenOneOrMore is '+'.
	TokenOneOrMore

	// TokenAnyChar is '.'.
	TokenAnyChar
)

// String returns the name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "Literal"
	case TokenLeftParen:
		return "LeftParen"
	case TokenRightParen:
		return "RightParen"
	case TokenAlternation:
		return "Alternation"
	case TokenZeroOrMore:
		return "ZeroOrMore"
	case TokenOneOrMore:
		return "OneOrMore"
	case TokenAnyChar:
		return "AnyChar"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Token is a single lexical element of a pattern.
//
// Char holds the source character for every kind, so a Literal token and
// the character it stands for are always available. Pos is the position of
// the character in the pattern.
type Token struct {
	Kind TokenKind
	Char rune
	Pos  lexer.Position
}

// StartsAtom reports whether the token can begin an Atom.
func (t Token) StartsAtom() bool {
	switch t.Kind {
	case TokenLeftParen, TokenAnyChar, TokenLiteral:
		return true
	default:
		return false
	}
}

// Equal reports whether two tokens have the same kind and character.
// Positions are ignored.
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind && t.Char == other.Char
}

// String returns the token kind, with the character for literals.
//
//	LeftParen, ZeroOrMore, Literal('a')
func (t Token) String() string {
	if t.Kind == TokenLiteral {
		return fmt.Sprintf("Literal(%q)", t.Char)
	}
	return t.Kind.String()
}

func kindOf(r rune) TokenKind {
	switch r {
	case '(':
		return TokenLeftParen
	case ')':
		return TokenRightParen
	case '|':
		return TokenAlternation
	case '*':
		return TokenZeroOrMore
	case '+':
		return TokenOneOrMore
	case '.':
		return TokenAnyChar
	default:
		return TokenLiteral
	}
}
