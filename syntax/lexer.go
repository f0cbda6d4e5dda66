package syntax

import (
	"iter"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer produces the tokens of a pattern lazily, one character at a time.
//
// A Lexer is consumed by reading it; it cannot be rewound. Restarting
// requires a new Lexer over the same pattern.
type Lexer struct {
	input  string
	offset int
	pos    lexer.Position
}

// NewLexer returns a lexer positioned at the start of input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		pos:   lexer.Position{Line: 1, Column: 1},
	}
}

// Next returns the next token, or false once the input is exhausted.
// Every character maps to exactly one token; invalid UTF-8 bytes become
// Literal(U+FFFD) tokens.
func (l *Lexer) Next() (Token, bool) {
	if l.offset >= len(l.input) {
		return Token{}, false
	}
	r, size := utf8.DecodeRuneInString(l.input[l.offset:])
	tok := Token{Kind: kindOf(r), Char: r, Pos: l.pos}
	l.pos.Advance(l.input[l.offset : l.offset+size])
	l.offset += size
	return tok, true
}

// Pos returns the position of the next unread character, which is the end
// of input once the lexer is exhausted.
func (l *Lexer) Pos() lexer.Position {
	return l.pos
}

// All returns an iterator over the remaining tokens. Iterating consumes
// the lexer.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokenize returns every token of input.
func Tokenize(input string) []Token {
	tokens := make([]Token, 0, utf8.RuneCountInString(input))
	for tok := range NewLexer(input).All() {
		tokens = append(tokens, tok)
	}
	return tokens
}
