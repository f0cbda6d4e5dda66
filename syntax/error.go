package syntax

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrorKind classifies a parse failure.
type ErrorKind uint8

const (
	// ErrUnexpectedEOF means the input ended where an atom or ')' was required.
	ErrUnexpectedEOF ErrorKind = iota + 1

	// ErrUnexpectedToken means a token that cannot start an atom was found
	// where one was required, or a '(' was closed by something other than ')'.
	ErrUnexpectedToken

	// ErrTrailingInput means a complete expression was followed by more tokens.
	ErrTrailingInput
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedEOF:
		return "UnexpectedEOF"
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrTrailingInput:
		return "TrailingInput"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Error is a parse failure. It implements participle.Error, so it carries
// the position of the offending token (or of the end of input).
type Error struct {
	Kind ErrorKind

	// Token is the offending token. It is the zero Token for ErrUnexpectedEOF.
	Token Token

	Pos lexer.Position
}

var _ participle.Error = (*Error)(nil)

// Message returns the error without position information.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrUnexpectedEOF:
		return "unexpected end of input"
	case ErrUnexpectedToken:
		return "unexpected token: " + e.Token.String()
	case ErrTrailingInput:
		return "expected end of input, found " + e.Token.String()
	default:
		return "invalid pattern"
	}
}

// Position returns the position of the failure.
func (e *Error) Position() lexer.Position {
	return e.Pos
}

// Error formats the error as "line:column: message".
func (e *Error) Error() string {
	return participle.FormatError(e)
}

func unexpectedEOF(pos lexer.Position) *Error {
	return &Error{Kind: ErrUnexpectedEOF, Pos: pos}
}

func unexpectedToken(tok Token) *Error {
	return &Error{Kind: ErrUnexpectedToken, Token: tok, Pos: tok.Pos}
}

func trailingInput(tok Token) *Error {
	return &Error{Kind: ErrTrailingInput, Token: tok, Pos: tok.Pos}
}
