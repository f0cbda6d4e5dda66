package syntax

import (
	"testing"
	"unicode/utf8"
)

func TestLexer_TokenKinds(t *testing.T) {
	tests := []struct {
		input string
		want  TokenKind
	}{
		{"(", TokenLeftParen},
		{")", TokenRightParen},
		{"|", TokenAlternation},
		{"*", TokenZeroOrMore},
		{"+", TokenOneOrMore},
		{".", TokenAnyChar},
		{"a", TokenLiteral},
		{" ", TokenLiteral},
		{"?", TokenLiteral},
		{"\\", TokenLiteral},
		{"[", TokenLiteral},
		{"é", TokenLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lex := NewLexer(tt.input)
			tok, ok := lex.Next()
			if !ok {
				t.Fatal("expected a token")
			}
			if tok.Kind != tt.want {
				t.Errorf("kind = %v, want %v", tok.Kind, tt.want)
			}
			if _, ok := lex.Next(); ok {
				t.Error("expected exactly one token")
			}
		})
	}
}

func TestLexer_OneTokenPerCharacter(t *testing.T) {
	input := "(a|bc)*.+x"
	tokens := Tokenize(input)

	want := []Token{
		{Kind: TokenLeftParen, Char: '('},
		{Kind: TokenLiteral, Char: 'a'},
		{Kind: TokenAlternation, Char: '|'},
		{Kind: TokenLiteral, Char: 'b'},
		{Kind: TokenLiteral, Char: 'c'},
		{Kind: TokenRightParen, Char: ')'},
		{Kind: TokenZeroOrMore, Char: '*'},
		{Kind: TokenAnyChar, Char: '.'},
		{Kind: TokenOneOrMore, Char: '+'},
		{Kind: TokenLiteral, Char: 'x'},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i := range want {
		if !tokens[i].Equal(want[i]) {
			t.Errorf("token %d = %v, want %v", i, tokens[i], want[i])
		}
	}
}

func TestLexer_Empty(t *testing.T) {
	lex := NewLexer("")
	if _, ok := lex.Next(); ok {
		t.Error("empty input should produce no tokens")
	}
	if got := len(Tokenize("")); got != 0 {
		t.Errorf("Tokenize(\"\") returned %d tokens", got)
	}
}

func TestLexer_NotRestartable(t *testing.T) {
	lex := NewLexer("ab")
	first := 0
	for range lex.All() {
		first++
	}
	second := 0
	for range lex.All() {
		second++
	}
	if first != 2 || second != 0 {
		t.Errorf("first pass = %d, second pass = %d; want 2 and 0", first, second)
	}

	// A fresh lexer over the same input starts over.
	if got := len(Tokenize("ab")); got != 2 {
		t.Errorf("fresh lexer produced %d tokens, want 2", got)
	}
}

func TestLexer_Positions(t *testing.T) {
	tokens := Tokenize("aé\nb")

	wantCols := []int{1, 2, 3, 1}
	wantLines := []int{1, 1, 1, 2}
	wantOffsets := []int{0, 1, 3, 4}
	for i, tok := range tokens {
		if tok.Pos.Column != wantCols[i] || tok.Pos.Line != wantLines[i] || tok.Pos.Offset != wantOffsets[i] {
			t.Errorf("token %d at %#v, want line %d col %d offset %d",
				i, tok.Pos, wantLines[i], wantCols[i], wantOffsets[i])
		}
	}
}

func TestLexer_InvalidUTF8(t *testing.T) {
	tokens := Tokenize("a\xffb")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	if tokens[1].Kind != TokenLiteral || tokens[1].Char != utf8.RuneError {
		t.Errorf("invalid byte lexed as %v, want Literal(U+FFFD)", tokens[1])
	}
}

func TestLexer_EarlyStop(t *testing.T) {
	lex := NewLexer("abc")
	for tok := range lex.All() {
		if tok.Char == 'a' {
			break
		}
	}
	tok, ok := lex.Next()
	if !ok || tok.Char != 'b' {
		t.Errorf("after break, Next() = %v, %v; want Literal('b')", tok, ok)
	}
}

func TestToken_String(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: TokenLeftParen, Char: '('}, "LeftParen"},
		{Token{Kind: TokenRightParen, Char: ')'}, "RightParen"},
		{Token{Kind: TokenAlternation, Char: '|'}, "Alternation"},
		{Token{Kind: TokenZeroOrMore, Char: '*'}, "ZeroOrMore"},
		{Token{Kind: TokenOneOrMore, Char: '+'}, "OneOrMore"},
		{Token{Kind: TokenAnyChar, Char: '.'}, "AnyChar"},
		{Token{Kind: TokenLiteral, Char: 'x'}, "Literal('x')"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
