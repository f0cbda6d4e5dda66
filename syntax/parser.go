package syntax

// Parser is a recursive-descent parser over a Lexer with one token of
// lookahead.
type Parser struct {
	lex    *Lexer
	peeked Token
	ok     bool // peeked holds an unread token
}

// NewParser returns a parser reading tokens from lex.
func NewParser(lex *Lexer) *Parser {
	return &Parser{lex: lex}
}

// Parse parses a complete pattern from lex. Tokens left over after the
// top-level expression are an error.
func Parse(lex *Lexer) (AST, error) {
	return NewParser(lex).Parse()
}

// ParseString parses pattern.
func ParseString(pattern string) (AST, error) {
	return Parse(NewLexer(pattern))
}

// Parse parses a complete pattern. On failure the returned error is a
// *Error.
func (p *Parser) Parse() (AST, error) {
	ast, err := p.regExpr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.next(); ok {
		return nil, trailingInput(tok)
	}
	return ast, nil
}

// regExpr: Catenation ('|' RegExpr)?
func (p *Parser) regExpr() (AST, error) {
	left, err := p.catenation()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); !ok || tok.Kind != TokenAlternation {
		return left, nil
	}
	p.next()
	right, err := p.regExpr()
	if err != nil {
		return nil, err
	}
	return Alternation{Left: left, Right: right}, nil
}

// catenation: Repetition Catenation?
func (p *Parser) catenation() (AST, error) {
	left, err := p.repetition()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); !ok || !tok.StartsAtom() {
		return left, nil
	}
	right, err := p.catenation()
	if err != nil {
		return nil, err
	}
	return Catenation{Left: left, Right: right}, nil
}

// repetition: Atom ('*' | '+')?
func (p *Parser) repetition() (AST, error) {
	atom, err := p.atom()
	if err != nil {
		return nil, err
	}
	tok, ok := p.peek()
	if !ok {
		return atom, nil
	}
	switch tok.Kind {
	case TokenZeroOrMore:
		p.next()
		return Closure{Sub: atom}, nil
	case TokenOneOrMore:
		p.next()
		return OneOrMore{Sub: atom}, nil
	default:
		return atom, nil
	}
}

// atom: '(' RegExpr ')' | '.' | Literal
func (p *Parser) atom() (AST, error) {
	tok, err := p.take()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenLeftParen:
		inner, err := p.regExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return inner, nil
	case TokenAnyChar:
		return AnyChar{}, nil
	case TokenLiteral:
		return Char{C: tok.Char}, nil
	default:
		return nil, unexpectedToken(tok)
	}
}

// take consumes the next token, failing at end of input.
func (p *Parser) take() (Token, error) {
	tok, ok := p.next()
	if !ok {
		return Token{}, unexpectedEOF(p.lex.Pos())
	}
	return tok, nil
}

// expect consumes the next token and fails unless it has the given kind.
func (p *Parser) expect(kind TokenKind) error {
	tok, err := p.take()
	if err != nil {
		return err
	}
	if tok.Kind != kind {
		return unexpectedToken(tok)
	}
	return nil
}

func (p *Parser) peek() (Token, bool) {
	if !p.ok {
		p.peeked, p.ok = p.lex.Next()
	}
	return p.peeked, p.ok
}

func (p *Parser) next() (Token, bool) {
	tok, ok := p.peek()
	p.ok = false
	return tok, ok
}
