package syntax

import "fmt"

// AST is a node of the syntax tree produced by Parse.
//
// The set of node types is closed: AnyChar, Char, Catenation, Alternation,
// Closure and OneOrMore. Consumers dispatch with a type switch. Composite
// nodes own their children; the tree has no sharing and no cycles.
type AST interface {
	fmt.Stringer
	node()
}

// AnyChar matches any single character.
type AnyChar struct{}

// Char matches exactly one character.
type Char struct {
	C rune
}

// Catenation matches Left followed by Right.
type Catenation struct {
	Left, Right AST
}

// Alternation matches either Left or Right.
type Alternation struct {
	Left, Right AST
}

// Closure matches zero or more repetitions of Sub.
type Closure struct {
	Sub AST
}

// OneOrMore matches one or more repetitions of Sub.
type OneOrMore struct {
	Sub AST
}

func (AnyChar) node()     {}
func (Char) node()        {}
func (Catenation) node()  {}
func (Alternation) node() {}
func (Closure) node()     {}
func (OneOrMore) node()   {}

func (AnyChar) String() string { return "AnyChar" }

func (c Char) String() string { return fmt.Sprintf("Char(%q)", c.C) }

func (c Catenation) String() string {
	return fmt.Sprintf("Catenation(%s, %s)", c.Left, c.Right)
}

func (a Alternation) String() string {
	return fmt.Sprintf("Alternation(%s, %s)", a.Left, a.Right)
}

func (c Closure) String() string { return fmt.Sprintf("Closure(%s)", c.Sub) }

func (o OneOrMore) String() string { return fmt.Sprintf("OneOrMore(%s)", o.Sub) }

// Nullable reports whether the language of the tree contains the empty
// string.
func Nullable(ast AST) bool {
	switch n := ast.(type) {
	case AnyChar, Char:
		return false
	case Catenation:
		return Nullable(n.Left) && Nullable(n.Right)
	case Alternation:
		return Nullable(n.Left) || Nullable(n.Right)
	case Closure:
		return true
	case OneOrMore:
		return Nullable(n.Sub)
	default:
		panic(fmt.Sprintf("syntax: unknown AST node %T", ast))
	}
}

// Size returns the number of nodes in the tree.
func Size(ast AST) int {
	switch n := ast.(type) {
	case AnyChar, Char:
		return 1
	case Catenation:
		return 1 + Size(n.Left) + Size(n.Right)
	case Alternation:
		return 1 + Size(n.Left) + Size(n.Right)
	case Closure:
		return 1 + Size(n.Sub)
	case OneOrMore:
		return 1 + Size(n.Sub)
	default:
		panic(fmt.Sprintf("syntax: unknown AST node %T", ast))
	}
}

// Unanchored wraps ast as AnyChar* ast AnyChar*, the tree of the pattern
// `.*(p).*`. Full-string matching of the result is substring search of ast.
func Unanchored(ast AST) AST {
	dotStar := Closure{Sub: AnyChar{}}
	return Catenation{
		Left:  dotStar,
		Right: Catenation{Left: ast, Right: dotStar},
	}
}
