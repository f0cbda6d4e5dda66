package dump

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-graphviz"

	"github.com/coregx/thegrep/nfa"
	"github.com/coregx/thegrep/syntax"
)

func TestTokens(t *testing.T) {
	got := Tokens("a|(b)*")
	want := "1:1\tLiteral('a')\n" +
		"1:2\tAlternation\n" +
		"1:3\tLeftParen\n" +
		"1:4\tLiteral('b')\n" +
		"1:5\tRightParen\n" +
		"1:6\tZeroOrMore\n"
	if got != want {
		t.Errorf("Tokens() =\n%s\nwant\n%s", got, want)
	}

	if got := Tokens(""); got != "" {
		t.Errorf("Tokens(\"\") = %q, want empty", got)
	}
}

func TestAST(t *testing.T) {
	ast, err := syntax.ParseString("a.")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := AST(ast), "Catenation(Char('a'), AnyChar)\n"; got != want {
		t.Errorf("AST() = %q, want %q", got, want)
	}
}

func TestNFA(t *testing.T) {
	n, err := nfa.Compile("a")
	if err != nil {
		t.Fatal(err)
	}
	want := "000 | Start -> 1\n" +
		"001 | Match 'a' -> 2\n" +
		"002 | End\n"
	if got := NFA(n); got != want {
		t.Errorf("NFA() =\n%s\nwant\n%s", got, want)
	}
}

func TestDOT(t *testing.T) {
	n, err := nfa.Compile("a|.")
	if err != nil {
		t.Fatal(err)
	}
	got := DOT(n)

	if !strings.HasPrefix(got, "digraph nfa {rankdir=LR;\n") {
		t.Errorf("missing header:\n%s", got)
	}
	if !strings.HasSuffix(got, "}\n") {
		t.Errorf("missing closing brace:\n%s", got)
	}

	end := n.End()
	wantLines := []string{
		"\tstart [shape=\"none\"]",
		"\tstart -> 3",
		"label=\"a\"",
		"label=\"ANY\"",
		"[label=\"ε\"]",
		"\t" + strconv.FormatUint(uint64(end), 10) + " [shape=\"doublecircle\"]",
	}
	for _, w := range wantLines {
		if !strings.Contains(got, w) {
			t.Errorf("DOT output missing %q:\n%s", w, got)
		}
	}
	if c := strings.Count(got, "ε"); c != 2 {
		t.Errorf("found %d epsilon edges, want 2", c)
	}

	if again := DOT(n); again != got {
		t.Error("DOT output is not deterministic")
	}
}

func TestDOT_EscapesLabels(t *testing.T) {
	n, err := nfa.Compile("\"\\")
	if err != nil {
		t.Fatal(err)
	}
	got := DOT(n)
	if !strings.Contains(got, `[label="\""]`) {
		t.Errorf("quote not escaped:\n%s", got)
	}
	if !strings.Contains(got, `[label="\\"]`) {
		t.Errorf("backslash not escaped:\n%s", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want graphviz.Format
	}{
		{"svg", graphviz.SVG},
		{"png", graphviz.PNG},
		{"jpg", graphviz.JPG},
		{"jpeg", graphviz.JPG},
		{"dot", graphviz.XDOT},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(gif) error = %v, want ErrUnknownFormat", err)
	}
}

func TestRender(t *testing.T) {
	n, err := nfa.Compile("(a|b)*c")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Render(context.Background(), n, graphviz.XDOT, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "digraph") {
		t.Errorf("rendered output is not a digraph:\n%s", out)
	}
	if !strings.Contains(out, "doublecircle") {
		t.Errorf("rendered output lacks the End state:\n%s", out)
	}

	buf.Reset()
	if err := Render(context.Background(), n, graphviz.SVG, &buf); err != nil {
		t.Fatalf("Render svg: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("svg output lacks <svg element")
	}
}
