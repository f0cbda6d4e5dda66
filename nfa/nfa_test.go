package nfa

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/thegrep/syntax"
)

func TestCompile_ArenaLayout(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"a", []string{
			"Start -> 1",
			"Match 'a' -> 2",
			"End",
		}},
		{".", []string{
			"Start -> 1",
			"Match ANY -> 2",
			"End",
		}},
		{"ab", []string{
			"Start -> 1",
			"Match 'a' -> 2",
			"Match 'b' -> 3",
			"End",
		}},
		{"a*", []string{
			"Start -> 2",
			"Match 'a' -> 2",
			"Split -> [1, 3]",
			"End",
		}},
		{"a+", []string{
			"Start -> 1",
			"Match 'a' -> 2",
			"Split -> [1, 3]",
			"End",
		}},
		{"a|b", []string{
			"Start -> 3",
			"Match 'a' -> 4",
			"Match 'b' -> 4",
			"Split -> [1, 2]",
			"End",
		}},
		{"ab*c", []string{
			"Start -> 1",
			"Match 'a' -> 3",
			"Match 'b' -> 3",
			"Split -> [2, 4]",
			"Match 'c' -> 5",
			"End",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.pattern, err)
			}
			if n.States() != len(tt.want) {
				t.Fatalf("got %d states, want %d", n.States(), len(tt.want))
			}
			for id, s := range n.All() {
				if got := s.String(); got != tt.want[id] {
					t.Errorf("state %d = %q, want %q", id, got, tt.want[id])
				}
			}
		})
	}
}

func TestCompile_Invariants(t *testing.T) {
	patterns := []string{
		"a", ".", "abc", "a|b|c", "a*", "a+", "(a|bc)*", "(a+|b)+",
		"(a*)*", "(a*)+", "((a|b)*c)+d", "a.*(d|c)", "(.)*", "x|y*|z+",
	}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			n, err := Compile(pattern)
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", pattern, err)
			}

			if n.Start() != 0 || n.State(n.Start()).Kind() != StateStart {
				t.Errorf("state 0 is %v, want Start", n.State(0))
			}
			if int(n.End()) != n.States()-1 || n.State(n.End()).Kind() != StateEnd {
				t.Errorf("last state is %v, want End", n.State(n.End()))
			}

			starts, ends := 0, 0
			for id, s := range n.All() {
				if s.ID() != id {
					t.Errorf("state at %d reports ID %d", id, s.ID())
				}
				switch s.Kind() {
				case StateStart:
					starts++
				case StateEnd:
					ends++
					if len(s.Edges()) != 0 {
						t.Errorf("End has edges %v", s.Edges())
					}
				}
				for _, e := range s.Edges() {
					if e == InvalidState || int(e) >= n.States() {
						t.Errorf("state %d has unresolved edge %d", id, e)
					}
				}
			}
			if starts != 1 || ends != 1 {
				t.Errorf("got %d Start and %d End states, want one of each", starts, ends)
			}
		})
	}
}

func TestCompile_Deterministic(t *testing.T) {
	for _, pattern := range []string{"(a|bc)*", "(a+|b)+", "a.*(d|c)"} {
		n1 := mustCompile(t, pattern)
		n2 := mustCompile(t, pattern)
		if dumpStates(n1) != dumpStates(n2) {
			t.Errorf("%q compiled differently:\n%s\n%s", pattern, dumpStates(n1), dumpStates(n2))
		}
	}
}

func TestCompile_ParseError(t *testing.T) {
	_, err := Compile("a)")
	if err == nil {
		t.Fatal("expected error")
	}

	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("error %T is not *CompileError", err)
	}
	if cerr.Pattern != "a)" {
		t.Errorf("Pattern = %q, want %q", cerr.Pattern, "a)")
	}

	var perr *syntax.Error
	if !errors.As(err, &perr) {
		t.Fatalf("CompileError does not unwrap to *syntax.Error")
	}
	if perr.Kind != syntax.ErrTrailingInput {
		t.Errorf("kind = %v, want TrailingInput", perr.Kind)
	}
	if !errors.Is(err, ErrInvalidPattern) {
		t.Error("errors.Is(err, ErrInvalidPattern) = false")
	}
	if !strings.Contains(err.Error(), "expected end of input, found RightParen") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCompileAST(t *testing.T) {
	ast := syntax.Unanchored(syntax.Char{C: 'x'})
	n, err := CompileAST(ast)
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{"x", "axb", "aax", "xbb"} {
		if !n.Accepts(input) {
			t.Errorf("unanchored x should accept %q", input)
		}
	}
	if n.Accepts("abc") {
		t.Error("unanchored x should reject \"abc\"")
	}
}

func TestState_Accessors(t *testing.T) {
	n := mustCompile(t, "a|.")

	start := n.State(n.Start())
	if start.Next() != 3 {
		t.Errorf("Start.Next() = %d, want 3", start.Next())
	}
	if l, r := start.Split(); l != InvalidState || r != InvalidState {
		t.Errorf("Start.Split() = (%d, %d), want invalid", l, r)
	}
	if !start.IsEpsilon() {
		t.Error("Start should be epsilon")
	}

	a := n.State(1)
	if a.Label() != CharLabel('a') {
		t.Errorf("Label() = %v, want 'a'", a.Label())
	}
	if a.Label().String() != "a" {
		t.Errorf("Label().String() = %q", a.Label().String())
	}
	dot := n.State(2)
	if !dot.Label().Any || dot.Label().String() != "ANY" {
		t.Errorf("Label() = %+v, want ANY", dot.Label())
	}

	split := n.State(3)
	if l, r := split.Split(); l != 1 || r != 2 {
		t.Errorf("Split() = (%d, %d), want (1, 2)", l, r)
	}
	if split.Next() != InvalidState {
		t.Errorf("Split.Next() = %d, want InvalidState", split.Next())
	}

	end := n.State(n.End())
	if !end.IsEnd() || end.Label() != (Label{}) {
		t.Errorf("End state = %v", end)
	}

	if n.State(InvalidState) != nil || n.State(StateID(n.States())) != nil {
		t.Error("out-of-range State() should be nil")
	}
}

func TestState_EdgesAreCopies(t *testing.T) {
	n := mustCompile(t, "a|b")
	split := n.State(3)
	edges := split.Edges()
	edges[0] = 99
	if l, _ := split.Split(); l != 1 {
		t.Error("mutating Edges() result changed the state")
	}
}

func TestLabel_Matches(t *testing.T) {
	if !AnyLabel().Matches('x') || !AnyLabel().Matches('é') {
		t.Error("ANY should match every character")
	}
	if !CharLabel('x').Matches('x') || CharLabel('x').Matches('y') {
		t.Error("char label should match only itself")
	}
}

func TestStateIter(t *testing.T) {
	n := mustCompile(t, "ab")
	it := n.Iter()
	count := 0
	for it.HasNext() {
		s := it.Next()
		if s.ID() != StateID(count) {
			t.Errorf("iteration %d returned state %d", count, s.ID())
		}
		count++
	}
	if count != n.States() {
		t.Errorf("iterated %d states, want %d", count, n.States())
	}
	if it.Next() != nil {
		t.Error("exhausted iterator should return nil")
	}
}

func TestEpsilonClosure(t *testing.T) {
	// Every Match state and End are reachable from Start without input.
	n := mustCompile(t, "(a|b)*")
	got := n.EpsilonClosure(n.Start())
	want := map[StateID]bool{}
	for id, s := range n.All() {
		if s.Kind() == StateMatch || s.Kind() == StateEnd {
			want[id] = true
		}
	}
	if len(got) != len(want) {
		t.Fatalf("closure = %v, want all of %v", got, want)
	}
	for _, id := range got {
		if !want[id] {
			t.Errorf("unexpected state %d in closure", id)
		}
	}

	if n.EpsilonClosure(InvalidState) != nil {
		t.Error("closure of invalid state should be nil")
	}
}

func TestNFA_String(t *testing.T) {
	n := mustCompile(t, "a")
	if got, want := n.String(), "NFA{states: 3, start: 0, end: 2}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func mustCompile(t *testing.T, pattern string) *NFA {
	t.Helper()
	n, err := Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", pattern, err)
	}
	return n
}

func dumpStates(n *NFA) string {
	var sb strings.Builder
	for _, s := range n.All() {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
