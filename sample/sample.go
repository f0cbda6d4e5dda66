// Package sample generates random strings accepted by an NFA.
//
// A walk starts at the Start state, picks one arm of every Split uniformly
// at random and records the character of every Match state it crosses
// (a random ASCII letter or digit for '.'). Reaching End yields a string
// the automaton accepts.
package sample

import (
	"math/rand/v2"
	"strings"

	"github.com/coregx/thegrep/nfa"
)

// DefaultMaxLen is the length past which a walk is abandoned and retried.
const DefaultMaxLen = 64

// maxRetries bounds the random restarts for one string. The last attempt
// is steered to End along the cheapest path once it runs long.
const maxRetries = 16

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generator produces random accepted strings.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	rand *rand.Rand

	// MaxLen is the soft limit on the length of a generated string.
	MaxLen int
}

// New returns a generator drawing from src.
func New(src rand.Source) *Generator {
	return &Generator{rand: rand.New(src), MaxLen: DefaultMaxLen}
}

// NewSeeded returns a generator with a deterministic PCG source.
func NewSeeded(seed uint64) *Generator {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate returns count strings accepted by n. Strings may repeat.
func (g *Generator) Generate(n *nfa.NFA, count int) []string {
	if count <= 0 {
		return nil
	}
	maxLen := g.MaxLen
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	var cost []int
	out := make([]string, 0, count)
	for len(out) < count {
		s, ok := "", false
		for attempt := 0; attempt < maxRetries-1 && !ok; attempt++ {
			s, ok = g.walk(n, maxLen, nil)
		}
		if !ok {
			if cost == nil {
				cost = costToEnd(n)
			}
			s, _ = g.walk(n, maxLen, cost)
		}
		out = append(out, s)
	}
	return out
}

// walk performs one random walk. Without cost it gives up once the string
// exceeds maxLen or the walk takes too many steps. With cost it never gives
// up: past the limit every Split takes the arm closer to End.
func (g *Generator) walk(n *nfa.NFA, maxLen int, cost []int) (string, bool) {
	var b strings.Builder
	runes := 0
	steps := 0
	stepLimit := 4*maxLen + n.States()

	id := n.Start()
	for {
		s := n.State(id)
		steered := cost != nil && (runes > maxLen || steps > stepLimit)
		if cost == nil && (runes > maxLen || steps > stepLimit) {
			return "", false
		}
		steps++

		switch s.Kind() {
		case nfa.StateStart:
			id = s.Next()
		case nfa.StateMatch:
			if l := s.Label(); l.Any {
				b.WriteByte(alphanumeric[g.rand.IntN(len(alphanumeric))])
			} else {
				b.WriteRune(l.Char)
			}
			runes++
			id = s.Next()
		case nfa.StateSplit:
			left, right := s.Split()
			switch {
			case steered && cost[left] <= cost[right]:
				id = left
			case steered:
				id = right
			case g.rand.IntN(2) == 0:
				id = left
			default:
				id = right
			}
		case nfa.StateEnd:
			return b.String(), true
		}
	}
}

// costToEnd returns, per state, the cheapest way to reach End where a
// Match edge costs more than every epsilon path combined. Following the
// cheaper arm of each Split strictly lowers the cost, so a steered walk
// always terminates and consumes as few characters as possible.
func costToEnd(n *nfa.NFA) []int {
	const unreachable = int(^uint(0) >> 1)
	matchCost := n.States() + 1

	cost := make([]int, n.States())
	for i := range cost {
		cost[i] = unreachable
	}
	cost[n.End()] = 0

	relax := func(from int, to nfa.StateID, weight int) bool {
		if cost[to] == unreachable || cost[to]+weight >= cost[from] {
			return false
		}
		cost[from] = cost[to] + weight
		return true
	}

	for changed := true; changed; {
		changed = false
		for id, s := range n.All() {
			i := int(id)
			switch s.Kind() {
			case nfa.StateStart:
				changed = relax(i, s.Next(), 1) || changed
			case nfa.StateMatch:
				changed = relax(i, s.Next(), matchCost) || changed
			case nfa.StateSplit:
				left, right := s.Split()
				changed = relax(i, left, 1) || changed
				changed = relax(i, right, 1) || changed
			}
		}
	}
	return cost
}
