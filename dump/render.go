package dump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/coregx/thegrep/nfa"
)

// ErrUnknownFormat is returned by ParseFormat for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown render format")

// ParseFormat maps "svg", "png", "jpg" or "dot" to a Graphviz output format.
func ParseFormat(s string) (graphviz.Format, error) {
	switch s {
	case "svg":
		return graphviz.SVG, nil
	case "png":
		return graphviz.PNG, nil
	case "jpg", "jpeg":
		return graphviz.JPG, nil
	case "dot":
		return graphviz.XDOT, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Render lays out n with Graphviz and writes it to w in the given format.
//
// The graph has the same shape as DOT: an invisible start node pointing at
// the Start state's successor, circles for states, a double circle for End
// and ε-labelled edges for splits.
func Render(ctx context.Context, n *nfa.NFA, format graphviz.Format, w io.Writer) error {
	g, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("graphviz: %w", err)
	}
	defer g.Close()

	graph, err := g.Graph(graphviz.WithName("nfa"))
	if err != nil {
		return fmt.Errorf("graphviz: %w", err)
	}
	defer graph.Close()

	if err := build(graph, n); err != nil {
		return err
	}
	if err := g.Render(ctx, graph, format, w); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}

// build adds one node per non-Start state plus the start marker, then the
// edges of every state.
func build(graph *graphviz.Graph, n *nfa.NFA) error {
	graph.SetRankDir(graphviz.LRRank)

	nodes := make([]*graphviz.Node, n.States())
	for id, s := range n.All() {
		if s.Kind() == nfa.StateStart {
			continue
		}
		node, err := graph.CreateNodeByName(strconv.Itoa(int(id)))
		if err != nil {
			return fmt.Errorf("create node %d: %w", id, err)
		}
		if s.IsEnd() {
			node.SetShape(graphviz.DoubleCircleShape)
		} else {
			node.SetShape(graphviz.CircleShape)
		}
		nodes[id] = node
	}

	start, err := graph.CreateNodeByName("start")
	if err != nil {
		return fmt.Errorf("create start node: %w", err)
	}
	start.SetShape(graphviz.NoneShape)

	edge := 0
	link := func(from, to *graphviz.Node, label string) error {
		e, err := graph.CreateEdgeByName("e"+strconv.Itoa(edge), from, to)
		if err != nil {
			return fmt.Errorf("create edge: %w", err)
		}
		edge++
		if label != "" {
			e.SetLabel(label)
		}
		return nil
	}

	for id, s := range n.All() {
		var err error
		switch s.Kind() {
		case nfa.StateStart:
			err = link(start, nodes[s.Next()], "")
		case nfa.StateMatch:
			err = link(nodes[id], nodes[s.Next()], s.Label().String())
		case nfa.StateSplit:
			left, right := s.Split()
			if err = link(nodes[id], nodes[left], "ε"); err == nil {
				err = link(nodes[id], nodes[right], "ε")
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
