package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/coregx/thegrep/dump"
	"github.com/coregx/thegrep/nfa"
	"github.com/coregx/thegrep/sample"
	"github.com/coregx/thegrep/syntax"
)

func debugRequested(c *cli.Context) bool {
	for _, name := range []string{"tokens", "parse", "nfa", "dot", "render", "gen"} {
		if c.IsSet(name) {
			return true
		}
	}
	return false
}

// debugAction prints the requested views of the pattern in pipeline order.
// They describe the full-match automaton regardless of --line-regexp.
func debugAction(c *cli.Context, pattern string) error {
	w := c.App.Writer

	if c.Bool("tokens") {
		fmt.Fprint(w, dump.Tokens(pattern))
	}

	ast, err := syntax.ParseString(pattern)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}
	if c.Bool("parse") {
		fmt.Fprint(w, dump.AST(ast))
	}

	n, err := nfa.CompileAST(ast)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}
	if c.Bool("nfa") {
		fmt.Fprint(w, dump.NFA(n))
	}
	if c.Bool("dot") {
		fmt.Fprint(w, dump.DOT(n))
	}
	if path := c.String("render"); path != "" {
		if err := render(c, n, path); err != nil {
			return cli.Exit(err.Error(), exitError)
		}
	}
	if count := c.Int("gen"); count > 0 {
		seed := c.Uint64("seed")
		if !c.IsSet("seed") {
			seed = uint64(time.Now().UnixNano()) //nolint:gosec // G115: any bits will do for a seed
		}
		gen := sample.New(rand.NewPCG(seed, seed>>1|1))
		for _, s := range gen.Generate(n, count) {
			fmt.Fprintln(w, s)
		}
	}
	return nil
}

func render(c *cli.Context, n *nfa.NFA, path string) (err error) {
	format, err := dump.ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return err
	}
	f, err := os.Create(path) //nolint:gosec // G304: user-chosen output file
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return dump.Render(c.Context, n, format, f)
}
