package main

import (
	"github.com/urfave/cli/v2"

	"github.com/coregx/thegrep"
	"github.com/coregx/thegrep/internal/input"
	"github.com/coregx/thegrep/internal/scan"
)

func grepFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "line-regexp", Aliases: []string{"x"}, Usage: "select only lines the pattern matches in full"},
		&cli.BoolFlag{Name: "count", Aliases: []string{"c"}, Usage: "print only the number of selected lines per file"},
		&cli.BoolFlag{Name: "line-number", Aliases: []string{"n"}, Usage: "prefix each line with its line number"},
		&cli.BoolFlag{Name: "invert-match", Aliases: []string{"v"}, Usage: "select non-matching lines"},
		&cli.BoolFlag{Name: "with-filename", Aliases: []string{"H"}, Usage: "prefix each line with its file name (default with several files)"},
		&cli.BoolFlag{Name: "json", Usage: "print one JSON object per selected line"},
		&cli.BoolFlag{Name: "no-prefilter", Usage: "always run the automaton, without literal prefiltering"},
		&cli.IntFlag{Name: "parallel", Aliases: []string{"j"}, Usage: "number of files scanned concurrently (default from config)"},

		&cli.BoolFlag{Name: "tokens", Aliases: []string{"t"}, Usage: "print the pattern's tokens and exit"},
		&cli.BoolFlag{Name: "parse", Aliases: []string{"p"}, Usage: "print the pattern's syntax tree and exit"},
		&cli.BoolFlag{Name: "nfa", Usage: "print the pattern's automaton and exit"},
		&cli.BoolFlag{Name: "dot", Usage: "print the automaton as Graphviz DOT and exit"},
		&cli.StringFlag{Name: "render", Usage: "draw the automaton to `FILE` (.svg, .png, .jpg or .dot) and exit"},
		&cli.IntFlag{Name: "gen", Aliases: []string{"g"}, Usage: "print `N` random strings the pattern accepts and exit"},
		&cli.Uint64Flag{Name: "seed", Usage: "random seed for --gen (default: time based)"},
	}
}

func grepAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("missing PATTERN; see --help", exitError)
	}
	pattern := c.Args().First()

	cfg, log, err := setup(c)
	if err != nil {
		return err
	}

	if debugRequested(c) {
		return debugAction(c, pattern)
	}

	engine := cfg.EngineConfig()
	if c.Bool("line-regexp") {
		engine.Mode = thegrep.FullMatch
	}
	if c.Bool("no-prefilter") {
		engine.EnablePrefilter = false
	}
	re, err := thegrep.CompileWithConfig(pattern, engine)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}

	files := c.Args().Tail()
	if len(files) == 0 {
		files = []string{input.Stdin}
	}
	parallel := cfg.Parallel
	if c.IsSet("parallel") {
		parallel = c.Int("parallel")
	}

	log.Debug().
		Str("pattern", pattern).
		Stringer("mode", re.Mode()).
		Int("states", re.NFA().States()).
		Bool("prefilter", re.Prefilter() != nil).
		Int("files", len(files)).
		Msg("compiled")

	s := scan.New(re, scan.Options{
		Parallel:     parallel,
		Invert:       c.Bool("invert-match"),
		Count:        c.Bool("count"),
		LineNumber:   c.Bool("line-number"),
		JSON:         c.Bool("json"),
		WithFilename: c.Bool("with-filename") || len(files) > 1,
	})
	s.Log = log

	stats, err := s.ScanFiles(c.Context, files, c.App.Writer)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}
	if stats.Matched == 0 {
		return cli.Exit("", exitNoMatch)
	}
	return nil
}
