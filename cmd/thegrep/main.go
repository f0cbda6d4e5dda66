// Command thegrep prints the lines of its inputs that match a pattern.
//
// Usage:
//
//	thegrep [flags] PATTERN [FILE...]
//	thegrep serve [--addr ADDR]
//
// The pattern language has literals, '.', '|', '*', '+' and parentheses.
// Without files, or for "-", standard input is read. Gzip and zstd inputs
// are decompressed transparently.
//
// Exit status is 0 when a line was selected, 1 when none was and 2 on
// error.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/coregx/thegrep/internal/config"
	"github.com/coregx/thegrep/internal/logging"
)

const version = "0.1.0"

// Exit codes.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	err := app.RunContext(ctx, args)
	if err == nil {
		return exitMatch
	}

	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(stderr, "thegrep:", msg)
		}
		return ec.ExitCode()
	}
	fmt.Fprintln(stderr, "thegrep:", err)
	return exitError
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "thegrep",
		Usage:     "Tar Heel Extended Global Regular Expressions Print",
		UsageText: "thegrep [flags] PATTERN [FILE...]",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     append(grepFlags(), globalFlags()...),
		Action:    grepAction,
		Commands:  []*cli.Command{serveCommand},
		// Errors are reported by run so exit codes stay in one place.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func init() {
	// -v belongs to --invert-match.
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "path to a YAML config file (default: .thegrep.yaml in . or $HOME/.config/thegrep)",
			EnvVars: []string{"THEGREP_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: trace, debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "log format: console or json",
		},
	}
}

// setup loads the configuration, applies the global flags on top of it and
// builds the logger.
func setup(c *cli.Context) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, zerolog.Nop(), cli.Exit(err.Error(), exitError)
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}

	log, err := logging.New(c.App.ErrWriter, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, zerolog.Nop(), cli.Exit(err.Error(), exitError)
	}
	return cfg, log, nil
}
