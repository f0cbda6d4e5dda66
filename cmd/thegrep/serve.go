package main

import (
	"github.com/urfave/cli/v2"

	"github.com/coregx/thegrep/internal/server"
)

var serveCommand = &cli.Command{
	Name:      "serve",
	Usage:     "serve the match API over HTTP",
	UsageText: "thegrep serve [--addr ADDR]",
	Description: `Starts an HTTP service with POST /v1/match, POST /v1/nfa and GET /healthz.
Patterns compile with the configured mode unless a request names one.`,
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "addr", Usage: "listen address (default from config serve.addr)"},
	}, globalFlags()...),
	Action: serveAction,
}

func serveAction(c *cli.Context) error {
	cfg, log, err := setup(c)
	if err != nil {
		return err
	}
	addr := cfg.Serve.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	if err := server.New(log, cfg.EngineConfig()).Run(c.Context, addr); err != nil {
		return cli.Exit(err.Error(), exitError)
	}
	return nil
}
