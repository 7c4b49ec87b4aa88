package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/mcell/classgen/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)

	// -v belongs to --verbose
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	app := &cli.Command{
		Name:    "classgen",
		Usage:   "Generate C++ classes and Python bindings from a YAML object model",
		Version: build(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "print debug output",
				Destination: &ctrl.Flags.Verbose,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if ctrl.Flags.Verbose {
				log.Logger = log.Level(zerolog.DebugLevel)
			}

			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return ctrl.Generate(ctx)
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run classgen")
	}
}
