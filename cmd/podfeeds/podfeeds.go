package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sa6mwa/podfeeds/internal/infra/adapters/logger"
	"github.com/urfave/cli/v2"
)

const defaultSpec string = "podcast.toml"

func main() {
	specFlag := &cli.StringFlag{
		Name:    "spec",
		Aliases: []string{"s"},
		Value:   defaultSpec,
		Usage:   "Podcast description to generate feeds from (.toml, .yaml or .yml)",
	}
	verboseFlag := &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Value:   false,
		Usage:   "Log at debug level",
	}
	app := &cli.App{
		Name:  "podfeeds",
		Usage: "Render one podcast rss feed per audio format from a single show description and optionally publish them to Amazon S3.",
		Before: func(c *cli.Context) error {
			c.Context = logger.WithLogger(c.Context, logger.New(os.Stderr, c.Bool("verbose")))
			return nil
		},
		Flags: []cli.Flag{verboseFlag},
		Commands: []*cli.Command{
			{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "Generate one feed file per format listed in the podcast file",
				Action:  generate,
				Flags: []cli.Flag{
					specFlag,
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "Directory to write feeds into, overrides output.directory in the podcast file",
					},
					&cli.BoolFlag{
						Name:  "timestamp",
						Value: false,
						Usage: "Set pubDate and lastBuildDate of every channel to the current time",
					},
					&cli.BoolFlag{
						Name:    "upload",
						Aliases: []string{"u"},
						Value:   false,
						Usage:   "Upload feeds that differ from the published copy to the bucket in the publish section of the podcast file",
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Value:   false,
						Usage:   "Force, do not ask if to proceed with an action, just do it",
					},
					&cli.BoolFlag{
						Name:    "dry-run",
						Aliases: []string{"n"},
						Value:   false,
						Usage:   "Write feeds to stdout instead of files, never upload",
					},
				},
			},
			{
				Name:    "check",
				Aliases: []string{"c"},
				Usage:   "Route every episode file and report the ones that do not end up in a feed",
				Action:  check,
				Flags:   []cli.Flag{specFlag},
			},
		},
	}
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
