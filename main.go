package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/launchkit/siteprofiler/internal/profile"
)

func main() {
	sharedFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "siteprofiler.yaml",
			Usage: "path to the YAML config file (missing file uses defaults)",
		},
		&cli.IntFlag{
			Name:  "max-pages",
			Usage: "maximum pages to crawl per site, homepage included",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "bypass the sqlite page cache",
		},
		&cli.BoolFlag{
			Name:  "algorithmic",
			Usage: "skip LLM extraction and use heuristics only",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "log errors only",
		},
	}

	app := &cli.App{
		Name:  "siteprofiler",
		Usage: "extract business profiles from websites",
		Commands: []*cli.Command{
			{
				Name:      "profile",
				Usage:     "crawl a site and emit one merged business profile",
				ArgsUsage: "<url>",
				Flags:     sharedFlags,
				Action:    profile.ProfileAction,
			},
			{
				Name:      "discover",
				Usage:     "crawl a site and list the pages found",
				ArgsUsage: "<url>",
				Flags:     sharedFlags,
				Action:    profile.DiscoverAction,
			},
			{
				Name:      "extract",
				Usage:     "extract a business profile from a single page",
				ArgsUsage: "<url>",
				Flags:     sharedFlags,
				Action:    profile.ExtractAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
