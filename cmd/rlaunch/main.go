package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/kk-code-lab/rlaunch/internal/config"
)

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rlaunch: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "rlaunch",
		Usage: "Launch applications and files by typing a few letters",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "Directory holding config.toml, the index cache and history",
				EnvVars: []string{config.DirEnv},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log at debug level (to stderr when no config dir can be resolved)",
			},
		},
		Before: setup,
		After:  teardown,
		Action: pickCommand,
		Commands: []*cli.Command{
			{
				Name:   "pick",
				Usage:  "Open the interactive picker",
				Action: pickCommand,
			},
			{
				Name:      "search",
				Usage:     "Print ranked matches for a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
			},
			{
				Name:   "recent",
				Usage:  "Print recently launched entries",
				Action: recentCommand,
			},
			{
				Name:      "ls",
				Usage:     "List a folder the way the picker browses it",
				ArgsUsage: "<dir> [filter]",
				Action:    lsCommand,
			},
			{
				Name:      "expand",
				Usage:     "Record a folder expansion and list the folder",
				ArgsUsage: "<dir>",
				Action:    expandCommand,
			},
			{
				Name:   "rebuild",
				Usage:  "Rescan every configured path and rewrite the index cache",
				Action: rebuildCommand,
			},
			{
				Name:      "launch",
				Usage:     "Open a target and record the launch",
				ArgsUsage: "<path>",
				Action:    launchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Query the target was found with",
					},
				},
			},
			{
				Name:  "placement",
				Usage: "Inspect or set remembered window positions",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the stored positions",
						Action: placementShowCommand,
					},
					{
						Name:      "set",
						Usage:     "Store a position or size",
						ArgsUsage: "search|settings|settings-size <x|width> <y|height>",
						Action:    placementSetCommand,
					},
				},
			},
		},
	}
}
