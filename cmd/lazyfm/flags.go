package main

import (
	urfavecli "github.com/urfave/cli/v2"
)

// globalFlags returns the flags shared by the TUI and the subcommands.
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
			EnvVars: []string{"LAZYFM_CONFIG"},
		},
		&urfavecli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Server profile to connect to (defaults to default_server)",
			EnvVars: []string{"LAZYFM_SERVER"},
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Write debug logs to the given file",
		},
	}
}
