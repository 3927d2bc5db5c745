// Package main is the entry point for the lazyfm application.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	urfavecli "github.com/urfave/cli/v2"
	"lazyfm/internal/api"
	"lazyfm/internal/app"
	"lazyfm/internal/config"
	"lazyfm/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cliApp := &urfavecli.App{
		Name:                 "lazyfm",
		Usage:                "A TUI client for a web file manager",
		ArgsUsage:            "[PATH]",
		Version:              version,
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			lsCommand(),
		},

		Action: runTUI,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// runTUI is the default action that launches the TUI when no subcommand is
// given.
func runTUI(c *urfavecli.Context) error {
	cfg, cfgPath, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	if err := setupDebugLog(c.String("debug-log"), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
	}
	defer log.Close()

	client, err := buildClient(c, cfg)
	if err != nil {
		return err
	}

	dir := c.Args().First()
	if dir == "" {
		dir = "/"
	}

	m := app.NewModel(cfg, client, dir)

	// Live-reload presentation settings when the config file changes.
	if cfgPath != "" {
		watcher := config.NewWatcher(cfgPath, log.Debugf)
		if err := watcher.Start(); err != nil {
			log.Debugf("config watch disabled: %v", err)
		} else {
			m.SetConfigEvents(watcher.Events)
			defer watcher.Stop()
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// setupDebugLog wires the debug logger: an explicit flag wins over the
// config file; with neither, buffered logs are discarded.
func setupDebugLog(flagPath string, cfg *config.AppConfig) error {
	path := flagPath
	if path == "" {
		path = cfg.DebugLog
	}
	if path == "" {
		return log.SetFile("")
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return log.SetFile(path)
	}
	return log.SetFile(expanded)
}

func buildClient(c *urfavecli.Context, cfg *config.AppConfig) (*api.Client, error) {
	name, srv, err := cfg.Server(c.String("server"))
	if err != nil {
		return nil, err
	}
	return api.New(api.Config{
		Server:  name,
		BaseURL: srv.URL,
		Token:   srv.Token,
		Timeout: time.Duration(cfg.RequestTimeoutSecs) * time.Second,
	}), nil
}
