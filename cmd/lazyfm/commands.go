package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	urfavecli "github.com/urfave/cli/v2"
	"golang.org/x/term"
	"lazyfm/internal/config"
	"lazyfm/internal/models"
)

// lsCommand prints a directory listing without entering the TUI.
func lsCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "ls",
		Usage:     "Print a directory listing and exit",
		ArgsUsage: "[PATH]",
		Action:    runLs,
	}
}

func runLs(c *urfavecli.Context) error {
	cfg, _, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	client, err := buildClient(c, cfg)
	if err != nil {
		return err
	}

	dir := c.Args().First()
	if dir == "" {
		dir = "/"
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSecs)*time.Second)
	defer cancel()

	entries, err := client.List(ctx, dir)
	if err != nil {
		return err
	}
	models.SortEntries(entries)

	// Humanized output on a terminal, machine-friendly otherwise.
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	for _, entry := range entries {
		name := entry.Name
		if !entry.IsFile {
			name += "/"
		}
		size := "-"
		if entry.IsFile {
			if isTTY && cfg.HumanSizes {
				size = humanize.IBytes(uint64(entry.Size))
			} else {
				size = fmt.Sprintf("%d", entry.Size)
			}
		}
		mod := "-"
		if !entry.ModTime.IsZero() {
			if isTTY {
				mod = humanize.Time(entry.ModTime)
			} else {
				mod = entry.ModTime.UTC().Format(time.RFC3339)
			}
		}
		fmt.Printf("%-10s %-20s %s\n", size, mod, name)
	}
	return nil
}
