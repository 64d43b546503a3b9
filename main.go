// authcode TUI - A terminal client for short-lived authentication codes.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/authcode-tui/internal/cli"
	"github.com/jeranaias/authcode-tui/internal/config"
	"github.com/jeranaias/authcode-tui/internal/credstore"
	"github.com/jeranaias/authcode-tui/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdLogin:
		exitOnError(args, cli.HandleLogin(args))
	case cli.CmdLogout:
		exitOnError(args, cli.HandleLogout(args))
	case cli.CmdStatus:
		exitOnError(args, cli.HandleStatus(args))
	case cli.CmdConfig:
		exitOnError(args, cli.HandleConfig(args))
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	}
}

// exitOnError reports a command error and exits with its mapped code.
func exitOnError(args cli.Args, err error) {
	if err == nil {
		return
	}
	cli.HandleErrorAndExit(err, args.JSON)
}

// runTUI starts the interactive interface.
func runTUI(args cli.Args) {
	if err := cli.RequiresTTY("the interactive interface"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Hint: use 'authcode login' and 'authcode status' for scripted access.")
		os.Exit(cli.ExitUsageError)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(cli.ExitConfigError)
	}
	if args.Server != "" {
		cfg.Server.BaseURL = args.Server
	}

	store, err := credstore.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open credential store: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
	defer store.Close()

	m := app.New(cfg, store)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Live-reload config edits into the running program.
	if path, err := config.ConfigPathTOML(); err == nil {
		if w, err := config.WatchFile(path, func(c *config.Config) {
			p.Send(app.ConfigReloadedMsg{Cfg: c})
		}); err == nil {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
}
