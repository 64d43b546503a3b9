// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for authcode.
//
// CLI: Comprehensive help and examples for all commands
package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool   // Output in JSON format
	Server  string // Override authority base URL

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `authcode - rotating authentication code client

Authcode signs in against an authentication authority, activates a
session with a one-time digit code, and displays rotating time-boxed
authentication codes with a live countdown.

Usage:
  authcode                   Start TUI (default)
  authcode login             Sign in and activate a session
  authcode logout            Forget the stored login and session
  authcode status, s         Show login and server status
  authcode config [show|set|path|reset]   Configuration
  authcode version           Show version information
  authcode help              Show this help

Config Commands:
  authcode config show              Show current configuration
  authcode config set <key> <value> Set a configuration value
  authcode config path              Show config file location
  authcode config reset             Reset to defaults

  Configuration Keys:
    server_url         Authority base URL (http/https)
    timeout_secs       Request timeout in seconds (1-120)
    retry_delay_secs   Delay before code-fetch retries (1-300)
    theme              UI theme (dark/light/auto)
    compact_mode       Compact TUI layout (true/false)

Global Flags:
  --server URL    Override the authority base URL for this run
  --json          Output in JSON format
  -q, --quiet     Minimal output
  -v, --verbose   Debug output

Examples:
  authcode                            Start the TUI
  authcode login                      Sign in interactively
  authcode status --json              Status for scripting
  authcode config set server_url http://10.0.0.5:9000
  authcode config set theme light
  authcode --server http://localhost:9000 login

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("authcode version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "login", "activate":
		return CmdLogin, parsedArgs

	case "logout":
		return CmdLogout, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: restore it and fall back to the TUI.
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdTUI, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--server":
			if i+1 < len(args) {
				i++
				parsedArgs.Server = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--server=") {
				parsedArgs.Server = strings.TrimPrefix(arg, "--server=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// NOTE: HandleLogin is implemented in login.go
// NOTE: HandleLogout is implemented in logout.go
// NOTE: HandleStatus is implemented in status.go
// NOTE: HandleConfig is implemented in config.go

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		resp := NewJSONResponse("version", data)
		resp.Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
