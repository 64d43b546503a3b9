// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution for authcode.
//
// The default invocation starts the TUI; subcommands handle sign-in,
// sign-out, status inspection, and configuration:
//
//   - login:   interactive sign-in and session activation
//   - logout:  clear the stored login and session
//   - status:  show login state and authority reachability
//   - config:  show and modify configuration
//   - version: build information
//
// All commands support --json output for scripting. Colors follow TTY
// detection and the NO_COLOR convention.
package cli
