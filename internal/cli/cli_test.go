// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"testing"

	"github.com/jeranaias/authcode-tui/internal/api"
)

// =============================================================================
// COMMAND PARSING
// =============================================================================

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, args := Parse(nil)
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want CmdTUI", cmd)
	}
	if args.JSON || args.Quiet || args.Verbose {
		t.Errorf("unexpected flags set: %+v", args)
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"login"}, CmdLogin},
		{[]string{"activate"}, CmdLogin},
		{[]string{"logout"}, CmdLogout},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"config"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"--version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"-h"}, CmdHelp},
		{[]string{"tui"}, CmdTUI},
	}

	for _, tt := range tests {
		cmd, _ := Parse(tt.argv)
		if cmd != tt.want {
			t.Errorf("Parse(%v) = %v, want %v", tt.argv, cmd, tt.want)
		}
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := Parse([]string{"--json", "-q", "status", "--no-probe"})
	if cmd != CmdStatus {
		t.Fatalf("cmd = %v, want CmdStatus", cmd)
	}
	if !args.JSON {
		t.Error("JSON flag not parsed")
	}
	if !args.Quiet {
		t.Error("Quiet flag not parsed")
	}
	if len(args.Raw) != 1 || args.Raw[0] != "--no-probe" {
		t.Errorf("Raw = %v, want [--no-probe]", args.Raw)
	}
}

func TestParseServerOverride(t *testing.T) {
	_, args := Parse([]string{"--server", "http://alt:9000", "login"})
	if args.Server != "http://alt:9000" {
		t.Errorf("Server = %q", args.Server)
	}

	_, args = Parse([]string{"--server=http://alt2:9000", "status"})
	if args.Server != "http://alt2:9000" {
		t.Errorf("Server = %q", args.Server)
	}
}

func TestParseConfigSet(t *testing.T) {
	cmd, args := Parse([]string{"config", "set", "server_url", "http://10.0.0.5:9000"})
	if cmd != CmdConfig {
		t.Fatalf("cmd = %v, want CmdConfig", cmd)
	}
	if args.Subcommand != "set" {
		t.Errorf("Subcommand = %q, want set", args.Subcommand)
	}
	if args.ConfigKey != "server_url" {
		t.Errorf("ConfigKey = %q", args.ConfigKey)
	}
	if args.ConfigVal != "http://10.0.0.5:9000" {
		t.Errorf("ConfigVal = %q", args.ConfigVal)
	}
}

func TestParseUnknownFallsBackToTUI(t *testing.T) {
	cmd, args := Parse([]string{"bogus", "extra"})
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want CmdTUI", cmd)
	}
	if len(args.Raw) != 2 || args.Raw[0] != "bogus" {
		t.Errorf("Raw = %v", args.Raw)
	}
}

// =============================================================================
// ARG PARSER
// =============================================================================

func TestArgParserFlags(t *testing.T) {
	p := NewArgParser([]string{"set", "--username", "alice", "--code=123456", "--json"})

	if p.Subcommand() != "set" {
		t.Errorf("Subcommand = %q", p.Subcommand())
	}
	if p.Flag("username") != "alice" {
		t.Errorf("Flag(username) = %q", p.Flag("username"))
	}
	if p.Flag("code") != "123456" {
		t.Errorf("Flag(code) = %q", p.Flag("code"))
	}
	if !p.BoolFlag("json") {
		t.Error("BoolFlag(json) = false")
	}
	if p.BoolFlag("missing") {
		t.Error("BoolFlag(missing) = true")
	}
}

func TestArgParserExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--json=false", "--probe=true"})
	if p.BoolFlag("json") {
		t.Error("explicit --json=false parsed as true")
	}
	if !p.BoolFlag("probe") {
		t.Error("explicit --probe=true parsed as false")
	}
}

func TestArgParserPositional(t *testing.T) {
	p := NewArgParser([]string{"set", "theme", "light"})
	if p.PositionalCount() != 3 {
		t.Fatalf("PositionalCount = %d, want 3", p.PositionalCount())
	}
	if p.Positional(1) != "theme" || p.Positional(2) != "light" {
		t.Errorf("positionals = %v", p.PositionalFrom(0))
	}
	if p.Positional(5) != "" {
		t.Error("out of range positional should be empty")
	}
}

func TestArgParserIntFlags(t *testing.T) {
	p := NewArgParser([]string{"--lines", "50", "--bad", "xyz"})
	if got := p.FlagIntOrDefault("lines", 10); got != 50 {
		t.Errorf("FlagIntOrDefault(lines) = %d, want 50", got)
	}
	if got := p.FlagIntOrDefault("bad", 10); got != 10 {
		t.Errorf("FlagIntOrDefault(bad) = %d, want default 10", got)
	}
	if got := p.FlagIntOrDefault("missing", 7); got != 7 {
		t.Errorf("FlagIntOrDefault(missing) = %d, want 7", got)
	}
}

func TestParseBoolString(t *testing.T) {
	truthy := []string{"true", "yes", "Y", "1", "on"}
	for _, s := range truthy {
		if v, err := ParseBoolString(s); err != nil || !v {
			t.Errorf("ParseBoolString(%q) = %v, %v", s, v, err)
		}
	}
	falsy := []string{"false", "no", "N", "0", "off"}
	for _, s := range falsy {
		if v, err := ParseBoolString(s); err != nil || v {
			t.Errorf("ParseBoolString(%q) = %v, %v", s, v, err)
		}
	}
	if _, err := ParseBoolString("maybe"); err == nil {
		t.Error("ParseBoolString(maybe) should error")
	}
}

// =============================================================================
// EXIT CODES
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", NewValidationError("key", "x", "bad"), ExitUsageError},
		{"invalid credentials", &api.AuthError{Kind: api.KindInvalidCredentials}, ExitAuthError},
		{"session expired", &api.AuthError{Kind: api.KindSessionExpired}, ExitAuthError},
		{"network", &api.AuthError{Kind: api.KindNetwork}, ExitNetworkError},
		{"protocol", &api.AuthError{Kind: api.KindProtocol}, ExitGeneralError},
		{"config text", errors.New("failed to load configuration"), ExitConfigError},
		{"dial text", errors.New("dial tcp: connection refused"), ExitNetworkError},
		{"generic", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	inner := &api.AuthError{Kind: api.KindNetwork, Message: "refused"}
	err := NewCommandError("login", "activate", "request failed", inner)

	var authErr *api.AuthError
	if !errors.As(err, &authErr) {
		t.Fatal("CommandError should unwrap to AuthError")
	}
	if GetExitCode(err) != ExitNetworkError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitNetworkError)
	}
}
