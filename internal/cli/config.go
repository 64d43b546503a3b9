// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for authcode.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   set <key> <value>   Set a configuration value
//   reset               Reset to default configuration
//   path                Show configuration file path
//
// Examples:
//   authcode config                       Show current config (default)
//   authcode config show --json           Config in JSON format
//   authcode config set server_url http://10.0.0.5:9000
//   authcode config set timeout_secs 8
//   authcode config set theme light
//   authcode config set compact_mode true
//   authcode config reset                 Reset to defaults
//   authcode config path                  Show config file location
//
// Configuration Keys:
//   server_url          Authority base URL (http/https)
//   timeout_secs        Request timeout in seconds (1-120)
//   retry_delay_secs    Delay before code-fetch retries (1-300)
//   theme               UI theme (dark/light/auto)
//   compact_mode        Compact TUI layout (true/false)
package cli

import (
	"fmt"
	"strconv"

	"github.com/jeranaias/authcode-tui/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "set":
		return configSet(args)
	case "reset":
		return configReset(args)
	case "path":
		return configPath(args)
	default:
		return NewValidationError("subcommand", args.Subcommand,
			"expected show, set, reset, or path")
	}
}

func configShow(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return WrapError(err, "failed to load configuration")
	}

	path, _ := config.ConfigPathTOML()

	if args.JSON {
		data := ConfigData{
			Server: ConfigServerInfo{
				BaseURL:        cfg.Server.BaseURL,
				TimeoutSecs:    cfg.Server.TimeoutSecs,
				RetryDelaySecs: cfg.Server.RetryDelaySecs,
			},
			UI: ConfigUIInfo{
				Theme:       cfg.UI.Theme,
				CompactMode: cfg.UI.CompactMode,
			},
			Path: path,
		}
		resp := NewJSONResponse("config", data)
		return resp.Print()
	}

	fmt.Println()
	fmt.Println(TitleStyle.Render("authcode configuration"))

	fmt.Println(SectionStyle.Render("Server"))
	fmt.Printf("  %s%s\n", RenderLabel("server_url:"), ValueStyle.Render(cfg.Server.BaseURL))
	fmt.Printf("  %s%s\n", RenderLabel("timeout_secs:"), ValueStyle.Render(strconv.Itoa(cfg.Server.TimeoutSecs)))
	fmt.Printf("  %s%s\n", RenderLabel("retry_delay_secs:"), ValueStyle.Render(strconv.Itoa(cfg.Server.RetryDelaySecs)))

	fmt.Println(SectionStyle.Render("UI"))
	fmt.Printf("  %s%s\n", RenderLabel("theme:"), ValueStyle.Render(cfg.UI.Theme))
	fmt.Printf("  %s%s\n", RenderLabel("compact_mode:"), ValueStyle.Render(strconv.FormatBool(cfg.UI.CompactMode)))

	fmt.Println()
	fmt.Printf("  %s\n", DimStyle.Render("Config file: "+path))
	fmt.Println()
	return nil
}

func configSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return ErrMissingArgument("key/value", "authcode config set server_url http://10.0.0.5:9000")
	}

	cfg, err := config.Load()
	if err != nil {
		return WrapError(err, "failed to load configuration")
	}

	key, val := args.ConfigKey, args.ConfigVal
	switch key {
	case "server_url":
		cfg.Server.BaseURL = val
	case "timeout_secs":
		n, err := strconv.Atoi(val)
		if err != nil {
			return NewValidationError(key, val, "must be an integer")
		}
		cfg.Server.TimeoutSecs = n
	case "retry_delay_secs":
		n, err := strconv.Atoi(val)
		if err != nil {
			return NewValidationError(key, val, "must be an integer")
		}
		cfg.Server.RetryDelaySecs = n
	case "theme":
		cfg.UI.Theme = val
	case "compact_mode":
		b, err := ParseBoolString(val)
		if err != nil {
			return NewValidationError(key, val, "must be true or false")
		}
		cfg.UI.CompactMode = b
	default:
		return NewValidationError("key", key,
			"unknown configuration key; see 'authcode help' for the key list")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	path, err := config.ConfigPathTOML()
	if err != nil {
		return WrapError(err, "failed to resolve config path")
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return WrapError(err, "failed to save configuration")
	}

	if args.JSON {
		resp := NewJSONResponse("config", map[string]string{key: val})
		return resp.Print()
	}

	fmt.Println()
	fmt.Printf("%s %s = %s\n", SuccessStyle.Render("[OK]"), key, ValueStyle.Render(val))
	fmt.Println()
	return nil
}

func configReset(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return WrapError(err, "failed to resolve config path")
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return WrapError(err, "failed to save configuration")
	}

	if args.JSON {
		resp := NewJSONResponse("config", map[string]bool{"reset": true})
		return resp.Print()
	}

	fmt.Println()
	fmt.Printf("%s Configuration reset to defaults\n", SuccessStyle.Render("[OK]"))
	fmt.Println()
	return nil
}

func configPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return WrapError(err, "failed to resolve config path")
	}

	if args.JSON {
		resp := NewJSONResponse("config", map[string]string{"path": path})
		return resp.Print()
	}

	fmt.Println(path)
	return nil
}
