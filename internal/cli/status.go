// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation for authcode.
//
// Command: status
// Short:   Show login and server status
// Aliases: s
//
// Flags:
//   --no-probe    Skip the authority reachability check
//   --json        Output in JSON format
//
// Examples:
//   authcode status            Human-readable status
//   authcode status --json     Status for scripting
package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jeranaias/authcode-tui/internal/config"
	"github.com/jeranaias/authcode-tui/internal/credstore"
)

// probeTimeout bounds the reachability check so status stays fast.
const probeTimeout = 2 * time.Second

// HandleStatus handles the "status" command.
func HandleStatus(args Args) error {
	parser := NewArgParser(args.Raw)
	jsonMode := args.JSON || parser.BoolFlag("json")
	probe := !parser.BoolFlag("no-probe")

	cfg, err := config.Load()
	if err != nil {
		return WrapError(err, "failed to load configuration")
	}
	baseURL := cfg.Server.BaseURL
	if args.Server != "" {
		baseURL = args.Server
	}

	data := StatusData{
		Server: StatusServerInfo{
			BaseURL:        baseURL,
			TimeoutSecs:    cfg.Server.TimeoutSecs,
			RetryDelaySecs: cfg.Server.RetryDelaySecs,
		},
	}

	if probe {
		reachable := probeServer(baseURL)
		data.Server.Reachable = &reachable
	}

	store, err := credstore.Open()
	if err == nil {
		defer store.Close()
		creds, session, loadErr := store.Load()
		if loadErr == nil {
			data.Login = StatusLoginInfo{
				Username:   creds.Username,
				LoggedIn:   creds.IsComplete(),
				HasSession: session.Valid(),
			}
			if id, idErr := store.InstallID(); idErr == nil {
				data.Login.InstallID = id
			}
		}
	}

	if jsonMode {
		resp := NewJSONResponse("status", data)
		return resp.Print()
	}

	fmt.Println()
	fmt.Println(TitleStyle.Render("authcode status"))

	fmt.Println(SectionStyle.Render("Server"))
	fmt.Printf("  %s%s\n", RenderLabel("Base URL:"), ValueStyle.Render(data.Server.BaseURL))
	fmt.Printf("  %s%s\n", RenderLabel("Timeout:"), ValueStyle.Render(fmt.Sprintf("%ds", data.Server.TimeoutSecs)))
	fmt.Printf("  %s%s\n", RenderLabel("Retry delay:"), ValueStyle.Render(fmt.Sprintf("%ds", data.Server.RetryDelaySecs)))
	if data.Server.Reachable != nil {
		if *data.Server.Reachable {
			fmt.Printf("  %s%s\n", RenderLabel("Reachable:"), RenderStatus("ok"))
		} else {
			fmt.Printf("  %s%s\n", RenderLabel("Reachable:"), RenderStatus("fail"))
		}
	}

	fmt.Println(SectionStyle.Render("Login"))
	if data.Login.LoggedIn {
		fmt.Printf("  %s%s\n", RenderLabel("Username:"), ValueStyle.Render(data.Login.Username))
		if data.Login.HasSession {
			fmt.Printf("  %s%s\n", RenderLabel("Session:"), SuccessStyle.Render("active"))
		} else {
			fmt.Printf("  %s%s\n", RenderLabel("Session:"), WarningStyle.Render("none (activation required)"))
		}
	} else {
		fmt.Printf("  %s\n", DimStyle.Render("Not signed in. Run 'authcode login' to begin."))
	}
	if data.Login.InstallID != "" {
		fmt.Printf("  %s%s\n", RenderLabel("Install ID:"), DimStyle.Render(data.Login.InstallID))
	}
	fmt.Println()
	return nil
}

// probeServer reports whether the authority answers HTTP at all. Any
// response counts; only transport failures mark it unreachable.
func probeServer(baseURL string) bool {
	client := &http.Client{Timeout: probeTimeout}
	resp, err := client.Get(baseURL)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
