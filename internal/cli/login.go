// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// login.go - Login command implementation for authcode.
//
// Command: login
// Short:   Sign in and activate a session
// Aliases: activate
//
// Flags:
//   --username USER   Username (prompted if omitted)
//   --code DIGITS     Activation digit code (prompted if omitted)
//   --json            Output in JSON format
//
// The password is always read without echo, either interactively or from
// the AUTHCODE_PASSWORD environment variable for scripted use.
//
// Examples:
//   authcode login                       Fully interactive sign-in
//   authcode login --username alice      Prompt only for password and code
//   AUTHCODE_PASSWORD=... authcode login --username alice --code 123456 --json
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/jeranaias/authcode-tui/internal/api"
	"github.com/jeranaias/authcode-tui/internal/config"
	"github.com/jeranaias/authcode-tui/internal/credstore"
	"github.com/jeranaias/authcode-tui/internal/model"
)

// HandleLogin handles the "login" command.
func HandleLogin(args Args) error {
	parser := NewArgParser(args.Raw)
	jsonMode := args.JSON || parser.BoolFlag("json")

	username := parser.Flag("username")
	digits := parser.Flag("code")
	password := os.Getenv("AUTHCODE_PASSWORD")

	needsPrompt := username == "" || digits == "" || password == ""
	if needsPrompt {
		if err := RequiresTTY("sign in"); err != nil {
			return err
		}
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	var err error
	if username == "" {
		username, err = promptLine(line, "Username: ")
		if err != nil {
			return err
		}
	}
	if password == "" {
		fmt.Print("Password: ")
		passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return WrapError(err, "failed to read password")
		}
		password = string(passBytes)
	}
	if digits == "" {
		digits, err = promptLine(line, "Activation code: ")
		if err != nil {
			return err
		}
	}

	if username == "" || password == "" {
		return NewValidationError("credentials", "", "username and password are required")
	}
	if digits == "" {
		return NewValidationError("code", "", "activation code is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return WrapError(err, "failed to load configuration")
	}
	baseURL := cfg.Server.BaseURL
	if args.Server != "" {
		baseURL = args.Server
	}

	client := api.NewClient(model.Credentials{Username: username, Password: password}).
		WithBaseURL(baseURL).
		WithTimeout(cfg.Server.Timeout())

	if !args.Quiet && !jsonMode {
		fmt.Println()
		fmt.Println(DimStyle.Render("Activating session against " + baseURL + " ..."))
	}

	session, err := client.Activate(context.Background(), digits)
	if err != nil {
		return err
	}

	store, err := credstore.Open()
	if err != nil {
		return WrapError(err, "failed to open credential store")
	}
	defer store.Close()

	creds := model.Credentials{Username: client.Username(), Password: password}
	if err := store.SaveLogin(creds, session); err != nil {
		return WrapError(err, "failed to persist login")
	}

	if jsonMode {
		resp := NewJSONResponse("login", LoginData{
			Username:      client.Username(),
			SessionActive: true,
		})
		return resp.Print()
	}

	fmt.Println()
	fmt.Printf("%s Signed in as %s\n", SuccessStyle.Render("[OK]"), ValueStyle.Render(client.Username()))
	fmt.Println(DimStyle.Render("Run 'authcode' to display rotating codes."))
	fmt.Println()
	return nil
}

// promptLine reads one trimmed line, mapping Ctrl-C to a cancellation error.
func promptLine(line *liner.State, prompt string) (string, error) {
	input, err := line.Prompt(prompt)
	if err != nil {
		if err == liner.ErrPromptAborted {
			return "", fmt.Errorf("login cancelled")
		}
		return "", WrapError(err, "failed to read input")
	}
	return strings.TrimSpace(input), nil
}
