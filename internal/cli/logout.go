// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// logout.go - Logout command implementation for authcode.
//
// Command: logout
// Short:   Forget the stored login and session
//
// Flags:
//   --confirm    Skip the interactive confirmation prompt
//   --json       Output in JSON format
//
// Logout clears the username, password, and session token from the
// credential store. The next sign-in starts from scratch.
package cli

import (
	"fmt"

	"github.com/jeranaias/authcode-tui/internal/credstore"
)

// HandleLogout handles the "logout" command.
func HandleLogout(args Args) error {
	parser := NewArgParser(args.Raw)
	jsonMode := args.JSON || parser.BoolFlag("json")

	store, err := credstore.Open()
	if err != nil {
		return WrapError(err, "failed to open credential store")
	}
	defer store.Close()

	creds, _, err := store.Load()
	if err != nil {
		return WrapError(err, "failed to read credential store")
	}

	if creds.Username != "" {
		confirmed, err := RequireConfirmation(parser.BoolFlag("confirm"),
			"forget the stored login for "+creds.Username, jsonMode)
		if err != nil {
			return err
		}
		if !confirmed {
			ShowCancellationMessage()
			return nil
		}
	}

	if err := store.Clear(); err != nil {
		return WrapError(err, "failed to clear login")
	}

	if jsonMode {
		resp := NewJSONResponse("logout", map[string]interface{}{
			"logged_out": true,
		})
		return resp.Print()
	}

	fmt.Println()
	if creds.Username != "" {
		fmt.Printf("%s Signed out %s\n", SuccessStyle.Render("[OK]"), ValueStyle.Render(creds.Username))
	} else {
		fmt.Println(DimStyle.Render("No stored login; nothing to clear."))
	}
	fmt.Println()
	return nil
}
