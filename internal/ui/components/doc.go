// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the authcode TUI:
// the login form, the spinner shown while talking to the authority, the
// auth code display with its countdown bar, the bottom status bar, and the
// toast stack for transient errors.
//
// Components are plain view types in the bubbletea style: they hold their
// own state, expose Update for the messages they care about, and render
// with View. The app model composes them per screen.
package components
