// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the authcode TUI.
//
// The package exposes three layers:
//
//   - colors.go: an adaptive color palette that adjusts to light and dark
//     terminals, plus ASCII status indicators and render helpers
//   - theme.go: the Theme type bundling every lipgloss style the screens
//     use, with responsive layout modes
//   - animations.go: spinner frame sets and the progress bar renderer
//     driving the countdown display
//
// ACCESSIBILITY: state is always conveyed with a shape indicator alongside
// color, and every glyph is plain ASCII so rendering never depends on the
// terminal font.
package styles
