// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/authcode-tui/internal/config"
	"github.com/jeranaias/authcode-tui/internal/countdown"
	"github.com/jeranaias/authcode-tui/internal/lifecycle"
)

// =============================================================================
// ENGINE BRIDGE MESSAGES
// =============================================================================

// Every message carries the engine it came from. Update drops messages
// whose source is not the current engine, so a logout followed by a fresh
// sign-in never sees events from the torn-down engine.

// ConfigReloadedMsg is sent from outside the program when the config file
// changes on disk. A running engine keeps its settings; the display and
// any later sign-in pick up the new values.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// engineEventMsg delivers one lifecycle event.
type engineEventMsg struct {
	src *lifecycle.Engine
	ev  lifecycle.Event
}

// engineClosedMsg signals that the engine's event channel closed.
type engineClosedMsg struct {
	src *lifecycle.Engine
}

// sampleMsg delivers one countdown observation.
type sampleMsg struct {
	src    *lifecycle.Engine
	sample countdown.Sample
}

// waitForEvent blocks on the engine's event channel and converts the next
// event into a message. Re-issued from Update after each delivery.
func waitForEvent(src *lifecycle.Engine, ch <-chan lifecycle.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return engineClosedMsg{src: src}
		}
		return engineEventMsg{src: src, ev: ev}
	}
}

// waitForSample blocks on the engine's countdown stream.
func waitForSample(src *lifecycle.Engine, ch <-chan countdown.Sample) tea.Cmd {
	return func() tea.Msg {
		sample, ok := <-ch
		if !ok {
			return engineClosedMsg{src: src}
		}
		return sampleMsg{src: src, sample: sample}
	}
}
