// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/authcode-tui/internal/ui/styles"
	"github.com/jeranaias/authcode-tui/internal/util"
)

// =============================================================================
// SPINNER COMPONENT - Loading indicator for in-flight requests
// =============================================================================

// Spinner wraps the bubbles spinner with a label and elapsed time display.
// It is shown while an activation or code request is in flight.
type Spinner struct {
	model   spinner.Model
	label   string
	active  bool
	started time.Time
	theme   *styles.Theme
}

// NewSpinner creates a spinner with the given label.
func NewSpinner(theme *styles.Theme, label string) *Spinner {
	m := spinner.New()
	m.Spinner = spinner.Spinner{
		Frames: styles.LineSpinner.Frames,
		FPS:    styles.LineSpinner.Duration(),
	}
	m.Style = theme.Spinner

	return &Spinner{
		model: m,
		label: label,
		theme: theme,
	}
}

// Start activates the spinner and resets the elapsed timer.
func (s *Spinner) Start() tea.Cmd {
	s.active = true
	s.started = time.Now()
	return s.model.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
}

// Active reports whether the spinner is running.
func (s *Spinner) Active() bool {
	return s.active
}

// SetLabel updates the label text.
func (s *Spinner) SetLabel(label string) {
	s.label = label
}

// Update advances the spinner animation.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if !s.active {
		return nil
	}
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

// View renders the spinner with its label and elapsed time.
// Returns the empty string when inactive.
func (s *Spinner) View() string {
	if !s.active {
		return ""
	}

	elapsed := time.Since(s.started)
	parts := s.model.View() + " " + s.theme.WaitingText.Render(s.label)
	if elapsed >= time.Second {
		parts += " " + s.theme.WaitingTime.Render("("+formatElapsed(elapsed)+")")
	}
	return parts
}

// InlineSpinner returns just the current animation frame for embedding in
// other components, like the status bar.
func (s *Spinner) InlineSpinner() string {
	if !s.active {
		return ""
	}
	return s.model.View()
}

// formatElapsed renders an elapsed duration as "3s" or "1m05s".
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return util.IntToString(secs) + "s"
	}
	mins := secs / 60
	rem := secs % 60
	out := util.IntToString(mins) + "m"
	if rem < 10 {
		out += "0"
	}
	return out + util.IntToString(rem) + "s"
}

// RenderCentered places content in the middle of the given area.
func RenderCentered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
