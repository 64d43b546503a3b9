// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/authcode-tui/internal/ui/styles"
	"github.com/mattn/go-runewidth"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the connection status shown in the bar.
type Status int

const (
	StatusIdle Status = iota
	StatusWorking
	StatusActive
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Signed out"
	case StatusWorking:
		return "Working..."
	case StatusActive:
		return "Code active"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a shape indicator for the status.
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusIdle:
		return styles.StatusIndicators.Pending
	case StatusWorking:
		return styles.StatusIndicators.Active
	case StatusActive:
		return styles.StatusIndicators.Success
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar is the bottom status bar showing the signed-in user, the
// authority host, and the current status with keyboard shortcuts.
type StatusBar struct {
	Username      string
	Server        string
	Status        Status
	Width         int
	ShowShortcuts bool
	theme         *styles.Theme
}

// NewStatusBar creates a StatusBar component.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status.
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact bar: icon, user, truncated server.
func (s *StatusBar) viewNarrow() string {
	statusText := s.getStatusStyle().Render(s.Status.Icon())

	parts := []string{statusText}
	if s.Username != "" {
		parts = append(parts, runewidth.Truncate(s.Username, 12, "..."))
	}
	if s.Server != "" {
		parts = append(parts, runewidth.Truncate(s.Server, 20, "..."))
	}

	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	result := strings.Join(parts, sep)

	return s.theme.StatusBar.Width(s.Width).Render(result)
}

// viewWide renders the full bar with shortcuts right-aligned.
func (s *StatusBar) viewWide() string {
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	leftParts := []string{
		s.getStatusStyle().Render(s.Status.Icon() + " " + s.Status.String()),
	}
	if s.Username != "" {
		userStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		leftParts = append(leftParts, userStyle.Render(runewidth.Truncate(s.Username, 24, "...")))
	}
	if s.Server != "" {
		serverStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, serverStyle.Render(runewidth.Truncate(s.Server, 32, "...")))
	}
	left := strings.Join(leftParts, sep)

	right := ""
	if s.ShowShortcuts {
		right = s.renderShortcuts()
	}

	// Pad between sections using display width so wide runes line up.
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	spacing := s.Width - leftWidth - rightWidth - 2
	if spacing < 1 {
		spacing = 1
	}

	result := left + strings.Repeat(" ", spacing) + right
	return s.theme.StatusBar.Width(s.Width).Render(result)
}

// renderShortcuts renders keyboard shortcut hints for the current status.
func (s *StatusBar) renderShortcuts() string {
	key := s.theme.ShortcutKey
	desc := s.theme.ShortcutDesc

	var shortcuts []string
	switch s.Status {
	case StatusActive:
		shortcuts = []string{
			key.Render("r") + desc.Render(" refresh"),
			key.Render("l") + desc.Render(" logout"),
		}
	case StatusError:
		shortcuts = []string{
			key.Render("x") + desc.Render(" dismiss"),
			key.Render("l") + desc.Render(" logout"),
		}
	}
	shortcuts = append(shortcuts, key.Render("q")+desc.Render(" quit"))

	return strings.Join(shortcuts, "  ")
}

// getStatusStyle returns the style for the current status.
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusActive:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusWorking:
		return lipgloss.NewStyle().Foreground(styles.InfoHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
