// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/authcode-tui/internal/ui/components"
	"github.com/jeranaias/authcode-tui/internal/ui/styles"
)

// View renders the full frame: header, screen body, toast stack, status
// bar.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.renderHeader()
	status := m.statusBar.View()

	toastView := ""
	if m.toasts.Count() > 0 {
		toastView = lipgloss.PlaceHorizontal(m.width, lipgloss.Right,
			m.toasts.RenderStack())
	}

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	if toastView != "" {
		bodyHeight -= lipgloss.Height(toastView)
	}
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	body := components.RenderCentered(m.width, bodyHeight, m.renderBody())

	sections := []string{header, body}
	if toastView != "" {
		sections = append(sections, toastView)
	}
	sections = append(sections, status)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title bar with the authority URL beneath it.
func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("authcode")
	subtitle := m.theme.HeaderSubtitle.Render(m.cfg.Server.BaseURL)
	inner := title + "  " + subtitle

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		m.theme.Header.Render(inner))
}

// renderBody renders the active screen.
func (m *Model) renderBody() string {
	switch m.screen {
	case screenLogin:
		return m.form.View()

	case screenWorking:
		if m.spinner.Active() {
			return m.spinner.View()
		}
		// A request failed without auto-retry; tell the user how to
		// continue.
		return styles.RenderWarning("request failed") + "\n\n" +
			m.theme.InputHint.Render("r: try again  l: logout  q: quit")

	case screenCode:
		return m.codeView.View()
	}
	return ""
}
