// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/authcode-tui/internal/countdown"
	"github.com/jeranaias/authcode-tui/internal/model"
	"github.com/jeranaias/authcode-tui/internal/ui/styles"
	"github.com/jeranaias/authcode-tui/internal/util"
)

// =============================================================================
// CODE VIEW COMPONENT - Auth code display with countdown bar
// =============================================================================

// lowRemainingSeconds marks where the countdown switches to its urgent
// styling, matching the display precision switch.
const lowRemainingSeconds = countdown.PrecisionSwitchSeconds

// CodeView renders the current auth code with its remaining-validity
// countdown. The caller feeds it the latest countdown sample each tick.
type CodeView struct {
	Width int
	theme *styles.Theme

	code    *model.AuthCode
	sample  countdown.Sample
	expired bool
}

// NewCodeView creates a CodeView component.
func NewCodeView(theme *styles.Theme) *CodeView {
	return &CodeView{
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the available width.
func (c *CodeView) SetWidth(width int) {
	c.Width = width
}

// SetCode installs a freshly issued code and resets the countdown display.
func (c *CodeView) SetCode(code *model.AuthCode) {
	c.code = code
	c.expired = false
	if code != nil {
		c.sample = countdown.Sample{Remaining: float64(code.ValiditySeconds)}
	}
}

// SetSample records the latest countdown observation.
func (c *CodeView) SetSample(s countdown.Sample) {
	c.sample = s
	if s.Expired {
		c.expired = true
	}
}

// Clear drops the displayed code.
func (c *CodeView) Clear() {
	c.code = nil
	c.sample = countdown.Sample{}
	c.expired = false
}

// HasCode reports whether a code is on display.
func (c *CodeView) HasCode() bool {
	return c.code != nil
}

// View renders the code box with the countdown line beneath it.
// Returns the empty string when no code is set.
func (c *CodeView) View() string {
	if c.code == nil {
		return ""
	}

	digits := renderBigDigits(util.IntToString(c.code.Value))

	var body strings.Builder
	body.WriteString(c.theme.CodeLabel.Render("Your code"))
	body.WriteString("\n\n")
	if c.expired {
		body.WriteString(c.theme.CodeExpired.Render(digits))
	} else {
		body.WriteString(c.theme.CodeDigits.Render(digits))
	}
	body.WriteString("\n\n")
	body.WriteString(c.renderCountdown())

	box := c.theme.CodeBox.Render(body.String())
	if c.Width > lipgloss.Width(box) {
		return lipgloss.PlaceHorizontal(c.Width, lipgloss.Center, box)
	}
	return box
}

// renderCountdown renders the progress bar and remaining-time readout.
func (c *CodeView) renderCountdown() string {
	if c.expired {
		return c.theme.CodeExpired.Render("expired")
	}

	barWidth := 24
	consumed := countdown.Progress(c.sample.Remaining, c.code.ValiditySeconds) * 100
	bar := styles.RenderProgressBar(barWidth, 100-consumed)

	readout := countdown.FormatRemaining(c.sample.Remaining) + "s"

	style := c.theme.CountdownOK
	if c.sample.Remaining <= lowRemainingSeconds {
		style = c.theme.CountdownLow
	}
	return style.Render("[" + bar + "] " + readout)
}

// renderBigDigits spaces digits out for legibility at a distance.
func renderBigDigits(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
