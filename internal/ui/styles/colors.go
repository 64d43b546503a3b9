// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the authcode TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// CORE PALETTE - Adaptive colors for dark and light terminals
// =============================================================================

var (
	// Purple - primary brand accent
	Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
	// PurpleDeep - darker purple for backgrounds
	PurpleDeep = lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#2E1065"}

	// Cyan - secondary accent, headers and highlights
	Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#67E8F9"}
	// CyanDeep - darker cyan for backgrounds
	CyanDeep = lipgloss.AdaptiveColor{Light: "#CFFAFE", Dark: "#164E63"}

	// Emerald - success and active states
	Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#6EE7B7"}
	// EmeraldDeep - darker emerald for backgrounds
	EmeraldDeep = lipgloss.AdaptiveColor{Light: "#D1FAE5", Dark: "#064E3B"}

	// Rose - errors and expiry
	Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FDA4AF"}
	// RoseDeep - darker rose for error backgrounds
	RoseDeep = lipgloss.AdaptiveColor{Light: "#FFE4E6", Dark: "#4C0519"}

	// Amber - warnings and countdown urgency
	Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FCD34D"}
	// AmberDeep - darker amber for warning backgrounds
	AmberDeep = lipgloss.AdaptiveColor{Light: "#FEF3C7", Dark: "#451A03"}
)

// =============================================================================
// SURFACE COLORS - Backgrounds and overlays
// =============================================================================

var (
	Surface       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
	SurfaceDim    = lipgloss.AdaptiveColor{Light: "#F4F4F5", Dark: "#181825"}
	SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#313244"}
	Overlay       = lipgloss.AdaptiveColor{Light: "#E4E4E7", Dark: "#45475A"}
)

// =============================================================================
// TEXT COLORS
// =============================================================================

var (
	TextPrimary   = lipgloss.AdaptiveColor{Light: "#18181B", Dark: "#CDD6F4"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#52525B", Dark: "#A6ADC8"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "#A1A1AA", Dark: "#6C7086"}
	TextInverse   = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#11111B"}
)

// =============================================================================
// ACCESSIBILITY: High contrast status colors
// =============================================================================

// ACCESSIBILITY: These meet WCAG AA contrast on both light and dark
// backgrounds and are always paired with a shape indicator so state is
// never communicated by color alone.
var (
	SuccessHighContrast = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	ErrorHighContrast   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	WarningHighContrast = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	InfoHighContrast    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	LinkColor           = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#93C5FD"}
)

// StatusIndicators provides ASCII shape indicators for status display.
// ACCESSIBILITY: Shapes work in every terminal and for colorblind users.
var StatusIndicators = struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
	Active  string
}{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[ ]",
	Active:  "[*]",
}

// =============================================================================
// STATUS RENDER HELPERS
// =============================================================================

// RenderSuccess renders text with the success indicator and color.
func RenderSuccess(text string) string {
	return lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true).
		Render(StatusIndicators.Success + " " + text)
}

// RenderError renders text with the error indicator and color.
func RenderError(text string) string {
	return lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true).
		Render(StatusIndicators.Error + " " + text)
}

// RenderWarning renders text with the warning indicator and color.
func RenderWarning(text string) string {
	return lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true).
		Render(StatusIndicators.Warning + " " + text)
}

// RenderInfo renders text with the info indicator and color.
func RenderInfo(text string) string {
	return lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true).
		Render(StatusIndicators.Info + " " + text)
}
