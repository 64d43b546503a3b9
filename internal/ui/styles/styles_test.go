// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"
)

func TestStatusIndicatorsAreASCII(t *testing.T) {
	indicators := []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
		StatusIndicators.Active,
	}

	for _, ind := range indicators {
		if ind == "" {
			t.Error("empty status indicator")
		}
		for _, r := range ind {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", ind, r)
			}
		}
	}
}

func TestRenderHelpersIncludeIndicator(t *testing.T) {
	if !strings.Contains(RenderSuccess("done"), StatusIndicators.Success) {
		t.Error("RenderSuccess missing success indicator")
	}
	if !strings.Contains(RenderError("boom"), StatusIndicators.Error) {
		t.Error("RenderError missing error indicator")
	}
	if !strings.Contains(RenderWarning("careful"), StatusIndicators.Warning) {
		t.Error("RenderWarning missing warning indicator")
	}
	if !strings.Contains(RenderInfo("note"), StatusIndicators.Info) {
		t.Error("RenderInfo missing info indicator")
	}
}

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// A few representative styles must render without panicking.
	_ = theme.Header.Render("authcode")
	_ = theme.CodeBox.Render("1234")
	_ = theme.ErrorBox.Render("error")
	_ = theme.StatusBar.Render("ready")
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{0, LayoutNarrow},
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	theme := NewTheme()
	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestSpinnerConfigDuration(t *testing.T) {
	if got := LineSpinner.Duration(); got != 100*time.Millisecond {
		t.Errorf("LineSpinner.Duration() = %v, want 100ms", got)
	}
	if got := DotsSpinner.Duration(); got <= 0 {
		t.Errorf("DotsSpinner.Duration() = %v, want positive", got)
	}
}

func TestSpinnerFramesAreASCII(t *testing.T) {
	for _, cfg := range []SpinnerConfig{LineSpinner, DotsSpinner, PulseSpinner} {
		for _, frame := range cfg.Frames {
			for _, r := range frame {
				if r > 127 {
					t.Errorf("spinner frame %q contains non-ASCII rune %q", frame, r)
				}
			}
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	if got := RenderProgressBar(10, 0); got != strings.Repeat("-", 10) {
		t.Errorf("empty bar = %q", got)
	}
	if got := RenderProgressBar(10, 100); got != strings.Repeat("#", 10) {
		t.Errorf("full bar = %q", got)
	}
	if got := RenderProgressBar(10, 50); len(got) != 10 {
		t.Errorf("half bar length = %d, want 10", len(got))
	}

	// Out of range inputs clamp instead of panicking.
	if got := RenderProgressBar(10, -5); got != strings.Repeat("-", 10) {
		t.Errorf("negative percent = %q", got)
	}
	if got := RenderProgressBar(10, 150); got != strings.Repeat("#", 10) {
		t.Errorf("over 100 percent = %q", got)
	}
	if got := RenderProgressBar(0, 50); got != "" {
		t.Errorf("zero width = %q, want empty", got)
	}
}
