// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package countdown

import "github.com/jeranaias/authcode-tui/internal/util"

// FormatRemaining renders a remaining-seconds value for display: one
// decimal place above the precision switch point, two at or below it.
func FormatRemaining(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds > PrecisionSwitchSeconds {
		return util.FloatToStringPrec(seconds, 1)
	}
	return util.FloatToStringPrec(seconds, 2)
}

// Progress returns the consumed fraction of the validity window in [0, 1],
// for driving a progress bar.
func Progress(remaining float64, validitySeconds int) float64 {
	if validitySeconds <= 0 {
		return 1
	}
	p := 1 - remaining/float64(validitySeconds)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
