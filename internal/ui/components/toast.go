// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jeranaias/authcode-tui/internal/ui/styles"
	"github.com/jeranaias/authcode-tui/internal/util"
)

// =============================================================================
// TOAST COMPONENT - Transient notifications for errors and retries
// =============================================================================

// ToastKind determines a toast's color, icon, and default lifetime.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastWarning
	ToastError
)

// Toast lifetimes by kind. Errors linger longest so the user can read them.
const (
	InfoToastDuration    = 4 * time.Second
	WarningToastDuration = 6 * time.Second
	ErrorToastDuration   = 8 * time.Second
)

// maxToasts caps the visible stack; older toasts are evicted first.
const maxToasts = 5

// Toast is one transient notification.
type Toast struct {
	ID        int
	Kind      ToastKind
	Title     string
	Message   string
	CreatedAt time.Time
	Duration  time.Duration

	// Sticky toasts never auto-dismiss. Used for terminal errors that
	// require the user to act.
	Sticky bool
}

// IsExpired reports whether the toast has outlived its duration.
func (t *Toast) IsExpired(now time.Time) bool {
	if t.Sticky {
		return false
	}
	return now.Sub(t.CreatedAt) >= t.Duration
}

// SecondsLeft returns whole seconds until auto-dismiss, minimum zero.
func (t *Toast) SecondsLeft(now time.Time) int {
	if t.Sticky {
		return 0
	}
	left := t.Duration - now.Sub(t.CreatedAt)
	if left < 0 {
		return 0
	}
	return int(left.Seconds())
}

// ToastManager owns the active toast stack. Safe for concurrent use.
type ToastManager struct {
	mu     sync.Mutex
	toasts []*Toast
	nextID int
	theme  *styles.Theme
}

// NewToastManager creates an empty toast manager.
func NewToastManager(theme *styles.Theme) *ToastManager {
	return &ToastManager{theme: theme}
}

// Push adds a toast with the default duration for its kind.
func (m *ToastManager) Push(kind ToastKind, title, message string) int {
	duration := InfoToastDuration
	switch kind {
	case ToastWarning:
		duration = WarningToastDuration
	case ToastError:
		duration = ErrorToastDuration
	}
	return m.push(&Toast{
		Kind:     kind,
		Title:    title,
		Message:  message,
		Duration: duration,
	})
}

// PushSticky adds a toast that stays until explicitly dismissed.
func (m *ToastManager) PushSticky(kind ToastKind, title, message string) int {
	return m.push(&Toast{
		Kind:    kind,
		Title:   title,
		Message: message,
		Sticky:  true,
	})
}

func (m *ToastManager) push(t *Toast) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	t.ID = m.nextID
	t.CreatedAt = time.Now()

	m.toasts = append(m.toasts, t)
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
	return t.ID
}

// Dismiss removes the toast with the given ID.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// DismissAll clears the stack.
func (m *ToastManager) DismissAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// Tick drops expired toasts and reports whether any remain.
func (m *ToastManager) Tick(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
	return len(m.toasts) > 0
}

// Active returns a snapshot of the current stack, oldest first.
func (m *ToastManager) Active() []*Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Count returns the number of active toasts.
func (m *ToastManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// =============================================================================
// TOAST MESSAGES AND COMMANDS
// =============================================================================

// ToastTickMsg drives toast expiry checks.
type ToastTickMsg time.Time

// ToastTickCmd schedules the next toast expiry check.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg(t)
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

const toastWidth = 44

// RenderToast renders a single toast box.
func (m *ToastManager) RenderToast(t *Toast) string {
	var borderColor lipgloss.AdaptiveColor
	var icon string
	switch t.Kind {
	case ToastError:
		borderColor = styles.ErrorHighContrast
		icon = styles.StatusIndicators.Error
	case ToastWarning:
		borderColor = styles.WarningHighContrast
		icon = styles.StatusIndicators.Warning
	default:
		borderColor = styles.InfoHighContrast
		icon = styles.StatusIndicators.Info
	}

	titleStyle := lipgloss.NewStyle().Foreground(borderColor).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(icon + " " + t.Title))
	if t.Message != "" {
		// Cap runaway server messages before wrapping.
		message := util.TruncateRunes(t.Message, 160)
		sb.WriteString("\n")
		sb.WriteString(bodyStyle.Render(wrapToastText(message, toastWidth-4)))
	}

	hint := "[x] dismiss"
	if !t.Sticky {
		hint += "  " + util.IntToString(t.SecondsLeft(time.Now())) + "s"
	}
	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render(hint))

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(toastWidth).
		Render(sb.String())
}

// RenderStack renders all active toasts as a right-aligned vertical stack.
// Returns the empty string when no toasts are active.
func (m *ToastManager) RenderStack() string {
	toasts := m.Active()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, m.RenderToast(t))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// RenderToastStack anchors the stack to the bottom right of the given
// area. Returns the empty string when no toasts are active.
func (m *ToastManager) RenderToastStack(width, height int) string {
	stack := m.RenderStack()
	if stack == "" {
		return ""
	}
	return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Bottom, stack)
}

// wrapToastText wraps text at word boundaries to the given width.
func wrapToastText(text string, width int) string {
	if width <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				sb.WriteString("\n")
				lineLen = 0
			} else {
				sb.WriteString(" ")
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
