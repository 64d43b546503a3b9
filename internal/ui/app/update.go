// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/authcode-tui/internal/lifecycle"
	"github.com/jeranaias/authcode-tui/internal/ui/components"
)

// Update is the bubbletea update loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.statusBar.SetWidth(msg.Width)
		m.codeView.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case components.LoginSubmitMsg:
		return m.handleLoginSubmit(msg)

	case engineEventMsg:
		if msg.src != m.engine {
			return m, nil
		}
		cmd := m.handleEngineEvent(msg.ev)
		return m, tea.Batch(cmd, waitForEvent(msg.src, msg.src.Events()))

	case sampleMsg:
		if msg.src != m.engine {
			return m, nil
		}
		m.codeView.SetSample(msg.sample)
		return m, waitForSample(msg.src, msg.src.Samples())

	case engineClosedMsg:
		if msg.src != m.engine || m.quitting {
			return m, nil
		}
		// The engine stopped underneath us; drop back to sign-in.
		m.stopEngine()
		m.toLoginScreen("")
		return m, nil

	case ConfigReloadedMsg:
		if msg.Cfg != nil {
			m.cfg = msg.Cfg
			m.statusBar.Server = msg.Cfg.Server.BaseURL
		}
		return m, nil

	case components.ToastTickMsg:
		if m.toasts.Tick(time.Time(msg)) {
			return m, components.ToastTickCmd()
		}
		return m, nil
	}

	// Spinner animation frames and other component messages.
	return m, m.spinner.Update(msg)
}

// handleKey routes key presses by screen.
func (m *Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C quits from anywhere.
	if key.String() == "ctrl+c" {
		return m.quit()
	}

	if m.screen == screenLogin {
		if key.String() == "esc" {
			return m.quit()
		}
		return m, m.form.Update(key)
	}

	switch key.String() {
	case "q", "esc":
		return m.quit()
	case "l":
		if m.engine != nil {
			m.engine.Logout()
		}
		return m, nil
	case "r":
		if m.engine != nil {
			m.engine.FetchCode()
			m.statusBar.SetStatus(components.StatusWorking)
			return m, m.spinner.Start()
		}
		return m, nil
	case "x":
		m.toasts.DismissAll()
		return m, nil
	}
	return m, nil
}

// handleLoginSubmit starts a fresh engine and activates with the typed
// digits.
func (m *Model) handleLoginSubmit(msg components.LoginSubmitMsg) (tea.Model, tea.Cmd) {
	m.stopEngine()

	cmd := m.startEngine(msg.Creds)
	m.engine.Activate(msg.Digits)

	m.screen = screenWorking
	m.spinner.SetLabel("activating session")
	m.statusBar.SetStatus(components.StatusWorking)
	return m, tea.Batch(cmd, m.spinner.Start())
}

// handleEngineEvent applies one lifecycle event to the view state.
func (m *Model) handleEngineEvent(ev lifecycle.Event) tea.Cmd {
	var cmds []tea.Cmd

	switch ev.State {
	case lifecycle.StateActivating:
		m.screen = screenWorking
		m.spinner.SetLabel("activating session")
		m.statusBar.SetStatus(components.StatusWorking)
		cmds = append(cmds, m.spinner.Start())

	case lifecycle.StateAuthenticated:
		switch {
		case ev.Err != nil && ev.WillRetry:
			m.toasts.Push(components.ToastWarning, "Retrying shortly", ev.Err.UserMessage())
			m.spinner.SetLabel("waiting to retry")
			m.statusBar.SetStatus(components.StatusWorking)
			cmds = append(cmds, m.spinner.Start(), components.ToastTickCmd())
		case ev.Err != nil:
			// No automatic recovery is coming for this one, for example a
			// login that worked but could not be saved to disk.
			m.toasts.Push(components.ToastError, "Attention", ev.Err.UserMessage())
			cmds = append(cmds, components.ToastTickCmd())
		default:
			m.spinner.SetLabel("requesting code")
			m.statusBar.SetStatus(components.StatusWorking)
			cmds = append(cmds, m.spinner.Start())
		}

	case lifecycle.StateFetchingCode:
		// Keep the code screen during renewal so the display does not
		// flicker back to the spinner.
		if m.screen != screenCode {
			m.screen = screenWorking
			m.spinner.SetLabel("requesting code")
			cmds = append(cmds, m.spinner.Start())
		}
		m.statusBar.SetStatus(components.StatusWorking)

	case lifecycle.StateCodeActive:
		m.screen = screenCode
		m.spinner.Stop()
		m.codeView.SetCode(ev.Code)
		m.statusBar.SetStatus(components.StatusActive)

	case lifecycle.StateUninitialized:
		m.stopEngine()
		if ev.Err != nil {
			m.toLoginScreen(ev.Err.UserMessage())
		} else {
			// Clean logout: the store was cleared, so the form starts
			// empty.
			m.lastUsername = ""
			m.toLoginScreen("")
		}
	}

	return tea.Batch(cmds...)
}

// toLoginScreen resets view state for the sign-in form.
func (m *Model) toLoginScreen(errMsg string) {
	m.screen = screenLogin
	m.spinner.Stop()
	m.codeView.Clear()
	m.statusBar.Username = ""
	m.statusBar.SetStatus(components.StatusIdle)

	m.form.Reset()
	if m.lastUsername != "" {
		m.form.Prefill(m.lastUsername)
	}
	if errMsg != "" {
		m.form.SetError(errMsg)
	}
}

// quit tears down the engine and exits.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.stopEngine()
	return m, tea.Quit
}
