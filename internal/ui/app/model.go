// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root bubbletea model for the authcode TUI. It wires
// the login form, the lifecycle engine, and the code display into three
// screens: sign-in, working, and code.
//
// The engine runs on its own goroutine per sign-in. The model listens on
// the engine's event and countdown sample channels through wait commands
// and tears the engine down on logout or terminal errors, so a fresh
// sign-in always starts from a clean engine.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jeranaias/authcode-tui/internal/api"
	"github.com/jeranaias/authcode-tui/internal/config"
	"github.com/jeranaias/authcode-tui/internal/lifecycle"
	"github.com/jeranaias/authcode-tui/internal/model"
	"github.com/jeranaias/authcode-tui/internal/ui/components"
	"github.com/jeranaias/authcode-tui/internal/ui/styles"
)

// screen selects which body the view renders.
type screen int

const (
	screenLogin screen = iota
	screenWorking
	screenCode
)

// Store is the slice of the credential store the TUI needs.
type Store interface {
	Load() (model.Credentials, model.Session, error)
	SaveLogin(creds model.Credentials, session model.Session) error
	ClearSession() error
	Clear() error
}

// Model is the root TUI model.
type Model struct {
	cfg   *config.Config
	store Store
	theme *styles.Theme

	form      *components.LoginForm
	spinner   *components.Spinner
	statusBar *components.StatusBar
	codeView  *components.CodeView
	toasts    *components.ToastManager

	engine       *lifecycle.Engine
	engineCancel context.CancelFunc

	screen       screen
	lastUsername string
	resumeOnInit model.Session
	pendingCreds model.Credentials

	width  int
	height int

	quitting bool
}

// New creates the root model. If the store holds a complete login with a
// live session, the first Init resumes it instead of showing the form.
func New(cfg *config.Config, store Store) *Model {
	theme := styles.NewTheme()

	m := &Model{
		cfg:       cfg,
		store:     store,
		theme:     theme,
		form:      components.NewLoginForm(theme),
		spinner:   components.NewSpinner(theme, "contacting authority"),
		statusBar: components.NewStatusBar(theme),
		codeView:  components.NewCodeView(theme),
		toasts:    components.NewToastManager(theme),
		screen:    screenLogin,
		width:     80,
		height:    24,
	}
	m.statusBar.Server = cfg.Server.BaseURL

	creds, session, err := store.Load()
	if err == nil {
		m.lastUsername = creds.Username
		m.form.Prefill(creds.Username)
		if creds.IsComplete() && session.Valid() {
			m.resumeOnInit = session
			m.pendingCreds = creds
		}
	}

	return m
}

// Init starts the resume flow when a stored session exists.
func (m *Model) Init() tea.Cmd {
	if m.resumeOnInit.Valid() {
		session := m.resumeOnInit
		m.resumeOnInit = model.Session{}

		cmd := m.startEngine(m.pendingCreds)
		m.engine.Resume(session)
		m.screen = screenWorking
		m.statusBar.SetStatus(components.StatusWorking)
		return tea.Batch(cmd, m.spinner.Start())
	}
	return nil
}

// startEngine builds the API client and lifecycle engine for the given
// credentials and launches the engine goroutine.
func (m *Model) startEngine(creds model.Credentials) tea.Cmd {
	client := api.NewClient(creds).
		WithBaseURL(m.cfg.Server.BaseURL).
		WithTimeout(m.cfg.Server.Timeout())

	engCfg := lifecycle.DefaultConfig()
	engCfg.RetryDelay = m.cfg.Server.RetryDelay()

	eng := lifecycle.New(client, creds, m.store, engCfg)
	ctx, cancel := context.WithCancel(context.Background())
	m.engine = eng
	m.engineCancel = cancel
	m.lastUsername = creds.Username
	m.statusBar.Username = client.Username()

	go eng.Run(ctx)

	return tea.Batch(
		waitForEvent(eng, eng.Events()),
		waitForSample(eng, eng.Samples()),
	)
}

// stopEngine cancels the running engine, if any. The engine goroutine
// drains and exits; stale events are dropped by the source check in Update.
func (m *Model) stopEngine() {
	if m.engineCancel != nil {
		m.engineCancel()
		m.engineCancel = nil
	}
	m.engine = nil
}
