// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lifecycle owns the session/code state machine: activation, code
// acquisition, renewal, retry scheduling, and forced logout.
//
// All state lives in a single command-loop goroutine started by Run. The
// public methods enqueue commands; observers consume Events and countdown
// Samples. Async results carry a generation counter so work started before
// a logout or a newer operation is discarded instead of applied.
package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/authcode-tui/internal/api"
	"github.com/jeranaias/authcode-tui/internal/countdown"
	"github.com/jeranaias/authcode-tui/internal/model"
)

// =============================================================================
// STATES
// =============================================================================

// State is the engine's position in the session/code lifecycle.
type State int

const (
	// StateUninitialized: no usable session; waiting for activation input.
	StateUninitialized State = iota
	// StateActivating: activation request in flight; input locked.
	StateActivating
	// StateAuthenticated: valid session, no code request in flight.
	StateAuthenticated
	// StateFetchingCode: code request in flight.
	StateFetchingCode
	// StateCodeActive: code on display, countdown running.
	StateCodeActive
)

// String returns a short label for the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActivating:
		return "activating"
	case StateAuthenticated:
		return "authenticated"
	case StateFetchingCode:
		return "fetching_code"
	case StateCodeActive:
		return "code_active"
	default:
		return "invalid"
	}
}

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// AuthAPI is the engine's view of the transport client.
type AuthAPI interface {
	Activate(ctx context.Context, digits string) (model.Session, error)
	FetchCode(ctx context.Context, session model.Session) (*model.AuthCode, error)
}

// CredentialStore is the engine's view of persistence. Writes happen only at
// transition points: entering Authenticated saves, session expiry clears the
// token, logout clears everything.
type CredentialStore interface {
	SaveLogin(creds model.Credentials, session model.Session) error
	ClearSession() error
	Clear() error
}

// =============================================================================
// EVENTS
// =============================================================================

// Event is one observable transition. Code is set when entering CodeActive.
// Err is set on failures; WillRetry tells the observer whether the engine
// retries on its own or input must be unlocked for the user.
type Event struct {
	State     State
	Code      *model.AuthCode
	Err       *api.AuthError
	WillRetry bool
}

// RequiresUserAction reports whether the failure needs explicit user input
// to proceed.
func (e Event) RequiresUserAction() bool {
	return e.Err != nil && !e.WillRetry
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds engine timing configuration.
type Config struct {
	// RetryDelay is the wait before an automatic code-fetch retry.
	RetryDelay time.Duration

	// ActivationInterval throttles repeated activation attempts.
	ActivationInterval time.Duration
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		RetryDelay:         3 * time.Second,
		ActivationInterval: time.Second,
	}
}

// =============================================================================
// ENGINE
// =============================================================================

// command loop messages
type command interface{ isCommand() }

type activateCmd struct{ digits string }
type resumeCmd struct{ session model.Session }
type fetchCmd struct{}
type logoutCmd struct{}
type retryDueCmd struct{ gen uint64 }
type expiredCmd struct{ gen uint64 }
type activateResult struct {
	gen     uint64
	session model.Session
	err     error
}
type fetchResult struct {
	gen  uint64
	code *model.AuthCode
	err  error
}

func (activateCmd) isCommand()    {}
func (resumeCmd) isCommand()      {}
func (fetchCmd) isCommand()       {}
func (logoutCmd) isCommand()      {}
func (retryDueCmd) isCommand()    {}
func (expiredCmd) isCommand()     {}
func (activateResult) isCommand() {}
func (fetchResult) isCommand()    {}

// Engine drives the lifecycle. Create with New, start with Run, observe via
// Events and Samples.
type Engine struct {
	client AuthAPI
	store  CredentialStore
	creds  model.Credentials
	cfg    Config

	cmds    chan command
	events  chan Event
	samples chan countdown.Sample

	// throttle bounds how fast repeated activation attempts hit the server.
	throttle *rate.Limiter

	// Snapshot for readers outside the loop goroutine.
	mu       sync.Mutex
	state    State
	code     *model.AuthCode
	session  model.Session

	// Loop-owned; never touched outside run.
	gen       uint64
	opCtx     context.Context
	opCancel  context.CancelFunc
	handle    *countdown.Handle
	runCtx    context.Context
}

// New creates an engine for the given credentials. The store may be nil in
// tests that do not exercise persistence.
func New(client AuthAPI, creds model.Credentials, store CredentialStore, cfg Config) *Engine {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultConfig().RetryDelay
	}
	if cfg.ActivationInterval <= 0 {
		cfg.ActivationInterval = DefaultConfig().ActivationInterval
	}
	return &Engine{
		client:   client,
		store:    store,
		creds:    creds,
		cfg:      cfg,
		cmds:     make(chan command, 16),
		events:   make(chan Event, 32),
		samples:  make(chan countdown.Sample, 1),
		throttle: rate.NewLimiter(rate.Every(cfg.ActivationInterval), 1),
		state:    StateUninitialized,
	}
}

// Events returns the transition stream. Closed when Run returns.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Samples returns countdown samples for the live code. Slow consumers drop
// intermediate samples, never the sequence order.
func (e *Engine) Samples() <-chan countdown.Sample {
	return e.samples
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// CurrentCode returns the live code, or nil outside CodeActive.
func (e *Engine) CurrentCode() *model.AuthCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.code
}

// Session returns the current session snapshot.
func (e *Engine) Session() model.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// =============================================================================
// COMMANDS
// =============================================================================

// Activate submits the activation digit string. Valid in Uninitialized.
func (e *Engine) Activate(digits string) {
	e.enqueue(activateCmd{digits: digits})
}

// Resume adopts a persisted session and begins fetching a code, skipping
// credential entry. Valid in Uninitialized.
func (e *Engine) Resume(session model.Session) {
	e.enqueue(resumeCmd{session: session})
}

// FetchCode requests a code. Valid in Authenticated; used for the initial
// request after Resume fails softly and for manual retries.
func (e *Engine) FetchCode() {
	e.enqueue(fetchCmd{})
}

// Logout clears the persisted login, cancels any countdown or pending retry,
// and returns to Uninitialized.
func (e *Engine) Logout() {
	e.enqueue(logoutCmd{})
}

func (e *Engine) enqueue(cmd command) {
	select {
	case e.cmds <- cmd:
	case <-time.After(time.Second):
		// Loop not running or wedged; dropping is safer than blocking the UI.
	}
}

// =============================================================================
// COMMAND LOOP
// =============================================================================

// Run executes the command loop until ctx is cancelled. All transitions
// happen here; there is exactly one writer.
func (e *Engine) Run(ctx context.Context) {
	e.runCtx = ctx
	e.bumpGeneration()

	defer func() {
		e.stopCountdown()
		e.opCancel()
		close(e.events)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-e.cmds:
			e.dispatch(cmd)
		}
	}
}

func (e *Engine) dispatch(cmd command) {
	switch c := cmd.(type) {
	case activateCmd:
		e.handleActivate(c)
	case resumeCmd:
		e.handleResume(c)
	case fetchCmd:
		e.handleFetch()
	case logoutCmd:
		e.handleLogout()
	case retryDueCmd:
		if c.gen == e.gen {
			e.startFetch()
		}
	case expiredCmd:
		if c.gen == e.gen {
			e.startFetch()
		}
	case activateResult:
		if c.gen == e.gen {
			e.handleActivateResult(c)
		}
	case fetchResult:
		if c.gen == e.gen {
			e.handleFetchResult(c)
		}
	}
}

func (e *Engine) handleActivate(c activateCmd) {
	if e.State() != StateUninitialized {
		return
	}
	e.bumpGeneration()
	e.setState(StateActivating, nil)
	e.emit(Event{State: StateActivating})

	gen, opCtx := e.gen, e.opCtx
	go func() {
		if err := e.throttle.Wait(opCtx); err != nil {
			e.enqueue(activateResult{gen: gen, err: classify(err)})
			return
		}
		session, err := e.client.Activate(opCtx, c.digits)
		e.enqueue(activateResult{gen: gen, session: session, err: err})
	}()
}

func (e *Engine) handleActivateResult(res activateResult) {
	if res.err != nil {
		// Activation failures never auto-retry: surface and unlock input.
		e.setState(StateUninitialized, nil)
		e.emit(Event{State: StateUninitialized, Err: classify(res.err)})
		return
	}

	e.mu.Lock()
	e.session = res.session
	e.mu.Unlock()

	// A failed persistence write is not retried; the session stays usable
	// for this run but will not survive a restart.
	var persistErr *api.AuthError
	if e.store != nil {
		if err := e.store.SaveLogin(e.creds, res.session); err != nil {
			persistErr = &api.AuthError{Kind: api.KindUnknown, Message: "session active but not saved to disk: " + err.Error()}
		}
	}

	e.setState(StateAuthenticated, nil)
	e.emit(Event{State: StateAuthenticated, Err: persistErr})
	e.startFetch()
}

func (e *Engine) handleResume(c resumeCmd) {
	if e.State() != StateUninitialized || !c.session.Valid() {
		return
	}
	e.bumpGeneration()
	e.mu.Lock()
	e.session = c.session
	e.mu.Unlock()
	e.setState(StateAuthenticated, nil)
	e.emit(Event{State: StateAuthenticated})
	e.startFetch()
}

func (e *Engine) handleFetch() {
	if e.State() != StateAuthenticated {
		return
	}
	e.startFetch()
}

// startFetch transitions to FetchingCode and launches the request. Any prior
// async work and countdown belong to an older generation after this.
func (e *Engine) startFetch() {
	e.bumpGeneration()
	e.stopCountdown()
	e.setState(StateFetchingCode, nil)
	e.emit(Event{State: StateFetchingCode})

	gen, opCtx := e.gen, e.opCtx
	session := e.Session()
	go func() {
		code, err := e.client.FetchCode(opCtx, session)
		e.enqueue(fetchResult{gen: gen, code: code, err: err})
	}()
}

func (e *Engine) handleFetchResult(res fetchResult) {
	if res.err != nil {
		authErr := classify(res.err)

		if authErr.Kind == api.KindSessionExpired {
			// The token is dead. Forget it but keep username/password so
			// the next login prefills.
			e.stopCountdown()
			e.mu.Lock()
			e.session = model.Session{}
			e.mu.Unlock()
			if e.store != nil {
				_ = e.store.ClearSession()
			}
			e.setState(StateUninitialized, nil)
			e.emit(Event{State: StateUninitialized, Err: authErr})
			return
		}

		e.setState(StateAuthenticated, nil)
		if authErr.Retryable() {
			e.emit(Event{State: StateAuthenticated, Err: authErr, WillRetry: true})
			e.scheduleRetry()
			return
		}
		e.emit(Event{State: StateAuthenticated, Err: authErr})
		return
	}

	e.setState(StateCodeActive, res.code)
	e.emit(Event{State: StateCodeActive, Code: res.code})
	e.startCountdown(res.code)
}

func (e *Engine) handleLogout() {
	e.bumpGeneration()
	e.stopCountdown()
	e.mu.Lock()
	e.session = model.Session{}
	e.mu.Unlock()
	if e.store != nil {
		_ = e.store.Clear()
	}
	e.setState(StateUninitialized, nil)
	e.emit(Event{State: StateUninitialized})
}

// scheduleRetry arms the fixed-delay retry. The wait is bound to the current
// generation's context, so logout interrupts it promptly.
func (e *Engine) scheduleRetry() {
	gen, opCtx := e.gen, e.opCtx
	delay := e.cfg.RetryDelay
	go func() {
		select {
		case <-opCtx.Done():
		case <-time.After(delay):
			e.enqueue(retryDueCmd{gen: gen})
		}
	}()
}

// =============================================================================
// COUNTDOWN WIRING
// =============================================================================

// startCountdown begins the expiry countdown for code and forwards its
// samples to observers. The terminal sample re-enters the loop as an expiry
// command guarded by generation.
func (e *Engine) startCountdown(code *model.AuthCode) {
	handle := countdown.Start(code.Target())
	e.handle = handle

	gen := e.gen
	go func() {
		for s := range handle.Samples() {
			select {
			case e.samples <- s:
			default:
				// Display sample dropped; the stream stays ordered.
			}
			if s.Expired {
				e.enqueue(expiredCmd{gen: gen})
			}
		}
	}()
}

func (e *Engine) stopCountdown() {
	if e.handle != nil {
		e.handle.Cancel()
		e.handle = nil
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// bumpGeneration invalidates outstanding async work and replaces the
// operation context.
func (e *Engine) bumpGeneration() {
	e.gen++
	if e.opCancel != nil {
		e.opCancel()
	}
	base := e.runCtx
	if base == nil {
		base = context.Background()
	}
	e.opCtx, e.opCancel = context.WithCancel(base)
}

func (e *Engine) setState(s State, code *model.AuthCode) {
	e.mu.Lock()
	e.state = s
	if s == StateCodeActive {
		e.code = code
	} else {
		e.code = nil
	}
	e.mu.Unlock()
}

func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	case <-e.runCtx.Done():
	}
}

// classify converts any error from a collaborator into an AuthError.
// Context cancellation and deadlines count as network-class failures.
func classify(err error) *api.AuthError {
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return authErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &api.AuthError{Kind: api.KindNetwork, Message: err.Error()}
	}
	return &api.AuthError{Kind: api.KindUnknown, Message: err.Error()}
}
