// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package countdown turns a server-declared validity window into a locally
// ticking stream of remaining-time samples.
//
// Every sample recomputes remaining time from the monotonic clock rather
// than counting ticks, so scheduling jitter cannot accumulate into drift and
// wall-clock changes cannot move the expiry target.
package countdown

import (
	"sync"
	"time"
)

const (
	// TickInterval is the sampling cadence, 50 samples per second.
	TickInterval = 20 * time.Millisecond

	// PrecisionSwitchSeconds is the remaining-time threshold below which the
	// display gains a second decimal place. The threshold mirrors the
	// server's urgency signaling and must not be changed client-side.
	PrecisionSwitchSeconds = 10.0
)

// Sample is one observation of the running countdown. Remaining is in
// seconds and never negative. Expired is set on exactly the final sample.
type Sample struct {
	Remaining float64
	Expired   bool
}

// Ticker abstracts time.Ticker for tests.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock supplies current time and tickers. Tests inject a manual clock;
// production uses the system clock.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// systemClock is the production Clock backed by package time.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) NewTicker(d time.Duration) Ticker {
	return &systemTicker{t: time.NewTicker(d)}
}

type systemTicker struct{ t *time.Ticker }

func (s *systemTicker) C() <-chan time.Time { return s.t.C }
func (s *systemTicker) Stop()               { s.t.Stop() }

// Handle is a running countdown. Samples are delivered on Samples() until
// the terminal expired sample, after which the channel is closed. Cancel
// stops delivery immediately with no terminal sample.
type Handle struct {
	samples chan Sample
	done    chan struct{}
	once    sync.Once
}

// Start begins a countdown that expires at target, sampled on the system
// clock.
func Start(target time.Time) *Handle {
	return StartWithClock(target, systemClock{})
}

// StartWithClock begins a countdown against the supplied clock.
func StartWithClock(target time.Time, clk Clock) *Handle {
	h := &Handle{
		samples: make(chan Sample, 1),
		done:    make(chan struct{}),
	}
	go h.run(target, clk)
	return h
}

// Samples returns the sample stream. Closed after the terminal sample or
// after Cancel.
func (h *Handle) Samples() <-chan Sample {
	return h.samples
}

// Cancel stops the countdown without emitting a terminal sample. Safe to
// call more than once and after expiry.
func (h *Handle) Cancel() {
	h.once.Do(func() { close(h.done) })
}

func (h *Handle) run(target time.Time, clk Clock) {
	defer close(h.samples)

	ticker := clk.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C():
		}

		remaining := target.Sub(clk.Now()).Seconds()
		if remaining <= 0 {
			// Terminal sample. Delivery blocks until the consumer takes
			// it, unless the countdown is cancelled first.
			select {
			case h.samples <- Sample{Remaining: 0, Expired: true}:
			case <-h.done:
			}
			return
		}

		select {
		case h.samples <- Sample{Remaining: remaining}:
		case <-h.done:
			return
		default:
			// Consumer busy; the next tick recomputes anyway.
		}
	}
}
