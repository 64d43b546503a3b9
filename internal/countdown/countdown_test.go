// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package countdown

import (
	"sync"
	"testing"
	"time"
)

// =============================================================================
// FAKE CLOCK
// =============================================================================

type fakeTicker struct{ c chan time.Time }

func (f *fakeTicker) C() <-chan time.Time { return f.c }
func (f *fakeTicker) Stop()               {}

// fakeClock drives the countdown by hand: Advance moves time, Tick fires
// one tick.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	tick chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		tick: make(chan time.Time),
	}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) NewTicker(d time.Duration) Ticker {
	return &fakeTicker{c: f.tick}
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func (f *fakeClock) Tick() {
	f.tick <- time.Time{}
}

// step advances the clock, fires a tick, and returns the resulting sample.
func step(t *testing.T, h *Handle, clk *fakeClock, d time.Duration) Sample {
	t.Helper()
	clk.Advance(d)
	clk.Tick()
	select {
	case s, ok := <-h.Samples():
		if !ok {
			t.Fatal("samples channel closed unexpectedly")
		}
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for sample")
		return Sample{}
	}
}

// =============================================================================
// COUNTDOWN BEHAVIOR
// =============================================================================

func TestCountdownRecomputesRemaining(t *testing.T) {
	clk := newFakeClock()
	h := StartWithClock(clk.Now().Add(30*time.Second), clk)
	defer h.Cancel()

	s := step(t, h, clk, 5*time.Second)
	if s.Expired {
		t.Fatal("expired too early")
	}
	if s.Remaining < 24.9 || s.Remaining > 25.1 {
		t.Errorf("Remaining = %v, want ~25", s.Remaining)
	}

	// A long gap between ticks does not drift: remaining tracks elapsed
	// time, not tick count.
	s = step(t, h, clk, 20*time.Second)
	if s.Remaining < 4.9 || s.Remaining > 5.1 {
		t.Errorf("Remaining = %v, want ~5", s.Remaining)
	}
}

func TestCountdownMonotonicAndTerminal(t *testing.T) {
	clk := newFakeClock()
	h := StartWithClock(clk.Now().Add(time.Second), clk)

	var samples []Sample
	for i := 0; i < 6; i++ {
		s := step(t, h, clk, 250*time.Millisecond)
		samples = append(samples, s)
		if s.Expired {
			break
		}
	}

	last := samples[len(samples)-1]
	if !last.Expired {
		t.Fatal("no terminal sample emitted")
	}
	if last.Remaining != 0 {
		t.Errorf("terminal Remaining = %v, want 0", last.Remaining)
	}

	prev := samples[0].Remaining
	for _, s := range samples[1:] {
		if s.Remaining > prev {
			t.Errorf("samples not non-increasing: %v after %v", s.Remaining, prev)
		}
		if s.Remaining < 0 {
			t.Errorf("negative sample: %v", s.Remaining)
		}
		prev = s.Remaining
	}

	// Expiry fires at or after the full window, never before.
	// 4 steps of 250ms reach exactly 1s; the terminal sample is the 4th.
	if n := len(samples); n != 4 {
		t.Errorf("terminal after %d steps, want 4", n)
	}

	// Channel closes after the terminal sample; no second signal.
	select {
	case s, ok := <-h.Samples():
		if ok {
			t.Errorf("sample after terminal: %+v", s)
		}
	case <-time.After(time.Second):
		t.Error("channel not closed after terminal sample")
	}
}

func TestCountdownCancelEmitsNoTerminal(t *testing.T) {
	clk := newFakeClock()
	h := StartWithClock(clk.Now().Add(time.Minute), clk)

	s := step(t, h, clk, time.Second)
	if s.Expired {
		t.Fatal("expired prematurely")
	}

	h.Cancel()
	h.Cancel() // idempotent

	// Drain: the channel must close without an expired sample.
	deadline := time.After(time.Second)
	for {
		select {
		case s, ok := <-h.Samples():
			if !ok {
				return
			}
			if s.Expired {
				t.Fatal("terminal sample after cancel")
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestCountdownSystemClock(t *testing.T) {
	h := Start(time.Now().Add(60 * time.Millisecond))

	var last Sample
	sawExpired := false
	prev := 1e9
	deadline := time.After(2 * time.Second)
	for !sawExpired {
		select {
		case s, ok := <-h.Samples():
			if !ok {
				t.Fatal("channel closed before terminal sample")
			}
			if s.Remaining < 0 {
				t.Errorf("negative remaining: %v", s.Remaining)
			}
			if s.Remaining > prev {
				t.Errorf("remaining increased: %v after %v", s.Remaining, prev)
			}
			prev = s.Remaining
			last = s
			sawExpired = s.Expired
		case <-deadline:
			t.Fatal("no terminal sample within deadline")
		}
	}
	if last.Remaining != 0 {
		t.Errorf("terminal Remaining = %v, want 0", last.Remaining)
	}
}

// =============================================================================
// FORMATTING
// =============================================================================

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{42.123, "42.1"},
		{10.5, "10.5"},
		{10.0, "10.00"}, // at the switch point, high precision
		{9.876, "9.88"},
		{0.04, "0.04"},
		{0, "0.00"},
		{-1, "0.00"},
	}

	for _, tt := range tests {
		if got := FormatRemaining(tt.seconds); got != tt.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		remaining float64
		validity  int
		want      float64
	}{
		{30, 60, 0.5},
		{60, 60, 0},
		{0, 60, 1},
		{-5, 60, 1},
		{70, 60, 0},
		{10, 0, 1},
	}

	for _, tt := range tests {
		got := Progress(tt.remaining, tt.validity)
		if got < tt.want-0.001 || got > tt.want+0.001 {
			t.Errorf("Progress(%v, %d) = %v, want %v", tt.remaining, tt.validity, got, tt.want)
		}
	}
}
