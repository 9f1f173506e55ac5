// Package driver advances tick-driven timers from wall-clock frames.
//
// Timers in internal/timer only move when told how much time passed. A Driver
// samples a Clock once per frame, turns the gap into a delta in seconds and
// hands it to every attached Ticker. It is meant to be owned by a single
// update loop (the TUI's Update or the headless Run loop).
package driver

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidInterval is returned by Run for a non-positive frame interval.
var ErrInvalidInterval = errors.New("driver: frame interval must be positive")

// Ticker is anything advanced once per frame. Every timer.Timer satisfies it.
type Ticker interface {
	Tick(delta float64)
}

// Option configures a Driver.
type Option func(*Driver)

// WithMaxDelta caps the delta applied by a single frame. Zero disables the cap.
func WithMaxDelta(d time.Duration) Option {
	return func(dr *Driver) { dr.maxDelta = d }
}

// Driver converts clock samples into per-frame deltas.
type Driver struct {
	clock    Clock
	maxDelta time.Duration
	tickers  []Ticker
	last     time.Time
	primed   bool
}

func New(clock Clock, opts ...Option) *Driver {
	if clock == nil {
		clock = SystemClock
	}
	d := &Driver{clock: clock}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Attach adds t to the frame fan-out. Tickers are advanced in attach order.
func (d *Driver) Attach(t Ticker) {
	if t == nil {
		return
	}
	d.tickers = append(d.tickers, t)
}

// Detach removes t; it reports whether t was attached.
func (d *Driver) Detach(t Ticker) bool {
	for i, cur := range d.tickers {
		if cur == t {
			d.tickers = append(d.tickers[:i:i], d.tickers[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Driver) Len() int { return len(d.tickers) }

// Rebase forgets the previous sample, so the next Advance only records a new
// baseline. Use it after the loop was suspended.
func (d *Driver) Rebase() { d.primed = false }

// Advance samples the clock and ticks every attached Ticker with the time
// since the previous sample. The first call after New or Rebase only records
// the baseline and returns zero. Backwards clock steps yield a zero delta.
func (d *Driver) Advance() time.Duration {
	now := d.clock.Now()
	if !d.primed {
		d.last = now
		d.primed = true
		return 0
	}
	delta := now.Sub(d.last)
	d.last = now
	if delta < 0 {
		delta = 0
	}
	if d.maxDelta > 0 && delta > d.maxDelta {
		delta = d.maxDelta
	}
	secs := delta.Seconds()
	for _, t := range d.tickers {
		t.Tick(secs)
	}
	return delta
}

// Run calls Advance every interval, then onFrame with the applied delta.
// It returns nil once onFrame reports false, or ctx.Err() when ctx ends.
func (d *Driver) Run(ctx context.Context, interval time.Duration, onFrame func(time.Duration) bool) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.Advance()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			delta := d.Advance()
			if onFrame != nil && !onFrame(delta) {
				return nil
			}
		}
	}
}
