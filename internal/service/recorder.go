package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jask/ticktimer/internal/database/repository"
	"github.com/jask/ticktimer/internal/driver"
	"github.com/jask/ticktimer/internal/timer"
)

// ErrNotConfigured is returned when a service is missing a dependency.
var ErrNotConfigured = errors.New("service: not configured")

// SessionStore is the persistence the Recorder needs.
type SessionStore interface {
	Insert(ctx context.Context, s repository.Session) error
}

// Recorder persists timer runs as sessions by listening to lifecycle events.
type Recorder struct {
	Sessions SessionStore
	Clock    driver.Clock
	Ctx      context.Context
}

// Binding ties one timer to a Recorder. Close detaches it.
type Binding struct {
	rec    *Recorder
	timer  timer.Timer
	kind   repository.SessionKind
	preset *string

	started   time.Time
	active    bool
	startID   timer.ListenerID
	stopID    timer.ListenerID
	forceID   timer.ListenerID
	lastErr   error
	recordedN int
}

// Bind subscribes to t's events. kind is derived from the concrete timer type;
// preset may be empty.
func (r *Recorder) Bind(t timer.Timer, preset string) (*Binding, error) {
	if r == nil || r.Sessions == nil {
		return nil, ErrNotConfigured
	}
	b := &Binding{rec: r, timer: t, kind: kindOf(t)}
	if preset != "" {
		b.preset = &preset
	}
	b.startID = t.OnStart().Subscribe(b.handleStart)
	b.stopID = t.OnStop().Subscribe(b.handleStop)
	b.forceID = t.OnForceEnd().Subscribe(b.handleForce)
	return b, nil
}

func kindOf(t timer.Timer) repository.SessionKind {
	if _, ok := t.(*timer.Stopwatch); ok {
		return repository.KindStopwatch
	}
	return repository.KindCountdown
}

// SetPreset changes the preset name attached to later sessions.
func (b *Binding) SetPreset(name string) {
	if name == "" {
		b.preset = nil
		return
	}
	b.preset = &name
}

// Err returns the most recent persistence error, if any.
func (b *Binding) Err() error { return b.lastErr }

// Recorded returns how many sessions this binding has written.
func (b *Binding) Recorded() int { return b.recordedN }

// Close unsubscribes from the timer.
func (b *Binding) Close() {
	b.timer.OnStart().Unsubscribe(b.startID)
	b.timer.OnStop().Unsubscribe(b.stopID)
	b.timer.OnForceEnd().Unsubscribe(b.forceID)
}

func (b *Binding) now() time.Time {
	if b.rec.Clock == nil {
		return driver.SystemClock.Now()
	}
	return b.rec.Clock.Now()
}

func (b *Binding) handleStart() {
	b.started = b.now()
	b.active = true
}

func (b *Binding) handleStop() {
	// Resume is silent, so a stop after it has no open session.
	if !b.active {
		return
	}
	outcome := repository.OutcomeStopped
	if cd, ok := b.timer.(*timer.Countdown); ok && cd.IsFinished() {
		outcome = repository.OutcomeCompleted
	}
	b.record(outcome)
}

func (b *Binding) handleForce() {
	// Force-ending a timer that was never started leaves nothing to record.
	if !b.active {
		return
	}
	b.record(repository.OutcomeForced)
}

func (b *Binding) elapsedSeconds() float64 {
	if sw, ok := b.timer.(*timer.Stopwatch); ok {
		return sw.Time()
	}
	initial := b.timer.Initial()
	spent := initial - b.timer.Elapsed()
	switch {
	case spent < 0:
		return 0
	case spent > initial:
		return initial
	}
	return spent
}

func (b *Binding) record(outcome repository.SessionOutcome) {
	b.active = false
	s := repository.Session{
		ID:             uuid.NewString(),
		Kind:           b.kind,
		Preset:         b.preset,
		Outcome:        outcome,
		PlannedSeconds: b.timer.Initial(),
		ElapsedSeconds: b.elapsedSeconds(),
		StartedAt:      b.started,
		EndedAt:        b.now(),
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = s.EndedAt
	}

	ctx := b.rec.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := b.rec.Sessions.Insert(ctx, s); err != nil {
		b.lastErr = err
		logrus.WithError(err).WithFields(logrus.Fields{
			"kind":    s.Kind,
			"outcome": s.Outcome,
		}).Warn("record session")
		return
	}
	b.lastErr = nil
	b.recordedN++
	logrus.WithFields(logrus.Fields{
		"kind":    s.Kind,
		"outcome": s.Outcome,
		"elapsed": s.ElapsedSeconds,
	}).Debug("session recorded")
}
