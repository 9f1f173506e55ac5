// Package timer provides tick-driven countdown and stopwatch timers.
//
// Timers never read the wall clock. A caller advances them by passing the
// elapsed seconds since the previous cycle to Tick, once per cycle. Start,
// Stop and ForceEnd fire lifecycle events; Pause and Resume are silent so a
// driver can tell a suspension apart from a phase that genuinely ended.
//
// Timers are not safe for concurrent use. Listeners run synchronously on the
// goroutine that triggered the transition; a listener may call back into the
// timer, but the resulting ordering is unspecified.
package timer

// Timer is the lifecycle contract shared by Countdown and Stopwatch.
type Timer interface {
	Start()
	Stop()
	ForceEnd()
	Pause()
	Resume()
	Reset()
	Tick(delta float64)

	Running() bool
	Initial() float64
	Elapsed() float64
	Progress() float64
	State() State

	OnStart() *Event
	OnStop() *Event
	OnForceEnd() *Event
}

// State is a coarse view of a timer's lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// lifecycle holds the state and events common to both variants.
type lifecycle struct {
	initial float64
	elapsed float64
	running bool

	onStart    Event
	onStop     Event
	onForceEnd Event
}

// Start sets the time value back to the initial duration and, if the timer
// was not running, marks it running and fires OnStart.
func (l *lifecycle) Start() {
	l.elapsed = l.initial
	if !l.running {
		l.running = true
		l.onStart.fire()
	}
}

// Stop ends a running timer and fires OnStop. It does nothing when stopped.
func (l *lifecycle) Stop() {
	if l.running {
		l.running = false
		l.onStop.fire()
	}
}

// ForceEnd aborts the timer without firing OnStop. OnForceEnd fires on every
// call, running or not.
func (l *lifecycle) ForceEnd() {
	if l.running {
		l.running = false
	}
	l.onForceEnd.fire()
}

// Resume continues from the current time value without firing OnStart.
func (l *lifecycle) Resume() { l.running = true }

// Pause suspends ticking without firing OnStop.
func (l *lifecycle) Pause() { l.running = false }

func (l *lifecycle) Running() bool    { return l.running }
func (l *lifecycle) Initial() float64 { return l.initial }
func (l *lifecycle) Elapsed() float64 { return l.elapsed }

// Progress returns Elapsed divided by Initial. With a zero initial duration,
// which is how every Stopwatch is built, the result is NaN or an infinity and
// carries no meaning.
func (l *lifecycle) Progress() float64 { return l.elapsed / l.initial }

func (l *lifecycle) OnStart() *Event    { return &l.onStart }
func (l *lifecycle) OnStop() *Event     { return &l.onStop }
func (l *lifecycle) OnForceEnd() *Event { return &l.onForceEnd }
