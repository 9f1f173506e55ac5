package timer

// Countdown counts its time value down from the initial duration to zero and
// stops itself, firing OnStop, on the tick that reaches zero.
type Countdown struct {
	lifecycle
}

var _ Timer = (*Countdown)(nil)

// NewCountdown returns a stopped countdown over duration seconds. Its time
// value starts at zero, so it reports finished until Start or Reset.
func NewCountdown(duration float64) *Countdown {
	return &Countdown{lifecycle: lifecycle{initial: duration}}
}

// Tick subtracts delta from the remaining time while running. The remaining
// time may end up below zero by part of one delta.
func (c *Countdown) Tick(delta float64) {
	if c.running && c.elapsed > 0 {
		c.elapsed -= delta
	}
	if c.running && c.elapsed <= 0 {
		c.Stop()
	}
}

// IsFinished reports whether no time remains, whether or not it is running.
func (c *Countdown) IsFinished() bool { return c.elapsed <= 0 }

// Remaining is the time value of a countdown.
func (c *Countdown) Remaining() float64 { return c.elapsed }

// Reset restores the remaining time to the initial duration. Running state
// and events are untouched.
func (c *Countdown) Reset() { c.elapsed = c.initial }

// ResetTo replaces the initial duration and then resets.
func (c *Countdown) ResetTo(duration float64) {
	c.initial = duration
	c.Reset()
}

func (c *Countdown) State() State {
	switch {
	case c.running:
		return StateRunning
	case c.IsFinished():
		return StateFinished
	default:
		return StateIdle
	}
}
