package timer

// Stopwatch accumulates ticked time without bound. Its initial duration is
// always zero, so Progress is meaningless; read Time instead.
type Stopwatch struct {
	lifecycle
}

var _ Timer = (*Stopwatch)(nil)

func NewStopwatch() *Stopwatch {
	return &Stopwatch{}
}

// Tick adds delta to the accumulated time while running.
func (s *Stopwatch) Tick(delta float64) {
	if s.running {
		s.elapsed += delta
	}
}

// Reset clears the accumulated time.
func (s *Stopwatch) Reset() { s.elapsed = 0 }

// Time returns the accumulated seconds.
func (s *Stopwatch) Time() float64 { return s.elapsed }

func (s *Stopwatch) State() State {
	if s.running {
		return StateRunning
	}
	return StateIdle
}
