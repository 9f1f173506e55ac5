package repository

import "time"

// Preset represents a named countdown duration row.
type Preset struct {
	ID        string
	Name      string
	Seconds   float64
	SortOrder int
}

// SessionKind names the timer variant a session was recorded from.
type SessionKind string

const (
	KindCountdown SessionKind = "countdown"
	KindStopwatch SessionKind = "stopwatch"
)

// SessionOutcome records how a timer run ended.
type SessionOutcome string

const (
	OutcomeCompleted SessionOutcome = "completed"
	OutcomeStopped   SessionOutcome = "stopped"
	OutcomeForced    SessionOutcome = "forced"
)

// Session represents one finished timer run.
type Session struct {
	ID             string
	Kind           SessionKind
	Preset         *string
	Outcome        SessionOutcome
	PlannedSeconds float64
	ElapsedSeconds float64
	StartedAt      time.Time
	EndedAt        time.Time
}
