package repository

import (
	"context"
	"database/sql"
	"strings"
)

// SessionFilters defines list filters. Zero values mean no filter.
type SessionFilters struct {
	Kind    SessionKind
	Outcome SessionOutcome
	Limit   int
}

// SessionTotals aggregates recorded sessions.
type SessionTotals struct {
	Completed      int
	Stopped        int
	Forced         int
	ElapsedSeconds float64
}

// Count is the number of sessions covered by the totals.
func (t SessionTotals) Count() int { return t.Completed + t.Stopped + t.Forced }

// SessionRepo handles recorded timer runs.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Insert(ctx context.Context, s Session) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO sessions(id, kind, preset, outcome, planned_seconds, elapsed_seconds, started_at, ended_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?);
	`, s.ID, string(s.Kind), s.Preset, string(s.Outcome), s.PlannedSeconds, s.ElapsedSeconds,
		s.StartedAt.UTC(), s.EndedAt.UTC())
	return err
}

// List returns sessions newest first.
func (r *SessionRepo) List(ctx context.Context, f SessionFilters) ([]Session, error) {
	var (
		where []string
		args  []any
	)
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.Outcome != "" {
		where = append(where, "outcome = ?")
		args = append(args, string(f.Outcome))
	}
	q := `SELECT id, kind, preset, outcome, planned_seconds, elapsed_seconds, started_at, ended_at FROM sessions`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY ended_at DESC, id"
	if f.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Session
	for rows.Next() {
		var (
			s       Session
			kind    string
			outcome string
		)
		if err := rows.Scan(&s.ID, &kind, &s.Preset, &outcome, &s.PlannedSeconds, &s.ElapsedSeconds, &s.StartedAt, &s.EndedAt); err != nil {
			return nil, err
		}
		s.Kind = SessionKind(kind)
		s.Outcome = SessionOutcome(outcome)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SessionRepo) Totals(ctx context.Context) (SessionTotals, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT outcome, COUNT(*), COALESCE(SUM(elapsed_seconds), 0)
	FROM sessions GROUP BY outcome`)
	if err != nil {
		return SessionTotals{}, err
	}
	defer rows.Close()
	var t SessionTotals
	for rows.Next() {
		var (
			outcome string
			n       int
			secs    float64
		)
		if err := rows.Scan(&outcome, &n, &secs); err != nil {
			return SessionTotals{}, err
		}
		switch SessionOutcome(outcome) {
		case OutcomeCompleted:
			t.Completed = n
		case OutcomeStopped:
			t.Stopped = n
		case OutcomeForced:
			t.Forced = n
		}
		t.ElapsedSeconds += secs
	}
	return t, rows.Err()
}

func (r *SessionRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n)
	return n, err
}
