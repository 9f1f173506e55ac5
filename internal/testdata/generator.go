package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jask/ticktimer/internal/database"
	"github.com/jask/ticktimer/internal/database/repository"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Presets  *repository.PresetRepo
	Sessions *repository.SessionRepo
}

// Seed writes n sample sessions spread over the past two weeks. Countdown
// sessions pick from the stored presets; roughly one in five is a stopwatch.
// A nil rng seeds one from the current time.
func Seed(ctx context.Context, repos Repos, n int, rng *rand.Rand) error {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	presets, err := repos.Presets.List(ctx)
	if err != nil {
		return fmt.Errorf("list presets: %w", err)
	}

	now := database.Now()
	for i := 0; i < n; i++ {
		start := now.Add(-time.Duration(rng.Intn(14*24*60)) * time.Minute)
		s := repository.Session{ID: uuid.NewString(), StartedAt: start}

		if len(presets) == 0 || rng.Intn(5) == 0 {
			s.Kind = repository.KindStopwatch
			s.ElapsedSeconds = float64(30 + rng.Intn(3600))
			s.Outcome = repository.OutcomeStopped
			if rng.Intn(4) == 0 {
				s.Outcome = repository.OutcomeForced
			}
		} else {
			p := presets[rng.Intn(len(presets))]
			name := p.Name
			s.Kind = repository.KindCountdown
			s.Preset = &name
			s.PlannedSeconds = p.Seconds
			switch r := rng.Intn(10); {
			case r < 7:
				s.Outcome = repository.OutcomeCompleted
				s.ElapsedSeconds = p.Seconds
			case r < 9:
				s.Outcome = repository.OutcomeStopped
				s.ElapsedSeconds = p.Seconds * rng.Float64()
			default:
				s.Outcome = repository.OutcomeForced
				s.ElapsedSeconds = p.Seconds * rng.Float64()
			}
		}
		s.EndedAt = start.Add(time.Duration(s.ElapsedSeconds * float64(time.Second)))

		if err := repos.Sessions.Insert(ctx, s); err != nil {
			return fmt.Errorf("insert demo session: %w", err)
		}
	}
	return nil
}
