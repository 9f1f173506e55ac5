package timer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStopwatchScenario(t *testing.T) {
	sw := NewStopwatch()
	c := watch(sw)

	sw.Start()
	sw.Tick(1.5)
	sw.Pause()
	sw.Tick(100)
	sw.Resume()
	sw.Tick(0.5)

	require.Equal(t, 2.0, sw.Time())
	require.Equal(t, 1, c.start, "resume does not fire OnStart")
	require.Equal(t, StateRunning, sw.State())
}

func TestStopwatchSumsOnlyRunningTicks(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	sw := NewStopwatch()
	sw.Start()

	want := 0.0
	for i := 0; i < 500; i++ {
		switch rng.Intn(4) {
		case 0:
			sw.Pause()
		case 1:
			sw.Resume()
		}
		d := float64(rng.Intn(16)) / 8
		if sw.Running() {
			want += d
		}
		sw.Tick(d)
	}
	require.Equal(t, want, sw.Time())
}

func TestStopwatchNeverStopsItself(t *testing.T) {
	sw := NewStopwatch()
	c := watch(sw)
	sw.Start()
	for i := 0; i < 1000; i++ {
		sw.Tick(3600)
	}
	require.True(t, sw.Running())
	require.Equal(t, 3600.0*1000, sw.Time())
	require.Equal(t, 0, c.stop)
}

func TestStopwatchReset(t *testing.T) {
	sw := NewStopwatch()
	sw.Start()
	sw.Tick(4)
	sw.Stop()
	require.Equal(t, StateIdle, sw.State())

	sw.Reset()
	require.Zero(t, sw.Time())
	require.Zero(t, sw.Initial())
	require.False(t, sw.Running())
}

func TestStopwatchNegativeDeltaSubtracts(t *testing.T) {
	sw := NewStopwatch()
	sw.Start()
	sw.Tick(2)
	sw.Tick(-3)
	require.Equal(t, -1.0, sw.Time())
}
