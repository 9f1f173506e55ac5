package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/jask/ticktimer/internal/config"
	"github.com/jask/ticktimer/internal/database/repository"
	"github.com/jask/ticktimer/internal/service"
)

func presetConfig() config.Config {
	return config.Config{
		Timer: config.TimerConfig{
			Frame:    5 * time.Millisecond,
			MaxDelta: time.Second,
			Presets: map[string]time.Duration{
				"pomodoro":    25 * time.Minute,
				"short-break": 5 * time.Minute,
				"blink":       40 * time.Millisecond,
			},
			DefaultPreset: "pomodoro",
		},
	}
}

func TestResolvePreset(t *testing.T) {
	cfg := presetConfig()
	remembered := func(name string, err error) func() (string, error) {
		return func() (string, error) { return name, err }
	}

	tests := []struct {
		name    string
		flag    string
		last    func() (string, error)
		want    string
		wantErr bool
	}{
		{name: "flag wins", flag: "Short-Break", last: remembered("blink", nil), want: "short-break"},
		{name: "remembered", last: remembered("blink", nil), want: "blink"},
		{name: "stale remembered falls back", last: remembered("gone", nil), want: "pomodoro"},
		{name: "prefs error falls back", last: remembered("", errors.New("bad json")), want: "pomodoro"},
		{name: "no prefs", want: "pomodoro"},
		{name: "unknown flag", flag: "pomodor", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := resolvePreset(cfg, tt.flag, tt.last)
			if tt.wantErr {
				require.ErrorIs(t, err, config.ErrUnknownPreset)
				require.Contains(t, err.Error(), `did you mean "pomodoro"`)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, p.Name)
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)
	defer logrus.SetLevel(logrus.InfoLevel)

	_, err := configureLogging(config.LogConfig{Level: "loud"}, true)
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "logs", "ticktimer.log")
	closer, err := configureLogging(config.LogConfig{Level: "debug", File: path}, false)
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	logrus.Debug("hello log file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello log file")
}

type memStore struct {
	mu       sync.Mutex
	sessions []repository.Session
}

func (m *memStore) Insert(_ context.Context, s repository.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, s)
	return nil
}

// stepClock moves forward by step on every reading. Once it has been read
// limit times it cancels and stops moving, so later frames apply no time.
type stepClock struct {
	mu     sync.Mutex
	now    time.Time
	step   time.Duration
	reads  int
	limit  int
	cancel context.CancelFunc
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limit > 0 && c.reads >= c.limit {
		return c.now
	}
	c.reads++
	c.now = c.now.Add(c.step)
	if c.reads == c.limit && c.cancel != nil {
		c.cancel()
	}
	return c.now
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Date(2026, 2, 1, 7, 0, 0, 0, time.UTC), step: step}
}

func TestRunHeadlessCountdown(t *testing.T) {
	cfg := presetConfig()
	store := &memStore{}
	rec := &service.Recorder{Sessions: store}
	preset, err := cfg.ResolvePreset("blink")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var out bytes.Buffer
	require.NoError(t, runHeadless(ctx, cfg, newStepClock(10*time.Millisecond), rec, preset, false, &out))

	require.Contains(t, out.String(), "blink [UTC: 2026-02-01T07:00:00Z")
	require.Contains(t, out.String(), "blink done")
	require.Len(t, store.sessions, 1)
	require.Equal(t, repository.OutcomeCompleted, store.sessions[0].Outcome)
	require.Equal(t, "blink", *store.sessions[0].Preset)
}

func TestRunHeadlessStopwatchStopsOnCancel(t *testing.T) {
	cfg := presetConfig()
	store := &memStore{}
	rec := &service.Recorder{Sessions: store}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// One read for the banner, one to prime the driver, four frames.
	clk := newStepClock(250 * time.Millisecond)
	clk.limit, clk.cancel = 6, cancel

	var out bytes.Buffer
	err := runHeadless(ctx, cfg, clk, rec, config.Preset{}, true, &out)
	require.ErrorIs(t, err, context.Canceled)

	require.Contains(t, out.String(), "stopwatch ended at 00:01")
	require.Len(t, store.sessions, 1)
	require.Equal(t, repository.KindStopwatch, store.sessions[0].Kind)
	require.Equal(t, repository.OutcomeStopped, store.sessions[0].Outcome)
	require.Nil(t, store.sessions[0].Preset)
	require.Equal(t, 1.0, store.sessions[0].ElapsedSeconds)
}

func TestRunHeadlessCountdownForcedOnCancel(t *testing.T) {
	cfg := presetConfig()
	store := &memStore{}
	rec := &service.Recorder{Sessions: store}
	preset, err := cfg.ResolvePreset("pomodoro")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clk := newStepClock(time.Second)
	clk.limit, clk.cancel = 5, cancel

	var out bytes.Buffer
	require.ErrorIs(t, runHeadless(ctx, cfg, clk, rec, preset, false, &out), context.Canceled)
	require.Contains(t, out.String(), "pomodoro ended at 24:57")
	require.Len(t, store.sessions, 1)
	require.Equal(t, repository.OutcomeForced, store.sessions[0].Outcome)
	require.Equal(t, 3.0, store.sessions[0].ElapsedSeconds)
}

type failingStore struct{}

func (failingStore) Insert(context.Context, repository.Session) error { return errors.New("read-only db") }

func TestRunHeadlessReportsRecordFailure(t *testing.T) {
	cfg := presetConfig()
	preset, err := cfg.ResolvePreset("blink")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var out bytes.Buffer
	err = runHeadless(ctx, cfg, newStepClock(20*time.Millisecond), &service.Recorder{Sessions: failingStore{}}, preset, false, &out)
	require.ErrorContains(t, err, "record session: read-only db")
	require.Contains(t, out.String(), "blink done")
}

func TestFlagSetDefaults(t *testing.T) {
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--preset", "short-break", "--headless"}))
	v, err := fs.GetString("preset")
	require.NoError(t, err)
	require.Equal(t, "short-break", v)
	h, err := fs.GetBool("headless")
	require.NoError(t, err)
	require.True(t, h)
	sw, err := fs.GetBool("stopwatch")
	require.NoError(t, err)
	require.False(t, sw)
}
