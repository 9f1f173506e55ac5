package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jask/ticktimer/internal/config"
	"github.com/jask/ticktimer/internal/driver"
	"github.com/jask/ticktimer/internal/service"
	"github.com/jask/ticktimer/internal/timer"
	"github.com/jask/ticktimer/internal/timeutil"
)

// runHeadless drives one timer on clock and prints a status line each time
// the displayed value changes. A countdown returns once it finishes; a
// stopwatch runs until ctx ends and is then stopped. A countdown interrupted
// by ctx is force-ended.
func runHeadless(ctx context.Context, cfg config.Config, clock driver.Clock, rec *service.Recorder, preset config.Preset, stopwatch bool, out io.Writer) error {
	var (
		t      timer.Timer
		label  string
		render func() string
	)
	if stopwatch {
		sw := timer.NewStopwatch()
		t, label = sw, "stopwatch"
		render = func() string { return timeutil.FormatSeconds(sw.Time(), cfg.UI.ShowHours) }
	} else {
		cd := timer.NewCountdown(preset.Duration.Seconds())
		t, label = cd, preset.Name
		render = func() string { return timeutil.FormatRemaining(cd.Remaining(), cfg.UI.ShowHours) }
	}

	var b *service.Binding
	if rec != nil {
		name := preset.Name
		if stopwatch {
			name = ""
		}
		var err error
		if b, err = rec.Bind(t, name); err != nil {
			return fmt.Errorf("bind recorder: %w", err)
		}
		defer b.Close()
	}

	t.OnStop().Subscribe(func() { logrus.WithField("timer", label).Info("timer stopped") })
	t.OnForceEnd().Subscribe(func() { logrus.WithField("timer", label).Info("timer force ended") })

	d := driver.New(clock, driver.WithMaxDelta(cfg.Timer.MaxDelta))
	d.Attach(t)

	fmt.Fprintf(out, "%s %s\n", label, timeutil.TakeSnapshot(clock.Now()))
	t.Start()
	last := render()
	fmt.Fprintf(out, "\r%s %s", label, last)

	err := d.Run(ctx, cfg.Timer.Frame, func(time.Duration) bool {
		if cur := render(); cur != last {
			last = cur
			fmt.Fprintf(out, "\r%s %s", label, cur)
		}
		return t.Running()
	})
	fmt.Fprintln(out)

	if err != nil {
		if stopwatch {
			t.Stop()
		} else if t.Running() {
			t.ForceEnd()
		}
		fmt.Fprintf(out, "%s ended at %s\n", label, render())
		return err
	}
	fmt.Fprintf(out, "%s done\n", label)
	if b != nil {
		if err := b.Err(); err != nil {
			return fmt.Errorf("record session: %w", err)
		}
		logrus.WithField("sessions", b.Recorded()).Debug("headless run recorded")
	}
	return nil
}
