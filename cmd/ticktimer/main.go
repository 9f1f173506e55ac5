package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/jask/ticktimer/internal/config"
	"github.com/jask/ticktimer/internal/database"
	"github.com/jask/ticktimer/internal/database/repository"
	"github.com/jask/ticktimer/internal/driver"
	"github.com/jask/ticktimer/internal/prefs"
	"github.com/jask/ticktimer/internal/service"
	"github.com/jask/ticktimer/internal/testdata"
	"github.com/jask/ticktimer/internal/tui"
)

const demoSessions = 30

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("ticktimer", pflag.ContinueOnError)
	fs.String("config", "", "path to a config.toml")
	fs.String("log.level", "info", "log level (debug, info, warn, error)")
	fs.StringP("preset", "p", "", "countdown preset to select")
	fs.Bool("stopwatch", false, "start on the stopwatch instead of the countdown")
	fs.Bool("headless", false, "run a single timer in the terminal without the TUI")
	fs.Bool("seed-demo", false, "insert demo session history before starting")
	fs.Bool("write-config", false, "write the effective config to the --config file (or the default) and exit")
	return fs
}

func main() {
	fs := newFlagSet()
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logrus.Fatalf("flags: %v", err)
	}
	presetFlag, _ := fs.GetString("preset")
	stopwatch, _ := fs.GetBool("stopwatch")
	headless, _ := fs.GetBool("headless")
	seedDemo, _ := fs.GetBool("seed-demo")
	writeConfig, _ := fs.GetBool("write-config")

	cfg, err := config.LoadWithFlags(fs)
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	logCloser, err := configureLogging(cfg.Log, headless)
	if err != nil {
		logrus.Fatalf("logging: %v", err)
	}
	defer logCloser.Close()

	if writeConfig {
		if err := config.Save(cfg, config.Path(fs)); err != nil {
			logrus.Fatalf("write config: %v", err)
		}
		fmt.Println("config written")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logrus.Fatalf("mkdir db dir: %v", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logrus.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedPresets(ctx, db, cfg.Presets()); err != nil {
		logrus.Fatalf("seed presets: %v", err)
	}

	presetRepo := repository.NewPresetRepo(db)
	sessionRepo := repository.NewSessionRepo(db)

	if seedDemo {
		if err := testdata.Seed(ctx, testdata.Repos{Presets: presetRepo, Sessions: sessionRepo}, demoSessions, nil); err != nil {
			logrus.Fatalf("seed demo: %v", err)
		}
		logrus.WithField("sessions", demoSessions).Info("demo history seeded")
	}

	preset, err := resolvePreset(cfg, presetFlag, prefs.LoadLastPreset)
	if err != nil {
		logrus.Fatalf("preset: %v", err)
	}

	// Sessions ended by the interrupt itself must still be written.
	recorder := &service.Recorder{Sessions: sessionRepo, Ctx: context.WithoutCancel(ctx)}

	if headless {
		err := runHeadless(ctx, cfg, driver.SystemClock, recorder, preset, stopwatch, os.Stdout)
		if err != nil && !errors.Is(err, context.Canceled) {
			logrus.Fatalf("headless: %v", err)
		}
		return
	}

	app, err := tui.New(ctx, cfg,
		tui.Repos{Sessions: sessionRepo},
		tui.Services{Recorder: recorder, Maintenance: &service.MaintenanceService{DB: db}},
		tui.Options{Preset: preset.Name, Stopwatch: stopwatch, OnPresetChange: prefs.SaveLastPreset},
	)
	if err != nil {
		logrus.Fatalf("tui: %v", err)
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Printf("error: %v\n", err)
	}
}

// resolvePreset picks the countdown preset: the flag, then the last preset
// used, then the configured default. A stale remembered name is ignored; an
// unknown flag value is an error.
func resolvePreset(cfg config.Config, flagValue string, lastUsed func() (string, error)) (config.Preset, error) {
	if flagValue != "" {
		return cfg.ResolvePreset(flagValue)
	}
	if lastUsed != nil {
		name, err := lastUsed()
		if err != nil {
			logrus.WithError(err).Warn("load preferences")
		} else if name != "" {
			if p, err := cfg.ResolvePreset(name); err == nil {
				return p, nil
			}
			logrus.WithField("preset", name).Debug("remembered preset no longer configured")
		}
	}
	return cfg.ResolvePreset(cfg.Timer.DefaultPreset)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// configureLogging sets the logrus level and output. The TUI owns the
// terminal, so interactive runs log to the configured file or nowhere.
func configureLogging(lc config.LogConfig, headless bool) (io.Closer, error) {
	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if headless {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	if lc.File == "" {
		logrus.SetOutput(io.Discard)
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)
	return f, nil
}
