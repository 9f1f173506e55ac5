package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jask/ticktimer/internal/config"
	"github.com/jask/ticktimer/internal/database/repository"
	"github.com/jask/ticktimer/internal/driver"
	"github.com/jask/ticktimer/internal/service"
	"github.com/jask/ticktimer/internal/timer"
)

const (
	defaultFrame = 100 * time.Millisecond
	eventLogSize = 8
)

// App is the bubbletea model: a countdown pane and a stopwatch pane driven
// by one frame loop.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	services Services
	clock    driver.Clock

	driver    *driver.Driver
	countdown *timer.Countdown
	stopwatch *timer.Stopwatch
	cdBind    *service.Binding
	swBind    *service.Binding
	queue     sessionQueue

	presets   []config.Preset
	presetIdx int
	active    pane

	keys    keyMap
	confirm confirmKeyMap
	help    help.Model
	bar     progress.Model

	events       []string
	totals       repository.SessionTotals
	recent       []repository.Session
	status       string
	confirmClear bool

	onPresetChange func(name string) error
}

type Repos struct {
	Sessions *repository.SessionRepo
}

type Services struct {
	Recorder    *service.Recorder
	Maintenance *service.MaintenanceService
}

// Options tunes a new App. Zero values are fine.
type Options struct {
	Clock     driver.Clock
	Preset    string
	Stopwatch bool
	// OnPresetChange is called when the user cycles presets.
	OnPresetChange func(name string) error
}

type pane int

const (
	paneCountdown pane = iota
	paneStopwatch
)

func (p pane) String() string {
	if p == paneStopwatch {
		return "stopwatch"
	}
	return "countdown"
}

func New(ctx context.Context, cfg config.Config, repos Repos, services Services, opts Options) (*App, error) {
	clock := opts.Clock
	if clock == nil {
		clock = driver.SystemClock
	}
	a := &App{
		ctx:            ctx,
		cfg:            cfg,
		repos:          repos,
		services:       services,
		clock:          clock,
		driver:         driver.New(clock, driver.WithMaxDelta(cfg.Timer.MaxDelta)),
		presets:        cfg.Presets(),
		keys:           newKeyMap(),
		confirm:        newConfirmKeyMap(),
		help:           help.New(),
		bar:            progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		onPresetChange: opts.OnPresetChange,
	}
	for i, p := range a.presets {
		if strings.EqualFold(p.Name, opts.Preset) {
			a.presetIdx = i
		}
	}
	if opts.Stopwatch {
		a.active = paneStopwatch
	}

	preset := a.currentPreset()
	a.countdown = timer.NewCountdown(preset.Duration.Seconds())
	a.countdown.Reset()
	a.stopwatch = timer.NewStopwatch()
	a.watch(paneCountdown, a.countdown)
	a.watch(paneStopwatch, a.stopwatch)
	a.driver.Attach(a.countdown)
	a.driver.Attach(a.stopwatch)

	if services.Recorder != nil {
		// Listeners fire inside Update, so the bindings only queue sessions.
		// flushSessions writes them from a command.
		if services.Recorder.Sessions == nil {
			return nil, fmt.Errorf("bind recorder: %w", service.ErrNotConfigured)
		}
		rec := *services.Recorder
		rec.Sessions = &a.queue
		var err error
		if a.cdBind, err = rec.Bind(a.countdown, preset.Name); err != nil {
			return nil, fmt.Errorf("bind countdown: %w", err)
		}
		if a.swBind, err = rec.Bind(a.stopwatch, ""); err != nil {
			a.cdBind.Close()
			return nil, fmt.Errorf("bind stopwatch: %w", err)
		}
	}
	return a, nil
}

// Close detaches both timers from the frame loop and the recorder, then
// writes any sessions still queued.
func (a *App) Close() {
	a.driver.Detach(a.countdown)
	a.driver.Detach(a.stopwatch)
	if a.cdBind != nil {
		a.cdBind.Close()
	}
	if a.swBind != nil {
		a.swBind.Close()
	}
	if cmd := a.flushSessions(); cmd != nil {
		if m, ok := cmd().(errMsg); ok {
			logrus.WithError(m.error).Warn("flush sessions on close")
		}
	}
}

// sessionQueue is the store the recorder bindings write to while Update
// runs. It never blocks and never fails.
type sessionQueue struct {
	pending []repository.Session
}

func (q *sessionQueue) Insert(_ context.Context, s repository.Session) error {
	q.pending = append(q.pending, s)
	return nil
}

func (a *App) watch(p pane, t timer.Timer) {
	t.OnStart().Subscribe(func() { a.logEvent(p, "started") })
	t.OnStop().Subscribe(func() { a.logEvent(p, "stopped") })
	t.OnForceEnd().Subscribe(func() { a.logEvent(p, "force ended") })
}

func (a *App) logEvent(p pane, what string) {
	line := fmt.Sprintf("%s  %s %s", a.clock.Now().Format("15:04:05"), p, what)
	a.events = append(a.events, line)
	if len(a.events) > eventLogSize {
		a.events = a.events[len(a.events)-eventLogSize:]
	}
}

func (a *App) currentPreset() config.Preset {
	if len(a.presets) == 0 {
		return config.Preset{}
	}
	return a.presets[a.presetIdx]
}

func (a *App) activeTimer() timer.Timer {
	if a.active == paneStopwatch {
		return a.stopwatch
	}
	return a.countdown
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadHistory(), a.nextFrame())
}

type frameMsg time.Time

type historyMsg struct {
	totals repository.SessionTotals
	recent []repository.Session
}

type statusMsg string

type sessionsSavedMsg int

type historyClearedMsg int

type errMsg struct{ error }

func (a *App) nextFrame() tea.Cmd {
	frame := a.cfg.Timer.Frame
	if frame <= 0 {
		frame = defaultFrame
	}
	return tea.Tick(frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if a.repos.Sessions == nil {
			return nil
		}
		totals, err := a.repos.Sessions.Totals(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		recent, err := a.repos.Sessions.List(a.ctx, repository.SessionFilters{Limit: a.cfg.UI.History})
		if err != nil {
			return errMsg{err}
		}
		return historyMsg{totals: totals, recent: recent}
	}
}

func (a *App) clearHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		if a.services.Maintenance == nil {
			return errMsg{fmt.Errorf("maintenance not configured")}
		}
		n := 0
		if a.repos.Sessions != nil {
			var err error
			if n, err = a.repos.Sessions.Count(a.ctx); err != nil {
				return errMsg{err}
			}
		}
		if err := a.services.Maintenance.ClearHistory(a.ctx); err != nil {
			return errMsg{err}
		}
		return historyClearedMsg(n)
	}
}

// flushSessions hands the queued sessions to the real store from a command.
func (a *App) flushSessions() tea.Cmd {
	if len(a.queue.pending) == 0 || a.services.Recorder == nil {
		return nil
	}
	pending := a.queue.pending
	a.queue.pending = nil
	store := a.services.Recorder.Sessions
	ctx := a.services.Recorder.Ctx
	if ctx == nil {
		ctx = a.ctx
	}
	return func() tea.Msg {
		for i, s := range pending {
			if err := store.Insert(ctx, s); err != nil {
				return errMsg{fmt.Errorf("record session %d of %d: %w", i+1, len(pending), err)}
			}
		}
		return sessionsSavedMsg(len(pending))
	}
}

func (a *App) presetChangedCmd(name string) tea.Cmd {
	if a.onPresetChange == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.onPresetChange(name); err != nil {
			return errMsg{fmt.Errorf("save preset: %w", err)}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.help.Width = m.Width
		w := m.Width - 4
		if w > 60 {
			w = 60
		}
		if w > 0 {
			a.bar.Width = w
		}
	case tea.KeyMsg:
		if a.confirmClear {
			return a, a.handleConfirmKey(m)
		}
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		if key.Matches(m, a.keys.Suspend) {
			return a, tea.Suspend
		}
		cmds = append(cmds, a.handleKey(m))
	case frameMsg:
		a.driver.Advance()
		cmds = append(cmds, a.nextFrame())
	case tea.ResumeMsg:
		// Time spent suspended is not timer time.
		a.driver.Rebase()
	case historyMsg:
		a.totals = m.totals
		a.recent = m.recent
	case sessionsSavedMsg:
		cmds = append(cmds, a.loadHistory())
	case historyClearedMsg:
		a.totals = repository.SessionTotals{}
		a.recent = nil
		a.status = fmt.Sprintf("history cleared (%d sessions)", int(m))
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	cmds = append(cmds, a.flushSessions())
	return a, tea.Batch(cmds...)
}

func (a *App) handleConfirmKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.confirm.Yes):
		a.confirmClear = false
		return a.clearHistoryCmd()
	case key.Matches(m, a.confirm.No):
		a.confirmClear = false
	}
	return nil
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	t := a.activeTimer()
	switch {
	case key.Matches(m, a.keys.Start):
		t.Start()
	case key.Matches(m, a.keys.Stop):
		t.Stop()
	case key.Matches(m, a.keys.Force):
		t.ForceEnd()
	case key.Matches(m, a.keys.Pause):
		if t.Running() {
			t.Pause()
			a.status = a.active.String() + " paused"
		} else {
			t.Resume()
			a.status = a.active.String() + " resumed"
		}
	case key.Matches(m, a.keys.Reset):
		t.Reset()
	case key.Matches(m, a.keys.NextPreset):
		return a.cyclePreset(1)
	case key.Matches(m, a.keys.PrevPreset):
		return a.cyclePreset(-1)
	case key.Matches(m, a.keys.Switch):
		a.active = (a.active + 1) % 2
	case key.Matches(m, a.keys.Clear):
		a.confirmClear = true
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return nil
}

// cyclePreset moves the countdown to a neighbouring preset. A running
// countdown keeps running against the new duration.
func (a *App) cyclePreset(step int) tea.Cmd {
	if a.active != paneCountdown || len(a.presets) == 0 {
		return nil
	}
	n := len(a.presets)
	a.presetIdx = ((a.presetIdx+step)%n + n) % n
	p := a.currentPreset()
	a.countdown.ResetTo(p.Duration.Seconds())
	if a.cdBind != nil {
		a.cdBind.SetPreset(p.Name)
	}
	a.status = "preset: " + p.Name
	return a.presetChangedCmd(p.Name)
}
