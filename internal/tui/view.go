package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/jask/ticktimer/internal/database/repository"
	"github.com/jask/ticktimer/internal/timeutil"
)

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ticktimer"))
	b.WriteString("\n")
	b.WriteString(a.renderTabs())
	b.WriteString("\n")

	var body string
	if a.active == paneStopwatch {
		body = a.renderStopwatch()
	} else {
		body = a.renderCountdown()
	}
	b.WriteString(paneStyle.Render(body))
	b.WriteString("\n")
	b.WriteString(a.renderHistory())
	b.WriteString("\n")
	b.WriteString(a.renderEvents())

	if a.confirmClear {
		b.WriteString("\n")
		b.WriteString(modalStyle.Render(titleStyle.Render("Clear session history?") + "\nPresets are kept.\n" + a.help.View(a.confirm)))
	}
	if a.status != "" {
		b.WriteString("\n")
		if strings.HasPrefix(a.status, "error:") {
			b.WriteString(errorStyle.Render(a.status))
		} else {
			b.WriteString(statusStyle.Render(a.status))
		}
	}
	b.WriteString("\n")
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a *App) renderTabs() string {
	var tabs []string
	for _, p := range []pane{paneCountdown, paneStopwatch} {
		style := tabStyle
		if p == a.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(p.String()))
	}
	return strings.Join(tabs, " ")
}

func (a *App) renderCountdown() string {
	cd := a.countdown
	state := cd.State()
	lines := []string{
		labelStyle.Render("preset ") + a.renderPresets(),
		clockStyle.Render(timeutil.FormatRemaining(cd.Remaining(), a.cfg.UI.ShowHours)) + " " +
			stateStyle(state).Render(state.String()),
		a.bar.ViewAs(displayProgress(cd.Progress())),
		dimStyle.Render("of " + timeutil.FormatSeconds(cd.Initial(), a.cfg.UI.ShowHours)),
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderStopwatch() string {
	sw := a.stopwatch
	state := sw.State()
	return clockStyle.Render(timeutil.FormatSeconds(sw.Time(), a.cfg.UI.ShowHours)) + " " +
		stateStyle(state).Render(state.String())
}

func (a *App) renderPresets() string {
	if len(a.presets) == 0 {
		return dimStyle.Render("(none)")
	}
	parts := make([]string, 0, len(a.presets))
	for i, p := range a.presets {
		if i == a.presetIdx {
			parts = append(parts, activeTabStyle.Render(p.Name))
			continue
		}
		parts = append(parts, dimStyle.Render(p.Name))
	}
	return strings.Join(parts, dimStyle.Render("·"))
}

func (a *App) renderHistory() string {
	t := a.totals
	out := labelStyle.Render("history ") + fmt.Sprintf("%d sessions  %d completed  %d stopped  %d forced  %s total",
		t.Count(), t.Completed, t.Stopped, t.Forced, timeutil.FormatSeconds(t.ElapsedSeconds, true))
	if len(a.recent) > 0 {
		ago := timeutil.MinutesBetween(timeutil.UnixNow(a.recent[0].EndedAt), timeutil.UnixNow(a.clock.Now()))
		out += fmt.Sprintf("  last %dm ago", max(ago, 0))
	}
	for _, s := range a.recent {
		out += "\n" + dimStyle.Render(formatSession(s, a.cfg.UI.ShowHours))
	}
	return out
}

// formatSession prints one history row. Wall time is added when the
// session spent a second or more paused.
func formatSession(s repository.Session, showHours bool) string {
	name := string(s.Kind)
	if s.Preset != nil {
		name = *s.Preset
	}
	line := fmt.Sprintf("  %s  %-12s %-9s %s", s.EndedAt.Local().Format("Jan 02 15:04"), name, s.Outcome,
		timeutil.FormatSeconds(s.ElapsedSeconds, showHours))
	wall := timeutil.DurationBetween(timeutil.UnixNow(s.StartedAt), timeutil.UnixNow(s.EndedAt))
	if wall.Seconds() >= s.ElapsedSeconds+1 {
		line += "  (" + timeutil.FormatSeconds(wall.Seconds(), showHours) + " wall)"
	}
	return line
}

func (a *App) renderEvents() string {
	if len(a.events) == 0 {
		return dimStyle.Render("no events yet")
	}
	lines := make([]string, len(a.events))
	for i, e := range a.events {
		lines[i] = dimStyle.Render(e)
	}
	return strings.Join(lines, "\n")
}

// displayProgress maps the remaining fraction onto the bar. A zero-length
// countdown has no meaningful fraction and renders empty.
func displayProgress(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
