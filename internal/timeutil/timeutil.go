// Package timeutil holds Unix-timestamp helpers and clock display formatting.
// Functions that depend on the current time take it as an argument.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

// UnixNow returns now as seconds since the Unix epoch.
func UnixNow(now time.Time) int64 {
	return now.Unix()
}

// MinutesBetween returns the whole minutes between two Unix timestamps,
// truncated toward zero.
func MinutesBetween(startUnix, endUnix int64) int {
	return int((endUnix - startUnix) / 60)
}

// DurationBetween returns the span between two Unix timestamps.
func DurationBetween(startUnix, endUnix int64) time.Duration {
	return time.Duration(endUnix-startUnix) * time.Second
}

// FormatSeconds renders an elapsed value, dropping the fractional part.
func FormatSeconds(sec float64, includeHours bool) string {
	if sec <= 0 || math.IsNaN(sec) {
		return formatWhole(0, includeHours)
	}
	return formatWhole(int64(math.Floor(sec)), includeHours)
}

// FormatRemaining renders a countdown value, rounding partial seconds up so
// the display reads 00:00 only once the countdown has finished.
func FormatRemaining(sec float64, includeHours bool) string {
	if sec <= 0 || math.IsNaN(sec) {
		return formatWhole(0, includeHours)
	}
	return formatWhole(int64(math.Ceil(sec)), includeHours)
}

func formatWhole(total int64, includeHours bool) string {
	if includeHours {
		h := total / 3600
		m := (total % 3600) / 60
		s := total % 60
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	// Without an hours field the minutes keep wrapping at 60.
	m := (total / 60) % 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Snapshot pairs a UTC time with its Unix timestamp.
type Snapshot struct {
	Current time.Time
	Unix    int64
}

func TakeSnapshot(now time.Time) Snapshot {
	utc := now.UTC()
	return Snapshot{Current: utc, Unix: utc.Unix()}
}

func (s Snapshot) String() string {
	return fmt.Sprintf("[UTC: %s, Unix: %d]", s.Current.Format(time.RFC3339), s.Unix)
}
