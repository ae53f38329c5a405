// Package schedule evaluates the daily dark-mode window and runs the
// auto-switch poll loop.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrFormat indicates a malformed HH:MM time-of-day string.
var ErrFormat = errors.New("invalid time format")

// TimeOfDay is a wall-clock time, hour 0-23 and minute 0-59.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a strict "HH:MM" string.
// anything else, including out-of-range values, fails with ErrFormat.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q, expected HH:MM", ErrFormat, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: bad hour in %q", ErrFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: bad minute in %q", ErrFormat, s)
	}
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("%w: hour %d out of range in %q", ErrFormat, hour, s)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: minute %d out of range in %q", ErrFormat, minute, s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// FromClock extracts the time-of-day from a full timestamp.
func FromClock(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns the time as minutes since midnight, 0-1439.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

// String formats the time as zero-padded HH:MM.
func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// Window is the daily dark-mode interval, half-open [Start, End) on a
// 24-hour cycle. Start after End means the window wraps past midnight.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// ParseWindow builds a Window from two HH:MM strings.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Window{}, fmt.Errorf("bad window start: %w", err)
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Window{}, fmt.Errorf("bad window end: %w", err)
	}
	return Window{Start: s, End: e}, nil
}

// String formats the window as "HH:MM-HH:MM".
func (w Window) String() string { return w.Start.String() + "-" + w.End.String() }

// IsDarkTime reports whether now falls inside the dark window.
// the start boundary is included, the end boundary excluded. A window
// with equal start and end covers the full cycle, i.e. always dark.
func IsDarkTime(now TimeOfDay, w Window) bool {
	s, e, n := w.Start.Minutes(), w.End.Minutes(), now.Minutes()
	if s < e {
		return n >= s && n < e
	}
	return n >= s || n < e
}
