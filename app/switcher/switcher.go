// Package switcher holds the switch coordinator, the single serialization
// point for all theme-state mutations. The scheduler loop, the external
// toggle trigger and manual CLI actions all funnel through one mutex so
// no two of them can interleave a read-modify-write of the current theme.
package switcher

import (
	"fmt"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/shifty/app/schedule"
	"github.com/umputun/shifty/app/theme"
)

// Backend reads and writes the active desktop theme.
type Backend interface {
	CurrentTheme() (string, error)
	SetTheme(name string) error
}

// Catalog lists installed theme names.
type Catalog interface {
	ListThemes() ([]string, error)
}

// Recorder persists applied switches. Optional; recording failures are
// logged and never fail the switch itself.
type Recorder interface {
	Record(ts time.Time, themeName, mode, trigger string) error
}

// triggers recorded with each applied switch
const (
	TriggerToggle = "toggle"
	TriggerSet    = "set"
	TriggerAuto   = "auto"
)

// Coordinator owns the mutable switch state and serializes every
// mutation. Construct once and share between the scheduler, the trigger
// source and CLI call sites.
type Coordinator struct {
	backend  Backend
	catalog  Catalog
	recorder Recorder

	mu          sync.Mutex
	enabled     bool
	window      schedule.Window
	lastApplied theme.Mode
}

// NewCoordinator creates a coordinator. recorder may be nil.
func NewCoordinator(backend Backend, catalog Catalog, recorder Recorder) *Coordinator {
	return &Coordinator{backend: backend, catalog: catalog, recorder: recorder}
}

// UpdateSettings replaces the auto-switch flag and dark window, typically
// on config (re)load. Takes effect on the next decision cycle.
func (c *Coordinator) UpdateSettings(enabled bool, window schedule.Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled != enabled || c.window != window {
		log.Printf("[INFO] auto-switch settings updated, enabled=%v, window %s", enabled, window)
	}
	c.enabled = enabled
	c.window = window
}

// Toggle switches the current theme to its counterpart. Returns the
// applied theme name, or ErrNoCounterpart (state unchanged) when the
// current theme has no discovered pair.
func (c *Coordinator) Toggle() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toggleLocked(TriggerToggle)
}

// SetTheme applies the named theme unconditionally.
func (c *Coordinator) SetTheme(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.backend.SetTheme(name); err != nil {
		return fmt.Errorf("failed to apply theme %s: %w", name, err)
	}
	c.lastApplied = theme.ClassifyMode(name)
	log.Printf("[INFO] theme set to %s (%s)", name, c.lastApplied)
	c.record(name, c.lastApplied, TriggerSet)
	return nil
}

// ApplyAutoDecision evaluates the dark window against now and switches at
// most once per mode transition. Disabled auto-switch is a no-op, as is a
// repeat evaluation of an already applied mode, which keeps the poll loop
// from hammering the backend. A backend failure leaves the last applied
// mode untouched so the next poll retries the same transition.
func (c *Coordinator) ApplyAutoDecision(now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return nil
	}

	want := theme.ModeLight
	if schedule.IsDarkTime(schedule.FromClock(now), c.window) {
		want = theme.ModeDark
	}

	if c.lastApplied == theme.ModeUnknown {
		// first decision after startup, trust the desktop's current state
		current, err := c.backend.CurrentTheme()
		if err != nil {
			return fmt.Errorf("failed to read current theme: %w", err)
		}
		c.lastApplied = theme.ClassifyMode(current)
	}

	if c.lastApplied == want {
		return nil
	}

	applied, err := c.toggleLocked(TriggerAuto)
	if err != nil {
		return err
	}
	log.Printf("[INFO] auto-switched to %s (%s)", applied, want)
	return nil
}

// Status returns the current theme name and its classification.
func (c *Coordinator) Status() (name string, mode theme.Mode, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.backend.CurrentTheme()
	if err != nil {
		return "", theme.ModeUnknown, fmt.Errorf("failed to read current theme: %w", err)
	}
	return current, theme.ClassifyMode(current), nil
}

// toggleLocked implements the counterpart switch. Caller holds the lock.
func (c *Coordinator) toggleLocked(trigger string) (string, error) {
	current, err := c.backend.CurrentTheme()
	if err != nil {
		return "", fmt.Errorf("failed to read current theme: %w", err)
	}

	names, err := c.catalog.ListThemes()
	if err != nil {
		return "", fmt.Errorf("failed to list installed themes: %w", err)
	}

	counterpart, ok := theme.FindCounterpart(current, theme.GeneratePairMap(names))
	if !ok {
		return "", fmt.Errorf("%w for %s", theme.ErrNoCounterpart, current)
	}

	if err := c.backend.SetTheme(counterpart); err != nil {
		return "", fmt.Errorf("failed to apply theme %s: %w", counterpart, err)
	}
	c.lastApplied = theme.ClassifyMode(counterpart)
	c.record(counterpart, c.lastApplied, trigger)
	return counterpart, nil
}

// record persists an applied switch, warning on failure. Caller holds the lock.
func (c *Coordinator) record(name string, mode theme.Mode, trigger string) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Record(time.Now(), name, mode.String(), trigger); err != nil {
		log.Printf("[WARN] failed to record switch to %s: %v", name, err)
	}
}
