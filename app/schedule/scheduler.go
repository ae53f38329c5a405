package schedule

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/shifty/app/theme"
)

// DefaultPollInterval is how often the scheduler re-evaluates the window.
const DefaultPollInterval = time.Minute

// Decider is the coordinator-side entry point the scheduler drives.
type Decider interface {
	ApplyAutoDecision(now time.Time) error
}

type schedulerState int

const (
	stateNotStarted schedulerState = iota
	stateRunning
	stateStopped
)

// Scheduler periodically asks the decider to apply the auto-switch
// decision. It starts at most one loop per instance; repeated Start calls
// are no-ops and Stop cancels the loop without waiting out the interval.
type Scheduler struct {
	decider  Decider
	interval time.Duration
	nowFn    func() time.Time

	mu     sync.Mutex
	state  schedulerState
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a scheduler polling at the given interval,
// falling back to DefaultPollInterval when it is not positive.
func NewScheduler(decider Decider, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Scheduler{decider: decider, interval: interval, nowFn: time.Now}
}

// Start launches the background poll loop. The first call transitions the
// scheduler to running; subsequent calls, and calls after Stop, do nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateNotStarted {
		log.Printf("[DEBUG] scheduler start ignored, state already advanced")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.state = stateRunning
	log.Printf("[INFO] auto-switch scheduler started, poll interval %v", s.interval)

	go s.run(ctx)
}

// Stop terminates the poll loop and waits for it to exit. Safe to call
// from any goroutine, repeatedly, and before Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.state != stateRunning {
		s.state = stateStopped
		s.mu.Unlock()
		return
	}
	s.state = stateStopped
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	cancel()
	<-done
	log.Printf("[INFO] auto-switch scheduler stopped")
}

// run is the poll loop. It evaluates once immediately so the desktop
// snaps to the right mode at startup, then on every tick. A failed
// evaluation never terminates the loop.
func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	s.apply()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.apply()
		}
	}
}

// apply runs one decision cycle, logging and swallowing errors.
func (s *Scheduler) apply() {
	err := s.decider.ApplyAutoDecision(s.nowFn())
	if err == nil {
		return
	}
	if errors.Is(err, theme.ErrNoCounterpart) {
		log.Printf("[DEBUG] auto-switch skipped: %v", err)
		return
	}
	log.Printf("[WARN] auto-switch failed: %v", err)
}
