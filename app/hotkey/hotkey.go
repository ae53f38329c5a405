// Package hotkey delivers external toggle triggers into the coordinator.
// The actual key capture lives outside the process (a desktop keybinding,
// a script, another tool); whatever owns it signals the daemon, one
// toggle per event.
package hotkey

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/shifty/app/theme"
)

// Toggler is the coordinator-side entry point a trigger drives.
type Toggler interface {
	Toggle() (string, error)
}

// Source delivers toggle events until the context is canceled.
type Source interface {
	Run(ctx context.Context) error
}

// SignalSource toggles the theme on SIGUSR1. Bind the desktop keyboard
// shortcut to `pkill -USR1 shifty` and every press becomes one toggle.
type SignalSource struct {
	toggler Toggler
}

// NewSignalSource creates a SIGUSR1-driven trigger source.
func NewSignalSource(toggler Toggler) *SignalSource {
	return &SignalSource{toggler: toggler}
}

// Run subscribes to SIGUSR1 and toggles on each delivery. Failed toggles
// are logged and the subscription stays active. Returns on ctx cancel.
func (s *SignalSource) Run(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGUSR1)
	defer signal.Stop(sigCh)

	log.Printf("[INFO] toggle trigger active on SIGUSR1")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sigCh:
			applied, err := s.toggler.Toggle()
			if err != nil {
				if errors.Is(err, theme.ErrNoCounterpart) {
					log.Printf("[WARN] toggle trigger ignored: %v", err)
					continue
				}
				log.Printf("[WARN] toggle trigger failed: %v", err)
				continue
			}
			log.Printf("[INFO] toggled to %s on trigger", applied)
		}
	}
}
