package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/go-pkgz/lgr"
)

// debounce collapses the bursts of events editors produce on save
const debounce = 200 * time.Millisecond

// Watcher reloads the settings file on external changes and pushes each
// good version to the callback. Malformed edits are logged and skipped,
// the last good settings stay in effect.
type Watcher struct {
	path     string
	onChange func(Settings)
}

// NewWatcher creates a watcher for the settings file at path.
func NewWatcher(path string, onChange func(Settings)) *Watcher {
	return &Watcher{path: path, onChange: onChange}
}

// Run watches until ctx is canceled. The parent directory is watched
// rather than the file itself so atomic replace-on-save is picked up.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fs watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch config dir: %w", err)
	}
	log.Printf("[DEBUG] watching config file %s", w.path)

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerCh = timer.C
				continue
			}
			timer.Reset(debounce)
		case <-timerCh:
			timer, timerCh = nil, nil
			w.reload()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[WARN] config watcher error: %v", err)
		}
	}
}

// reload re-reads the settings file and notifies on success.
func (w *Watcher) reload() {
	settings, err := Load(w.path)
	if err != nil {
		log.Printf("[WARN] ignoring config change: %v", err)
		return
	}
	log.Printf("[INFO] config reloaded from %s", w.path)
	w.onChange(settings)
}
