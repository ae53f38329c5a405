// Package config loads and saves the shifty settings file, a small JSON
// document under the user config dir, and watches it for external edits.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/go-pkgz/lgr"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/umputun/shifty/app/schedule"
)

// Settings is the persisted configuration.
type Settings struct {
	AutoSwitchEnabled bool   `koanf:"auto_switch_enabled"`
	DarkStart         string `koanf:"dark_start"`
	DarkEnd           string `koanf:"dark_end"`
	LastTheme         string `koanf:"last_theme"`
}

// Default returns the out-of-the-box settings, dark from 19:00 to 05:00.
func Default() Settings {
	return Settings{AutoSwitchEnabled: false, DarkStart: "19:00", DarkEnd: "05:00"}
}

// DefaultPath returns the standard settings file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(dir, "shifty", "config.json"), nil
}

// Window parses the dark window out of the settings.
func (s Settings) Window() (schedule.Window, error) {
	return schedule.ParseWindow(s.DarkStart, s.DarkEnd)
}

// validate rejects malformed time values at the boundary, before they can
// reach the interval evaluator.
func (s Settings) validate() error {
	if _, err := s.Window(); err != nil {
		return err
	}
	return nil
}

// Load reads settings from path. A missing file creates one with
// defaults; a present but malformed or invalid file is an error, never
// silently coerced.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		settings := Default()
		if saveErr := Save(path, settings); saveErr != nil {
			return Settings{}, fmt.Errorf("failed to create default config: %w", saveErr)
		}
		log.Printf("[INFO] created default config at %s", path)
		return settings, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return Settings{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	settings := Default()
	if err := k.Unmarshal("", &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := settings.validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return settings, nil
}

// Save validates and writes settings to path, creating the directory if
// needed. The file is user-private, it is a per-user desktop preference.
func Save(path string, settings Settings) error {
	if err := settings.validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(settings, "koanf"), nil); err != nil {
		return fmt.Errorf("failed to build config document: %w", err)
	}
	data, err := k.Marshal(json.Parser())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
