package theme

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// xfconf channel and property holding the active GTK theme
const (
	xfconfChannel  = "xsettings"
	xfconfProperty = "/Net/ThemeName"
)

// CommandRunner executes an external command and returns its trimmed stdout.
// abstracted so the xfconf backend can be tested without a real desktop.
type CommandRunner interface {
	Run(name string, args ...string) (string, error)
}

// ExecRunner runs real commands via os/exec.
type ExecRunner struct{}

// Run executes the command and returns trimmed stdout.
// stderr is folded into the error on failure.
func (ExecRunner) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s failed: %w, %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Xfconf reads and writes the active desktop theme through xfconf-query.
type Xfconf struct {
	runner    CommandRunner
	themeDirs []string
}

// NewXfconf creates an xfconf backend. themeDirs is used to detect whether
// a theme ships an xfwm4 variant that should be applied alongside.
func NewXfconf(runner CommandRunner, themeDirs []string) *Xfconf {
	if runner == nil {
		runner = ExecRunner{}
	}
	if len(themeDirs) == 0 {
		themeDirs = DefaultThemeDirs()
	}
	return &Xfconf{runner: runner, themeDirs: themeDirs}
}

// CurrentTheme returns the active theme name.
func (x *Xfconf) CurrentTheme() (string, error) {
	out, err := x.runner.Run("xfconf-query", "-c", xfconfChannel, "-p", xfconfProperty)
	if err != nil {
		return "", fmt.Errorf("failed to get current theme: %w", err)
	}
	return out, nil
}

// SetTheme applies the theme as the active GTK theme and, when the theme
// ships an xfwm4 directory, as the window manager theme too.
func (x *Xfconf) SetTheme(name string) error {
	if _, err := x.runner.Run("xfconf-query", "-c", xfconfChannel, "-p", xfconfProperty, "-s", name); err != nil {
		return fmt.Errorf("failed to set theme %s: %w", name, err)
	}

	if !x.hasXfwmVariant(name) {
		return nil
	}
	if _, err := x.runner.Run("xfconf-query", "-c", "xfwm4", "-p", "/general/theme", "-s", name); err != nil {
		return fmt.Errorf("failed to set xfwm4 theme %s: %w", name, err)
	}
	return nil
}

// hasXfwmVariant checks if the theme provides a window manager style.
func (x *Xfconf) hasXfwmVariant(name string) bool {
	for _, dir := range x.themeDirs {
		if st, err := os.Stat(filepath.Join(dir, name, "xfwm4")); err == nil && st.IsDir() {
			return true
		}
	}
	return false
}
