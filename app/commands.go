package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/shifty/app/config"
	"github.com/umputun/shifty/app/hotkey"
	"github.com/umputun/shifty/app/schedule"
	"github.com/umputun/shifty/app/store"
	"github.com/umputun/shifty/app/switcher"
	"github.com/umputun/shifty/app/theme"
)

// CommonOpts is shared by all subcommands.
type CommonOpts struct {
	Config    string   `long:"config" env:"SHIFTY_CONFIG" description:"config file path (default: user config dir)"`
	ThemeDirs []string `long:"theme-dir" env:"SHIFTY_THEME_DIRS" env-delim:":" description:"theme directory to scan, can be repeated"`
	Debug     bool     `long:"dbg" env:"DEBUG" description:"debug mode"`
}

// configPath resolves the config file location.
func (c *CommonOpts) configPath() (string, error) {
	if c.Config != "" {
		return c.Config, nil
	}
	return config.DefaultPath()
}

// catalog builds the theme catalog over the requested directories.
func (c *CommonOpts) catalog() *theme.DirCatalog {
	return theme.NewDirCatalog(c.ThemeDirs...)
}

// coordinator wires backend, catalog and recorder into a coordinator.
// recorder may be nil for read-only commands.
func (c *CommonOpts) coordinator(rec switcher.Recorder) *switcher.Coordinator {
	catalog := c.catalog()
	backend := theme.NewXfconf(nil, catalog.Dirs())
	return switcher.NewCoordinator(backend, catalog, rec)
}

// openHistory opens the switch history database. A failure is reported
// but not fatal, switching works without history.
func openHistory(dbPath string) switcher.Recorder {
	path := dbPath
	if path == "" {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			log.Printf("[WARN] history disabled: %v", err)
			return nil
		}
	}
	hist, err := store.NewSQLite(path)
	if err != nil {
		log.Printf("[WARN] history disabled: %v", err)
		return nil
	}
	return hist
}

// DaemonCmd runs the background daemon: the auto-switch scheduler, the
// config file watcher and the SIGUSR1 toggle trigger.
type DaemonCmd struct {
	CommonOpts
	DB        string        `long:"db" env:"SHIFTY_DB" description:"switch history database (default: user data dir)"`
	Interval  time.Duration `long:"interval" env:"SHIFTY_INTERVAL" default:"1m" description:"auto-switch poll interval"`
	NoHistory bool          `long:"no-history" env:"SHIFTY_NO_HISTORY" description:"disable switch history recording"`

	ctx context.Context // set by tests to control lifecycle
}

// Execute runs the daemon until terminated.
func (d *DaemonCmd) Execute(_ []string) error {
	setupLogs(d.Debug)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx := d.ctx
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(context.Background())
		signals(cancel)
	}

	return d.run(ctx)
}

func (d *DaemonCmd) run(ctx context.Context) error {
	cfgPath, err := d.configPath()
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}
	settings, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	window, err := settings.Window()
	if err != nil {
		return fmt.Errorf("failed to parse dark window: %w", err)
	}

	var rec switcher.Recorder
	if !d.NoHistory {
		if rec = openHistory(d.DB); rec != nil {
			defer func() {
				if hist, ok := rec.(*store.SQLite); ok {
					_ = hist.Close()
				}
			}()
		}
	}

	coord := d.coordinator(rec)
	coord.UpdateSettings(settings.AutoSwitchEnabled, window)
	log.Printf("[INFO] starting daemon, auto-switch=%v, dark window %s", settings.AutoSwitchEnabled, window)

	sched := schedule.NewScheduler(coord, d.Interval)
	sched.Start()
	defer sched.Stop()

	watcher := config.NewWatcher(cfgPath, func(s config.Settings) {
		w, werr := s.Window()
		if werr != nil {
			log.Printf("[WARN] ignoring config update: %v", werr)
			return
		}
		coord.UpdateSettings(s.AutoSwitchEnabled, w)
	})

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return watcher.Run(gctx) })
	group.Go(func() error { return hotkey.NewSignalSource(coord).Run(gctx) })

	if err := group.Wait(); err != nil {
		return fmt.Errorf("daemon failed: %w", err)
	}
	log.Printf("[INFO] daemon terminated")
	return nil
}

// ToggleCmd switches the current theme to its counterpart.
type ToggleCmd struct {
	CommonOpts
	DB        string `long:"db" env:"SHIFTY_DB" description:"switch history database (default: user data dir)"`
	NoHistory bool   `long:"no-history" env:"SHIFTY_NO_HISTORY" description:"disable switch history recording"`
}

// Execute toggles and reports the applied theme.
func (t *ToggleCmd) Execute(_ []string) error {
	setupLogs(t.Debug)

	var rec switcher.Recorder
	if !t.NoHistory {
		rec = openHistory(t.DB)
	}
	coord := t.coordinator(rec)

	applied, err := coord.Toggle()
	if err != nil {
		return err
	}
	fmt.Printf("switched to %s (%s mode)\n", applied, theme.ClassifyMode(applied))
	return nil
}

// SetCmd applies a specific theme by name.
type SetCmd struct {
	CommonOpts
	DB        string `long:"db" env:"SHIFTY_DB" description:"switch history database (default: user data dir)"`
	NoHistory bool   `long:"no-history" env:"SHIFTY_NO_HISTORY" description:"disable switch history recording"`
	Args      struct {
		Theme string `positional-arg-name:"theme" required:"yes" description:"theme name to apply"`
	} `positional-args:"yes"`
}

// Execute applies the named theme.
func (s *SetCmd) Execute(_ []string) error {
	setupLogs(s.Debug)

	var rec switcher.Recorder
	if !s.NoHistory {
		rec = openHistory(s.DB)
	}
	coord := s.coordinator(rec)

	if err := coord.SetTheme(s.Args.Theme); err != nil {
		return err
	}
	fmt.Printf("set theme to %s (%s mode)\n", s.Args.Theme, theme.ClassifyMode(s.Args.Theme))
	return nil
}

// ListCmd lists discovered light/dark theme pairs.
type ListCmd struct {
	CommonOpts
}

// Execute prints the discovered pairs.
func (l *ListCmd) Execute(_ []string) error {
	setupLogs(l.Debug)

	names, err := l.catalog().ListThemes()
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}
	pairMap := theme.GeneratePairMap(names)
	if len(pairMap) == 0 {
		fmt.Println("no theme pairs found")
		return nil
	}

	for lightKey, darkKey := range pairMap {
		// each pair appears twice in the map, print it once from the light side
		if theme.ClassifyMode(strings.Split(lightKey, ",")[0]) != theme.ModeLight {
			continue
		}
		fmt.Printf("light: %s\n", lightKey)
		fmt.Printf("dark:  %s\n\n", darkKey)
	}
	return nil
}

// CurrentCmd shows the active theme and its mode.
type CurrentCmd struct {
	CommonOpts
}

// Execute prints the current theme and mode.
func (c *CurrentCmd) Execute(_ []string) error {
	setupLogs(c.Debug)

	coord := c.coordinator(nil)
	name, mode, err := coord.Status()
	if err != nil {
		return err
	}
	fmt.Printf("current theme: %s\ncurrent mode:  %s\n", name, mode)
	return nil
}

// ConfigCmd prints the effective configuration.
type ConfigCmd struct {
	CommonOpts
}

// Execute prints the configuration values.
func (c *ConfigCmd) Execute(_ []string) error {
	setupLogs(c.Debug)

	cfgPath, err := c.configPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	fmt.Printf("config file:         %s\n", cfgPath)
	fmt.Printf("auto_switch_enabled: %v\n", settings.AutoSwitchEnabled)
	fmt.Printf("dark_start:          %s\n", settings.DarkStart)
	fmt.Printf("dark_end:            %s\n", settings.DarkEnd)
	if settings.LastTheme != "" {
		fmt.Printf("last_theme:          %s\n", settings.LastTheme)
	}
	return nil
}

// AutoCmd enables or disables time-based switching.
type AutoCmd struct {
	CommonOpts
	Args struct {
		State string `positional-arg-name:"state" required:"yes" choice:"on" choice:"off" description:"on or off"`
	} `positional-args:"yes"`
}

// Execute flips the auto-switch flag in the config file.
func (a *AutoCmd) Execute(_ []string) error {
	setupLogs(a.Debug)

	cfgPath, err := a.configPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	settings.AutoSwitchEnabled = a.Args.State == "on"
	if err := config.Save(cfgPath, settings); err != nil {
		return err
	}
	status := "disabled"
	if settings.AutoSwitchEnabled {
		status = "enabled"
	}
	fmt.Printf("auto-switch %s\n", status)
	return nil
}

// IntervalCmd sets the daily dark window.
type IntervalCmd struct {
	CommonOpts
	Args struct {
		Start string `positional-arg-name:"start" required:"yes" description:"dark window start, HH:MM"`
		End   string `positional-arg-name:"end" required:"yes" description:"dark window end, HH:MM"`
	} `positional-args:"yes"`
}

// Execute validates and stores the new window.
func (i *IntervalCmd) Execute(_ []string) error {
	setupLogs(i.Debug)

	window, err := schedule.ParseWindow(i.Args.Start, i.Args.End)
	if err != nil {
		return err
	}

	cfgPath, err := i.configPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	settings.DarkStart = window.Start.String()
	settings.DarkEnd = window.End.String()
	if err := config.Save(cfgPath, settings); err != nil {
		return err
	}
	fmt.Printf("dark window set to %s\n", window)
	return nil
}

// TimeCmd evaluates the dark window against the current time.
type TimeCmd struct {
	CommonOpts
}

// Execute prints whether dark mode should be active now.
func (t *TimeCmd) Execute(_ []string) error {
	setupLogs(t.Debug)

	cfgPath, err := t.configPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	window, err := settings.Window()
	if err != nil {
		return err
	}

	now := schedule.FromClock(time.Now())
	dark := schedule.IsDarkTime(now, window)
	fmt.Printf("current time:     %s\n", now)
	fmt.Printf("dark window:      %s\n", window)
	fmt.Printf("should be dark:   %v\n", dark)
	return nil
}

// HistoryCmd shows recent recorded switches.
type HistoryCmd struct {
	CommonOpts
	DB    string `long:"db" env:"SHIFTY_DB" description:"switch history database (default: user data dir)"`
	Limit int    `short:"n" long:"limit" default:"10" description:"number of entries to show"`
}

// Execute prints the most recent switch events.
func (h *HistoryCmd) Execute(_ []string) error {
	setupLogs(h.Debug)

	path := h.DB
	if path == "" {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return err
		}
	}
	hist, err := store.NewSQLite(path)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer hist.Close()

	events, err := hist.Last(h.Limit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("no switches recorded")
		return nil
	}
	for _, ev := range events {
		fmt.Printf("%s  %-5s %-7s %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04:05"), ev.Mode, ev.Trigger, ev.Theme)
	}
	return nil
}
