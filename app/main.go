package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
)

var revision = "unknown"

func main() {
	fmt.Printf("shifty %s\n", revision)

	parser := flags.NewParser(nil, flags.PassDoubleDash|flags.HelpFlag)

	commands := []struct {
		name, short, long string
		cmd               flags.Commander
	}{
		{"daemon", "run the auto-switch daemon", "run the background daemon: time-based auto-switch, config watching and SIGUSR1 toggle trigger", &DaemonCmd{}},
		{"toggle", "toggle between light and dark themes", "switch the current theme to its light/dark counterpart", &ToggleCmd{}},
		{"set", "set a specific theme", "apply the named theme unconditionally", &SetCmd{}},
		{"list", "list available theme pairs", "list installed themes grouped into light/dark pairs", &ListCmd{}},
		{"current", "show current theme and mode", "print the active theme name and its light/dark classification", &CurrentCmd{}},
		{"config", "show configuration", "print the effective configuration", &ConfigCmd{}},
		{"auto", "enable or disable auto-switch", "turn time-based automatic switching on or off", &AutoCmd{}},
		{"interval", "set the dark mode time window", "set the daily dark window, e.g. interval 19:00 05:00", &IntervalCmd{}},
		{"time", "check if now is inside the dark window", "evaluate the configured dark window against the current time", &TimeCmd{}},
		{"history", "show recent theme switches", "print the most recent recorded theme switches", &HistoryCmd{}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.cmd); err != nil {
			fmt.Printf("failed to register %s command: %v\n", c.name, err)
			os.Exit(1)
		}
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
			os.Exit(2)
		}
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}

// setupLogs configures lgr, with caller details in debug mode.
func setupLogs(dbg bool) {
	log.Setup(log.Msec)
	if dbg {
		log.Setup(log.Debug, log.CallerFunc, log.CallerPkg, log.CallerFile)
	}
}

// signals cancels the daemon context on SIGTERM/SIGINT and dumps all
// stacks on SIGQUIT.
func signals(cancel func()) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			switch sig {
			case syscall.SIGQUIT:
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
			case syscall.SIGTERM, syscall.SIGINT:
				cancel()
			}
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
}
