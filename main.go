package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// showFatal is swapped out in tests
var showFatal = showErrorDialog

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	config, err := ParseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	switch config.Command {
	case CommandVersion:
		fmt.Fprintf(stdout, "%s %s\n", AppName, Version)
		return 0

	case CommandLogs:
		if err := runLogs(config.Logging.Dir, config.Logs.Open, stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0

	case CommandReplay:
		lm, err := NewLogManager(LogOptions{
			Level:   config.Logging.Level,
			Format:  config.Logging.Format,
			Console: stderr,
			NoFile:  true,
		})
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		if err := runReplay(config, NewOsProbe(), lm, stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	return runService(config, stdout)
}

func runService(config *Config, stdout io.Writer) int {
	logManager, err := NewLogManager(LogOptions{
		Dir:     config.Logging.Dir,
		Level:   config.Logging.Level,
		Format:  config.Logging.Format,
		Console: stdout,
		NoFile:  config.Logging.NoFile,
	})
	if err != nil {
		reportFatal(err, nil)
		return 1
	}
	defer logManager.Close()

	logManager.LogInfo("Switchy starting", "version", Version)

	notificationManager := NewNotificationManager(config.Notifications.Enabled, logManager)
	defer notificationManager.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewService(config, logManager, notificationManager).Run(ctx); err != nil {
		reportFatal(err, logManager)
		return 1
	}
	logManager.LogInfo("Switchy stopped")
	return 0
}

// reportFatal shows a startup failure to the user. It blocks until the
// dialog is dismissed.
func reportFatal(err error, logManager *LogManager) {
	message := err.Error()
	if errors.Is(err, ErrAlreadyRunning) {
		message = "Another instance of Switchy is already running!"
	}
	if dialogErr := showFatal(AppName+" error", message); dialogErr != nil {
		if logManager != nil {
			logManager.LogWarning("Failed to show error dialog", "error", dialogErr)
		}
		fmt.Fprintln(os.Stderr, message)
	}
}
