package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogOptions configures a LogManager
type LogOptions struct {
	Dir     string    // directory for log files, "logs" by default
	Level   string    // debug, info, warn or error
	Format  string    // text or json
	Console io.Writer // console copy of every line, os.Stdout by default
	NoFile  bool      // log to the console only
}

// LogManager handles console and file logging
type LogManager struct {
	logFile     *os.File
	logger      *slog.Logger
	level       *slog.LevelVar
	logFilePath string
	logsDir     string
}

// NewLogManager creates a new log manager. If the log file cannot be created
// the manager falls back to console output.
func NewLogManager(opts LogOptions) (*LogManager, error) {
	level, err := parseLogLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	lm := &LogManager{
		level:   new(slog.LevelVar),
		logsDir: opts.Dir,
	}
	lm.level.Set(level)
	if lm.logsDir == "" {
		lm.logsDir = "logs"
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	out := console
	var fileErr error
	if !opts.NoFile {
		if fileErr = lm.openLogFile(); fileErr == nil {
			// Write to both console and file
			out = io.MultiWriter(console, lm.logFile)
		}
	}

	handler, err := newLogHandler(out, opts.Format, lm.level)
	if err != nil {
		lm.Close()
		return nil, err
	}
	lm.logger = slog.New(handler)

	if fileErr != nil {
		lm.LogWarning("Failed to open log file, logging to console only", "error", fileErr)
	} else if lm.logFilePath != "" {
		lm.LogInfo("Log file created", "path", lm.logFilePath)
	}
	return lm, nil
}

// NewDiscardLogManager returns a manager that drops everything
func NewDiscardLogManager() *LogManager {
	lm := &LogManager{level: new(slog.LevelVar)}
	lm.logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: lm.level}))
	return lm
}

func (lm *LogManager) openLogFile() error {
	if err := os.MkdirAll(lm.logsDir, 0755); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	lm.logFilePath = filepath.Join(lm.logsDir, fmt.Sprintf("switchy_%s.log", timestamp))

	f, err := os.OpenFile(lm.logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		lm.logFilePath = ""
		return err
	}
	lm.logFile = f
	return nil
}

func newLogHandler(out io.Writer, format string, level slog.Leveler) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "console":
		return slog.NewTextHandler(out, opts), nil
	case "json":
		return slog.NewJSONHandler(out, opts), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}

// Logger exposes the underlying structured logger
func (lm *LogManager) Logger() *slog.Logger {
	return lm.logger
}

// LogDebug logs a debug message
func (lm *LogManager) LogDebug(message string, keyValuePairs ...any) {
	lm.logger.Debug(message, keyValuePairs...)
}

// LogInfo logs an informational message
func (lm *LogManager) LogInfo(message string, keyValuePairs ...any) {
	lm.logger.Info(message, keyValuePairs...)
}

// LogWarning logs a warning message
func (lm *LogManager) LogWarning(message string, keyValuePairs ...any) {
	lm.logger.Warn(message, keyValuePairs...)
}

// LogError logs an error message
func (lm *LogManager) LogError(message string, err error, keyValuePairs ...any) {
	if err != nil {
		keyValuePairs = append([]any{"error", err}, keyValuePairs...)
	}
	lm.logger.Error(message, keyValuePairs...)
}

// LogKeyEvent logs a classified CapsLock or Left-Shift event at debug level
func (lm *LogManager) LogKeyEvent(ev KeyEvent, verdict Verdict) {
	if lm.level.Level() > slog.LevelDebug {
		return
	}
	lm.logger.Debug("Key event",
		"key", ev.Key.String(),
		"transition", ev.Transition.String(),
		"verdict", verdict.String())
}

// LogToggle logs the master switch changing
func (lm *LogManager) LogToggle(enabled bool) {
	if enabled {
		lm.LogInfo("Switchy has been enabled")
	} else {
		lm.LogInfo("Switchy has been disabled")
	}
}

// GetLogFilePath returns the current log file path
func (lm *LogManager) GetLogFilePath() string {
	return lm.logFilePath
}

// Close closes the log file
func (lm *LogManager) Close() {
	if lm.logFile != nil {
		if lm.logger != nil {
			lm.LogInfo("Closing log file")
		}
		lm.logFile.Close()
		lm.logFile = nil
	}
}

// ListLogFiles returns all log files in dir, oldest first
func ListLogFiles(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, "switchy_*.log"))
}
