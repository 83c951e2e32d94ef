package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Commands
const (
	CommandRun     = "run"
	CommandReplay  = "replay"
	CommandLogs    = "logs"
	CommandVersion = "version"
)

// PopupOverride is the popup choice made on the command line
type PopupOverride int

const (
	PopupAuto PopupOverride = iota // decide from the OS version
	PopupOn
	PopupOff
)

func (p PopupOverride) String() string {
	switch p {
	case PopupOn:
		return "popup"
	case PopupOff:
		return "nopopup"
	default:
		return "auto"
	}
}

// Config represents the complete application configuration. There is no
// configuration file; everything comes from the command line.
type Config struct {
	Command string
	Popup   PopupOverride
	Logging struct {
		Dir    string
		Level  string
		Format string
		NoFile bool
	}
	Notifications struct {
		Enabled bool
	}
	Synthesizer string
	Replay      struct {
		File string
	}
	Logs struct {
		Open bool
	}
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	config := &Config{Command: CommandRun}

	config.Popup = PopupAuto

	config.Logging.Dir = "logs"
	config.Logging.Level = "info"
	config.Logging.Format = "text"
	config.Logging.NoFile = false

	config.Notifications.Enabled = false

	config.Synthesizer = SynthSendInput

	return config
}

// ParseArgs builds the configuration from command-line arguments (without
// the program name). Flag errors and -h output go to stderr.
func ParseArgs(args []string, stderr io.Writer) (*Config, error) {
	config := DefaultConfig()

	if len(args) > 0 {
		switch args[0] {
		case CommandRun, CommandReplay, CommandLogs, CommandVersion:
			config.Command = args[0]
			args = args[1:]
		}
	}

	fs := flag.NewFlagSet("switchy "+config.Command, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var debug bool
	switch config.Command {
	case CommandRun:
		fs.BoolVar(&debug, "debug", false, "Log every CapsLock and Left-Shift event")
		fs.StringVar(&config.Logging.Dir, "log-dir", config.Logging.Dir, "Directory for log files")
		fs.StringVar(&config.Logging.Level, "log-level", config.Logging.Level, "Log level: debug, info, warn, error")
		fs.StringVar(&config.Logging.Format, "log-format", config.Logging.Format, "Log format: text or json")
		fs.BoolVar(&config.Logging.NoFile, "no-log-file", config.Logging.NoFile, "Log to the console only")
		fs.BoolVar(&config.Notifications.Enabled, "notify", config.Notifications.Enabled, "Show a notification when Alt+CapsLock toggles switching")
		fs.StringVar(&config.Synthesizer, "synth", config.Synthesizer, "Key injection backend: sendinput or keybd")
	case CommandReplay:
		fs.BoolVar(&debug, "debug", false, "Log every classified event to stderr")
	case CommandLogs:
		fs.StringVar(&config.Logging.Dir, "log-dir", config.Logging.Dir, "Directory for log files")
		fs.BoolVar(&config.Logs.Open, "open", false, "Open the log directory")
	}

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return nil, err
	}
	if debug {
		config.Logging.Level = "debug"
	}

	if config.Command == CommandReplay {
		if len(positional) == 0 {
			return nil, fmt.Errorf("replay needs a scenario file")
		}
		config.Replay.File = positional[0]
		positional = positional[1:]
	}

	// The first remaining argument may pick the popup behaviour; anything
	// else falls back to the OS version.
	if len(positional) > 0 {
		config.Popup = popupOverrideFromToken(positional[0])
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// parseInterspersed lets positional tokens and flags appear in any order:
// "switchy nopopup -debug" works as well as "switchy -debug nopopup".
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func popupOverrideFromToken(token string) PopupOverride {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "popup":
		return PopupOn
	case "nopopup":
		return PopupOff
	default:
		return PopupAuto
	}
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := parseLogLevel(config.Logging.Level); err != nil {
		return err
	}

	switch strings.ToLower(config.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got: %s", config.Logging.Format)
	}

	switch strings.ToLower(config.Synthesizer) {
	case SynthSendInput, SynthKeybd:
	default:
		return fmt.Errorf("synthesizer must be %s or %s, got: %s", SynthSendInput, SynthKeybd, config.Synthesizer)
	}

	if config.Logging.Dir == "" && !config.Logging.NoFile {
		return fmt.Errorf("log directory cannot be empty")
	}

	return nil
}

// ResolvePopupMode decides once, at startup, whether CapsLock opens the
// Win+Space popup.
func ResolvePopupMode(override PopupOverride, probe OsProbe) bool {
	switch override {
	case PopupOn:
		return true
	case PopupOff:
		return false
	}
	return probe.MajorVersion() >= popupMinMajorVersion
}
