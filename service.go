package main

import (
	"context"
	"errors"
	"fmt"
)

type instanceLock interface {
	TryLock() error
	Release()
}

// Service runs the remapper behind the system keyboard hook
type Service struct {
	config              *Config
	logManager          *LogManager
	notificationManager *NotificationManager

	probe    OsProbe
	instance instanceLock
	newSynth func(name string) (KeySynthesizer, error)
	newHook  func(handler KeyEventHandler, lm *LogManager) KeyboardHook
}

// NewService wires the service to the platform implementations
func NewService(config *Config, logManager *LogManager, notificationManager *NotificationManager) *Service {
	return &Service{
		config:              config,
		logManager:          logManager,
		notificationManager: notificationManager,
		probe:               NewOsProbe(),
		instance:            NewSingleInstance(singleInstanceName),
		newSynth:            NewSynthesizer,
		newHook:             NewKeyboardHook,
	}
}

// Run takes the instance lock, builds the remapper and blocks in the hook's
// message loop until ctx is cancelled. Every returned error is a startup
// failure; a clean shutdown returns nil.
func (s *Service) Run(ctx context.Context) error {
	if err := s.instance.TryLock(); err != nil {
		s.logManager.LogError("Failed to acquire instance lock", err)
		return err
	}
	defer s.instance.Release()

	major := s.probe.MajorVersion()
	popup := ResolvePopupMode(s.config.Popup, s.probe)
	s.logManager.LogInfo("Pop-up mode resolved",
		"popup", popup,
		"override", s.config.Popup.String(),
		"os_major_version", major)

	synth, err := s.newSynth(s.config.Synthesizer)
	if err != nil {
		s.logManager.LogError("Failed to initialize key synthesizer", err, "synthesizer", s.config.Synthesizer)
		return fmt.Errorf("key synthesizer %q: %w", s.config.Synthesizer, err)
	}

	remapper := NewRemapper(popup, synth,
		WithLogManager(s.logManager),
		WithToggleHook(s.notificationManager.NotifyToggle))

	s.logManager.LogInfo("Starting keyboard hook", "synthesizer", s.config.Synthesizer)
	err = s.newHook(remapper, s.logManager).Run(ctx)

	remapper.ReleasePending()
	state := remapper.State()
	s.logManager.LogInfo("Keyboard hook stopped", "enabled", state.Enabled)

	if err != nil && !errors.Is(err, context.Canceled) {
		s.logManager.LogError("Keyboard hook failed", err)
		return fmt.Errorf("keyboard hook: %w", err)
	}
	return nil
}
