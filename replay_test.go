package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestReplayScenarioFiles(t *testing.T) {
	tests := []struct {
		file  string
		popup bool
	}{
		{"popup_press.yaml", true},
		{"classic_press.yaml", false},
		{"chord.yaml", false},
	}

	for _, test := range tests {
		t.Run(test.file, func(t *testing.T) {
			scenario, err := LoadScenario(filepath.Join("testdata", test.file))
			if err != nil {
				t.Fatalf("Failed to load scenario: %v", err)
			}
			// The scenario's popup setting must override the argument
			result := Replay(scenario, !test.popup, NewDiscardLogManager())
			if result.PopupMode != test.popup {
				t.Errorf("Expected popup mode %v, got %v", test.popup, result.PopupMode)
			}
			if len(result.Failures) != 0 {
				t.Errorf("Unexpected failures: %v", result.Failures)
			}
			if len(result.Steps) != len(scenario.Events) {
				t.Errorf("Expected %d steps, got %d", len(scenario.Events), len(result.Steps))
			}
			if result.Final.CapsHeld || result.Final.ShiftHeld || result.Final.WinInjectedPending {
				t.Errorf("Expected idle final state, got %+v", result.Final)
			}
		})
	}
}

func TestReplayMismatch(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "mismatch.yaml"))
	if err != nil {
		t.Fatalf("Failed to load scenario: %v", err)
	}
	result := Replay(scenario, false, NewDiscardLogManager())
	if len(result.Failures) != 2 {
		t.Fatalf("Expected 2 failures, got %v", result.Failures)
	}
	if !strings.Contains(result.Failures[0], "verdict swallow, want pass") {
		t.Errorf("Unexpected first failure: %s", result.Failures[0])
	}

	var out bytes.Buffer
	result.Print(&out)
	if got := strings.Count(out.String(), "FAIL "); got != 2 {
		t.Errorf("Expected 2 FAIL lines, got %d:\n%s", got, out.String())
	}
}

func TestReplayWithoutPopupSetting(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
events:
  - key: capslock
    transition: down
  - key: capslock
    transition: up
`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result := Replay(scenario, true, NewDiscardLogManager())
	if !result.PopupMode {
		t.Error("Expected popup mode from the argument")
	}
	if got := FormatKeys(result.Steps[0].Keys); got != FormatKeys(popupSequence) {
		t.Errorf("Expected popup sequence, got %s", got)
	}
}

func TestParseScenarioErrors(t *testing.T) {
	tests := []struct {
		yaml string
		name string
	}{
		{"events: []", "no events"},
		{"events: [{key: hyper, transition: keydown}]", "unknown key"},
		{"events: [{key: capslock, transition: bounce}]", "unknown transition"},
		{"events: [{key: capslock, transition: keydown, expect: {verdict: maybe}}]", "unknown verdict"},
		{"events: [{key: capslock, transition: keydown, expect: {keys: [lwin]}}]", "key without direction"},
		{"events: [{key: capslock, transition: keydown, expect: {keys: [lwin sideways]}}]", "bad direction"},
		{"events: {key: capslock}", "malformed yaml"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseScenario([]byte(test.yaml)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestRunReplay(t *testing.T) {
	config := DefaultConfig()
	config.Command = CommandReplay

	config.Replay.File = filepath.Join("testdata", "classic_press.yaml")
	var out bytes.Buffer
	if err := runReplay(config, fixedProbe(10), NewDiscardLogManager(), &out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "popup mode: false") {
		t.Errorf("Expected popup mode in output, got:\n%s", out.String())
	}

	config.Replay.File = filepath.Join("testdata", "mismatch.yaml")
	out.Reset()
	if err := runReplay(config, fixedProbe(10), NewDiscardLogManager(), &out); !errors.Is(err, ErrReplayMismatch) {
		t.Errorf("Expected ErrReplayMismatch, got %v", err)
	}

	config.Replay.File = filepath.Join("testdata", "missing.yaml")
	if err := runReplay(config, fixedProbe(10), NewDiscardLogManager(), &out); err == nil {
		t.Error("Expected error for a missing file")
	}
}
