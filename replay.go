package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is a recorded sequence of key events fed to the remapper by the
// replay command. Each event may carry the verdict and synthesized keys it is
// expected to produce.
type Scenario struct {
	Popup  *bool           `yaml:"popup"`
	Events []ScenarioEvent `yaml:"events"`
}

// ScenarioEvent is one key transition of a scenario
type ScenarioEvent struct {
	Key        string          `yaml:"key"`
	Transition string          `yaml:"transition"`
	Injected   bool            `yaml:"injected"`
	Expect     *ScenarioExpect `yaml:"expect"`
}

// ScenarioExpect holds the expected outcome of an event. Keys are written as
// "<key> down" or "<key> up"; an explicit empty list means nothing may be
// synthesized.
type ScenarioExpect struct {
	Verdict string    `yaml:"verdict"`
	Keys    *[]string `yaml:"keys"`
}

// ReplayStep is the outcome of one scenario event
type ReplayStep struct {
	Event   KeyEvent
	Verdict Verdict
	Keys    []SyntheticKey
}

// ReplayResult is the outcome of a whole scenario
type ReplayResult struct {
	PopupMode bool
	Steps     []ReplayStep
	Final     RemapState
	Failures  []string
}

// ErrReplayMismatch is returned when a scenario expectation is not met
var ErrReplayMismatch = errors.New("replay expectations not met")

// LoadScenario reads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScenario decodes and validates a YAML scenario
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(s.Events) == 0 {
		return nil, errors.New("scenario has no events")
	}
	for i, ev := range s.Events {
		if _, err := ev.keyEvent(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
		if ev.Expect != nil {
			if ev.Expect.Verdict != "" {
				if _, err := parseVerdict(ev.Expect.Verdict); err != nil {
					return nil, fmt.Errorf("event %d: %w", i+1, err)
				}
			}
			if ev.Expect.Keys != nil {
				if _, err := parseSyntheticKeys(*ev.Expect.Keys); err != nil {
					return nil, fmt.Errorf("event %d: %w", i+1, err)
				}
			}
		}
	}
	return &s, nil
}

func (ev ScenarioEvent) keyEvent() (KeyEvent, error) {
	key, err := ParseKey(ev.Key)
	if err != nil {
		return KeyEvent{}, err
	}
	t, err := ParseTransition(ev.Transition)
	if err != nil {
		return KeyEvent{}, err
	}
	return KeyEvent{Key: key, Transition: t, Injected: ev.Injected}, nil
}

func parseVerdict(s string) (Verdict, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "swallow":
		return Swallow, nil
	case "pass", "passthrough":
		return PassThrough, nil
	}
	return 0, fmt.Errorf("unknown verdict: %q", s)
}

func parseSyntheticKeys(entries []string) ([]SyntheticKey, error) {
	keys := make([]SyntheticKey, 0, len(entries))
	for _, entry := range entries {
		fields := strings.Fields(entry)
		if len(fields) != 2 {
			return nil, fmt.Errorf("synthetic key %q: want \"<key> down|up\"", entry)
		}
		key, err := ParseKey(fields[0])
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(fields[1]) {
		case "down":
			keys = append(keys, SyntheticKey{Key: key, Down: true})
		case "up":
			keys = append(keys, SyntheticKey{Key: key, Down: false})
		default:
			return nil, fmt.Errorf("synthetic key %q: direction must be down or up", entry)
		}
	}
	return keys, nil
}

// Replay feeds the scenario to a fresh remapper backed by a recording
// synthesizer. The scenario's own popup setting wins over popupMode.
func Replay(s *Scenario, popupMode bool, lm *LogManager) *ReplayResult {
	if s.Popup != nil {
		popupMode = *s.Popup
	}
	rec := NewRecordingSynthesizer()
	remapper := NewRemapper(popupMode, rec, WithLogManager(lm))

	result := &ReplayResult{PopupMode: popupMode}
	for i, sev := range s.Events {
		// validated by ParseScenario
		ev, _ := sev.keyEvent()
		verdict := remapper.HandleKeyEvent(ev)
		step := ReplayStep{Event: ev, Verdict: verdict, Keys: rec.Drain()}
		result.Steps = append(result.Steps, step)

		if sev.Expect != nil {
			result.Failures = append(result.Failures, checkExpectation(i+1, step, sev.Expect)...)
		}
	}
	result.Final = remapper.State()
	return result
}

func checkExpectation(n int, step ReplayStep, expect *ScenarioExpect) []string {
	var failures []string
	if expect.Verdict != "" {
		want, _ := parseVerdict(expect.Verdict)
		if step.Verdict != want {
			failures = append(failures, fmt.Sprintf("event %d: verdict %s, want %s", n, step.Verdict, want))
		}
	}
	if expect.Keys != nil {
		want, _ := parseSyntheticKeys(*expect.Keys)
		if FormatKeys(step.Keys) != FormatKeys(want) {
			failures = append(failures, fmt.Sprintf("event %d: synthesized [%s], want [%s]", n, FormatKeys(step.Keys), FormatKeys(want)))
		}
	}
	return failures
}

// Print writes a human-readable trace of the replay
func (r *ReplayResult) Print(w io.Writer) {
	fmt.Fprintf(w, "popup mode: %v\n", r.PopupMode)
	for i, step := range r.Steps {
		injected := ""
		if step.Event.Injected {
			injected = " (injected)"
		}
		fmt.Fprintf(w, "%3d  %-9s %-10s%s -> %-7s [%s]\n",
			i+1, step.Event.Key, step.Event.Transition, injected, step.Verdict, FormatKeys(step.Keys))
	}
	fmt.Fprintf(w, "final: enabled=%v caps=%v shift=%v win=%v\n",
		r.Final.Enabled, r.Final.CapsHeld, r.Final.ShiftHeld, r.Final.WinInjectedPending)
	for _, f := range r.Failures {
		fmt.Fprintf(w, "FAIL %s\n", f)
	}
}

// runReplay implements the replay command
func runReplay(config *Config, probe OsProbe, lm *LogManager, stdout io.Writer) error {
	scenario, err := LoadScenario(config.Replay.File)
	if err != nil {
		return err
	}
	result := Replay(scenario, ResolvePopupMode(config.Popup, probe), lm)
	result.Print(stdout)
	if len(result.Failures) > 0 {
		return fmt.Errorf("%w: %d failure(s)", ErrReplayMismatch, len(result.Failures))
	}
	return nil
}
