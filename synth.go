package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrSynthesizerUnsupported is returned when the requested injection backend
// does not exist on this platform.
var ErrSynthesizerUnsupported = errors.New("key synthesizer not supported on this platform")

// Synthesizer backend names accepted by -synth
const (
	SynthSendInput = "sendinput"
	SynthKeybd     = "keybd"
)

// KeySynthesizer injects a single key press or release into the OS input
// stream. Implementations must not block and must tag their events so the
// host hook can recognise them as injected.
type KeySynthesizer interface {
	Synthesize(key Key, down bool) error
}

// SyntheticKey is one synthesized key transition.
type SyntheticKey struct {
	Key  Key
	Down bool
}

func (s SyntheticKey) String() string {
	if s.Down {
		return s.Key.String() + "↓"
	}
	return s.Key.String() + "↑"
}

// RecordingSynthesizer keeps every synthesized key instead of injecting it.
// It backs the replay command and the tests.
type RecordingSynthesizer struct {
	mu   sync.Mutex
	keys []SyntheticKey
	err  error
}

// NewRecordingSynthesizer creates an empty recorder
func NewRecordingSynthesizer() *RecordingSynthesizer {
	return &RecordingSynthesizer{}
}

// Synthesize records the key. If a failure was set with FailWith, the key is
// still recorded and the error returned.
func (r *RecordingSynthesizer) Synthesize(key Key, down bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, SyntheticKey{Key: key, Down: down})
	return r.err
}

// FailWith makes every following Synthesize call return err.
func (r *RecordingSynthesizer) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Keys returns a copy of everything recorded so far.
func (r *RecordingSynthesizer) Keys() []SyntheticKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SyntheticKey, len(r.keys))
	copy(out, r.keys)
	return out
}

// Drain returns the recorded keys and clears the recorder.
func (r *RecordingSynthesizer) Drain() []SyntheticKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.keys
	r.keys = nil
	return out
}

// FormatKeys renders a key sequence as "lwin↓ space↓ space↑".
func FormatKeys(keys []SyntheticKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

// NewSynthesizer builds the injection backend selected on the command line.
func NewSynthesizer(name string) (KeySynthesizer, error) {
	switch strings.ToLower(name) {
	case "", SynthSendInput:
		return newSendInputSynthesizer()
	case SynthKeybd:
		return NewKeybdSynthesizer()
	default:
		return nil, fmt.Errorf("unknown synthesizer %q", name)
	}
}

// ToggleCapsLock flips the real CapsLock state with a press/release round
// trip through s.
func ToggleCapsLock(s KeySynthesizer) error {
	return errors.Join(
		s.Synthesize(KeyCapsLock, true),
		s.Synthesize(KeyCapsLock, false),
	)
}
