package main

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"
)

// KeybdSynthesizer injects keys through keybd_event. Modifiers go through the
// HasALT/HasSHIFT/HasSuper flags, ordinary keys through SetKeys.
type KeybdSynthesizer struct {
	mu sync.Mutex
	kb keybd_event.KeyBonding
}

// NewKeybdSynthesizer initializes the keybd_event backend
func NewKeybdSynthesizer() (KeySynthesizer, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize keyboard: %w", err)
	}

	// Linux requires a delay for keyboard initialization
	if runtime.GOOS == "linux" {
		time.Sleep(2 * time.Second)
	}

	return &KeybdSynthesizer{kb: kb}, nil
}

// Synthesize presses or releases a single key
func (s *KeybdSynthesizer) Synthesize(key Key, down bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.kb.Clear()
	s.kb.HasALT(false)
	s.kb.HasSHIFT(false)
	s.kb.HasSuper(false)

	switch key {
	case KeyCapsLock:
		s.kb.SetKeys(keybdCapsLock)
	case KeySpace:
		s.kb.SetKeys(keybdSpace)
	case KeyAlt:
		s.kb.HasALT(true)
	case KeyLShift:
		s.kb.HasSHIFT(true)
	case KeyLWin:
		s.kb.HasSuper(true)
	default:
		return fmt.Errorf("keybd backend cannot synthesize %s", key)
	}

	if down {
		return s.kb.Press()
	}
	return s.kb.Release()
}
