package main

import (
	"sync"
)

// RemapState is everything the remapper remembers between key events.
type RemapState struct {
	Enabled            bool // master switch, flipped by Alt+CapsLock
	CapsHeld           bool // a CapsLock press was classified and not yet released
	ShiftHeld          bool // a Left-Shift press was classified, for chord detection only
	WinInjectedPending bool // a synthetic Win press is waiting for its release
	PopupMode          bool // CapsLock opens the Win+Space popup instead of sending Alt+Shift
}

// Remapper turns CapsLock into a layout switch key and CapsLock+Left-Shift
// into the real CapsLock toggle. Alt+CapsLock turns the whole thing on and
// off. It implements KeyEventHandler.
//
// Chords are detected from the order of down and up events only; there are
// no timers. HandleKeyEvent is expected to be called from a single hook
// thread, the mutex only protects State readers on other goroutines.
type Remapper struct {
	mu         sync.Mutex
	state      RemapState
	synth      KeySynthesizer
	logManager *LogManager
	onToggle   func(enabled bool)
}

// RemapperOption customizes a Remapper
type RemapperOption func(*Remapper)

// WithLogManager routes remapper diagnostics to lm.
func WithLogManager(lm *LogManager) RemapperOption {
	return func(r *Remapper) {
		r.logManager = lm
	}
}

// WithToggleHook registers fn to be called after Alt+CapsLock flips the
// master switch. fn runs on the hook thread and must not block.
func WithToggleHook(fn func(enabled bool)) RemapperOption {
	return func(r *Remapper) {
		r.onToggle = fn
	}
}

// NewRemapper creates an enabled remapper with all keys released.
func NewRemapper(popupMode bool, synth KeySynthesizer, opts ...RemapperOption) *Remapper {
	r := &Remapper{
		state: RemapState{
			Enabled:   true,
			PopupMode: popupMode,
		},
		synth: synth,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logManager == nil {
		r.logManager = NewDiscardLogManager()
	}
	return r
}

// State returns a snapshot of the current state
func (r *Remapper) State() RemapState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// HandleKeyEvent classifies one key event, synthesizing keys as needed, and
// tells the host whether to swallow the original event.
func (r *Remapper) HandleKeyEvent(ev KeyEvent) Verdict {
	// Our own output must never feed back into the machine.
	if ev.Injected {
		return PassThrough
	}
	if ev.Key != KeyCapsLock && ev.Key != KeyLShift {
		return PassThrough
	}

	r.mu.Lock()
	var verdict Verdict
	toggled := false
	if ev.Key == KeyCapsLock {
		verdict, toggled = r.handleCapsLock(ev.Transition)
	} else {
		verdict = r.handleLeftShift(ev.Transition)
	}
	enabled := r.state.Enabled
	r.mu.Unlock()

	r.logManager.LogKeyEvent(ev, verdict)
	if toggled {
		r.logManager.LogToggle(enabled)
		if r.onToggle != nil {
			r.onToggle(enabled)
		}
	}
	return verdict
}

func (r *Remapper) handleCapsLock(t Transition) (Verdict, bool) {
	st := &r.state

	// Alt+CapsLock
	if t == SysKeyDown && !st.CapsHeld {
		st.CapsHeld = true
		st.Enabled = !st.Enabled
		return Swallow, true
	}

	if t.IsUp() {
		st.CapsHeld = false
		if st.WinInjectedPending {
			st.WinInjectedPending = false
			r.emit(KeyLWin, false)
		}
		if st.ShiftHeld {
			// consumed by the CapsLock+Shift chord
			st.ShiftHeld = false
		} else if st.Enabled && !st.PopupMode {
			r.switchLayout()
		}
	}

	if !st.Enabled {
		return PassThrough, false
	}

	if t == KeyDown && !st.CapsHeld {
		st.CapsHeld = true
		if st.ShiftHeld {
			r.toggleCapsLock()
			return Swallow, false
		}
		if st.PopupMode {
			r.openLanguagePopup()
		}
	}
	return Swallow, false
}

func (r *Remapper) handleLeftShift(t Transition) Verdict {
	st := &r.state

	if t.IsUp() && !st.CapsHeld {
		st.ShiftHeld = false
	}

	if !st.Enabled {
		return PassThrough
	}

	if t == KeyDown && !st.ShiftHeld {
		st.ShiftHeld = true
		if st.CapsHeld {
			r.toggleCapsLock()
			if st.PopupMode {
				r.openLanguagePopup()
			}
			return Swallow
		}
	}
	return PassThrough
}

// ReleasePending lifts a synthetic Win press that is still down. Called on
// shutdown so the OS is not left with a stuck Win key.
func (r *Remapper) ReleasePending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.WinInjectedPending {
		r.state.WinInjectedPending = false
		r.emit(KeyLWin, false)
	}
}

// switchLayout sends Alt+Left-Shift, the classic layout switch hotkey
func (r *Remapper) switchLayout() {
	r.emit(KeyAlt, true)
	r.emit(KeyLShift, true)
	r.emit(KeyLShift, false)
	r.emit(KeyAlt, false)
}

// openLanguagePopup holds Win and taps Space. Win stays down until CapsLock
// is released so the popup stays open.
func (r *Remapper) openLanguagePopup() {
	r.emit(KeyLWin, true)
	r.emit(KeySpace, true)
	r.emit(KeySpace, false)
	r.state.WinInjectedPending = true
}

func (r *Remapper) toggleCapsLock() {
	if err := ToggleCapsLock(r.synth); err != nil {
		r.logManager.LogError("CapsLock toggle failed", err)
	}
}

func (r *Remapper) emit(key Key, down bool) {
	if err := r.synth.Synthesize(key, down); err != nil {
		r.logManager.LogError("Key synthesis failed", err, "key", key.String(), "down", down)
	}
}
