package main

import (
	"context"
	"errors"
)

// ErrHookUnsupported is returned when no low-level keyboard hook exists for
// the current platform.
var ErrHookUnsupported = errors.New("low-level keyboard hook not supported on this platform")

// KeyboardHook delivers every keyboard event of the desktop to a handler and
// honours its verdict.
type KeyboardHook interface {
	// Run installs the hook and pumps events until ctx is cancelled.
	Run(ctx context.Context) error
}

// Window messages delivered to a WH_KEYBOARD_LL hook
const (
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
)

const (
	llkhfInjected = 0x00000010

	// injectedMarker goes into dwExtraInfo of every key we send
	injectedMarker uintptr = 0x53574348
)

// transitionFromMessage maps a hook wParam to a Transition
func transitionFromMessage(msg uintptr) (Transition, bool) {
	switch msg {
	case wmKeyDown:
		return KeyDown, true
	case wmKeyUp:
		return KeyUp, true
	case wmSysKeyDown:
		return SysKeyDown, true
	case wmSysKeyUp:
		return SysKeyUp, true
	}
	return 0, false
}

// isInjected reports whether a hook event came from SendInput/keybd_event,
// ours or anybody else's.
func isInjected(flags uint32, extraInfo uintptr) bool {
	return flags&llkhfInjected != 0 || extraInfo == injectedMarker
}
