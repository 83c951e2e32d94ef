package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a Windows virtual-key code. The remapper speaks in these codes on
// every platform; synthesizers translate them when they need something else.
type Key uint32

const (
	KeyAlt      Key = 0x12 // VK_MENU
	KeyCapsLock Key = 0x14 // VK_CAPITAL
	KeySpace    Key = 0x20 // VK_SPACE
	KeyLWin     Key = 0x5B // VK_LWIN
	KeyLShift   Key = 0xA0 // VK_LSHIFT
)

// Transition is the kind of key transition reported by the host.
type Transition int

const (
	KeyDown Transition = iota
	KeyUp
	SysKeyDown
	SysKeyUp
)

// IsDown reports whether the transition is a press (plain or with Alt held).
func (t Transition) IsDown() bool {
	return t == KeyDown || t == SysKeyDown
}

// IsUp reports whether the transition is a release.
func (t Transition) IsUp() bool {
	return t == KeyUp || t == SysKeyUp
}

func (t Transition) String() string {
	switch t {
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	case SysKeyDown:
		return "syskeydown"
	case SysKeyUp:
		return "syskeyup"
	default:
		return fmt.Sprintf("transition(%d)", int(t))
	}
}

// ParseTransition converts a transition name into a Transition.
func ParseTransition(s string) (Transition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keydown", "down":
		return KeyDown, nil
	case "keyup", "up":
		return KeyUp, nil
	case "syskeydown", "sysdown":
		return SysKeyDown, nil
	case "syskeyup", "sysup":
		return SysKeyUp, nil
	}
	return 0, fmt.Errorf("unknown transition: %q", s)
}

// Verdict tells the host what to do with the original physical event.
type Verdict int

const (
	PassThrough Verdict = iota
	Swallow
)

func (v Verdict) String() string {
	if v == Swallow {
		return "swallow"
	}
	return "pass"
}

// KeyEvent is one physical (or injected) key transition.
type KeyEvent struct {
	Key        Key
	Transition Transition
	Injected   bool
}

// KeyEventHandler classifies key events delivered by a host hook.
type KeyEventHandler interface {
	HandleKeyEvent(ev KeyEvent) Verdict
}

// keyNames maps human-readable key names to virtual-key codes
var keyNames = map[string]Key{
	"capslock":  KeyCapsLock,
	"caps":      KeyCapsLock,
	"lshift":    KeyLShift,
	"leftshift": KeyLShift,
	"shift":     0x10,
	"rshift":    0xA1,
	"alt":       KeyAlt,
	"menu":      KeyAlt,
	"lwin":      KeyLWin,
	"win":       KeyLWin,
	"space":     KeySpace,
	"ctrl":      0x11,
	"lctrl":     0xA2,
	"enter":     0x0D,
	"tab":       0x09,
	"escape":    0x1B,
	"backspace": 0x08,
	"home":      0x24,
	"end":       0x23,
	"insert":    0x2D,
	"delete":    0x2E,
	"up":        0x26,
	"down":      0x28,
	"left":      0x25,
	"right":     0x27,
	"pageup":    0x21,
	"pagedown":  0x22,
}

// ParseKey returns the virtual-key code for a key name. Single letters and
// digits map to their VK codes, "f1".."f24" to function keys, and a "0x.."
// literal is taken as a raw code.
func ParseKey(name string) (Key, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return 0, fmt.Errorf("empty key name")
	}
	if k, ok := keyNames[s]; ok {
		return k, nil
	}
	if len(s) == 1 {
		c := s[0]
		if c >= 'a' && c <= 'z' {
			return Key(c - 'a' + 'A'), nil
		}
		if c >= '0' && c <= '9' {
			return Key(c), nil
		}
	}
	if strings.HasPrefix(s, "f") {
		if n, err := strconv.Atoi(s[1:]); err == nil && n >= 1 && n <= 24 {
			return Key(0x70 + n - 1), nil
		}
	}
	if strings.HasPrefix(s, "0x") {
		n, err := strconv.ParseUint(s[2:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid key code %q: %w", name, err)
		}
		return Key(n), nil
	}
	return 0, fmt.Errorf("unsupported key: %s", name)
}

func (k Key) String() string {
	switch k {
	case KeyCapsLock:
		return "capslock"
	case KeyLShift:
		return "lshift"
	case KeyAlt:
		return "alt"
	case KeyLWin:
		return "lwin"
	case KeySpace:
		return "space"
	}
	if (k >= 'A' && k <= 'Z') || (k >= '0' && k <= '9') {
		return strings.ToLower(string(rune(k)))
	}
	return fmt.Sprintf("0x%02X", uint32(k))
}
