//go:build windows

package main

import (
	"fmt"
	"unsafe"
)

const (
	inputKeyboard  = 1
	keyeventfKeyUp = 0x0002
)

// keybdInput mirrors KEYBDINPUT
type keybdInput struct {
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// keyboardInputEvent mirrors INPUT with the keyboard member of the union.
// The trailing padding makes it as large as the MOUSEINPUT member.
type keyboardInputEvent struct {
	Type uint32
	Ki   keybdInput
	_    [8]byte
}

var procSendInput = user32.NewProc("SendInput")

type sendInputSynthesizer struct{}

func newSendInputSynthesizer() (KeySynthesizer, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("SendInput unavailable: %w", err)
	}
	return sendInputSynthesizer{}, nil
}

// Synthesize sends one keyboard INPUT tagged with injectedMarker
func (sendInputSynthesizer) Synthesize(key Key, down bool) error {
	in := keyboardInputEvent{
		Type: inputKeyboard,
		Ki: keybdInput{
			Vk:        uint16(key),
			ExtraInfo: injectedMarker,
		},
	}
	if !down {
		in.Ki.Flags = keyeventfKeyUp
	}
	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if n != 1 {
		return fmt.Errorf("SendInput %s: %w", SyntheticKey{Key: key, Down: down}, err)
	}
	return nil
}
