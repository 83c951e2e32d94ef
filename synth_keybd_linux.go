package main

// evdev key codes
const (
	keybdCapsLock = 58
	keybdSpace    = 57
)
