package main

// macOS virtual key codes
const (
	keybdCapsLock = 57
	keybdSpace    = 49
)
