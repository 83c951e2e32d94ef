package main

import "github.com/micmonay/keybd_event"

const (
	keybdCapsLock = keybd_event.VK_CAPSLOCK
	keybdSpace    = keybd_event.VK_SPACE
)
