//go:build !windows

package main

import "context"

type unsupportedKeyboardHook struct{}

// NewKeyboardHook returns a hook that refuses to start; only Windows exposes
// a low-level hook that can swallow events.
func NewKeyboardHook(handler KeyEventHandler, lm *LogManager) KeyboardHook {
	return unsupportedKeyboardHook{}
}

func (unsupportedKeyboardHook) Run(ctx context.Context) error {
	return ErrHookUnsupported
}
