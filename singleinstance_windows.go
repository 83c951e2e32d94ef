//go:build windows

package main

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// SingleInstance holds a Windows named mutex. The kernel releases it when the
// process exits, even after a crash.
type SingleInstance struct {
	name   string
	handle windows.Handle
}

// NewSingleInstance creates a new SingleInstance manager
func NewSingleInstance(name string) *SingleInstance {
	return &SingleInstance{name: name}
}

// TryLock acquires the named mutex. It returns ErrAlreadyRunning if another
// process created it first.
func (si *SingleInstance) TryLock() error {
	if si.name == "" {
		return errors.New("mutex name is required")
	}
	name, err := windows.UTF16PtrFromString(si.name)
	if err != nil {
		return fmt.Errorf("invalid mutex name %q: %w", si.name, err)
	}
	h, err := windows.CreateMutex(nil, false, name)
	if err == windows.ERROR_ALREADY_EXISTS {
		if h != 0 {
			windows.CloseHandle(h)
		}
		return ErrAlreadyRunning
	}
	if err != nil {
		if h != 0 {
			windows.CloseHandle(h)
		}
		return fmt.Errorf("CreateMutex %q: %w", si.name, err)
	}
	si.handle = h
	return nil
}

// Release closes the mutex handle. Safe to call more than once.
func (si *SingleInstance) Release() {
	if si.handle != 0 {
		windows.CloseHandle(si.handle)
		si.handle = 0
	}
}
