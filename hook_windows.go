//go:build windows

package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

const (
	whKeyboardLL = 13
	hcAction     = 0
	wmQuit       = 0x0012
)

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// The hook callback cannot carry context, so the one installed hook lives here.
var (
	activeHookMu sync.Mutex
	activeHook   *windowsKeyboardHook
)

var keyboardProcCallback = syscall.NewCallback(lowLevelKeyboardProc)

type windowsKeyboardHook struct {
	handler    KeyEventHandler
	logManager *LogManager
	handle     uintptr
}

// NewKeyboardHook creates the WH_KEYBOARD_LL hook host
func NewKeyboardHook(handler KeyEventHandler, lm *LogManager) KeyboardHook {
	return &windowsKeyboardHook{handler: handler, logManager: lm}
}

// Run installs the hook on a dedicated OS thread and runs its message loop.
// The hook procedure is only ever called on that thread.
func (h *windowsKeyboardHook) Run(ctx context.Context) error {
	activeHookMu.Lock()
	if activeHook != nil {
		activeHookMu.Unlock()
		return errors.New("keyboard hook already installed")
	}
	activeHook = h
	activeHookMu.Unlock()
	defer func() {
		activeHookMu.Lock()
		activeHook = nil
		activeHookMu.Unlock()
	}()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	handle, _, err := procSetWindowsHookExW.Call(whKeyboardLL, keyboardProcCallback, 0, 0)
	if handle == 0 {
		return fmt.Errorf("SetWindowsHookEx: %w", err)
	}
	h.handle = handle
	defer func() {
		procUnhookWindowsHookEx.Call(h.handle)
		h.handle = 0
		h.logManager.LogInfo("Keyboard hook removed")
	}()

	threadID := windows.GetCurrentThreadId()
	h.logManager.LogInfo("Keyboard hook installed", "thread", threadID)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			procPostThreadMessageW.Call(uintptr(threadID), wmQuit, 0, 0)
		case <-stop:
		}
	}()

	var m msg
	for {
		ret, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			return fmt.Errorf("GetMessage: %w", err)
		case 0:
			return ctx.Err()
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

func lowLevelKeyboardProc(nCode uintptr, wParam uintptr, lParam uintptr) uintptr {
	if int32(nCode) == hcAction && activeHook != nil {
		if t, ok := transitionFromMessage(wParam); ok {
			kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
			ev := KeyEvent{
				Key:        Key(kb.VkCode),
				Transition: t,
				Injected:   isInjected(kb.Flags, kb.DwExtraInfo),
			}
			if activeHook.handler.HandleKeyEvent(ev) == Swallow {
				return 1
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return ret
}
