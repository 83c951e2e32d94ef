//go:build !windows

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// SingleInstance uses a PID lock file in the temp directory
type SingleInstance struct {
	lockFile *os.File
	lockPath string
}

// NewSingleInstance creates a new SingleInstance manager
func NewSingleInstance(name string) *SingleInstance {
	appName := strings.ToLower(strings.TrimPrefix(name, `Global\`))
	return &SingleInstance{
		lockPath: filepath.Join(os.TempDir(), fmt.Sprintf("%s.lock", appName)),
	}
}

// TryLock creates the lock file. A lock file left behind by a dead process
// is removed and the lock taken over.
func (si *SingleInstance) TryLock() error {
	file, err := os.OpenFile(si.lockPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return si.checkExistingInstance()
		}
		return fmt.Errorf("create lock file: %w", err)
	}

	if _, err := file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		file.Close()
		os.Remove(si.lockPath)
		return fmt.Errorf("write PID to lock file: %w", err)
	}

	si.lockFile = file
	return nil
}

func (si *SingleInstance) checkExistingInstance() error {
	data, err := os.ReadFile(si.lockPath)
	if err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil && isProcessRunning(pid) {
			return ErrAlreadyRunning
		}
	}

	// Stale lock file
	if err := os.Remove(si.lockPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale lock file: %w", err)
	}
	return si.TryLock()
}

func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 only checks that the process exists
	return process.Signal(syscall.Signal(0)) == nil
}

// Release removes the lock file. Safe to call more than once.
func (si *SingleInstance) Release() {
	if si.lockFile == nil {
		return
	}
	si.lockFile.Close()
	si.lockFile = nil
	os.Remove(si.lockPath)
}
