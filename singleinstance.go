package main

import "errors"

// ErrAlreadyRunning is returned by TryLock when another instance holds the lock.
var ErrAlreadyRunning = errors.New("another instance of Switchy is already running")

// singleInstanceName is the system-wide name of the instance lock
const singleInstanceName = `Global\Switchy`
