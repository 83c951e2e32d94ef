package main

import (
	"sync"

	"github.com/gen2brain/beeep"
)

type notification struct {
	title   string
	message string
}

// NotificationManager sends desktop notifications from a background
// goroutine so callers on the hook thread never wait on the notification
// service.
type NotificationManager struct {
	enabled    bool
	logManager *LogManager
	queue      chan notification
	notify     func(title, message, icon string) error
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// NewNotificationManager creates a notification manager and starts its worker
func NewNotificationManager(enabled bool, lm *LogManager) *NotificationManager {
	nm := &NotificationManager{
		enabled:    enabled,
		logManager: lm,
		queue:      make(chan notification, 8),
		notify:     beeep.Notify,
	}
	nm.wg.Add(1)
	go nm.run()
	return nm
}

func (nm *NotificationManager) run() {
	defer nm.wg.Done()
	for n := range nm.queue {
		if err := nm.notify(n.title, n.message, ""); err != nil {
			nm.logManager.LogWarning("Failed to send notification", "error", err)
		}
	}
}

// NotifyInfo queues a notification. It is dropped if the queue is full.
func (nm *NotificationManager) NotifyInfo(title, message string) {
	if !nm.enabled {
		return
	}
	select {
	case nm.queue <- notification{title: title, message: message}:
	default:
		nm.logManager.LogDebug("Notification dropped", "title", title)
	}
}

// NotifyToggle announces the master switch state
func (nm *NotificationManager) NotifyToggle(enabled bool) {
	if enabled {
		nm.NotifyInfo("Switchy", "Layout switching enabled")
	} else {
		nm.NotifyInfo("Switchy", "Layout switching disabled")
	}
}

// Close flushes queued notifications and stops the worker
func (nm *NotificationManager) Close() {
	nm.closeOnce.Do(func() {
		close(nm.queue)
	})
	nm.wg.Wait()
}
