package main

import (
	"errors"
	"sync"
	"testing"
)

type sentNotification struct {
	title, message string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (f *fakeNotifier) notify(title, message, icon string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{title, message})
	return f.err
}

func (f *fakeNotifier) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, n := range f.sent {
		out = append(out, n.message)
	}
	return out
}

func newTestNotificationManager(enabled bool, fake *fakeNotifier, start bool) *NotificationManager {
	nm := &NotificationManager{
		enabled:    enabled,
		logManager: NewDiscardLogManager(),
		queue:      make(chan notification, 8),
		notify:     fake.notify,
	}
	if start {
		nm.wg.Add(1)
		go nm.run()
	}
	return nm
}

func TestNotifyToggle(t *testing.T) {
	fake := &fakeNotifier{}
	nm := newTestNotificationManager(true, fake, true)

	nm.NotifyToggle(false)
	nm.NotifyToggle(true)
	nm.Close()

	got := fake.messages()
	want := []string{"Layout switching disabled", "Layout switching enabled"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %q, got %q", want[i], got[i])
		}
	}
}

func TestNotifyDisabled(t *testing.T) {
	fake := &fakeNotifier{}
	nm := newTestNotificationManager(false, fake, true)

	nm.NotifyToggle(true)
	nm.Close()

	if got := fake.messages(); len(got) != 0 {
		t.Errorf("Expected no notifications, got %v", got)
	}
}

func TestNotifyDropsWhenQueueFull(t *testing.T) {
	fake := &fakeNotifier{}
	// No worker: nothing drains the queue
	nm := newTestNotificationManager(true, fake, false)

	for i := 0; i < cap(nm.queue)+3; i++ {
		nm.NotifyInfo("Switchy", "toggle")
	}
	if len(nm.queue) != cap(nm.queue) {
		t.Errorf("Expected a full queue of %d, got %d", cap(nm.queue), len(nm.queue))
	}

	nm.wg.Add(1)
	go nm.run()
	nm.Close()
	if got := len(fake.messages()); got != cap(nm.queue) {
		t.Errorf("Expected %d notifications, got %d", cap(nm.queue), got)
	}
}

func TestNotifyErrorDoesNotStopWorker(t *testing.T) {
	fake := &fakeNotifier{err: errors.New("no notification daemon")}
	nm := newTestNotificationManager(true, fake, true)

	nm.NotifyInfo("Switchy", "one")
	nm.NotifyInfo("Switchy", "two")
	nm.Close()
	nm.Close()

	if got := len(fake.messages()); got != 2 {
		t.Errorf("Expected 2 attempts, got %d", got)
	}
}
