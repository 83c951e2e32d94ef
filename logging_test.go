package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogManagerWritesFileAndConsole(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	lm, err := NewLogManager(LogOptions{Dir: dir, Console: &console})
	if err != nil {
		t.Fatalf("Failed to create log manager: %v", err)
	}
	lm.LogInfo("Switchy starting", "version", Version)

	path := lm.GetLogFilePath()
	if path == "" {
		t.Fatal("Expected a log file path")
	}
	if filepath.Dir(path) != dir {
		t.Errorf("Expected log file in %s, got %s", dir, path)
	}
	lm.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Switchy starting") {
		t.Errorf("Expected message in log file, got:\n%s", data)
	}
	if !strings.Contains(console.String(), "Switchy starting") {
		t.Errorf("Expected message on console, got:\n%s", console.String())
	}

	files, err := ListLogFiles(dir)
	if err != nil {
		t.Fatalf("Failed to list log files: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("Expected [%s], got %v", path, files)
	}
}

func TestLogManagerJSONConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	lm, err := NewLogManager(LogOptions{Format: "json", Console: &console, NoFile: true})
	if err != nil {
		t.Fatalf("Failed to create log manager: %v", err)
	}
	defer lm.Close()

	if lm.GetLogFilePath() != "" {
		t.Errorf("Expected no log file, got %s", lm.GetLogFilePath())
	}

	lm.LogToggle(false)

	var entry map[string]any
	if err := json.Unmarshal(console.Bytes(), &entry); err != nil {
		t.Fatalf("Expected one JSON line, got %q: %v", console.String(), err)
	}
	if entry["msg"] != "Switchy has been disabled" {
		t.Errorf("Unexpected message: %v", entry["msg"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("Expected INFO level, got %v", entry["level"])
	}
}

func TestLogKeyEventNeedsDebug(t *testing.T) {
	event := KeyEvent{Key: KeyCapsLock, Transition: KeyDown}

	var console bytes.Buffer
	lm, err := NewLogManager(LogOptions{Console: &console, NoFile: true})
	if err != nil {
		t.Fatalf("Failed to create log manager: %v", err)
	}
	lm.LogKeyEvent(event, Swallow)
	if console.Len() != 0 {
		t.Errorf("Expected no output at info level, got %q", console.String())
	}

	console.Reset()
	lm, err = NewLogManager(LogOptions{Level: "debug", Console: &console, NoFile: true})
	if err != nil {
		t.Fatalf("Failed to create log manager: %v", err)
	}
	lm.LogKeyEvent(event, Swallow)
	out := console.String()
	for _, want := range []string{"Key event", "key=capslock", "transition=keydown", "verdict=swallow"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in %q", want, out)
		}
	}
}

func TestLogErrorIncludesError(t *testing.T) {
	var console bytes.Buffer
	lm, err := NewLogManager(LogOptions{Console: &console, NoFile: true})
	if err != nil {
		t.Fatalf("Failed to create log manager: %v", err)
	}
	lm.LogError("Key synthesis failed", ErrSynthesizerUnsupported, "key", "alt")
	out := console.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "key=alt") {
		t.Errorf("Unexpected output %q", out)
	}
	if !strings.Contains(out, ErrSynthesizerUnsupported.Error()) {
		t.Errorf("Expected error text in %q", out)
	}
}

func TestNewLogManagerInvalidOptions(t *testing.T) {
	if _, err := NewLogManager(LogOptions{Level: "loud", NoFile: true}); err == nil {
		t.Error("Expected error for unknown level")
	}
	if _, err := NewLogManager(LogOptions{Format: "xml", NoFile: true}); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestNewLogManagerFallsBackToConsole(t *testing.T) {
	// A regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "logs")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	var console bytes.Buffer
	lm, err := NewLogManager(LogOptions{Dir: blocker, Console: &console})
	if err != nil {
		t.Fatalf("Expected console fallback, got error: %v", err)
	}
	defer lm.Close()

	if lm.GetLogFilePath() != "" {
		t.Errorf("Expected no log file, got %s", lm.GetLogFilePath())
	}
	if !strings.Contains(console.String(), "Failed to open log file") {
		t.Errorf("Expected fallback warning, got %q", console.String())
	}
}
