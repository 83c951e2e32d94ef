package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func stubOpenPath(t *testing.T, fn func(string) error) {
	t.Helper()
	orig := openPath
	openPath = fn
	t.Cleanup(func() { openPath = orig })
}

func TestRunLogsEmpty(t *testing.T) {
	dir := t.TempDir()
	stubOpenPath(t, func(string) error {
		t.Error("Open should not be called")
		return nil
	})

	var out bytes.Buffer
	if err := runLogs(dir, false, &out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No log files") {
		t.Errorf("Unexpected output %q", out.String())
	}
}

func TestRunLogsListsAndOpens(t *testing.T) {
	dir := t.TempDir()
	name := "switchy_2024-01-02_03-04-05.log"
	if err := os.WriteFile(filepath.Join(dir, name), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	var opened string
	stubOpenPath(t, func(path string) error {
		opened = path
		return nil
	})

	var out bytes.Buffer
	if err := runLogs(dir, true, &out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), name+" (5 bytes)") {
		t.Errorf("Expected %s in output, got %q", name, out.String())
	}
	if strings.Contains(out.String(), "other.txt") {
		t.Errorf("Unexpected non-log file in output %q", out.String())
	}
	if abs, _ := filepath.Abs(dir); opened != abs {
		t.Errorf("Expected %s to be opened, got %q", abs, opened)
	}
}

func TestRunLogsOpenFailure(t *testing.T) {
	stubOpenPath(t, func(string) error { return errors.New("no file manager") })

	var out bytes.Buffer
	if err := runLogs(t.TempDir(), true, &out); err == nil {
		t.Error("Expected error when the directory cannot be opened")
	}
}
