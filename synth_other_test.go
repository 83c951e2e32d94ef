//go:build !windows

package main

import (
	"errors"
	"testing"
)

func TestSendInputUnsupportedOffWindows(t *testing.T) {
	if _, err := NewSynthesizer(SynthSendInput); !errors.Is(err, ErrSynthesizerUnsupported) {
		t.Errorf("Expected ErrSynthesizerUnsupported, got %v", err)
	}
}
