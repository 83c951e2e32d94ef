//go:build !windows

package main

func newSendInputSynthesizer() (KeySynthesizer, error) {
	return nil, ErrSynthesizerUnsupported
}
