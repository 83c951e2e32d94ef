//go:build !windows

package main

type unknownVersionProbe struct{}

// NewOsProbe returns a probe that knows no Windows version
func NewOsProbe() OsProbe {
	return unknownVersionProbe{}
}

func (unknownVersionProbe) MajorVersion() int {
	return 0
}
