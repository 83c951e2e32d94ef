//go:build windows

package main

import "golang.org/x/sys/windows"

type windowsVersionProbe struct{}

// NewOsProbe returns a probe backed by RtlGetVersion, which is not subject
// to the manifest-based version lie of GetVersionEx.
func NewOsProbe() OsProbe {
	return windowsVersionProbe{}
}

func (windowsVersionProbe) MajorVersion() int {
	info := windows.RtlGetVersion()
	if info == nil {
		return 0
	}
	return int(info.MajorVersion)
}
