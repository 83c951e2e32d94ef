//go:build !windows

package main

import "github.com/gen2brain/beeep"

// showErrorDialog raises a desktop alert; there is no modal dialog outside Windows
func showErrorDialog(title, message string) error {
	return beeep.Alert(title, message, "")
}
