//go:build windows

package main

import "golang.org/x/sys/windows"

// showErrorDialog blocks until the user dismisses a MessageBox
func showErrorDialog(title, message string) error {
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	m, err := windows.UTF16PtrFromString(message)
	if err != nil {
		return err
	}
	_, err = windows.MessageBox(0, m, t, windows.MB_OK|windows.MB_ICONERROR)
	return err
}
