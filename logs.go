package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/skratchdot/open-golang/open"
)

// openPath is swapped out in tests
var openPath = open.Run

// runLogs lists the log files in dir and optionally opens the directory in
// the desktop file manager.
func runLogs(dir string, openDir bool, stdout io.Writer) error {
	files, err := ListLogFiles(dir)
	if err != nil {
		return fmt.Errorf("list log files: %w", err)
	}

	if len(files) == 0 {
		fmt.Fprintf(stdout, "No log files in %s\n", dir)
	} else {
		fmt.Fprintf(stdout, "Log files in %s:\n", dir)
		for _, file := range files {
			size := int64(-1)
			if info, err := os.Stat(file); err == nil {
				size = info.Size()
			}
			fmt.Fprintf(stdout, "  %s (%d bytes)\n", filepath.Base(file), size)
		}
	}

	if openDir {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		if err := openPath(abs); err != nil {
			return fmt.Errorf("open %s: %w", abs, err)
		}
	}
	return nil
}
