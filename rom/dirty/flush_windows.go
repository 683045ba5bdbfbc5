//go:build windows

package dirty

import (
	"os"

	"golang.org/x/sys/windows"
)

// fdatasync flushes file buffers using FlushFileBuffers.
// The fullfsync parameter is ignored on Windows.
func fdatasync(f *os.File, _ bool) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}
