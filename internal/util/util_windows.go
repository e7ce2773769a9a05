//go:build windows

package util

import (
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procGetConsoleProcessList = kernel32.NewProc("GetConsoleProcessList")
)

// IsRunFromGUI reports whether the console was created for this process
// alone, which is the case when the binary is double-clicked in Explorer.
func IsRunFromGUI() bool {
	pids := make([]uint32, 4)
	n, _, err := procGetConsoleProcessList.Call(uintptr(unsafe.Pointer(&pids[0])), uintptr(len(pids)))
	if n == 0 {
		slog.Debug("GetConsoleProcessList failed", "error", err)
		return false
	}
	return n == 1
}
