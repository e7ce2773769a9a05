//go:build !windows

package util

// IsRunFromGUI reports whether the process owns a console window that will
// close as soon as it exits. Outside Windows the binary is always started
// from a shell.
func IsRunFromGUI() bool {
	return false
}
