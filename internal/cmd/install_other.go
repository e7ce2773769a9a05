//go:build !linux

package cmd

import (
	"errors"
	"log/slog"
	"runtime"
)

var errServiceUnsupported = errors.New("service installation is only supported with systemd on linux, not " + runtime.GOOS)

func install(*slog.Logger, string, []string) error {
	return errServiceUnsupported
}

func uninstall(*slog.Logger) error {
	return errServiceUnsupported
}
