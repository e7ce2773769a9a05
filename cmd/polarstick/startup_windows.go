//go:build windows

package main

import (
	"log/slog"
	"os"

	"github.com/Alia5/polarstick/internal/util"
)

func init() {
	if util.IsRunFromGUI() {
		args := os.Args
		if len(args) < 2 {
			slog.Info("Detected GUI startup, injecting 'serve' argument")
			slog.Warn("Run from a CLI for more options!")
			os.Args = append([]string{args[0], "serve"}, args[1:]...)
		}
	}
}
