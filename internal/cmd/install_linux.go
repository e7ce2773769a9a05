//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const serviceName = "polarstick.service"

var (
	servicePath = "/etc/systemd/system/" + serviceName
	systemctl   = runSystemctl
)

// systemdUnit is the service definition running `polarstick serve`.
type systemdUnit struct {
	Exe         string
	Environment []string
}

func (u systemdUnit) String() string {
	var b strings.Builder
	b.WriteString("[Unit]\n")
	b.WriteString("Description=polarstick stick conversion API\n")
	b.WriteString("After=network-online.target\n")
	b.WriteString("Wants=network-online.target\n\n")
	b.WriteString("[Service]\n")
	b.WriteString("Type=simple\n")
	fmt.Fprintf(&b, "ExecStart=%s serve\n", quoteServiceArg(u.Exe))
	fmt.Fprintf(&b, "WorkingDirectory=%s\n", quoteServiceArg(filepath.Dir(u.Exe)))
	for _, kv := range u.Environment {
		fmt.Fprintf(&b, "Environment=%s\n", quoteServiceArg(kv))
	}
	b.WriteString("Restart=on-failure\n\n")
	b.WriteString("[Install]\n")
	b.WriteString("WantedBy=multi-user.target\n")
	return b.String()
}

func install(logger *slog.Logger, exe string, env []string) error {
	unit := systemdUnit{Exe: exe, Environment: env}
	if err := os.WriteFile(servicePath, []byte(unit.String()), 0o644); err != nil {
		return fmt.Errorf("write unit: %w", err)
	}
	for _, step := range [][]string{
		{"daemon-reload"},
		{"enable", serviceName},
		{"restart", serviceName},
	} {
		if err := systemctl(step...); err != nil {
			return err
		}
	}
	logger.Info("polarstick systemd service installed", "path", servicePath, "exe", exe, "settings", len(env))
	return nil
}

// uninstall keeps going after a failed step so a half-installed service is
// still removed as far as possible.
func uninstall(logger *slog.Logger) error {
	var errs []error
	for _, step := range [][]string{{"stop", serviceName}, {"disable", serviceName}} {
		errs = append(errs, systemctl(step...))
	}
	if err := os.Remove(servicePath); err != nil && !os.IsNotExist(err) {
		errs = append(errs, err)
	}
	errs = append(errs, systemctl("daemon-reload"))
	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("polarstick systemd service removed", "path", servicePath)
	return nil
}

func runSystemctl(args ...string) error {
	out, err := exec.Command("systemctl", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
