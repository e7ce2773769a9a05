package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Alia5/polarstick/internal/server/api"
	"github.com/Alia5/polarstick/polar"
)

// Service manages running `polarstick serve` as a system service.
type Service struct {
	Install   ServiceInstall   `cmd:"" help:"Install and start the serve command as a system service"`
	Uninstall ServiceUninstall `cmd:"" help:"Stop and remove the system service"`
}

// ServiceInstall takes the serve flags and bakes them into the service
// environment, so the installed service converts exactly like `serve` would
// with the same flags.
type ServiceInstall struct {
	ApiServerConfig api.ServerConfig `embed:"" prefix:"api."`
	Polar           polar.Settings   `embed:"" prefix:"polar."`
}

func (s *ServiceInstall) Run(logger *slog.Logger) error {
	if err := s.Polar.Validate(); err != nil {
		return fmt.Errorf("invalid polar settings: %w", err)
	}
	exe, err := currentExecutable()
	if err != nil {
		return err
	}
	env, err := serviceEnvironment(s.ApiServerConfig, s.Polar)
	if err != nil {
		return err
	}
	return install(logger, exe, env)
}

type ServiceUninstall struct{}

func (s *ServiceUninstall) Run(logger *slog.Logger) error {
	return uninstall(logger)
}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

// serviceEnvironment renders every env-tagged field of the given config
// structs as KEY=value, in field order.
func serviceEnvironment(configs ...any) ([]string, error) {
	var env []string
	for _, c := range configs {
		v := reflect.ValueOf(c)
		t := v.Type()
		if t.Kind() != reflect.Struct {
			return nil, fmt.Errorf("service environment: %s is not a struct", t)
		}
		for i := 0; i < t.NumField(); i++ {
			key := t.Field(i).Tag.Get("env")
			if key == "" {
				continue
			}
			val, err := envValue(v.Field(i))
			if err != nil {
				return nil, fmt.Errorf("service environment %s: %w", key, err)
			}
			env = append(env, key+"="+val)
		}
	}
	return env, nil
}

// envValue formats a field the way kong parses it back.
func envValue(v reflect.Value) (string, error) {
	if d, ok := v.Interface().(time.Duration); ok {
		return d.String(), nil
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64), nil
	}
	return "", fmt.Errorf("unsupported kind %s", v.Kind())
}

// quoteServiceArg quotes s for a systemd unit line when it needs it.
func quoteServiceArg(s string) string {
	if !strings.ContainsAny(s, " \t\"\\%") {
		return s
	}
	s = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "%", "%%").Replace(s)
	return `"` + s + `"`
}
