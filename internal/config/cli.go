// Package config declares the root command line of polarstick.
package config

import (
	"github.com/Alia5/polarstick/internal/cmd"
	"github.com/Alia5/polarstick/internal/log"
)

// CLI is the root kong grammar. Values resolve from flags, then environment,
// then the first config file found by configpaths.ConfigCandidatePaths.
type CLI struct {
	ConfigFile string     `name:"config" help:"Path to a JSON, YAML or TOML config file" type:"path" env:"POLARSTICK_CONFIG"`
	Log        log.Config `embed:"" prefix:"log."`

	Compute cmd.Compute       `cmd:"" help:"Convert one axis pair and print the adjusted magnitudes"`
	Batch   cmd.Batch         `cmd:"" help:"Convert every sample of a CSV recording"`
	Report  cmd.Report        `cmd:"" help:"Decode a captured Xbox 360 input state and convert both sticks"`
	Serve   cmd.Serve         `cmd:"" help:"Serve the conversion over a TCP API"`
	Service cmd.Service       `cmd:"" help:"Manage the serve command as a system service"`
	Config  cmd.ConfigCommand `cmd:"" help:"Configuration file helpers"`
}
