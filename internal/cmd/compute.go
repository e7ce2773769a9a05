package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/polarstick/internal/log"
	"github.com/Alia5/polarstick/polar"
)

// Compute evaluates a single axis pair.
type Compute struct {
	X      float64        `arg:"" help:"X axis value (use -- before negative values)"`
	Y      float64        `arg:"" help:"Y axis value"`
	Polar  polar.Settings `embed:"" prefix:"polar."`
	Format string         `help:"Output format" enum:"json,yaml,toml" default:"json" env:"POLARSTICK_FORMAT"`
}

// ComputeOutput is what the compute command prints.
type ComputeOutput struct {
	X        float64               `json:"x" yaml:"x" toml:"x"`
	Y        float64               `json:"y" yaml:"y" toml:"y"`
	Width    string                `json:"width" yaml:"width" toml:"width"`
	Sentinel int                   `json:"sentinel" yaml:"sentinel" toml:"sentinel"`
	Result   polar.Result[float64] `json:"result" yaml:"result" toml:"result"`
}

// Run is called by Kong when the compute command is executed.
func (c *Compute) Run(logger *slog.Logger, samples log.SampleLogger) error {
	return c.Execute(os.Stdout, logger, samples)
}

// Execute evaluates the axis pair and writes the encoded result to w.
func (c *Compute) Execute(w io.Writer, logger *slog.Logger, samples log.SampleLogger) error {
	r, err := c.Polar.Compute(c.X, c.Y)
	if err != nil {
		return fmt.Errorf("compute (%g, %g): %w", c.X, c.Y, err)
	}
	samples.Log(c.X, c.Y, r)
	logger.Debug("Computed axis pair",
		"x", c.X, "y", c.Y,
		"width", c.Polar.Width,
		"quadrant", r.Quadrant.Number)

	return writeEncoded(w, c.Format, ComputeOutput{
		X:        c.X,
		Y:        c.Y,
		Width:    c.Polar.Width,
		Sentinel: c.Polar.Sentinel,
		Result:   r,
	})
}
