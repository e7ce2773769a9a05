package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Alia5/polarstick/device/xbox360"
	"github.com/Alia5/polarstick/internal/log"
	"github.com/Alia5/polarstick/polar"
)

// Report decodes a captured Xbox 360 input state and evaluates both sticks.
type Report struct {
	Hex    string         `arg:"" help:"Hex encoded 20-byte input state; whitespace is ignored"`
	Polar  polar.Settings `embed:"" prefix:"polar."`
	Format string         `help:"Output format" enum:"json,yaml,toml" default:"json" env:"POLARSTICK_FORMAT"`
}

// ReportOutput is what the report command prints.
type ReportOutput struct {
	Buttons []string              `json:"buttons" yaml:"buttons" toml:"buttons"`
	LT      uint8                 `json:"lt" yaml:"lt" toml:"lt"`
	RT      uint8                 `json:"rt" yaml:"rt" toml:"rt"`
	Left    polar.Result[float64] `json:"left" yaml:"left" toml:"left"`
	Right   polar.Result[float64] `json:"right" yaml:"right" toml:"right"`
}

// Run is called by Kong when the report command is executed.
func (r *Report) Run(logger *slog.Logger, samples log.SampleLogger) error {
	return r.Execute(os.Stdout, logger, samples)
}

// Execute decodes the hex input state and writes both sticks to w.
func (r *Report) Execute(w io.Writer, logger *slog.Logger, samples log.SampleLogger) error {
	data, err := hex.DecodeString(strings.Join(strings.Fields(r.Hex), ""))
	if err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}
	var st xbox360.InputState
	if err := st.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("decode input state (%d bytes): %w", len(data), err)
	}
	if len(data) > xbox360.InputStateSize {
		logger.Warn("Ignoring trailing report bytes", "extra", len(data)-xbox360.InputStateSize)
	}

	left, err := st.LeftStick(r.Polar)
	if err != nil {
		return fmt.Errorf("left stick: %w", err)
	}
	samples.Log(float64(st.LX), float64(st.LY), left)
	right, err := st.RightStick(r.Polar)
	if err != nil {
		return fmt.Errorf("right stick: %w", err)
	}
	samples.Log(float64(st.RX), float64(st.RY), right)

	return writeEncoded(w, r.Format, ReportOutput{
		Buttons: st.PressedButtons(),
		LT:      st.LT,
		RT:      st.RT,
		Left:    left,
		Right:   right,
	})
}
