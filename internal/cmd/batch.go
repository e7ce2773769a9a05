package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/polarstick/internal/log"
	"github.com/Alia5/polarstick/polar"
	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Batch replays recorded axis samples from a CSV file.
type Batch struct {
	Input       string         `help:"CSV file with x,y columns" required:"" type:"existingfile" env:"POLARSTICK_BATCH_INPUT"`
	Output      string         `help:"Write per-sample results as CSV to this file; stdout when empty" env:"POLARSTICK_BATCH_OUTPUT"`
	SkipInvalid bool           `help:"Log and skip samples that fail to compute instead of aborting" default:"false" env:"POLARSTICK_BATCH_SKIP_INVALID"`
	Polar       polar.Settings `embed:"" prefix:"polar."`
}

// Sample is one recorded axis pair.
type Sample struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
}

// SampleResult is one output row.
type SampleResult struct {
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
	Radius     float64 `csv:"radius"`
	Theta      float64 `csv:"theta"`
	Quadrant   int     `csv:"quadrant"`
	RangeStart float64 `csv:"range_start"`
	RangeEnd   float64 `csv:"range_end"`
	XMagnitude int     `csv:"x_magnitude"`
	YMagnitude int     `csv:"y_magnitude"`
}

// Summary aggregates a batch run.
type Summary struct {
	Samples    int
	Skipped    int
	MeanRadius float64
	MaxRadius  float64
	MeanX      float64
	MeanY      float64
	Quadrants  [4]int
}

// Run is called by Kong when the batch command is executed.
func (b *Batch) Run(logger *slog.Logger, samples log.SampleLogger) error {
	in, err := os.Open(b.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	out := io.Writer(os.Stdout)
	if b.Output != "" {
		f, err := os.OpenFile(b.Output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open output: %w", err)
		}
		defer f.Close()
		out = f
	}

	summary, err := b.Execute(in, out, logger, samples)
	if err != nil {
		return err
	}
	logger.Info("Batch complete",
		"input", b.Input,
		"samples", summary.Samples,
		"skipped", summary.Skipped,
		"meanRadius", summary.MeanRadius,
		"maxRadius", summary.MaxRadius,
		"meanX", summary.MeanX,
		"meanY", summary.MeanY,
		"quadrants", summary.Quadrants)
	return nil
}

// Execute replays the CSV samples read from in, writes one result row per
// sample to out and returns the run summary.
func (b *Batch) Execute(in io.Reader, out io.Writer, logger *slog.Logger, samples log.SampleLogger) (Summary, error) {
	var rows []Sample
	if err := gocsv.Unmarshal(in, &rows); err != nil {
		return Summary{}, fmt.Errorf("read samples: %w", err)
	}

	results := make([]SampleResult, 0, len(rows))
	skipped := 0
	for i, s := range rows {
		r, err := b.Polar.Compute(s.X, s.Y)
		if err != nil {
			if b.SkipInvalid && !errors.Is(err, polar.ErrUnknownWidth) {
				logger.Warn("Skipping sample", "row", i+1, "x", s.X, "y", s.Y, "error", err)
				skipped++
				continue
			}
			return Summary{}, fmt.Errorf("sample %d (%g, %g): %w", i+1, s.X, s.Y, err)
		}
		samples.Log(s.X, s.Y, r)
		results = append(results, SampleResult{
			X:          s.X,
			Y:          s.Y,
			Radius:     r.Polar.Radius,
			Theta:      r.Polar.Theta,
			Quadrant:   r.Quadrant.Number,
			RangeStart: r.Quadrant.Start,
			RangeEnd:   r.Quadrant.End,
			XMagnitude: r.Magnitudes.X,
			YMagnitude: r.Magnitudes.Y,
		})
	}

	if err := gocsv.Marshal(&results, out); err != nil {
		return Summary{}, fmt.Errorf("write results: %w", err)
	}
	summary := Summarize(results)
	summary.Skipped = skipped
	return summary, nil
}

// Summarize computes statistics over a set of results.
func Summarize(results []SampleResult) Summary {
	s := Summary{Samples: len(results)}
	if len(results) == 0 {
		return s
	}
	radii := make([]float64, len(results))
	xs := make([]float64, len(results))
	ys := make([]float64, len(results))
	for i, r := range results {
		radii[i] = r.Radius
		xs[i] = float64(r.XMagnitude)
		ys[i] = float64(r.YMagnitude)
		if r.Quadrant >= 1 && r.Quadrant <= 4 {
			s.Quadrants[r.Quadrant-1]++
		}
	}
	s.MeanRadius = stat.Mean(radii, nil)
	s.MaxRadius = floats.Max(radii)
	s.MeanX = stat.Mean(xs, nil)
	s.MeanY = stat.Mean(ys, nil)
	return s
}
