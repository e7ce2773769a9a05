package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Alia5/polarstick/polar"
)

// SampleLogger records every evaluated axis pair with its result.
type SampleLogger interface {
	Log(x, y float64, r polar.Result[float64])
}

// sampleLogger implements SampleLogger with thread-safe writes.
type sampleLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewSamples creates a new SampleLogger. If writer is nil, returns a no-op logger.
func NewSamples(w io.Writer) SampleLogger {
	return &sampleLogger{w: w, now: time.Now}
}

// Log emits a single line per sample:
// timestamp, input, radius, theta, quadrant and both magnitudes.
func (s *sampleLogger) Log(x, y float64, r polar.Result[float64]) {
	if s.w == nil {
		return
	}
	line := fmt.Sprintf("%s in=(%g,%g) r=%.4f theta=%.6f q=%d mag=(%d,%d)\n",
		s.now().Format("2006/01/02 15:04:05"),
		x, y,
		r.Polar.Radius,
		r.Polar.Theta,
		r.Quadrant.Number,
		r.Magnitudes.X, r.Magnitudes.Y)

	s.mu.Lock()
	_, _ = s.w.Write([]byte(line))
	s.mu.Unlock()
}
