package polar_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/Alia5/polarstick/polar"
	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		theta      float64
		want       int
		start, end float64
	}{
		{0, 4, -math.Pi / 2, 0},
		{math.SmallestNonzeroFloat64, 1, 0, math.Pi / 2},
		{math.Pi / 4, 1, 0, math.Pi / 2},
		{math.Pi / 2, 1, 0, math.Pi / 2},
		{math.Nextafter(math.Pi/2, 4), 2, math.Pi / 2, math.Pi},
		{math.Pi, 2, math.Pi / 2, math.Pi},
		{-math.Pi, 3, -math.Pi, -math.Pi / 2},
		{-3 * math.Pi / 4, 3, -math.Pi, -math.Pi / 2},
		{-math.Pi / 2, 3, -math.Pi, -math.Pi / 2},
		{math.Nextafter(-math.Pi/2, 0), 4, -math.Pi / 2, 0},
		{-math.SmallestNonzeroFloat64, 4, -math.Pi / 2, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.theta), func(t *testing.T) {
			q := polar.Classify(tt.theta)
			assert.Equal(t, tt.want, q.Number)
			assert.Equal(t, tt.start, q.Start)
			assert.Equal(t, tt.end, q.End)
		})
	}
}

func TestClassifyFloat32Boundaries(t *testing.T) {
	assert.Equal(t, 2, polar.Classify(float32(math.Pi)).Number)
	assert.Equal(t, 3, polar.Classify(float32(-math.Pi)).Number)
	assert.Equal(t, 1, polar.Classify(float32(math.Pi/2)).Number)
	assert.Equal(t, 3, polar.Classify(float32(-math.Pi/2)).Number)
	assert.Equal(t, 4, polar.Classify(float32(0)).Number)
}

// Every angle atan2 can produce matches exactly one quadrant.
func TestClassifyCoversCircleOnce(t *testing.T) {
	const steps = 4096
	counts := map[int]int{}
	for i := 0; i <= steps; i++ {
		theta := -math.Pi + 2*math.Pi*float64(i)/steps
		if theta > math.Pi {
			theta = math.Pi
		}
		q := polar.Classify(theta)
		assert.GreaterOrEqual(t, theta, q.Start)
		assert.LessOrEqual(t, theta, q.End)
		counts[q.Number]++
	}
	assert.Len(t, counts, 4)
	for n, c := range counts {
		assert.InDelta(t, steps/4, c, 2, "quadrant %d", n)
	}
}

func TestClassifyOutOfRangePanics(t *testing.T) {
	assert.PanicsWithError(t, "polar: angle 4 is outside every quadrant range", func() {
		polar.Classify(4.0)
	})
	assert.Panics(t, func() {
		polar.Classify(-math.Pi - 1e-9)
	})
	assert.Panics(t, func() {
		polar.Classify(float32(math.NaN()))
	})
}

func TestQuadrantLookupErrorMessage(t *testing.T) {
	err := &polar.QuadrantLookupError{Theta: 3.5}
	assert.EqualError(t, err, "polar: angle 3.5 is outside every quadrant range")
}
