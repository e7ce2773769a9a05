package polar

import (
	"fmt"
	"math"
)

// Quadrant is the matched range of the quadrant table together with its
// 1-based number.
type Quadrant[T Float] struct {
	Number int `json:"number" yaml:"number" toml:"number"`
	Start  T   `json:"start" yaml:"start" toml:"start"`
	End    T   `json:"end" yaml:"end" toml:"end"`
}

type quadrantBounds struct {
	start, end float64
	// closedStart includes start in the range. Only Q3 needs it, to take
	// atan2's -π.
	closedStart bool
}

// Scanned in order. Every range is (start, end] except Q3 which is
// [-π, -π/2], so [-π, π] is covered exactly once.
var quadrantTable = [4]quadrantBounds{
	{start: 0, end: math.Pi / 2},
	{start: math.Pi / 2, end: math.Pi},
	{start: -math.Pi, end: -math.Pi / 2, closedStart: true},
	{start: -math.Pi / 2, end: 0},
}

func (b quadrantBounds) contains(theta, start, end float64) bool {
	if theta > end {
		return false
	}
	return theta > start || (b.closedStart && theta == start)
}

// QuadrantLookupError is the panic value raised when an angle matches no
// quadrant. It means the range table or the angle computation is broken.
type QuadrantLookupError struct {
	Theta float64
}

func (e *QuadrantLookupError) Error() string {
	return fmt.Sprintf("polar: angle %v is outside every quadrant range", e.Theta)
}

// Classify returns the quadrant containing theta. Bounds are rounded to
// width T before comparing, so a theta of width T always finds its range.
//
// Classify panics with a *QuadrantLookupError when theta is outside [-π, π]
// (including NaN).
func Classify[T Float](theta T) Quadrant[T] {
	for i, b := range quadrantTable {
		start, end := T(b.start), T(b.end)
		if b.contains(float64(theta), float64(start), float64(end)) {
			return Quadrant[T]{Number: i + 1, Start: start, End: end}
		}
	}
	panic(&QuadrantLookupError{Theta: float64(theta)})
}
