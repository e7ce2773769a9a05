// Package polar turns a pair of thumbstick axis readings into polar
// coordinates, the quadrant the angle falls in, and a pair of per-axis
// magnitudes bounded by a sentinel.
//
// The pipeline is pure: every call is independent and safe to run from any
// number of goroutines.
package polar

import (
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats/scalar"
)

// DefaultSentinel is the default bound for adjusted magnitudes.
const DefaultSentinel = 32766

// Float is the numeric width the pipeline computes in.
type Float interface {
	constraints.Float
}

// Number is any raw axis value type, e.g. the int16 values of an XInput stick.
type Number interface {
	constraints.Integer | constraints.Float
}

// Coordinate is a polar coordinate. Radius is never negative and Theta is in
// radians within [-π, π].
type Coordinate[T Float] struct {
	Radius T `json:"radius" yaml:"radius" toml:"radius"`
	Theta  T `json:"theta" yaml:"theta" toml:"theta"`
}

// Magnitudes are the adjusted per-axis magnitudes, always within
// [-sentinel, sentinel].
type Magnitudes struct {
	X int `json:"x" yaml:"x" toml:"x"`
	Y int `json:"y" yaml:"y" toml:"y"`
}

// Result aggregates everything computed for one axis pair.
type Result[T Float] struct {
	Polar      Coordinate[T] `json:"polar" yaml:"polar" toml:"polar"`
	Quadrant   Quadrant[T]   `json:"quadrant" yaml:"quadrant" toml:"quadrant"`
	Magnitudes Magnitudes    `json:"magnitudes" yaml:"magnitudes" toml:"magnitudes"`
}

// Cartesian converts the polar coordinate back to x and y.
func (r Result[T]) Cartesian() (x, y T) {
	rad, theta := float64(r.Polar.Radius), float64(r.Polar.Theta)
	return T(rad * math.Cos(theta)), T(rad * math.Sin(theta))
}

// Bisector returns the angle halfway through the matched quadrant range.
func (r Result[T]) Bisector() T {
	return (r.Quadrant.End-r.Quadrant.Start)/2 + r.Quadrant.Start
}

// Matches reports whether the result converts back to (x, y) within tol.
func (r Result[T]) Matches(x, y, tol float64) bool {
	cx, cy := r.Cartesian()
	return scalar.EqualWithinAbs(float64(cx), x, tol) && scalar.EqualWithinAbs(float64(cy), y, tol)
}

// Compute runs the full pipeline with the default configuration for width T
// and the given sentinel. A non-positive sentinel selects DefaultSentinel.
//
// Compute panics with a *QuadrantLookupError if the angle falls outside the
// quadrant table, which only happens for NaN input. Use Config.Compute to get
// an error instead.
func Compute[T Float](x, y T, sentinel int) Result[T] {
	cfg := Defaults[T]()
	if sentinel > 0 {
		cfg.Sentinel = sentinel
	}
	return cfg.evaluate(x, y)
}

// ComputeAxes converts raw axis values of any numeric type to width T and
// runs Compute.
func ComputeAxes[T Float, V Number](x, y V, sentinel int) Result[T] {
	return Compute(T(x), T(y), sentinel)
}

// ToPolar converts (x, y) to a polar coordinate. When both axes are within
// twice the machine epsilon of zero, placeholder is used for both so the
// angle stays defined.
func ToPolar[T Float](x, y, placeholder T) Coordinate[T] {
	if IsNearZero(x) && IsNearZero(y) {
		x, y = placeholder, placeholder
	}
	fx, fy := float64(x), float64(y)
	// Hypot keeps the radius of a tiny placeholder from underflowing to zero.
	return Coordinate[T]{
		Radius: T(math.Hypot(fx, fy)),
		Theta:  T(math.Atan2(fy, fx)),
	}
}

// IsNearZero reports whether |v| <= 2*Epsilon[T]().
func IsNearZero[T Float](v T) bool {
	return math.Abs(float64(v)) <= float64(2*Epsilon[T]())
}

func isNaN[T Float](v T) bool {
	return math.IsNaN(float64(v))
}
