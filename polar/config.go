package polar

import (
	"math"
	"reflect"
)

// ZeroPolicy decides what happens when both axes are at the origin.
type ZeroPolicy int

const (
	// ZeroSubstitute replaces both axes with the placeholder and computes
	// normally.
	ZeroSubstitute ZeroPolicy = iota
	// ZeroReject makes Config.Compute return ErrDegenerateInput.
	ZeroReject
)

func (p ZeroPolicy) String() string {
	switch p {
	case ZeroSubstitute:
		return "substitute"
	case ZeroReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseZeroPolicy parses the names returned by ZeroPolicy.String.
func ParseZeroPolicy(s string) (ZeroPolicy, error) {
	switch s {
	case "substitute", "":
		return ZeroSubstitute, nil
	case "reject":
		return ZeroReject, nil
	default:
		return 0, ErrUnknownZeroPolicy
	}
}

var (
	epsilon32        = float64(math.Nextafter32(1, 2) - 1)
	epsilon64        = math.Nextafter(1, 2) - 1
	smallestNormal32 = 0x1p-126
	smallestNormal64 = 0x1p-1022
)

func is32[T Float]() bool {
	return reflect.TypeFor[T]().Bits() == 32
}

// Epsilon returns the machine epsilon of width T.
func Epsilon[T Float]() T {
	if is32[T]() {
		return T(epsilon32)
	}
	return T(epsilon64)
}

// SmallestNormal returns the smallest positive normal value of width T, the
// default origin placeholder.
func SmallestNormal[T Float]() T {
	if is32[T]() {
		return T(smallestNormal32)
	}
	return T(smallestNormal64)
}

// Config parameterizes the pipeline for width T. Zero-valued Sentinel and
// Placeholder select their defaults.
type Config[T Float] struct {
	Sentinel    int
	ZeroPolicy  ZeroPolicy
	Placeholder T
	Assignment  Assignment
}

// Defaults returns the default configuration for width T.
func Defaults[T Float]() Config[T] {
	return Config[T]{
		Sentinel:    DefaultSentinel,
		ZeroPolicy:  ZeroSubstitute,
		Placeholder: SmallestNormal[T](),
		Assignment:  AssignLeading,
	}
}

// Validate checks the configuration without applying defaults.
func (c Config[T]) Validate() error {
	if c.Sentinel < 0 {
		return ErrInvalidSentinel
	}
	p := float64(c.Placeholder)
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidPlaceholder
	}
	switch c.ZeroPolicy {
	case ZeroSubstitute, ZeroReject:
	default:
		return ErrUnknownZeroPolicy
	}
	switch c.Assignment {
	case AssignLeading, AssignTrailing:
	default:
		return ErrUnknownAssignment
	}
	return nil
}

func (c Config[T]) withDefaults() Config[T] {
	if c.Sentinel == 0 {
		c.Sentinel = DefaultSentinel
	}
	if c.Placeholder == 0 {
		c.Placeholder = SmallestNormal[T]()
	}
	return c
}

// Compute runs the pipeline for (x, y). It returns ErrNotANumber for NaN
// input and ErrDegenerateInput for origin input under ZeroReject.
func (c Config[T]) Compute(x, y T) (Result[T], error) {
	if err := c.Validate(); err != nil {
		return Result[T]{}, err
	}
	if isNaN(x) || isNaN(y) {
		return Result[T]{}, ErrNotANumber
	}
	if c.ZeroPolicy == ZeroReject && IsNearZero(x) && IsNearZero(y) {
		return Result[T]{}, ErrDegenerateInput
	}
	return c.withDefaults().evaluate(x, y), nil
}

func (c Config[T]) evaluate(x, y T) Result[T] {
	p := ToPolar(x, y, c.Placeholder)
	q := Classify(p.Theta)
	return Result[T]{
		Polar:      p,
		Quadrant:   q,
		Magnitudes: AdjustMagnitudes(p, q, c.Sentinel, c.Assignment),
	}
}
