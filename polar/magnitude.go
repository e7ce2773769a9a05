package polar

import "math"

// Assignment selects which angular portion feeds which axis.
type Assignment int

const (
	// AssignLeading gives the portion swept from the range start to theta to
	// X in odd quadrants and to Y in even quadrants.
	AssignLeading Assignment = iota
	// AssignTrailing swaps the portions, so the axis theta is closer to
	// receives the larger magnitude.
	AssignTrailing
)

func (a Assignment) String() string {
	switch a {
	case AssignLeading:
		return "leading"
	case AssignTrailing:
		return "trailing"
	default:
		return "unknown"
	}
}

// ParseAssignment parses the names returned by Assignment.String.
func ParseAssignment(s string) (Assignment, error) {
	switch s {
	case "leading", "":
		return AssignLeading, nil
	case "trailing":
		return AssignTrailing, nil
	default:
		return 0, ErrUnknownAssignment
	}
}

// AdjustMagnitudes scales the radius by the angle swept on each side of
// theta within its quadrant and trims both results to [-sentinel, sentinel].
func AdjustMagnitudes[T Float](c Coordinate[T], q Quadrant[T], sentinel int, a Assignment) Magnitudes {
	red := (c.Theta - q.Start) * c.Radius
	black := (q.End - c.Theta) * c.Radius

	odd := q.Number%2 == 1
	if a == AssignTrailing {
		odd = !odd
	}
	x, y := black, red
	if odd {
		x, y = red, black
	}
	return Magnitudes{
		X: TrimToSentinel(x, sentinel),
		Y: TrimToSentinel(y, sentinel),
	}
}

// TrimToSentinel truncates v toward zero and clamps it to
// [-sentinel, sentinel]. Clamping happens on the float so huge values never
// overflow the integer conversion. NaN trims to 0.
func TrimToSentinel[T Float](v T, sentinel int) int {
	f, s := float64(v), float64(sentinel)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= s:
		return sentinel
	case f <= -s:
		return -sentinel
	}
	return int(f)
}
