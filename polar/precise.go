package polar

import (
	"math"
	"math/big"
)

// DefaultPrecision is the mantissa size in bits used by the precise width,
// roughly 50 decimal digits.
const DefaultPrecision uint = 166

// Precise evaluates the radius and the angular portions with math/big at
// Prec bits. The angle itself comes from math.Atan2, so it is float64
// accurate; the extra precision protects the squares and products of large
// axis values.
type Precise struct {
	Config[float64]
	Prec uint
}

// NewPrecise returns a Precise with default configuration and precision.
func NewPrecise() Precise {
	return Precise{Config: Defaults[float64](), Prec: DefaultPrecision}
}

// Compute mirrors Config.Compute for the precise width.
func (p Precise) Compute(x, y float64) (Result[float64], error) {
	if err := p.Validate(); err != nil {
		return Result[float64]{}, err
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return Result[float64]{}, ErrNotANumber
	}
	if p.ZeroPolicy == ZeroReject && IsNearZero(x) && IsNearZero(y) {
		return Result[float64]{}, ErrDegenerateInput
	}
	cfg := p.withDefaults()
	// big.Float panics on Inf*0, leave infinities to the float64 path.
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return cfg.evaluate(x, y), nil
	}
	prec := p.Prec
	if prec == 0 {
		prec = DefaultPrecision
	}

	if IsNearZero(x) && IsNearZero(y) {
		x, y = cfg.Placeholder, cfg.Placeholder
	}
	bx := new(big.Float).SetPrec(prec).SetFloat64(x)
	by := new(big.Float).SetPrec(prec).SetFloat64(y)
	sum := new(big.Float).SetPrec(prec).Mul(bx, bx)
	sum.Add(sum, new(big.Float).SetPrec(prec).Mul(by, by))
	radius := new(big.Float).SetPrec(prec).Sqrt(sum)

	theta := math.Atan2(y, x)
	q := Classify(theta)
	bt := new(big.Float).SetPrec(prec).SetFloat64(theta)

	red := new(big.Float).SetPrec(prec).Sub(bt, big.NewFloat(q.Start))
	red.Mul(red, radius)
	black := new(big.Float).SetPrec(prec).Sub(big.NewFloat(q.End), bt)
	black.Mul(black, radius)

	odd := q.Number%2 == 1
	if cfg.Assignment == AssignTrailing {
		odd = !odd
	}
	bxp, byp := black, red
	if odd {
		bxp, byp = red, black
	}

	r, _ := radius.Float64()
	return Result[float64]{
		Polar:    Coordinate[float64]{Radius: r, Theta: theta},
		Quadrant: q,
		Magnitudes: Magnitudes{
			X: trimBig(bxp, cfg.Sentinel),
			Y: trimBig(byp, cfg.Sentinel),
		},
	}, nil
}

func trimBig(v *big.Float, sentinel int) int {
	s := new(big.Float).SetInt64(int64(sentinel))
	if v.Cmp(s) >= 0 {
		return sentinel
	}
	if v.Cmp(s.Neg(s)) <= 0 {
		return -sentinel
	}
	i, _ := v.Int64()
	return int(i)
}
