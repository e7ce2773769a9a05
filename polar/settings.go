package polar

import "math"

// Width names the numeric width of a computation selected at runtime.
type Width string

const (
	WidthFloat32 Width = "float32"
	WidthFloat64 Width = "float64"
	WidthPrecise Width = "precise"
)

// Settings is the runtime form of the configuration, loadable from flags,
// environment and config files.
type Settings struct {
	Width       string  `help:"Numeric width of the computation" enum:"float32,float64,precise" default:"float64" env:"POLARSTICK_WIDTH"`
	ZeroPolicy  string  `help:"Handling of input at the origin" enum:"substitute,reject" default:"substitute" env:"POLARSTICK_ZERO_POLICY"`
	Sentinel    int     `help:"Maximum absolute adjusted magnitude" default:"32766" env:"POLARSTICK_SENTINEL"`
	Placeholder float64 `help:"Value substituted for both axes at the origin; 0 selects the smallest normal value of the width" default:"0" env:"POLARSTICK_PLACEHOLDER"`
	Precision   uint    `help:"Mantissa bits for the precise width" default:"166" env:"POLARSTICK_PRECISION"`
	Assignment  string  `help:"Which angular portion feeds the X axis in odd quadrants" enum:"leading,trailing" default:"leading" env:"POLARSTICK_ASSIGNMENT"`
}

// DefaultSettings mirrors the kong defaults above.
func DefaultSettings() Settings {
	return Settings{
		Width:      string(WidthFloat64),
		ZeroPolicy: ZeroSubstitute.String(),
		Sentinel:   DefaultSentinel,
		Precision:  DefaultPrecision,
		Assignment: AssignLeading.String(),
	}
}

func configFor[T Float](s Settings) (Config[T], error) {
	zp, err := ParseZeroPolicy(s.ZeroPolicy)
	if err != nil {
		return Config[T]{}, err
	}
	as, err := ParseAssignment(s.Assignment)
	if err != nil {
		return Config[T]{}, err
	}
	cfg := Config[T]{
		Sentinel:    s.Sentinel,
		ZeroPolicy:  zp,
		Placeholder: T(s.Placeholder),
		Assignment:  as,
	}
	if s.Sentinel > math.MaxInt32 {
		// Stream reports carry magnitudes as int32.
		return Config[T]{}, ErrInvalidSentinel
	}
	if s.Placeholder != 0 && cfg.Placeholder == 0 {
		// Underflowed when narrowed to T.
		return Config[T]{}, ErrInvalidPlaceholder
	}
	return cfg, cfg.Validate()
}

// Validate checks that every field names a known option.
func (s Settings) Validate() error {
	switch Width(s.Width) {
	case WidthFloat32:
		_, err := configFor[float32](s)
		return err
	case WidthFloat64, WidthPrecise, "":
		_, err := configFor[float64](s)
		return err
	default:
		return ErrUnknownWidth
	}
}

// Compute evaluates (x, y) at the configured width and widens the result to
// float64. Input whose radius does not fit the width, including infinite
// axes, fails with ErrRadiusOverflow so results can always be serialized.
func (s Settings) Compute(x, y float64) (Result[float64], error) {
	r, err := s.compute(x, y)
	if err != nil {
		return Result[float64]{}, err
	}
	if math.IsInf(r.Polar.Radius, 0) {
		return Result[float64]{}, ErrRadiusOverflow
	}
	return r, nil
}

func (s Settings) compute(x, y float64) (Result[float64], error) {
	switch Width(s.Width) {
	case WidthFloat32:
		cfg, err := configFor[float32](s)
		if err != nil {
			return Result[float64]{}, err
		}
		r, err := cfg.Compute(float32(x), float32(y))
		if err != nil {
			return Result[float64]{}, err
		}
		return Widen(r), nil
	case WidthFloat64, "":
		cfg, err := configFor[float64](s)
		if err != nil {
			return Result[float64]{}, err
		}
		return cfg.Compute(x, y)
	case WidthPrecise:
		cfg, err := configFor[float64](s)
		if err != nil {
			return Result[float64]{}, err
		}
		return Precise{Config: cfg, Prec: s.Precision}.Compute(x, y)
	default:
		return Result[float64]{}, ErrUnknownWidth
	}
}

// Widen converts a result of any width to float64.
func Widen[T Float](r Result[T]) Result[float64] {
	return Result[float64]{
		Polar: Coordinate[float64]{
			Radius: float64(r.Polar.Radius),
			Theta:  float64(r.Polar.Theta),
		},
		Quadrant: Quadrant[float64]{
			Number: r.Quadrant.Number,
			Start:  float64(r.Quadrant.Start),
			End:    float64(r.Quadrant.End),
		},
		Magnitudes: r.Magnitudes,
	}
}
