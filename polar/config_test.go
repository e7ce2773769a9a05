package polar_test

import (
	"math"
	"testing"

	"github.com/Alia5/polarstick/polar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidthConstants(t *testing.T) {
	assert.Equal(t, float32(0x1p-23), polar.Epsilon[float32]())
	assert.Equal(t, 0x1p-52, polar.Epsilon[float64]())
	assert.Equal(t, float32(0x1p-126), polar.SmallestNormal[float32]())
	assert.Equal(t, 0x1p-1022, polar.SmallestNormal[float64]())
}

func TestIsNearZero(t *testing.T) {
	assert.True(t, polar.IsNearZero(0.0))
	assert.True(t, polar.IsNearZero(0x1p-52))
	assert.False(t, polar.IsNearZero(1e-10))
	assert.True(t, polar.IsNearZero(float32(1e-7)))
	assert.False(t, polar.IsNearZero(float32(1e-6)))
}

func TestConfigZeroPolicy(t *testing.T) {
	cfg := polar.Defaults[float64]()
	cfg.ZeroPolicy = polar.ZeroReject

	_, err := cfg.Compute(0, 0)
	assert.ErrorIs(t, err, polar.ErrDegenerateInput)

	_, err = cfg.Compute(1e-17, -1e-17)
	assert.ErrorIs(t, err, polar.ErrDegenerateInput)

	r, err := cfg.Compute(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Quadrant.Number)

	cfg.ZeroPolicy = polar.ZeroSubstitute
	r, err = cfg.Compute(0, 0)
	require.NoError(t, err)
	assert.Greater(t, r.Polar.Radius, 0.0)
}

func TestConfigCustomPlaceholder(t *testing.T) {
	cfg := polar.Config[float64]{Placeholder: 1}
	r, err := cfg.Compute(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, r.Polar.Radius, 1e-12)
	assert.InDelta(t, math.Pi/4, r.Polar.Theta, 1e-12)
	assert.Equal(t, 1, r.Quadrant.Number)
}

func TestConfigZeroValueUsesDefaults(t *testing.T) {
	var cfg polar.Config[float32]
	r, err := cfg.Compute(math.MaxInt16*4, math.MaxInt16*4)
	require.NoError(t, err)
	assert.Equal(t, polar.DefaultSentinel, r.Magnitudes.X)
	assert.Equal(t, polar.DefaultSentinel, r.Magnitudes.Y)

	want := polar.Compute[float32](0, 0, polar.DefaultSentinel)
	got, err := cfg.Compute(0, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*polar.Config[float64])
		wantErr error
	}{
		{"defaults", func(*polar.Config[float64]) {}, nil},
		{"negative sentinel", func(c *polar.Config[float64]) { c.Sentinel = -1 }, polar.ErrInvalidSentinel},
		{"negative placeholder", func(c *polar.Config[float64]) { c.Placeholder = -1 }, polar.ErrInvalidPlaceholder},
		{"nan placeholder", func(c *polar.Config[float64]) { c.Placeholder = math.NaN() }, polar.ErrInvalidPlaceholder},
		{"infinite placeholder", func(c *polar.Config[float64]) { c.Placeholder = math.Inf(1) }, polar.ErrInvalidPlaceholder},
		{"unknown zero policy", func(c *polar.Config[float64]) { c.ZeroPolicy = 7 }, polar.ErrUnknownZeroPolicy},
		{"unknown assignment", func(c *polar.Config[float64]) { c.Assignment = 7 }, polar.ErrUnknownAssignment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := polar.Defaults[float64]()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			_, err = cfg.Compute(1, 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigNaNInput(t *testing.T) {
	cfg := polar.Defaults[float64]()
	_, err := cfg.Compute(math.NaN(), 1)
	assert.ErrorIs(t, err, polar.ErrNotANumber)
	_, err = cfg.Compute(1, math.NaN())
	assert.ErrorIs(t, err, polar.ErrNotANumber)
}

func TestZeroPolicyParsing(t *testing.T) {
	for _, p := range []polar.ZeroPolicy{polar.ZeroSubstitute, polar.ZeroReject} {
		got, err := polar.ParseZeroPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := polar.ParseZeroPolicy("ignore")
	assert.ErrorIs(t, err, polar.ErrUnknownZeroPolicy)
}
