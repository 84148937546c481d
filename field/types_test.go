package field_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvtunnel/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constPotential is a trivial PotentialFunction used to exercise validation.
type constPotential struct{ n int }

func (p constPotential) Evaluate(f field.Configuration, _ float64) float64 { return f.LengthSquared() }
func (p constPotential) NumberOfFields() int                               { return p.n }
func (p constPotential) ScaleSquaredRelevantToTunneling(_, _ field.Minimum) float64 {
	return 1
}

// TestNewMinimum_Validation verifies empty and non-finite inputs are rejected.
func TestNewMinimum_Validation(t *testing.T) {
	_, err := field.NewMinimum(nil, 0, 0)
	assert.ErrorIs(t, err, field.ErrEmptyConfiguration)

	_, err = field.NewMinimum(field.Configuration{1, math.NaN()}, 0, 0)
	assert.ErrorIs(t, err, field.ErrNonFinite)

	_, err = field.NewMinimum(field.Configuration{1, math.Inf(-1)}, 0, 0)
	assert.ErrorIs(t, err, field.ErrNonFinite)
}

// TestNewMinimum_Immutable ensures the minimum owns a private copy.
func TestNewMinimum_Immutable(t *testing.T) {
	src := field.Configuration{1, 2}
	m, err := field.NewMinimum(src, -3, 10)
	require.NoError(t, err)

	src[0] = 42
	assert.Equal(t, 1.0, m.At(0), "mutating the source must not leak in")

	out := m.Fields()
	out[1] = 42
	assert.Equal(t, 2.0, m.At(1), "mutating Fields() must not leak in")

	assert.Equal(t, -3.0, m.Potential())
	assert.Equal(t, 10.0, m.Temperature())
	assert.Equal(t, 5.0, m.LengthSquared())
}

// TestMinimumOf evaluates the potential at construction.
func TestMinimumOf(t *testing.T) {
	pot := constPotential{n: 2}
	m, err := field.MinimumOf(pot, field.Configuration{3, 4}, 0)
	require.NoError(t, err)
	assert.Equal(t, 25.0, m.Potential())

	_, err = field.MinimumOf(pot, field.Configuration{3}, 0)
	assert.ErrorIs(t, err, field.ErrDimensionMismatch)

	_, err = field.MinimumOf(nil, field.Configuration{3}, 0)
	assert.ErrorIs(t, err, field.ErrNilPotential)
}

// TestValidatePair covers the dimension checks shared by all strategies.
func TestValidatePair(t *testing.T) {
	pot := constPotential{n: 2}
	a, _ := field.NewMinimum(field.Configuration{0, 0}, 0, 0)
	b, _ := field.NewMinimum(field.Configuration{1, 1}, 0, 0)
	c, _ := field.NewMinimum(field.Configuration{1}, 0, 0)

	assert.NoError(t, field.ValidatePair(pot, a, b))
	assert.ErrorIs(t, field.ValidatePair(pot, a, c), field.ErrDimensionMismatch)
	assert.ErrorIs(t, field.ValidatePair(nil, a, b), field.ErrNilPotential)
	assert.ErrorIs(t, field.ValidatePair(pot, field.Minimum{}, b), field.ErrEmptyConfiguration)
}

// TestConfigurationArithmetic checks the small vector helpers.
func TestConfigurationArithmetic(t *testing.T) {
	a := field.Configuration{1, 2, 2}
	b := field.Configuration{0, 1, -1}

	assert.Equal(t, field.Configuration{1, 1, 3}, a.Sub(b))
	assert.Equal(t, field.Configuration{1, 4, 0}, a.AddScaled(2, b))
	assert.Equal(t, field.Configuration{1, 2, 2}, a, "AddScaled must not mutate")
	assert.Equal(t, field.Configuration{-2, -4, -4}, a.Scale(-2))
	assert.Equal(t, 0.0, a.Dot(b))
	assert.Equal(t, 3.0, a.Norm())
	assert.InDelta(t, math.Sqrt(11), a.Distance(b), 1e-12)

	c := a.Clone()
	c.AddScaledInPlace(1, b)
	assert.Equal(t, field.Configuration{1, 3, 1}, c)
	assert.Nil(t, field.Configuration(nil).Clone())
	assert.True(t, a.IsFinite())
}
