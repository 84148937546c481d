package field

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Sentinel errors for field-space inputs.
var (
	// ErrEmptyConfiguration indicates a configuration with zero fields.
	ErrEmptyConfiguration = errors.New("field: configuration is empty")

	// ErrDimensionMismatch indicates that two configurations, or a
	// configuration and a potential, disagree on the number of fields.
	ErrDimensionMismatch = errors.New("field: dimension mismatch")

	// ErrNonFinite indicates a NaN or ±Inf entry in a configuration.
	ErrNonFinite = errors.New("field: NaN or Inf in configuration")

	// ErrNilPotential indicates that a nil PotentialFunction was supplied.
	ErrNilPotential = errors.New("field: potential function is nil")
)

// Configuration is a point in field space: one real value per field.
type Configuration []float64

// PotentialFunction is the opaque potential the engine tunnels through.
//
// Contract:
//   - Evaluate must be a pure function of its arguments and safe for
//     concurrent use (no cross-call mutation; caches keyed by input only).
//   - NumberOfFields is constant for the lifetime of the value.
//   - ScaleSquaredRelevantToTunneling returns a positive energy scale
//     squared characterising tunneling between the two minima; it seeds the
//     radial length scales of the bounce integration and the thin-wall gate.
type PotentialFunction interface {
	Evaluate(fields Configuration, temperature float64) float64
	NumberOfFields() int
	ScaleSquaredRelevantToTunneling(falseVacuum, trueVacuum Minimum) float64
}

// ThermalPotential is implemented by potentials that can drive the
// finite-temperature strategies.
//
//   - CriticalTemperature returns the temperature above which tunneling from
//     falseVacuum to trueVacuum is impossible (the vacua become degenerate
//     or the barrier disappears).
//   - AdjustMinimum returns the minimum at temperature nearest to m, which
//     is assumed to be a minimum at a different temperature.
type ThermalPotential interface {
	PotentialFunction
	CriticalTemperature(falseVacuum, trueVacuum Minimum) float64
	AdjustMinimum(m Minimum, temperature float64) Minimum
}

// Minimum is a local minimum of a potential at a given temperature.
// Values are immutable by convention: NewMinimum copies its input and
// Fields() hands out a copy.
type Minimum struct {
	fields      Configuration
	potential   float64
	temperature float64
}

// NewMinimum validates fields and builds a Minimum.
// Returns ErrEmptyConfiguration or ErrNonFinite on bad input.
func NewMinimum(fields Configuration, potential, temperature float64) (Minimum, error) {
	if len(fields) == 0 {
		return Minimum{}, ErrEmptyConfiguration
	}
	if !fields.IsFinite() {
		return Minimum{}, ErrNonFinite
	}

	return Minimum{fields: fields.Clone(), potential: potential, temperature: temperature}, nil
}

// MinimumOf evaluates pot at fields and temperature and wraps the result.
func MinimumOf(pot PotentialFunction, fields Configuration, temperature float64) (Minimum, error) {
	if pot == nil {
		return Minimum{}, ErrNilPotential
	}
	if len(fields) != pot.NumberOfFields() {
		return Minimum{}, ErrDimensionMismatch
	}

	return NewMinimum(fields, pot.Evaluate(fields, temperature), temperature)
}

// Fields returns a copy of the field configuration.
func (m Minimum) Fields() Configuration { return m.fields.Clone() }

// At returns the value of field i without copying.
func (m Minimum) At(i int) float64 { return m.fields[i] }

// Len returns the number of fields.
func (m Minimum) Len() int { return len(m.fields) }

// Potential returns the potential value recorded for this minimum.
func (m Minimum) Potential() float64 { return m.potential }

// Temperature returns the temperature at which the minimum was found.
func (m Minimum) Temperature() float64 { return m.temperature }

// LengthSquared returns the squared Euclidean norm of the configuration.
func (m Minimum) LengthSquared() float64 { return m.fields.LengthSquared() }

// Clone returns an independent copy of c. A nil receiver yields nil.
func (c Configuration) Clone() Configuration {
	if c == nil {
		return nil
	}
	out := make(Configuration, len(c))
	copy(out, c)
	return out
}

// Sub returns c - o. Lengths must match; the caller guarantees it.
func (c Configuration) Sub(o Configuration) Configuration {
	return floats.SubTo(make(Configuration, len(c)), c, o)
}

// AddScaled returns c + s*o.
func (c Configuration) AddScaled(s float64, o Configuration) Configuration {
	out := c.Clone()
	out.AddScaledInPlace(s, o)
	return out
}

// AddScaledInPlace performs c += s*o without allocating.
func (c Configuration) AddScaledInPlace(s float64, o Configuration) {
	floats.AddScaled(c, s, o)
}

// Scale returns s*c.
func (c Configuration) Scale(s float64) Configuration {
	return floats.ScaleTo(make(Configuration, len(c)), s, c)
}

// Dot returns the Euclidean inner product of c and o.
func (c Configuration) Dot(o Configuration) float64 { return floats.Dot(c, o) }

// LengthSquared returns c·c.
func (c Configuration) LengthSquared() float64 { return floats.Dot(c, c) }

// Norm returns the Euclidean length of c.
func (c Configuration) Norm() float64 { return floats.Norm(c, 2) }

// Distance returns |c - o|.
func (c Configuration) Distance(o Configuration) float64 { return floats.Distance(c, o, 2) }

// IsFinite reports whether every entry is neither NaN nor ±Inf.
func (c Configuration) IsFinite() bool {
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ValidatePair checks that two minima form a usable tunneling pair for pot:
// both non-empty, same dimension, and matching pot.NumberOfFields().
func ValidatePair(pot PotentialFunction, falseVacuum, trueVacuum Minimum) error {
	if pot == nil {
		return ErrNilPotential
	}
	if falseVacuum.Len() == 0 || trueVacuum.Len() == 0 {
		return ErrEmptyConfiguration
	}
	if falseVacuum.Len() != trueVacuum.Len() || falseVacuum.Len() != pot.NumberOfFields() {
		return ErrDimensionMismatch
	}

	return nil
}
