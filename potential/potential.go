package potential

import (
	"errors"
	"math"

	"github.com/katalvlaran/lvtunnel/field"
)

// ErrBadParameter indicates a non-positive coupling or vacuum expectation value.
var ErrBadParameter = errors.New("potential: parameters must be finite and positive")

// tilt is the cubic g(φ) = (φ³ − 3v²φ)/(2v³): g(−v)=1, g(v)=−1, g'(±v)=0.
func tilt(phi, v float64) float64 {
	return (phi*phi*phi - 3*v*v*phi) / (2 * v * v * v)
}

// TiltedDoubleWell is a one-field double well with false vacuum at −V and
// true vacuum at +V, separated in depth by Epsilon.
type TiltedDoubleWell struct {
	Lambda  float64 // quartic coupling λ
	V       float64 // vacuum expectation value v
	Epsilon float64 // V(−v) − V(+v)
}

// NewTiltedDoubleWell validates and builds a TiltedDoubleWell.
// Epsilon may be zero (degenerate) or negative (roles swapped).
func NewTiltedDoubleWell(lambda, v, epsilon float64) (TiltedDoubleWell, error) {
	if !(lambda > 0) || !(v > 0) || math.IsInf(lambda, 0) || math.IsInf(v, 0) || math.IsNaN(epsilon) {
		return TiltedDoubleWell{}, ErrBadParameter
	}
	return TiltedDoubleWell{Lambda: lambda, V: v, Epsilon: epsilon}, nil
}

// Evaluate returns V(φ). The temperature is ignored.
func (d TiltedDoubleWell) Evaluate(f field.Configuration, _ float64) float64 {
	phi := f[0]
	w := phi*phi - d.V*d.V
	return d.Lambda*w*w + 0.5*d.Epsilon*tilt(phi, d.V)
}

// NumberOfFields returns 1.
func (d TiltedDoubleWell) NumberOfFields() int { return 1 }

// ScaleSquaredRelevantToTunneling returns the squared field distance
// between the two minima.
func (d TiltedDoubleWell) ScaleSquaredRelevantToTunneling(falseVacuum, trueVacuum field.Minimum) float64 {
	return scaleSquared(falseVacuum, trueVacuum)
}

// Vacua returns the false (−v) and true (+v) minima at temperature zero.
func (d TiltedDoubleWell) Vacua() (falseVacuum, trueVacuum field.Minimum) {
	falseVacuum, _ = field.MinimumOf(d, field.Configuration{-d.V}, 0)
	trueVacuum, _ = field.MinimumOf(d, field.Configuration{d.V}, 0)
	return falseVacuum, trueVacuum
}

// CurvedValley is a two-field potential
//
//	V(x, y) = W(x) + ½κ(y − b(1 − x²))²
//
// where W is a TiltedDoubleWell in x. The minima sit at (±v, 0) when v = 1;
// for general v the valley is b(1 − x²/v²).
type CurvedValley struct {
	Well  TiltedDoubleWell
	Kappa float64 // transverse stiffness κ
	Bend  float64 // valley displacement b at x = 0
}

// NewCurvedValley validates and builds a CurvedValley.
func NewCurvedValley(well TiltedDoubleWell, kappa, bend float64) (CurvedValley, error) {
	if !(kappa > 0) || math.IsNaN(bend) || math.IsInf(bend, 0) {
		return CurvedValley{}, ErrBadParameter
	}
	return CurvedValley{Well: well, Kappa: kappa, Bend: bend}, nil
}

// Evaluate returns V(x, y). The temperature is ignored.
func (c CurvedValley) Evaluate(f field.Configuration, t float64) float64 {
	x, y := f[0], f[1]
	v := c.Well.V
	d := y - c.Bend*(1-x*x/(v*v))
	return c.Well.Evaluate(field.Configuration{x}, t) + 0.5*c.Kappa*d*d
}

// NumberOfFields returns 2.
func (c CurvedValley) NumberOfFields() int { return 2 }

// ScaleSquaredRelevantToTunneling returns the squared field distance
// between the two minima.
func (c CurvedValley) ScaleSquaredRelevantToTunneling(falseVacuum, trueVacuum field.Minimum) float64 {
	return scaleSquared(falseVacuum, trueVacuum)
}

// Vacua returns the false (−v, 0) and true (+v, 0) minima.
func (c CurvedValley) Vacua() (falseVacuum, trueVacuum field.Minimum) {
	falseVacuum, _ = field.MinimumOf(c, field.Configuration{-c.Well.V, 0}, 0)
	trueVacuum, _ = field.MinimumOf(c, field.Configuration{c.Well.V, 0}, 0)
	return falseVacuum, trueVacuum
}

// ThermalDoubleWell is a TiltedDoubleWell whose tilt is ε − αT². Above
// Tc = sqrt(ε/α) the would-be true vacuum is no longer deeper.
type ThermalDoubleWell struct {
	Lambda  float64
	V       float64
	Epsilon float64
	Alpha   float64
}

// NewThermalDoubleWell validates and builds a ThermalDoubleWell.
func NewThermalDoubleWell(lambda, v, epsilon, alpha float64) (ThermalDoubleWell, error) {
	if !(lambda > 0) || !(v > 0) || !(epsilon > 0) || !(alpha > 0) {
		return ThermalDoubleWell{}, ErrBadParameter
	}
	return ThermalDoubleWell{Lambda: lambda, V: v, Epsilon: epsilon, Alpha: alpha}, nil
}

// Evaluate returns V(φ, T).
func (d ThermalDoubleWell) Evaluate(f field.Configuration, temperature float64) float64 {
	phi := f[0]
	w := phi*phi - d.V*d.V
	return d.Lambda*w*w + 0.5*(d.Epsilon-d.Alpha*temperature*temperature)*tilt(phi, d.V)
}

// NumberOfFields returns 1.
func (d ThermalDoubleWell) NumberOfFields() int { return 1 }

// ScaleSquaredRelevantToTunneling returns the squared field distance
// between the two minima.
func (d ThermalDoubleWell) ScaleSquaredRelevantToTunneling(falseVacuum, trueVacuum field.Minimum) float64 {
	return scaleSquared(falseVacuum, trueVacuum)
}

// CriticalTemperature returns sqrt(ε/α).
func (d ThermalDoubleWell) CriticalTemperature(_, _ field.Minimum) float64 {
	return math.Sqrt(d.Epsilon / d.Alpha)
}

// AdjustMinimum keeps the location of m (the minima do not move with T)
// and re-evaluates the potential at the new temperature.
func (d ThermalDoubleWell) AdjustMinimum(m field.Minimum, temperature float64) field.Minimum {
	out, err := field.MinimumOf(d, m.Fields(), temperature)
	if err != nil {
		return m
	}
	return out
}

// Vacua returns the false (−v) and true (+v) minima at temperature.
func (d ThermalDoubleWell) Vacua(temperature float64) (falseVacuum, trueVacuum field.Minimum) {
	falseVacuum, _ = field.MinimumOf(d, field.Configuration{-d.V}, temperature)
	trueVacuum, _ = field.MinimumOf(d, field.Configuration{d.V}, temperature)
	return falseVacuum, trueVacuum
}

func scaleSquared(falseVacuum, trueVacuum field.Minimum) float64 {
	d := falseVacuum.Fields().Distance(trueVacuum.Fields())
	return d * d
}

var (
	_ field.PotentialFunction = TiltedDoubleWell{}
	_ field.PotentialFunction = CurvedValley{}
	_ field.ThermalPotential  = ThermalDoubleWell{}
)
