package tunnelpath

import (
	"github.com/katalvlaran/lvtunnel/field"
)

// CoefficientView is a typed view over the flattened polynomial genome.
//
// Layout (power-major, reference field skipped):
//
//	index(slot, power) = (power − 1)·Stride + slot,  power ∈ [1, Degree], slot ∈ [0, Stride)
//
// where Stride = Fields − 1 and slot s maps to field s if s < Reference,
// otherwise to field s+1. The view is validated once at construction so the
// hot path never recomputes modulo/division arithmetic.
type CoefficientView struct {
	Fields    int // N
	Stride    int // N − 1 free fields per power
	Degree    int // explicit powers per free field
	Reference int // index of the linear reference field
}

// NewCoefficientView validates the shape and returns the view.
func NewCoefficientView(fields, degree, reference int) (CoefficientView, error) {
	if fields < 1 {
		return CoefficientView{}, field.ErrEmptyConfiguration
	}
	if degree < 1 {
		return CoefficientView{}, ErrBadDegree
	}
	if reference < 0 || reference >= fields {
		return CoefficientView{}, field.ErrDimensionMismatch
	}

	return CoefficientView{Fields: fields, Stride: fields - 1, Degree: degree, Reference: reference}, nil
}

// Len returns the number of explicit coefficients, Stride·Degree.
func (v CoefficientView) Len() int { return v.Stride * v.Degree }

// Index returns the flat index of (slot, power).
func (v CoefficientView) Index(slot, power int) int { return (power-1)*v.Stride + slot }

// FieldOfSlot maps a free-field slot to its field index.
func (v CoefficientView) FieldOfSlot(slot int) int {
	if slot < v.Reference {
		return slot
	}
	return slot + 1
}

// polynomialPath holds one coefficient slice per field, lowest power first.
type polynomialPath struct {
	coefficients [][]float64
	temperature  float64
}

// referenceField returns the index of the largest |T_i − F_i| (lowest
// index on ties).
func referenceField(fv, tv field.Configuration) int {
	var (
		best    = -1.0
		bestIdx = 0
		d       float64
	)
	for i := range fv {
		d = tv[i] - fv[i]
		if d < 0 {
			d = -d
		}
		if d > best {
			best, bestIdx = d, i
		}
	}
	return bestIdx
}

// newPolynomialPath decodes params through view. The caller has checked
// len(params) == view.Len().
//
// Reference field:  f_r(a) = F_r + (T_r − F_r)·a.
// Other fields:     f_j(a) = F_j + Σ_{p=1..D} c_{j,p} a^p + c_{j,D+1} a^{D+1},
// with c_{j,D+1} = T_j − F_j − Σ_p c_{j,p} so that f_j(1) = T_j.
func newPolynomialPath(view CoefficientView, fv, tv field.Configuration, params []float64, temperature float64) *polynomialPath {
	p := &polynomialPath{
		coefficients: make([][]float64, view.Fields),
		temperature:  temperature,
	}
	p.coefficients[view.Reference] = []float64{fv[view.Reference], tv[view.Reference] - fv[view.Reference]}

	var (
		slot, power, f int
		sum            float64
		c              []float64
	)
	for slot = 0; slot < view.Stride; slot++ {
		f = view.FieldOfSlot(slot)
		c = make([]float64, view.Degree+2)
		c[0] = fv[f]
		sum = 0
		for power = 1; power <= view.Degree; power++ {
			c[power] = params[view.Index(slot, power)]
			sum += c[power]
		}
		c[view.Degree+1] = tv[f] - fv[f] - sum
		p.coefficients[f] = c
	}

	return p
}

// FieldAt evaluates every polynomial at a by Horner's rule.
func (p *polynomialPath) FieldAt(a float64) field.Configuration {
	a = clamp01(a)
	out := make(field.Configuration, len(p.coefficients))
	var (
		c []float64
		v float64
		k int
	)
	for i := range p.coefficients {
		c = p.coefficients[i]
		v = 0
		for k = len(c) - 1; k >= 0; k-- {
			v = v*a + c[k]
		}
		out[i] = v
	}
	return out
}

// DerivativeAt evaluates df/da.
func (p *polynomialPath) DerivativeAt(a float64) field.Configuration {
	a = clamp01(a)
	out := make(field.Configuration, len(p.coefficients))
	var (
		c []float64
		v float64
		k int
	)
	for i := range p.coefficients {
		c = p.coefficients[i]
		v = 0
		for k = len(c) - 1; k >= 1; k-- {
			v = v*a + float64(k)*c[k]
		}
		out[i] = v
	}
	return out
}

// SecondDerivativeAt evaluates d²f/da².
func (p *polynomialPath) SecondDerivativeAt(a float64) field.Configuration {
	a = clamp01(a)
	out := make(field.Configuration, len(p.coefficients))
	var (
		c []float64
		v float64
		k int
	)
	for i := range p.coefficients {
		c = p.coefficients[i]
		v = 0
		for k = len(c) - 1; k >= 2; k-- {
			v = v*a + float64(k*(k-1))*c[k]
		}
		out[i] = v
	}
	return out
}

// NumberOfFields returns N.
func (p *polynomialPath) NumberOfFields() int { return len(p.coefficients) }

// Temperature returns the temperature the path was built for.
func (p *polynomialPath) Temperature() float64 { return p.temperature }

// Kind returns Polynomial.
func (p *polynomialPath) Kind() Kind { return Polynomial }

var _ Path = (*polynomialPath)(nil)
