package tunnelpath

import (
	"errors"

	"github.com/katalvlaran/lvtunnel/field"
)

// Sentinel errors for path construction.
var (
	// ErrUnknownKind indicates an unrecognized parameterization type string.
	ErrUnknownKind = errors.New("tunnelpath: unknown path parameterization type")

	// ErrParameterCount indicates a parameter vector of the wrong length.
	ErrParameterCount = errors.New("tunnelpath: parameter count mismatch")

	// ErrBadDegree indicates a polynomial degree < 1 or a negative node count.
	ErrBadDegree = errors.New("tunnelpath: invalid degree or node count")

	// ErrCoincidentVacua indicates the two endpoints coincide, so no
	// direction between them exists.
	ErrCoincidentVacua = errors.New("tunnelpath: false and true vacua coincide")
)

// Kind enumerates the closed set of path variants.
type Kind int

const (
	// LinearNodes connects the nodes with straight segments.
	LinearNodes Kind = iota

	// QuadraticNodes connects the nodes with C¹ quadratic segments.
	QuadraticNodes

	// Polynomial uses one polynomial per field in the auxiliary coordinate.
	Polynomial
)

// String returns a stable, human-readable kind name.
func (k Kind) String() string {
	switch k {
	case LinearNodes:
		return "LinearNodes"
	case QuadraticNodes:
		return "QuadraticNodes"
	case Polynomial:
		return "Polynomial"
	default:
		return "Unknown"
	}
}

// Path is a trajectory through field space from the false vacuum (a=0) to
// the true vacuum (a=1).
//
// Contract:
//   - FieldAt(0) equals the false vacuum and FieldAt(1) the true vacuum.
//   - FieldAt is continuous; DerivativeAt is continuous on (0,1) for the
//     quadratic and polynomial variants (linear nodes have kinks at nodes).
//   - SecondDerivativeAt is the analytic d²f/da² inside a segment.
//   - Every call returns a freshly allocated Configuration.
//   - Arguments outside [0,1] are clamped.
type Path interface {
	FieldAt(a float64) field.Configuration
	DerivativeAt(a float64) field.Configuration
	SecondDerivativeAt(a float64) field.Configuration
	NumberOfFields() int
	Temperature() float64
	Kind() Kind
}

// clamp01 restricts a to [0,1].
func clamp01(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
