package tunnelpath

import (
	"fmt"

	"github.com/katalvlaran/lvtunnel/field"
)

// Configuration type strings accepted by NewFactory.
const (
	TypeNodesOnParallelPlanes  = "NodesOnParallelPlanes"
	TypeNodesOnBisectingPlanes = "NodesOnBisectingPlanes"
	TypePolynomialPath         = "PolynomialPath"
)

// Defaults for factory options.
const (
	// DefaultNodes is the number of varying intermediate nodes.
	DefaultNodes = 3

	// DefaultDegree is the number of explicit powers per polynomial field.
	DefaultDegree = 3
)

// Option configures a Factory.
type Option func(*factoryOptions)

type factoryOptions struct {
	nodes  int
	degree int
	shape  Kind
}

// WithNodes sets the number of intermediate nodes for node-based paths.
// Negative values are rejected by NewFactory with ErrBadDegree.
func WithNodes(k int) Option { return func(o *factoryOptions) { o.nodes = k } }

// WithDegree sets the number of explicit powers for polynomial paths.
// Values < 1 are rejected by NewFactory with ErrBadDegree.
func WithDegree(d int) Option { return func(o *factoryOptions) { o.degree = d } }

// WithSegmentShape selects LinearNodes or QuadraticNodes for node paths.
// Any other kind is rejected by NewFactory with ErrUnknownKind.
func WithSegmentShape(k Kind) Option { return func(o *factoryOptions) { o.shape = k } }

// Factory builds paths of one variant between two fixed vacua.
// It is immutable after construction and safe for concurrent use.
type Factory struct {
	typeName  string
	kind      Kind
	placement NodePlacement
	nodes     int
	view      CoefficientView
	fv, tv    field.Configuration
	basis     []field.Configuration
}

// dispatch maps configuration strings to (kind family, placement).
var dispatch = map[string]struct {
	polynomial bool
	placement  NodePlacement
}{
	TypeNodesOnParallelPlanes:  {placement: ParallelPlanes},
	TypeNodesOnBisectingPlanes: {placement: BisectingPlanes},
	TypePolynomialPath:         {polynomial: true},
}

// NewFactory validates the endpoints and options and returns a Factory for
// the variant named by typeName.
//
// Errors: ErrUnknownKind (typeName or shape), ErrBadDegree,
// field.ErrDimensionMismatch, field.ErrEmptyConfiguration,
// ErrCoincidentVacua.
func NewFactory(typeName string, falseVacuum, trueVacuum field.Minimum, opts ...Option) (*Factory, error) {
	entry, ok := dispatch[typeName]
	if !ok {
		return nil, fmt.Errorf("%q: %w", typeName, ErrUnknownKind)
	}
	if falseVacuum.Len() == 0 || trueVacuum.Len() == 0 {
		return nil, field.ErrEmptyConfiguration
	}
	if falseVacuum.Len() != trueVacuum.Len() {
		return nil, field.ErrDimensionMismatch
	}

	o := factoryOptions{nodes: DefaultNodes, degree: DefaultDegree, shape: QuadraticNodes}
	for _, opt := range opts {
		opt(&o)
	}

	f := &Factory{
		typeName: typeName,
		fv:       falseVacuum.Fields(),
		tv:       trueVacuum.Fields(),
	}
	dir := f.tv.Sub(f.fv)
	if dir.Norm() == 0 {
		return nil, ErrCoincidentVacua
	}

	if entry.polynomial {
		view, err := NewCoefficientView(len(f.fv), o.degree, referenceField(f.fv, f.tv))
		if err != nil {
			return nil, err
		}
		f.kind = Polynomial
		f.view = view
		return f, nil
	}

	if o.nodes < 0 {
		return nil, ErrBadDegree
	}
	if o.shape != LinearNodes && o.shape != QuadraticNodes {
		return nil, fmt.Errorf("segment shape %s: %w", o.shape, ErrUnknownKind)
	}
	f.kind = o.shape
	f.placement = entry.placement
	f.nodes = o.nodes
	f.basis = orthogonalComplement(dir)

	return f, nil
}

// TypeName returns the configuration string the factory was built from.
func (f *Factory) TypeName() string { return f.typeName }

// Kind returns the variant produced by New.
func (f *Factory) Kind() Kind { return f.kind }

// NumberOfFields returns N.
func (f *Factory) NumberOfFields() int { return len(f.fv) }

// ParameterCount returns the genome length New expects.
func (f *Factory) ParameterCount() int {
	if f.kind == Polynomial {
		return f.view.Len()
	}
	return f.nodes * (len(f.fv) - 1)
}

// StraightLineParameters returns the genome of the straight path from the
// false vacuum to the true vacuum.
func (f *Factory) StraightLineParameters() []float64 {
	params := make([]float64, f.ParameterCount())
	if f.kind == Polynomial {
		var fi int
		for slot := 0; slot < f.view.Stride; slot++ {
			fi = f.view.FieldOfSlot(slot)
			params[f.view.Index(slot, 1)] = f.tv[fi] - f.fv[fi]
		}
	}
	// node genomes are plane offsets, zero on the straight line
	return params
}

// New builds the path for params at temperature.
// Returns ErrParameterCount when len(params) != ParameterCount().
func (f *Factory) New(params []float64, temperature float64) (Path, error) {
	if len(params) != f.ParameterCount() {
		return nil, fmt.Errorf("got %d, want %d: %w", len(params), f.ParameterCount(), ErrParameterCount)
	}
	if f.kind == Polynomial {
		return newPolynomialPath(f.view, f.fv, f.tv, params, temperature), nil
	}
	nodes := placeNodes(f.placement, f.fv, f.tv, f.nodes, f.basis, params)
	return newNodePath(f.kind, nodes, temperature)
}
