package tunnelpath

import (
	"math"
	"sort"

	"github.com/katalvlaran/lvtunnel/field"
)

// degenerateWidth is the arc-length fraction below which a segment is
// treated as a point (coincident nodes).
const degenerateWidth = 1e-14

// nodePath is the shared implementation of LinearNodes and QuadraticNodes.
//
// Segment i spans knots[i] ≤ a ≤ knots[i+1] with width w_i proportional to
// the straight-line distance between nodes i and i+1. With u = a − knots[i]:
//
//	linear:    f(a) = P_i + (P_{i+1} − P_i)·u/w_i
//	quadratic: f(a) = P_i + D_i·u + C_i·u²,  C_i = (P_{i+1} − P_i − D_i·w_i)/w_i²
//
// For the quadratic shape D_0 is the direction of the first chord (so the
// first segment is straight) and D_{i+1} = D_i + 2·C_i·w_i keeps the slope
// continuous at every node.
type nodePath struct {
	kind        Kind
	nodes       []field.Configuration
	knots       []float64
	slopes      []field.Configuration // D_i (quadratic) or chord/w_i (linear)
	curvatures  []field.Configuration // C_i (zero for linear)
	temperature float64
}

// newNodePath builds a node path through nodes (first = false vacuum,
// last = true vacuum). Returns ErrCoincidentVacua if the total length is 0.
func newNodePath(kind Kind, nodes []field.Configuration, temperature float64) (*nodePath, error) {
	var (
		segs    = len(nodes) - 1
		lengths = make([]float64, segs)
		total   float64
		i       int
	)
	for i = 0; i < segs; i++ {
		lengths[i] = nodes[i].Distance(nodes[i+1])
		total += lengths[i]
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, ErrCoincidentVacua
	}

	p := &nodePath{
		kind:        kind,
		nodes:       nodes,
		knots:       make([]float64, segs+1),
		slopes:      make([]field.Configuration, segs),
		curvatures:  make([]field.Configuration, segs),
		temperature: temperature,
	}
	for i = 0; i < segs; i++ {
		p.knots[i+1] = p.knots[i] + lengths[i]/total
	}
	p.knots[segs] = 1

	var (
		n     = len(nodes[0])
		w     float64
		chord field.Configuration
		prev  field.Configuration
	)
	for i = 0; i < segs; i++ {
		w = p.knots[i+1] - p.knots[i]
		chord = nodes[i+1].Sub(nodes[i])
		if w < degenerateWidth {
			// zero-width segment: never selected by lookup, keep slope continuity
			if prev == nil {
				prev = make(field.Configuration, n)
			}
			p.slopes[i] = prev.Clone()
			p.curvatures[i] = make(field.Configuration, n)
			continue
		}
		switch {
		case kind == LinearNodes || prev == nil:
			p.slopes[i] = chord.Scale(1 / w)
			p.curvatures[i] = make(field.Configuration, n)
		default:
			p.slopes[i] = prev.Clone()
			// C_i = (chord − D_i·w)/w²
			c := chord.AddScaled(-w, prev)
			p.curvatures[i] = c.Scale(1 / (w * w))
		}
		// slope at the end of this segment seeds the next one
		prev = p.slopes[i].AddScaled(2*w, p.curvatures[i])
	}

	return p, nil
}

// locate returns the segment index and local offset u for a ∈ (0,1).
func (p *nodePath) locate(a float64) (int, float64) {
	// first knot strictly greater than a, minus one
	i := sort.SearchFloat64s(p.knots, a)
	if i < len(p.knots) && p.knots[i] == a {
		i++
	}
	i--
	if i < 0 {
		i = 0
	}
	if i > len(p.slopes)-1 {
		i = len(p.slopes) - 1
	}
	// skip zero-width segments
	for i > 0 && p.knots[i+1]-p.knots[i] < degenerateWidth {
		i--
	}
	return i, a - p.knots[i]
}

// FieldAt returns f(a).
func (p *nodePath) FieldAt(a float64) field.Configuration {
	a = clamp01(a)
	if a == 0 {
		return p.nodes[0].Clone()
	}
	if a == 1 {
		return p.nodes[len(p.nodes)-1].Clone()
	}
	i, u := p.locate(a)
	out := p.nodes[i].AddScaled(u, p.slopes[i])
	out.AddScaledInPlace(u*u, p.curvatures[i])
	return out
}

// DerivativeAt returns df/da.
func (p *nodePath) DerivativeAt(a float64) field.Configuration {
	a = clamp01(a)
	i, u := p.locate(a)
	return p.slopes[i].AddScaled(2*u, p.curvatures[i])
}

// SecondDerivativeAt returns d²f/da² inside the segment containing a.
func (p *nodePath) SecondDerivativeAt(a float64) field.Configuration {
	a = clamp01(a)
	i, _ := p.locate(a)
	return p.curvatures[i].Scale(2)
}

// NumberOfFields returns N.
func (p *nodePath) NumberOfFields() int { return len(p.nodes[0]) }

// Temperature returns the temperature the path was built for.
func (p *nodePath) Temperature() float64 { return p.temperature }

// Kind returns LinearNodes or QuadraticNodes.
func (p *nodePath) Kind() Kind { return p.kind }

// Nodes returns a copy of the node list including both endpoints.
func (p *nodePath) Nodes() []field.Configuration {
	out := make([]field.Configuration, len(p.nodes))
	for i := range p.nodes {
		out[i] = p.nodes[i].Clone()
	}
	return out
}

var _ Path = (*nodePath)(nil)
