package spline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvtunnel/field"
	"github.com/katalvlaran/lvtunnel/tunnelpath"
)

// MinimumSegments is the smallest segment count that leaves room for the two
// boundary quadratics and at least one interior segment.
const MinimumSegments = 3

// crossingIterations bounds the bisection for the zero crossing.
const crossingIterations = 64

// Sentinel errors for spline construction.
var (
	// ErrTooFewSegments indicates fewer than MinimumSegments segments.
	ErrTooFewSegments = errors.New("spline: at least 3 potential segments are required")

	// ErrNilPath indicates a nil tunnel path.
	ErrNilPath = errors.New("spline: path is nil")
)

// Potential is the rasterized potential along one path. It is immutable
// after New returns and safe for concurrent reads.
type Potential struct {
	energyBarrierResolved               bool
	trueVacuumLowerThanPathFalseMinimum bool

	step        float64
	inverseStep float64
	segments    int

	values  []float64 // v_0..v_{m−1}
	slopes  []float64 // s_0..s_m
	samples []float64 // y_0..y_n, raw samples relative to the false vacuum

	firstSegmentQuadratic float64
	finalPotential        float64
	lastSegmentQuadratic  float64

	definiteUndershootAuxiliary float64
	definiteOvershootAuxiliary  float64
	startOfFinalSegment         float64

	pathFalseMinimum float64
	truePotential    float64
	potentialAtPanic float64
}

// New samples pot along path at numberOfSegments+1 equally spaced auxiliary
// values (at the path temperature) and builds the spline.
//
// Errors: field.ErrNilPotential, ErrNilPath, ErrTooFewSegments,
// field.ErrDimensionMismatch. Physical degeneracies are flags, not errors.
func New(pot field.PotentialFunction, path tunnelpath.Path, numberOfSegments int) (*Potential, error) {
	if pot == nil {
		return nil, field.ErrNilPotential
	}
	if path == nil {
		return nil, ErrNilPath
	}
	if numberOfSegments < MinimumSegments {
		return nil, ErrTooFewSegments
	}
	if path.NumberOfFields() != pot.NumberOfFields() {
		return nil, field.ErrDimensionMismatch
	}

	var (
		n       = numberOfSegments
		h       = 1 / float64(n)
		temp    = path.Temperature()
		base    = pot.Evaluate(path.FieldAt(0), temp)
		samples = make([]float64, n+1)
		j       int
	)
	for j = 1; j <= n; j++ {
		samples[j] = pot.Evaluate(path.FieldAt(float64(j)*h), temp) - base
	}

	return FromSamples(samples)
}

// FromSamples builds the spline directly from potential samples
// y_0..y_n taken at a = j/n, relative to the false vacuum (y_0 is forced
// to zero). It is the construction core of New and is exposed for callers
// that already hold a sampled potential.
func FromSamples(samples []float64) (*Potential, error) {
	n := len(samples) - 1
	if n < MinimumSegments {
		return nil, ErrTooFewSegments
	}

	sp := &Potential{
		step:        1 / float64(n),
		inverseStep: float64(n),
		samples:     append([]float64(nil), samples...),
	}
	sp.samples[0] = 0
	y := sp.samples
	sp.truePotential = y[n]

	// path false minimum: roll downhill from a = 0
	pf := 0
	for pf < n && y[pf+1] < y[pf] {
		pf++
	}
	sp.pathFalseMinimum = y[pf]

	// first sample below the false vacuum, and the barrier before it
	crossing := n + 1
	var barrierHeight float64
	for j := 1; j <= n; j++ {
		if y[j] < 0 {
			crossing = j
			break
		}
		if y[j] > barrierHeight {
			barrierHeight = y[j]
		}
	}
	sp.energyBarrierResolved = barrierHeight > 0
	sp.trueVacuumLowerThanPathFalseMinimum = y[n] < sp.pathFalseMinimum

	if !sp.energyBarrierResolved || !sp.trueVacuumLowerThanPathFalseMinimum || crossing > n {
		// flat spline: every accessor returns zero
		return sp, nil
	}

	// truncate at the first local minimum past the crossing
	m := crossing
	for m < n && y[m+1] < y[m] {
		m++
	}
	if m < MinimumSegments {
		m = MinimumSegments
	}
	sp.build(m)
	sp.definiteUndershootAuxiliary = sp.zeroCrossing(crossing)

	return sp, nil
}

// build fills the segment tables for m kept segments.
func (sp *Potential) build(m int) {
	var (
		h = sp.step
		y = sp.samples
		j int
	)
	sp.segments = m
	sp.values = make([]float64, m)
	sp.slopes = make([]float64, m+1)
	copy(sp.values, y[:m])
	for j = 0; j < m-1; j++ {
		sp.slopes[j+1] = 2*(y[j+1]-y[j])*sp.inverseStep - sp.slopes[j]
	}
	sp.slopes[m] = 0

	sp.firstSegmentQuadratic = sp.slopes[1] / (2 * h)
	sp.lastSegmentQuadratic = -sp.slopes[m-1] / (2 * h)
	sp.finalPotential = y[m-1] + 0.5*sp.slopes[m-1]*h
	sp.potentialAtPanic = y[m]
	sp.definiteOvershootAuxiliary = float64(m) * h
	sp.startOfFinalSegment = float64(m-1) * h
}

// zeroCrossing returns the auxiliary value where the spline first drops
// below zero past the barrier, bracketed by the samples crossing−1 and
// crossing. A start below it has no energy to reach the false vacuum.
func (sp *Potential) zeroCrossing(crossing int) float64 {
	lo := float64(crossing-1) * sp.step
	hi := math.Min(float64(crossing)*sp.step, sp.definiteOvershootAuxiliary*(1-1e-12))
	if sp.Value(hi) >= 0 || sp.Value(lo) < 0 {
		return lo
	}
	for i := 0; i < crossingIterations && hi-lo > 1e-15; i++ {
		mid := 0.5 * (lo + hi)
		if sp.Value(mid) < 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// segment returns the interior segment index for a in [h, startOfFinal).
func (sp *Potential) segment(a float64) (int, float64) {
	i := int(a * sp.inverseStep)
	if i < 1 {
		i = 1
	}
	if i > sp.segments-2 {
		i = sp.segments - 2
	}
	return i, a - float64(i)*sp.step
}

// Value returns the spline potential at a.
func (sp *Potential) Value(a float64) float64 {
	if a <= 0 || a >= sp.definiteOvershootAuxiliary {
		return 0
	}
	if a < sp.step {
		return sp.firstSegmentQuadratic * a * a
	}
	if a >= sp.startOfFinalSegment {
		d := a - sp.definiteOvershootAuxiliary
		return sp.finalPotential + sp.lastSegmentQuadratic*d*d
	}
	i, d := sp.segment(a)
	return sp.values[i] + sp.slopes[i]*d + (sp.slopes[i+1]-sp.slopes[i])*d*d*0.5*sp.inverseStep
}

// FirstDerivative returns dV/da at a.
func (sp *Potential) FirstDerivative(a float64) float64 {
	if a <= 0 || a >= sp.definiteOvershootAuxiliary {
		return 0
	}
	if a < sp.step {
		return 2 * sp.firstSegmentQuadratic * a
	}
	if a >= sp.startOfFinalSegment {
		return sp.FirstDerivativeNearPathPanic(a - sp.definiteOvershootAuxiliary)
	}
	i, d := sp.segment(a)
	return sp.slopes[i] + (sp.slopes[i+1]-sp.slopes[i])*d*sp.inverseStep
}

// SecondDerivative returns d²V/da² at a (piecewise constant).
func (sp *Potential) SecondDerivative(a float64) float64 {
	if a <= 0 {
		return sp.SecondDerivativeAtFalseVacuum()
	}
	if a >= sp.definiteOvershootAuxiliary {
		return 0
	}
	if a < sp.step {
		return sp.SecondDerivativeAtFalseVacuum()
	}
	if a >= sp.startOfFinalSegment {
		return sp.SecondDerivativeNearPathPanic()
	}
	i, _ := sp.segment(a)
	return (sp.slopes[i+1] - sp.slopes[i]) * sp.inverseStep
}

// SecondDerivativeAtFalseVacuum returns 2·q0.
func (sp *Potential) SecondDerivativeAtFalseVacuum() float64 { return 2 * sp.firstSegmentQuadratic }

// FirstDerivativeNearPathPanic returns the slope at
// DefiniteOvershootAuxiliary + d inside the final segment.
func (sp *Potential) FirstDerivativeNearPathPanic(d float64) float64 {
	return 2 * d * sp.lastSegmentQuadratic
}

// SecondDerivativeNearPathPanic returns the curvature of the final segment.
func (sp *Potential) SecondDerivativeNearPathPanic() float64 { return 2 * sp.lastSegmentQuadratic }

// EnergyBarrierResolved reports whether a barrier was seen at this resolution.
func (sp *Potential) EnergyBarrierResolved() bool { return sp.energyBarrierResolved }

// TrueVacuumLowerThanPathFalseMinimum reports whether the true vacuum lies
// strictly below the path false minimum.
func (sp *Potential) TrueVacuumLowerThanPathFalseMinimum() bool {
	return sp.trueVacuumLowerThanPathFalseMinimum
}

// Usable reports whether both diagnostics passed and the spline is non-flat.
func (sp *Potential) Usable() bool {
	return sp.energyBarrierResolved && sp.trueVacuumLowerThanPathFalseMinimum && sp.segments > 0
}

// DefiniteUndershootAuxiliary is the energy-conservation bound: a bubble
// centre below it cannot reach the false vacuum.
func (sp *Potential) DefiniteUndershootAuxiliary() float64 { return sp.definiteUndershootAuxiliary }

// DefiniteOvershootAuxiliary is the truncation point; the spline is zero
// from here on.
func (sp *Potential) DefiniteOvershootAuxiliary() float64 { return sp.definiteOvershootAuxiliary }

// StartOfFinalSegment is where the trailing quadratic begins.
func (sp *Potential) StartOfFinalSegment() float64 { return sp.startOfFinalSegment }

// StepSize returns the segment width h; it is also the size of the final segment.
func (sp *Potential) StepSize() float64 { return sp.step }

// Segments returns the number of kept segments m (0 for a flat spline).
func (sp *Potential) Segments() int { return sp.segments }

// SampledSegments returns the requested segment count n.
func (sp *Potential) SampledSegments() int { return len(sp.samples) - 1 }

// FinalPotential returns V_f, the spline value at the truncation point.
func (sp *Potential) FinalPotential() float64 { return sp.finalPotential }

// PotentialAtPathPanic returns the sampled potential y_m at the truncation
// point. Unlike FinalPotential it carries no interpolation error, so it
// keeps the sign of a small energy difference.
func (sp *Potential) PotentialAtPathPanic() float64 { return sp.potentialAtPanic }

// PathFalseMinimum returns the sampled potential at the path false minimum.
func (sp *Potential) PathFalseMinimum() float64 { return sp.pathFalseMinimum }

// TruePotential returns the sampled potential at a = 1 relative to the
// false vacuum.
func (sp *Potential) TruePotential() float64 { return sp.truePotential }

// Samples returns a copy of the raw samples y_0..y_n.
func (sp *Potential) Samples() []float64 { return append([]float64(nil), sp.samples...) }

// String renders the spline tables for debugging.
func (sp *Potential) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "spline{barrier=%t trueLower=%t h=%g m=%d q0=%g Vf=%g qf=%g under=%g over=%g final=%g}",
		sp.energyBarrierResolved, sp.trueVacuumLowerThanPathFalseMinimum, sp.step, sp.segments,
		sp.firstSegmentQuadratic, sp.finalPotential, sp.lastSegmentQuadratic,
		sp.definiteUndershootAuxiliary, sp.definiteOvershootAuxiliary, sp.startOfFinalSegment)
	for i := range sp.values {
		fmt.Fprintf(&b, "\n  [%d] v=%g s=%g", i, sp.values[i], sp.slopes[i])
	}
	return b.String()
}
