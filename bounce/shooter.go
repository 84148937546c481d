package bounce

import (
	"math"

	"github.com/katalvlaran/lvtunnel/field"
	"github.com/katalvlaran/lvtunnel/spline"
	"github.com/katalvlaran/lvtunnel/tunnelpath"
)

// minSpeedSquared floors |f'|² where a path momentarily stalls.
const minSpeedSquared = 1e-24

// minLogOffset is ln(δ/over) for the smallest bubble-centre offset tried.
const minLogOffset = -1000

// Shooter computes bounce actions for one potential. It holds no mutable
// state and is safe for concurrent use.
type Shooter struct {
	pot  field.PotentialFunction
	opts Options
}

// NewShooter validates opts and binds them to pot.
func NewShooter(pot field.PotentialFunction, opts Options) (*Shooter, error) {
	if pot == nil {
		return nil, field.ErrNilPotential
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Shooter{pot: pot, opts: opts}, nil
}

// Options returns the shooter options.
func (s *Shooter) Options() Options { return s.opts }

// Action returns the bounce action along path, using sp as the potential
// on it. falseVacuum and trueVacuum only feed the length and potential
// scales; the path endpoints define the tunnelling direction.
//
// Steps:
//  1. Degeneracy flags of sp ⇒ NaN or +Inf, no shooting.
//  2. Thin-wall attempt when ΔV of the truncated spline is small against
//     the tunnelling scale.
//  3. Bisection of ln δ, the log offset of the bubble centre from the
//     overshoot bound, between minLogOffset and the undershoot bound.
//  4. Simpson integral of the action over the final profile, or the
//     thin-wall estimate with Decided=false when no trial overshot.
//
// Complexity: O(ShootAttempts · (RadialExtensions+1) · max(RadialSteps,
// μ·window)) path and spline evaluations in the worst case.
func (s *Shooter) Action(path tunnelpath.Path, sp *spline.Potential, falseVacuum, trueVacuum field.Minimum) (Result, error) {
	if path == nil || sp == nil {
		return Result{}, ErrNilSpline
	}

	temperature := path.Temperature()
	res := Result{
		Temperature:           temperature,
		Dimension:             4,
		EnergyBarrierResolved: sp.EnergyBarrierResolved(),
	}
	if temperature > 0 {
		res.Dimension = 3
	}

	// Stage 1: degeneracies.
	if !sp.EnergyBarrierResolved() {
		res.Action, res.RawAction = math.NaN(), math.NaN()
		return res, nil
	}
	if !sp.TrueVacuumLowerThanPathFalseMinimum() {
		res.Degenerate = true
		res.Action, res.RawAction = math.NaN(), math.NaN()
		if sp.PathFalseMinimum() == 0 {
			res.Action, res.RawAction = math.Inf(1), math.Inf(1)
		}
		return res, nil
	}
	if !sp.Usable() {
		res.Degenerate = true
		res.Action, res.RawAction = math.NaN(), math.NaN()
		return res, nil
	}

	// Stage 2: thin wall.
	tunnelingScaleSquared := s.floorScale(s.pot.ScaleSquaredRelevantToTunneling(falseVacuum, trueVacuum))
	deltaV := -sp.PotentialAtPathPanic()
	if deltaV < s.opts.ThinWallPotentialRatio*tunnelingScaleSquared*tunnelingScaleSquared {
		tw := ThinWall(path, sp, s.opts.ThinWallSteps)
		if tw.Radius > s.opts.ThinWallRadiusRatio*tw.Thickness {
			res.ThinWall = true
			res.Decided = true
			res.RawAction = tw.RawAction
			res.Action = reportedAction(tw.RawAction, temperature)
			return res, nil
		}
	}

	// Stage 3: bisection on ln δ, δ = over − a₀. Small offsets overshoot.
	pr := s.newProblem(path, sp, falseVacuum, trueVacuum, tunnelingScaleSquared)
	var (
		over       = sp.DefiniteOvershootAuxiliary()
		under      = sp.DefiniteUndershootAuxiliary()
		lo         = math.Log(over) + minLogOffset
		hi         = math.Log(over - under)
		aUnder     = under
		aOver      = over
		mid        float64
		state      State
		attempt    int
		overshoots int
		brackets   = make([]Bracket, 0, s.opts.ShootAttempts)
	)
	for attempt = 0; attempt < s.opts.ShootAttempts && hi-lo > s.opts.BracketTolerance; attempt++ {
		brackets = append(brackets, Bracket{Undershoot: aUnder, Overshoot: aOver})
		mid = 0.5 * (lo + hi)
		if mid <= lo || mid >= hi {
			break
		}
		state, _ = pr.shoot(mid, nil)
		if state == Overshoot {
			lo, aOver = mid, over-math.Exp(mid)
			overshoots++
		} else {
			hi, aUnder = mid, over-math.Exp(mid)
		}
	}
	res.Brackets = brackets

	// Stage 4: final profile and action.
	rec := &profile{}
	logOffset := 0.5 * (lo + hi)
	res.ShootOffset = math.Exp(logOffset)
	res.ShootAuxiliary = over - res.ShootOffset
	_, res.Decided = pr.shoot(logOffset, rec)
	res.RawAction = pr.action(rec)
	if s.opts.KeepProfile {
		res.Profile = rec.points
	}

	// Every trial undershot: the bubble centre lies closer to the overshoot
	// bound than minLogOffset resolves. The thin-wall estimate stands in.
	if overshoots == 0 {
		res.Decided = false
		if tw := ThinWall(path, sp, s.opts.ThinWallSteps); tw.RawAction > 0 && !math.IsInf(tw.RawAction, 0) {
			res.ThinWall = true
			res.RawAction = tw.RawAction
		}
	}
	res.Action = reportedAction(res.RawAction, temperature)

	return res, nil
}

// floorScale clamps a squared scale to MinimumScaleSquared (NaN included).
func (s *Shooter) floorScale(sq float64) float64 {
	if !(sq > s.opts.MinimumScaleSquared) {
		return s.opts.MinimumScaleSquared
	}
	return sq
}

// newProblem derives the radial setup: the initial window length is the
// longest of the inverse field scales and the inverse false-vacuum mass
// along the path.
func (s *Shooter) newProblem(path tunnelpath.Path, sp *spline.Potential, falseVacuum, trueVacuum field.Minimum, tunnelingScaleSquared float64) *problem {
	lowest := math.Min(tunnelingScaleSquared,
		math.Min(s.floorScale(falseVacuum.LengthSquared()), s.floorScale(trueVacuum.LengthSquared())))
	length := 1 / math.Sqrt(lowest)

	speedSquared := path.DerivativeAt(0).LengthSquared()
	if curvature := sp.SecondDerivativeAtFalseVacuum(); curvature > 0 && speedSquared > minSpeedSquared {
		if inverseMass := math.Sqrt(speedSquared / curvature); inverseMass > length {
			length = inverseMass
		}
	}

	pr := &problem{
		path:       path,
		sp:         sp,
		length:     length,
		steps:      s.opts.RadialSteps,
		extensions: s.opts.RadialExtensions,
		friction:   3,
		solidAngle: 2 * math.Pi * math.Pi,
		over:       sp.DefiniteOvershootAuxiliary(),
	}
	if path.Temperature() > 0 {
		pr.friction = 2
		pr.solidAngle = 4 * math.Pi
	}

	// curvature scales of both ends bound the RK4 step
	massSq := 0.0
	if curvature := sp.SecondDerivativeAtFalseVacuum(); curvature > 0 && speedSquared > minSpeedSquared {
		massSq = curvature / speedSquared
	}
	if curvature := sp.SecondDerivativeNearPathPanic(); curvature > 0 {
		pr.panicMassSq = curvature / pr.speedSquared(pr.over)
		pr.linearOffset = math.Log(linearFraction * (pr.over - sp.StartOfFinalSegment()))
		massSq = math.Max(massSq, pr.panicMassSq)
	}
	if massSq > 0 {
		pr.maxStep = 1 / (wallResolution * math.Sqrt(massSq))
	}
	return pr
}

// reportedAction maps S₄ (T=0) or S₃ (T>0) onto the decay exponent.
func reportedAction(raw, temperature float64) float64 {
	if temperature <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return raw
	}
	overT := raw / temperature
	if arg := raw / (2 * math.Pi * temperature); arg > 0 {
		return overT - 1.5*math.Log(arg)
	}
	return overT
}
