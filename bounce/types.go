package bounce

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrBadOptions indicates an inconsistent Options value.
	ErrBadOptions = errors.New("bounce: invalid shooter options")

	// ErrNilSpline indicates a nil path or spline passed to Action.
	ErrNilSpline = errors.New("bounce: path and spline must be non-nil")
)

// Options tunes the shooter. Zero values are not defaults; start from
// DefaultOptions.
type Options struct {
	// ShootAttempts bounds the number of bisection trials.
	ShootAttempts int

	// BracketTolerance stops the bisection once the bracket on ln δ, the
	// log offset of the bubble centre from the overshoot bound, is narrower.
	BracketTolerance float64

	// RadialSteps is the number of RK4 steps in each radial window.
	RadialSteps int

	// RadialExtensions bounds how many times the radial range doubles
	// before a trial is declared undecided.
	RadialExtensions int

	// MinimumScaleSquared floors every squared field scale used to derive
	// the initial radial length.
	MinimumScaleSquared float64

	// ThinWallPotentialRatio gates the thin-wall attempt:
	// |ΔV| < ratio · scale⁴.
	ThinWallPotentialRatio float64

	// ThinWallRadiusRatio is the minimum ratio of bubble radius to wall
	// thickness for the thin-wall result to be kept.
	ThinWallRadiusRatio float64

	// ThinWallSteps is the midpoint-rule resolution for σ and thickness.
	ThinWallSteps int

	// KeepProfile retains the final radial profile in Result.Profile.
	KeepProfile bool
}

// DefaultOptions returns the shooter defaults.
func DefaultOptions() Options {
	return Options{
		ShootAttempts:          64,
		BracketTolerance:       1e-15,
		RadialSteps:            512,
		RadialExtensions:       12,
		MinimumScaleSquared:    1.0,
		ThinWallPotentialRatio: 1e-3,
		ThinWallRadiusRatio:    1e2,
		ThinWallSteps:          64,
		KeepProfile:            false,
	}
}

// validate checks Options for internal consistency.
func (o Options) validate() error {
	switch {
	case o.ShootAttempts < 1:
		return fmt.Errorf("ShootAttempts=%d: %w", o.ShootAttempts, ErrBadOptions)
	case o.RadialSteps < 2:
		return fmt.Errorf("RadialSteps=%d: %w", o.RadialSteps, ErrBadOptions)
	case o.RadialExtensions < 0:
		return fmt.Errorf("RadialExtensions=%d: %w", o.RadialExtensions, ErrBadOptions)
	case !(o.MinimumScaleSquared > 0):
		return fmt.Errorf("MinimumScaleSquared=%g: %w", o.MinimumScaleSquared, ErrBadOptions)
	case o.BracketTolerance < 0:
		return fmt.Errorf("BracketTolerance=%g: %w", o.BracketTolerance, ErrBadOptions)
	case o.ThinWallPotentialRatio < 0 || o.ThinWallRadiusRatio < 0:
		return fmt.Errorf("thin-wall ratios must be non-negative: %w", ErrBadOptions)
	case o.ThinWallSteps < 1:
		return fmt.Errorf("ThinWallSteps=%d: %w", o.ThinWallSteps, ErrBadOptions)
	}
	return nil
}

// State classifies one shooting trial.
type State int

const (
	// Undecided means the trial neither overshot nor undershot within the
	// radial budget.
	Undecided State = iota
	// Undershoot means the trial turned back before reaching the false vacuum.
	Undershoot
	// Overshoot means the trial rolled past the false vacuum.
	Overshoot
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Undershoot:
		return "Undershoot"
	case Overshoot:
		return "Overshoot"
	default:
		return "Undecided"
	}
}

// RadialPoint is one sample of the radial solution.
type RadialPoint struct {
	Radius    float64
	Auxiliary float64
	Slope     float64 // da/dr
}

// Bracket is one bisection interval [Undershoot, Overshoot].
type Bracket struct {
	Undershoot float64
	Overshoot  float64
}

// Width returns Overshoot − Undershoot.
func (b Bracket) Width() float64 { return b.Overshoot - b.Undershoot }

// Result is the outcome of one Action call.
//
// Action is the reported exponent (S₄ at T=0, S₃/T with the logarithmic
// prefactor at T>0); RawAction is S₄ or S₃ itself. NaN signals an action
// that could not be determined.
type Result struct {
	Action    float64
	RawAction float64

	// Temperature of the path; Dimension is 4 at T=0 and 3 otherwise.
	Temperature float64
	Dimension   int

	// ShootAuxiliary is the bubble-centre value of the final profile and
	// ShootOffset its distance δ below DefiniteOvershootAuxiliary. δ stays
	// exact where ShootAuxiliary rounds to the bound.
	ShootAuxiliary float64
	ShootOffset    float64

	// ThinWall reports that the thin-wall formula produced Action.
	ThinWall bool

	// Decided is false when the final trial needed the energy fallback, or
	// when no trial overshot and the thin-wall estimate stands in.
	Decided bool

	// Brackets lists the bisection interval before every trial, mapped back
	// to auxiliary values.
	Brackets []Bracket

	// Profile is the final radial solution (Options.KeepProfile).
	Profile []RadialPoint

	EnergyBarrierResolved bool
	Degenerate            bool
}
