package pathopt

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvtunnel/bounce"
	"github.com/katalvlaran/lvtunnel/field"
	"github.com/katalvlaran/lvtunnel/spline"
	"github.com/katalvlaran/lvtunnel/tunnelpath"
)

// Sentinel errors.
var (
	// ErrBadOptions indicates an inconsistent Options value.
	ErrBadOptions = errors.New("pathopt: invalid optimizer options")

	// ErrNilShooter indicates a nil bounce shooter.
	ErrNilShooter = errors.New("pathopt: shooter is nil")
)

// Options configures an Optimizer.
type Options struct {
	// PathType is a tunnelpath configuration string.
	PathType string

	// PathOptions are forwarded to tunnelpath.NewFactory.
	PathOptions []tunnelpath.Option

	// Segments is the spline resolution per path.
	Segments int

	// Threshold stops the search once the best action is at or below it.
	// math.Inf(-1) disables the early exit.
	Threshold float64

	// Simplex bounds the Nelder–Mead search.
	Simplex SimplexOptions
}

// DefaultOptions returns parallel-plane node paths, 64 spline segments, no
// threshold and a 200-evaluation simplex budget.
func DefaultOptions() Options {
	return Options{
		PathType:  tunnelpath.TypeNodesOnParallelPlanes,
		Segments:  64,
		Threshold: math.Inf(-1),
		Simplex: SimplexOptions{
			MaxEvaluations: 200,
			InitialStep:    0.1,
			Tolerance:      1e-6,
		},
	}
}

// Outcome is the result of one Optimize call.
type Outcome struct {
	// Action is the action along the best path (an upper bound on the
	// minimal action). NaN if no evaluated path had a resolvable bounce.
	Action float64

	// Params is the best parameter vector; Path is built from it.
	Params []float64
	Path   tunnelpath.Path

	// Bounce is the shooter result along Path.
	Bounce bounce.Result

	Evaluations int

	// UpperBoundOnly is set when the threshold stopped the search.
	UpperBoundOnly bool

	EnergyBarrierResolved bool
}

// Optimizer searches the path space of one potential.
type Optimizer struct {
	pot     field.PotentialFunction
	shooter *bounce.Shooter
	opts    Options
}

// New validates opts and binds pot and shooter.
func New(pot field.PotentialFunction, shooter *bounce.Shooter, opts Options) (*Optimizer, error) {
	switch {
	case pot == nil:
		return nil, field.ErrNilPotential
	case shooter == nil:
		return nil, ErrNilShooter
	case opts.Segments < spline.MinimumSegments:
		return nil, fmt.Errorf("Segments=%d: %w", opts.Segments, ErrBadOptions)
	case opts.Simplex.MaxEvaluations < 1:
		return nil, fmt.Errorf("MaxEvaluations=%d: %w", opts.Simplex.MaxEvaluations, ErrBadOptions)
	case !(opts.Simplex.InitialStep > 0):
		return nil, fmt.Errorf("InitialStep=%g: %w", opts.Simplex.InitialStep, ErrBadOptions)
	case opts.Simplex.Tolerance < 0 || math.IsNaN(opts.Threshold):
		return nil, ErrBadOptions
	}
	return &Optimizer{pot: pot, shooter: shooter, opts: opts}, nil
}

// Options returns the optimizer options.
func (o *Optimizer) Options() Options { return o.opts }

// Evaluate returns the bounce along the path built from params.
func (o *Optimizer) Evaluate(fac *tunnelpath.Factory, params []float64, falseVacuum, trueVacuum field.Minimum, temperature float64) (tunnelpath.Path, bounce.Result, error) {
	path, err := fac.New(params, temperature)
	if err != nil {
		return nil, bounce.Result{}, err
	}
	sp, err := spline.New(o.pot, path, o.opts.Segments)
	if err != nil {
		return nil, bounce.Result{}, err
	}
	res, err := o.shooter.Action(path, sp, falseVacuum, trueVacuum)
	return path, res, err
}

// Optimize minimizes the action over paths from falseVacuum to trueVacuum
// at temperature, starting from the straight line.
//
// Errors: configuration errors from tunnelpath and ctx.Err() on
// cancellation. Degenerate bounces are reported in Outcome, not as errors.
func (o *Optimizer) Optimize(ctx context.Context, falseVacuum, trueVacuum field.Minimum, temperature float64) (Outcome, error) {
	if err := field.ValidatePair(o.pot, falseVacuum, trueVacuum); err != nil {
		return Outcome{}, err
	}
	fac, err := tunnelpath.NewFactory(o.opts.PathType, falseVacuum, trueVacuum, o.opts.PathOptions...)
	if err != nil {
		return Outcome{}, err
	}

	best := NewBest(o.opts.Threshold)
	objective := func(params []float64) float64 {
		_, res, evalErr := o.Evaluate(fac, params, falseVacuum, trueVacuum, temperature)
		if evalErr != nil {
			return math.Inf(1)
		}
		return res.Action
	}
	if err = Minimize(ctx, objective, fac.StraightLineParameters(), o.opts.Simplex, best); err != nil {
		return Outcome{}, err
	}

	path, res, err := o.Evaluate(fac, best.Params, falseVacuum, trueVacuum, temperature)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Action:                res.Action,
		Params:                best.Params,
		Path:                  path,
		Bounce:                res,
		Evaluations:           best.Evaluations,
		UpperBoundOnly:        best.BelowThreshold,
		EnergyBarrierResolved: res.EnergyBarrierResolved,
	}, nil
}
