package pathopt

import (
	"context"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// Simplex coefficients: reflection, expansion, contraction, shrink.
const (
	alpha = 1.0
	gamma = 2.0
	rho   = 0.5
	sigma = 0.5
)

// stallIterations is how many major iterations without a Tolerance-sized
// improvement end the search.
const stallIterations = 32

// Objective evaluates one parameter vector. Infeasible points return +Inf
// or NaN.
type Objective func(params []float64) float64

// SimplexOptions bounds a Nelder–Mead search.
type SimplexOptions struct {
	MaxEvaluations int     // hard budget on objective calls
	InitialStep    float64 // edge length of the starting simplex
	Tolerance      float64 // stop when the best value stalls within it
}

// search is one running minimization.
type search struct {
	ctx  context.Context
	f    Objective
	opts SimplexOptions
	best *Best
	stop bool
}

// eval calls f unless the search already stopped, records the value in
// best and re-checks every stopping rule. Calls after the stop are not
// counted.
func (s *search) eval(x []float64) float64 {
	if s.stop {
		return math.Inf(1)
	}
	v := s.f(x)
	if math.IsNaN(v) {
		v = math.Inf(1)
	}
	s.best.Observe(x, v)
	if s.best.BelowThreshold || s.best.Evaluations >= s.opts.MaxEvaluations || s.ctx.Err() != nil {
		s.stop = true
	}
	return v
}

// status ends the gonum run once eval has stopped.
func (s *search) status() (optimize.Status, error) {
	switch {
	case !s.stop:
		return optimize.NotTerminated, nil
	case s.ctx.Err() != nil:
		return optimize.Failure, s.ctx.Err()
	case s.best.BelowThreshold:
		return optimize.Success, nil
	}
	return optimize.FunctionEvaluationLimit, nil
}

// Minimize runs a Nelder–Mead simplex (gonum optimize) from x0,
// accumulating into best. A zero-length x0 is evaluated once. It returns
// ctx.Err() when cancelled; the best point found so far stays in best
// either way.
//
// Stops at the first of: best ≤ threshold, MaxEvaluations calls, no
// Tolerance-sized improvement for a while, cancellation.
func Minimize(ctx context.Context, f Objective, x0 []float64, opts SimplexOptions, best *Best) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := &search{ctx: ctx, f: f, opts: opts, best: best}
	if len(x0) == 0 {
		s.eval(x0)
		return ctx.Err()
	}

	problem := optimize.Problem{Func: s.eval, Status: s.status}
	settings := &optimize.Settings{
		FuncEvaluations: opts.MaxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   opts.Tolerance,
			Relative:   opts.Tolerance,
			Iterations: stallIterations,
		},
	}
	method := &optimize.NelderMead{
		Reflection:  alpha,
		Expansion:   gamma,
		Contraction: rho,
		Shrink:      sigma,
		SimplexSize: opts.InitialStep,
	}

	_, err := optimize.Minimize(problem, x0, settings, method)
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	if s.stop {
		return nil
	}
	return err
}
