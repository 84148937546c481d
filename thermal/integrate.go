package thermal

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Sentinel errors.
var (
	// ErrBadOptions indicates an inconsistent Options value.
	ErrBadOptions = errors.New("thermal: invalid integration options")

	// ErrBadCriticalTemperature indicates a non-positive or non-finite Tc.
	ErrBadCriticalTemperature = errors.New("thermal: critical temperature must be finite and positive")
)

// DefaultPrefactorLog is ln(1.581·10¹⁰⁶ GeV), the rate-times-volume-times-time
// prefactor of the thermal survival integral for a radiation-dominated
// universe.
var DefaultPrefactorLog = math.Log(1.581e106)

// ActionFunc returns the thermal decay exponent A(T). NaN or +Inf mean no
// tunnelling at that temperature.
type ActionFunc func(ctx context.Context, temperature float64) (float64, error)

// Options configures Integrate.
type Options struct {
	// Resolution is the number of temperature intervals.
	Resolution int

	// SurvivalProbabilityThreshold stops the walk once the survival
	// probability drops below it.
	SurvivalProbabilityThreshold float64

	// PrefactorLog is ln K.
	PrefactorLog float64

	// Workers > 1 evaluates the grid concurrently.
	Workers int
}

// DefaultOptions returns 32 intervals, a 1% survival threshold, the
// standard prefactor and sequential evaluation.
func DefaultOptions() Options {
	return Options{
		Resolution:                   32,
		SurvivalProbabilityThreshold: 0.01,
		PrefactorLog:                 DefaultPrefactorLog,
		Workers:                      1,
	}
}

// Result summarizes one integration.
type Result struct {
	SurvivalProbability float64
	Integral            float64

	// DominantTemperature maximizes the integrand among evaluated points;
	// zero when every integrand vanished.
	DominantTemperature float64
	DominantAction      float64

	// Steps is the number of accumulated intervals.
	Steps          int
	ShortCircuited bool

	// Decayed reports a survival probability below the threshold.
	Decayed bool

	// Temperatures and Actions list evaluated grid points from Tc down;
	// Cumulative[i] is the integral after interval i.
	Temperatures []float64
	Actions      []float64
	Cumulative   []float64
}

func (o Options) validate() error {
	switch {
	case o.Resolution < 2:
		return fmt.Errorf("Resolution=%d: %w", o.Resolution, ErrBadOptions)
	case !(o.SurvivalProbabilityThreshold > 0 && o.SurvivalProbabilityThreshold < 1):
		return fmt.Errorf("SurvivalProbabilityThreshold=%g: %w", o.SurvivalProbabilityThreshold, ErrBadOptions)
	case math.IsNaN(o.PrefactorLog) || math.IsInf(o.PrefactorLog, 0):
		return fmt.Errorf("PrefactorLog=%g: %w", o.PrefactorLog, ErrBadOptions)
	}
	return nil
}

// integrand is K/T² · exp(−A), zero for undefined A.
func integrand(prefactorLog, temperature, action float64) float64 {
	if math.IsNaN(action) || math.IsInf(action, 1) {
		return 0
	}
	return math.Exp(prefactorLog - 2*math.Log(temperature) - action)
}

// Integrate walks the temperature grid from criticalTemperature to zero.
//
// Complexity: at most Resolution−1 calls to action.
func Integrate(ctx context.Context, criticalTemperature float64, action ActionFunc, opts Options) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	if !(criticalTemperature > 0) || math.IsInf(criticalTemperature, 1) {
		return Result{}, ErrBadCriticalTemperature
	}

	var (
		n     = opts.Resolution
		dT    = criticalTemperature / float64(n)
		limit = -math.Log(opts.SurvivalProbabilityThreshold)
		temps = make([]float64, n-1)
		res   Result
	)
	for i := range temps {
		temps[i] = criticalTemperature * float64(n-1-i) / float64(n)
	}

	var pre []float64
	if opts.Workers > 1 {
		var err error
		if pre, err = evaluateAll(ctx, temps, action, opts.Workers); err != nil {
			return Result{}, err
		}
	}

	var (
		prev  float64 // integrand at Tc
		f, a  float64
		err   error
		i     int
		bestF float64
	)
	for i = range temps {
		if pre != nil {
			a = pre[i]
		} else {
			if err = ctx.Err(); err != nil {
				return Result{}, err
			}
			if a, err = action(ctx, temps[i]); err != nil {
				return Result{}, fmt.Errorf("thermal: action at T=%g: %w", temps[i], err)
			}
		}
		f = integrand(opts.PrefactorLog, temps[i], a)
		res.Temperatures = append(res.Temperatures, temps[i])
		res.Actions = append(res.Actions, a)
		if f > bestF {
			bestF = f
			res.DominantTemperature, res.DominantAction = temps[i], a
		}

		res.Integral += 0.5 * (prev + f) * dT
		res.Cumulative = append(res.Cumulative, res.Integral)
		res.Steps++
		prev = f
		if res.Integral > limit {
			res.ShortCircuited = true
			break
		}
	}
	if !res.ShortCircuited {
		// last interval down to T = 0, where the integrand vanishes
		res.Integral += 0.5 * prev * dT
		res.Cumulative = append(res.Cumulative, res.Integral)
		res.Steps++
	}
	res.Decayed = res.Integral > limit

	res.SurvivalProbability = math.Exp(-res.Integral)
	return res, nil
}

// evaluateAll computes every grid action on at most workers goroutines.
func evaluateAll(ctx context.Context, temps []float64, action ActionFunc, workers int) ([]float64, error) {
	out := make([]float64, len(temps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, temp := range temps {
		i, temp := i, temp
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := action(gctx, temp)
			if err != nil {
				return fmt.Errorf("thermal: action at T=%g: %w", temp, err)
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
