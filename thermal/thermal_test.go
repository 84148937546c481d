package thermal_test

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/lvtunnel/thermal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constantAction returns an ActionFunc with A(T) = a everywhere.
func constantAction(a float64) thermal.ActionFunc {
	return func(context.Context, float64) (float64, error) { return a, nil }
}

// TestIntegrate_CumulativeNonDecreasing verifies the cumulative integral never
// decreases along the grid.
func TestIntegrate_CumulativeNonDecreasing(t *testing.T) {
	opts := thermal.DefaultOptions()
	opts.PrefactorLog = 0
	action := func(_ context.Context, temp float64) (float64, error) {
		return 3 + math.Sin(temp), nil
	}
	res, err := thermal.Integrate(context.Background(), 10, action, opts)
	require.NoError(t, err)

	require.NotEmpty(t, res.Cumulative)
	for i := 1; i < len(res.Cumulative); i++ {
		assert.GreaterOrEqual(t, res.Cumulative[i], res.Cumulative[i-1], "step %d", i)
	}
	assert.Equal(t, res.Integral, res.Cumulative[len(res.Cumulative)-1])
	assert.InDelta(t, math.Exp(-res.Integral), res.SurvivalProbability, 1e-15)
}

// TestIntegrate_TrapezoidOnKnownIntegrand verifies the trapezoid sum on an
// integrand with a closed form.
func TestIntegrate_TrapezoidOnKnownIntegrand(t *testing.T) {
	// K/T²·exp(−A) with A = −2 ln T, ln K = 0 ⇒ integrand ≡ 1 inside the range
	opts := thermal.DefaultOptions()
	opts.PrefactorLog = 0
	opts.Resolution = 10
	opts.SurvivalProbabilityThreshold = 1e-300
	action := func(_ context.Context, temp float64) (float64, error) {
		return -2 * math.Log(temp), nil
	}
	res, err := thermal.Integrate(context.Background(), 5, action, opts)
	require.NoError(t, err)

	// interior points weigh 1, the zero endpoints cost half an interval each
	dT := 0.5
	assert.InDelta(t, 9*dT, res.Integral, 1e-12)
	assert.Equal(t, 10, res.Steps)
	assert.Len(t, res.Temperatures, 9)
	assert.InDelta(t, 4.5, res.Temperatures[0], 1e-12)
	assert.InDelta(t, 0.5, res.Temperatures[8], 1e-12)
	assert.False(t, res.ShortCircuited)
}

// TestIntegrate_ShortCircuits verifies the walk stops once the survival
// drops below threshold.
func TestIntegrate_ShortCircuits(t *testing.T) {
	var calls int32
	action := func(_ context.Context, temp float64) (float64, error) {
		atomic.AddInt32(&calls, 1)
		return 300 / temp, nil
	}
	res, err := thermal.Integrate(context.Background(), 100, action, thermal.DefaultOptions())
	require.NoError(t, err)

	assert.True(t, res.ShortCircuited)
	assert.True(t, res.Decayed)
	assert.Less(t, res.SurvivalProbability, 0.01)
	assert.Less(t, int(calls), thermal.DefaultOptions().Resolution-1)
	assert.Equal(t, int(calls), res.Steps)
}

// TestIntegrate_SurvivesLargeAction verifies a large constant action walks
// the whole grid without decaying.
func TestIntegrate_SurvivesLargeAction(t *testing.T) {
	opts := thermal.DefaultOptions()
	res, err := thermal.Integrate(context.Background(), 100, constantAction(700), opts)
	require.NoError(t, err)

	assert.False(t, res.ShortCircuited)
	assert.False(t, res.Decayed)
	assert.InDelta(t, 1.0, res.SurvivalProbability, 1e-12)
	assert.Equal(t, opts.Resolution, res.Steps)
	// K/T² peaks at the coldest grid point
	assert.InDelta(t, 100.0/float64(opts.Resolution), res.DominantTemperature, 1e-12)
}

// TestIntegrate_DominantTemperature verifies the temperature of the largest
// contribution is reported.
func TestIntegrate_DominantTemperature(t *testing.T) {
	opts := thermal.DefaultOptions()
	opts.Resolution = 50
	opts.PrefactorLog = 0
	action := func(_ context.Context, temp float64) (float64, error) {
		return 10 * (temp - 40) * (temp - 40), nil
	}
	res, err := thermal.Integrate(context.Background(), 100, action, opts)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, res.DominantTemperature, 1e-9)
	assert.InDelta(t, 0.0, res.DominantAction, 1e-9)
}

// TestIntegrate_UndefinedActionsContributeNothing verifies NaN and +Inf
// actions add nothing.
func TestIntegrate_UndefinedActionsContributeNothing(t *testing.T) {
	opts := thermal.DefaultOptions()
	action := func(_ context.Context, temp float64) (float64, error) {
		if temp > 50 {
			return math.NaN(), nil
		}
		return math.Inf(1), nil
	}
	res, err := thermal.Integrate(context.Background(), 100, action, opts)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Integral)
	assert.Equal(t, 1.0, res.SurvivalProbability)
	assert.Equal(t, 0.0, res.DominantTemperature)
}

// TestIntegrate_ParallelMatchesSequential verifies the concurrent walk matches
// the sequential one.
func TestIntegrate_ParallelMatchesSequential(t *testing.T) {
	action := func(_ context.Context, temp float64) (float64, error) {
		return 240 + 50/temp, nil
	}
	seq, err := thermal.Integrate(context.Background(), 20, action, thermal.DefaultOptions())
	require.NoError(t, err)

	opts := thermal.DefaultOptions()
	opts.Workers = 4
	par, err := thermal.Integrate(context.Background(), 20, action, opts)
	require.NoError(t, err)

	assert.Equal(t, seq.Integral, par.Integral)
	assert.Equal(t, seq.Cumulative, par.Cumulative)
	assert.Equal(t, seq.DominantTemperature, par.DominantTemperature)
}

var errAction = errors.New("action failed")

// TestIntegrate_ActionErrorPropagates verifies an action error aborts the walk.
func TestIntegrate_ActionErrorPropagates(t *testing.T) {
	action := func(_ context.Context, temp float64) (float64, error) {
		if temp < 50 {
			return 0, errAction
		}
		return 1000, nil
	}
	for _, workers := range []int{1, 3} {
		opts := thermal.DefaultOptions()
		opts.Workers = workers
		_, err := thermal.Integrate(context.Background(), 100, action, opts)
		assert.ErrorIs(t, err, errAction, "workers=%d", workers)
	}
}

// TestIntegrate_Validation verifies grid validation.
func TestIntegrate_Validation(t *testing.T) {
	ctx := context.Background()
	_, err := thermal.Integrate(ctx, 0, constantAction(1), thermal.DefaultOptions())
	assert.ErrorIs(t, err, thermal.ErrBadCriticalTemperature)
	_, err = thermal.Integrate(ctx, math.NaN(), constantAction(1), thermal.DefaultOptions())
	assert.ErrorIs(t, err, thermal.ErrBadCriticalTemperature)

	opts := thermal.DefaultOptions()
	opts.Resolution = 1
	_, err = thermal.Integrate(ctx, 1, constantAction(1), opts)
	assert.ErrorIs(t, err, thermal.ErrBadOptions)

	opts = thermal.DefaultOptions()
	opts.SurvivalProbabilityThreshold = 1
	_, err = thermal.Integrate(ctx, 1, constantAction(1), opts)
	assert.ErrorIs(t, err, thermal.ErrBadOptions)
}

// TestIntegrate_Cancelled verifies context cancellation stops the walk.
func TestIntegrate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, workers := range []int{1, 2} {
		opts := thermal.DefaultOptions()
		opts.Workers = workers
		_, err := thermal.Integrate(ctx, 1, constantAction(1), opts)
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
	}
}
