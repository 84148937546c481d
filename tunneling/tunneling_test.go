package tunneling_test

import (
	"context"
	"errors"
	"math"
	"os/exec"
	"testing"

	"github.com/katalvlaran/lvtunnel/bounce"
	"github.com/katalvlaran/lvtunnel/field"
	"github.com/katalvlaran/lvtunnel/potential"
	"github.com/katalvlaran/lvtunnel/thermal"
	"github.com/katalvlaran/lvtunnel/tunneling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// fast trims the shooter and thermal grid for tests.
func fast() []tunneling.Option {
	sh := bounce.DefaultOptions()
	sh.RadialSteps = 128
	sh.ShootAttempts = 48
	th := thermal.DefaultOptions()
	th.Resolution = 8
	return []tunneling.Option{tunneling.WithShooterOptions(sh), tunneling.WithThermalOptions(th)}
}

// TestParseMode verifies case-insensitive mode parsing and the unknown-mode error.
func TestParseMode(t *testing.T) {
	for _, m := range []tunneling.Mode{tunneling.QuantumOnly, tunneling.ThermalOnly, tunneling.QuantumThenThermal, tunneling.ThermalThenQuantum} {
		got, err := tunneling.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := tunneling.ParseMode("thermalonly")
	require.NoError(t, err)
	assert.Equal(t, tunneling.ThermalOnly, got)

	_, err = tunneling.ParseMode("Sideways")
	assert.ErrorIs(t, err, tunneling.ErrUnknownMode)
	assert.Equal(t, "Mode(9)", tunneling.Mode(9).String())
}

// TestQuantumSurvival verifies exp(−S₄) survival against the threshold action.
func TestQuantumSurvival(t *testing.T) {
	const scale = 100.0
	th := tunneling.ActionThreshold(0.01, scale)
	assert.InDelta(t, 0.01, tunneling.QuantumSurvivalProbability(th, scale), 1e-12)
	assert.Equal(t, 1.0, tunneling.QuantumSurvivalProbability(math.Inf(1), scale))
	assert.Equal(t, 0.0, tunneling.QuantumSurvivalProbability(0, scale))
	assert.True(t, math.IsNaN(tunneling.QuantumSurvivalProbability(math.NaN(), scale)))
	assert.Greater(t, tunneling.QuantumSurvivalProbability(th+1, scale), tunneling.QuantumSurvivalProbability(th, scale))
}

// TestBounceAlongPath_QuantumOnly verifies the quantum channel alone, with the
// action reported as an upper bound.
func TestBounceAlongPath_QuantumOnly(t *testing.T) {
	pot, err := potential.NewTiltedDoubleWell(1, 1, 1)
	require.NoError(t, err)
	fv, tv := pot.Vacua()

	s, err := tunneling.NewBounceAlongPath(pot, append(fast(), tunneling.WithMode(tunneling.QuantumOnly))...)
	require.NoError(t, err)
	out, err := s.Compute(context.Background(), fv, tv)
	require.NoError(t, err)

	assert.Equal(t, tunneling.NameBounceAlongPath, out.Strategy)
	assert.True(t, out.QuantumComputed)
	assert.False(t, out.ThermalComputed)
	assert.True(t, out.EnergyBarrierResolved)
	assert.Greater(t, out.ZeroTemperatureAction, 0.0)
	// an O(1) action is far below the age-of-universe threshold
	assert.True(t, out.UpperBoundOnly)
	assert.Less(t, out.QuantumSurvival, 0.01)
	assert.Equal(t, out.QuantumSurvival, out.SurvivalProbability())
}

// TestBounceAlongPath_QuantumThenThermalSkipsThermal verifies the thermal walk is
// skipped once the vacuum already decays at zero temperature.
func TestBounceAlongPath_QuantumThenThermalSkipsThermal(t *testing.T) {
	pot, err := potential.NewThermalDoubleWell(1, 1, 1, 0.01)
	require.NoError(t, err)
	fv, tv := pot.Vacua(0)

	s, err := tunneling.NewBounceAlongPath(pot, fast()...)
	require.NoError(t, err)
	out, err := s.Compute(context.Background(), fv, tv)
	require.NoError(t, err)
	assert.Equal(t, tunneling.QuantumThenThermal, out.Mode)
	assert.True(t, out.QuantumComputed)
	assert.False(t, out.ThermalComputed, "already decayed at zero temperature")
}

// TestBounceAlongPath_ThermalOnly verifies the thermal walk decays below the
// critical temperature with a non-decreasing cumulative integral.
func TestBounceAlongPath_ThermalOnly(t *testing.T) {
	pot, err := potential.NewThermalDoubleWell(1, 1, 1, 0.01)
	require.NoError(t, err)
	fv, tv := pot.Vacua(0)

	s, err := tunneling.NewBounceAlongPath(pot, append(fast(), tunneling.WithMode(tunneling.ThermalOnly))...)
	require.NoError(t, err)
	out, err := s.Compute(context.Background(), fv, tv)
	require.NoError(t, err)

	assert.False(t, out.QuantumComputed)
	require.True(t, out.ThermalComputed)
	res := out.Thermal
	assert.True(t, res.Decayed)
	assert.Greater(t, res.DominantTemperature, 0.0)
	assert.Less(t, res.DominantTemperature, pot.CriticalTemperature(fv, tv))
	for i := 1; i < len(res.Cumulative); i++ {
		assert.GreaterOrEqual(t, res.Cumulative[i], res.Cumulative[i-1])
	}
}

// TestBounceAlongPath_ThermalNeedsCriticalTemperature verifies thermal modes
// reject potentials without a critical temperature.
func TestBounceAlongPath_ThermalNeedsCriticalTemperature(t *testing.T) {
	pot, err := potential.NewTiltedDoubleWell(1, 1, 1)
	require.NoError(t, err)

	_, err = tunneling.NewBounceAlongPath(pot, tunneling.WithMode(tunneling.ThermalOnly))
	assert.ErrorIs(t, err, tunneling.ErrNotThermal)

	_, err = tunneling.NewBounceAlongPath(pot, tunneling.WithMode(tunneling.ThermalOnly), tunneling.WithCriticalTemperature(5))
	assert.NoError(t, err)

	_, err = tunneling.NewBounceAlongPath(nil)
	assert.ErrorIs(t, err, field.ErrNilPotential)
}

// TestBounceAlongPath_DimensionMismatch verifies minima of the wrong dimension
// are rejected.
func TestBounceAlongPath_DimensionMismatch(t *testing.T) {
	pot, err := potential.NewTiltedDoubleWell(1, 1, 1)
	require.NoError(t, err)
	s, err := tunneling.NewBounceAlongPath(pot, tunneling.WithMode(tunneling.QuantumOnly))
	require.NoError(t, err)

	fv, err := field.NewMinimum(field.Configuration{-1, 0}, 0, 0)
	require.NoError(t, err)
	tv, err := field.NewMinimum(field.Configuration{1, 0}, 0, 0)
	require.NoError(t, err)
	_, err = s.Compute(context.Background(), fv, tv)
	assert.ErrorIs(t, err, field.ErrDimensionMismatch)
}

// TestBounceAlongPath_OpensSpan verifies Compute and its channels are traced.
func TestBounceAlongPath_OpensSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	pot, err := potential.NewTiltedDoubleWell(1, 1, 1)
	require.NoError(t, err)
	fv, tv := pot.Vacua()
	opts := append(fast(), tunneling.WithMode(tunneling.QuantumOnly), tunneling.WithTracer(tp.Tracer("test")))
	s, err := tunneling.NewBounceAlongPath(pot, opts...)
	require.NoError(t, err)
	_, err = s.Compute(context.Background(), fv, tv)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, sp := range rec.Ended() {
		names[sp.Name()] = true
	}
	assert.True(t, names["BounceAlongPath.Compute"])
	assert.True(t, names["BounceAlongPath.quantum"])
}

// fakeTool returns a canned report and records the request.
type fakeTool struct {
	out  string
	err  error
	seen tunneling.Request
}

func (f *fakeTool) Run(_ context.Context, req tunneling.Request) ([]byte, error) {
	f.seen = req
	return []byte(f.out), f.err
}

func externalVacua(t *testing.T) (field.Minimum, field.Minimum) {
	t.Helper()
	fv, err := field.NewMinimum(field.Configuration{0, 0}, 1, 0)
	require.NoError(t, err)
	tv, err := field.NewMinimum(field.Configuration{3, 4}, -1, 0)
	require.NoError(t, err)
	return fv, tv
}

// TestExternal_ParsesReport verifies the tool report maps onto an Outcome.
func TestExternal_ParsesReport(t *testing.T) {
	tool := &fakeTool{out: "# tool v1\naction = 420.5\n\nthermal_survival_probability=0.75\nDominant_Temperature=12.5\nbarrier_resolved=true\n"}
	s, err := tunneling.New(tunneling.NameExternal, nil, tunneling.WithTool(tool))
	require.NoError(t, err)

	fv, tv := externalVacua(t)
	out, err := s.Compute(context.Background(), fv, tv)
	require.NoError(t, err)

	assert.Equal(t, tunneling.NameExternal, out.Strategy)
	assert.Equal(t, 420.5, out.ZeroTemperatureAction)
	assert.Equal(t, tunneling.QuantumSurvivalProbability(420.5, 5), out.QuantumSurvival)
	assert.Equal(t, 0.75, out.Thermal.SurvivalProbability)
	assert.Equal(t, 12.5, out.Thermal.DominantTemperature)
	assert.True(t, out.EnergyBarrierResolved)
	assert.Equal(t, []float64{3, 4}, tool.seen.TrueVacuum)
	assert.Equal(t, "QuantumThenThermal", tool.seen.Mode)
}

// TestExternal_Failures verifies every unusable tool report wraps
// ErrExternalToolFailure.
func TestExternal_Failures(t *testing.T) {
	fv, tv := externalVacua(t)
	toolErr := errors.New("exit status 3")
	for name, tool := range map[string]*fakeTool{
		"tool error":     {err: toolErr},
		"missing action": {out: "thermal_survival_probability=0.5\n"},
		"not a number":   {out: "action=lots\nthermal_survival_probability=0.5\n"},
		"no separator":   {out: "action 12\n"},
		"bad boolean":    {out: "action=1\nthermal_survival_probability=0.5\nbarrier_resolved=maybe\n"},
	} {
		s, err := tunneling.NewExternal(tunneling.WithTool(tool))
		require.NoError(t, err, name)
		_, err = s.Compute(context.Background(), fv, tv)
		assert.ErrorIs(t, err, tunneling.ErrExternalToolFailure, name)
	}

	s, err := tunneling.NewExternal(tunneling.WithTool(&fakeTool{err: toolErr}))
	require.NoError(t, err)
	_, err = s.Compute(context.Background(), fv, tv)
	assert.ErrorIs(t, err, toolErr)
}

// TestExternal_ThermalOnlyNeedsNoAction verifies a thermal-only report needs no
// zero-temperature action.
func TestExternal_ThermalOnlyNeedsNoAction(t *testing.T) {
	fv, tv := externalVacua(t)
	s, err := tunneling.NewExternal(
		tunneling.WithTool(&fakeTool{out: "thermal_survival_probability=0.001\n"}),
		tunneling.WithMode(tunneling.ThermalOnly),
	)
	require.NoError(t, err)
	out, err := s.Compute(context.Background(), fv, tv)
	require.NoError(t, err)
	assert.False(t, out.QuantumComputed)
	assert.True(t, out.Thermal.Decayed)
	assert.Equal(t, 0.001, out.SurvivalProbability())
}

// TestCommandTool_Run verifies the subprocess tool round trip and its stderr
// on failure.
func TestCommandTool_Run(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("no shell available")
	}
	tool := tunneling.CommandTool{Path: sh, Args: []string{"-c", "cat >/dev/null; echo action=12.5; echo thermal_survival_probability=1"}}
	s, err := tunneling.NewExternal(tunneling.WithTool(tool))
	require.NoError(t, err)

	fv, tv := externalVacua(t)
	out, err := s.Compute(context.Background(), fv, tv)
	require.NoError(t, err)
	assert.Equal(t, 12.5, out.ZeroTemperatureAction)

	failing := tunneling.CommandTool{Path: sh, Args: []string{"-c", "echo broken >&2; exit 3"}}
	s, err = tunneling.NewExternal(tunneling.WithTool(failing))
	require.NoError(t, err)
	_, err = s.Compute(context.Background(), fv, tv)
	assert.ErrorIs(t, err, tunneling.ErrExternalToolFailure)
	assert.Contains(t, err.Error(), "broken")
}

// TestNew_Dispatch verifies strategy construction by name.
func TestNew_Dispatch(t *testing.T) {
	pot, err := potential.NewTiltedDoubleWell(1, 1, 1)
	require.NoError(t, err)

	s, err := tunneling.New(tunneling.NameBounceAlongPath, pot, tunneling.WithMode(tunneling.QuantumOnly))
	require.NoError(t, err)
	assert.IsType(t, &tunneling.BounceAlongPath{}, s)

	_, err = tunneling.New("Teleport", pot)
	assert.ErrorIs(t, err, tunneling.ErrUnknownStrategy)

	_, err = tunneling.New(tunneling.NameExternal, nil)
	assert.ErrorIs(t, err, tunneling.ErrMissingTool)
}

// TestOptions_PanicOnProgrammerError verifies the functional options panic on
// invalid arguments.
func TestOptions_PanicOnProgrammerError(t *testing.T) {
	assert.Panics(t, func() { tunneling.WithSurvivalThreshold(1.5) })
	assert.Panics(t, func() { tunneling.WithSegments(2) })
	assert.Panics(t, func() { tunneling.WithCriticalTemperature(-1) })
	assert.Panics(t, func() { tunneling.WithTracer(nil) })
	assert.Panics(t, func() { tunneling.WithTool(nil) })
	assert.Panics(t, func() { tunneling.WithActionThreshold(math.NaN()) })
}
