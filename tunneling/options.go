package tunneling

import (
	"math"

	"github.com/katalvlaran/lvtunnel/bounce"
	"github.com/katalvlaran/lvtunnel/pathopt"
	"github.com/katalvlaran/lvtunnel/thermal"
	"github.com/katalvlaran/lvtunnel/tunnelpath"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName names the default tracer.
const instrumentationName = "github.com/katalvlaran/lvtunnel/tunneling"

// Panic messages for invalid option arguments (programmer error).
const (
	panicSurvivalInvalid = "tunneling: survival threshold must lie in (0,1)"
	panicSegmentsInvalid = "tunneling: at least 3 spline segments are required"
	panicTemperature     = "tunneling: critical temperature must be finite and positive"
	panicNilTracer       = "tunneling: tracer must be non-nil"
	panicNilTool         = "tunneling: tool must be non-nil"
	panicThresholdNaN    = "tunneling: action threshold must not be NaN"
)

// Option configures a strategy.
type Option func(*settings)

// settings is the union of every strategy's configuration.
type settings struct {
	mode                Mode
	survivalThreshold   float64
	actionThreshold     float64 // NaN ⇒ derived from survivalThreshold
	criticalTemperature float64 // 0 ⇒ from field.ThermalPotential
	optimizer           pathopt.Options
	shooter             bounce.Options
	thermal             thermal.Options
	tracer              trace.Tracer
	tool                Tool
}

func gatherSettings(opts []Option) settings {
	s := settings{
		mode:              QuantumThenThermal,
		survivalThreshold: DefaultSurvivalThreshold,
		actionThreshold:   math.NaN(),
		optimizer:         pathopt.DefaultOptions(),
		shooter:           bounce.DefaultOptions(),
		thermal:           thermal.DefaultOptions(),
		tracer:            otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.thermal.SurvivalProbabilityThreshold = s.survivalThreshold
	return s
}

// WithMode selects the decay channels.
func WithMode(m Mode) Option { return func(s *settings) { s.mode = m } }

// WithSurvivalThreshold sets the survival probability below which the
// vacuum counts as decayed. Panics outside (0,1).
func WithSurvivalThreshold(p float64) Option {
	if !(p > 0 && p < 1) {
		panic(panicSurvivalInvalid)
	}
	return func(s *settings) { s.survivalThreshold = p }
}

// WithActionThreshold fixes the zero-temperature action at which the path
// optimizer stops early. Use math.Inf(-1) to always optimize fully.
func WithActionThreshold(a float64) Option {
	if math.IsNaN(a) {
		panic(panicThresholdNaN)
	}
	return func(s *settings) { s.actionThreshold = a }
}

// WithCriticalTemperature overrides the potential's critical temperature.
func WithCriticalTemperature(tc float64) Option {
	if !(tc > 0) || math.IsInf(tc, 1) {
		panic(panicTemperature)
	}
	return func(s *settings) { s.criticalTemperature = tc }
}

// WithPathType selects the tunnelpath variant by configuration string.
func WithPathType(name string, opts ...tunnelpath.Option) Option {
	return func(s *settings) {
		s.optimizer.PathType = name
		s.optimizer.PathOptions = opts
	}
}

// WithSegments sets the spline resolution.
func WithSegments(n int) Option {
	if n < 3 {
		panic(panicSegmentsInvalid)
	}
	return func(s *settings) { s.optimizer.Segments = n }
}

// WithSimplex replaces the Nelder–Mead budget.
func WithSimplex(o pathopt.SimplexOptions) Option {
	return func(s *settings) { s.optimizer.Simplex = o }
}

// WithShooterOptions replaces the bounce shooter options.
func WithShooterOptions(o bounce.Options) Option {
	return func(s *settings) { s.shooter = o }
}

// WithThermalOptions replaces the thermal integration options. The
// survival threshold always follows WithSurvivalThreshold.
func WithThermalOptions(o thermal.Options) Option {
	return func(s *settings) { s.thermal = o }
}

// WithTracer sets the tracer used for Compute spans.
func WithTracer(t trace.Tracer) Option {
	if t == nil {
		panic(panicNilTracer)
	}
	return func(s *settings) { s.tracer = t }
}

// WithTool sets the external tool of the External strategy.
func WithTool(t Tool) Option {
	if t == nil {
		panic(panicNilTool)
	}
	return func(s *settings) { s.tool = t }
}
