package tunneling

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/lvtunnel/bounce"
	"github.com/katalvlaran/lvtunnel/field"
	"github.com/katalvlaran/lvtunnel/pathopt"
	"github.com/katalvlaran/lvtunnel/thermal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// BounceAlongPath is the in-core strategy: it optimizes the bounce action
// over tunnel paths at zero temperature and integrates the thermal decay
// rate below the critical temperature. It is immutable and safe for
// concurrent use when the potential is re-entrant.
type BounceAlongPath struct {
	pot     field.PotentialFunction
	cfg     settings
	shooter *bounce.Shooter
}

// NewBounceAlongPath validates the options against pot.
//
// Errors: field.ErrNilPotential, bounce.ErrBadOptions, pathopt.ErrBadOptions,
// ErrUnknownMode, ErrNotThermal (thermal mode without a critical
// temperature).
func NewBounceAlongPath(pot field.PotentialFunction, opts ...Option) (*BounceAlongPath, error) {
	if pot == nil {
		return nil, field.ErrNilPotential
	}
	cfg := gatherSettings(opts)
	if cfg.mode < QuantumOnly || cfg.mode > ThermalThenQuantum {
		return nil, fmt.Errorf("%s: %w", cfg.mode, ErrUnknownMode)
	}

	shooter, err := bounce.NewShooter(pot, cfg.shooter)
	if err != nil {
		return nil, err
	}
	if _, err = pathopt.New(pot, shooter, cfg.optimizer); err != nil {
		return nil, err
	}
	if cfg.mode.thermal() && cfg.criticalTemperature == 0 {
		if _, ok := pot.(field.ThermalPotential); !ok {
			return nil, ErrNotThermal
		}
	}

	return &BounceAlongPath{pot: pot, cfg: cfg, shooter: shooter}, nil
}

// Compute evaluates the configured channels for falseVacuum → trueVacuum.
// Degenerate bounces are reported in the Outcome; errors are reserved for
// invalid input, cancellation and thermal setup problems.
func (b *BounceAlongPath) Compute(ctx context.Context, falseVacuum, trueVacuum field.Minimum) (Outcome, error) {
	ctx, span := b.cfg.tracer.Start(ctx, "BounceAlongPath.Compute", trace.WithAttributes(
		attribute.String("lvtunnel.mode", b.cfg.mode.String()),
		attribute.Int("lvtunnel.fields", falseVacuum.Len()),
	))
	defer span.End()

	out, err := b.compute(ctx, falseVacuum, trueVacuum)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return out, err
	}
	span.SetAttributes(
		attribute.Float64("lvtunnel.zero_temperature_action", out.ZeroTemperatureAction),
		attribute.Float64("lvtunnel.survival_probability", out.SurvivalProbability()),
		attribute.Bool("lvtunnel.energy_barrier_resolved", out.EnergyBarrierResolved),
	)
	return out, nil
}

func (b *BounceAlongPath) compute(ctx context.Context, falseVacuum, trueVacuum field.Minimum) (Outcome, error) {
	out := newOutcome(NameBounceAlongPath, b.cfg.mode)
	if err := field.ValidatePair(b.pot, falseVacuum, trueVacuum); err != nil {
		return out, err
	}

	var err error
	switch b.cfg.mode {
	case QuantumOnly:
		err = b.quantumChannel(ctx, falseVacuum, trueVacuum, &out)
	case ThermalOnly:
		err = b.thermalChannel(ctx, falseVacuum, trueVacuum, &out)
	case QuantumThenThermal:
		if err = b.quantumChannel(ctx, falseVacuum, trueVacuum, &out); err == nil && !(out.QuantumSurvival < b.cfg.survivalThreshold) {
			err = b.thermalChannel(ctx, falseVacuum, trueVacuum, &out)
		}
	case ThermalThenQuantum:
		if err = b.thermalChannel(ctx, falseVacuum, trueVacuum, &out); err == nil && !out.Thermal.Decayed {
			err = b.quantumChannel(ctx, falseVacuum, trueVacuum, &out)
		}
	}
	return out, err
}

// atTemperature moves m to temperature when the potential knows how.
func (b *BounceAlongPath) atTemperature(m field.Minimum, temperature float64) field.Minimum {
	if m.Temperature() == temperature {
		return m
	}
	if tp, ok := b.pot.(field.ThermalPotential); ok {
		return tp.AdjustMinimum(m, temperature)
	}
	return m
}

// quantumChannel fills the zero-temperature channel.
func (b *BounceAlongPath) quantumChannel(ctx context.Context, falseVacuum, trueVacuum field.Minimum, out *Outcome) error {
	ctx, span := b.cfg.tracer.Start(ctx, "BounceAlongPath.quantum")
	defer span.End()

	fv, tv := b.atTemperature(falseVacuum, 0), b.atTemperature(trueVacuum, 0)
	scale := tunnelingScale(b.pot.ScaleSquaredRelevantToTunneling(fv, tv))

	opts := b.cfg.optimizer
	opts.Threshold = b.cfg.actionThreshold
	if math.IsNaN(opts.Threshold) {
		opts.Threshold = ActionThreshold(b.cfg.survivalThreshold, scale)
	}
	opt, err := pathopt.New(b.pot, b.shooter, opts)
	if err != nil {
		return err
	}
	res, err := opt.Optimize(ctx, fv, tv, 0)
	if err != nil {
		return err
	}

	out.ZeroTemperatureAction = res.Action
	out.QuantumSurvival = QuantumSurvivalProbability(res.Action, scale)
	out.QuantumComputed = true
	out.UpperBoundOnly = res.UpperBoundOnly
	out.EnergyBarrierResolved = out.EnergyBarrierResolved && res.EnergyBarrierResolved
	out.Degenerate = out.Degenerate || res.Bounce.Degenerate
	span.SetAttributes(
		attribute.Float64("lvtunnel.action", res.Action),
		attribute.Int("lvtunnel.evaluations", res.Evaluations),
	)
	return nil
}

// thermalChannel fills the finite-temperature channel.
func (b *BounceAlongPath) thermalChannel(ctx context.Context, falseVacuum, trueVacuum field.Minimum, out *Outcome) error {
	ctx, span := b.cfg.tracer.Start(ctx, "BounceAlongPath.thermal")
	defer span.End()

	tc := b.cfg.criticalTemperature
	if tc == 0 {
		tp, ok := b.pot.(field.ThermalPotential)
		if !ok {
			return ErrNotThermal
		}
		tc = tp.CriticalTemperature(falseVacuum, trueVacuum)
	}
	span.SetAttributes(attribute.Float64("lvtunnel.critical_temperature", tc))

	var (
		tOpts = b.cfg.thermal
		dT    = tc / float64(tOpts.Resolution)
	)
	action := func(ctx context.Context, temperature float64) (float64, error) {
		opts := b.cfg.optimizer
		opts.Threshold = thermalActionThreshold(tOpts.PrefactorLog, temperature, dT, b.cfg.survivalThreshold)
		opt, err := pathopt.New(b.pot, b.shooter, opts)
		if err != nil {
			return math.NaN(), err
		}
		res, err := opt.Optimize(ctx, b.atTemperature(falseVacuum, temperature), b.atTemperature(trueVacuum, temperature), temperature)
		if err != nil {
			return math.NaN(), err
		}
		return res.Action, nil
	}

	res, err := thermal.Integrate(ctx, tc, action, tOpts)
	if err != nil {
		return err
	}
	out.Thermal = res
	out.ThermalComputed = true
	span.SetAttributes(
		attribute.Float64("lvtunnel.thermal_survival_probability", res.SurvivalProbability),
		attribute.Float64("lvtunnel.dominant_temperature", res.DominantTemperature),
	)
	return nil
}

// thermalActionThreshold is the exponent below which half a grid interval
// alone pushes the survival integral past −ln(survival).
func thermalActionThreshold(prefactorLog, temperature, dT, survival float64) float64 {
	return prefactorLog - 2*math.Log(temperature) + math.Log(0.5*dT) - math.Log(-math.Log(survival))
}
