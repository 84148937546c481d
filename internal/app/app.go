// Package app runs one lvtunnel calculation described by a config.Config.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/katalvlaran/lvtunnel/field"
	"github.com/katalvlaran/lvtunnel/internal/config"
	"github.com/katalvlaran/lvtunnel/internal/store"
	"github.com/katalvlaran/lvtunnel/pathopt"
	"github.com/katalvlaran/lvtunnel/potential"
	"github.com/katalvlaran/lvtunnel/thermal"
	"github.com/katalvlaran/lvtunnel/tunneling"
	"github.com/katalvlaran/lvtunnel/tunnelpath"
)

// ServiceName identifies the CLI in traces.
const ServiceName = "lvtunnel"

// Setup is the potential and vacuum pair a run works on.
type Setup struct {
	Potential   field.PotentialFunction
	Description string
	FalseVacuum field.Minimum
	TrueVacuum  field.Minimum
}

// Report is the result of Run.
type Report struct {
	Setup
	Outcome tunneling.Outcome
	// RunID is empty when no store was given.
	RunID string
}

// BuildSetup constructs the configured potential and its vacua.
func BuildSetup(cfg config.Config) (Setup, error) {
	well, err := potential.NewTiltedDoubleWell(cfg.Lambda, cfg.VEV, cfg.Epsilon)
	if err != nil {
		return Setup{}, err
	}
	switch cfg.Potential {
	case config.PotentialTilted:
		fv, tv := well.Vacua()
		return Setup{well, fmt.Sprintf("tilted(lambda=%g, vev=%g, epsilon=%g)", cfg.Lambda, cfg.VEV, cfg.Epsilon), fv, tv}, nil
	case config.PotentialValley:
		v, err := potential.NewCurvedValley(well, cfg.Kappa, cfg.Bend)
		if err != nil {
			return Setup{}, err
		}
		fv, tv := v.Vacua()
		return Setup{v, fmt.Sprintf("valley(lambda=%g, vev=%g, epsilon=%g, kappa=%g, bend=%g)",
			cfg.Lambda, cfg.VEV, cfg.Epsilon, cfg.Kappa, cfg.Bend), fv, tv}, nil
	case config.PotentialThermal:
		th, err := potential.NewThermalDoubleWell(cfg.Lambda, cfg.VEV, cfg.Epsilon, cfg.Alpha)
		if err != nil {
			return Setup{}, err
		}
		fv, tv := th.Vacua(0)
		return Setup{th, fmt.Sprintf("thermal(lambda=%g, vev=%g, epsilon=%g, alpha=%g)",
			cfg.Lambda, cfg.VEV, cfg.Epsilon, cfg.Alpha), fv, tv}, nil
	}
	return Setup{}, fmt.Errorf("%w: potential %q", config.ErrInvalid, cfg.Potential)
}

// StrategyOptions translates cfg into tunneling options.
func StrategyOptions(cfg config.Config) ([]tunneling.Option, error) {
	mode, err := tunneling.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	simplex := pathopt.DefaultOptions().Simplex
	simplex.MaxEvaluations = cfg.Evaluations
	th := thermal.DefaultOptions()
	th.Resolution = cfg.Resolution
	th.Workers = cfg.Workers

	opts := []tunneling.Option{
		tunneling.WithMode(mode),
		tunneling.WithSurvivalThreshold(cfg.SurvivalThreshold),
		tunneling.WithPathType(cfg.PathType, tunnelpath.WithNodes(cfg.Nodes)),
		tunneling.WithSegments(cfg.Segments),
		tunneling.WithSimplex(simplex),
		tunneling.WithThermalOptions(th),
	}
	if cfg.Tool != "" {
		opts = append(opts, tunneling.WithTool(tunneling.CommandTool{Path: cfg.Tool}))
	}
	return opts, nil
}

// Run computes the configured strategy and, when st is non-nil, records
// the outcome.
func Run(ctx context.Context, cfg config.Config, st *store.Store) (Report, error) {
	setup, err := BuildSetup(cfg)
	if err != nil {
		return Report{}, err
	}
	opts, err := StrategyOptions(cfg)
	if err != nil {
		return Report{}, err
	}
	strategy, err := tunneling.New(cfg.Strategy, setup.Potential, opts...)
	if err != nil {
		return Report{}, err
	}
	out, err := strategy.Compute(ctx, setup.FalseVacuum, setup.TrueVacuum)
	if err != nil {
		return Report{}, fmt.Errorf("compute %s: %w", cfg.Strategy, err)
	}

	rep := Report{Setup: setup, Outcome: out}
	if st != nil {
		saved, err := st.Save(ctx, Record(setup, out))
		if err != nil {
			return rep, err
		}
		rep.RunID = saved.ID
	}
	return rep, nil
}

// Record flattens an outcome into a ledger row.
func Record(setup Setup, out tunneling.Outcome) store.Run {
	run := store.Run{
		Strategy:              out.Strategy,
		Mode:                  out.Mode.String(),
		Potential:             setup.Description,
		FalseVacuum:           setup.FalseVacuum.Fields(),
		TrueVacuum:            setup.TrueVacuum.Fields(),
		ZeroTemperatureAction: out.ZeroTemperatureAction,
		QuantumSurvival:       out.QuantumSurvival,
		ThermalSurvival:       out.Thermal.SurvivalProbability,
		DominantTemperature:   out.Thermal.DominantTemperature,
		SurvivalProbability:   out.SurvivalProbability(),
		EnergyBarrierResolved: out.EnergyBarrierResolved,
		Degenerate:            out.Degenerate,
	}
	res := out.Thermal
	for i := range res.Temperatures {
		run.Thermal = append(run.Thermal, store.ThermalStep{
			Temperature: res.Temperatures[i],
			Action:      res.Actions[i],
			Cumulative:  res.Cumulative[i],
		})
	}
	return run
}

// Print writes a human-readable summary of r.
func (r Report) Print(w io.Writer) {
	o := r.Outcome
	fmt.Fprintf(w, "potential:             %s\n", r.Description)
	fmt.Fprintf(w, "strategy:              %s (%s)\n", o.Strategy, o.Mode)
	if o.QuantumComputed {
		bound := ""
		if o.UpperBoundOnly {
			bound = " (upper bound)"
		}
		fmt.Fprintf(w, "zero-T action:         %g%s\n", o.ZeroTemperatureAction, bound)
		fmt.Fprintf(w, "quantum survival:      %g\n", o.QuantumSurvival)
	}
	if o.ThermalComputed {
		fmt.Fprintf(w, "thermal survival:      %g\n", o.Thermal.SurvivalProbability)
		fmt.Fprintf(w, "dominant temperature:  %g\n", o.Thermal.DominantTemperature)
	}
	fmt.Fprintf(w, "survival probability:  %g\n", o.SurvivalProbability())
	fmt.Fprintf(w, "barrier resolved:      %t\n", o.EnergyBarrierResolved)
	if r.RunID != "" {
		fmt.Fprintf(w, "run id:                %s\n", r.RunID)
	}
}
