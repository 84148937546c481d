// Package config loads lvtunnel settings from the environment and then
// from command-line flags, flags taking precedence.
package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Potential kinds understood by the CLI.
const (
	PotentialTilted  = "tilted"
	PotentialValley  = "valley"
	PotentialThermal = "thermal"
)

// ErrInvalid reports a configuration value outside its domain.
var ErrInvalid = errors.New("config: invalid value")

// Config holds every lvtunnel setting.
type Config struct {
	Potential string  `env:"LVTUNNEL_POTENTIAL" envDefault:"tilted"`
	Lambda    float64 `env:"LVTUNNEL_LAMBDA" envDefault:"1"`
	VEV       float64 `env:"LVTUNNEL_VEV" envDefault:"1"`
	Epsilon   float64 `env:"LVTUNNEL_EPSILON" envDefault:"1"`
	Kappa     float64 `env:"LVTUNNEL_KAPPA" envDefault:"4"`
	Bend      float64 `env:"LVTUNNEL_BEND" envDefault:"0.5"`
	Alpha     float64 `env:"LVTUNNEL_ALPHA" envDefault:"0.01"`

	Strategy          string  `env:"LVTUNNEL_STRATEGY" envDefault:"BounceAlongPathWithThreshold"`
	Mode              string  `env:"LVTUNNEL_MODE" envDefault:"QuantumThenThermal"`
	PathType          string  `env:"LVTUNNEL_PATH_TYPE" envDefault:"NodesOnParallelPlanes"`
	Nodes             int     `env:"LVTUNNEL_NODES" envDefault:"3"`
	Segments          int     `env:"LVTUNNEL_SEGMENTS" envDefault:"64"`
	SurvivalThreshold float64 `env:"LVTUNNEL_SURVIVAL_THRESHOLD" envDefault:"0.01"`
	Evaluations       int     `env:"LVTUNNEL_EVALUATIONS" envDefault:"200"`
	Resolution        int     `env:"LVTUNNEL_THERMAL_RESOLUTION" envDefault:"32"`
	Workers           int     `env:"LVTUNNEL_WORKERS" envDefault:"1"`
	Tool              string  `env:"LVTUNNEL_TOOL"`

	DBPath       string `env:"LVTUNNEL_DB_PATH"`
	OTelEndpoint string `env:"LVTUNNEL_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"LVTUNNEL_OTEL_ENABLED" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("config: flag parser is required")
	}
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Potential, "potential", cfg.Potential, "Potential kind: tilted, valley or thermal")
	fs.Float64Var(&cfg.Lambda, "lambda", cfg.Lambda, "Quartic coupling of the double well")
	fs.Float64Var(&cfg.VEV, "vev", cfg.VEV, "Position of the minima at ±vev")
	fs.Float64Var(&cfg.Epsilon, "epsilon", cfg.Epsilon, "Energy splitting between the minima")
	fs.Float64Var(&cfg.Kappa, "kappa", cfg.Kappa, "Valley stiffness (valley potential)")
	fs.Float64Var(&cfg.Bend, "bend", cfg.Bend, "Valley bend (valley potential)")
	fs.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "Thermal tilt coefficient (thermal potential)")
	fs.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "Tunneling strategy name")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "Tunneling mode")
	fs.StringVar(&cfg.PathType, "path", cfg.PathType, "Tunnel path type")
	fs.IntVar(&cfg.Nodes, "nodes", cfg.Nodes, "Interior path nodes")
	fs.IntVar(&cfg.Segments, "segments", cfg.Segments, "Spline segments")
	fs.Float64Var(&cfg.SurvivalThreshold, "survival", cfg.SurvivalThreshold, "Survival probability threshold")
	fs.IntVar(&cfg.Evaluations, "evaluations", cfg.Evaluations, "Maximum action evaluations per optimization")
	fs.IntVar(&cfg.Resolution, "resolution", cfg.Resolution, "Thermal temperature grid intervals")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel thermal action evaluations")
	fs.StringVar(&cfg.Tool, "tool", cfg.Tool, "Executable for the External strategy")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite ledger path (empty disables persistence)")
	fs.StringVar(&cfg.OTelEndpoint, "otel-endpoint", cfg.OTelEndpoint, "OTLP/HTTP trace endpoint URL")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the ranges the flag parser cannot.
func (c Config) Validate() error {
	switch c.Potential {
	case PotentialTilted, PotentialValley, PotentialThermal:
	default:
		return fmt.Errorf("%w: potential %q", ErrInvalid, c.Potential)
	}
	switch {
	case !(c.Lambda > 0):
		return fmt.Errorf("%w: lambda %g", ErrInvalid, c.Lambda)
	case !(c.VEV > 0):
		return fmt.Errorf("%w: vev %g", ErrInvalid, c.VEV)
	case c.Nodes < 0:
		return fmt.Errorf("%w: nodes %d", ErrInvalid, c.Nodes)
	case c.Segments < 3:
		return fmt.Errorf("%w: segments %d", ErrInvalid, c.Segments)
	case !(c.SurvivalThreshold > 0 && c.SurvivalThreshold < 1):
		return fmt.Errorf("%w: survival threshold %g", ErrInvalid, c.SurvivalThreshold)
	case c.Evaluations < 1:
		return fmt.Errorf("%w: evaluations %d", ErrInvalid, c.Evaluations)
	case c.Resolution < 2:
		return fmt.Errorf("%w: resolution %d", ErrInvalid, c.Resolution)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	return nil
}
