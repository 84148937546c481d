package tunneling

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvtunnel/field"
	"github.com/katalvlaran/lvtunnel/thermal"
)

// Sentinel errors.
var (
	// ErrUnknownStrategy indicates a strategy name New does not know.
	ErrUnknownStrategy = errors.New("tunneling: unknown strategy")

	// ErrUnknownMode indicates a Mode outside the four defined values.
	ErrUnknownMode = errors.New("tunneling: unknown tunnelling mode")

	// ErrNotThermal indicates a thermal mode without a critical temperature.
	ErrNotThermal = errors.New("tunneling: potential has no critical temperature")

	// ErrMissingTool indicates the External strategy was built without a Tool.
	ErrMissingTool = errors.New("tunneling: external strategy needs a tool")

	// ErrExternalToolFailure wraps a failed run or an unusable report of
	// the external tool.
	ErrExternalToolFailure = errors.New("tunneling: external tool failure")
)

// Strategy names accepted by New.
const (
	NameBounceAlongPath = "BounceAlongPathWithThreshold"
	NameExternal        = "External"
)

// Strategy computes the decay of falseVacuum towards trueVacuum.
type Strategy interface {
	Compute(ctx context.Context, falseVacuum, trueVacuum field.Minimum) (Outcome, error)
}

// Mode selects which decay channels a strategy evaluates, and in which
// order.
type Mode int

const (
	// QuantumOnly evaluates the zero-temperature action alone.
	QuantumOnly Mode = iota
	// ThermalOnly walks the temperature grid alone.
	ThermalOnly
	// QuantumThenThermal skips the thermal walk once the quantum survival
	// is already below threshold.
	QuantumThenThermal
	// ThermalThenQuantum skips the quantum action once the thermal walk
	// decayed.
	ThermalThenQuantum
)

var modeNames = [...]string{"QuantumOnly", "ThermalOnly", "QuantumThenThermal", "ThermalThenQuantum"}

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts the mode names case-insensitively.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

func (m Mode) quantum() bool { return m != ThermalOnly }
func (m Mode) thermal() bool { return m != QuantumOnly }

// Outcome is the result of one Compute call. Channels that were not
// evaluated keep NaN actions and unit survival probabilities.
type Outcome struct {
	Strategy string
	Mode     Mode

	ZeroTemperatureAction float64
	QuantumSurvival       float64
	QuantumComputed       bool

	// UpperBoundOnly is set when the action threshold stopped the search.
	UpperBoundOnly bool

	Thermal         thermal.Result
	ThermalComputed bool

	EnergyBarrierResolved bool
	Degenerate            bool
}

func newOutcome(strategy string, mode Mode) Outcome {
	return Outcome{
		Strategy:              strategy,
		Mode:                  mode,
		ZeroTemperatureAction: math.NaN(),
		QuantumSurvival:       1,
		Thermal:               thermal.Result{SurvivalProbability: 1},
		EnergyBarrierResolved: true,
	}
}

// SurvivalProbability multiplies the evaluated channels.
func (o Outcome) SurvivalProbability() float64 {
	p := 1.0
	if o.QuantumComputed {
		p *= o.QuantumSurvival
	}
	if o.ThermalComputed {
		p *= o.Thermal.SurvivalProbability
	}
	return p
}

// constructors maps strategy names to their builders.
var constructors = map[string]func(pot field.PotentialFunction, opts ...Option) (Strategy, error){
	NameBounceAlongPath: func(pot field.PotentialFunction, opts ...Option) (Strategy, error) {
		return NewBounceAlongPath(pot, opts...)
	},
	NameExternal: func(_ field.PotentialFunction, opts ...Option) (Strategy, error) {
		return NewExternal(opts...)
	},
}

// New builds the strategy registered under name.
func New(name string, pot field.PotentialFunction, opts ...Option) (Strategy, error) {
	build, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
	return build(pot, opts...)
}
