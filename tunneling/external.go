package tunneling

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvtunnel/field"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Output keys understood by External.
const (
	KeyAction                     = "action"
	KeySurvivalProbability        = "survival_probability"
	KeyThermalSurvivalProbability = "thermal_survival_probability"
	KeyDominantTemperature        = "dominant_temperature"
	KeyThermalAction              = "thermal_action"
	KeyBarrierResolved            = "barrier_resolved"
)

// Request is what an external tool receives.
type Request struct {
	Mode                string    `json:"mode"`
	FalseVacuum         []float64 `json:"false_vacuum"`
	TrueVacuum          []float64 `json:"true_vacuum"`
	FalsePotential      float64   `json:"false_potential"`
	TruePotential       float64   `json:"true_potential"`
	Temperature         float64   `json:"temperature"`
	CriticalTemperature float64   `json:"critical_temperature,omitempty"`
	SurvivalThreshold   float64   `json:"survival_threshold"`
}

// Tool runs an external tunnelling calculation and returns its raw
// key=value report.
type Tool interface {
	Run(ctx context.Context, req Request) ([]byte, error)
}

// CommandTool runs an executable with the JSON-encoded Request on stdin
// and returns its standard output.
type CommandTool struct {
	Path string
	Args []string
	Dir  string
}

// Run implements Tool.
func (c CommandTool) Run(ctx context.Context, req Request) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = bytes.NewReader(payload)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w (stderr: %s)", c.Path, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// External adapts a Tool to the Strategy contract. The tool decides how
// to compute; External only validates its report.
type External struct {
	cfg settings
}

// NewExternal requires WithTool.
func NewExternal(opts ...Option) (*External, error) {
	cfg := gatherSettings(opts)
	if cfg.tool == nil {
		return nil, ErrMissingTool
	}
	if cfg.mode < QuantumOnly || cfg.mode > ThermalThenQuantum {
		return nil, fmt.Errorf("%s: %w", cfg.mode, ErrUnknownMode)
	}
	return &External{cfg: cfg}, nil
}

// Compute runs the tool once and maps its report onto an Outcome.
// Any tool error or unusable report wraps ErrExternalToolFailure.
func (e *External) Compute(ctx context.Context, falseVacuum, trueVacuum field.Minimum) (Outcome, error) {
	ctx, span := e.cfg.tracer.Start(ctx, "External.Compute", trace.WithAttributes(
		attribute.String("lvtunnel.mode", e.cfg.mode.String()),
	))
	defer span.End()

	out, err := e.compute(ctx, falseVacuum, trueVacuum)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return out, err
}

func (e *External) compute(ctx context.Context, falseVacuum, trueVacuum field.Minimum) (Outcome, error) {
	out := newOutcome(NameExternal, e.cfg.mode)
	if falseVacuum.Len() == 0 || trueVacuum.Len() == 0 {
		return out, field.ErrEmptyConfiguration
	}
	if falseVacuum.Len() != trueVacuum.Len() {
		return out, field.ErrDimensionMismatch
	}

	raw, err := e.cfg.tool.Run(ctx, Request{
		Mode:                e.cfg.mode.String(),
		FalseVacuum:         falseVacuum.Fields(),
		TrueVacuum:          trueVacuum.Fields(),
		FalsePotential:      falseVacuum.Potential(),
		TruePotential:       trueVacuum.Potential(),
		Temperature:         falseVacuum.Temperature(),
		CriticalTemperature: e.cfg.criticalTemperature,
		SurvivalThreshold:   e.cfg.survivalThreshold,
	})
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrExternalToolFailure, err)
	}
	rep, err := parseReport(raw)
	if err != nil {
		return out, err
	}

	if b, ok, err := rep.boolean(KeyBarrierResolved); err != nil {
		return out, err
	} else if ok {
		out.EnergyBarrierResolved = b
	}

	if e.cfg.mode.quantum() {
		action, err := rep.required(KeyAction)
		if err != nil {
			return out, err
		}
		out.ZeroTemperatureAction = action
		out.QuantumComputed = true
		out.QuantumSurvival, err = rep.optional(KeySurvivalProbability, func() float64 {
			d := falseVacuum.Fields().Distance(trueVacuum.Fields())
			return QuantumSurvivalProbability(action, tunnelingScale(d*d))
		})
		if err != nil {
			return out, err
		}
	}

	if e.cfg.mode.thermal() {
		p, err := rep.required(KeyThermalSurvivalProbability)
		if err != nil {
			return out, err
		}
		out.ThermalComputed = true
		out.Thermal.SurvivalProbability = p
		out.Thermal.Decayed = p < e.cfg.survivalThreshold
		if out.Thermal.DominantTemperature, err = rep.optional(KeyDominantTemperature, func() float64 { return 0 }); err != nil {
			return out, err
		}
		if out.Thermal.DominantAction, err = rep.optional(KeyThermalAction, func() float64 { return 0 }); err != nil {
			return out, err
		}
	}

	return out, nil
}

// report is a parsed key=value tool output.
type report map[string]string

// parseReport reads one key=value pair per line. Blank lines and lines
// starting with '#' are skipped; keys are case-insensitive.
func parseReport(raw []byte) (report, error) {
	rep := report{}
	sc := bufio.NewScanner(bytes.NewReader(raw))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing '='", ErrExternalToolFailure, line)
		}
		rep[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExternalToolFailure, err)
	}
	return rep, nil
}

func (r report) number(key string) (float64, bool, error) {
	s, ok := r[key]
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %s=%q is not a number", ErrExternalToolFailure, key, s)
	}
	return v, true, nil
}

func (r report) required(key string) (float64, error) {
	v, ok, err := r.number(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: no %s in output", ErrExternalToolFailure, key)
	}
	return v, nil
}

func (r report) optional(key string, fallback func() float64) (float64, error) {
	v, ok, err := r.number(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback(), nil
	}
	return v, nil
}

func (r report) boolean(key string) (bool, bool, error) {
	s, ok := r[key]
	if !ok {
		return false, false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, true, fmt.Errorf("%w: %s=%q is not a boolean", ErrExternalToolFailure, key, s)
	}
	return b, true, nil
}
