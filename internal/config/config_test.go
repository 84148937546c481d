package config_test

import (
	"flag"
	"io"
	"testing"

	"github.com/katalvlaran/lvtunnel/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("lvtunnel", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// TestParseConfig_Defaults verifies the defaults without env or flags.
func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := config.ParseConfig(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, config.PotentialTilted, cfg.Potential)
	assert.Equal(t, 1.0, cfg.Epsilon)
	assert.Equal(t, "BounceAlongPathWithThreshold", cfg.Strategy)
	assert.Equal(t, "QuantumThenThermal", cfg.Mode)
	assert.Equal(t, 64, cfg.Segments)
	assert.Equal(t, 0.01, cfg.SurvivalThreshold)
	assert.True(t, cfg.OTelEnabled)
	assert.Empty(t, cfg.DBPath)
}

// TestParseConfig_EnvThenFlags verifies flags override the environment.
func TestParseConfig_EnvThenFlags(t *testing.T) {
	t.Setenv("LVTUNNEL_EPSILON", "0.25")
	t.Setenv("LVTUNNEL_SEGMENTS", "128")
	t.Setenv("LVTUNNEL_MODE", "QuantumOnly")

	cfg, err := config.ParseConfig(newFlagSet(), []string{"-segments", "32", "-potential", "valley"})
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Epsilon)
	assert.Equal(t, 32, cfg.Segments, "flags override the environment")
	assert.Equal(t, "QuantumOnly", cfg.Mode)
	assert.Equal(t, config.PotentialValley, cfg.Potential)
}

// TestParseConfig_Errors verifies malformed and out-of-range settings fail.
func TestParseConfig_Errors(t *testing.T) {
	t.Run("bad env", func(t *testing.T) {
		t.Setenv("LVTUNNEL_SEGMENTS", "many")
		_, err := config.ParseConfig(newFlagSet(), nil)
		assert.Error(t, err)
	})
	t.Run("bad flag", func(t *testing.T) {
		_, err := config.ParseConfig(newFlagSet(), []string{"-nope"})
		assert.Error(t, err)
	})
	t.Run("nil flag set", func(t *testing.T) {
		_, err := config.ParseConfig(nil, nil)
		assert.Error(t, err)
	})
	for _, args := range [][]string{
		{"-potential", "sextic"},
		{"-lambda", "0"},
		{"-segments", "2"},
		{"-survival", "1"},
		{"-resolution", "1"},
		{"-workers", "0"},
	} {
		_, err := config.ParseConfig(newFlagSet(), args)
		assert.ErrorIs(t, err, config.ErrInvalid, "%v", args)
	}
}
