package store_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lvtunnel/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRun() store.Run {
	return store.Run{
		Strategy:              "BounceAlongPathWithThreshold",
		Mode:                  "QuantumThenThermal",
		Potential:             "tilted(lambda=1, vev=1, epsilon=1)",
		FalseVacuum:           []float64{-1},
		TrueVacuum:            []float64{1},
		ZeroTemperatureAction: 123.5,
		QuantumSurvival:       0,
		ThermalSurvival:       1,
		DominantTemperature:   math.NaN(),
		SurvivalProbability:   0,
		EnergyBarrierResolved: true,
		Thermal: []store.ThermalStep{
			{Temperature: 8.75, Action: 40, Cumulative: 1e-3},
			{Temperature: 7.5, Action: math.Inf(1), Cumulative: 1e-3},
		},
	}
}

// TestSaveAndGet verifies a saved run reads back unchanged.
func TestSaveAndGet(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, sampleRun())
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.False(t, saved.CreatedAt.IsZero())

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, saved.Strategy, got.Strategy)
	assert.Equal(t, saved.Potential, got.Potential)
	assert.Equal(t, []float64{-1}, got.FalseVacuum)
	assert.Equal(t, []float64{1}, got.TrueVacuum)
	assert.Equal(t, 123.5, got.ZeroTemperatureAction)
	assert.True(t, math.IsNaN(got.DominantTemperature), "NaN survives storage")
	assert.True(t, got.EnergyBarrierResolved)
	assert.False(t, got.Degenerate)

	require.Len(t, got.Thermal, 2)
	assert.Equal(t, 8.75, got.Thermal[0].Temperature)
	assert.True(t, math.IsInf(got.Thermal[1].Action, 1))
}

// TestGet_NotFound verifies the not-found sentinel.
func TestGet_NotFound(t *testing.T) {
	s := tempStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestList_NewestFirst verifies List orders runs newest first.
func TestList_NewestFirst(t *testing.T) {
	s := tempStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		r := sampleRun()
		r.ZeroTemperatureAction = float64(i)
		saved, err := s.Save(ctx, r)
		require.NoError(t, err)
		ids = append(ids, saved.ID)
	}

	runs, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)
	assert.Empty(t, runs[0].Thermal)
}

// TestOpen_Reopen verifies runs persist across reopen.
func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	saved, err := s.Save(context.Background(), sampleRun())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
}
