// Package store keeps a SQLite ledger of tunneling runs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound reports an unknown run ID.
var ErrNotFound = errors.New("store: run not found")

// timeLayout sorts lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Floats are stored as TEXT so NaN and ±Inf survive the round trip.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id                  TEXT PRIMARY KEY,
	created_at              TEXT NOT NULL,
	strategy                TEXT NOT NULL,
	mode                    TEXT NOT NULL,
	potential               TEXT NOT NULL,
	false_vacuum            TEXT NOT NULL,
	true_vacuum             TEXT NOT NULL,
	zero_temperature_action TEXT NOT NULL,
	quantum_survival        TEXT NOT NULL,
	thermal_survival        TEXT NOT NULL,
	dominant_temperature    TEXT NOT NULL,
	survival_probability    TEXT NOT NULL,
	barrier_resolved        INTEGER NOT NULL,
	degenerate              INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS thermal_steps (
	run_id      TEXT NOT NULL,
	step        INTEGER NOT NULL,
	temperature TEXT NOT NULL,
	action      TEXT NOT NULL,
	cumulative  TEXT NOT NULL,
	PRIMARY KEY (run_id, step),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

// ThermalStep is one evaluated point of the thermal temperature grid.
type ThermalStep struct {
	Temperature float64
	Action      float64
	Cumulative  float64
}

// Run is one persisted strategy outcome.
type Run struct {
	ID        string
	CreatedAt time.Time

	Strategy  string
	Mode      string
	Potential string

	FalseVacuum []float64
	TrueVacuum  []float64

	ZeroTemperatureAction float64
	QuantumSurvival       float64
	ThermalSurvival       float64
	DominantTemperature   float64
	SurvivalProbability   float64

	EnergyBarrierResolved bool
	Degenerate            bool

	Thermal []ThermalStep
}

// Store manages the run ledger.
type Store struct {
	db *sql.DB
}

// Open opens a SQLite database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON", schema} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts run with a fresh ID and creation time and returns the
// stored copy.
func (s *Store) Save(ctx context.Context, run Run) (Run, error) {
	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	fv, err := json.Marshal(run.FalseVacuum)
	if err != nil {
		return Run{}, fmt.Errorf("marshal false vacuum: %w", err)
	}
	tv, err := json.Marshal(run.TrueVacuum)
	if err != nil {
		return Run{}, fmt.Errorf("marshal true vacuum: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at, strategy, mode, potential, false_vacuum, true_vacuum,
			zero_temperature_action, quantum_survival, thermal_survival, dominant_temperature,
			survival_probability, barrier_resolved, degenerate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(timeLayout), run.Strategy, run.Mode, run.Potential,
		string(fv), string(tv),
		formatFloat(run.ZeroTemperatureAction), formatFloat(run.QuantumSurvival),
		formatFloat(run.ThermalSurvival), formatFloat(run.DominantTemperature),
		formatFloat(run.SurvivalProbability), run.EnergyBarrierResolved, run.Degenerate,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	for i, st := range run.Thermal {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO thermal_steps (run_id, step, temperature, action, cumulative) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, formatFloat(st.Temperature), formatFloat(st.Action), formatFloat(st.Cumulative),
		)
		if err != nil {
			return Run{}, fmt.Errorf("insert thermal step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit: %w", err)
	}
	return run, nil
}

const selectRun = `SELECT run_id, created_at, strategy, mode, potential, false_vacuum, true_vacuum,
	zero_temperature_action, quantum_survival, thermal_survival, dominant_temperature,
	survival_probability, barrier_resolved, degenerate FROM runs`

// Get retrieves a run, including its thermal steps.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, selectRun+` WHERE run_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT temperature, action, cumulative FROM thermal_steps WHERE run_id = ? ORDER BY step`, id)
	if err != nil {
		return Run{}, fmt.Errorf("get thermal steps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t, a, c string
		if err := rows.Scan(&t, &a, &c); err != nil {
			return Run{}, fmt.Errorf("scan thermal step: %w", err)
		}
		var st ThermalStep
		if st.Temperature, err = parseFloat(t); err != nil {
			return Run{}, err
		}
		if st.Action, err = parseFloat(a); err != nil {
			return Run{}, err
		}
		if st.Cumulative, err = parseFloat(c); err != nil {
			return Run{}, err
		}
		run.Thermal = append(run.Thermal, st)
	}
	return run, rows.Err()
}

// List returns the most recent runs, newest first, without thermal steps.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRun+` ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run                           Run
		created, fv, tv               string
		action, qs, ts, dom, survival string
	)
	err := row.Scan(&run.ID, &created, &run.Strategy, &run.Mode, &run.Potential, &fv, &tv,
		&action, &qs, &ts, &dom, &survival, &run.EnergyBarrierResolved, &run.Degenerate)
	if err != nil {
		return Run{}, err
	}
	if run.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	if err = json.Unmarshal([]byte(fv), &run.FalseVacuum); err != nil {
		return Run{}, fmt.Errorf("unmarshal false vacuum: %w", err)
	}
	if err = json.Unmarshal([]byte(tv), &run.TrueVacuum); err != nil {
		return Run{}, fmt.Errorf("unmarshal true vacuum: %w", err)
	}
	for _, f := range []struct {
		dst *float64
		src string
	}{
		{&run.ZeroTemperatureAction, action},
		{&run.QuantumSurvival, qs},
		{&run.ThermalSurvival, ts},
		{&run.DominantTemperature, dom},
		{&run.SurvivalProbability, survival},
	} {
		if *f.dst, err = parseFloat(f.src); err != nil {
			return Run{}, err
		}
	}
	return run, nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse stored number %q: %w", s, err)
	}
	return v, nil
}
