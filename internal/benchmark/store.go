// Package benchmark runs scenario-by-agent evaluation matrices, persists the
// outcomes to SQLite, and renders comparison reports.
package benchmark

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/isdbench/addiebench/internal/domain"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Run is one benchmark execution: a judge configuration applied to a
// scenario-by-agent matrix.
type Run struct {
	ID         string  `json:"id"`
	Provider   string  `json:"provider"`
	Model      string  `json:"model"`
	StartedAt  string  `json:"started_at"`
	FinishedAt *string `json:"finished_at,omitempty"`
}

// Result is one evaluated (scenario, agent) cell of a run.
type Result struct {
	RunID      string            `json:"run_id"`
	ScenarioID string            `json:"scenario_id"`
	AgentID    string            `json:"agent_id"`
	Score      domain.ADDIEScore `json:"score"`
	ElapsedMS  int64             `json:"elapsed_ms"`
	CreatedAt  string            `json:"created_at"`
}

// StoreConfig holds result store configuration.
type StoreConfig struct {
	// DataDir is where the database file lives. Created if missing.
	DataDir string
}

// Store persists benchmark runs and their results.
type Store struct {
	db *sql.DB
}

// NewStore opens the benchmark database, applying WAL mode and running
// migrations.
func NewStore(cfg StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("benchmark: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "benchmark.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("benchmark: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("benchmark: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("benchmark: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			provider    TEXT NOT NULL,
			model       TEXT NOT NULL,
			started_at  TEXT NOT NULL DEFAULT (datetime('now')),
			finished_at TEXT
		);

		CREATE TABLE IF NOT EXISTS results (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT    NOT NULL REFERENCES runs(id),
			scenario_id    TEXT    NOT NULL,
			agent_id       TEXT    NOT NULL,
			total_raw      REAL    NOT NULL,
			total_weighted REAL    NOT NULL,
			normalized     REAL    NOT NULL,
			score_json     TEXT    NOT NULL,
			elapsed_ms     INTEGER NOT NULL DEFAULT 0,
			created_at     TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_results_run   ON results(run_id);
		CREATE INDEX IF NOT EXISTS idx_results_agent ON results(run_id, agent_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// CreateRun starts a new run and returns it with a fresh id.
func (s *Store) CreateRun(provider, model string) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Provider:  provider,
		Model:     model,
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_, err := s.db.Exec(
		"INSERT INTO runs (id, provider, model, started_at) VALUES (?, ?, ?, ?)",
		run.ID, run.Provider, run.Model, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("benchmark: create run: %w", err)
	}
	return run, nil
}

// FinishRun stamps the run's completion time.
func (s *Store) FinishRun(runID string) error {
	_, err := s.db.Exec(
		"UPDATE runs SET finished_at = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339), runID,
	)
	if err != nil {
		return fmt.Errorf("benchmark: finish run: %w", err)
	}
	return nil
}

// GetRun fetches one run by id.
func (s *Store) GetRun(runID string) (*Run, error) {
	var run Run
	err := s.db.QueryRow(
		"SELECT id, provider, model, started_at, finished_at FROM runs WHERE id = ?",
		runID,
	).Scan(&run.ID, &run.Provider, &run.Model, &run.StartedAt, &run.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("benchmark: run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("benchmark: get run: %w", err)
	}
	return &run, nil
}

// SaveResult persists one evaluated cell. The full score is stored as JSON
// alongside the headline numbers so reports never need recomputation.
func (s *Store) SaveResult(res Result) error {
	scoreJSON, err := json.Marshal(res.Score)
	if err != nil {
		return fmt.Errorf("benchmark: encode score: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO results
			(run_id, scenario_id, agent_id, total_raw, total_weighted, normalized, score_json, elapsed_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.ScenarioID, res.AgentID,
		res.Score.TotalRaw, res.Score.TotalWeighted, res.Score.NormalizedScore,
		string(scoreJSON), res.ElapsedMS,
	)
	if err != nil {
		return fmt.Errorf("benchmark: save result: %w", err)
	}
	return nil
}

// ResultsForRun returns all results of a run ordered by agent then scenario.
func (s *Store) ResultsForRun(runID string) ([]Result, error) {
	rows, err := s.db.Query(
		`SELECT run_id, scenario_id, agent_id, score_json, elapsed_ms, created_at
		 FROM results WHERE run_id = ? ORDER BY agent_id, scenario_id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("benchmark: query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			res       Result
			scoreJSON string
		)
		if err := rows.Scan(&res.RunID, &res.ScenarioID, &res.AgentID,
			&scoreJSON, &res.ElapsedMS, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("benchmark: scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(scoreJSON), &res.Score); err != nil {
			return nil, fmt.Errorf("benchmark: decode score: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
