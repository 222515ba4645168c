package manifest

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/menta2k/treenorm/pkg/types"
)

const insertRunSQL = `INSERT INTO runs (input_root, output_root, start_time) VALUES (?, ?, ?)`
const insertOutcomeSQL = `INSERT INTO outcomes (run_id, source, dest, status, bytes, message) VALUES (?, ?, ?, ?, ?, ?)`
const finishRunSQL = `UPDATE runs SET end_time = ?, dir_count = ?, processed_count = ?, skipped_count = ?, ignored_count = ?, bytes_written = ? WHERE id = ?`
const selectOutcomesSQL = `SELECT source, dest, status, bytes, message FROM outcomes WHERE run_id = ? ORDER BY id`
const selectRunSQL = `SELECT dir_count, processed_count, skipped_count, ignored_count, bytes_written FROM runs WHERE id = ?`

// ErrNoRun is returned when outcomes are recorded before BeginRun.
var ErrNoRun = errors.New("manifest: no active run")

// Store is a SQLite ledger of normalization runs and per-file outcomes.
type Store struct {
	db          *sql.DB
	outcomeStmt *sql.Stmt
	runID       int64
}

// Open opens or creates the manifest database at path.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	// A single connection keeps :memory: databases shared across statements.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if err := ApplyWritePragmas(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	stmt, err := db.Prepare(insertOutcomeSQL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare outcome insert: %w", err)
	}

	return &Store{db: db, outcomeStmt: stmt}, nil
}

// BeginRun records the start of a run and makes it the target of Record.
func (s *Store) BeginRun(inputRoot, outputRoot string) (int64, error) {
	res, err := s.db.Exec(insertRunSQL, inputRoot, outputRoot, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	s.runID = id
	return id, nil
}

// Record stores one per-file outcome for the active run.
func (s *Store) Record(o types.Outcome) error {
	if s.runID == 0 {
		return ErrNoRun
	}
	if _, err := s.outcomeStmt.Exec(s.runID, o.Source, o.Dest, string(o.Status), o.Bytes, o.Message); err != nil {
		return fmt.Errorf("failed to record outcome for %s: %w", o.Source, err)
	}
	return nil
}

// FinishRun stores the run summary and closes the active run.
func (s *Store) FinishRun(stats types.Stats) error {
	if s.runID == 0 {
		return ErrNoRun
	}
	_, err := s.db.Exec(finishRunSQL, time.Now().Unix(),
		stats.Dirs, stats.Processed, stats.Skipped, stats.Ignored, stats.BytesWritten, s.runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	s.runID = 0
	return nil
}

// Outcomes returns the outcomes of a run in the order they were recorded.
func (s *Store) Outcomes(runID int64) ([]types.Outcome, error) {
	rows, err := s.db.Query(selectOutcomesSQL, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.Outcome
	for rows.Next() {
		var o types.Outcome
		var status string
		if err := rows.Scan(&o.Source, &o.Dest, &status, &o.Bytes, &o.Message); err != nil {
			return nil, err
		}
		o.Status = types.Status(status)
		out = append(out, o)
	}
	return out, rows.Err()
}

// RunStats returns the summary stored by FinishRun.
func (s *Store) RunStats(runID int64) (types.Stats, error) {
	var st types.Stats
	err := s.db.QueryRow(selectRunSQL, runID).
		Scan(&st.Dirs, &st.Processed, &st.Skipped, &st.Ignored, &st.BytesWritten)
	if err != nil {
		return types.Stats{}, err
	}
	return st, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.outcomeStmt != nil {
		s.outcomeStmt.Close()
	}
	return s.db.Close()
}

// LatestRun returns the id of the most recent run.
func (s *Store) LatestRun() (int64, error) {
	var id int64
	if err := s.db.QueryRow(`SELECT id FROM runs ORDER BY id DESC LIMIT 1`).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("manifest has no runs")
		}
		return 0, err
	}
	return id, nil
}
