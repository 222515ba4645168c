package manifest

import (
	"database/sql"
	"fmt"
)

const runsTableDDL = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    input_root TEXT NOT NULL,
    output_root TEXT NOT NULL,
    start_time INTEGER NOT NULL,
    end_time INTEGER,
    dir_count INTEGER DEFAULT 0,
    processed_count INTEGER DEFAULT 0,
    skipped_count INTEGER DEFAULT 0,
    ignored_count INTEGER DEFAULT 0,
    bytes_written INTEGER DEFAULT 0
);
`

const outcomesTableDDL = `
CREATE TABLE IF NOT EXISTS outcomes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL REFERENCES runs(id),
    source TEXT NOT NULL,
    dest TEXT NOT NULL,
    status TEXT NOT NULL,
    bytes INTEGER NOT NULL,
    message TEXT NOT NULL DEFAULT ''
);
`

const outcomesRunIndexDDL = `CREATE INDEX IF NOT EXISTS idx_outcomes_run ON outcomes(run_id, status);`

// InitSchema creates all tables in the database.
func InitSchema(db *sql.DB) error {
	ddls := []string{
		runsTableDDL,
		outcomesTableDDL,
		outcomesRunIndexDDL,
	}

	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	return nil
}

// ApplyWritePragmas configures SQLite for many small inserts.
func ApplyWritePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	return nil
}
