package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend keeps the record in a single-row sqlite table. Handy
// when the daemon already sits next to other sqlite state.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed bootstraps) the record database.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS survival_record (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		best_seconds REAL NOT NULL DEFAULT 0,
		color_index INTEGER NOT NULL DEFAULT 0
	);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteBackend{db: db}, nil
}

// Load reads the record row. No row yet yields the zero record.
func (s *SQLiteBackend) Load() (Record, error) {
	var rec Record
	err := s.db.QueryRow(
		`SELECT best_seconds, color_index FROM survival_record WHERE id = 1`,
	).Scan(&rec.BestSeconds, &rec.ColorIndex)
	if err == sql.ErrNoRows {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("query record: %w", err)
	}
	return rec, nil
}

// Save upserts the single record row.
func (s *SQLiteBackend) Save(rec Record) error {
	_, err := s.db.Exec(
		`INSERT INTO survival_record (id, best_seconds, color_index) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			best_seconds = excluded.best_seconds,
			color_index = excluded.color_index`,
		rec.BestSeconds, rec.ColorIndex,
	)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
