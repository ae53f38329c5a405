package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

// SQLite records theme switch events in a local SQLite database.
type SQLite struct {
	db *sqlx.DB
	mu sync.Mutex
}

// DefaultDBPath returns the standard history database location.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "shifty", "history.db"), nil
}

// NewSQLite opens (or creates) the history database at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}

	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// set pragmas for performance and reliability
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	// limit connections for SQLite (single writer)
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE IF NOT EXISTS switches (
			id TEXT PRIMARY KEY,
			ts DATETIME NOT NULL,
			theme TEXT NOT NULL,
			mode TEXT NOT NULL,
			"trigger" TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Record stores one applied switch.
func (s *SQLite) Record(ts time.Time, themeName, mode, trigger string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `INSERT INTO switches (id, ts, theme, mode, "trigger") VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.Exec(query, uuid.New().String(), ts.UTC().Format(time.RFC3339), themeName, mode, trigger); err != nil {
		return fmt.Errorf("failed to record switch to %s: %w", themeName, err)
	}
	return nil
}

// Last returns up to limit most recent switches, newest first.
func (s *SQLite) Last(limit int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}
	var events []Event
	query := `SELECT id, ts, theme, mode, "trigger" FROM switches ORDER BY ts DESC LIMIT ?`
	if err := s.db.Select(&events, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return events, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
