package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteJournal implements service.Journal using SQLite.
type SQLiteJournal struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteJournal opens (creating if needed) the journal database at dbPath.
// Use ":memory:" for a throwaway journal.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dsn := dbPath
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}

	return &SQLiteJournal{db: db, dbPath: dbPath}, nil
}

// Path returns the database file path.
func (j *SQLiteJournal) Path() string {
	return j.dbPath
}

// Close closes the database connection.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Backup writes a consistent copy of the journal to dest, which must not exist.
func (j *SQLiteJournal) Backup(ctx context.Context, dest string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(dest, "dest"); err != nil {
		return err
	}
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%w: %s", ErrBackupExists, dest)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := j.db.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		return fmt.Errorf("failed to back up journal: %w", err)
	}
	return nil
}
