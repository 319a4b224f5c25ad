package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ConnectToSQLite initializes and returns a SQLite connection
func ConnectToSQLite(dbPath string) (*sql.DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for SQLite: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// sqlite allows a single writer; serialize through one connection
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return db, nil
}

// InitializeSchema creates all the necessary tables if they don't exist
func InitializeSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS address_cache (
		country TEXT PRIMARY KEY,
		full_address TEXT NOT NULL,
		state TEXT NOT NULL,
		city TEXT NOT NULL,
		street TEXT NOT NULL,
		postal_code TEXT NOT NULL,
		cached_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create address_cache table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_address_cache_cached_at ON address_cache (cached_at)`)
	if err != nil {
		return fmt.Errorf("failed to create address_cache index: %w", err)
	}

	return nil
}
