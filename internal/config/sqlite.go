package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps settings in a single-file SQLite database, one row
// per (category, key) pair.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the settings database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open settings database: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS settings (
		category TEXT NOT NULL,
		key      TEXT NOT NULL,
		value    TEXT NOT NULL,
		PRIMARY KEY (category, key)
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create settings table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(category, key string) ([]byte, bool, error) {
	var value []byte
	row := s.db.QueryRow(`SELECT value FROM settings WHERE category = ? AND key = ?`, category, key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read setting %s/%s: %w", category, key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(category, key string, value []byte) error {
	query := `INSERT OR REPLACE INTO settings (category, key, value) VALUES (?, ?, ?)`
	if _, err := s.db.Exec(query, category, key, value); err != nil {
		return fmt.Errorf("write setting %s/%s: %w", category, key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
