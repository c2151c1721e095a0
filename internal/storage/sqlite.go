// Package storage persists the moments journal: one row per run that
// reached the celebration. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the moments journal.
type Store struct {
	db *sql.DB
}

// Moment is a single journal record: which script was played, how it was
// answered, and how the run went. The experience itself never reads these;
// every run starts fresh.
type Moment struct {
	ID             int64
	ScriptID       string
	Answer         string
	KeepsakesFound int
	DurationSecs   int
	CreatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS moments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			script_id TEXT NOT NULL,
			answer TEXT NOT NULL,
			keepsakes_found INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_moments_script_id ON moments(script_id);
		CREATE INDEX IF NOT EXISTS idx_moments_recent ON moments(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMoment records one celebrated run.
// Returns the ID of the inserted record.
func (s *Store) SaveMoment(m Moment) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO moments (script_id, answer, keepsakes_found, duration_secs)
		 VALUES (?, ?, ?, ?)`,
		m.ScriptID, m.Answer, m.KeepsakesFound, m.DurationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save moment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentMoments retrieves the most recent journal entries, newest first.
func (s *Store) RecentMoments(limit int) ([]Moment, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, script_id, answer, keepsakes_found, duration_secs, created_at
		 FROM moments
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moments: %w", err)
	}
	defer rows.Close()

	var moments []Moment
	for rows.Next() {
		var m Moment
		var createdAt any
		if err := rows.Scan(&m.ID, &m.ScriptID, &m.Answer, &m.KeepsakesFound, &m.DurationSecs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			m.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				m.CreatedAt = parsed
			}
		}
		moments = append(moments, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return moments, nil
}

// CountMoments returns the number of journal entries.
func (s *Store) CountMoments() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM moments").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count moments: %w", err)
	}
	return n, nil
}

// ClearMoments deletes every journal entry.
func (s *Store) ClearMoments() error {
	_, err := s.db.Exec("DELETE FROM moments")
	if err != nil {
		return fmt.Errorf("storage: cannot clear moments: %w", err)
	}
	return nil
}
