package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// Well-known session keys. Logout clears all of them.
const (
	KeyToken       = "token"
	KeyUserID      = "userId"
	KeyUserName    = "userName"
	KeyUserEmail   = "userEmail"
	KeyUserPicture = "userPicture"
)

// SessionRepository persists session key-value pairs in the session table.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Get retrieves the value for a key. A missing key is not an error; it
// returns the empty string, matching absent-means-logged-out semantics.
func (r *SessionRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session key %s: %w", key, err)
	}
	return value, nil
}

// Set inserts or replaces the value for a key.
func (r *SessionRepository) Set(key, value string) error {
	query := `
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to set session key %s: %w", key, err)
	}
	return nil
}

// SetAll writes multiple key-value pairs in a single transaction.
func (r *SessionRepository) SetAll(pairs map[string]string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for key, value := range pairs {
		query := `
			INSERT INTO session (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
		if _, err := tx.Exec(query, key, value, now); err != nil {
			return fmt.Errorf("failed to set session key %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// All returns every stored key-value pair.
func (r *SessionRepository) All() (map[string]string, error) {
	rows, err := r.db.Query("SELECT key, value FROM session")
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	defer rows.Close()

	pairs := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		pairs[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return pairs, nil
}

// Clear removes every stored pair. Safe to call when already empty.
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM session"); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
