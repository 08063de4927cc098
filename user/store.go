package user

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL
);
`

// SQLiteStore persists users in a SQLite database shared with the task store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore ensures the users table exists on db and returns a store
// over it. The caller owns the database handle.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create users schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Create inserts a new user. A duplicate email maps to ErrEmailTaken.
func (s *SQLiteStore) Create(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES (?,?,?,?,?)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by id.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*User, error) {
	return s.get(ctx, "id = ?", id)
}

// GetByEmail retrieves a user by email.
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.get(ctx, "email = ?", email)
}

func (s *SQLiteStore) get(ctx context.Context, where string, arg any) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at, updated_at FROM users WHERE "+where, arg)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
