package task

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// AUTOINCREMENT keeps deleted ids out of circulation: a delete followed by a
// create always yields a fresh id.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id    TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT 'incomplete',
	created_at  DATETIME NOT NULL,
	updated_at  DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_owner_created ON tasks(owner_id, created_at);
`

// Store is the owner-scoped persistence interface used by the HTTP layer.
// Every operation takes the owner id and applies it in the same statement
// that locates the row, so a task is invisible to everyone but its owner.
type Store interface {
	Create(ctx context.Context, ownerID, title, description string) (*Task, error)
	List(ctx context.Context, ownerID string, filter Filter) ([]*Task, error)
	Get(ctx context.Context, ownerID string, id int64) (*Task, error)
	Update(ctx context.Context, ownerID string, id int64, title, description *string) (*Task, error)
	Delete(ctx context.Context, ownerID string, id int64) (bool, error)
	Toggle(ctx context.Context, ownerID string, id int64) (*Task, error)
}

// SQLiteStore persists tasks in a SQLite database shared with the user store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore ensures the tasks table exists on db and returns a store
// over it. The caller owns the database handle.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create tasks schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Create validates the input and inserts a new incomplete task for ownerID.
func (s *SQLiteStore) Create(ctx context.Context, ownerID, title, description string) (*Task, error) {
	title, err := ValidateTitle(title)
	if err != nil {
		return nil, err
	}
	description, err = ValidateDescription(description)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (owner_id, title, description, status, created_at, updated_at)
		VALUES (?,?,?,?,?,?)`,
		ownerID, title, description, string(StatusIncomplete), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("task id: %w", err)
	}

	return &Task{
		ID:          id,
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Status:      StatusIncomplete,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// List returns ownerID's tasks, newest-created first, optionally filtered
// by status.
func (s *SQLiteStore) List(ctx context.Context, ownerID string, filter Filter) ([]*Task, error) {
	q := strings.Builder{}
	q.WriteString(`SELECT id, owner_id, title, description, status, created_at, updated_at
		FROM tasks WHERE owner_id = ?`)
	args := []any{ownerID}

	if filter.Status != nil {
		q.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}
	q.WriteString(" ORDER BY created_at DESC, id DESC")

	rows, err := s.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Get retrieves a task owned by ownerID. A row under a different owner is
// reported as ErrNotFound, same as a missing one.
func (s *SQLiteStore) Get(ctx context.Context, ownerID string, id int64) (*Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, description, status, created_at, updated_at
		FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return t, err
}

// Update replaces the title and/or description of an owned task. Nil fields
// keep their current value; with both nil the row is returned unchanged.
// Status cannot be changed here.
func (s *SQLiteStore) Update(ctx context.Context, ownerID string, id int64, title, description *string) (*Task, error) {
	if title == nil && description == nil {
		return s.Get(ctx, ownerID, id)
	}

	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if title != nil {
		v, err := ValidateTitle(*title)
		if err != nil {
			return nil, err
		}
		set = append(set, "title = ?")
		args = append(args, v)
	}
	if description != nil {
		v, err := ValidateDescription(*description)
		if err != nil {
			return nil, err
		}
		set = append(set, "description = ?")
		args = append(args, v)
	}
	args = append(args, id, ownerID)

	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(set, ", ")+" WHERE id = ? AND owner_id = ?",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, ownerID, id)
}

// Delete removes an owned task and reports whether a row was removed.
// Deleting a missing or foreign id is a no-op returning false.
func (s *SQLiteStore) Delete(ctx context.Context, ownerID string, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Toggle flips an owned task between complete and incomplete, refreshing
// only updated_at.
func (s *SQLiteStore) Toggle(ctx context.Context, ownerID string, id int64) (*Task, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			status = CASE status WHEN ? THEN ? ELSE ? END,
			updated_at = ?
		WHERE id = ? AND owner_id = ?`,
		string(StatusComplete), string(StatusIncomplete), string(StatusComplete),
		time.Now().UTC(), id, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, ownerID, id)
}

// scanner abstracts sql.Row and sql.Rows for scanTask.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*Task, error) {
	var t Task
	var status string
	err := s.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Status = Status(status)
	return &t, nil
}
