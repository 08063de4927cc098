// Package user defines the user account model and its SQLite store.
package user

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when creating a user with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")
)

// User is an account that owns tasks. The password hash never leaves the
// server; the json tag drops it from every response.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store persists user accounts.
type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
