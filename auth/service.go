package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/GoCodeAlone/taskbook/user"
)

var (
	// ErrInvalidCredentials is returned when login credentials do not match.
	// It is deliberately identical for unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when the email does not parse as an address.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when the password is shorter than 8 bytes.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when the password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

// Service handles signup and login against the user store.
type Service struct {
	users  user.Store
	tokens *TokenManager
}

// NewService creates a Service.
func NewService(users user.Store, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Signup creates an account and returns it with a fresh token.
func (s *Service) Signup(ctx context.Context, email, password string) (*user.User, string, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, "", ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, "", ErrPasswordTooLong
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Sign(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, token, nil
}

// Login verifies credentials and returns the account with a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if !CheckPassword(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return u, token, nil
}

// VerifyToken validates a bearer token and returns the user id it asserts.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	return s.tokens.Verify(tokenString)
}
