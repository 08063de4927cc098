package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/GoCodeAlone/taskbook/auth"
	"github.com/GoCodeAlone/taskbook/server/api"
	"github.com/GoCodeAlone/taskbook/user"
)

// credentialsRequest is the body accepted by signup and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is returned by a successful signup or login.
type sessionResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// handleSignup creates an account and issues a JWT.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := s.auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken),
			errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, auth.ErrWeakPassword),
			errors.Is(err, auth.ErrPasswordTooLong):
			writeJSONError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error("signup", slog.Any("err", err))
			writeJSONError(w, http.StatusInternalServerError, "could not create account")
		}
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: u, Token: token})
}

// handleLogin validates credentials and issues a JWT.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error("login", slog.Any("err", err))
		writeJSONError(w, http.StatusInternalServerError, "could not log in")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{User: u, Token: token})
}

// authMiddleware enforces JWT authentication on wrapped handlers. Missing,
// malformed, or expired tokens are rejected here; the per-route owner match
// happens in the handlers once path values are bound.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeJSONError(w, http.StatusUnauthorized, "missing or invalid Authorization header")
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		subject, err := s.auth.VerifyToken(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid token: "+err.Error())
			return
		}
		ctx := api.ContextWithSubject(r.Context(), subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
