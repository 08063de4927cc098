// Package server implements the taskbookd HTTP server: signup/login, the
// JWT gate, and the owner-scoped task REST API.
package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/GoCodeAlone/taskbook/auth"
	"github.com/GoCodeAlone/taskbook/config"
	"github.com/GoCodeAlone/taskbook/server/api"
	"github.com/GoCodeAlone/taskbook/task"
)

// Server is the taskbookd HTTP server.
type Server struct {
	cfg     config.Config
	mux     *http.ServeMux
	httpSrv *http.Server
	logger  *slog.Logger

	auth  *auth.Service
	tasks task.Store

	// JWT secret caching
	secretOnce      sync.Once
	generatedSecret string

	startTime time.Time
	version   string
}

// New creates a new Server with the given config and logger.
func New(cfg config.Config, ver string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:       cfg,
		mux:       http.NewServeMux(),
		logger:    logger,
		startTime: time.Now(),
		version:   ver,
	}
}

// SetAuthService attaches the signup/login service to the server.
func (s *Server) SetAuthService(svc *auth.Service) {
	s.auth = svc
}

// SetTaskStore attaches the owner-scoped task store to the server.
func (s *Server) SetTaskStore(store task.Store) {
	s.tasks = store
}

// JWTSecret returns the configured JWT secret, generating a random one the
// first time if the config left it empty.
func (s *Server) JWTSecret() string {
	if s.cfg.Auth.JWTSecret != "" {
		return s.cfg.Auth.JWTSecret
	}
	s.secretOnce.Do(func() {
		b := make([]byte, 32)
		_, _ = rand.Read(b)
		s.generatedSecret = base64.RawURLEncoding.EncodeToString(b)
		s.logger.Warn("jwt secret not configured, generated an ephemeral one; tokens will not survive restarts")
	})
	return s.generatedSecret
}

// Start registers routes and begins listening.
func (s *Server) Start() error {
	s.registerRoutes()

	addr := s.cfg.Server.Addr
	if addr == "" {
		addr = ":8080"
	}
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.recoverMiddleware(s.mux),
		ReadHeaderTimeout: 15 * time.Second,
	}
	s.logger.Info("server listening", slog.String("addr", addr))
	return s.httpSrv.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes() {
	h := &api.Handlers{
		Tasks:   s.tasks,
		Logger:  s.logger,
		Version: s.version,
	}

	// Public routes (no auth required)
	s.mux.HandleFunc("POST /auth/signup", s.handleSignup)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /api/status", h.StatusHandler())

	// Protected API — wrapped in auth middleware
	apiMux := http.NewServeMux()
	h.RegisterRoutes(apiMux)

	s.mux.Handle("/api/users/", s.authMiddleware(apiMux))
}

// recoverMiddleware converts panics into generic 500 responses.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.logger.Error("panic serving request",
					slog.String("path", r.URL.Path), slog.Any("panic", v))
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
