package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/GoCodeAlone/taskbook/auth"
	"github.com/GoCodeAlone/taskbook/config"
	"github.com/GoCodeAlone/taskbook/task"
	"github.com/GoCodeAlone/taskbook/user"
)

// newTestServer wires a full server over a temp SQLite database.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	f, err := os.CreateTemp("", "taskbook-server-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	f.Close()
	path := f.Name()
	t.Cleanup(func() { os.Remove(path) })

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	users, err := user.NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("user.NewSQLiteStore: %v", err)
	}
	tasks, err := task.NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("task.NewSQLiteStore: %v", err)
	}

	cfg := config.Config{
		Server: config.ServerConfig{Addr: ":0"},
		Auth: config.AuthConfig{
			JWTSecret: "test-secret-key-1234567890",
			TokenTTL:  time.Hour,
		},
	}
	s := New(cfg, "test", nil)
	s.SetAuthService(auth.NewService(users, auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)))
	s.SetTaskStore(tasks)
	s.registerRoutes()
	return s
}

// do sends a JSON request through the server mux and decodes the response.
func do(t *testing.T, s *Server, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, req)

	var resp map[string]any
	if rr.Body.Len() > 0 {
		_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	}
	return rr, resp
}

// signupUser registers an account and returns its id and token.
func signupUser(t *testing.T, s *Server, email string) (id, token string) {
	t.Helper()
	rr, resp := do(t, s, http.MethodPost, "/auth/signup", "",
		map[string]string{"email": email, "password": "password123"})
	if rr.Code != http.StatusOK {
		t.Fatalf("signup %s: got %d: %s", email, rr.Code, rr.Body.String())
	}
	u, _ := resp["user"].(map[string]any)
	id, _ = u["id"].(string)
	token, _ = resp["token"].(string)
	if id == "" || token == "" {
		t.Fatalf("signup %s: missing id or token in %v", email, resp)
	}
	return id, token
}
