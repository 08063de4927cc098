// Package client is the HTTP client for the taskbook API, used by the
// taskbook binary's remote subcommands.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GoCodeAlone/taskbook/task"
	"github.com/GoCodeAlone/taskbook/user"
)

// Client talks to a running taskbookd server. Token, when set, is sent as
// a bearer credential on every request.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New creates a Client for the given server URL.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Session is the signup/login response.
type Session struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// Status reports the server's health endpoint fields.
func (c *Client) Status(ctx context.Context) (map[string]string, error) {
	var out map[string]string
	if err := c.do(ctx, http.MethodGet, "/api/status", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Signup registers a new account and returns its session.
func (c *Client) Signup(ctx context.Context, email, password string) (*Session, error) {
	return c.session(ctx, "/auth/signup", email, password)
}

// Login authenticates an existing account and returns its session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.session(ctx, "/auth/login", email, password)
}

func (c *Client) session(ctx context.Context, path, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var out Session
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tasks lists the user's tasks, optionally filtered by status.
func (c *Client) Tasks(ctx context.Context, userID, status string) ([]*task.Task, error) {
	path := "/api/users/" + url.PathEscape(userID) + "/tasks"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []*task.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask adds a task for the user.
func (c *Client) CreateTask(ctx context.Context, userID, title, description string) (*task.Task, error) {
	body := map[string]string{"title": title, "description": description}
	var out task.Task
	if err := c.do(ctx, http.MethodPost, c.taskPath(userID, 0), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTask retrieves one of the user's tasks by id.
func (c *Client) GetTask(ctx context.Context, userID string, id int64) (*task.Task, error) {
	var out task.Task
	if err := c.do(ctx, http.MethodGet, c.taskPath(userID, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask changes a task's title and/or description. Nil fields are
// left unchanged.
func (c *Client) UpdateTask(ctx context.Context, userID string, id int64, title, description *string) (*task.Task, error) {
	body := map[string]*string{}
	if title != nil {
		body["title"] = title
	}
	if description != nil {
		body["description"] = description
	}
	var out task.Task
	if err := c.do(ctx, http.MethodPut, c.taskPath(userID, id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask removes one of the user's tasks.
func (c *Client) DeleteTask(ctx context.Context, userID string, id int64) error {
	return c.do(ctx, http.MethodDelete, c.taskPath(userID, id), nil, nil)
}

// ToggleTask flips a task's status and returns the updated row.
func (c *Client) ToggleTask(ctx context.Context, userID string, id int64) (*task.Task, error) {
	var out task.Task
	if err := c.do(ctx, http.MethodPatch, c.taskPath(userID, id)+"/complete", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) taskPath(userID string, id int64) string {
	p := "/api/users/" + url.PathEscape(userID) + "/tasks"
	if id > 0 {
		p += fmt.Sprintf("/%d", id)
	}
	return p
}

// do sends one request, encoding body as JSON when non-nil and decoding
// the response into v (which may be nil).
func (c *Client) do(ctx context.Context, method, path string, body, v any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if v != nil && resp.StatusCode != http.StatusNoContent && resp.ContentLength != 0 {
		return json.NewDecoder(resp.Body).Decode(v)
	}
	return nil
}
