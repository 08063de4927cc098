// Package agent implements the CLI's agent/skill indirection layer: named
// agents own a set of skills, a registry holds the bindings, and an
// orchestrator dispatches skill executions against the in-memory task
// manager.
package agent

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/GoCodeAlone/taskbook/task"
)

// Invocation carries everything a skill needs for one execution.
type Invocation struct {
	Tasks *task.Manager
	Args  map[string]string
}

// Result is the outcome of a successful skill execution.
type Result struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Skill is a single named capability over the task manager.
type Skill interface {
	Name() string
	Description() string
	Tags() []string
	Execute(ctx context.Context, inv *Invocation) (*Result, error)
}

// Agent is a named grouping of skills with a role description.
type Agent struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// HistoryEntry records one orchestrated execution.
type HistoryEntry struct {
	Agent   string            `json:"agent,omitempty"`
	Skill   string            `json:"skill"`
	Args    map[string]string `json:"args,omitempty"`
	Message string            `json:"message,omitempty"`
	Err     string            `json:"error,omitempty"`
	At      time.Time         `json:"at"`
}

// DisplayName renders a snake_case skill name for humans,
// e.g. "create_task" becomes "Create Task".
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}
