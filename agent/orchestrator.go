package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GoCodeAlone/taskbook/task"
)

// Orchestrator dispatches skill executions against the task manager and
// records each execution in its history.
type Orchestrator struct {
	registry *Registry
	tasks    *task.Manager

	mu      sync.Mutex
	history []HistoryEntry
}

// NewOrchestrator creates an Orchestrator over the given registry and
// task manager.
func NewOrchestrator(registry *Registry, tasks *task.Manager) *Orchestrator {
	return &Orchestrator{registry: registry, tasks: tasks}
}

// ExecuteSkill runs a skill by name.
func (o *Orchestrator) ExecuteSkill(ctx context.Context, skillName string, args map[string]string) (*Result, error) {
	s, ok := o.registry.Skill(skillName)
	if !ok {
		return nil, fmt.Errorf("skill %q not found", skillName)
	}
	return o.run(ctx, "", s, args)
}

// ExecuteAgent runs a skill through a named agent. The skill must be bound
// to that agent.
func (o *Orchestrator) ExecuteAgent(ctx context.Context, agentName, skillName string, args map[string]string) (*Result, error) {
	if _, ok := o.registry.Agent(agentName); !ok {
		return nil, fmt.Errorf("agent %q not found", agentName)
	}
	if !o.registry.HasBinding(agentName, skillName) {
		return nil, fmt.Errorf("skill %q not bound to agent %q", skillName, agentName)
	}
	s, ok := o.registry.Skill(skillName)
	if !ok {
		return nil, fmt.Errorf("skill %q not found", skillName)
	}
	return o.run(ctx, agentName, s, args)
}

func (o *Orchestrator) run(ctx context.Context, agentName string, s Skill, args map[string]string) (*Result, error) {
	res, err := s.Execute(ctx, &Invocation{Tasks: o.tasks, Args: args})

	entry := HistoryEntry{
		Agent: agentName,
		Skill: s.Name(),
		Args:  args,
		At:    time.Now().UTC(),
	}
	if err != nil {
		entry.Err = err.Error()
	} else {
		entry.Message = res.Message
	}

	o.mu.Lock()
	o.history = append(o.history, entry)
	o.mu.Unlock()

	return res, err
}

// History returns a copy of the execution history, oldest first.
func (o *Orchestrator) History() []HistoryEntry {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// ClearHistory discards the execution history.
func (o *Orchestrator) ClearHistory() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = nil
}

// Summarize exposes the registry snapshot for introspection.
func (o *Orchestrator) Summarize() Summary {
	return o.registry.Summarize()
}
