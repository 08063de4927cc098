package agent

import (
	"context"
	"testing"
)

type fakeSkill struct {
	name string
	fn   func(ctx context.Context, inv *Invocation) (*Result, error)
}

func (s fakeSkill) Name() string        { return s.name }
func (s fakeSkill) Description() string { return "fake skill " + s.name }
func (s fakeSkill) Tags() []string      { return []string{"fake"} }

func (s fakeSkill) Execute(ctx context.Context, inv *Invocation) (*Result, error) {
	if s.fn != nil {
		return s.fn(ctx, inv)
	}
	return &Result{Message: s.name + " ran"}, nil
}

func TestRegistry_RegisterAgent(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterAgent(&Agent{Name: "manager", Role: "manages tasks"}); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterAgent(&Agent{Name: "manager"}); err == nil {
		t.Error("expected error registering duplicate agent")
	}

	a, ok := r.Agent("manager")
	if !ok || a.Role != "manages tasks" {
		t.Errorf("Agent(manager) = %+v, %v", a, ok)
	}
	if _, ok := r.Agent("ghost"); ok {
		t.Error("found agent that was never registered")
	}
}

func TestRegistry_RegisterSkill(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterSkill("nobody", fakeSkill{name: "orphan"}); err == nil {
		t.Error("expected error binding skill to unknown agent")
	}

	if err := r.RegisterAgent(&Agent{Name: "manager"}); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"second", "first"} {
		if err := r.RegisterSkill("manager", fakeSkill{name: name}); err != nil {
			t.Fatal(err)
		}
	}

	// Binding order is preserved; Skills() is sorted.
	if got := r.AgentSkills("manager"); len(got) != 2 || got[0] != "second" || got[1] != "first" {
		t.Errorf("AgentSkills = %v, want binding order [second first]", got)
	}
	if got := r.Skills(); len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("Skills = %v, want sorted [first second]", got)
	}
	if !r.HasBinding("manager", "first") {
		t.Error("HasBinding(manager, first) = false")
	}
	if r.HasBinding("manager", "orphan") {
		t.Error("HasBinding reports a skill that was never bound")
	}
}

func TestRegistry_Summarize(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterAgent(&Agent{Name: "manager"}); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterSkill("manager", fakeSkill{name: "list"}); err != nil {
		t.Fatal(err)
	}

	s := r.Summarize()
	if len(s.Agents) != 1 || s.Agents[0] != "manager" {
		t.Errorf("Agents = %v", s.Agents)
	}
	if len(s.Bindings["manager"]) != 1 || s.Bindings["manager"][0] != "list" {
		t.Errorf("Bindings = %v", s.Bindings)
	}

	// The snapshot is detached from the registry.
	s.Bindings["manager"][0] = "mutated"
	if r.AgentSkills("manager")[0] != "list" {
		t.Error("mutating the summary changed the registry")
	}
}

func TestDisplayName(t *testing.T) {
	for in, want := range map[string]string{
		"create_task":     "Create Task",
		"list_tasks":      "List Tasks",
		"set_task_status": "Set Task Status",
	} {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}
