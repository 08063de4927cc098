package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/GoCodeAlone/taskbook/task"
)

func newTestOrchestrator(t *testing.T, skills ...Skill) *Orchestrator {
	t.Helper()
	r := NewRegistry()
	if err := r.RegisterAgent(&Agent{Name: "manager", Role: "test agent"}); err != nil {
		t.Fatal(err)
	}
	for _, s := range skills {
		if err := r.RegisterSkill("manager", s); err != nil {
			t.Fatal(err)
		}
	}
	return NewOrchestrator(r, task.NewManager())
}

func TestOrchestrator_ExecuteSkill(t *testing.T) {
	var gotArgs map[string]string
	o := newTestOrchestrator(t, fakeSkill{
		name: "echo",
		fn: func(_ context.Context, inv *Invocation) (*Result, error) {
			gotArgs = inv.Args
			if inv.Tasks == nil {
				t.Error("invocation has no task manager")
			}
			return &Result{Message: "done"}, nil
		},
	})

	res, err := o.ExecuteSkill(context.Background(), "echo", map[string]string{"k": "v"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Message != "done" || gotArgs["k"] != "v" {
		t.Errorf("res = %+v, args = %v", res, gotArgs)
	}

	if _, err := o.ExecuteSkill(context.Background(), "missing", nil); err == nil {
		t.Error("expected error for unknown skill")
	}
}

func TestOrchestrator_ExecuteAgent(t *testing.T) {
	o := newTestOrchestrator(t, fakeSkill{name: "bound"})

	if _, err := o.ExecuteAgent(context.Background(), "manager", "bound", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := o.ExecuteAgent(context.Background(), "ghost", "bound", nil); err == nil {
		t.Error("expected error for unknown agent")
	}

	// A registered skill not bound to the agent is rejected.
	if err := o.registry.RegisterAgent(&Agent{Name: "other"}); err != nil {
		t.Fatal(err)
	}
	if _, err := o.ExecuteAgent(context.Background(), "other", "bound", nil); err == nil {
		t.Error("expected error for unbound skill")
	}
}

func TestOrchestrator_History(t *testing.T) {
	boom := errors.New("boom")
	o := newTestOrchestrator(t,
		fakeSkill{name: "ok"},
		fakeSkill{name: "bad", fn: func(context.Context, *Invocation) (*Result, error) {
			return nil, boom
		}},
	)

	if _, err := o.ExecuteAgent(context.Background(), "manager", "ok", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := o.ExecuteSkill(context.Background(), "bad", nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	h := o.History()
	if len(h) != 2 {
		t.Fatalf("history has %d entries, want 2", len(h))
	}
	if h[0].Agent != "manager" || h[0].Skill != "ok" || h[0].Err != "" {
		t.Errorf("first entry = %+v", h[0])
	}
	if h[1].Agent != "" || h[1].Skill != "bad" || h[1].Err != "boom" {
		t.Errorf("second entry = %+v", h[1])
	}
	if h[0].At.IsZero() {
		t.Error("history entry has zero timestamp")
	}

	o.ClearHistory()
	if len(o.History()) != 0 {
		t.Error("history not empty after ClearHistory")
	}
}
