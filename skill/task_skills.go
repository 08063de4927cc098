package skill

import (
	"context"
	"fmt"

	"github.com/GoCodeAlone/taskbook/agent"
	"github.com/GoCodeAlone/taskbook/task"
)

// CreateTask adds a new task from the title and description arguments.
type CreateTask struct{}

func (CreateTask) Name() string        { return "create_task" }
func (CreateTask) Description() string { return "Creates a new task with a title and optional description" }
func (CreateTask) Tags() []string      { return []string{"task", "creation", "crud"} }

func (CreateTask) Execute(_ context.Context, inv *agent.Invocation) (*agent.Result, error) {
	title, ok := inv.Args[ArgTitle]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingArg, ArgTitle)
	}
	t, err := inv.Tasks.Add(title, inv.Args[ArgDescription])
	if err != nil {
		return nil, err
	}
	return &agent.Result{
		Message: fmt.Sprintf("Task %d added: %s", t.ID, t.Title),
		Data:    t,
	}, nil
}

// ListTasks returns all tasks, optionally filtered by the status argument.
type ListTasks struct{}

func (ListTasks) Name() string        { return "list_tasks" }
func (ListTasks) Description() string { return "Lists tasks, optionally filtered by status" }
func (ListTasks) Tags() []string      { return []string{"task", "retrieval", "read"} }

func (ListTasks) Execute(_ context.Context, inv *agent.Invocation) (*agent.Result, error) {
	tasks := inv.Tasks.List()
	if raw, ok := inv.Args[ArgStatus]; ok {
		status := task.Status(raw)
		if status != task.StatusIncomplete && status != task.StatusComplete {
			return nil, fmt.Errorf("invalid status %q", raw)
		}
		filtered := tasks[:0:0]
		for _, t := range tasks {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	return &agent.Result{
		Message: fmt.Sprintf("%d task(s)", len(tasks)),
		Data:    tasks,
	}, nil
}

// GetTask retrieves one task by id.
type GetTask struct{}

func (GetTask) Name() string        { return "get_task" }
func (GetTask) Description() string { return "Retrieves a single task by id" }
func (GetTask) Tags() []string      { return []string{"task", "retrieval", "read"} }

func (GetTask) Execute(_ context.Context, inv *agent.Invocation) (*agent.Result, error) {
	id, err := parseID(inv.Args)
	if err != nil {
		return nil, err
	}
	t, err := inv.Tasks.Get(id)
	if err != nil {
		return nil, err
	}
	return &agent.Result{Message: t.String(), Data: t}, nil
}

// UpdateTask replaces a task's title and/or description.
type UpdateTask struct{}

func (UpdateTask) Name() string        { return "update_task" }
func (UpdateTask) Description() string { return "Updates a task's title and/or description" }
func (UpdateTask) Tags() []string      { return []string{"task", "mutation", "crud"} }

func (UpdateTask) Execute(_ context.Context, inv *agent.Invocation) (*agent.Result, error) {
	id, err := parseID(inv.Args)
	if err != nil {
		return nil, err
	}
	var title, description *string
	if v, ok := inv.Args[ArgTitle]; ok {
		title = &v
	}
	if v, ok := inv.Args[ArgDescription]; ok {
		description = &v
	}
	if title == nil && description == nil {
		return nil, fmt.Errorf("%w: %s or %s", ErrMissingArg, ArgTitle, ArgDescription)
	}
	t, err := inv.Tasks.Update(id, title, description)
	if err != nil {
		return nil, err
	}
	return &agent.Result{
		Message: fmt.Sprintf("Task %d updated: %s", t.ID, t.Title),
		Data:    t,
	}, nil
}

// DeleteTask removes a task by id.
type DeleteTask struct{}

func (DeleteTask) Name() string        { return "delete_task" }
func (DeleteTask) Description() string { return "Deletes a task by id" }
func (DeleteTask) Tags() []string      { return []string{"task", "mutation", "crud"} }

func (DeleteTask) Execute(_ context.Context, inv *agent.Invocation) (*agent.Result, error) {
	id, err := parseID(inv.Args)
	if err != nil {
		return nil, err
	}
	if !inv.Tasks.Delete(id) {
		return nil, task.ErrNotFound
	}
	return &agent.Result{Message: fmt.Sprintf("Task %d deleted", id)}, nil
}

// SetTaskStatus marks a task complete or incomplete.
type SetTaskStatus struct{}

func (SetTaskStatus) Name() string        { return "set_task_status" }
func (SetTaskStatus) Description() string { return "Marks a task complete or incomplete" }
func (SetTaskStatus) Tags() []string      { return []string{"task", "mutation", "status"} }

func (SetTaskStatus) Execute(_ context.Context, inv *agent.Invocation) (*agent.Result, error) {
	id, err := parseID(inv.Args)
	if err != nil {
		return nil, err
	}
	raw, ok := inv.Args[ArgStatus]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingArg, ArgStatus)
	}
	status := task.Status(raw)
	if status != task.StatusIncomplete && status != task.StatusComplete {
		return nil, fmt.Errorf("invalid status %q", raw)
	}
	t, err := inv.Tasks.SetStatus(id, status)
	if err != nil {
		return nil, err
	}
	return &agent.Result{
		Message: fmt.Sprintf("Task %d marked %s", t.ID, t.Status),
		Data:    t,
	}, nil
}
