package task

import (
	"sync"
	"time"
)

// Manager is the in-memory single-user task collection behind the
// interactive CLI. IDs start at 1 and are never reused; all state is lost
// when the process exits.
//
// Tasks are stored by value and replaced wholesale on mutation, so values
// handed out by Get and List are never aliased by later updates.
type Manager struct {
	mu     sync.RWMutex
	tasks  []Task
	nextID int64
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{nextID: 1}
}

// Add validates the input and appends a new incomplete task.
func (m *Manager) Add(title, description string) (*Task, error) {
	title, err := ValidateTitle(title)
	if err != nil {
		return nil, err
	}
	description, err = ValidateDescription(description)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	t := Task{
		ID:          m.nextID,
		Title:       title,
		Description: description,
		Status:      StatusIncomplete,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.nextID++
	m.tasks = append(m.tasks, t)

	out := t
	return &out, nil
}

// List returns all tasks in insertion order.
func (m *Manager) List() []*Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Task, len(m.tasks))
	for i := range m.tasks {
		t := m.tasks[i]
		out[i] = &t
	}
	return out
}

// Get returns the task with the given id, or ErrNotFound.
func (m *Manager) Get(id int64) (*Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	out := m.tasks[i]
	return &out, nil
}

// Update replaces the title and/or description of a task. Nil fields keep
// their current value; with both nil the task is returned unchanged and
// UpdatedAt is not refreshed.
func (m *Manager) Update(id int64, title, description *string) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	cur := m.tasks[i]

	if title == nil && description == nil {
		out := cur
		return &out, nil
	}

	next := cur
	if title != nil {
		v, err := ValidateTitle(*title)
		if err != nil {
			return nil, err
		}
		next.Title = v
	}
	if description != nil {
		v, err := ValidateDescription(*description)
		if err != nil {
			return nil, err
		}
		next.Description = v
	}
	next.UpdatedAt = time.Now().UTC()
	m.tasks[i] = next

	out := next
	return &out, nil
}

// Delete removes a task and reports whether it existed. Its id is not
// reissued to later tasks.
func (m *Manager) Delete(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return false
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return true
}

// Toggle flips a task between complete and incomplete.
func (m *Manager) Toggle(id int64) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	next := m.tasks[i]
	next.Status = next.Status.Toggled()
	next.UpdatedAt = time.Now().UTC()
	m.tasks[i] = next

	out := next
	return &out, nil
}

// SetStatus sets a task to the given state regardless of its current one.
// Used by the CLI's explicit complete/incomplete commands.
func (m *Manager) SetStatus(id int64, status Status) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	next := m.tasks[i]
	if next.Status != status {
		next.Status = status
		next.UpdatedAt = time.Now().UTC()
		m.tasks[i] = next
	}

	out := next
	return &out, nil
}

// index returns the slice position of id, or -1. Callers hold m.mu.
func (m *Manager) index(id int64) int {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
