// Package task defines the task model and its persistence backends: the
// single-user in-memory manager used by the interactive CLI, and the
// owner-scoped SQLite store used by the taskbookd server.
package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status represents the completion state of a task.
type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
)

// Field limits enforced on create and update.
const (
	MaxTitleLen       = 255
	MaxDescriptionLen = 10000
)

var (
	// ErrNotFound is returned when a task does not exist. The owner-scoped
	// store returns it for foreign rows too, so callers cannot distinguish
	// "missing" from "owned by someone else".
	ErrNotFound = errors.New("task not found")

	// ErrTitleEmpty is returned when a title is empty or whitespace-only.
	ErrTitleEmpty = errors.New("title must not be empty")

	// ErrTitleTooLong is returned when a title exceeds MaxTitleLen.
	ErrTitleTooLong = fmt.Errorf("title must be at most %d characters", MaxTitleLen)

	// ErrDescriptionTooLong is returned when a description exceeds MaxDescriptionLen.
	ErrDescriptionTooLong = fmt.Errorf("description must be at most %d characters", MaxDescriptionLen)
)

// Task is a single todo item. OwnerID is empty in the in-memory variant,
// which has exactly one implicit owner.
type Task struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"owner_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Toggled returns the opposite completion state.
func (s Status) Toggled() Status {
	if s == StatusComplete {
		return StatusIncomplete
	}
	return StatusComplete
}

// String renders the task as a single CLI line, e.g. "3. [x] Buy milk".
func (t *Task) String() string {
	box := "[ ]"
	if t.Status == StatusComplete {
		box = "[x]"
	}
	return fmt.Sprintf("%d. %s %s", t.ID, box, t.Title)
}

// Filter controls which tasks List returns. A nil Status means no filter.
type Filter struct {
	Status *Status `json:"status,omitempty"`
}

// ValidateTitle trims the title and checks it against the field limits.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleEmpty
	}
	if len(title) > MaxTitleLen {
		return "", ErrTitleTooLong
	}
	return title, nil
}

// ValidateDescription trims the description and checks its length.
func ValidateDescription(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	if len(desc) > MaxDescriptionLen {
		return "", ErrDescriptionTooLong
	}
	return desc, nil
}

// IsValidation reports whether err is one of the input validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrTitleEmpty) ||
		errors.Is(err, ErrTitleTooLong) ||
		errors.Is(err, ErrDescriptionTooLong)
}
