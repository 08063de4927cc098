// Package skill provides the task skills the CLI agents are built from.
// Each skill wraps one operation of the in-memory task manager.
package skill

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/GoCodeAlone/taskbook/agent"
)

// Argument keys understood by the task skills.
const (
	ArgID          = "id"
	ArgTitle       = "title"
	ArgDescription = "description"
	ArgStatus      = "status"
)

// ErrMissingArg is wrapped by skills when a required argument is absent.
var ErrMissingArg = errors.New("missing argument")

// TaskSkills returns all task skills, in the order they should be bound.
func TaskSkills() []agent.Skill {
	return []agent.Skill{
		CreateTask{},
		ListTasks{},
		GetTask{},
		UpdateTask{},
		DeleteTask{},
		SetTaskStatus{},
	}
}

func parseID(args map[string]string) (int64, error) {
	raw, ok := args[ArgID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingArg, ArgID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}
