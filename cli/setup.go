package cli

import (
	"github.com/GoCodeAlone/taskbook/agent"
	"github.com/GoCodeAlone/taskbook/skill"
	"github.com/GoCodeAlone/taskbook/task"
)

// NewOrchestrator wires the task_manager agent, its skills, and a fresh
// in-memory task manager into an orchestrator ready for the REPL.
func NewOrchestrator() (*agent.Orchestrator, error) {
	reg := agent.NewRegistry()
	if err := reg.RegisterAgent(&agent.Agent{
		Name: AgentName,
		Role: "manages the in-memory task list",
	}); err != nil {
		return nil, err
	}
	for _, s := range skill.TaskSkills() {
		if err := reg.RegisterSkill(AgentName, s); err != nil {
			return nil, err
		}
	}
	return agent.NewOrchestrator(reg, task.NewManager()), nil
}
