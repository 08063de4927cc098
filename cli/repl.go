package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/GoCodeAlone/taskbook/agent"
	"github.com/GoCodeAlone/taskbook/task"
)

// AgentName is the agent the REPL dispatches every task command through.
const AgentName = "task_manager"

const usageText = `Commands:
  add <title> [-d description]       add a task
  list [json]                        list tasks
  show <id>                          show one task
  update <id> [-t title] [-d desc]   change title and/or description
  complete <id>                      mark complete
  incomplete <id>                    mark incomplete
  delete <id>                        delete a task
  agents                             show agents, skills, and bindings
  history                            show skill execution history
  help                               show this help
  exit                               quit
`

// REPL reads commands from In and executes them against the orchestrator
// until exit or EOF.
type REPL struct {
	Orchestrator *agent.Orchestrator
	In           io.Reader
	Out          io.Writer
}

// NewREPL creates a REPL over the given orchestrator.
func NewREPL(o *agent.Orchestrator, in io.Reader, out io.Writer) *REPL {
	return &REPL{Orchestrator: o, In: in, Out: out}
}

// Run is the interactive loop. Parse and execution errors are printed and
// the loop continues; only exit, EOF, or a read error end it.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.Out, "taskbook — type help for commands")
	scanner := bufio.NewScanner(r.In)
	for {
		fmt.Fprint(r.Out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.Out)
			return scanner.Err()
		}

		cmd, err := Parse(scanner.Text())
		if errors.Is(err, ErrEmpty) {
			continue
		}
		if err != nil {
			fmt.Fprintln(r.Out, "error:", err)
			continue
		}
		if cmd.Kind == KindExit {
			fmt.Fprintln(r.Out, "bye")
			return nil
		}
		if err := r.Execute(ctx, cmd); err != nil {
			fmt.Fprintln(r.Out, "error:", err)
		}
	}
}

// Execute runs one parsed command and writes its result to Out.
func (r *REPL) Execute(ctx context.Context, cmd *Command) error {
	switch cmd.Kind {
	case KindHelp:
		fmt.Fprint(r.Out, usageText)
		return nil
	case KindAgents:
		return r.printSummary()
	case KindHistory:
		return r.printHistory()
	case KindExit:
		return nil
	}

	skillName, ok := skillFor(cmd.Kind)
	if !ok {
		return fmt.Errorf("no skill for command kind %d", cmd.Kind)
	}
	res, err := r.Orchestrator.ExecuteAgent(ctx, AgentName, skillName, cmd.Args)
	if err != nil {
		return err
	}

	switch cmd.Kind {
	case KindList:
		tasks, _ := res.Data.([]*task.Task)
		return r.printTasks(tasks, cmd.JSON)
	default:
		fmt.Fprintln(r.Out, res.Message)
		return nil
	}
}

func skillFor(kind Kind) (string, bool) {
	switch kind {
	case KindAdd:
		return "create_task", true
	case KindList:
		return "list_tasks", true
	case KindShow:
		return "get_task", true
	case KindUpdate:
		return "update_task", true
	case KindDelete:
		return "delete_task", true
	case KindComplete, KindIncomplete:
		return "set_task_status", true
	}
	return "", false
}

func (r *REPL) printTasks(tasks []*task.Task, asJSON bool) error {
	if asJSON {
		out := struct {
			Tasks []*task.Task `json:"tasks"`
		}{Tasks: tasks}
		if out.Tasks == nil {
			out.Tasks = []*task.Task{}
		}
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(r.Out, "no tasks")
		return nil
	}
	for _, t := range tasks {
		fmt.Fprintln(r.Out, t.String())
	}
	return nil
}

func (r *REPL) printSummary() error {
	s := r.Orchestrator.Summarize()
	for _, name := range s.Agents {
		fmt.Fprintf(r.Out, "%s (%s)\n", agent.DisplayName(name), name)
		for _, skillName := range s.Bindings[name] {
			fmt.Fprintf(r.Out, "  %s\n", skillName)
		}
	}
	return nil
}

func (r *REPL) printHistory() error {
	entries := r.Orchestrator.History()
	if len(entries) == 0 {
		fmt.Fprintln(r.Out, "no history")
		return nil
	}
	for _, e := range entries {
		line := e.Message
		if e.Err != "" {
			line = "error: " + e.Err
		}
		fmt.Fprintf(r.Out, "%s %s: %s\n", e.At.Format("15:04:05"), e.Skill, line)
	}
	return nil
}
