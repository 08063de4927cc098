// Package cli implements the interactive task manager: a line parser
// producing a closed Command type, and a REPL that dispatches commands
// through the agent orchestrator.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GoCodeAlone/taskbook/skill"
)

// Kind identifies a parsed REPL command.
type Kind int

const (
	KindAdd Kind = iota
	KindList
	KindShow
	KindUpdate
	KindDelete
	KindComplete
	KindIncomplete
	KindAgents
	KindHistory
	KindHelp
	KindExit
)

// Command is one parsed REPL line. Args uses the skill argument keys so
// the executor can hand them to the orchestrator unchanged.
type Command struct {
	Kind Kind
	Args map[string]string
	JSON bool
}

// ErrEmpty is returned for blank input lines.
var ErrEmpty = errors.New("empty command")

// Parse turns one input line into a Command. Unknown or malformed input
// returns an error, never panics.
func Parse(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmpty
	}

	verb, rest := fields[0], fields[1:]
	switch verb {
	case "add":
		title, flags, err := splitFlags(rest, "-d")
		if err != nil {
			return nil, err
		}
		if title == "" {
			return nil, errors.New("usage: add <title> [-d description]")
		}
		args := map[string]string{skill.ArgTitle: title}
		if d, ok := flags["-d"]; ok {
			args[skill.ArgDescription] = d
		}
		return &Command{Kind: KindAdd, Args: args}, nil

	case "list":
		cmd := &Command{Kind: KindList, Args: map[string]string{}}
		switch {
		case len(rest) == 0:
		case len(rest) == 1 && rest[0] == "json":
			cmd.JSON = true
		default:
			return nil, errors.New("usage: list [json]")
		}
		return cmd, nil

	case "show":
		return idCommand(KindShow, "show", rest)
	case "delete":
		return idCommand(KindDelete, "delete", rest)

	case "update":
		if len(rest) == 0 {
			return nil, errors.New("usage: update <id> [-t title] [-d description]")
		}
		_, flags, err := splitFlags(rest[1:], "-t", "-d")
		if err != nil {
			return nil, err
		}
		args := map[string]string{skill.ArgID: rest[0]}
		if t, ok := flags["-t"]; ok {
			args[skill.ArgTitle] = t
		}
		if d, ok := flags["-d"]; ok {
			args[skill.ArgDescription] = d
		}
		if len(args) == 1 {
			return nil, errors.New("update: supply -t and/or -d")
		}
		return &Command{Kind: KindUpdate, Args: args}, nil

	case "complete":
		cmd, err := idCommand(KindComplete, "complete", rest)
		if err != nil {
			return nil, err
		}
		cmd.Args[skill.ArgStatus] = "complete"
		return cmd, nil

	case "incomplete":
		cmd, err := idCommand(KindIncomplete, "incomplete", rest)
		if err != nil {
			return nil, err
		}
		cmd.Args[skill.ArgStatus] = "incomplete"
		return cmd, nil

	case "agents":
		return &Command{Kind: KindAgents}, nil
	case "history":
		return &Command{Kind: KindHistory}, nil
	case "help":
		return &Command{Kind: KindHelp}, nil
	case "exit", "quit":
		return &Command{Kind: KindExit}, nil
	}

	return nil, fmt.Errorf("unknown command %q (try help)", verb)
}

func idCommand(kind Kind, verb string, rest []string) (*Command, error) {
	if len(rest) != 1 {
		return nil, fmt.Errorf("usage: %s <id>", verb)
	}
	return &Command{Kind: kind, Args: map[string]string{skill.ArgID: rest[0]}}, nil
}

// splitFlags separates leading free text from trailing `-x value...`
// flags. Flag values run until the next known flag, so descriptions and
// titles may contain spaces without quoting.
func splitFlags(fields []string, known ...string) (string, map[string]string, error) {
	isFlag := func(f string) bool {
		for _, k := range known {
			if f == k {
				return true
			}
		}
		return false
	}

	flags := make(map[string]string)
	var free []string
	i := 0
	for ; i < len(fields) && !isFlag(fields[i]); i++ {
		free = append(free, fields[i])
	}
	for i < len(fields) {
		flag := fields[i]
		i++
		var value []string
		for ; i < len(fields) && !isFlag(fields[i]); i++ {
			value = append(value, fields[i])
		}
		if len(value) == 0 {
			return "", nil, fmt.Errorf("flag %s needs a value", flag)
		}
		flags[flag] = strings.Join(value, " ")
	}
	return strings.Join(free, " "), flags, nil
}
