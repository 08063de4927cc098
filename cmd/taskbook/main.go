// Command taskbook is the taskbook CLI. With no arguments it runs the
// interactive in-memory task manager; with a command it talks to a
// running taskbookd server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/GoCodeAlone/taskbook/cli"
	"github.com/GoCodeAlone/taskbook/client"
	"github.com/GoCodeAlone/taskbook/internal/version"
	"github.com/GoCodeAlone/taskbook/task"
	"github.com/GoCodeAlone/taskbook/update"
)

const defaultServer = "http://localhost:8080"

func main() {
	var (
		serverURL = flag.String("server", defaultServer, "taskbook server URL")
		token     = flag.String("token", os.Getenv("TASKBOOK_TOKEN"), "JWT auth token")
	)
	flag.Usage = usage
	flag.Parse()

	ctx := context.Background()
	args := flag.Args()
	if len(args) == 0 {
		if err := runREPL(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cl := client.New(*serverURL, *token)

	cmd := args[0]
	rest := args[1:]

	var err error
	switch cmd {
	case "version":
		fmt.Printf("taskbook %s (commit %s, built %s)\n",
			version.Version, version.Commit, version.BuildDate)
	case "status":
		err = cmdStatus(ctx, cl)
	case "signup":
		err = cmdSession(ctx, cl.Signup, "signup", rest)
	case "login":
		err = cmdSession(ctx, cl.Login, "login", rest)
	case "tasks":
		err = cmdTasks(ctx, cl, rest)
	case "task":
		err = cmdTask(ctx, cl, rest)
	case "upgrade":
		err = cmdUpgrade(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `taskbook — task manager CLI

Usage:
  taskbook                                      interactive mode (in-memory)
  taskbook [flags] <command> [args]             remote mode

Flags:
  --server  <url>    server URL (default: http://localhost:8080)
  --token   <token>  JWT auth token (or $TASKBOOK_TOKEN)

Commands:
  version                                print version
  status                                 show server status
  signup <email> <password>              create an account, print its token
  login <email> <password>               log in, print a token
  tasks <user-id> [status]               list tasks
  task create <user-id> <title...>       create a task
  task get <user-id> <id>                show a task
  task update <user-id> <id> <title...>  change a task's title
  task delete <user-id> <id>             delete a task
  task complete <user-id> <id>           toggle a task's status
  upgrade                                update taskbook to the latest release
`)
}

func runREPL(ctx context.Context) error {
	orch, err := cli.NewOrchestrator()
	if err != nil {
		return err
	}
	return cli.NewREPL(orch, os.Stdin, os.Stdout).Run(ctx)
}

func cmdUpgrade(ctx context.Context) error {
	u := update.New(version.Version)
	rel, err := u.CheckForUpdate(ctx)
	if err != nil {
		return err
	}
	if rel == nil {
		fmt.Println("already up to date")
		return nil
	}
	fmt.Printf("updating to %s...\n", rel.Version)
	if err := u.ApplyUpdate(ctx, rel); err != nil {
		return err
	}
	fmt.Println("done")
	return nil
}

func cmdStatus(ctx context.Context, cl *client.Client) error {
	result, err := cl.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("status:  %s\n", result["status"])
	fmt.Printf("version: %s\n", result["version"])
	return nil
}

func cmdSession(ctx context.Context,
	fn func(context.Context, string, string) (*client.Session, error),
	name string, args []string,
) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: taskbook %s <email> <password>", name)
	}
	sess, err := fn(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("user:  %s\n", sess.User.ID)
	fmt.Printf("token: %s\n", sess.Token)
	return nil
}

func cmdTasks(ctx context.Context, cl *client.Client, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: taskbook tasks <user-id> [status]")
	}
	status := ""
	if len(args) == 2 {
		status = args[1]
	}
	tasks, err := cl.Tasks(ctx, args[0], status)
	if err != nil {
		return err
	}
	printTasks(tasks)
	return nil
}

func cmdTask(ctx context.Context, cl *client.Client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: taskbook task <create|get|update|delete|complete> ...")
	}
	sub := args[0]
	rest := args[1:]

	switch sub {
	case "create":
		if len(rest) < 2 {
			return fmt.Errorf("usage: taskbook task create <user-id> <title...>")
		}
		t, err := cl.CreateTask(ctx, rest[0], strings.Join(rest[1:], " "), "")
		if err != nil {
			return err
		}
		fmt.Printf("created task %d\n", t.ID)
		return nil

	case "get":
		userID, id, err := userAndID(sub, rest)
		if err != nil {
			return err
		}
		t, err := cl.GetTask(ctx, userID, id)
		if err != nil {
			return err
		}
		fmt.Println(t.String())
		if t.Description != "" {
			fmt.Println(t.Description)
		}
		return nil

	case "update":
		if len(rest) < 3 {
			return fmt.Errorf("usage: taskbook task update <user-id> <id> <title...>")
		}
		id, err := strconv.ParseInt(rest[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid task id %q", rest[1])
		}
		title := strings.Join(rest[2:], " ")
		t, err := cl.UpdateTask(ctx, rest[0], id, &title, nil)
		if err != nil {
			return err
		}
		fmt.Printf("updated task %d\n", t.ID)
		return nil

	case "delete":
		userID, id, err := userAndID(sub, rest)
		if err != nil {
			return err
		}
		if err := cl.DeleteTask(ctx, userID, id); err != nil {
			return err
		}
		fmt.Printf("deleted task %d\n", id)
		return nil

	case "complete":
		userID, id, err := userAndID(sub, rest)
		if err != nil {
			return err
		}
		t, err := cl.ToggleTask(ctx, userID, id)
		if err != nil {
			return err
		}
		fmt.Printf("task %d is now %s\n", t.ID, t.Status)
		return nil
	}

	return fmt.Errorf("unknown task subcommand: %s", sub)
}

func userAndID(sub string, args []string) (string, int64, error) {
	if len(args) != 2 {
		return "", 0, fmt.Errorf("usage: taskbook task %s <user-id> <id>", sub)
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid task id %q", args[1])
	}
	return args[0], id, nil
}

func printTasks(tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Println("no tasks")
		return
	}
	fmt.Printf("%-5s %-40s %-12s\n", "ID", "TITLE", "STATUS")
	fmt.Println(strings.Repeat("-", 58))
	for _, t := range tasks {
		fmt.Printf("%-5d %-40s %-12s\n", t.ID, truncate(t.Title, 39), t.Status)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
