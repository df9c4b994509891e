package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Ping(ctx context.Context) error
	ListProjects(ctx context.Context) error
	AddProject(ctx context.Context) error
	ShowProject(ctx context.Context, id string) error
	EditProject(ctx context.Context, id string) error
	DeleteProject(ctx context.Context, id string) error
	ListTasks(ctx context.Context, projectID string, filters []string) error
	AddTask(ctx context.Context, projectID string) error
	ShowTask(ctx context.Context, id string) error
	EditTask(ctx context.Context, id string) error
	SetTaskStatus(ctx context.Context, id, status string) error
	DeleteTask(ctx context.Context, id string) error
}

// runREPL starts a read-eval-print loop for the ProgressPilot CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("Welcome to ProgressPilot CLI (type 'help' for commands)")

	for {
		printlnFn(fmt.Sprintf("pp %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands:")
				printlnFn("  list                           - list your projects")
				printlnFn("  add                            - create a project")
				printlnFn("  show <projectId>               - project details with its tasks")
				printlnFn("  edit <projectId>               - rename a project")
				printlnFn("  rmproject <projectId>          - delete a project and its tasks")
				printlnFn("  tasks <projectId> [status] [q] - list tasks, optionally filtered")
				printlnFn("  addtask <projectId>            - create a task")
				printlnFn("  task <taskId>                  - task details")
				printlnFn("  edittask <taskId>              - edit a task's title/description")
				printlnFn("  status <taskId> <status>       - change a task's status")
				printlnFn("  done <taskId>                  - mark a task completed")
				printlnFn("  rmtask <taskId>                - delete a task")
				printlnFn("  whoami, ping, logout, exit")
			} else {
				printlnFn("Available commands: register, login, ping, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "ping":
			_ = a.Ping(ctx)

		case "l", "list":
			_ = a.ListProjects(ctx)

		case "add":
			_ = a.AddProject(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <projectId>")
				continue
			}
			_ = a.ShowProject(ctx, args[0])

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <projectId>")
				continue
			}
			_ = a.EditProject(ctx, args[0])

		case "rmproject":
			if len(args) == 0 {
				printlnFn("Usage: rmproject <projectId>")
				continue
			}
			_ = a.DeleteProject(ctx, args[0])

		case "tasks":
			if len(args) == 0 {
				printlnFn("Usage: tasks <projectId> [status] [search]")
				continue
			}
			_ = a.ListTasks(ctx, args[0], args[1:])

		case "addtask":
			if len(args) == 0 {
				printlnFn("Usage: addtask <projectId>")
				continue
			}
			_ = a.AddTask(ctx, args[0])

		case "task":
			if len(args) == 0 {
				printlnFn("Usage: task <taskId>")
				continue
			}
			_ = a.ShowTask(ctx, args[0])

		case "edittask":
			if len(args) == 0 {
				printlnFn("Usage: edittask <taskId>")
				continue
			}
			_ = a.EditTask(ctx, args[0])

		case "status":
			if len(args) < 2 {
				printlnFn("Usage: status <taskId> <todo|in-progress|review|completed>")
				continue
			}
			_ = a.SetTaskStatus(ctx, args[0], args[1])

		case "done":
			if len(args) == 0 {
				printlnFn("Usage: done <taskId>")
				continue
			}
			_ = a.SetTaskStatus(ctx, args[0], "completed")

		case "rmtask":
			if len(args) == 0 {
				printlnFn("Usage: rmtask <taskId>")
				continue
			}
			_ = a.DeleteTask(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
