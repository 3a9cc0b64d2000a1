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
	prompt()
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Progress(ctx context.Context) error
	Solved(ctx context.Context, topicID string) error
	Done(ctx context.Context, topicID string) error
	Refresh(ctx context.Context) error
	ToggleMode(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the cpguide CLI.
//
// It prompts, reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help                 show available commands
//	  - signup | register    create an account
//	  - login                authenticate
//	  - mode                 toggle light/dark colors
//	  - exit | quit          leave the program
//
//	Logged in:
//	  - help                 show available commands
//	  - status               who is logged in and until when
//	  - progress             table of topics
//	  - solved <topic>       solved problems of a topic
//	  - done <topic>         whether a topic is completed
//	  - refresh              re-fetch progress from the server
//	  - mode                 toggle light/dark colors
//	  - logout               log out
//	  - exit | quit          leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		a.prompt()
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: status, progress, solved <topic>, done <topic>, refresh, mode, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, mode, exit")
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "progress":
			_ = a.Progress(ctx)

		case "solved":
			if len(args) == 0 {
				printlnFn("Usage: solved <topic>")
				continue
			}
			_ = a.Solved(ctx, args[0])

		case "done":
			if len(args) == 0 {
				printlnFn("Usage: done <topic>")
				continue
			}
			_ = a.Done(ctx, args[0])

		case "refresh":
			_ = a.Refresh(ctx)

		case "mode":
			_ = a.ToggleMode(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
