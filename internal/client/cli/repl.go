package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// errUnknownCommand is returned by exec for a command it does not know.
var errUnknownCommand = errors.New("unknown command")

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Help(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Menu(ctx context.Context) error
	Open(ctx context.Context, id string) error
	Status(ctx context.Context) error
	Toasts(ctx context.Context, args []string) error
	// Exec runs a view command. It returns errUnknownCommand for names it
	// does not know.
	Exec(ctx context.Context, cmd string, args []string) error
	report(ctx context.Context, err error)
}

// runREPL starts a simple read-eval-print loop for the SWMS CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx is done, or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help           - show available commands
//	  - status         - session and storage details
//	  - toasts [clear] - notifications that have not expired yet
//	  - exit | quit    - leave the program
//
//	Not logged in:
//	  - register       - create a viewer account
//	  - login          - authenticate
//
//	Logged in:
//	  - menu           - list the menus this role may open
//	  - open <menu>    - open a menu and show its view
//	  - logout         - end the session
//	  - any view command listed by help
//
// Handler errors are passed to a.report, which turns them into error toasts.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("swms [%s]> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			err = a.Help(ctx)

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "menu", "m":
			err = a.Menu(ctx)

		case "open", "o":
			if len(args) == 0 {
				printlnFn("Usage: open <menu>")
				continue
			}
			err = a.Open(ctx, args[0])

		case "status":
			err = a.Status(ctx)

		case "toasts":
			err = a.Toasts(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			err = a.Exec(ctx, cmd, args)
			if errors.Is(err, errUnknownCommand) {
				printlnFn("Unknown command:", cmd)
				continue
			}
		}

		if err != nil {
			a.report(ctx, err)
		}
	}
}
