package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can provide
// a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Analyze(ctx context.Context, path string) error
	Report()
	Back()
	Reset()
}

// runREPL starts a simple read-eval-print loop.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Commands while anonymous: help, register, login, status, exit.
// Commands while logged in: help, analyze <path>, report, back, reset,
// status, logout, exit.
//
// Any errors returned by command handlers are ignored here; handlers
// print their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	fmt.Fprintln(out, "ImageProof CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(out, "imageproof %s> ", statusFn())
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
				fmt.Fprintln(out, "Available commands: analyze <path>, report, back, reset, status, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, status, exit")
			}

		case "status":
			fmt.Fprintln(out, statusFn())

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "analyze":
			if len(args) == 0 {
				fmt.Fprintln(out, "Usage: analyze <path>")
				continue
			}
			_ = a.Analyze(ctx, args[0])

		case "report":
			a.Report()

		case "back":
			a.Back()

		case "reset":
			a.Reset()

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
