package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the userdir CLI.
//
// It reads a line from the provided reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types "exit" or
// "quit".
//
// Commands requiring authentication are gated here: when nobody is logged
// in, the dispatcher emits the redirect-to-login notice instead of running
// the command. Any errors returned by command handlers are ignored here;
// handlers surface their own outcomes. This keeps the loop resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "userdir> %s > \n", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				fmt.Fprintln(w, "Available commands: whoami, (l)ist, add, edit, delete, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			if !requireAuth(ctx, a, w) {
				continue
			}
			_ = a.WhoAmI(ctx)

		case "l", "list":
			if !requireAuth(ctx, a, w) {
				continue
			}
			_ = a.List(ctx)

		case "add":
			if !requireAuth(ctx, a, w) {
				continue
			}
			_ = a.Add(ctx)

		case "edit":
			if !requireAuth(ctx, a, w) {
				continue
			}
			_ = a.Edit(ctx)

		case "delete":
			if !requireAuth(ctx, a, w) {
				continue
			}
			_ = a.Delete(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

// requireAuth is the routing signal: when nobody is authenticated it prints
// the redirect notice and tells the dispatcher to bounce back to the login
// prompt.
func requireAuth(ctx context.Context, a execIface, w io.Writer) bool {
	if a.isLoggedIn(ctx) {
		return true
	}
	fmt.Fprintln(w, "You are not logged in. Redirecting to login.")
	return false
}
