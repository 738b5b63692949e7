package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context)
	Logout(ctx context.Context)
	Status(ctx context.Context)
	Refresh(ctx context.Context)
	Open(ctx context.Context, path string)
}

func (a *App) getPrompt() string {
	if u := a.manager.User(); u != nil {
		return fmt.Sprintf("parcelace (%s)> ", u.Email)
	}
	return "parcelace> "
}

// Root runs the interactive shell until EOF or exit.
func (a *App) Root(ctx context.Context) {
	printlnFn("ParcelAce client (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(a.getPrompt())
		if !scanner.Scan() {
			break
		}
		if !dispatch(ctx, a, scanner.Text()) {
			return
		}
	}
}

// dispatch executes one command line. It returns false when the shell
// should terminate.
func dispatch(ctx context.Context, a execIface, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}

	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: status, refresh, open <path>, logout, exit")
		} else {
			printlnFn("Available commands: login, status, exit")
		}
	case "login":
		a.Login(ctx)
	case "logout":
		a.Logout(ctx)
	case "status", "whoami":
		a.Status(ctx)
	case "refresh":
		a.Refresh(ctx)
	case "open":
		if len(args) == 0 {
			printlnFn("Usage: open <path>")
			return true
		}
		a.Open(ctx, args[0])
	case "exit", "quit":
		printlnFn("Bye!")
		return false
	default:
		printlnFn("Unknown command:", cmd)
	}
	return true
}
