package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/virtual-arena/arena-cli/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	consumeSignIn() bool
	consumeBack() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	VerifyEmail(ctx context.Context) error
	Feed(ctx context.Context) error
	Search(ctx context.Context) error
	Read(ctx context.Context, id string) error
	NewArticle(ctx context.Context) error
	EditArticle(ctx context.Context, id string) error
	Profile(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// Root starts the interactive loop on stdin.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Arena (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	statusFn := func() string { return a.status(ctx) }
	runREPL(ctx, a, statusFn, scanner)
}

func (a *App) status(ctx context.Context) string {
	name, err := a.store.Get(ctx, session.KeyUsername)
	if err != nil || name == "" {
		return ""
	}
	return "(" + name + ")"
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help | register | login | verify | feed | search | read <id> | exit
//
//	Logged in:
//	  - help | feed | search | read <id> | new | edit <id> | profile
//	  - refresh | logout | exit
//
// Guarded commands (new, edit, profile) check the route guard themselves;
// when it denies, the REPL lands on the login prompt before the next read,
// the terminal rendition of a redirect to /auth/sign-in.
//
// Any errors returned by command handlers are ignored here; handlers surface
// their own toasts. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if a.consumeSignIn() {
			printlnFn("Sign in required")
			_ = a.Login(ctx)
		}

		printlnFn(fmt.Sprintf("arena %s> ", statusFn()))
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
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: feed, search, read <id>, new, edit <id>, profile, refresh, logout, exit")
			} else {
				printlnFn("Available commands: register, login, verify, feed, search, read <id>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "verify":
			_ = a.VerifyEmail(ctx)

		case "feed", "f":
			_ = a.Feed(ctx)

		case "search", "s":
			_ = a.Search(ctx)

		case "read", "r":
			if len(args) == 0 {
				printlnFn("Usage: read <article-id>")
				continue
			}
			_ = a.Read(ctx, args[0])
			// A deletion inside the detail view navigates "back", which at
			// the top level is just the prompt again.
			_ = a.consumeBack()

		case "new":
			_ = a.NewArticle(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <article-id>")
				continue
			}
			_ = a.EditArticle(ctx, args[0])

		case "profile":
			_ = a.Profile(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
