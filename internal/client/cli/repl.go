package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isUnlocked() bool
	Unlock(ctx context.Context) error
	Journal(ctx context.Context, args []string) error
	Food(ctx context.Context, args []string) error
	Report(ctx context.Context, args []string) error
	Transcribe(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
}

const (
	helpLocked   = "Available commands: unlock, food, transcribe, sync, status, exit"
	helpUnlocked = "Available commands: journal, food, report, transcribe, sync, status, exit\n" +
		"  journal add | list [child] | show <id> | edit <id> | delete <id>\n" +
		"  food add | list [child] | move <id> <category> | image <id> <file> | delete <id>\n" +
		"  report generate <type> [child] | list [child] | show <id> | delete <id>\n" +
		"  transcribe <file> <field>"
)

// runREPL starts a simple read–eval–print loop for the journal CLI.
//
// It reads a line from in, parses the first token as the command and the
// rest as its arguments, and dispatches to methods on 'a'. Interactive
// commands keep reading their answers from the same reader. The loop exits
// on EOF, when ctx is done, or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("journal %s > ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isUnlocked() {
				printlnFn(helpUnlocked)
			} else {
				printlnFn(helpLocked)
			}

		case "unlock":
			_ = a.Unlock(ctx)

		case "j", "journal":
			_ = a.Journal(ctx, args)

		case "f", "food":
			_ = a.Food(ctx, args)

		case "r", "report":
			_ = a.Report(ctx, args)

		case "transcribe":
			_ = a.Transcribe(ctx, args)

		case "sync":
			_ = a.Sync(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
