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
	hasOrg() bool
	Use(ctx context.Context, args []string) error
	Summary(ctx context.Context) error
	Items(ctx context.Context) error
	Drafts(ctx context.Context) error
	Read(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	Freshness(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the draftkeep CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	No organization selected:
//	  - help             — show available commands
//	  - use <org> [app]  — scope the session to an organization
//	  - status           — show connectivity state
//	  - exit | quit      — leave the program
//
//	Organization selected:
//	  - help             — show available commands
//	  - summary          — offline footprint of the organization
//	  - items            — per-item draft/offline view
//	  - drafts           — list local drafts
//	  - read <item>      — resolve the displayable content for an item
//	  - export           — create a snapshot and write it to the snapshot dir
//	  - import <file>    — validate and import a snapshot bundle
//	  - clear            — remove all offline data (asks to confirm)
//	  - freshness        — last-checked times per data scope
//	  - status           — show connectivity state
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dk> %s > ", statusFn()))
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
			if a.hasOrg() {
				printlnFn("Available commands: summary, items, drafts, read, export, import, clear, freshness, status, use, exit")
			} else {
				printlnFn("Available commands: use <org> [app], status, exit")
			}

		case "use":
			_ = a.Use(ctx, args)

		case "summary":
			_ = a.Summary(ctx)

		case "items":
			_ = a.Items(ctx)

		case "drafts":
			_ = a.Drafts(ctx)

		case "read":
			_ = a.Read(ctx, args)

		case "export":
			_ = a.Export(ctx, args)

		case "import":
			_ = a.Import(ctx, args)

		case "clear":
			_ = a.Clear(ctx)

		case "freshness":
			_ = a.Freshness(ctx)

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
