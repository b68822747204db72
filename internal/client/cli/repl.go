package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL-level output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	Select(ctx context.Context, args []string) error
	Drop(ctx context.Context, args []string) error
	Upload(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Download(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

const helpText = "Available commands: select <path>, drop <path>..., upload, (l)ist, search [term], refresh, download <id>, delete <id>, status, exit"

// runREPL reads commands line by line and dispatches them to a.
//
// Commands
//
//	help                 show available commands
//	select <path>        pick a local file for upload
//	drop <path>...       same as select, via drag-and-drop semantics
//	upload               upload the selected file in the background
//	l | list             list files matching the search term
//	search [term]        set (or clear) the search term and list
//	refresh              reload the file list from the store
//	download <id>        save a file into the download directory
//	delete <id>          delete a file from the store
//	status               show selection, upload state and any error
//	exit | quit          leave the program
//
// Handler errors are ignored here; handlers report their own outcome.
// promptFn, when non-nil, receives statusFn's text before each read.
// The loop exits on EOF, on exit/quit or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, promptFn func(status string)) {
	for {
		if ctx.Err() != nil {
			return
		}
		if promptFn != nil {
			promptFn(statusFn())
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "select":
			_ = a.Select(ctx, args)

		case "drop":
			_ = a.Drop(ctx, args)

		case "upload":
			_ = a.Upload(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, args)

		case "refresh":
			_ = a.Refresh(ctx)

		case "download":
			_ = a.Download(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

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
