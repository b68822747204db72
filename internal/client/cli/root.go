package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// isTerminal is a test seam for prompt detection.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

func (a *App) getStatus() string {
	var parts []string
	if sel := a.vault.Selection(); !sel.IsZero() {
		parts = append(parts, sel.Name)
	}
	if a.vault.Busy() {
		parts = append(parts, "uploading")
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

func (a *App) prompt(status string) {
	a.printf("vault %s> ", status)
}

// Root runs the REPL over in until the user exits.
func (a *App) Root(ctx context.Context, in io.Reader) {
	var promptFn func(string)
	if isTerminal() {
		a.printf("Welcome to the file vault (type 'help' for commands)\n")
		promptFn = a.prompt
	}
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(in), promptFn)
}
