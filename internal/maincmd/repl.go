package maincmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/JBreidfjord/loxide/lang/interp"
	"github.com/JBreidfjord/loxide/lang/token"
)

func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return Repl(ctx, stdio)
}

// Repl reads a line at a time from the stdio input, runs the pipeline on
// each and prints any surfaced error. The global scope persists across
// lines. An empty line, end of input or context cancellation exits.
func Repl(ctx context.Context, stdio mainer.Stdio) error {
	fset := token.NewFileSet()
	it := interp.New(fset)
	it.Stdout = stdio.Stdout

	in := bufio.NewScanner(stdio.Stdin)
	for lineNo := 1; ; lineNo++ {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprint(stdio.Stdout, "> ")
		if !in.Scan() {
			fmt.Fprintln(stdio.Stdout, "Exiting...")
			return in.Err()
		}
		line := in.Text()
		if line == "" {
			fmt.Fprintln(stdio.Stdout, "Exiting...")
			return nil
		}

		name := fmt.Sprintf("repl:%d", lineNo)
		if err := runChunk(ctx, fset, it, name, []byte(line)); err != nil {
			// print and continue, whatever the error category
			printRunError(stdio, err)
		}
	}
}
