package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mna/mainer"

	"github.com/JBreidfjord/loxide/lang/interp"
	"github.com/JBreidfjord/loxide/lang/parser"
	"github.com/JBreidfjord/loxide/lang/resolver"
	"github.com/JBreidfjord/loxide/lang/scanner"
	"github.com/JBreidfjord/loxide/lang/token"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFile(ctx, stdio, args[0])
}

// RunFile reads the file and runs the full pipeline on its content: scan,
// parse, resolve, evaluate. Effects go to the stdio print sink; the first
// surfaced error is printed to stderr and returned.
func RunFile(ctx context.Context, stdio mainer.Stdio, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	fset := token.NewFileSet()
	it := interp.New(fset)
	it.Stdout = stdio.Stdout

	if err := runChunk(ctx, fset, it, path, b); err != nil {
		printRunError(stdio, err)
		return err
	}
	return nil
}

// runChunk runs the compile phases and the evaluator on a single buffer.
func runChunk(ctx context.Context, fset *token.FileSet, it *interp.Interp, name string, src []byte) error {
	ch, err := parser.ParseChunk(ctx, fset, name, src)
	if err != nil {
		return err
	}
	bindings, err := resolver.ResolveChunk(ctx, fset, ch)
	if err != nil {
		return err
	}
	return it.RunChunk(ctx, ch, bindings)
}

func printRunError(stdio mainer.Stdio, err error) {
	if list, ok := err.(scanner.ErrorList); ok {
		scanner.PrintError(stdio.Stderr, list)
		return
	}
	fmt.Fprintln(stdio.Stderr, color.RedString("%s", err))
}
