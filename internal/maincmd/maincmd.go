// Package maincmd implements the command-line interface of the interpreter:
// the run and repl commands, plus the tokenize, parse and resolve commands
// that print the result of the individual compilation phases.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"

	"github.com/JBreidfjord/loxide/lang/interp"
	"github.com/JBreidfjord/loxide/lang/scanner"
	"github.com/JBreidfjord/loxide/lang/token"
)

const binName = "loxide"

// Exit codes of the binary beyond mainer.Success.
const (
	ExitUsage   = mainer.ExitCode(64) // command misuse (argument count, unknown command)
	ExitCompile = mainer.ExitCode(65) // scanner, parser or resolver error
	ExitRuntime = mainer.ExitCode(70) // runtime error
	ExitIO      = mainer.ExitCode(74) // I/O error
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking interpreter for the %[1]s scripting language.

The <command> can be one of:
       run                       Run a script file.
       repl                      Start an interactive session; an empty
                                 line exits.
       tokenize                  Execute the scanner phase and print the
                                 resulting tokens.
       parse                     Execute the parser phase and print the
                                 resulting abstract syntax tree (AST).
       resolve                   Execute the resolver phase and print the
                                 AST along with any binding errors.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options for the <tokenize>, <parse> and <resolve> commands are:
       --pos-mode <mode>         Position rendering: none, offsets, long
                                 or raw (long by default).

More information on the %[1]s repository:
       https://github.com/JBreidfjord/loxide
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	PosMode string `flag:"pos-mode"`

	args    []string
	flags   map[string]bool
	posMode token.PosMode
	cmdFn   func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	switch cmdName {
	case "tokenize", "parse", "resolve":
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", cmdName)
		}
	case "run":
		if len(c.args[1:]) != 1 {
			return fmt.Errorf("%s: exactly one file must be provided", cmdName)
		}
	case "repl":
		if len(c.args[1:]) != 0 {
			return fmt.Errorf("%s: no arguments expected", cmdName)
		}
	}

	if c.flags["pos-mode"] {
		if cmdName == "run" || cmdName == "repl" {
			return fmt.Errorf("%s: invalid flag 'pos-mode'", cmdName)
		}
		switch c.PosMode {
		case "none":
			c.posMode = token.PosNone
		case "offsets":
			c.posMode = token.PosOffsets
		case "long":
			c.posMode = token.PosLong
		case "raw":
			c.posMode = token.PosRaw
		default:
			return fmt.Errorf("invalid pos-mode: %s", c.PosMode)
		}
	} else {
		c.posMode = token.PosLong
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return ExitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each command takes care of printing its errors, just map the error
		// category to the exit code
		return exitCode(err)
	}
	return mainer.Success
}

func exitCode(err error) mainer.ExitCode {
	var (
		list    scanner.ErrorList
		runErr  *interp.Error
		pathErr *fs.PathError
	)
	switch {
	case err == nil:
		return mainer.Success
	case errors.As(err, &list):
		return ExitCompile
	case errors.As(err, &runErr):
		return ExitRuntime
	case errors.As(err, &pathErr):
		return ExitIO
	}
	return mainer.Failure
}

// valid commands are those that take a mainer.Stdio and a slice of strings as
// input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
