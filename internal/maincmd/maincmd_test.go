package maincmd

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBreidfjord/loxide/lang/interp"
	"github.com/JBreidfjord/loxide/lang/scanner"
	"github.com/JBreidfjord/loxide/lang/token"
)

func TestExitCode(t *testing.T) {
	var list scanner.ErrorList
	list.Add(token.Position{Filename: "x"}, "boom")

	cases := []struct {
		name string
		err  error
		want mainer.ExitCode
	}{
		{"nil", nil, mainer.Success},
		{"compile", list.Err(), ExitCompile},
		{"runtime", &interp.Error{Kind: interp.NotCallable}, ExitRuntime},
		{"io", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist}, ExitIO},
		{"other", errors.New("boom"), mainer.Failure},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, exitCode(c.err))
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		args  []string
		flags map[string]bool
		pos   string
		want  string // empty if no error expected
	}{
		{name: "no command", args: nil, want: "no command specified"},
		{name: "unknown command", args: []string{"nope"}, want: "unknown command: nope"},
		{name: "tokenize no file", args: []string{"tokenize"}, want: "at least one file"},
		{name: "parse ok", args: []string{"parse", "f.lox"}},
		{name: "run no file", args: []string{"run"}, want: "exactly one file"},
		{name: "run two files", args: []string{"run", "a.lox", "b.lox"}, want: "exactly one file"},
		{name: "run ok", args: []string{"run", "a.lox"}},
		{name: "repl with args", args: []string{"repl", "x"}, want: "no arguments expected"},
		{name: "repl ok", args: []string{"repl"}},
		{name: "bad pos-mode", args: []string{"parse", "f.lox"},
			flags: map[string]bool{"pos-mode": true}, pos: "bogus", want: "invalid pos-mode"},
		{name: "pos-mode on run", args: []string{"run", "f.lox"},
			flags: map[string]bool{"pos-mode": true}, pos: "long", want: "invalid flag 'pos-mode'"},
		{name: "pos-mode offsets", args: []string{"resolve", "f.lox"},
			flags: map[string]bool{"pos-mode": true}, pos: "offsets"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var cmd Cmd
			cmd.SetArgs(c.args)
			cmd.SetFlags(c.flags)
			cmd.PosMode = c.pos

			err := cmd.Validate()
			if c.want == "" {
				require.NoError(t, err)
				require.NotNil(t, cmd.cmdFn)
			} else {
				require.Error(t, err)
				assert.ErrorContains(t, err, c.want)
			}
		})
	}
}

func TestBuildCmds(t *testing.T) {
	cmds := buildCmds(&Cmd{})
	for _, name := range []string{"tokenize", "parse", "resolve", "run", "repl"} {
		assert.Contains(t, cmds, name)
	}
	// exported non-command methods must not be picked up
	assert.NotContains(t, cmds, "main")
	assert.NotContains(t, cmds, "validate")
}
