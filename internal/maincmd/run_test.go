package maincmd_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JBreidfjord/loxide/internal/filetest"
	"github.com/JBreidfjord/loxide/internal/maincmd"
)

var testUpdateRunTests = flag.Bool("test.update-run-tests", false, "If set, replace expected run test results with actual results.")

func init() {
	// keep golden files free of escape sequences
	color.NoColor = true
}

func TestRunFiles(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".lox") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			// error is ignored, we just want it to be printed to ebuf
			_ = maincmd.RunFile(ctx, stdio, filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateRunTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateRunTests)
		})
	}
}

func TestRunFileMissing(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

	err := maincmd.RunFile(context.Background(), stdio, filepath.Join("testdata", "nope.lox"))
	require.Error(t, err)
	assert.NotEmpty(t, ebuf.String())
}

func TestRepl(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{
		Stdin:  strings.NewReader("print 1 + 1;\n\n"),
		Stdout: &buf,
		Stderr: &ebuf,
	}

	err := maincmd.Repl(context.Background(), stdio)
	require.NoError(t, err)
	assert.Equal(t, "> 2\n> Exiting...\n", buf.String())
	assert.Empty(t, ebuf.String())
}

func TestReplContinuesAfterError(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{
		Stdin:  strings.NewReader("print nope;\nvar a = 2;\nprint a * 3;\n\n"),
		Stdout: &buf,
		Stderr: &ebuf,
	}

	err := maincmd.Repl(context.Background(), stdio)
	require.NoError(t, err)
	assert.Contains(t, ebuf.String(), "undefined variable: nope")
	assert.Contains(t, buf.String(), "6\n")
}

func TestReplGlobalsPersist(t *testing.T) {
	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{
		Stdin:  strings.NewReader("var greet = \"hi\";\nprint greet + \" there\";\n\n"),
		Stdout: &buf,
		Stderr: &ebuf,
	}

	err := maincmd.Repl(context.Background(), stdio)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hi there\n")
	assert.Empty(t, ebuf.String())
}

func TestReplEOFExits(t *testing.T) {
	var buf bytes.Buffer
	stdio := mainer.Stdio{
		Stdin:  strings.NewReader("print 1;\n"),
		Stdout: &buf,
		Stderr: &buf,
	}

	err := maincmd.Repl(context.Background(), stdio)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Exiting...")
}
