package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/atomic-lang/atomic/source/evaluator"
	"github.com/atomic-lang/atomic/source/lexer"
	"github.com/atomic-lang/atomic/source/object"
	"github.com/atomic-lang/atomic/source/parser"
	"github.com/atomic-lang/atomic/source/text"
	"github.com/atomic-lang/atomic/source/token"
)

// Runs a file, showing the source, the tokens and the tree on the way. Returns the exit status:
// 1 if anything at all was reported.
func traceRun(args []string, out io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(out, "file to run expected.")
		return 1
	}
	path, e := filepath.Abs(args[0])
	if e != nil {
		path = args[0]
	}
	data, e := os.ReadFile(path)
	if e != nil {
		fmt.Fprintln(out, text.ERROR+errors.Wrapf(e, "can't run %s", args[0]).Error())
		return 1
	}
	fmt.Fprintln(out, string(data))

	tokens, lexErrors := lexer.Tokenize(path, string(data))
	fmt.Fprintln(out, text.Banner("TOKENS:"))
	fmt.Fprint(out, token.NewCodeChunk(tokens).String())

	prog, parseErrors := parser.Parse(tokens)
	fmt.Fprintln(out, text.Banner("PARSED:"))
	fmt.Fprint(out, prog.String())

	c := evaluator.NewSession(out, filepath.Dir(path))
	reporter := c.Reporter()
	reporter.ReportAll(lexErrors)
	reporter.ReportAll(parseErrors)
	if reporter.ErrorsExist() {
		fmt.Fprint(out, reporter.GetList())
		return 1
	}

	result, e := evaluator.RunProgram(prog, c)
	if reporter.ErrorsExist() {
		fmt.Fprint(out, reporter.GetList())
	}
	if e != nil {
		fmt.Fprintln(out, text.ERROR+e.Error())
		return 1
	}
	fmt.Fprintln(out, text.ColorValue(object.TypeOf(result), result.Inspect()))
	if reporter.ErrorsExist() {
		return 1
	}
	return 0
}
