package evaluator

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/atomic-lang/atomic/source/ast"
	"github.com/atomic-lang/atomic/source/object"
	"github.com/atomic-lang/atomic/source/parser"
)

// RunProgram evaluates a parsed program. Diagnostics go to the context's reporter; the error
// returned is for failures that stop the evaluation altogether, such as a module that can't be read.
func RunProgram(prog *ast.Program, c *Context) (result object.Object, e error) {
	defer func() {
		if r := recover(); r != nil {
			fatal, ok := r.(fatalError)
			if !ok {
				panic(r)
			}
			result, e = object.NULL, fatal.error
		}
	}()
	return EvalProgram(prog, c), nil
}

// Run lexes, parses and evaluates. If lexing or parsing went wrong, the errors are reported and
// nothing is evaluated.
func Run(source, input string, c *Context) (object.Object, error) {
	prog, ers := parser.ParseSource(source, input)
	if len(ers) > 0 {
		c.reporter.ReportAll(ers)
		return object.NULL, nil
	}
	return RunProgram(prog, c)
}

// RunFile runs a file in the context's environment, with relative module paths resolved against
// the file's own directory while it runs.
func RunFile(path string, c *Context) (object.Object, error) {
	path = c.resolver.Resolve(path)
	data, e := os.ReadFile(path)
	if e != nil {
		return object.NULL, errors.Wrapf(e, "can't run %s", path)
	}
	defer c.resolver.Enter(filepath.Dir(path))()
	return Run(path, string(data), c)
}
