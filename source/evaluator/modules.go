package evaluator

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/atomic-lang/atomic/source/ast"
	"github.com/atomic-lang/atomic/source/err"
	"github.com/atomic-lang/atomic/source/object"
	"github.com/atomic-lang/atomic/source/parser"
	"github.com/atomic-lang/atomic/source/set"
)

// The Resolver holds the directory that relative module paths are resolved against. While a module
// is being evaluated that is the module's own directory.
type Resolver struct {
	dir     string
	loading set.Set[string] // The modules we're in the middle of evaluating.
}

func NewResolver(dir string) *Resolver {
	return &Resolver{dir: dir, loading: set.Set[string]{}}
}

func (r *Resolver) Dir() string {
	return r.dir
}

func (r *Resolver) Resolve(path string) string {
	if filepath.IsAbs(path) || r.dir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(r.dir, path)
}

// Enter switches to dir and returns the function that switches back, to be deferred.
func (r *Resolver) Enter(dir string) func() {
	prev := r.dir
	r.dir = dir
	return func() { r.dir = prev }
}

// The ModuleCache saves us re-parsing a module that hasn't changed since we last used it. It is
// keyed by path, and an entry is only good if the contents hash the same.
type ModuleCache struct {
	entries map[string]cachedModule
}

type cachedModule struct {
	sum  [blake2b.Size256]byte
	prog *ast.Program
	ers  err.Errors
}

func NewModuleCache() *ModuleCache {
	return &ModuleCache{entries: map[string]cachedModule{}}
}

func (mc *ModuleCache) Parse(path string, data []byte) (*ast.Program, err.Errors) {
	sum := blake2b.Sum256(data)
	if entry, ok := mc.entries[path]; ok && entry.sum == sum {
		log.WithField("module", path).Debug("module parse cache hit")
		return entry.prog, entry.ers
	}
	prog, ers := parser.ParseSource(path, string(data))
	mc.entries[path] = cachedModule{sum: sum, prog: prog, ers: ers}
	return prog, ers
}

func (mc *ModuleCache) Len() int {
	return len(mc.entries)
}

// A fatalError unwinds the whole evaluation; Run turns it back into an ordinary error.
type fatalError struct {
	error
}

// The module is evaluated in an environment of its own, and then everything it declared at the top
// level is copied into the current one.
func evalUseStatement(stmt *ast.UseStatement, c *Context) object.Object {
	path := c.resolver.Resolve(stmt.Path)
	abs, e := filepath.Abs(path)
	if e == nil {
		path = abs
	}
	if c.resolver.loading.Contains(path) {
		panic(fatalError{errors.Errorf("module %s uses itself", stmt.Path)})
	}
	data, e := os.ReadFile(path)
	if e != nil {
		panic(fatalError{errors.Wrapf(e, "can't use %s", stmt.Path)})
	}
	prog, ers := c.modules.Parse(path, data)
	if len(ers) > 0 {
		c.reporter.ReportAll(ers)
		return object.NULL
	}
	log.WithField("module", path).Debug("using module")
	defer c.resolver.Enter(filepath.Dir(path))()
	c.resolver.loading.Add(path)
	defer c.resolver.loading.Remove(path)
	moduleEnv := object.NewEnclosedEnvironment(c.globals)
	EvalProgram(prog, c.withEnv(moduleEnv))
	c.env.AddEnv(moduleEnv)
	return object.NULL
}
