package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/lmorg/readline"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/atomic-lang/atomic/source/err"
	"github.com/atomic-lang/atomic/source/evaluator"
	"github.com/atomic-lang/atomic/source/history"
	"github.com/atomic-lang/atomic/source/lexer"
	"github.com/atomic-lang/atomic/source/object"
	"github.com/atomic-lang/atomic/source/parser"
	"github.com/atomic-lang/atomic/source/set"
	"github.com/atomic-lang/atomic/source/settings"
	"github.com/atomic-lang/atomic/source/text"
)

// A Repl is one interactive session: its bindings last as long as it does.
type Repl struct {
	ctx        *evaluator.Context
	cfg        *settings.Config
	out        io.Writer
	lastErrors err.Errors
}

func New(cfg *settings.Config, out io.Writer) *Repl {
	dir, e := os.Getwd()
	if e != nil {
		log.WithError(e).Warn("can't find working directory, module paths will be relative to the process")
	}
	return &Repl{ctx: evaluator.NewSession(out, dir), cfg: cfg, out: out}
}

func (r *Repl) Context() *evaluator.Context {
	return r.ctx
}

// Start reads lines until told to stop or the input runs out. On a terminal we use readline, with
// persistent history if the config asks for it; otherwise we just scan lines.
func (r *Repl) Start(in *os.File) {
	fmt.Fprint(r.out, text.Logo())
	if !term.IsTerminal(int(in.Fd())) {
		r.scan(in)
		return
	}
	rline := readline.NewInstance()
	rline.TabCompleter = r.complete
	if r.cfg.History.Driver != "" {
		store, e := history.Open(r.cfg.History.Driver, r.cfg.History.DSN, r.cfg.History.Limit)
		if e != nil {
			log.WithError(e).Warn("history unavailable")
		} else {
			defer store.Close()
			rline.History = store
		}
	}
	for {
		rline.SetPrompt(text.Prompt(r.cfg.Prompt))
		line, e := rline.Readline()
		if e == readline.CtrlC {
			continue
		}
		if e != nil {
			return
		}
		if r.Do(line) {
			return
		}
	}
}

func (r *Repl) scan(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if r.Do(scanner.Text()) {
			return
		}
	}
}

// Do handles one line of input, and says whether it was time to quit.
func (r *Repl) Do(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") && len(line) > 1 && lexer.IsLegalStart(rune(line[1])) {
		return r.meta(line)
	}
	reporter := r.ctx.Reporter()
	reporter.Reset()
	prog, ers := parser.ParseSource(text.REPL_SOURCE, line)
	if len(ers) > 0 {
		reporter.ReportAll(ers)
		r.showErrors()
		return false
	}
	result, e := evaluator.RunProgram(prog, r.ctx)
	r.showResult(result, e)
	return false
}

func (r *Repl) showResult(result object.Object, e error) {
	r.showErrors()
	if e != nil {
		fmt.Fprintln(r.out, text.ERROR+e.Error())
		return
	}
	fmt.Fprintln(r.out, text.ColorValue(object.TypeOf(result), result.Inspect()))
}

func (r *Repl) showErrors() {
	reporter := r.ctx.Reporter()
	if !reporter.ErrorsExist() {
		return
	}
	r.lastErrors = reporter.GetErrors()
	fmt.Fprint(r.out, reporter.GetList())
}

// Meta-commands begin with a '.', and their arguments are split like a shell's so that paths can
// be quoted.
func (r *Repl) meta(line string) bool {
	words, e := shlex.Split(line)
	if e != nil || len(words) == 0 {
		fmt.Fprintln(r.out, text.ERROR+"can't make sense of "+text.Emph(line))
		return false
	}
	switch words[0] {
	case ".exit":
		return true
	case ".load":
		if len(words) != 2 {
			fmt.Fprintln(r.out, text.ERROR+text.Emph(".load")+" takes the path of one file")
			return false
		}
		r.ctx.Reporter().Reset()
		result, e := evaluator.RunFile(words[1], r.ctx)
		r.showResult(result, e)
	case ".env":
		fmt.Fprint(r.out, r.ctx.Env().String())
	case ".errors":
		r.explain(words[1:])
	default:
		fmt.Fprintln(r.out, text.ERROR+"unknown command "+text.Emph(words[0]))
	}
	return false
}

// Explains the errors from the last input, or just the ones asked for by number.
func (r *Repl) explain(args []string) {
	if len(r.lastErrors) == 0 {
		fmt.Fprintln(r.out, text.OK+": there are no errors to explain")
		return
	}
	picked := []int{}
	for _, arg := range args {
		n, e := strconv.Atoi(arg)
		if e != nil {
			fmt.Fprintln(r.out, text.ERROR+text.Emph(arg)+" isn't the number of an error")
			return
		}
		picked = append(picked, n)
	}
	if len(picked) == 0 {
		for i := range r.lastErrors {
			picked = append(picked, i)
		}
	}
	for _, i := range picked {
		if i < 0 || i >= len(r.lastErrors) {
			fmt.Fprintln(r.out, text.ERROR+err.Explain(r.lastErrors, i))
			continue
		}
		fmt.Fprint(r.out, "["+strconv.Itoa(i)+"] "+text.Pretty(err.Explain(r.lastErrors, i), 4, 92))
	}
}

// Completes the name being typed from those in scope.
func (r *Repl) complete(line []rune, pos int, dtx readline.DelayedTabContext) (string, []string, map[string]string, readline.TabDisplayType) {
	start := pos
	for start > 0 && (lexer.IsLegalStart(line[start-1]) || lexer.IsDigit(line[start-1])) {
		start--
	}
	prefix := string(line[start:pos])
	suggestions := []string{}
	for _, name := range r.names() {
		if strings.HasPrefix(name, prefix) && name != prefix {
			suggestions = append(suggestions, name[len(prefix):])
		}
	}
	return prefix, suggestions, nil, readline.TabDisplayGrid
}

func (r *Repl) names() []string {
	names := set.Set[string]{}
	for env := r.ctx.Env(); env != nil; env = env.Ext {
		names.AddSlice(env.Names())
	}
	return names.ToSortedSlice()
}
