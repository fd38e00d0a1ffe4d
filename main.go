//
// Atomic version 0.3.0
//
// A small dynamically-typed scripting language: a lexer, a recursive-descent parser and a
// tree-walking evaluator, with closures, ordered objects and file inclusion by 'use'.
//

package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/atomic-lang/atomic/source/repl"
	"github.com/atomic-lang/atomic/source/settings"
	"github.com/atomic-lang/atomic/source/text"
)

func main() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	cfg, e := settings.LoadConfig(settings.ConfigPath())
	if e != nil {
		log.WithError(e).Warn("using the default configuration")
	}
	cfg.Apply()
	text.SetColor(cfg.Color && term.IsTerminal(int(os.Stdout.Fd())))

	if len(os.Args) <= 1 {
		repl.New(cfg, os.Stdout).Start(os.Stdin)
		return
	}
	// Anything other than a verb we know is ignored.
	switch os.Args[1] {
	case "run?":
		os.Exit(traceRun(os.Args[2:], os.Stdout))
	}
}
