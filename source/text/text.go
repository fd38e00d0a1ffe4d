package text

// This consists of a bunch of text utilities to help in generating pretty and meaningful
// error messages, traces, and REPL output. Colour lives here and nowhere else: the runtime
// values know nothing about how they are displayed.

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/atomic-lang/atomic/source/token"
)

const (
	VERSION        = "0.3.0"
	BULLET         = "  ▪ "
	BULLET_SPACING = "    " // I.e. whitespace the same width as BULLET.
	PROMPT         = "=> "
	REPL_SOURCE    = "REPL input"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	brand  = color.New(color.FgHiRed, color.Bold).SprintFunc()
)

var (
	ERROR = Red("error") + ": "
	OK    = Green("ok")
)

// Turns colour on or off globally, e.g. because the config file says so or because we're not
// writing to a terminal.
func SetColor(on bool) {
	color.NoColor = !on
	ERROR = Red("error") + ": "
	OK = Green("ok")
}

func Red(s string) string    { return red(s) }
func Green(s string) string  { return green(s) }
func Yellow(s string) string { return yellow(s) }
func Cyan(s string) string   { return cyan(s) }
func Gray(s string) string   { return gray(s) }

func Emph(s string) string {
	return "'" + s + "'"
}

func Code(errorId string) string {
	return Gray("(" + errorId + ")")
}

func Logo() string {
	return "\n" + brand("Atomic") + " version " + VERSION + "\n" +
		Gray("Type .exit to quit, .errors to explain the last errors.") + "\n\n"
}

func Prompt(prompt string) string {
	return brand(prompt)
}

func Banner(s string) string {
	return red("******" + s + "******")
}

func DescribePos(tok *token.Token) string {
	if tok == nil {
		return ""
	}
	prettySource := tok.Source
	if prettySource == "" {
		return ""
	}
	if prettySource != REPL_SOURCE {
		prettySource = Emph(prettySource)
	}
	if tok.Line > 0 {
		result := strconv.Itoa(tok.Line) + ":" + strconv.Itoa(tok.ChStart)
		if tok.ChStart != tok.ChEnd && tok.ChEnd > tok.ChStart+1 {
			result = result + "-" + strconv.Itoa(tok.ChEnd)
		}
		return " at line " + Yellow(result) + " of " + prettySource
	}
	return " in " + prettySource
}

// Chooses how a value is shown in the REPL, by the name of its type.
func ColorValue(typeName, s string) string {
	switch typeName {
	case "number":
		return yellow(s)
	case "string":
		return green(s)
	case "object":
		return cyan(s)
	case "func", "native-func":
		return green(s)
	case "null":
		return gray(s)
	}
	return s
}

// Anything enclosed in '   ' is code and is highlighted, i.e. 'foo' serves the same function as
// writing foo in a monotype font would in a textbook or manual. The ' doesn't trigger the
// highlighting unless it follows a line beginning or space, because it might be an apostrophe.
func HighlightLine(plainLine string, highlighter rune) (string, rune) {
	var out strings.Builder
	var code strings.Builder
	prevCh := ' '
	for _, ch := range plainLine {
		if highlighter == ' ' && (prevCh == ' ' || prevCh == '\n' || prevCh == '(') && ch == '\'' {
			highlighter = ch
			code.Reset()
			code.WriteRune(ch)
			prevCh = ch
			continue
		}
		if highlighter != ' ' {
			code.WriteRune(ch)
			if ch == highlighter {
				out.WriteString(Cyan(code.String()))
				highlighter = ' '
			}
			prevCh = ch
			continue
		}
		out.WriteRune(ch)
		prevCh = ch
	}
	if highlighter != ' ' {
		out.WriteString(Cyan(code.String()))
	}
	return out.String(), highlighter
}

// Word-wraps the string between the margins, highlighting code.
func Pretty(s string, lMargin, rMargin int) string {
	width := rMargin - lMargin
	result := ""
	highlighter := ' '
	for _, paragraph := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			if line != "" && len(line)+1+len(word) > width {
				var str string
				str, highlighter = HighlightLine(line, highlighter)
				result = result + strings.Repeat(" ", lMargin) + str + "\n"
				line = ""
			}
			if line != "" {
				line = line + " "
			}
			line = line + word
		}
		var str string
		str, highlighter = HighlightLine(line, highlighter)
		result = result + strings.Repeat(" ", lMargin) + str + "\n"
	}
	return result
}
