package token

import "strconv"

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // add, foobar, x, y, ...
	NUMBER = "number" // 1343456, 1.23
	STRING = "string" // "foo", 'bar'

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"

	COLON     = ":"
	DOT       = "."
	COMMA     = ","
	SEMICOLON = ";"

	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"
	LBRACK = "["
	RBRACK = "]"

	// Headwords
	VAR    = "var"
	CONST  = "const"
	FUNC   = "func"
	RETURN = "return"
	USE    = "use"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
}

func (t Token) String() string {
	return "{" + string(t.Type) + " " + strconv.Quote(t.Literal) + " " +
		strconv.Itoa(t.Line) + ":" + strconv.Itoa(t.ChStart) + "}"
}

var keywords = map[string]TokenType{
	"var":    VAR,
	"const":  CONST,
	"func":   FUNC,
	"return": RETURN,
	"use":    USE,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// The tokens which can begin a statement other than an expression statement. The parser
// resynchronizes on these after an error.
func TokenTypeIsHeadword(t TokenType) bool {
	return t == VAR || t == CONST || t == FUNC || t == RETURN || t == USE
}
