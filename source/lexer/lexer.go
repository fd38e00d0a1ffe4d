package lexer

import (
	"unicode"

	log "github.com/sirupsen/logrus"

	"github.com/atomic-lang/atomic/source/err"
	"github.com/atomic-lang/atomic/source/settings"
	"github.com/atomic-lang/atomic/source/token"
)

type lexer struct {
	runes  *RuneSupplier
	tstart int // the value of char at the start of a token
	lineNo int
	Ers    err.Errors
	source string
}

func NewLexer(source, input string) *lexer {
	l := &lexer{
		runes:  NewRuneSupplier([]rune(input)),
		Ers:    []*err.Error{},
		source: source,
		lineNo: 1,
	}
	return l
}

// Tokenize is a pure function of its input: it always runs to the end of the text, skipping
// whatever it can't make sense of, and returns the errors it found along the way.
func Tokenize(source, input string) ([]token.Token, err.Errors) {
	l := NewLexer(source, input)
	return l.Tokenize(), l.Ers
}

func (l *lexer) Tokenize() []token.Token {
	result := []token.Token{}
	for !l.runes.AtEnd() {
		result = append(result, l.getTokens()...)
	}
	return result
}

// Returns the next token, or nothing if what we consumed was whitespace, a comment or
// an illegal character.
func (l *lexer) getTokens() []token.Token {
	l.skipWhitespace()
	l.lineNo, l.tstart = l.runes.Position()
	switch l.runes.CurrentRune() {
	case 0:
		if l.runes.AtEnd() {
			return []token.Token{}
		}
	case '=':
		return []token.Token{l.NewToken(token.ASSIGN, "=")}
	case '+':
		return []token.Token{l.NewToken(token.PLUS, "+")}
	case '-':
		return []token.Token{l.NewToken(token.MINUS, "-")}
	case '*':
		return []token.Token{l.NewToken(token.ASTERISK, "*")}
	case '/':
		switch l.runes.PeekRune() {
		case '/':
			l.skipLineComment()
			return []token.Token{}
		case '*':
			l.skipBlockComment()
			return []token.Token{}
		}
		return []token.Token{l.NewToken(token.SLASH, "/")}
	case ':':
		return []token.Token{l.NewToken(token.COLON, ":")}
	case ';':
		return []token.Token{l.NewToken(token.SEMICOLON, ";")}
	case ',':
		return []token.Token{l.NewToken(token.COMMA, ",")}
	case '.':
		return []token.Token{l.NewToken(token.DOT, ".")}
	case '{':
		return []token.Token{l.NewToken(token.LBRACE, "{")}
	case '}':
		return []token.Token{l.NewToken(token.RBRACE, "}")}
	case '[':
		return []token.Token{l.NewToken(token.LBRACK, "[")}
	case ']':
		return []token.Token{l.NewToken(token.RBRACK, "]")}
	case '(':
		return []token.Token{l.NewToken(token.LPAREN, "(")}
	case ')':
		return []token.Token{l.NewToken(token.RPAREN, ")")}
	case '"', '\'':
		s, ok := l.runes.ReadFormattedString()
		tok := l.NewToken(token.STRING, s)
		if !ok {
			l.Throw("AT1002", &tok)
		}
		return []token.Token{tok}
	}

	if IsDigit(l.runes.CurrentRune()) {
		return []token.Token{l.NewToken(token.NUMBER, l.runes.ReadNumber())}
	}

	if IsLegalStart(l.runes.CurrentRune()) {
		lit := l.runes.ReadIdentifier()
		return []token.Token{l.NewToken(token.LookupIdent(lit), lit)}
	}

	// Or we have nothing recognizable, and skip over it.
	ch := l.runes.CurrentRune()
	tok := l.NewToken(token.ILLEGAL, string(ch))
	l.Throw("AT1001", &tok, ch)
	return []token.Token{}
}

func (l *lexer) skipWhitespace() {
	for IsWhitespace(l.runes.CurrentRune()) {
		l.runes.Next()
	}
}

func (l *lexer) skipLineComment() {
	for !(l.runes.CurrentRune() == '\n' || l.runes.AtEnd()) {
		l.runes.Next()
	}
}

func (l *lexer) skipBlockComment() {
	start := l.MakeToken(token.ILLEGAL, "/*")
	l.runes.Next()
	l.runes.Next()
	for !(l.runes.CurrentRune() == '*' && l.runes.PeekRune() == '/') {
		if l.runes.AtEnd() {
			l.Throw("AT1003", &start)
			return
		}
		l.runes.Next()
	}
	l.runes.Next()
	l.runes.Next()
}

// A number is a run of digits, optionally followed by a point and another run of digits. A point
// not followed by a digit is left alone, so that '5.x' lexes as a member access.
func (runes *RuneSupplier) ReadNumber() string {
	result := string(runes.CurrentRune())
	for IsDigit(runes.PeekRune()) {
		runes.Next()
		result = result + string(runes.CurrentRune())
	}
	if runes.PeekRune() == '.' && IsDigit(runes.PeekAhead(2)) {
		runes.Next()
		result = result + "."
		for IsDigit(runes.PeekRune()) {
			runes.Next()
			result = result + string(runes.CurrentRune())
		}
	}
	return result
}

// Reads a string delimited by whichever quote mark we're on. Returns false if we hit the end
// of the line or of the input first.
func (runes *RuneSupplier) ReadFormattedString() (string, bool) {
	quote := runes.CurrentRune()
	escape := false
	result := ""
	for {
		if runes.pos+1 >= len(runes.code) || runes.PeekRune() == '\n' || runes.PeekRune() == '\r' {
			return result, false
		}
		runes.Next()
		if runes.CurrentRune() == quote && !escape {
			return result, true
		}
		if runes.CurrentRune() == '\\' && !escape {
			escape = true
			continue
		}

		charToAdd := runes.CurrentRune()

		if escape {
			escape = false
			switch runes.CurrentRune() {
			case 'n':
				charToAdd = '\n'
			case 'r':
				charToAdd = '\r'
			case 't':
				charToAdd = '\t'
			case 'e':
				charToAdd = '\033'
			case '0':
				charToAdd = 0
			}
		}
		result = result + string(charToAdd)
	}
}

func (runes *RuneSupplier) ReadIdentifier() string {
	result := string(runes.CurrentRune()) // i.e. the character that suggested this was an identifier.
	for IsLegalStart(runes.PeekRune()) || IsDigit(runes.PeekRune()) {
		runes.Next()
		result = result + string(runes.CurrentRune())
	}
	return result
}

func IsLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func IsUnderscore(ch rune) bool {
	return ch == '_'
}

func IsDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func IsWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func IsLegalStart(ch rune) bool {
	return IsLetter(ch) || IsUnderscore(ch)
}

func (l *lexer) NewToken(tokenType token.TokenType, st string) token.Token {
	l.runes.Next()
	return l.MakeToken(tokenType, st)
}

func (l *lexer) MakeToken(tokenType token.TokenType, st string) token.Token {
	_, chNo := l.runes.Position()
	tok := token.Token{Type: tokenType, Literal: st, Source: l.source, Line: l.lineNo, ChStart: l.tstart, ChEnd: chNo}
	if settings.SHOW_LEXER && tokenType != token.ILLEGAL {
		log.WithField("source", l.source).Debugf("lexer: %v", tok)
	}
	return tok
}

func (l *lexer) Throw(errorID string, tok *token.Token, args ...any) {
	l.Ers = err.Throw(errorID, l.Ers, tok, args...)
}
