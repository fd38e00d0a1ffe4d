package lexer

import (
	"testing"

	"github.com/atomic-lang/atomic/source/token"
)

func TestSymbolsAndKeywords(t *testing.T) {
	input := `var x = 5; const y = x * 2.5
func add(a, b) { return a + b }
use "lib.atom"
obj.key[0] / (1 - 2) : ,`
	items := []testItem{
		{token.VAR, "var", 1},
		{token.IDENT, "x", 1},
		{token.ASSIGN, "=", 1},
		{token.NUMBER, "5", 1},
		{token.SEMICOLON, ";", 1},
		{token.CONST, "const", 1},
		{token.IDENT, "y", 1},
		{token.ASSIGN, "=", 1},
		{token.IDENT, "x", 1},
		{token.ASTERISK, "*", 1},
		{token.NUMBER, "2.5", 1}, // 10
		{token.FUNC, "func", 2},
		{token.IDENT, "add", 2},
		{token.LPAREN, "(", 2},
		{token.IDENT, "a", 2},
		{token.COMMA, ",", 2},
		{token.IDENT, "b", 2},
		{token.RPAREN, ")", 2},
		{token.LBRACE, "{", 2},
		{token.RETURN, "return", 2},
		{token.IDENT, "a", 2}, // 20
		{token.PLUS, "+", 2},
		{token.IDENT, "b", 2},
		{token.RBRACE, "}", 2},
		{token.USE, "use", 3},
		{token.STRING, "lib.atom", 3},
		{token.IDENT, "obj", 4},
		{token.DOT, ".", 4},
		{token.IDENT, "key", 4},
		{token.LBRACK, "[", 4},
		{token.NUMBER, "0", 4}, // 30
		{token.RBRACK, "]", 4},
		{token.SLASH, "/", 4},
		{token.LPAREN, "(", 4},
		{token.NUMBER, "1", 4},
		{token.MINUS, "-", 4},
		{token.NUMBER, "2", 4},
		{token.RPAREN, ")", 4},
		{token.COLON, ":", 4},
		{token.COMMA, ",", 4},
	}
	testLexingString(t, input, items, 0)
}

func TestComments(t *testing.T) {
	input := `a // the rest of the line
/* a block
comment */ b`
	items := []testItem{
		{token.IDENT, "a", 1},
		{token.IDENT, "b", 3},
	}
	testLexingString(t, input, items, 0)
}

func TestNumberFollowedByDot(t *testing.T) {
	items := []testItem{
		{token.NUMBER, "5", 1},
		{token.DOT, ".", 1},
		{token.IDENT, "x", 1},
	}
	testLexingString(t, "5.x", items, 0)
}

func TestStrings(t *testing.T) {
	items := []testItem{
		{token.STRING, "say \"hi\"\n", 1},
		{token.STRING, "it's", 1},
		{token.STRING, "", 1},
	}
	testLexingString(t, `"say \"hi\"\n" 'it\'s' ""`, items, 0)
}

func TestIdentifiers(t *testing.T) {
	items := []testItem{
		{token.IDENT, "_private", 1},
		{token.IDENT, "x2", 1},
		{token.IDENT, "variable", 1},
		{token.IDENT, "functional", 1},
	}
	testLexingString(t, "_private x2 variable functional", items, 0)
}

func TestErrors(t *testing.T) {
	toks, ers := Tokenize("test", "a # b")
	if len(toks) != 2 || len(ers) != 1 || ers[0].ErrorId != "AT1001" {
		t.Fatalf("illegal character: got %d tokens and errors %v", len(toks), ers)
	}
	toks, ers = Tokenize("test", `x = "unterminated`)
	if len(toks) != 3 || len(ers) != 1 || ers[0].ErrorId != "AT1002" {
		t.Fatalf("unterminated string: got %d tokens and errors %v", len(toks), ers)
	}
	if toks[2].Literal != "unterminated" {
		t.Fatalf("unterminated string: got literal %q", toks[2].Literal)
	}
	_, ers = Tokenize("test", "a /* never closed")
	if len(ers) != 1 || ers[0].ErrorId != "AT1003" {
		t.Fatalf("unterminated comment: got errors %v", ers)
	}
}

func TestPositions(t *testing.T) {
	toks, _ := Tokenize("test", "foo\n  bar")
	if toks[0].ChStart != 0 || toks[0].ChEnd != 3 {
		t.Fatalf("foo: got %d-%d", toks[0].ChStart, toks[0].ChEnd)
	}
	if toks[1].Line != 2 || toks[1].ChStart != 2 || toks[1].ChEnd != 5 {
		t.Fatalf("bar: got line %d, %d-%d", toks[1].Line, toks[1].ChStart, toks[1].ChEnd)
	}
	if toks[1].Source != "test" {
		t.Fatalf("bar: got source %q", toks[1].Source)
	}
}

func TestEmptyInput(t *testing.T) {
	toks, ers := Tokenize("test", "  \n\t ")
	if len(toks) != 0 || len(ers) != 0 {
		t.Fatalf("whitespace only: got %v and %v", toks, ers)
	}
}

type testItem struct {
	expectedType    token.TokenType
	expectedLiteral string
	expectedLine    int
}

func testLexingString(t *testing.T, input string, items []testItem, wantErrors int) {
	toks, ers := Tokenize("test", input)
	if len(ers) != wantErrors {
		t.Fatalf("wanted %d errors, got %v", wantErrors, ers)
	}
	if len(toks) != len(items) {
		t.Fatalf("wanted %d tokens, got %d: %v", len(items), len(toks), toks)
	}
	for i, tt := range items {
		tok := toks[i]
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q with literal %q, got=%q with literal %q",
				i, tt.expectedType, tt.expectedLiteral, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
		if tok.Line != tt.expectedLine {
			t.Fatalf("tests[%d] - line wrong. expected=%d, got=%d",
				i, tt.expectedLine, tok.Line)
		}
	}
}
