package token

import (
	"fmt"
)

// The lexer hands the parser its output in one of these.
type TokenizedCodeChunk struct {
	position int
	code     []Token
}

func NewCodeChunk(code []Token) *TokenizedCodeChunk {
	tcc := &TokenizedCodeChunk{
		position: -1,
		code:     code,
	}
	return tcc
}

// Past the end we keep supplying EOF tokens, positioned at the last real token so that
// errors at the end of input still point somewhere sensible.
func (tcc *TokenizedCodeChunk) NextToken() Token {
	if tcc.position+1 < len(tcc.code) {
		tcc.position++
		return tcc.code[tcc.position]
	}
	if len(tcc.code) == 0 {
		return Token{Type: EOF, Literal: "EOF", Line: 1}
	}
	last := tcc.code[len(tcc.code)-1]
	return Token{Type: EOF, Literal: "EOF",
		Line: last.Line, ChStart: last.ChEnd, ChEnd: last.ChEnd, Source: last.Source}
}

func (tcc *TokenizedCodeChunk) String() string {
	output := ""
	for _, tok := range tcc.code {
		output = output + fmt.Sprintf("%v\n", tok)
	}
	return output
}
