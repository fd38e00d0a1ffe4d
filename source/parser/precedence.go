package parser

import (
	"github.com/atomic-lang/atomic/source/token"
)

// Data and functions for sorting out the operator precedences. Assignment is handled by its own
// rule since it is right-associative, and calls and member access bind tightest of all.

const (
	_ int = iota
	LOWEST
	SUM     // + or -
	PRODUCT // * or /
)

var precedences = map[token.TokenType]int{
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}
