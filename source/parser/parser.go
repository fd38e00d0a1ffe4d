package parser

import (
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/atomic-lang/atomic/source/ast"
	"github.com/atomic-lang/atomic/source/err"
	"github.com/atomic-lang/atomic/source/lexer"
	"github.com/atomic-lang/atomic/source/settings"
	"github.com/atomic-lang/atomic/source/token"
)

// Each parsing function is entered with curToken on the first token of the thing it parses, and
// leaves curToken on its last token. A function that fails returns nil, having thrown an error; the
// statement loop then resynchronizes.
type Parser struct {
	Errors        err.Errors
	TokenizedCode *token.TokenizedCodeChunk
	curToken      token.Token
	peekToken     token.Token
	pos           int // How many tokens we've moved past, so we can tell if recovery has made progress.
}

func New(tokens []token.Token) *Parser {
	p := &Parser{
		Errors:        []*err.Error{},
		TokenizedCode: token.NewCodeChunk(tokens),
	}
	p.SafeNextToken()
	p.SafeNextToken()
	p.pos = 0
	return p
}

// Parse is the entry point for the rest of the pipeline.
func Parse(tokens []token.Token) (*ast.Program, err.Errors) {
	p := New(tokens)
	return p.ParseProgram(), p.Errors
}

// ParseSource lexes and parses in one step, returning the errors of both.
func ParseSource(source, input string) (*ast.Program, err.Errors) {
	tokens, ers := lexer.Tokenize(source, input)
	prog, parseErs := Parse(tokens)
	return prog, append(ers, parseErs...)
}

func (p *Parser) NextToken() {
	p.SafeNextToken()
	p.pos++
}

func (p *Parser) SafeNextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.TokenizedCode.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.NextToken()
		return true
	}
	return false
}

func (p *Parser) ParseProgram() *ast.Program {
	return &ast.Program{Statements: p.parseStatementsUntil(token.EOF)}
}

// Parses statements until curToken is of the given type or we run out of input.
func (p *Parser) parseStatementsUntil(end token.TokenType) []ast.Statement {
	statements := []ast.Statement{}
	for !p.curTokenIs(end) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.NextToken()
			continue
		}
		start := p.pos
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize(start)
			continue
		}
		if settings.SHOW_PARSER {
			log.WithField("source", stmt.GetToken().Source).Debugf("parser: %v", stmt)
		}
		statements = append(statements, stmt)
		p.NextToken()
	}
	return statements
}

// After an error we skip forward to something a statement can begin with. We always make
// progress, so that an error on a headword can't loop forever.
func (p *Parser) synchronize(start int) {
	for !p.curTokenIs(token.EOF) {
		if p.pos > start && (token.TokenTypeIsHeadword(p.curToken.Type) || p.curTokenIs(token.RBRACE)) {
			return
		}
		if p.curTokenIs(token.SEMICOLON) {
			p.NextToken()
			return
		}
		p.NextToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR, token.CONST:
		return p.parseVarDeclaration()
	case token.FUNC:
		return p.parseFunctionDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.USE:
		return p.parseUseStatement()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseVarDeclaration() ast.Statement {
	stmt := &ast.VarDeclaration{Token: p.curToken, Locked: p.curTokenIs(token.CONST)}
	if !p.expectPeek(token.IDENT) {
		p.Throw("AT2002", &p.peekToken, "identifier")
		return nil
	}
	stmt.Name = p.curToken.Literal
	if !p.expectPeek(token.ASSIGN) {
		p.Throw("AT2002", &p.peekToken, "=")
		return nil
	}
	p.NextToken()
	stmt.Value = p.parseExpression()
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	stmt := &ast.FunctionDeclaration{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		p.Throw("AT2002", &p.peekToken, "identifier")
		return nil
	}
	stmt.Name = p.curToken.Literal
	if !p.expectPeek(token.LPAREN) {
		p.Throw("AT2002", &p.peekToken, "(")
		return nil
	}
	params, ok := p.parseParams()
	if !ok {
		return nil
	}
	stmt.Params = params
	if !p.expectPeek(token.LBRACE) {
		p.Throw("AT2002", &p.peekToken, "{")
		return nil
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil
	}
	stmt.Body = body
	return stmt
}

// Entered on the '(' and left on the ')'.
func (p *Parser) parseParams() ([]string, bool) {
	params := []string{}
	if p.expectPeek(token.RPAREN) {
		return params, true
	}
	for {
		if !p.expectPeek(token.IDENT) {
			p.Throw("AT2004", &p.peekToken)
			return nil, false
		}
		params = append(params, p.curToken.Literal)
		if p.expectPeek(token.COMMA) {
			continue
		}
		if p.expectPeek(token.RPAREN) {
			return params, true
		}
		p.Throw("AT2004", &p.peekToken)
		return nil, false
	}
}

// Entered on the '{' and left on the '}'. Errors inside the block are recovered from there, so the
// block as a whole only fails if it isn't closed.
func (p *Parser) parseBlock() ([]ast.Statement, bool) {
	p.NextToken()
	body := p.parseStatementsUntil(token.RBRACE)
	if !p.curTokenIs(token.RBRACE) {
		p.Throw("AT2002", &p.curToken, "}")
		return nil, false
	}
	return body, true
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) ||
		token.TokenTypeIsHeadword(p.peekToken.Type) {
		return stmt
	}
	p.NextToken()
	stmt.Value = p.parseExpression()
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseUseStatement() ast.Statement {
	stmt := &ast.UseStatement{Token: p.curToken}
	if !p.expectPeek(token.STRING) {
		p.Throw("AT2005", &p.peekToken)
		return nil
	}
	stmt.Path = p.curToken.Literal
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression()
	if stmt.Expression == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

// Assignment is right-associative: a = b = c is a = (b = c). Only names and members can be
// assigned to; anything else is reported here, though the evaluator checks again.
func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseBinary(LOWEST)
	if left == nil {
		return nil
	}
	if !p.peekTokenIs(token.ASSIGN) {
		return left
	}
	p.NextToken()
	expr := &ast.AssignExpr{Token: p.curToken, Target: left}
	p.NextToken()
	expr.Value = p.parseAssignment()
	if expr.Value == nil {
		return nil
	}
	if !IsAssignable(left) {
		p.Throw("AT3004", &expr.Token, left.String())
	}
	return expr
}

func IsAssignable(node ast.Expression) bool {
	switch node.(type) {
	case *ast.Identifier, *ast.MemberExpr:
		return true
	}
	return false
}

func (p *Parser) parseBinary(precedence int) ast.Expression {
	left := p.parseCallMember()
	for left != nil && precedence < p.peekPrecedence() {
		p.NextToken()
		expr := &ast.BinaryExpr{Token: p.curToken, Left: left, Operator: p.curToken.Literal}
		opPrecedence := precedences[p.curToken.Type]
		p.NextToken()
		expr.Right = p.parseBinary(opPrecedence)
		if expr.Right == nil {
			return nil
		}
		left = expr
	}
	return left
}

// Calls and member access chain onto a primary expression and onto each other, so that a.b(c)[0].d
// is read left to right.
func (p *Parser) parseCallMember() ast.Expression {
	expr := p.parsePrimary()
	for expr != nil {
		switch p.peekToken.Type {
		case token.DOT:
			p.NextToken()
			member := &ast.MemberExpr{Token: p.curToken, Object: expr}
			if !p.expectPeek(token.IDENT) {
				p.Throw("AT2002", &p.peekToken, "property name")
				return nil
			}
			member.Property = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
			expr = member
		case token.LBRACK:
			p.NextToken()
			member := &ast.MemberExpr{Token: p.curToken, Object: expr, Indexed: true}
			p.NextToken()
			member.Property = p.parseExpression()
			if member.Property == nil {
				return nil
			}
			if !p.expectPeek(token.RBRACK) {
				p.Throw("AT2002", &p.peekToken, "]")
				return nil
			}
			expr = member
		case token.LPAREN:
			p.NextToken()
			call := &ast.CallExpr{Token: p.curToken, Callee: expr}
			args, ok := p.parseArgs()
			if !ok {
				return nil
			}
			call.Args = args
			expr = call
		default:
			return expr
		}
	}
	return nil
}

// Entered on the '(' and left on the ')'.
func (p *Parser) parseArgs() ([]ast.Expression, bool) {
	args := []ast.Expression{}
	if p.expectPeek(token.RPAREN) {
		return args, true
	}
	for {
		p.NextToken()
		arg := p.parseExpression()
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
		if p.expectPeek(token.COMMA) {
			continue
		}
		if p.expectPeek(token.RPAREN) {
			return args, true
		}
		p.Throw("AT2002", &p.peekToken, ")")
		return nil, false
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	case token.NUMBER:
		// The lexer only lets through digits with at most one point, so this can't fail.
		f, _ := strconv.ParseFloat(p.curToken.Literal, 64)
		return &ast.NumberLiteral{Token: p.curToken, Value: f}
	case token.STRING:
		return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
	case token.LPAREN:
		p.NextToken()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			p.Throw("AT2002", &p.peekToken, ")")
			return nil
		}
		return expr
	case token.LBRACE:
		return p.parseObjectLiteral()
	}
	p.Throw("AT2001", &p.curToken)
	return nil
}

// Entered on the '{' and left on the '}'. A trailing comma is allowed.
func (p *Parser) parseObjectLiteral() ast.Expression {
	obj := &ast.ObjectLiteral{Token: p.curToken, Properties: []ast.Property{}}
	for !p.peekTokenIs(token.RBRACE) {
		if !p.expectPeek(token.IDENT) {
			p.Throw("AT2003", &p.peekToken)
			return nil
		}
		prop := ast.Property{Token: p.curToken, Key: p.curToken.Literal}
		if p.expectPeek(token.COLON) {
			p.NextToken()
			prop.Value = p.parseExpression()
			if prop.Value == nil {
				return nil
			}
		}
		obj.Properties = append(obj.Properties, prop)
		if p.expectPeek(token.COMMA) {
			continue
		}
		if !p.peekTokenIs(token.RBRACE) {
			p.Throw("AT2003", &p.peekToken)
			return nil
		}
	}
	p.NextToken()
	return obj
}

func (p *Parser) Throw(errorID string, tok *token.Token, args ...any) {
	p.Errors = err.Throw(errorID, p.Errors, tok, args...)
}
