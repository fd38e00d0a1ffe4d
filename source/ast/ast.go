package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/atomic-lang/atomic/source/token"
)

// The base Node interface
type Node interface {
	GetToken() *token.Token
	String() string
}

// Expressions produce values. The marker methods stop a statement from being put where an
// expression belongs and vice versa.
type Expression interface {
	Node
	expressionNode()
}

type Statement interface {
	Node
	statementNode()
}

// The root of every parse.
type Program struct {
	Statements []Statement
}

func (p *Program) GetToken() *token.Token {
	if len(p.Statements) == 0 {
		return &token.Token{Type: token.EOF}
	}
	return p.Statements[0].GetToken()
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Expressions in alphabetical order.

type AssignExpr struct {
	Token  token.Token // The '=' token.
	Target Expression
	Value  Expression
}

func (ae *AssignExpr) expressionNode()        {}
func (ae *AssignExpr) GetToken() *token.Token { return &ae.Token }
func (ae *AssignExpr) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(ae.Target.String())
	out.WriteString(" = ")
	out.WriteString(ae.Value.String())
	out.WriteString(")")

	return out.String()
}

type BinaryExpr struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpr) expressionNode()        {}
func (be *BinaryExpr) GetToken() *token.Token { return &be.Token }
func (be *BinaryExpr) String() string {
	var out bytes.Buffer

	out.WriteString("(")
	out.WriteString(be.Left.String())
	out.WriteString(" " + be.Operator + " ")
	out.WriteString(be.Right.String())
	out.WriteString(")")

	return out.String()
}

type CallExpr struct {
	Token  token.Token // The '(' token.
	Callee Expression
	Args   []Expression
}

func (ce *CallExpr) expressionNode() {}
func (ce *CallExpr) GetToken() *token.Token { return &ce.Token }
func (ce *CallExpr) String() string {
	args := []string{}
	for _, a := range ce.Args {
		args = append(args, a.String())
	}
	return ce.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()        {}
func (i *Identifier) GetToken() *token.Token { return &i.Token }
func (i *Identifier) String() string         { return i.Value }

// Indexed is true for obj[N], in which case Property is whatever was between the brackets.
// Otherwise Property is an Identifier naming the key.
type MemberExpr struct {
	Token    token.Token // The '.' or '[' token.
	Object   Expression
	Property Expression
	Indexed  bool
}

func (me *MemberExpr) expressionNode()        {}
func (me *MemberExpr) GetToken() *token.Token { return &me.Token }
func (me *MemberExpr) String() string {
	if me.Indexed {
		return me.Object.String() + "[" + me.Property.String() + "]"
	}
	return me.Object.String() + "." + me.Property.String()
}

type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()        {}
func (nl *NumberLiteral) GetToken() *token.Token { return &nl.Token }
func (nl *NumberLiteral) String() string         { return nl.Token.Literal }

// A nil Value means the shorthand form { key }, which takes its value from the variable of the
// same name.
type Property struct {
	Token token.Token
	Key   string
	Value Expression
}

type ObjectLiteral struct {
	Token      token.Token
	Properties []Property
}

func (ol *ObjectLiteral) expressionNode() {}
func (ol *ObjectLiteral) GetToken() *token.Token { return &ol.Token }
func (ol *ObjectLiteral) String() string {
	props := []string{}
	for _, p := range ol.Properties {
		if p.Value == nil {
			props = append(props, p.Key)
			continue
		}
		props = append(props, p.Key+": "+p.Value.String())
	}
	return "{" + strings.Join(props, ", ") + "}"
}

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()        {}
func (sl *StringLiteral) GetToken() *token.Token { return &sl.Token }
func (sl *StringLiteral) String() string         { return strconv.Quote(sl.Value) }

// Statements in alphabetical order.

type ExpressionStatement struct {
	Token      token.Token // The first token of the expression.
	Expression Expression
}

func (es *ExpressionStatement) statementNode()         {}
func (es *ExpressionStatement) GetToken() *token.Token { return &es.Token }
func (es *ExpressionStatement) String() string         { return es.Expression.String() }

type FunctionDeclaration struct {
	Token  token.Token
	Name   string
	Params []string
	Body   []Statement
}

func (fd *FunctionDeclaration) statementNode() {}
func (fd *FunctionDeclaration) GetToken() *token.Token { return &fd.Token }
func (fd *FunctionDeclaration) String() string {
	var out bytes.Buffer

	out.WriteString("func " + fd.Name + "(" + strings.Join(fd.Params, ", ") + ") { ")
	for _, s := range fd.Body {
		out.WriteString(s.String())
		out.WriteString("; ")
	}
	out.WriteString("}")

	return out.String()
}

// Value is nil for a bare 'return'.
type ReturnStatement struct {
	Token token.Token
	Value Expression
}

func (rs *ReturnStatement) statementNode() {}
func (rs *ReturnStatement) GetToken() *token.Token { return &rs.Token }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return"
	}
	return "return " + rs.Value.String()
}

type UseStatement struct {
	Token token.Token
	Path  string
}

func (us *UseStatement) statementNode()         {}
func (us *UseStatement) GetToken() *token.Token { return &us.Token }
func (us *UseStatement) String() string         { return "use " + strconv.Quote(us.Path) }

// Covers both 'var' and 'const'; the latter is Locked.
type VarDeclaration struct {
	Token  token.Token
	Name   string
	Value  Expression
	Locked bool
}

func (vd *VarDeclaration) statementNode()         {}
func (vd *VarDeclaration) GetToken() *token.Token { return &vd.Token }
func (vd *VarDeclaration) String() string {
	keyword := "var"
	if vd.Locked {
		keyword = "const"
	}
	return keyword + " " + vd.Name + " = " + vd.Value.String()
}
