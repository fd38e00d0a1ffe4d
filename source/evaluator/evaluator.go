package evaluator

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/atomic-lang/atomic/source/ast"
	"github.com/atomic-lang/atomic/source/err"
	"github.com/atomic-lang/atomic/source/object"
	"github.com/atomic-lang/atomic/source/settings"
	"github.com/atomic-lang/atomic/source/token"
)

// The Context is everything the evaluator needs besides the node: the environment to evaluate in,
// where to send diagnostics, and what it needs to load modules. Only env changes as we descend.
type Context struct {
	env      *object.Environment
	globals  *object.Environment
	reporter *err.Reporter
	resolver *Resolver
	modules  *ModuleCache
	depth    int // How many function calls we're inside.
}

func NewContext(globals, env *object.Environment, reporter *err.Reporter, resolver *Resolver, modules *ModuleCache) *Context {
	return &Context{env: env, globals: globals, reporter: reporter, resolver: resolver, modules: modules}
}

// A session is a top-level environment enclosed by the natives, with relative module paths
// resolved against dir. The natives print to out.
func NewSession(out io.Writer, dir string) *Context {
	globals := NewGlobals(out)
	return NewContext(globals, object.NewEnclosedEnvironment(globals), err.NewReporter(), NewResolver(dir), NewModuleCache())
}

func (c *Context) Env() *object.Environment     { return c.env }
func (c *Context) Globals() *object.Environment { return c.globals }
func (c *Context) Reporter() *err.Reporter      { return c.reporter }
func (c *Context) Resolver() *Resolver          { return c.resolver }

func (c *Context) withEnv(env *object.Environment) *Context {
	newContext := *c
	newContext.env = env
	return &newContext
}

func (c *Context) Throw(errorId string, tok *token.Token, args ...any) object.Object {
	c.reporter.Throw(errorId, tok, args...)
	return object.NULL
}

// Reports the error if there is one and passes the value on.
func (c *Context) check(val object.Object, e *err.Error) object.Object {
	if e != nil {
		c.reporter.Report(e)
	}
	return val
}

// Statements either let execution carry on to the next one or, in the case of 'return', stop it.
// This is kept out of the values so that a return can't end up stored in a variable.
type ControlFlow int

const (
	NORMAL ControlFlow = iota
	RETURN
)

// Eval never fails: anything that goes wrong is reported and evaluates to null.
func Eval(node ast.Node, c *Context) object.Object {

	switch node := node.(type) {

	case *ast.Program:
		return EvalProgram(node, c)

	case ast.Statement:
		result, _ := Exec(node, c)
		return result

	case *ast.NumberLiteral:
		return &object.Number{Value: node.Value}

	case *ast.StringLiteral:
		return &object.String{Value: node.Value}

	case *ast.Identifier:
		return c.check(c.env.FindVar(node.Value, &node.Token))

	case *ast.ObjectLiteral:
		return evalObjectLiteral(node, c)

	case *ast.BinaryExpr:
		left := Eval(node.Left, c)
		right := Eval(node.Right, c)
		return evalBinaryExpression(node.Operator, left, right, &node.Token, c)

	case *ast.AssignExpr:
		return evalAssignment(node, c)

	case *ast.MemberExpr:
		return evalMemberExpression(node, c)

	case *ast.CallExpr:
		return evalCallExpression(node, c)
	}
	return object.NULL
}

// The value of a program is that of its last statement, unless a top-level 'return' ends it
// early.
func EvalProgram(prog *ast.Program, c *Context) object.Object {
	result, _ := ExecStatements(prog.Statements, c)
	return result
}

func ExecStatements(statements []ast.Statement, c *Context) (object.Object, ControlFlow) {
	var result object.Object = object.NULL
	for _, stmt := range statements {
		val, flow := Exec(stmt, c)
		if flow == RETURN {
			return val, RETURN
		}
		result = val
	}
	return result, NORMAL
}

func Exec(stmt ast.Statement, c *Context) (object.Object, ControlFlow) {

	switch stmt := stmt.(type) {

	case *ast.VarDeclaration:
		val := Eval(stmt.Value, c)
		return c.env.DeclareVar(stmt.Name, val, stmt.Locked), NORMAL

	case *ast.FunctionDeclaration:
		fn := &object.Func{Name: stmt.Name, Params: stmt.Params, Body: stmt.Body, Env: c.env}
		return c.env.DeclareVar(stmt.Name, fn, true), NORMAL

	case *ast.ReturnStatement:
		if stmt.Value == nil {
			return object.NULL, RETURN
		}
		return Eval(stmt.Value, c), RETURN

	case *ast.UseStatement:
		return evalUseStatement(stmt, c), NORMAL

	case *ast.ExpressionStatement:
		return Eval(stmt.Expression, c), NORMAL
	}
	return object.NULL, NORMAL
}

// Objects are snapshots: each value is evaluated now, and a shorthand property copies the current
// value of the variable.
func evalObjectLiteral(node *ast.ObjectLiteral, c *Context) object.Object {
	obj := object.NewObj()
	for _, prop := range node.Properties {
		var val object.Object
		if prop.Value == nil {
			val = c.check(c.env.FindVar(prop.Key, &prop.Token))
		} else {
			val = Eval(prop.Value, c)
		}
		obj.Set(prop.Key, val)
	}
	return obj
}

func evalBinaryExpression(operator string, left, right object.Object, tok *token.Token, c *Context) object.Object {
	switch operator {
	case "+":
		return evalPlus(left, right, tok, c)
	case "-":
		return evalMinus(left, right, tok, c)
	case "*":
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return c.Throw("AT3003", tok, operator, object.TypeOf(left), object.TypeOf(right))
		}
		return &object.Number{Value: l * r}
	case "/":
		l, r, ok := bothNumbers(left, right)
		if !ok {
			return c.Throw("AT3003", tok, operator, object.TypeOf(left), object.TypeOf(right))
		}
		if r == 0 {
			return &object.Number{Value: 0}
		}
		// The right-hand side is divided by the left.
		return &object.Number{Value: r / l}
	}
	return c.Throw("AT3006", tok, operator)
}

// A string on either side makes this concatenation.
func evalPlus(left, right object.Object, tok *token.Token, c *Context) object.Object {
	_, lString := left.(*object.String)
	_, rString := right.(*object.String)
	if lString || rString {
		return &object.String{Value: object.Stringify(left) + object.Stringify(right)}
	}
	if l, r, ok := bothNumbers(left, right); ok {
		return &object.Number{Value: l + r}
	}
	return c.Throw("AT3003", tok, "+", object.TypeOf(left), object.TypeOf(right))
}

// Subtracting from a string removes the first occurrence of the right-hand side.
func evalMinus(left, right object.Object, tok *token.Token, c *Context) object.Object {
	if l, r, ok := bothNumbers(left, right); ok {
		return &object.Number{Value: l - r}
	}
	if s, ok := left.(*object.String); ok {
		return &object.String{Value: strings.Replace(s.Value, object.Stringify(right), "", 1)}
	}
	return c.Throw("AT3003", tok, "-", object.TypeOf(left), object.TypeOf(right))
}

func bothNumbers(left, right object.Object) (float64, float64, bool) {
	l, lOk := left.(*object.Number)
	r, rOk := right.(*object.Number)
	if !(lOk && rOk) {
		return 0, 0, false
	}
	return l.Value, r.Value, true
}

func evalAssignment(node *ast.AssignExpr, c *Context) object.Object {
	switch target := node.Target.(type) {
	case *ast.Identifier:
		val := Eval(node.Value, c)
		return c.check(c.env.SetVar(target.Value, val, &target.Token))
	case *ast.MemberExpr:
		receiver := Eval(target.Object, c)
		obj, ok := receiver.(*object.Obj)
		if !ok {
			return c.Throw("AT3007", &target.Token, object.TypeOf(receiver))
		}
		if target.Indexed {
			i, ok := c.index(target, obj)
			if !ok {
				return object.NULL
			}
			return c.check(c.env.SetObjIndex(obj, i, Eval(node.Value, c), &target.Token))
		}
		key, ok := target.Property.(*ast.Identifier)
		if !ok {
			return c.Throw("AT3009", &target.Token)
		}
		return c.check(c.env.SetObjProperty(obj, key.Value, Eval(node.Value, c), &target.Token))
	}
	description := "nothing"
	if node.Target != nil {
		description = node.Target.String()
	}
	return c.Throw("AT3004", &node.Token, description)
}

func evalMemberExpression(node *ast.MemberExpr, c *Context) object.Object {
	receiver := Eval(node.Object, c)
	obj, ok := receiver.(*object.Obj)
	if !ok {
		return c.Throw("AT3007", &node.Token, object.TypeOf(receiver))
	}
	if node.Indexed {
		i, ok := c.index(node, obj)
		if !ok {
			return object.NULL
		}
		return c.check(c.env.GetObjIndex(obj, i, &node.Token))
	}
	key, ok := node.Property.(*ast.Identifier)
	if !ok {
		return c.Throw("AT3009", &node.Token)
	}
	return c.check(c.env.GetObjProperty(obj, key.Value, &node.Token))
}

// An index is checked by what was written, not what it evaluates to: it must be a literal whole
// number less than the number of properties.
func (c *Context) index(node *ast.MemberExpr, obj *object.Obj) (int, bool) {
	lit, ok := node.Property.(*ast.NumberLiteral)
	if !ok {
		c.Throw("AT3008", &node.Token, "the index must be a literal number")
		return 0, false
	}
	if lit.Value < 0 || lit.Value != math.Trunc(lit.Value) {
		c.Throw("AT3008", &lit.Token, "the index must be a whole number that isn't negative")
		return 0, false
	}
	if lit.Value >= float64(obj.Len()) {
		c.Throw("AT3008", &lit.Token, "index "+lit.String()+" is out of range for an object with "+
			strconv.Itoa(obj.Len())+" properties")
		return 0, false
	}
	return int(lit.Value), true
}

func evalCallExpression(node *ast.CallExpr, c *Context) object.Object {
	callee := Eval(node.Callee, c)
	args := make([]object.Object, 0, len(node.Args))
	for _, arg := range node.Args {
		args = append(args, Eval(arg, c))
	}
	return applyFunction(callee, args, &node.Token, c)
}

func applyFunction(callee object.Object, args []object.Object, tok *token.Token, c *Context) object.Object {
	switch fn := callee.(type) {
	case *object.Func:
		if len(args) != len(fn.Params) {
			return c.Throw("AT3011", tok, len(fn.Params), len(args))
		}
		if c.depth >= settings.MAX_CALL_DEPTH {
			panic(fatalError{errors.Errorf("line %d: call stack overflow, more than %d calls deep in %s",
				tok.Line, settings.MAX_CALL_DEPTH, fn.Name)})
		}
		env := object.NewEnclosedEnvironment(fn.Env)
		for i, param := range fn.Params {
			env.DeclareVar(param, args[i], false)
		}
		inner := c.withEnv(env)
		inner.depth = c.depth + 1
		result, flow := ExecStatements(fn.Body, inner)
		if flow == RETURN {
			return result
		}
		return object.NULL
	case *object.Builtin:
		result := fn.Fn(args, c.env)
		if result == nil {
			return object.NULL
		}
		return result
	}
	return c.Throw("AT3010", tok, object.TypeOf(callee))
}
