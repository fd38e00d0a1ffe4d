package object

import (
	"strconv"
	"strings"

	"src.elv.sh/pkg/persistent/vector"

	"github.com/atomic-lang/atomic/source/ast"
)

type ObjectType string

const (
	NUMBER_OBJ  = "number"
	STRING_OBJ  = "string"
	OBJECT_OBJ  = "object"
	FUNC_OBJ    = "func"
	BUILTIN_OBJ = "native-func"
	NULL_OBJ    = "null"
)

// The runtime values. They say what they are and how to write them down, and nothing about how
// they should be displayed: that's up to whoever is printing them.
type Object interface {
	Type() ObjectType
	Inspect() string
}

var NULL = &Null{}

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

// Natives get the arguments already evaluated, and the environment of the caller.
type BuiltinFunction func(args []Object, env *Environment) Object

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "native func " + b.Name }

// A function closes over the environment it was declared in. The body is shared with the AST and
// never mutated.
type Func struct {
	Name   string
	Params []string
	Body   []ast.Statement
	Env    *Environment
}

func (fn *Func) Type() ObjectType { return FUNC_OBJ }
func (fn *Func) Inspect() string {
	return "func " + fn.Name + "(" + strings.Join(fn.Params, ", ") + ")"
}

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return strconv.FormatFloat(n.Value, 'f', -1, 64) }

// An Obj is an ordered map: the keys are kept in the order in which they were first set, so that
// properties can be got at by position as well as by name.
type Obj struct {
	props map[string]Object
	keys  vector.Vector
}

func NewObj() *Obj {
	return &Obj{props: map[string]Object{}, keys: vector.Empty}
}

func (o *Obj) Type() ObjectType { return OBJECT_OBJ }
func (o *Obj) Inspect() string {
	var out strings.Builder
	out.WriteString("{")
	for i, k := range o.Keys() {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(k + ": " + o.props[k].Inspect())
	}
	out.WriteString("}")
	return out.String()
}

func (o *Obj) Len() int {
	return o.keys.Len()
}

func (o *Obj) Get(key string) (Object, bool) {
	val, ok := o.props[key]
	return val, ok
}

// A new key goes on the end; an existing one keeps its place.
func (o *Obj) Set(key string, val Object) {
	if _, ok := o.props[key]; !ok {
		o.keys = o.keys.Conj(key)
	}
	o.props[key] = val
}

func (o *Obj) KeyAt(i int) (string, bool) {
	k, ok := o.keys.Index(i)
	if !ok {
		return "", false
	}
	return k.(string), true
}

func (o *Obj) GetAt(i int) (Object, bool) {
	k, ok := o.KeyAt(i)
	if !ok {
		return nil, false
	}
	return o.props[k], true
}

func (o *Obj) SetAt(i int, val Object) bool {
	k, ok := o.KeyAt(i)
	if !ok {
		return false
	}
	o.props[k] = val
	return true
}

func (o *Obj) Keys() []string {
	result := make([]string, 0, o.keys.Len())
	for it := o.keys.Iterator(); it.HasElem(); it.Next() {
		result = append(result, it.Elem().(string))
	}
	return result
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return strconv.Quote(s.Value) }

// Stringify is how a value looks when it's joined onto a string: like Inspect, except that a
// string is its own contents.
func Stringify(obj Object) string {
	if s, ok := obj.(*String); ok {
		return s.Value
	}
	return obj.Inspect()
}

func TypeOf(obj Object) string {
	if obj == nil {
		return NULL_OBJ
	}
	return string(obj.Type())
}
