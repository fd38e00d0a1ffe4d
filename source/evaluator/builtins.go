package evaluator

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atomic-lang/atomic/source/object"
)

// The natives live in their own environment, which encloses every session and module. So a module's
// own scope never contains them, and 'use' doesn't copy them about.
func NewGlobals(out io.Writer) *object.Environment {
	globals := object.NewEnvironment()
	for _, b := range builtins(out) {
		globals.DeclareVar(b.Name, b, true)
	}
	globals.DeclareVar("null", object.NULL, true)
	return globals
}

func builtins(out io.Writer) []*object.Builtin {
	return []*object.Builtin{
		{Name: "print", Fn: func(args []object.Object, env *object.Environment) object.Object {
			strs := make([]string, 0, len(args))
			for _, arg := range args {
				strs = append(strs, object.Stringify(arg))
			}
			fmt.Fprintln(out, strings.Join(strs, " "))
			return object.NULL
		}},
		// Milliseconds since the epoch.
		{Name: "time", Fn: func(args []object.Object, env *object.Environment) object.Object {
			return &object.Number{Value: float64(time.Now().UnixMilli())}
		}},
		{Name: "len", Fn: func(args []object.Object, env *object.Environment) object.Object {
			if len(args) != 1 {
				return object.NULL
			}
			switch arg := args[0].(type) {
			case *object.String:
				return &object.Number{Value: float64(utf8.RuneCountInString(arg.Value))}
			case *object.Obj:
				return &object.Number{Value: float64(arg.Len())}
			}
			return object.NULL
		}},
		{Name: "str", Fn: func(args []object.Object, env *object.Environment) object.Object {
			if len(args) != 1 {
				return object.NULL
			}
			return &object.String{Value: object.Stringify(args[0])}
		}},
		{Name: "typeof", Fn: func(args []object.Object, env *object.Environment) object.Object {
			if len(args) != 1 {
				return object.NULL
			}
			return &object.String{Value: object.TypeOf(args[0])}
		}},
	}
}
