package object

import (
	"sort"
	"strconv"

	"github.com/atomic-lang/atomic/source/err"
	"github.com/atomic-lang/atomic/source/token"
)

// Environments are chained: lookup starts here and works outwards through Ext. A function call
// gets a fresh one whose Ext is the function's closure.
type Environment struct {
	Store map[string]Storage
	Ext   *Environment
}

type Storage struct {
	obj    Object
	locked bool
}

func NewEnvironment() *Environment {
	return &Environment{Store: make(map[string]Storage)}
}

func NewEnclosedEnvironment(ext *Environment) *Environment {
	env := NewEnvironment()
	env.Ext = ext
	return env
}

// Declaring always succeeds, and overwrites anything of the same name in this scope.
func (e *Environment) DeclareVar(name string, val Object, locked bool) Object {
	e.Store[name] = Storage{val, locked}
	return val
}

// Finds the scope in which the name is declared, or nil.
func (e *Environment) Resolve(name string) *Environment {
	for env := e; env != nil; env = env.Ext {
		if _, ok := env.Store[name]; ok {
			return env
		}
	}
	return nil
}

func (e *Environment) SetVar(name string, val Object, tok *token.Token) (Object, *err.Error) {
	env := e.Resolve(name)
	if env == nil {
		return NULL, err.CreateErr("AT3001", tok, name)
	}
	if env.Store[name].locked {
		return NULL, err.CreateErr("AT3002", tok, name)
	}
	env.Store[name] = Storage{val, false}
	return val, nil
}

func (e *Environment) FindVar(name string, tok *token.Token) (Object, *err.Error) {
	env := e.Resolve(name)
	if env == nil {
		return NULL, err.CreateErr("AT3001", tok, name)
	}
	return env.Store[name].obj, nil
}

func (e *Environment) Exists(name string) bool {
	return e.Resolve(name) != nil
}

func (e *Environment) IsLocked(name string) bool {
	env := e.Resolve(name)
	return env != nil && env.Store[name].locked
}

// Merges in the bindings of the other environment's own scope, but not of its ancestors. Later
// bindings overwrite earlier ones, locked or not.
func (e *Environment) AddEnv(other *Environment) {
	for k, v := range other.Store {
		e.Store[k] = v
	}
}

func (e *Environment) GetObjProperty(obj *Obj, key string, tok *token.Token) (Object, *err.Error) {
	val, ok := obj.Get(key)
	if !ok {
		return NULL, err.CreateErr("AT3005", tok, key)
	}
	return val, nil
}

func (e *Environment) GetObjIndex(obj *Obj, index int, tok *token.Token) (Object, *err.Error) {
	val, ok := obj.GetAt(index)
	if !ok {
		return NULL, err.CreateErr("AT3008", tok, outOfRange(obj, index))
	}
	return val, nil
}

// Setting a key the object doesn't have yet adds it.
func (e *Environment) SetObjProperty(obj *Obj, key string, val Object, tok *token.Token) (Object, *err.Error) {
	obj.Set(key, val)
	return val, nil
}

func (e *Environment) SetObjIndex(obj *Obj, index int, val Object, tok *token.Token) (Object, *err.Error) {
	if !obj.SetAt(index, val) {
		return NULL, err.CreateErr("AT3008", tok, outOfRange(obj, index))
	}
	return val, nil
}

func outOfRange(obj *Obj, index int) string {
	return "index " + strconv.Itoa(index) + " is out of range for an object with " +
		strconv.Itoa(obj.Len()) + " properties"
}

// The names declared in this scope, in alphabetical order.
func (e *Environment) Names() []string {
	result := make([]string, 0, len(e.Store))
	for k := range e.Store {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

func (e *Environment) String() string {
	result := ""
	for _, k := range e.Names() {
		result = result + k + " = " + e.Store[k].obj.Inspect() + "\n"
	}
	return result
}
