package serializer

import (
	"fmt"
	"sort"

	"github.com/vegasq/tabshape/table"
)

// Reducer folds the values of one column across a group into a single value.
type Reducer func(values []interface{}, args Arguments) (interface{}, error)

// Arguments carries a reducer's default arguments.
type Arguments map[string]interface{}

// Function is a resolved group function: a whitelisted reducer together with
// the default arguments it is called with.
type Function struct {
	Name      string
	Reduce    Reducer
	Arguments Arguments
}

// Names of the whitelisted reducers
const (
	FunctionList = "list"
	FunctionMin  = "min"
	FunctionMax  = "max"
)

type reducerEntry struct {
	reduce    Reducer
	arguments Arguments
}

// reducers is the closed whitelist. There is no way to register more at
// runtime; a group function outside this table is a schema error.
var reducers = map[string]reducerEntry{
	FunctionList: {reduce: reduceList, arguments: Arguments{}},
	// default keeps an empty sequence from failing; nil is the result then
	FunctionMin: {reduce: reduceMin, arguments: Arguments{"default": nil}},
	FunctionMax: {reduce: reduceMax, arguments: Arguments{"default": nil}},
}

// LookupFunction resolves a reducer by name.
//
// The returned Function owns a fresh copy of the default arguments. Unknown
// names fail with an error wrapping ErrGroupFieldAction.
func LookupFunction(name string) (Function, error) {
	entry, ok := reducers[name]
	if !ok {
		return Function{}, fmt.Errorf("%w: %q (allowed: %v)", ErrGroupFieldAction, name, FunctionNames())
	}

	return Function{Name: name, Reduce: entry.reduce, Arguments: entry.arguments.clone()}, nil
}

// FunctionNames returns the whitelisted reducer names, sorted.
func FunctionNames() []string {
	names := make([]string, 0, len(reducers))
	for name := range reducers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bindFunction resolves fn against the whitelist by name. The reducer always
// comes from the whitelist, whatever fn carries, and the arguments are
// copied so later changes to fn do not reach the schema. Nil arguments take
// the reducer's defaults.
func bindFunction(fn Function) (Function, error) {
	entry, ok := reducers[fn.Name]
	if !ok {
		return Function{}, fmt.Errorf("%w: %q (allowed: %v)", ErrGroupFieldAction, fn.Name, FunctionNames())
	}

	args := fn.Arguments
	if args == nil {
		args = entry.arguments
	}
	return Function{Name: fn.Name, Reduce: entry.reduce, Arguments: args.clone()}, nil
}

// clone returns a shallow copy of the arguments
func (a Arguments) clone() Arguments {
	c := make(Arguments, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}
