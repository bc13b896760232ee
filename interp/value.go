package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sghaida/rewire/dispatch"
)

// Run-time values are plain Go values:
//
//	int literal      int64
//	float literal    float64
//	string literal   string
//	true / false     bool
//	nil              nil
//	atom             Atom
//	module alias     Alias
//	tuple, list      []any
//	%{}              dispatch.Map (the only map the evaluator builds)
//	fn, &M.f/n       dispatch.Func

// Atom is an atom value such as :ok.
type Atom string

// Alias is a module name used as a value.
type Alias string

// Inspect renders a value the way literals are written.
func Inspect(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case Atom:
		return ":" + string(v)
	case Alias:
		return string(v)
	case string:
		return strconv.Quote(v)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = Inspect(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case dispatch.Func:
		return "#Function"
	case error:
		return "#Error<" + v.Error() + ">"
	default:
		return fmt.Sprint(v)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case dispatch.Func:
		return "function"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// toKey converts an evaluated {Module, :function, arity} tuple.
func toKey(v any) (dispatch.Key, bool) {
	t, ok := v.([]any)
	if !ok || len(t) != 3 {
		return dispatch.Key{}, false
	}
	mod, ok1 := t[0].(Alias)
	fun, ok2 := t[1].(Atom)
	ar, ok3 := t[2].(int64)
	if !ok1 || !ok2 || !ok3 {
		return dispatch.Key{}, false
	}
	return dispatch.NewKey(string(mod), string(fun), int(ar)), true
}
