package dispatch

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNilFunc is returned when a nil function is registered or substituted.
	ErrNilFunc = errors.New("dispatch: nil function")

	// ErrNilDispatcher is returned by Dispatch on a nil receiver.
	ErrNilDispatcher = errors.New("dispatch: nil dispatcher")
)

// InvalidRefError is returned when a function reference cannot be parsed.
type InvalidRefError struct{ Ref string }

// Error implements the error interface.
func (e InvalidRefError) Error() string {
	// Example: dispatch: invalid function reference "Calc.sum"
	return "dispatch: invalid function reference " + strconv.Quote(e.Ref)
}

// UndefinedFunctionError is returned when neither the substitution map nor
// the registry provides a function for the key.
type UndefinedFunctionError struct{ Key Key }

// Error implements the error interface.
func (e UndefinedFunctionError) Error() string {
	// Example: dispatch: undefined function Calc.sum/2
	return "dispatch: undefined function " + e.Key.String()
}

// ArityError is returned when a function is invoked with a number of
// arguments that differs from its key's arity.
type ArityError struct {
	Key Key
	Got int
}

// Error implements the error interface.
func (e ArityError) Error() string {
	// Example: dispatch: Calc.sum/2 called with 3 arguments
	return "dispatch: " + e.Key.String() + " called with " + strconv.Itoa(e.Got) + " arguments"
}

// DuplicateKeyError is returned when a key is substituted twice.
type DuplicateKeyError struct{ Key Key }

// Error implements the error interface.
func (e DuplicateKeyError) Error() string {
	// Example: dispatch: duplicate substitution for Calc.sum/2
	return "dispatch: duplicate substitution for " + e.Key.String()
}

// UnusedKeyError is returned by Validate when a substitution map holds keys
// the rewritten function never calls. Keys are sorted.
type UnusedKeyError struct{ Keys []Key }

// Error implements the error interface.
func (e UnusedKeyError) Error() string {
	// Example: dispatch: unused substitutions Calc.sum/2, Calc.to_int/1
	refs := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		refs[i] = k.String()
	}
	return "dispatch: unused substitutions " + strings.Join(refs, ", ")
}
