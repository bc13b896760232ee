package inject

import (
	"errors"
	"strconv"

	"github.com/sghaida/rewire/ast"
)

var (
	// ErrTopLevelImport matches every ModifierError via errors.Is.
	ErrTopLevelImport = errors.New("inject: unscoped import in function body")

	// ErrEmptyMapVar is returned when the substitution-map variable name is empty.
	ErrEmptyMapVar = errors.New("inject: empty map variable name")
)

// ModifierError is returned when the tree contains an unscoped import.
// The rewrite is abandoned; no partial tree accompanies it.
type ModifierError struct {
	// Module is the imported module.
	Module string

	// Meta is the position of the offending directive.
	Meta ast.Meta
}

// Error implements the error interface.
func (e ModifierError) Error() string {
	// Example: inject: import Calc at line 3: unscoped import in function body; move it to the module
	msg := "inject: import " + e.Module
	if e.Meta.Line > 0 {
		msg += " at line " + strconv.Itoa(e.Meta.Line)
	}
	return msg + ": unscoped import in function body; move it to the module"
}

// Is reports whether target is ErrTopLevelImport.
func (e ModifierError) Is(target error) bool { return target == ErrTopLevelImport }

// MapVarConflictError is returned by Define when a parameter already uses the
// substitution-map variable name.
type MapVarConflictError struct {
	Function string
	MapVar   string
}

// Error implements the error interface.
func (e MapVarConflictError) Error() string {
	// Example: inject: function "sum" already has a parameter named "deps"
	return "inject: function " + strconv.Quote(e.Function) + " already has a parameter named " + strconv.Quote(e.MapVar)
}
