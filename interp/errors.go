package interp

import (
	"strconv"

	"github.com/sghaida/rewire/ast"
)

// UnboundVariableError is returned when a variable has no binding.
type UnboundVariableError struct {
	Name string
	Meta ast.Meta
}

// Error implements the error interface.
func (e UnboundVariableError) Error() string {
	// Example: interp: unbound variable "a" at line 2
	return "interp: unbound variable " + strconv.Quote(e.Name) + atLine(e.Meta)
}

// UndefinedLocalError is returned when an unqualified call resolves through
// no import in scope.
type UndefinedLocalError struct {
	Function string
	Arity    int
	Meta     ast.Meta
}

// Error implements the error interface.
func (e UndefinedLocalError) Error() string {
	// Example: interp: undefined local function macro_sum/2 at line 4
	return "interp: undefined local function " + e.Function + "/" + strconv.Itoa(e.Arity) + atLine(e.Meta)
}

// UnsupportedError is returned for constructs the evaluator does not run.
type UnsupportedError struct {
	What string
	Meta ast.Meta
}

// Error implements the error interface.
func (e UnsupportedError) Error() string {
	// Example: interp: unsupported operator "**" at line 1
	return "interp: unsupported " + e.What + atLine(e.Meta)
}

// TypeError is returned when a value has the wrong type for an operation.
type TypeError struct {
	Want string
	Got  any
	Meta ast.Meta
}

// Error implements the error interface.
func (e TypeError) Error() string {
	// Example: interp: expected function, got int64 at line 3
	return "interp: expected " + e.Want + ", got " + typeName(e.Got) + atLine(e.Meta)
}

// ArithmeticError is returned when an operator has no defined result for its
// operands, such as division by zero.
type ArithmeticError struct {
	Op   string
	Meta ast.Meta
}

// Error implements the error interface.
func (e ArithmeticError) Error() string {
	// Example: interp: bad argument in arithmetic expression / at line 2
	return "interp: bad argument in arithmetic expression " + e.Op + atLine(e.Meta)
}

// NoClauseError is returned when no clause of a case, fn or try matches.
type NoClauseError struct {
	Value any
	Meta  ast.Meta
}

// Error implements the error interface.
func (e NoClauseError) Error() string {
	// Example: interp: no clause matching :error at line 5
	return "interp: no clause matching " + Inspect(e.Value) + atLine(e.Meta)
}

func atLine(m ast.Meta) string {
	if m.Line <= 0 {
		return ""
	}
	return " at line " + strconv.Itoa(m.Line)
}
