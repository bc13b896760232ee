package interp

import (
	"reflect"

	"github.com/sghaida/rewire/ast"
	"github.com/sghaida/rewire/dispatch"
)

func (in *Interpreter) operator(op *ast.OperatorChain, s *Scope) (any, error) {
	switch op.Op {
	case "=":
		v, err := in.Eval(op.Right, s)
		if err != nil {
			return nil, err
		}
		if !in.match(op.Left, v, s) {
			return nil, NoClauseError{Value: v, Meta: op.Meta}
		}
		return v, nil
	case "and", "or":
		l, err := in.boolOperand(op.Left, op.Meta, s)
		if err != nil {
			return nil, err
		}
		if (op.Op == "and" && !l) || (op.Op == "or" && l) {
			return l, nil
		}
		return in.boolOperand(op.Right, op.Meta, s)
	}

	left, err := in.Eval(op.Left, s)
	if err != nil {
		return nil, err
	}
	right, err := in.Eval(op.Right, s)
	if err != nil {
		return nil, err
	}

	switch op.Op {
	case ">>>":
		// left >>> fn x -> ... end applies the function to left.
		fn, ok := right.(dispatch.Func)
		if !ok {
			return nil, TypeError{Want: "function", Got: right, Meta: op.Meta}
		}
		return fn(left)
	case "==":
		return reflect.DeepEqual(left, right), nil
	case "!=":
		return !reflect.DeepEqual(left, right), nil
	case "<>":
		ls, ok1 := left.(string)
		rs, ok2 := right.(string)
		if !ok1 || !ok2 {
			return nil, TypeError{Want: "string", Got: pick(ok1, left, right), Meta: op.Meta}
		}
		return ls + rs, nil
	case "+", "-", "*", "/", "<", ">", "<=", ">=":
		return arith(op, left, right)
	}
	return nil, UnsupportedError{What: "operator " + op.Op, Meta: op.Meta}
}

func (in *Interpreter) boolOperand(n ast.Node, meta ast.Meta, s *Scope) (bool, error) {
	v, err := in.Eval(n, s)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, TypeError{Want: "boolean", Got: v, Meta: meta}
	}
	return b, nil
}

// pick returns the operand that failed a type check.
func pick(leftOK bool, left, right any) any {
	if leftOK {
		return right
	}
	return left
}

func arith(op *ast.OperatorChain, left, right any) (any, error) {
	li, lInt := left.(int64)
	ri, rInt := right.(int64)
	if lInt && rInt && op.Op != "/" {
		switch op.Op {
		case "+":
			return li + ri, nil
		case "-":
			return li - ri, nil
		case "*":
			return li * ri, nil
		case "<":
			return li < ri, nil
		case ">":
			return li > ri, nil
		case "<=":
			return li <= ri, nil
		case ">=":
			return li >= ri, nil
		}
	}

	lf, ok := toFloat(left)
	if !ok {
		return nil, TypeError{Want: "number", Got: left, Meta: op.Meta}
	}
	rf, ok := toFloat(right)
	if !ok {
		return nil, TypeError{Want: "number", Got: right, Meta: op.Meta}
	}
	switch op.Op {
	case "+":
		return lf + rf, nil
	case "-":
		return lf - rf, nil
	case "*":
		return lf * rf, nil
	case "/":
		if rf == 0 {
			return nil, ArithmeticError{Op: op.Op, Meta: op.Meta}
		}
		return lf / rf, nil
	case "<":
		return lf < rf, nil
	case ">":
		return lf > rf, nil
	case "<=":
		return lf <= rf, nil
	default:
		return lf >= rf, nil
	}
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
