package interp_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/rewire/ast"
	"github.com/sghaida/rewire/dispatch"
	"github.com/sghaida/rewire/inject"
	"github.com/sghaida/rewire/interp"
)

var errFail = errors.New("calc: failed")

func calcRegistry() *dispatch.MapRegistry {
	return dispatch.NewMapRegistry().
		ProvideRef("Calc.to_int/1", func(args ...any) (any, error) {
			return strconv.ParseInt(args[0].(string), 10, 64)
		}).
		ProvideRef("Calc.sum/2", func(args ...any) (any, error) {
			return args[0].(int64) + args[1].(int64), nil
		}).
		ProvideRef("Calc.macro_sum/2", func(args ...any) (any, error) {
			return args[0].(int64) + args[1].(int64), nil
		}).
		ProvideRef("Calc.fail/0", func(...any) (any, error) {
			return nil, errFail
		})
}

// addDef is
//
//	def add(a, b) do
//	  Calc.to_int(a) >>> fn a_int -> Calc.to_int(b) >>> fn b_int -> Calc.sum(a_int, b_int) end end
//	end
func addDef() inject.Definition {
	return inject.Definition{
		Name:   "add",
		Params: []ast.Node{ast.Var("a"), ast.Var("b")},
		Body: ast.Op(">>>",
			ast.Call("Calc", "to_int", ast.Var("a")),
			ast.Arrow("a_int", ast.Op(">>>",
				ast.Call("Calc", "to_int", ast.Var("b")),
				ast.Arrow("b_int", ast.Call("Calc", "sum", ast.Var("a_int"), ast.Var("b_int"))),
			)),
		),
	}
}

func injectedAdd(t *testing.T) inject.Injected {
	t.Helper()
	got, err := inject.New().Define(addDef(), inject.DefaultMapVar)
	require.NoError(t, err)
	return got
}

func TestCall_RealFunctionsWithoutMap(t *testing.T) {
	t.Parallel()

	in := interp.New(calcRegistry())
	def := injectedAdd(t).Definition

	got, err := in.Call(def, "1", "2")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)

	got, err = in.Call(def, "1", "2", dispatch.Map{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestCall_SubstituteReplacesOneCall(t *testing.T) {
	t.Parallel()

	in := interp.New(calcRegistry())
	injected := injectedAdd(t)

	deps := dispatch.MustMock(map[string]any{"&Calc.sum/2": int64(100)})
	require.NoError(t, dispatch.Validate(deps, injected.Keys))

	got, err := in.Call(injected.Definition, "1", "2", deps)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got)
}

func TestCall_SubstituteReceivesArguments(t *testing.T) {
	t.Parallel()

	in := interp.New(calcRegistry())

	var seen []any
	deps := dispatch.MustMock(map[string]any{
		"Calc.to_int/1": func(args ...any) (any, error) {
			seen = append(seen, args[0])
			return int64(10), nil
		},
	})

	got, err := in.Call(injectedAdd(t).Definition, "1", "2", deps)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got)
	assert.Equal(t, []any{"1", "2"}, seen)
}

func TestCall_UnrewrittenHasNoMapParameter(t *testing.T) {
	t.Parallel()

	in := interp.New(calcRegistry())

	got, err := in.Call(addDef(), "4", "5")
	require.NoError(t, err)
	assert.Equal(t, int64(9), got)

	_, err = in.Call(addDef(), "4", "5", dispatch.Map{})
	var arity dispatch.ArityError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 3, arity.Got)

	_, err = in.Call(addDef(), "4")
	require.ErrorAs(t, err, &arity)
}

func TestCall_RealErrorsPropagate(t *testing.T) {
	t.Parallel()

	in := interp.New(calcRegistry())

	_, err := in.Call(injectedAdd(t).Definition, "x", "2")
	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)
}

func TestEval_ScopedMacroCall(t *testing.T) {
	t.Parallel()

	env := inject.NewMacroTable().Provide("Calc", "macro_sum", 2)
	out, err := inject.Rewrite(ast.Call("Calc", "macro_sum", ast.IntLit(10), ast.IntLit(20)), "deps", env)
	require.NoError(t, err)

	got, err := interp.New(calcRegistry()).Eval(out, interp.NewScope())
	require.NoError(t, err)
	assert.Equal(t, int64(30), got)
}

func TestEval_LocalImportDoesNotLeak(t *testing.T) {
	t.Parallel()

	scoped := &ast.Block{Exprs: []ast.Node{
		&ast.ImportDirective{Module: "Calc", Scope: ast.Local, Only: []ast.FunRef{{Function: "macro_sum", Arity: 2}}},
		ast.Invoke("macro_sum", ast.IntLit(1), ast.IntLit(2)),
	}}
	sibling := &ast.LocalCall{Meta: ast.Meta{Line: 4}, Function: "macro_sum", Args: []ast.Node{ast.IntLit(1), ast.IntLit(2)}}

	_, err := interp.New(calcRegistry()).Eval(&ast.Block{Exprs: []ast.Node{scoped, sibling}}, interp.NewScope())

	assert.Equal(t, interp.UndefinedLocalError{Function: "macro_sum", Arity: 2, Meta: ast.Meta{Line: 4}}, err)
	assert.EqualError(t, err, "interp: undefined local function macro_sum/2 at line 4")
}

func TestEval_UnrestrictedImport(t *testing.T) {
	t.Parallel()

	block := &ast.Block{Exprs: []ast.Node{
		&ast.ImportDirective{Module: "Other", Scope: ast.Local},
		&ast.ImportDirective{Module: "Calc", Scope: ast.Local},
		ast.Invoke("sum", ast.IntLit(1), ast.IntLit(2)),
	}}

	got, err := interp.New(calcRegistry()).Eval(block, interp.NewScope())
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestEval_TryAfterCanonicalization(t *testing.T) {
	t.Parallel()

	try := func(body ast.Node) ast.Node {
		return &ast.TryBlock{Body: body, Sections: []ast.TrySection{
			{Kind: ast.Else, Clauses: []ast.Clause{{Pattern: ast.Var("v"), Body: ast.Tuple(ast.AtomLit("ok"), ast.Var("v"))}}},
			{Kind: ast.Rescue, Clauses: []ast.Clause{{Pattern: ast.Var("_e"), Body: ast.AtomLit("rescued")}}},
		}}
	}

	in := interp.New(calcRegistry())
	deps := dispatch.MustMock(map[string]any{"Calc.sum/2": int64(7)})

	cases := []struct {
		name string
		body ast.Node
		want any
	}{
		{"value goes to else", ast.Call("Calc", "sum", ast.IntLit(1), ast.IntLit(2)), []any{interp.Atom("ok"), int64(7)}},
		{"error goes to rescue", ast.Call("Calc", "fail"), interp.Atom("rescued")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, err := inject.Rewrite(try(tc.body), "deps", nil)
			require.NoError(t, err)

			s := interp.NewScope()
			s.Set("deps", deps)
			got, err := in.Eval(out, s)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEval_TryWithoutMatchingHandler(t *testing.T) {
	t.Parallel()

	try := &ast.TryBlock{Body: ast.Call("Calc", "fail"), Sections: []ast.TrySection{
		{Kind: ast.Catch, Clauses: []ast.Clause{{Pattern: ast.AtomLit("exit"), Body: ast.AtomLit("caught")}}},
	}}

	_, err := interp.New(calcRegistry()).Eval(try, interp.NewScope())
	assert.ErrorIs(t, err, errFail)
}

func TestEval_Case(t *testing.T) {
	t.Parallel()

	cb := func(subject ast.Node) ast.Node {
		return &ast.CaseBlock{Subject: subject, Clauses: []ast.Clause{
			{Pattern: ast.Tuple(ast.AtomLit("ok"), ast.Var("v")), Guard: ast.Op(">", ast.Var("v"), ast.IntLit(10)), Body: ast.AtomLit("big")},
			{Pattern: ast.Tuple(ast.AtomLit("ok"), ast.Var("v")), Body: ast.Var("v")},
		}}
	}

	in := interp.New(nil)

	got, err := in.Eval(cb(ast.Tuple(ast.AtomLit("ok"), ast.IntLit(50))), interp.NewScope())
	require.NoError(t, err)
	assert.Equal(t, interp.Atom("big"), got)

	got, err = in.Eval(cb(ast.Tuple(ast.AtomLit("ok"), ast.IntLit(5))), interp.NewScope())
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)

	_, err = in.Eval(cb(ast.AtomLit("error")), interp.NewScope())
	assert.EqualError(t, err, "interp: no clause matching :error")
}

func TestEval_Operators(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		node ast.Node
		want any
	}{
		{"int arithmetic", ast.Op("-", ast.Op("*", ast.IntLit(3), ast.IntLit(4)), ast.IntLit(2)), int64(10)},
		{"division is float", ast.Op("/", ast.IntLit(3), ast.IntLit(2)), 1.5},
		{"mixed", ast.Op("+", ast.IntLit(1), &ast.Literal{Kind: ast.Float, Value: "0.5"}), 1.5},
		{"compare", ast.Op("<=", ast.IntLit(2), ast.IntLit(2)), true},
		{"equal", ast.Op("==", ast.Tuple(ast.AtomLit("a")), ast.Tuple(ast.AtomLit("a"))), true},
		{"not equal", ast.Op("!=", ast.AtomLit("a"), ast.AtomLit("b")), true},
		{"concat", ast.Op("<>", ast.StrLit("a"), ast.StrLit("b")), "ab"},
		{"and short-circuits", ast.Op("and", &ast.Literal{Kind: ast.Bool, Value: "false"}, ast.Var("unbound")), false},
		{"or short-circuits", ast.Op("or", &ast.Literal{Kind: ast.Bool, Value: "true"}, ast.Var("unbound")), true},
		{"match binds", &ast.Block{Exprs: []ast.Node{ast.Op("=", ast.Var("x"), ast.IntLit(2)), ast.Op("*", ast.Var("x"), ast.Var("x"))}}, int64(4)},
		{"pipe into fn", ast.Op(">>>", ast.IntLit(2), ast.Arrow("n", ast.Op("+", ast.Var("n"), ast.IntLit(1)))), int64(3)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := interp.New(nil).Eval(tc.node, interp.NewScope())
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		node ast.Node
		want string
	}{
		{"unbound", &ast.Variable{Meta: ast.Meta{Line: 2}, Name: "a"}, `interp: unbound variable "a" at line 2`},
		{"pipe into value", &ast.OperatorChain{Meta: ast.Meta{Line: 3}, Op: ">>>", Left: ast.IntLit(1), Right: ast.IntLit(2)}, "interp: expected function, got int64 at line 3"},
		{"unknown operator", ast.Op("**", ast.IntLit(1), ast.IntLit(2)), "interp: unsupported operator **"},
		{"undefined", ast.Call("Calc", "nope"), "dispatch: undefined function Calc.nope/0"},
		{"bad match", ast.Op("=", ast.IntLit(1), ast.IntLit(2)), "interp: no clause matching 2"},
		{"divide by zero", &ast.OperatorChain{Meta: ast.Meta{Line: 2}, Op: "/", Left: ast.IntLit(1), Right: ast.IntLit(0)}, "interp: bad argument in arithmetic expression / at line 2"},
		{"divide by float zero", ast.Op("/", &ast.Literal{Kind: ast.Float, Value: "1.5"}, &ast.Literal{Kind: ast.Float, Value: "0.0"}), "interp: bad argument in arithmetic expression /"},
		{"non-empty map", &ast.Generic{Tag: ast.TagMap, Children: []ast.Node{ast.IntLit(1)}}, `interp: unsupported form "%{}"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := interp.New(calcRegistry()).Eval(tc.node, interp.NewScope())
			assert.EqualError(t, err, tc.want)
		})
	}
}

func TestEval_DivisionByZeroIsTyped(t *testing.T) {
	t.Parallel()

	s := interp.NewScope()
	s.Set("n", int64(4))
	_, err := interp.New(nil).Eval(&ast.OperatorChain{Meta: ast.Meta{Line: 7}, Op: "/", Left: ast.Var("n"), Right: ast.IntLit(0)}, s)

	var arithErr interp.ArithmeticError
	require.ErrorAs(t, err, &arithErr)
	assert.Equal(t, "/", arithErr.Op)
	assert.Equal(t, 7, arithErr.Meta.Line)
}

func TestEval_CaptureAndAccess(t *testing.T) {
	t.Parallel()

	in := interp.New(calcRegistry())
	s := interp.NewScope()
	s.Set("conn", map[string]any{"assigns": "x"})

	got, err := in.Eval(&ast.MemberAccess{Target: ast.Var("conn"), Field: "assigns"}, s)
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	fn, err := in.Eval(&ast.Capture{Module: "Calc", Function: "sum", Arity: 2}, s)
	require.NoError(t, err)
	res, err := fn.(dispatch.Func)(int64(1), int64(2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), res)
}

func TestInspect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `[:ok, "s", Calc, nil, 1]`, interp.Inspect([]any{interp.Atom("ok"), "s", interp.Alias("Calc"), nil, int64(1)}))
}
