package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sghaida/rewire/ast"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		node ast.Node
		want string
	}{
		{"nil", nil, "nil"},
		{"int", ast.IntLit(42), "42"},
		{"string", ast.StrLit(`say "hi"`), `"say \"hi\""`},
		{"atom", ast.AtomLit("ok"), ":ok"},
		{"nil literal", &ast.Literal{Kind: ast.Nil}, "nil"},
		{"bool", &ast.Literal{Kind: ast.Bool, Value: "true"}, "true"},
		{"alias", ast.AliasLit("Calc"), "Calc"},
		{"call", ast.Call("Calc", "sum", ast.Var("a"), ast.Var("b")), "Calc.sum(a, b)"},
		{"call without args", ast.Call("Clock", "now"), "Clock.now()"},
		{"local call", ast.Invoke("sum", ast.IntLit(1)), "sum(1)"},
		{"capture", &ast.Capture{Module: "Calc", Function: "sum", Arity: 2}, "&Calc.sum/2"},
		{"member access", &ast.MemberAccess{Target: ast.Var("conn"), Field: "assigns"}, "conn.assigns"},
		{"import", &ast.ImportDirective{Module: "Calc"}, "import Calc"},
		{"import only", &ast.ImportDirective{Module: "Calc", Scope: ast.Local, Only: []ast.FunRef{{Function: "a", Arity: 1}, {Function: "b", Arity: 0}}}, "import Calc, only: [a: 1, b: 0]"},
		{"operator", ast.Op("+", ast.Var("a"), ast.Var("b")), "a + b"},
		{"nested operator", ast.Op("*", ast.Op("+", ast.Var("a"), ast.Var("b")), ast.Var("c")), "(a + b) * c"},
		{"block", &ast.Block{Exprs: []ast.Node{ast.Var("a"), ast.Var("b")}}, "(a; b)"},
		{"fn", ast.Arrow("x", ast.Var("x")), "fn x -> x end"},
		{"tuple", ast.Tuple(ast.AtomLit("ok"), ast.Var("v")), "{:ok, v}"},
		{"list", ast.List(), "[]"},
		{"map", &ast.Generic{Tag: ast.TagMap}, "%{}"},
		{"default", &ast.Generic{Tag: ast.TagDefault, Children: []ast.Node{ast.Var("deps"), &ast.Generic{Tag: ast.TagMap}}}, `deps \\ %{}`},
		{"args", &ast.Generic{Tag: ast.TagArgs, Children: []ast.Node{ast.Var("a"), ast.Var("b")}}, "a, b"},
		{"other generic", &ast.Generic{Tag: "if", Children: []ast.Node{ast.Var("c")}}, "if(c)"},
		{
			"case",
			&ast.CaseBlock{Subject: ast.Var("x"), Clauses: []ast.Clause{
				{Pattern: ast.IntLit(1), Guard: ast.Op(">", ast.Var("y"), ast.IntLit(0)), Body: ast.AtomLit("one")},
				{Pattern: ast.Var("_"), Body: ast.AtomLit("other")},
			}},
			"case x do 1 when y > 0 -> :one; _ -> :other end",
		},
		{
			"try",
			&ast.TryBlock{Body: ast.Var("x"), Sections: []ast.TrySection{
				{Kind: ast.Catch, Clauses: []ast.Clause{{Pattern: ast.Var("t"), Body: ast.Var("t")}}},
			}},
			"try do x catch t -> t end",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ast.Format(tc.node))
		})
	}
}

func TestFormatClause(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "x -> x", ast.FormatClause(ast.Clause{Pattern: ast.Var("x"), Body: ast.Var("x")}))
	assert.Equal(t, ":done", ast.FormatClause(ast.Clause{Body: ast.AtomLit("done")}))
}

func TestEnumStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "alias", ast.Alias.String())
	assert.Equal(t, "local", ast.Local.String())
	assert.Equal(t, "top_level", ast.TopLevel.String())
	assert.Equal(t, "else", ast.Else.String())
	assert.Equal(t, "unknown", ast.SectionKind(9).String())
}
