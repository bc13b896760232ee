package ast

import "strconv"

// Constructors for the shapes that tests and rewriters build most often.
// Position data is left zero.

func Var(name string) *Variable { return &Variable{Name: name} }

func IntLit(v int) *Literal { return &Literal{Kind: Int, Value: strconv.Itoa(v)} }

func StrLit(v string) *Literal { return &Literal{Kind: String, Value: v} }

func AtomLit(name string) *Literal { return &Literal{Kind: Atom, Value: name} }

func AliasLit(module string) *Literal { return &Literal{Kind: Alias, Value: module} }

func Call(module, function string, args ...Node) *QualifiedCall {
	return &QualifiedCall{Module: module, Function: function, Args: args}
}

func Invoke(function string, args ...Node) *LocalCall {
	return &LocalCall{Function: function, Args: args}
}

func Tuple(elems ...Node) *Generic { return &Generic{Tag: TagTuple, Children: elems} }

func List(elems ...Node) *Generic { return &Generic{Tag: TagList, Children: elems} }

func Op(op string, left, right Node) *OperatorChain {
	return &OperatorChain{Op: op, Left: left, Right: right}
}

// Arrow builds a single-clause anonymous function: fn param -> body end.
func Arrow(param string, body Node) *Fn {
	return &Fn{Clauses: []Clause{{Pattern: Var(param), Body: body}}}
}
