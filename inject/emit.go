package inject

import (
	"strconv"

	"github.com/sghaida/rewire/ast"
	"github.com/sghaida/rewire/dispatch"
)

// emit builds the dispatcher call that replaces call:
//
//	Rewire.Dispatch.dispatch({Module, :function, arity}, [args...], mapVar)
//
// args are call's arguments, already rewritten, in their original order. The
// arity is the static argument count at the call site.
func emit(call *ast.QualifiedCall, args []ast.Node, mapVar string) *ast.QualifiedCall {
	meta := call.Meta
	key := &ast.Generic{
		Meta: meta,
		Tag:  ast.TagTuple,
		Children: []ast.Node{
			&ast.Literal{Meta: meta, Kind: ast.Alias, Value: call.Module},
			&ast.Literal{Meta: meta, Kind: ast.Atom, Value: call.Function},
			&ast.Literal{Meta: meta, Kind: ast.Int, Value: strconv.Itoa(len(call.Args))},
		},
	}
	return &ast.QualifiedCall{
		Meta:     meta,
		Module:   dispatch.Module,
		Function: dispatch.Function,
		Args: []ast.Node{
			key,
			&ast.Generic{Meta: meta, Tag: ast.TagList, Children: args},
			&ast.Variable{Meta: meta, Name: mapVar},
		},
	}
}

// dispatchKey recognizes a call produced by emit and returns its key.
func dispatchKey(n ast.Node) (dispatch.Key, bool) {
	call, ok := n.(*ast.QualifiedCall)
	if !ok || call.Module != dispatch.Module || call.Function != dispatch.Function || len(call.Args) != 3 {
		return dispatch.Key{}, false
	}
	tuple, ok := call.Args[0].(*ast.Generic)
	if !ok || tuple.Tag != ast.TagTuple || len(tuple.Children) != 3 {
		return dispatch.Key{}, false
	}
	mod, ok1 := tuple.Children[0].(*ast.Literal)
	fun, ok2 := tuple.Children[1].(*ast.Literal)
	ar, ok3 := tuple.Children[2].(*ast.Literal)
	if !ok1 || !ok2 || !ok3 || mod.Kind != ast.Alias || fun.Kind != ast.Atom || ar.Kind != ast.Int {
		return dispatch.Key{}, false
	}
	arity, err := strconv.Atoi(ar.Value)
	if err != nil {
		return dispatch.Key{}, false
	}
	return dispatch.NewKey(mod.Value, fun.Value, arity), true
}
