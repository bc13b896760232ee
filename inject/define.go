package inject

import (
	"github.com/sghaida/rewire/ast"
	"github.com/sghaida/rewire/dispatch"
)

// DefaultMapVar is the conventional name of the substitution-map parameter.
const DefaultMapVar = "deps"

// Definition is a named function: its parameters and body.
type Definition struct {
	Meta   ast.Meta
	Name   string
	Params []ast.Node
	Body   ast.Node
}

// Injected is the result of Define.
type Injected struct {
	// Definition is the rewritten function, with the map parameter appended.
	Definition Definition

	// Keys are the distinct substitution keys the body dispatches, sorted.
	// Pass them to dispatch.Validate to reject maps with unused entries.
	Keys []dispatch.Key
}

// Define rewrites def for injection.
//
// The body is rewritten with mapVar as the substitution map and a trailing
// parameter "mapVar \\ %{}" is appended, so existing callers keep working and
// tests can pass a map. It fails with MapVarConflictError if a parameter
// already binds mapVar, and with the rewrite's error if the body cannot be
// rewritten; def is never modified.
func (r *Rewriter) Define(def Definition, mapVar string) (Injected, error) {
	if mapVar == "" {
		return Injected{}, ErrEmptyMapVar
	}
	for _, p := range def.Params {
		if paramName(p) == mapVar {
			return Injected{}, MapVarConflictError{Function: def.Name, MapVar: mapVar}
		}
	}

	body, err := r.Rewrite(def.Body, mapVar)
	if err != nil {
		return Injected{}, err
	}

	params := make([]ast.Node, 0, len(def.Params)+1)
	params = append(params, def.Params...)
	params = append(params, &ast.Generic{
		Meta: def.Meta,
		Tag:  ast.TagDefault,
		Children: []ast.Node{
			&ast.Variable{Meta: def.Meta, Name: mapVar},
			&ast.Generic{Meta: def.Meta, Tag: ast.TagMap},
		},
	})

	return Injected{
		Definition: Definition{Meta: def.Meta, Name: def.Name, Params: params, Body: body},
		Keys:       Keys(body),
	}, nil
}

// paramName returns the variable a parameter binds, seeing through a
// default value (name \\ default). It returns "" for patterns.
func paramName(p ast.Node) string {
	switch p := p.(type) {
	case *ast.Variable:
		return p.Name
	case *ast.Generic:
		if p.Tag == ast.TagDefault && len(p.Children) > 0 {
			return paramName(p.Children[0])
		}
	}
	return ""
}

// Keys returns the distinct substitution keys dispatched anywhere in a
// rewritten tree, sorted.
func Keys(n ast.Node) []dispatch.Key {
	var keys []dispatch.Key
	ast.Inspect(n, func(n ast.Node) bool {
		if k, ok := dispatchKey(n); ok {
			keys = append(keys, k)
		}
		return true
	})
	return dispatch.SortKeys(keys)
}
