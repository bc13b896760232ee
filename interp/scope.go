package interp

import "github.com/sghaida/rewire/ast"

// Scope holds variable bindings and the imports visible at a point of
// evaluation. Blocks, clauses and closures get an enclosed scope, so bindings
// and imports made inside them do not leak out.
type Scope struct {
	vars    map[string]any
	imports []*ast.ImportDirective
	outer   *Scope
}

// NewScope returns an empty top-level scope.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]any)}
}

// NewEnclosedScope returns an empty scope nested in outer.
func NewEnclosedScope(outer *Scope) *Scope {
	s := NewScope()
	s.outer = outer
	return s
}

// Get looks name up, innermost scope first.
func (s *Scope) Get(name string) (any, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in this scope and returns v.
func (s *Scope) Set(name string, v any) any {
	s.vars[name] = v
	return v
}

func (s *Scope) addImport(imp *ast.ImportDirective) {
	s.imports = append(s.imports, imp)
}

// resolve finds the module an unqualified function/arity is imported from.
// Later imports shadow earlier ones and inner scopes shadow outer ones; an
// unrestricted import only matches when defined reports that its module has
// the function.
func (s *Scope) resolve(function string, arity int, defined func(module string) bool) (string, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		for i := len(cur.imports) - 1; i >= 0; i-- {
			imp := cur.imports[i]
			if len(imp.Only) == 0 && !defined(imp.Module) {
				continue
			}
			if imports(imp, function, arity) {
				return imp.Module, true
			}
		}
	}
	return "", false
}

func imports(imp *ast.ImportDirective, function string, arity int) bool {
	if len(imp.Only) == 0 {
		return true
	}
	for _, f := range imp.Only {
		if f.Function == function && f.Arity == arity {
			return true
		}
	}
	return false
}
