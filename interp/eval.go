// Package interp evaluates syntax trees, rewritten or not.
//
// It exists to run injected function bodies: qualified calls go to the real
// functions in a dispatch.Registry, and calls emitted by package inject go
// through a dispatch.Dispatcher, so substitutes in the map passed as the
// trailing argument take effect. Only the subset of the language that
// function bodies in tests and examples use is supported; anything else is
// an UnsupportedError.
package interp

import (
	"reflect"
	"strconv"

	"github.com/sghaida/rewire/ast"
	"github.com/sghaida/rewire/dispatch"
	"github.com/sghaida/rewire/inject"
)

// Interpreter evaluates trees against a registry of real functions.
// It keeps no state between evaluations.
type Interpreter struct {
	real       dispatch.Registry
	dispatcher *dispatch.Dispatcher
}

// New returns an Interpreter resolving real functions through real.
func New(real dispatch.Registry) *Interpreter {
	return &Interpreter{real: real, dispatcher: dispatch.New(real)}
}

// Call applies def to args in a fresh scope. Trailing parameters with a
// default value (name \\ default) may be omitted.
func (in *Interpreter) Call(def inject.Definition, args ...any) (any, error) {
	s := NewScope()
	for i, p := range def.Params {
		if i < len(args) {
			if !in.match(paramPattern(p), args[i], s) {
				return nil, NoClauseError{Value: args[i], Meta: def.Meta}
			}
			continue
		}
		g, ok := p.(*ast.Generic)
		if !ok || g.Tag != ast.TagDefault || len(g.Children) != 2 {
			return nil, dispatch.ArityError{Key: dispatch.NewKey("", def.Name, len(def.Params)), Got: len(args)}
		}
		v, err := in.Eval(g.Children[1], s)
		if err != nil {
			return nil, err
		}
		if !in.match(g.Children[0], v, s) {
			return nil, NoClauseError{Value: v, Meta: def.Meta}
		}
	}
	if len(args) > len(def.Params) {
		return nil, dispatch.ArityError{Key: dispatch.NewKey("", def.Name, len(def.Params)), Got: len(args)}
	}
	return in.Eval(def.Body, s)
}

func paramPattern(p ast.Node) ast.Node {
	if g, ok := p.(*ast.Generic); ok && g.Tag == ast.TagDefault && len(g.Children) == 2 {
		return g.Children[0]
	}
	return p
}

// Eval evaluates n in scope s.
func (in *Interpreter) Eval(n ast.Node, s *Scope) (any, error) {
	switch n := n.(type) {
	case nil:
		return nil, nil
	case *ast.Literal:
		return literal(n)
	case *ast.Variable:
		v, ok := s.Get(n.Name)
		if !ok {
			return nil, UnboundVariableError{Name: n.Name, Meta: n.Meta}
		}
		return v, nil
	case *ast.QualifiedCall:
		return in.qualifiedCall(n, s)
	case *ast.LocalCall:
		return in.localCall(n, s)
	case *ast.Capture:
		key := dispatch.NewKey(n.Module, n.Function, n.Arity)
		fn, ok := in.lookup(key)
		if !ok {
			return nil, dispatch.UndefinedFunctionError{Key: key}
		}
		return fn, nil
	case *ast.MemberAccess:
		target, err := in.Eval(n.Target, s)
		if err != nil {
			return nil, err
		}
		m, ok := target.(map[string]any)
		if !ok {
			return nil, TypeError{Want: "map", Got: target, Meta: n.Meta}
		}
		return m[n.Field], nil
	case *ast.ImportDirective:
		s.addImport(n)
		return nil, nil
	case *ast.OperatorChain:
		return in.operator(n, s)
	case *ast.TryBlock:
		return in.try(n, s)
	case *ast.CaseBlock:
		subject, err := in.Eval(n.Subject, s)
		if err != nil {
			return nil, err
		}
		return in.clauses(n.Clauses, subject, n.Meta, s)
	case *ast.Fn:
		return in.closure(n, s), nil
	case *ast.Block:
		inner := NewEnclosedScope(s)
		var last any
		for _, e := range n.Exprs {
			v, err := in.Eval(e, inner)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	case *ast.Generic:
		return in.generic(n, s)
	default:
		return nil, UnsupportedError{What: "node", Meta: n.Position()}
	}
}

func literal(l *ast.Literal) (any, error) {
	switch l.Kind {
	case ast.Int:
		return strconv.ParseInt(l.Value, 10, 64)
	case ast.Float:
		return strconv.ParseFloat(l.Value, 64)
	case ast.String:
		return l.Value, nil
	case ast.Atom:
		return Atom(l.Value), nil
	case ast.Bool:
		return l.Value == "true", nil
	case ast.Nil:
		return nil, nil
	case ast.Alias:
		return Alias(l.Value), nil
	}
	return nil, UnsupportedError{What: "literal " + l.Kind.String(), Meta: l.Meta}
}

func (in *Interpreter) lookup(key dispatch.Key) (dispatch.Func, bool) {
	if in.real == nil {
		return nil, false
	}
	fn, ok := in.real.Lookup(key)
	return fn, ok && fn != nil
}

func (in *Interpreter) evalList(ns []ast.Node, s *Scope) ([]any, error) {
	out := make([]any, len(ns))
	for i, n := range ns {
		v, err := in.Eval(n, s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (in *Interpreter) qualifiedCall(n *ast.QualifiedCall, s *Scope) (any, error) {
	args, err := in.evalList(n.Args, s)
	if err != nil {
		return nil, err
	}
	if n.Module == dispatch.Module && n.Function == dispatch.Function && len(args) == 3 {
		return in.dispatch(n, args)
	}
	key := dispatch.NewKey(n.Module, n.Function, len(args))
	fn, ok := in.lookup(key)
	if !ok {
		return nil, dispatch.UndefinedFunctionError{Key: key}
	}
	return fn(args...)
}

// dispatch runs Rewire.Dispatch.dispatch(key, args, deps).
func (in *Interpreter) dispatch(n *ast.QualifiedCall, args []any) (any, error) {
	key, ok := toKey(args[0])
	if !ok {
		return nil, TypeError{Want: "{Module, :function, arity}", Got: args[0], Meta: n.Meta}
	}
	list, ok := args[1].([]any)
	if !ok {
		return nil, TypeError{Want: "argument list", Got: args[1], Meta: n.Meta}
	}
	var deps dispatch.Map
	switch m := args[2].(type) {
	case nil:
	case dispatch.Map:
		deps = m
	default:
		return nil, TypeError{Want: "substitution map", Got: args[2], Meta: n.Meta}
	}
	return in.dispatcher.Dispatch(key, list, deps)
}

func (in *Interpreter) localCall(n *ast.LocalCall, s *Scope) (any, error) {
	args, err := in.evalList(n.Args, s)
	if err != nil {
		return nil, err
	}
	module, ok := s.resolve(n.Function, len(args), func(module string) bool {
		_, ok := in.lookup(dispatch.NewKey(module, n.Function, len(args)))
		return ok
	})
	if !ok {
		return nil, UndefinedLocalError{Function: n.Function, Arity: len(args), Meta: n.Meta}
	}
	key := dispatch.NewKey(module, n.Function, len(args))
	fn, ok := in.lookup(key)
	if !ok {
		return nil, dispatch.UndefinedFunctionError{Key: key}
	}
	return fn(args...)
}

func (in *Interpreter) generic(g *ast.Generic, s *Scope) (any, error) {
	switch g.Tag {
	case ast.TagTuple, ast.TagList:
		return in.evalList(g.Children, s)
	case ast.TagMap:
		if len(g.Children) == 0 {
			return dispatch.Map{}, nil
		}
	}
	return nil, UnsupportedError{What: "form " + strconv.Quote(g.Tag), Meta: g.Meta}
}

// closure turns fn into a callable capturing s.
func (in *Interpreter) closure(fn *ast.Fn, s *Scope) dispatch.Func {
	return func(args ...any) (any, error) {
		for _, c := range fn.Clauses {
			inner := NewEnclosedScope(s)
			if !in.matchArgs(c.Pattern, args, inner) {
				continue
			}
			ok, err := in.guard(c.Guard, inner)
			if err != nil {
				return nil, err
			}
			if ok {
				return in.Eval(c.Body, inner)
			}
		}
		return nil, NoClauseError{Value: args, Meta: fn.Meta}
	}
}

func (in *Interpreter) matchArgs(pattern ast.Node, args []any, s *Scope) bool {
	if g, ok := pattern.(*ast.Generic); ok && g.Tag == ast.TagArgs {
		if len(g.Children) != len(args) {
			return false
		}
		for i, p := range g.Children {
			if !in.match(p, args[i], s) {
				return false
			}
		}
		return true
	}
	if pattern == nil {
		return len(args) == 0
	}
	return len(args) == 1 && in.match(pattern, args[0], s)
}

// clauses runs the first clause whose pattern and guard accept v.
func (in *Interpreter) clauses(cs []ast.Clause, v any, meta ast.Meta, s *Scope) (any, error) {
	for _, c := range cs {
		inner := NewEnclosedScope(s)
		if !in.match(c.Pattern, v, inner) {
			continue
		}
		ok, err := in.guard(c.Guard, inner)
		if err != nil {
			return nil, err
		}
		if ok {
			return in.Eval(c.Body, inner)
		}
	}
	return nil, NoClauseError{Value: v, Meta: meta}
}

func (in *Interpreter) guard(g ast.Node, s *Scope) (bool, error) {
	if g == nil {
		return true, nil
	}
	v, err := in.Eval(g, s)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	return ok && b, nil
}

// match binds pattern against v in s. Variables starting with an
// underscore match anything without binding.
func (in *Interpreter) match(pattern ast.Node, v any, s *Scope) bool {
	switch p := pattern.(type) {
	case nil:
		return true
	case *ast.Variable:
		if p.Name == "" || p.Name[0] == '_' {
			return true
		}
		s.Set(p.Name, v)
		return true
	case *ast.Literal:
		want, err := literal(p)
		return err == nil && reflect.DeepEqual(want, v)
	case *ast.Generic:
		if p.Tag != ast.TagTuple && p.Tag != ast.TagList {
			return false
		}
		elems, ok := v.([]any)
		if !ok || len(elems) != len(p.Children) {
			return false
		}
		for i, c := range p.Children {
			if !in.match(c, elems[i], s) {
				return false
			}
		}
		return true
	}
	return false
}

// try evaluates the body; an error is offered to rescue then catch clauses,
// a value to the else clauses.
func (in *Interpreter) try(t *ast.TryBlock, s *Scope) (any, error) {
	v, err := in.Eval(t.Body, NewEnclosedScope(s))
	if err != nil {
		handlers := append(t.Clauses(ast.Rescue), t.Clauses(ast.Catch)...)
		if len(handlers) == 0 {
			return nil, err
		}
		res, herr := in.clauses(handlers, err, t.Meta, s)
		if _, unmatched := herr.(NoClauseError); unmatched {
			return nil, err
		}
		return res, herr
	}
	if elses := t.Clauses(ast.Else); len(elses) > 0 {
		return in.clauses(elses, v, t.Meta, s)
	}
	return v, nil
}
