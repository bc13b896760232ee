package inject

import "github.com/sghaida/rewire/ast"

// Rewriter holds the configuration of a rewrite: which modules are excluded
// and how macros are recognized. It keeps no state between calls and may be
// shared by goroutines.
type Rewriter struct {
	policy *Policy
	env    Env
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithPolicy sets the exclusion policy. The default is DefaultPolicy.
func WithPolicy(p *Policy) Option {
	return func(r *Rewriter) {
		if p != nil {
			r.policy = p
		}
	}
}

// WithEnv sets the compile-time environment. The default is NoMacros.
func WithEnv(env Env) Option {
	return func(r *Rewriter) {
		if env != nil {
			r.env = env
		}
	}
}

// New returns a Rewriter configured by opts.
func New(opts ...Option) *Rewriter {
	r := &Rewriter{policy: DefaultPolicy(), env: NoMacros}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the exclusion policy in use.
func (r *Rewriter) Policy() *Policy { return r.policy }

// Rewrite is New(WithEnv(env)).Rewrite(root, mapVar).
func Rewrite(root ast.Node, mapVar string, env Env) (ast.Node, error) {
	return New(WithEnv(env)).Rewrite(root, mapVar)
}

// Rewrite returns root with every injectable call routed through the
// dispatcher, passing mapVar as the substitution map.
//
// The first top-level import met during the walk aborts the rewrite with a
// ModifierError and a nil tree.
func (r *Rewriter) Rewrite(root ast.Node, mapVar string) (ast.Node, error) {
	if mapVar == "" {
		return nil, ErrEmptyMapVar
	}
	w := walker{policy: r.policy, env: r.env, mapVar: mapVar}
	out, err := w.walk(root)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// walker is the state of one Rewrite call.
type walker struct {
	policy *Policy
	env    Env
	mapVar string
}

func (w *walker) walk(n ast.Node) (ast.Node, error) {
	if n == nil {
		return nil, nil
	}

	switch Classify(n, w.policy, w.env) {
	case LocalImport:
		return n, nil

	case Opaque:
		if err := checkImports(n); err != nil {
			return nil, err
		}
		return n, nil

	case TopLevelImport:
		imp := n.(*ast.ImportDirective)
		return nil, ModifierError{Module: imp.Module, Meta: imp.Meta}

	case ExclusionPass:
		call := n.(*ast.QualifiedCall)
		args, err := w.walkList(call.Args)
		if err != nil {
			return nil, err
		}
		out := *call
		out.Args = args
		return &out, nil

	case InjectableCall:
		call := n.(*ast.QualifiedCall)
		args, err := w.walkList(call.Args)
		if err != nil {
			return nil, err
		}
		return emit(call, args, w.mapVar), nil

	case MacroOnlyCall:
		call := n.(*ast.QualifiedCall)
		args, err := w.walkList(call.Args)
		if err != nil {
			return nil, err
		}
		return scopeMacroCall(call, args), nil

	case OperatorChain:
		op := n.(*ast.OperatorChain)
		left, err := w.walk(op.Left)
		if err != nil {
			return nil, err
		}
		right, err := w.walk(op.Right)
		if err != nil {
			return nil, err
		}
		out := *op
		out.Left, out.Right = left, right
		return &out, nil

	case TryBlock:
		return w.canonicalize(n.(*ast.TryBlock))

	case CaseBlock:
		cb := n.(*ast.CaseBlock)
		subject, err := w.walk(cb.Subject)
		if err != nil {
			return nil, err
		}
		clauses, err := w.walkClauses(cb.Clauses)
		if err != nil {
			return nil, err
		}
		out := *cb
		out.Subject, out.Clauses = subject, clauses
		return &out, nil

	default:
		return w.compound(n)
	}
}

// compound rebuilds the nodes that carry no rewrite rule of their own.
func (w *walker) compound(n ast.Node) (ast.Node, error) {
	switch n := n.(type) {
	case *ast.LocalCall:
		args, err := w.walkList(n.Args)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Args = args
		return &out, nil
	case *ast.Block:
		exprs, err := w.walkList(n.Exprs)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Exprs = exprs
		return &out, nil
	case *ast.Fn:
		clauses, err := w.walkClauses(n.Clauses)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Clauses = clauses
		return &out, nil
	case *ast.Generic:
		children, err := w.walkList(n.Children)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Children = children
		return &out, nil
	}
	return n, nil
}

func (w *walker) walkList(ns []ast.Node) ([]ast.Node, error) {
	if ns == nil {
		return nil, nil
	}
	out := make([]ast.Node, len(ns))
	for i, n := range ns {
		r, err := w.walk(n)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// walkClauses rewrites clause bodies. Patterns and guards are kept as they
// are: they are matched, not evaluated as calls. They are still checked for
// top-level imports.
func (w *walker) walkClauses(cs []ast.Clause) ([]ast.Clause, error) {
	if cs == nil {
		return nil, nil
	}
	out := make([]ast.Clause, len(cs))
	for i, c := range cs {
		if err := checkImports(c.Pattern); err != nil {
			return nil, err
		}
		if err := checkImports(c.Guard); err != nil {
			return nil, err
		}
		body, err := w.walk(c.Body)
		if err != nil {
			return nil, err
		}
		c.Body = body
		out[i] = c
	}
	return out, nil
}

// checkImports returns a ModifierError for the first top-level import under
// n, in Inspect order. It rewrites nothing.
func checkImports(n ast.Node) error {
	var err error
	ast.Inspect(n, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		if imp, ok := n.(*ast.ImportDirective); ok && imp.Scope == ast.TopLevel {
			err = ModifierError{Module: imp.Module, Meta: imp.Meta}
		}
		return err == nil
	})
	return err
}
