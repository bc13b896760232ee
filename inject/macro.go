package inject

import "github.com/sghaida/rewire/ast"

// scopeMacroCall rewrites a compile-time-only call Mod.macro(args) into
//
//	(import Mod, only: [macro: n]; macro(args))
//
// The import lives inside the block, so it reaches only this call and cannot
// shadow names in sibling expressions. It is a local import and therefore
// never a ModifierError, including when the result is rewritten again.
func scopeMacroCall(call *ast.QualifiedCall, args []ast.Node) *ast.Block {
	meta := call.Meta
	return &ast.Block{
		Meta: meta,
		Exprs: []ast.Node{
			&ast.ImportDirective{
				Meta:   meta,
				Module: call.Module,
				Scope:  ast.Local,
				Only:   []ast.FunRef{{Function: call.Function, Arity: len(call.Args)}},
			},
			&ast.LocalCall{Meta: meta, Function: call.Function, Args: args},
		},
	}
}
