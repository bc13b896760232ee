package inject

import "github.com/sghaida/rewire/ast"

// Category is the label the classifier gives a node; it decides how the
// walker treats it.
type Category uint8

const (
	// Compound nodes are rebuilt with rewritten children.
	Compound Category = iota
	// ExclusionPass is a call into an excluded module.
	ExclusionPass
	// InjectableCall is a call that is routed through the dispatcher.
	InjectableCall
	// MacroOnlyCall is a call that only exists at compile time.
	MacroOnlyCall
	// Opaque nodes are returned as they are.
	Opaque
	// LocalImport is an import confined to its block; it is kept as is.
	LocalImport
	// TopLevelImport is an unscoped import; it fails the rewrite.
	TopLevelImport
	// OperatorChain is a binary operator whose operands are rewritten.
	OperatorChain
	// TryBlock is a try whose sections are reordered.
	TryBlock
	// CaseBlock is a case whose subject and clause bodies are rewritten.
	CaseBlock
)

var categoryNames = [...]string{
	Compound:       "compound",
	ExclusionPass:  "exclusion_pass",
	InjectableCall: "injectable_call",
	MacroOnlyCall:  "macro_only_call",
	Opaque:         "opaque",
	LocalImport:    "local_import",
	TopLevelImport: "top_level_import",
	OperatorChain:  "operator_chain",
	TryBlock:       "try_block",
	CaseBlock:      "case_block",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Classify labels n. It has no side effects.
//
// For calls, exclusion is checked first and wins over every other category;
// then env decides between MacroOnlyCall and InjectableCall. A nil policy
// means DefaultPolicy and a nil env means NoMacros.
func Classify(n ast.Node, policy *Policy, env Env) Category {
	switch n := n.(type) {
	case *ast.QualifiedCall:
		if policy.Excluded(n.Module) {
			return ExclusionPass
		}
		if env != nil && env.IsMacro(n.Module, n.Function, len(n.Args)) {
			return MacroOnlyCall
		}
		return InjectableCall
	case *ast.Capture, *ast.MemberAccess, *ast.Literal, *ast.Variable:
		return Opaque
	case *ast.ImportDirective:
		if n.Scope == ast.Local {
			return LocalImport
		}
		return TopLevelImport
	case *ast.OperatorChain:
		return OperatorChain
	case *ast.TryBlock:
		return TryBlock
	case *ast.CaseBlock:
		return CaseBlock
	default:
		// LocalCall, Fn, Block, Generic.
		return Compound
	}
}
