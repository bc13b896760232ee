package ast

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each node. If f returns false the node's children are skipped. Clause
// patterns and guards are visited before clause bodies.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *QualifiedCall:
		inspectList(n.Args, f)
	case *LocalCall:
		inspectList(n.Args, f)
	case *MemberAccess:
		Inspect(n.Target, f)
	case *OperatorChain:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *TryBlock:
		Inspect(n.Body, f)
		for _, s := range n.Sections {
			inspectClauses(s.Clauses, f)
		}
	case *CaseBlock:
		Inspect(n.Subject, f)
		inspectClauses(n.Clauses, f)
	case *Fn:
		inspectClauses(n.Clauses, f)
	case *Block:
		inspectList(n.Exprs, f)
	case *Generic:
		inspectList(n.Children, f)
	}
}

func inspectList(ns []Node, f func(Node) bool) {
	for _, n := range ns {
		Inspect(n, f)
	}
}

func inspectClauses(cs []Clause, f func(Node) bool) {
	for _, c := range cs {
		Inspect(c.Pattern, f)
		Inspect(c.Guard, f)
		Inspect(c.Body, f)
	}
}
