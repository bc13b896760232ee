package ast

import (
	"strconv"
	"strings"
)

// Format renders n on a single line in Elixir-like surface syntax.
//
// The output is meant for diagnostics, golden files and test assertions; it
// is not a round-trippable source format. Operands that are themselves
// operator chains are parenthesized, so precedence never has to be inferred.
func Format(n Node) string {
	var p printer
	p.node(n)
	return p.b.String()
}

// FormatClause renders a single clause as "pattern when guard -> body".
func FormatClause(c Clause) string {
	var p printer
	p.clause(c)
	return p.b.String()
}

type printer struct {
	b strings.Builder
}

func (p *printer) str(s string) { p.b.WriteString(s) }

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case nil:
		p.str("nil")
	case *Literal:
		p.literal(n)
	case *Variable:
		p.str(n.Name)
	case *QualifiedCall:
		p.str(n.Module)
		p.str(".")
		p.str(n.Function)
		p.args("(", n.Args, ")")
	case *LocalCall:
		p.str(n.Function)
		p.args("(", n.Args, ")")
	case *Capture:
		p.str("&")
		p.str(n.Module)
		p.str(".")
		p.str(n.Function)
		p.str("/")
		p.str(strconv.Itoa(n.Arity))
	case *MemberAccess:
		p.node(n.Target)
		p.str(".")
		p.str(n.Field)
	case *ImportDirective:
		p.str("import ")
		p.str(n.Module)
		if len(n.Only) > 0 {
			p.str(", only: [")
			for i, f := range n.Only {
				if i > 0 {
					p.str(", ")
				}
				p.str(f.Function)
				p.str(": ")
				p.str(strconv.Itoa(f.Arity))
			}
			p.str("]")
		}
	case *OperatorChain:
		p.operand(n.Left)
		p.str(" ")
		p.str(n.Op)
		p.str(" ")
		p.operand(n.Right)
	case *TryBlock:
		p.str("try do ")
		p.node(n.Body)
		for _, s := range n.Sections {
			p.str(" ")
			p.str(s.Kind.String())
			p.str(" ")
			p.clauses(s.Clauses)
		}
		p.str(" end")
	case *CaseBlock:
		p.str("case ")
		p.node(n.Subject)
		p.str(" do ")
		p.clauses(n.Clauses)
		p.str(" end")
	case *Fn:
		p.str("fn ")
		p.clauses(n.Clauses)
		p.str(" end")
	case *Block:
		p.str("(")
		for i, e := range n.Exprs {
			if i > 0 {
				p.str("; ")
			}
			p.node(e)
		}
		p.str(")")
	case *Generic:
		p.generic(n)
	default:
		panic("unreachable")
	}
}

func (p *printer) literal(l *Literal) {
	switch l.Kind {
	case String:
		p.str(strconv.Quote(l.Value))
	case Atom:
		p.str(":")
		p.str(l.Value)
	case Nil:
		p.str("nil")
	default:
		p.str(l.Value)
	}
}

func (p *printer) operand(n Node) {
	if _, ok := n.(*OperatorChain); ok {
		p.str("(")
		p.node(n)
		p.str(")")
		return
	}
	p.node(n)
}

func (p *printer) args(open string, args []Node, close string) {
	p.str(open)
	for i, a := range args {
		if i > 0 {
			p.str(", ")
		}
		p.node(a)
	}
	p.str(close)
}

func (p *printer) clauses(cs []Clause) {
	for i, c := range cs {
		if i > 0 {
			p.str("; ")
		}
		p.clause(c)
	}
}

func (p *printer) clause(c Clause) {
	if c.Pattern != nil {
		p.node(c.Pattern)
		if c.Guard != nil {
			p.str(" when ")
			p.node(c.Guard)
		}
		p.str(" -> ")
	}
	p.node(c.Body)
}

func (p *printer) generic(g *Generic) {
	switch g.Tag {
	case TagTuple:
		p.args("{", g.Children, "}")
	case TagList:
		p.args("[", g.Children, "]")
	case TagMap:
		p.args("%{", g.Children, "}")
	case TagArgs:
		p.args("", g.Children, "")
	case TagDefault:
		if len(g.Children) == 2 {
			p.node(g.Children[0])
			p.str(` \\ `)
			p.node(g.Children[1])
			return
		}
		p.args(g.Tag+"(", g.Children, ")")
	default:
		p.args(g.Tag+"(", g.Children, ")")
	}
}
