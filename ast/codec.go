package ast

import (
	"encoding/json"
	"strconv"
)

// Wire is the serialized form of a Node. It carries both json and yaml tags so
// the same document shape can be read from either format; which fields are
// meaningful depends on Kind.
type Wire struct {
	Kind   string `json:"kind" yaml:"kind"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`

	// literal
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// var
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// call, local_call, capture, import
	Module   string   `json:"module,omitempty" yaml:"module,omitempty"`
	Function string   `json:"function,omitempty" yaml:"function,omitempty"`
	Arity    int      `json:"arity,omitempty" yaml:"arity,omitempty"`
	Args     []*Wire  `json:"args,omitempty" yaml:"args,omitempty"`
	Scope    string   `json:"scope,omitempty" yaml:"scope,omitempty"`
	Only     []FunRef `json:"only,omitempty" yaml:"only,omitempty"`

	// access
	Target *Wire  `json:"target,omitempty" yaml:"target,omitempty"`
	Field  string `json:"field,omitempty" yaml:"field,omitempty"`

	// op
	Op    string `json:"op,omitempty" yaml:"op,omitempty"`
	Left  *Wire  `json:"left,omitempty" yaml:"left,omitempty"`
	Right *Wire  `json:"right,omitempty" yaml:"right,omitempty"`

	// try, case, fn
	Body     *Wire         `json:"body,omitempty" yaml:"body,omitempty"`
	Sections []WireSection `json:"sections,omitempty" yaml:"sections,omitempty"`
	Subject  *Wire         `json:"subject,omitempty" yaml:"subject,omitempty"`
	Clauses  []WireClause  `json:"clauses,omitempty" yaml:"clauses,omitempty"`

	// block, generic
	Exprs    []*Wire `json:"exprs,omitempty" yaml:"exprs,omitempty"`
	Tag      string  `json:"tag,omitempty" yaml:"tag,omitempty"`
	Children []*Wire `json:"children,omitempty" yaml:"children,omitempty"`
}

// WireClause is the serialized form of a Clause.
type WireClause struct {
	Line    int   `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int   `json:"column,omitempty" yaml:"column,omitempty"`
	Pattern *Wire `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Guard   *Wire `json:"guard,omitempty" yaml:"guard,omitempty"`
	Body    *Wire `json:"body" yaml:"body"`
}

// WireSection is the serialized form of a TrySection.
type WireSection struct {
	Kind    string       `json:"kind" yaml:"kind"`
	Clauses []WireClause `json:"clauses" yaml:"clauses"`
}

// Wire kinds.
const (
	KindLiteral   = "literal"
	KindVar       = "var"
	KindCall      = "call"
	KindLocalCall = "local_call"
	KindCapture   = "capture"
	KindAccess    = "access"
	KindImport    = "import"
	KindOp        = "op"
	KindTry       = "try"
	KindCase      = "case"
	KindFn        = "fn"
	KindBlock     = "block"
	KindGeneric   = "generic"
)

// UnknownKindError is returned when a serialized node has an unrecognized kind
// or enumeration value.
type UnknownKindError struct {
	Field string
	Kind  string
}

// Error implements the error interface.
func (e UnknownKindError) Error() string {
	// Example: ast: unknown kind "lambda"
	return "ast: unknown " + e.Field + " " + strconv.Quote(e.Kind)
}

// MissingFieldError is returned when a serialized node lacks a required child.
type MissingFieldError struct {
	Kind  string
	Field string
}

// Error implements the error interface.
func (e MissingFieldError) Error() string {
	// Example: ast: op node missing "left"
	return "ast: " + e.Kind + " node missing " + strconv.Quote(e.Field)
}

// Marshal encodes n as indented JSON.
func Marshal(n Node) ([]byte, error) {
	return json.MarshalIndent(ToWire(n), "", "  ")
}

// Unmarshal decodes a JSON document produced by Marshal.
func Unmarshal(data []byte) (Node, error) {
	var w Wire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return FromWire(&w)
}

// ToWire converts n to its serialized form. A nil node maps to nil.
func ToWire(n Node) *Wire {
	if n == nil {
		return nil
	}
	pos := n.Position()
	w := &Wire{Line: pos.Line, Column: pos.Column}
	switch n := n.(type) {
	case *Literal:
		w.Kind, w.Type, w.Value = KindLiteral, n.Kind.String(), n.Value
	case *Variable:
		w.Kind, w.Name = KindVar, n.Name
	case *QualifiedCall:
		w.Kind, w.Module, w.Function, w.Args = KindCall, n.Module, n.Function, toWires(n.Args)
	case *LocalCall:
		w.Kind, w.Function, w.Args = KindLocalCall, n.Function, toWires(n.Args)
	case *Capture:
		w.Kind, w.Module, w.Function, w.Arity = KindCapture, n.Module, n.Function, n.Arity
	case *MemberAccess:
		w.Kind, w.Target, w.Field = KindAccess, ToWire(n.Target), n.Field
	case *ImportDirective:
		w.Kind, w.Module, w.Scope, w.Only = KindImport, n.Module, n.Scope.String(), n.Only
	case *OperatorChain:
		w.Kind, w.Op, w.Left, w.Right = KindOp, n.Op, ToWire(n.Left), ToWire(n.Right)
	case *TryBlock:
		w.Kind, w.Body = KindTry, ToWire(n.Body)
		for _, s := range n.Sections {
			w.Sections = append(w.Sections, WireSection{Kind: s.Kind.String(), Clauses: toWireClauses(s.Clauses)})
		}
	case *CaseBlock:
		w.Kind, w.Subject, w.Clauses = KindCase, ToWire(n.Subject), toWireClauses(n.Clauses)
	case *Fn:
		w.Kind, w.Clauses = KindFn, toWireClauses(n.Clauses)
	case *Block:
		w.Kind, w.Exprs = KindBlock, toWires(n.Exprs)
	case *Generic:
		w.Kind, w.Tag, w.Children = KindGeneric, n.Tag, toWires(n.Children)
	default:
		panic("unreachable")
	}
	return w
}

func toWires(ns []Node) []*Wire {
	if ns == nil {
		return nil
	}
	out := make([]*Wire, len(ns))
	for i, n := range ns {
		out[i] = ToWire(n)
	}
	return out
}

func toWireClauses(cs []Clause) []WireClause {
	if cs == nil {
		return nil
	}
	out := make([]WireClause, len(cs))
	for i, c := range cs {
		out[i] = WireClause{
			Line:    c.Line,
			Column:  c.Column,
			Pattern: ToWire(c.Pattern),
			Guard:   ToWire(c.Guard),
			Body:    ToWire(c.Body),
		}
	}
	return out
}

// FromWire converts a serialized node back into a Node.
func FromWire(w *Wire) (Node, error) {
	if w == nil {
		return nil, MissingFieldError{Kind: "document", Field: "kind"}
	}
	meta := Meta{Line: w.Line, Column: w.Column}
	switch w.Kind {
	case KindLiteral:
		k, err := parseLiteralKind(w.Type)
		if err != nil {
			return nil, err
		}
		return &Literal{Meta: meta, Kind: k, Value: w.Value}, nil
	case KindVar:
		return &Variable{Meta: meta, Name: w.Name}, nil
	case KindCall:
		args, err := fromWires(w.Args)
		if err != nil {
			return nil, err
		}
		return &QualifiedCall{Meta: meta, Module: w.Module, Function: w.Function, Args: args}, nil
	case KindLocalCall:
		args, err := fromWires(w.Args)
		if err != nil {
			return nil, err
		}
		return &LocalCall{Meta: meta, Function: w.Function, Args: args}, nil
	case KindCapture:
		return &Capture{Meta: meta, Module: w.Module, Function: w.Function, Arity: w.Arity}, nil
	case KindAccess:
		target, err := required(w.Kind, "target", w.Target)
		if err != nil {
			return nil, err
		}
		return &MemberAccess{Meta: meta, Target: target, Field: w.Field}, nil
	case KindImport:
		scope := TopLevel
		switch w.Scope {
		case "", "top_level":
		case "local":
			scope = Local
		default:
			return nil, UnknownKindError{Field: "import scope", Kind: w.Scope}
		}
		return &ImportDirective{Meta: meta, Module: w.Module, Scope: scope, Only: w.Only}, nil
	case KindOp:
		left, err := required(w.Kind, "left", w.Left)
		if err != nil {
			return nil, err
		}
		right, err := required(w.Kind, "right", w.Right)
		if err != nil {
			return nil, err
		}
		return &OperatorChain{Meta: meta, Op: w.Op, Left: left, Right: right}, nil
	case KindTry:
		body, err := required(w.Kind, "body", w.Body)
		if err != nil {
			return nil, err
		}
		t := &TryBlock{Meta: meta, Body: body}
		for _, s := range w.Sections {
			k, err := parseSectionKind(s.Kind)
			if err != nil {
				return nil, err
			}
			cs, err := fromWireClauses(s.Clauses)
			if err != nil {
				return nil, err
			}
			t.Sections = append(t.Sections, TrySection{Kind: k, Clauses: cs})
		}
		return t, nil
	case KindCase:
		subject, err := required(w.Kind, "subject", w.Subject)
		if err != nil {
			return nil, err
		}
		cs, err := fromWireClauses(w.Clauses)
		if err != nil {
			return nil, err
		}
		return &CaseBlock{Meta: meta, Subject: subject, Clauses: cs}, nil
	case KindFn:
		cs, err := fromWireClauses(w.Clauses)
		if err != nil {
			return nil, err
		}
		return &Fn{Meta: meta, Clauses: cs}, nil
	case KindBlock:
		exprs, err := fromWires(w.Exprs)
		if err != nil {
			return nil, err
		}
		return &Block{Meta: meta, Exprs: exprs}, nil
	case KindGeneric:
		children, err := fromWires(w.Children)
		if err != nil {
			return nil, err
		}
		return &Generic{Meta: meta, Tag: w.Tag, Children: children}, nil
	default:
		return nil, UnknownKindError{Field: "kind", Kind: w.Kind}
	}
}

func required(kind, field string, w *Wire) (Node, error) {
	if w == nil {
		return nil, MissingFieldError{Kind: kind, Field: field}
	}
	return FromWire(w)
}

// optional decodes a child that may be absent.
func optional(w *Wire) (Node, error) {
	if w == nil {
		return nil, nil
	}
	return FromWire(w)
}

func fromWires(ws []*Wire) ([]Node, error) {
	if ws == nil {
		return nil, nil
	}
	out := make([]Node, len(ws))
	for i, w := range ws {
		n, err := FromWire(w)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func fromWireClauses(ws []WireClause) ([]Clause, error) {
	if ws == nil {
		return nil, nil
	}
	out := make([]Clause, len(ws))
	for i, w := range ws {
		pattern, err := optional(w.Pattern)
		if err != nil {
			return nil, err
		}
		guard, err := optional(w.Guard)
		if err != nil {
			return nil, err
		}
		body, err := required("clause", "body", w.Body)
		if err != nil {
			return nil, err
		}
		out[i] = Clause{
			Meta:    Meta{Line: w.Line, Column: w.Column},
			Pattern: pattern,
			Guard:   guard,
			Body:    body,
		}
	}
	return out, nil
}

func parseLiteralKind(s string) (LiteralKind, error) {
	for k, name := range literalKindNames {
		if name == s {
			return LiteralKind(k), nil
		}
	}
	return 0, UnknownKindError{Field: "literal type", Kind: s}
}

func parseSectionKind(s string) (SectionKind, error) {
	for k, name := range sectionKindNames {
		if name == s {
			return SectionKind(k), nil
		}
	}
	return 0, UnknownKindError{Field: "try section", Kind: s}
}
