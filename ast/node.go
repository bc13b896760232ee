// Package ast defines the syntax tree consumed and produced by the injector.
//
// The tree is a closed set of node shapes. Every variant implements Node
// through an unexported marker method, so code outside this package can match
// on the variants but cannot add new ones.
//
// Ownership is strictly tree-shaped: a node owns its children, there are no
// back-references and no cycles. Rewriters never mutate a tree in place; they
// build new parents and may share unchanged subtrees with their input.
package ast

// Meta carries source position data. Rewriters copy it verbatim.
type Meta struct {
	Line   int `json:"line,omitempty" yaml:"line,omitempty"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// Node is one element of the syntax tree.
type Node interface {
	// Position returns the node's source position.
	Position() Meta
	node()
}

// LiteralKind tags the type of a Literal.
type LiteralKind uint8

const (
	Int LiteralKind = iota
	Float
	String
	Atom
	Bool
	Nil
	// Alias is a module name used as a value, e.g. Calc.
	Alias
)

var literalKindNames = [...]string{
	Int:    "int",
	Float:  "float",
	String: "string",
	Atom:   "atom",
	Bool:   "bool",
	Nil:    "nil",
	Alias:  "alias",
}

func (k LiteralKind) String() string {
	if int(k) < len(literalKindNames) {
		return literalKindNames[k]
	}
	return "unknown"
}

// Literal is an opaque constant. Value holds the source text: the digits of a
// number, the unquoted contents of a string, the name of an atom without its
// leading colon, "true"/"false", or the module name of an alias.
type Literal struct {
	Meta
	Kind  LiteralKind
	Value string
}

// Variable is a reference to a bound name.
type Variable struct {
	Meta
	Name string
}

// QualifiedCall is a call to Function in Module with positional arguments.
type QualifiedCall struct {
	Meta
	Module   string
	Function string
	Args     []Node
}

// LocalCall is an unqualified call, resolved through imports or the
// enclosing module.
type LocalCall struct {
	Meta
	Function string
	Args     []Node
}

// Capture is a reference to a function value (&Module.function/arity).
// It is never an invocation.
type Capture struct {
	Meta
	Module   string
	Function string
	Arity    int
}

// MemberAccess reads a field from Target.
type MemberAccess struct {
	Meta
	Target Node
	Field  string
}

// ImportScope says how far an ImportDirective reaches.
type ImportScope uint8

const (
	// TopLevel imports affect every following expression of the function body.
	TopLevel ImportScope = iota
	// Local imports are confined to the Block that contains them.
	Local
)

func (s ImportScope) String() string {
	if s == Local {
		return "local"
	}
	return "top_level"
}

// FunRef names one function of a module by name and arity.
type FunRef struct {
	Function string `json:"function" yaml:"function"`
	Arity    int    `json:"arity" yaml:"arity"`
}

// ImportDirective makes the functions of Module callable without
// qualification. When Only is non-empty the import is restricted to the
// listed functions.
type ImportDirective struct {
	Meta
	Module string
	Scope  ImportScope
	Only   []FunRef
}

// OperatorChain is a binary operator application.
type OperatorChain struct {
	Meta
	Op    string
	Left  Node
	Right Node
}

// Clause is one branch of a case, try section or anonymous function.
// Guard is nil when the clause has none.
type Clause struct {
	Meta
	Pattern Node
	Guard   Node
	Body    Node
}

// SectionKind identifies one clause-set of a TryBlock.
type SectionKind uint8

const (
	Rescue SectionKind = iota
	Catch
	Else
)

var sectionKindNames = [...]string{Rescue: "rescue", Catch: "catch", Else: "else"}

func (k SectionKind) String() string {
	if int(k) < len(sectionKindNames) {
		return sectionKindNames[k]
	}
	return "unknown"
}

// TrySection is one clause-set of a TryBlock.
type TrySection struct {
	Kind    SectionKind
	Clauses []Clause
}

// TryBlock is an exception-handling block. Sections are kept in the order
// they were written.
type TryBlock struct {
	Meta
	Body     Node
	Sections []TrySection
}

// Clauses returns the concatenated clauses of every section of kind k,
// in section order.
func (t *TryBlock) Clauses(k SectionKind) []Clause {
	var out []Clause
	for _, s := range t.Sections {
		if s.Kind == k {
			out = append(out, s.Clauses...)
		}
	}
	return out
}

// CaseBlock matches Subject against Clauses in order.
type CaseBlock struct {
	Meta
	Subject Node
	Clauses []Clause
}

// Fn is an anonymous function with one or more clauses.
type Fn struct {
	Meta
	Clauses []Clause
}

// Block is a lexical block. Imports inside a block do not leak out of it.
type Block struct {
	Meta
	Exprs []Node
}

// Common Generic tags.
const (
	TagTuple = "{}"
	TagList  = "[]"
	TagMap   = "%{}"
	// TagDefault marks a parameter with a default value: name \\ default.
	TagDefault = `\\`
	// TagArgs groups the parameters of a multi-argument clause head.
	TagArgs = "args"
)

// Generic is any other compound node. Its children are visited in order.
type Generic struct {
	Meta
	Tag      string
	Children []Node
}

func (m Meta) Position() Meta { return m }

func (*Literal) node()         {}
func (*Variable) node()        {}
func (*QualifiedCall) node()   {}
func (*LocalCall) node()       {}
func (*Capture) node()         {}
func (*MemberAccess) node()    {}
func (*ImportDirective) node() {}
func (*OperatorChain) node()   {}
func (*TryBlock) node()        {}
func (*CaseBlock) node()       {}
func (*Fn) node()              {}
func (*Block) node()           {}
func (*Generic) node()         {}
