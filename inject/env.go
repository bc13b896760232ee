package inject

import "github.com/sghaida/rewire/dispatch"

// Env is the compile-time resolution context at the call site.
//
// It answers one question: is Module.function/arity a macro, i.e. something
// produced by expansion rather than an invocable value? Such calls cannot be
// deferred to a run-time lookup.
type Env interface {
	IsMacro(module, function string, arity int) bool
}

// EnvFunc adapts a plain function to the Env interface.
type EnvFunc func(module, function string, arity int) bool

// IsMacro implements Env.
func (f EnvFunc) IsMacro(module, function string, arity int) bool {
	return f(module, function, arity)
}

// NoMacros is an Env in which nothing is a macro.
var NoMacros Env = EnvFunc(func(string, string, int) bool { return false })

// MacroTable is an Env backed by an explicit set of macro signatures.
type MacroTable struct {
	items map[dispatch.Key]struct{}
}

// NewMacroTable returns an empty MacroTable.
func NewMacroTable() *MacroTable {
	return &MacroTable{items: map[dispatch.Key]struct{}{}}
}

// Provide records module.function/arity as a macro and returns the table for
// chaining.
func (t *MacroTable) Provide(module, function string, arity int) *MacroTable {
	t.items[dispatch.NewKey(module, function, arity)] = struct{}{}
	return t
}

// ProvideRef records a macro given in reference syntax ("Calc.macro_sum/2").
func (t *MacroTable) ProvideRef(ref string) (*MacroTable, error) {
	k, err := dispatch.ParseRef(ref)
	if err != nil {
		return t, err
	}
	t.items[k] = struct{}{}
	return t, nil
}

// IsMacro implements Env.
func (t *MacroTable) IsMacro(module, function string, arity int) bool {
	if t == nil {
		return false
	}
	_, ok := t.items[dispatch.NewKey(module, function, arity)]
	return ok
}

// Len returns the number of recorded macros.
func (t *MacroTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}
