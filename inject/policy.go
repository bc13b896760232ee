package inject

import (
	"slices"

	"github.com/sghaida/rewire/dispatch"
)

// DefaultExcluded lists the modules that are never injection targets: the
// language built-ins, the compile-time reflection modules and the dispatcher.
var DefaultExcluded = []string{
	":erlang",
	"Kernel",
	"Kernel.SpecialForms",
	"Kernel.Utils",
	"Macro",
	"Module",
	"Code",
	dispatch.Module,
}

// Policy is the exclusion set: modules whose calls are never rewritten.
//
// A Policy is immutable once built; With returns a new one. The dispatcher
// module is always part of the set, so rewriting an already rewritten tree is
// a no-op.
type Policy struct {
	modules map[string]struct{}
}

// DefaultPolicy returns a policy excluding DefaultExcluded.
func DefaultPolicy() *Policy { return NewPolicy(DefaultExcluded...) }

// NewPolicy returns a policy excluding exactly modules plus the dispatcher.
func NewPolicy(modules ...string) *Policy {
	p := &Policy{modules: make(map[string]struct{}, len(modules)+1)}
	p.modules[dispatch.Module] = struct{}{}
	for _, m := range modules {
		p.modules[m] = struct{}{}
	}
	return p
}

// With returns a copy of p that also excludes modules.
func (p *Policy) With(modules ...string) *Policy {
	return NewPolicy(append(p.Modules(), modules...)...)
}

// Excluded reports whether calls into module must be left alone.
// A nil policy behaves like DefaultPolicy.
func (p *Policy) Excluded(module string) bool {
	if p == nil {
		return slices.Contains(DefaultExcluded, module)
	}
	_, ok := p.modules[module]
	return ok
}

// Modules returns the excluded modules in sorted order.
func (p *Policy) Modules() []string {
	if p == nil {
		return slices.Sorted(slices.Values(DefaultExcluded))
	}
	out := make([]string, 0, len(p.modules))
	for m := range p.modules {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}
