package dispatch

import "fmt"

// Registry resolves the real implementation behind a key.
//
// It is consulted only when the substitution map has no entry for the key.
// Implementations must be read-only while dispatches are in flight.
type Registry interface {
	Lookup(key Key) (Func, bool)
}

// RegistryFunc adapts a plain function to the Registry interface.
type RegistryFunc func(key Key) (Func, bool)

// Lookup implements Registry.
func (f RegistryFunc) Lookup(key Key) (Func, bool) { return f(key) }

// MapRegistry is a simple in-memory registry. Populate it before handing it
// to a Dispatcher; it does no locking.
type MapRegistry struct {
	items map[Key]Func
}

func NewMapRegistry() *MapRegistry {
	return &MapRegistry{items: map[Key]Func{}}
}

// Provide stores fn under key and returns the registry for chaining.
// A nil fn removes the key.
func (r *MapRegistry) Provide(key Key, fn Func) *MapRegistry {
	if fn == nil {
		delete(r.items, key)
		return r
	}
	r.items[key] = fn
	return r
}

// ProvideRef is Provide with the key given in reference syntax.
// It panics on a malformed reference.
func (r *MapRegistry) ProvideRef(ref string, fn Func) *MapRegistry {
	return r.Provide(MustParseRef(ref), fn)
}

// Lookup implements Registry.
func (r *MapRegistry) Lookup(key Key) (Func, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.items[key]
	return fn, ok
}

// Keys returns the registered keys in sorted order.
func (r *MapRegistry) Keys() []Key {
	keys := make([]Key, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	return SortKeys(keys)
}

// MustLookup returns the function or panics with a helpful message.
// Useful in examples/tests where a missing registration should fail fast.
func (r *MapRegistry) MustLookup(key Key) Func {
	fn, ok := r.Lookup(key)
	if !ok {
		panic(fmt.Errorf("dispatch: registry missing %s", key))
	}
	return fn
}
