package dispatch

// Func is an invocable function value: a real implementation or a substitute.
// Arguments arrive in call-site order.
type Func func(args ...any) (any, error)

// Map is the substitution map passed to a rewritten function.
//
// A nil Map is valid and substitutes nothing.
type Map map[Key]Func

// With adds a substitute for key and returns the map for chaining.
//
// It fails if fn is nil (ErrNilFunc) or if key already has a substitute
// (DuplicateKeyError); the map is left unchanged in both cases.
func (m Map) With(key Key, fn Func) (Map, error) {
	if fn == nil {
		return m, ErrNilFunc
	}
	if m == nil {
		m = make(Map)
	}
	if _, exists := m[key]; exists {
		return m, DuplicateKeyError{Key: key}
	}
	m[key] = fn
	return m, nil
}

// Has reports whether key has a substitute.
func (m Map) Has(key Key) bool {
	_, ok := m[key]
	return ok
}

// Keys returns the substituted keys in sorted order.
func (m Map) Keys() []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return SortKeys(keys)
}

// Clone returns a shallow copy. Adding to the copy does not affect m.
func (m Map) Clone() Map {
	cp := make(Map, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// Dispatcher resolves rewritten calls: substitute first, real function second.
type Dispatcher struct {
	real Registry
}

// New returns a Dispatcher that falls back to real for keys without a
// substitute. A nil real registry makes every unsubstituted call fail with
// UndefinedFunctionError.
func New(real Registry) *Dispatcher {
	return &Dispatcher{real: real}
}

// Dispatch invokes the function for key with args.
//
// If deps has an entry for key it is called; otherwise the real function
// from the registry is. Arguments are passed through in order and whatever
// the chosen function returns, including its error, is returned unchanged.
// len(args) must equal key.Arity.
func (d *Dispatcher) Dispatch(key Key, args []any, deps Map) (any, error) {
	if d == nil {
		return nil, ErrNilDispatcher
	}
	if len(args) != key.Arity {
		return nil, ArityError{Key: key, Got: len(args)}
	}
	if fn, ok := deps[key]; ok && fn != nil {
		return fn(args...)
	}
	if d.real != nil {
		if fn, ok := d.real.Lookup(key); ok && fn != nil {
			return fn(args...)
		}
	}
	return nil, UndefinedFunctionError{Key: key}
}
