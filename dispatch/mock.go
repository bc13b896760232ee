package dispatch

// Const returns a Func for key that ignores its arguments and returns v.
// It still enforces the key's arity.
func Const(key Key, v any) Func {
	return func(args ...any) (any, error) {
		if len(args) != key.Arity {
			return nil, ArityError{Key: key, Got: len(args)}
		}
		return v, nil
	}
}

// Mock builds a substitution map from a short-hand table.
//
// Table keys use reference syntax, with or without the capture operator:
//
//	deps, err := dispatch.Mock(map[string]any{
//		"&Calc.sum/2":  100,
//		"Calc.to_int/1": dispatch.Func(func(args ...any) (any, error) { ... }),
//	})
//
// A Func value (or a func(...any) (any, error)) is used as the substitute
// directly; any other value, nil included, becomes Const(key, value).
// Two references that parse to the same key yield a DuplicateKeyError.
func Mock(table map[string]any) (Map, error) {
	m := make(Map, len(table))
	for ref, v := range table {
		key, err := ParseRef(ref)
		if err != nil {
			return nil, err
		}

		var fn Func
		switch v := v.(type) {
		case Func:
			fn = v
		case func(...any) (any, error):
			fn = v
		default:
			fn = Const(key, v)
		}
		if fn == nil {
			return nil, ErrNilFunc
		}
		if _, err := m.With(key, fn); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustMock is like Mock but panics on error.
func MustMock(table map[string]any) Map {
	m, err := Mock(table)
	if err != nil {
		panic(err)
	}
	return m
}

// Validate checks that every key in deps is one of used, the keys a
// rewritten function actually dispatches. It returns an UnusedKeyError
// listing the offenders, which almost always means a typo or a stale test.
func Validate(deps Map, used []Key) error {
	known := make(map[Key]struct{}, len(used))
	for _, k := range used {
		known[k] = struct{}{}
	}
	var unused []Key
	for k := range deps {
		if _, ok := known[k]; !ok {
			unused = append(unused, k)
		}
	}
	if len(unused) == 0 {
		return nil
	}
	return UnusedKeyError{Keys: SortKeys(unused)}
}
