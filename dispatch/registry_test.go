package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constFunc(v any) Func {
	return func(...any) (any, error) { return v, nil }
}

//
// -----------------------------------------------------------------------------
// NewMapRegistry / Provide
// -----------------------------------------------------------------------------

// TestNewMapRegistry_Empty verifies NewMapRegistry initializes a non-nil registry with an empty map.
func TestNewMapRegistry_Empty(t *testing.T) {
	t.Parallel()

	r := NewMapRegistry()
	require.NotNil(t, r)
	require.NotNil(t, r.items)
	assert.Len(t, r.items, 0)
	assert.Empty(t, r.Keys())
}

// TestProvide_ChainsAndStores verifies Provide stores functions and returns the same registry for chaining.
func TestProvide_ChainsAndStores(t *testing.T) {
	t.Parallel()

	r := NewMapRegistry()
	a, b := NewKey("Calc", "a", 0), NewKey("Calc", "b", 0)

	ret := r.Provide(b, constFunc(2)).Provide(a, constFunc(1))
	require.Same(t, r, ret)

	fn, ok := r.Lookup(a)
	require.True(t, ok)
	got, err := fn()
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	assert.Equal(t, []Key{a, b}, r.Keys())
}

// TestProvide_NilRemoves verifies that providing a nil function deletes the key.
func TestProvide_NilRemoves(t *testing.T) {
	t.Parallel()

	k := NewKey("Calc", "a", 0)
	r := NewMapRegistry().Provide(k, constFunc(1)).Provide(k, nil)

	_, ok := r.Lookup(k)
	assert.False(t, ok)
}

// TestProvideRef verifies reference syntax keys, and that a malformed reference panics.
func TestProvideRef(t *testing.T) {
	t.Parallel()

	r := NewMapRegistry().ProvideRef("&Calc.sum/2", constFunc(3))
	_, ok := r.Lookup(NewKey("Calc", "sum", 2))
	assert.True(t, ok)

	assert.Panics(t, func() { r.ProvideRef("Calc.sum", constFunc(3)) })
}

//
// -----------------------------------------------------------------------------
// Lookup / MustLookup
// -----------------------------------------------------------------------------

// TestLookup_Missing verifies Lookup returns (nil,false) for missing keys and on a nil registry.
func TestLookup_Missing(t *testing.T) {
	t.Parallel()

	fn, ok := NewMapRegistry().Lookup(NewKey("Calc", "x", 1))
	assert.False(t, ok)
	assert.Nil(t, fn)

	var nilReg *MapRegistry
	fn, ok = nilReg.Lookup(NewKey("Calc", "x", 1))
	assert.False(t, ok)
	assert.Nil(t, fn)
}

// TestMustLookup verifies MustLookup returns present functions and panics with the key otherwise.
func TestMustLookup(t *testing.T) {
	t.Parallel()

	k := NewKey("Calc", "x", 1)
	r := NewMapRegistry().Provide(k, constFunc(1))
	assert.NotNil(t, r.MustLookup(k))

	assert.PanicsWithError(t, "dispatch: registry missing Calc.y/1", func() {
		r.MustLookup(NewKey("Calc", "y", 1))
	})
}

// TestRegistryFunc verifies the function adapter satisfies Registry.
func TestRegistryFunc(t *testing.T) {
	t.Parallel()

	var reg Registry = RegistryFunc(func(k Key) (Func, bool) {
		return constFunc(k.Function), k.Module == "Calc"
	})

	_, ok := reg.Lookup(NewKey("Calc", "x", 0))
	assert.True(t, ok)
	_, ok = reg.Lookup(NewKey("Other", "x", 0))
	assert.False(t, ok)
}
