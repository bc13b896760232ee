package dispatch

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

const (
	// Module is the module name rewritten calls are routed through.
	Module = "Rewire.Dispatch"

	// Function is the dispatcher entry point called by rewritten code.
	Function = "dispatch"
)

// Key identifies one injectable call signature.
//
// Two calls with the same module, function and arity share a key even when
// their arguments differ.
type Key struct {
	Module   string
	Function string
	Arity    int
}

// NewKey is shorthand for a Key literal.
func NewKey(module, function string, arity int) Key {
	return Key{Module: module, Function: function, Arity: arity}
}

// String returns the reference syntax Module.function/arity.
func (k Key) String() string {
	return k.Module + "." + k.Function + "/" + strconv.Itoa(k.Arity)
}

// Compare orders keys by module, then function, then arity.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.Module, o.Module); c != 0 {
		return c
	}
	if c := cmp.Compare(k.Function, o.Function); c != 0 {
		return c
	}
	return cmp.Compare(k.Arity, o.Arity)
}

// SortKeys sorts keys in place and drops duplicates.
func SortKeys(keys []Key) []Key {
	slices.SortFunc(keys, Key.Compare)
	return slices.Compact(keys)
}

// ParseRef parses a function reference of the form Module.function/arity.
// A leading capture operator (&) is accepted and ignored, so both
// "Calc.sum/2" and "&Calc.sum/2" yield the same key. The module may itself
// contain dots ("Kernel.Utils.destructure/2"); the last dot separates the
// function name.
func ParseRef(ref string) (Key, error) {
	s := strings.TrimPrefix(strings.TrimSpace(ref), "&")

	slash := strings.LastIndexByte(s, '/')
	if slash < 0 {
		return Key{}, InvalidRefError{Ref: ref}
	}
	arity, err := strconv.Atoi(s[slash+1:])
	if err != nil || arity < 0 {
		return Key{}, InvalidRefError{Ref: ref}
	}

	head := s[:slash]
	dot := strings.LastIndexByte(head, '.')
	if dot <= 0 || dot == len(head)-1 {
		return Key{}, InvalidRefError{Ref: ref}
	}
	return Key{Module: head[:dot], Function: head[dot+1:], Arity: arity}, nil
}

// MustParseRef is like ParseRef but panics on malformed input.
// Intended for package-level tables and tests.
func MustParseRef(ref string) Key {
	k, err := ParseRef(ref)
	if err != nil {
		panic(err)
	}
	return k
}
