// Package dispatch is the run-time half of call injection.
//
// A function body rewritten by package inject no longer calls its
// collaborators directly. Every qualified call Mod.fun(a, b) becomes
//
//	Rewire.Dispatch.dispatch({Mod, :fun, 2}, [a, b], deps)
//
// and this package answers that call: if deps holds a substitute for the
// key (Mod, fun, 2) the substitute runs, otherwise the real function does.
//
// The package provides:
//
//   - Key: the (module, function, arity) substitution key and its reference
//     syntax "Mod.fun/2" (ParseRef).
//   - Func and Map: substitute functions and the substitution map handed to a
//     rewritten function as its trailing argument.
//   - Registry / MapRegistry: where real functions are found. Go has no way to
//     call a function by name, so real implementations are registered once at
//     start-up.
//   - Dispatcher: the lookup-and-fallback step.
//   - Mock: builds a Map from a short-hand table, wrapping plain values in
//     constant functions of the right arity.
//   - Validate: rejects maps that substitute functions the body never calls.
//
// Dispatch keeps no state of its own. A Dispatcher may be shared by any number
// of goroutines as long as its Registry is not modified concurrently.
//
// Import
//
//	"github.com/sghaida/rewire/dispatch"
package dispatch
