// Package inject rewrites function bodies so that their calls to other
// modules can be substituted at run time, without reflection, generated
// interfaces or changes to the callee.
//
// Given a body and the name of a substitution-map variable (conventionally the
// function's trailing parameter, deps), every qualified call
//
//	Calc.to_int(a)
//
// is replaced by a call through the run-time dispatcher
//
//	Rewire.Dispatch.dispatch({Calc, :to_int, 1}, [a], deps)
//
// which runs deps' substitute for {Calc, :to_int, 1} when there is one and the
// real Calc.to_int otherwise (see package dispatch).
//
// How each node is treated:
//
//   - Calls into excluded modules (language built-ins, the dispatcher itself)
//     keep their target. Their arguments are still rewritten.
//   - Function captures (&Calc.sum/2), member accesses (conn.assigns),
//     literals and variables are returned unchanged.
//   - Calls that only exist at compile time (macros, as reported by Env)
//     cannot be looked up at run time. They become a block holding an import
//     restricted to that one macro plus the unqualified call.
//   - A top-level import in the body fails the whole rewrite with a
//     ModifierError: unqualified names after it could resolve to a module other
//     than the one recorded in a substitution key.
//   - try blocks come out with their sections in the fixed order
//     rescue, catch, else.
//   - Everything else is rebuilt with rewritten children.
//
// The rewrite is a pure function of its inputs. It never mutates the input
// tree; output parents are freshly allocated and unchanged leaves are shared.
// Independent trees can be rewritten concurrently without coordination.
//
// Import
//
//	"github.com/sghaida/rewire/inject"
package inject
