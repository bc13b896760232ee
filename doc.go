// Package rewire provides call injection for testing, without reflection,
// generated interfaces or changes to the code under test.
//
// A function body is rewritten once at build time so that every call it makes
// into another module asks a substitution map first and falls back to the real
// function. Tests pass a map; production code passes nothing and runs as
// before.
//
//	def sum(a, b) do Calc.sum(a, b) end
//
// becomes
//
//	def sum(a, b, deps \\ %{}) do
//	  Rewire.Dispatch.dispatch({Calc, :sum, 2}, [a, b], deps)
//	end
//
// Packages:
//   - ast: the syntax tree, its printer and its JSON/YAML form
//   - inject: the rewriter (exclusions, macros, try-block canonicalization,
//     import checks) and the Define entry point
//   - dispatch: the run-time lookup-and-fallback, substitution maps and the
//     Mock builder
//   - interp: an evaluator that runs rewritten trees against real functions
//   - config: rewire.yaml
//   - cmd/rewire: the command-line rewriter
//   - examples/calc: end-to-end example
//
// Import
//
//	"github.com/sghaida/rewire/inject"
package rewire
