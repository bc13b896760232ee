// Command rewire rewrites function definitions for call injection.
//
// It is the build-time entry point of the project: it reads function
// definitions (name, parameters and body as a syntax tree, in JSON or YAML),
// passes each one through inject.Define and writes the rewritten definitions
// next to the input or into -out.
//
// Usage
//
//	rewire [-config rewire.yaml] [-out dir] [-format json|text] [-j N] [-check] [-v] file...
//
// Input format
//
//	definitions:
//	  - name: sum
//	    params:
//	      - {kind: var, name: a}
//	      - {kind: var, name: b}
//	    body:
//	      kind: call
//	      module: Calc
//	      function: sum
//	      args:
//	        - {kind: var, name: a}
//	        - {kind: var, name: b}
//
// Every definition gets a trailing parameter "deps \\ %{}" (see map_var in
// package config) and every call to a non-excluded module in its body goes
// through Rewire.Dispatch.dispatch. The output also lists, per definition,
// the substitution keys it dispatches, so test suites can reject maps that
// substitute functions the body never calls.
//
// Output
//
//   - -format json (default): <name>.rewired.json holding the rewritten
//     definitions in the input's node format.
//   - -format text: <name>.rewired.txt with one "def ... do ... end" line per
//     definition followed by its keys.
//
// Files are processed concurrently (-j, default GOMAXPROCS). Output is
// written atomically (temp file + rename); a file with any failing definition
// produces no output at all.
//
// Failure
//
// A definition whose body contains a top-level import cannot be rewritten;
// rewire reports "file: def name: inject: import Calc at line N: ..." and
// exits 1. Usage and configuration errors exit 2. -check rewrites without
// writing anything, for use in CI.
package main
