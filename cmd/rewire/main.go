// cmd/rewire/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/sghaida/rewire/ast"
	"github.com/sghaida/rewire/config"
	"github.com/sghaida/rewire/inject"
)

// definitionSpec is one function definition in an input file.
type definitionSpec struct {
	Name   string      `json:"name" yaml:"name"`
	Line   int         `json:"line,omitempty" yaml:"line,omitempty"`
	Params []*ast.Wire `json:"params,omitempty" yaml:"params,omitempty"`
	Body   *ast.Wire   `json:"body" yaml:"body"`

	// Keys is only set on output: the substitution keys the body dispatches.
	Keys []string `json:"keys,omitempty" yaml:"keys,omitempty"`
}

// fileSpec is the document stored in input and output files.
type fileSpec struct {
	Definitions []definitionSpec `json:"definitions" yaml:"definitions"`
}

// options are the parsed command-line flags.
type options struct {
	configPath string
	outDir     string
	format     string
	jobs       int
	check      bool
	verbose    bool
	files      []string
}

// fileResult is the outcome of processing one input file.
type fileResult struct {
	path    string
	outPath string
	defs    int
	errs    []error
}

// run executes the command and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stdout, stderr io.Writer) int {
	opts, ok := parseFlags(args, stderr)
	if !ok {
		return 2
	}

	logger := log.New(io.Discard, "rewire: ", 0)
	if opts.verbose {
		logger.SetOutput(stderr)
	}
	rep := newReporter(stderr)

	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			rep.errorf("%v", err)
			return 2
		}
	}
	rewriter, err := cfg.Rewriter()
	if err != nil {
		rep.errorf("%v", err)
		return 2
	}
	logger.Printf("map variable %q, %d excluded modules", cfg.MapVar, len(rewriter.Policy().Modules()))

	// Definitions are independent trees; files are rewritten in parallel.
	results := make([]fileResult, len(opts.files))
	var g errgroup.Group
	g.SetLimit(opts.jobs)
	for i, path := range opts.files {
		g.Go(func() error {
			results[i] = processFile(path, opts, cfg.MapVar, rewriter)
			return nil
		})
	}
	_ = g.Wait()

	code := 0
	for _, res := range results {
		if len(res.errs) > 0 {
			code = 1
			for _, err := range res.errs {
				rep.errorf("%s: %v", res.path, err)
			}
			continue
		}
		switch {
		case opts.check:
			logger.Printf("%s: %d definitions ok", res.path, res.defs)
		default:
			logger.Printf("%s: %d definitions -> %s", res.path, res.defs, res.outPath)
			_, _ = fmt.Fprintln(stdout, res.outPath)
		}
	}
	return code
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, bool) {
	flags := flag.NewFlagSet("rewire", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts options
	flags.StringVar(&opts.configPath, "config", "", "path to rewire.yaml")
	flags.StringVar(&opts.outDir, "out", "", "output directory (default: next to each input)")
	flags.StringVar(&opts.format, "format", "json", "output format: json or text")
	flags.IntVar(&opts.jobs, "j", runtime.GOMAXPROCS(0), "files processed in parallel")
	flags.BoolVar(&opts.check, "check", false, "rewrite without writing output")
	flags.BoolVar(&opts.verbose, "v", false, "log progress to stderr")

	if err := flags.Parse(args); err != nil {
		return opts, false
	}
	opts.files = flags.Args()

	if len(opts.files) == 0 {
		_, _ = fmt.Fprintln(stderr, "usage: rewire [-config rewire.yaml] [-out dir] [-format json|text] [-j N] [-check] [-v] file...")
		return opts, false
	}
	if opts.format != "json" && opts.format != "text" {
		_, _ = fmt.Fprintf(stderr, "rewire: unknown -format %q (want json or text)\n", opts.format)
		return opts, false
	}
	if opts.jobs < 1 {
		opts.jobs = 1
	}
	return opts, true
}

// processFile rewrites every definition of one input file and, unless
// checking, writes the output. Nothing is written if any definition fails.
func processFile(path string, opts options, mapVar string, rewriter *inject.Rewriter) fileResult {
	res := fileResult{path: path}

	in, err := readFileSpec(path)
	if err != nil {
		res.errs = append(res.errs, err)
		return res
	}

	out := fileSpec{Definitions: make([]definitionSpec, 0, len(in.Definitions))}
	for _, spec := range in.Definitions {
		def, err := toDefinition(spec)
		if err != nil {
			res.errs = append(res.errs, fmt.Errorf("def %s: %w", spec.Name, err))
			continue
		}
		injected, err := rewriter.Define(def, mapVar)
		if err != nil {
			res.errs = append(res.errs, fmt.Errorf("def %s: %w", spec.Name, err))
			continue
		}
		out.Definitions = append(out.Definitions, fromInjected(injected))
	}
	res.defs = len(out.Definitions)
	if len(res.errs) > 0 || opts.check {
		return res
	}

	var data []byte
	if opts.format == "text" {
		data = renderText(out)
	} else {
		if data, err = json.MarshalIndent(out, "", "  "); err != nil {
			res.errs = append(res.errs, err)
			return res
		}
		data = append(data, '\n')
	}

	res.outPath = outputPath(path, opts.outDir, opts.format)
	if err := writeFileAtomic(res.outPath, data, 0o644); err != nil {
		res.errs = append(res.errs, fmt.Errorf("writing %s: %w", res.outPath, err))
	}
	return res
}

// readFileSpec decodes an input file; .yaml and .yml files are read as YAML,
// anything else as JSON.
func readFileSpec(path string) (fileSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileSpec{}, err
	}

	var spec fileSpec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &spec)
	default:
		err = json.Unmarshal(data, &spec)
	}
	if err != nil {
		return fileSpec{}, fmt.Errorf("parsing: %w", err)
	}
	return spec, nil
}

func toDefinition(spec definitionSpec) (inject.Definition, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return inject.Definition{}, fmt.Errorf("missing name")
	}
	body, err := ast.FromWire(spec.Body)
	if err != nil {
		return inject.Definition{}, fmt.Errorf("body: %w", err)
	}
	params := make([]ast.Node, 0, len(spec.Params))
	for i, w := range spec.Params {
		p, err := ast.FromWire(w)
		if err != nil {
			return inject.Definition{}, fmt.Errorf("param %d: %w", i, err)
		}
		params = append(params, p)
	}
	return inject.Definition{
		Meta:   ast.Meta{Line: spec.Line},
		Name:   spec.Name,
		Params: params,
		Body:   body,
	}, nil
}

func fromInjected(in inject.Injected) definitionSpec {
	def := in.Definition
	spec := definitionSpec{
		Name: def.Name,
		Line: def.Meta.Line,
		Body: ast.ToWire(def.Body),
	}
	for _, p := range def.Params {
		spec.Params = append(spec.Params, ast.ToWire(p))
	}
	for _, k := range in.Keys {
		spec.Keys = append(spec.Keys, k.String())
	}
	return spec
}

// renderText renders definitions one per line, each followed by its keys.
func renderText(spec fileSpec) []byte {
	var b strings.Builder
	for _, d := range spec.Definitions {
		params := make([]string, 0, len(d.Params))
		for _, w := range d.Params {
			// Output params were produced by ToWire, so FromWire cannot fail.
			p, _ := ast.FromWire(w)
			params = append(params, ast.Format(p))
		}
		body, _ := ast.FromWire(d.Body)

		b.WriteString("def ")
		b.WriteString(d.Name)
		b.WriteString("(")
		b.WriteString(strings.Join(params, ", "))
		b.WriteString(") do ")
		b.WriteString(ast.Format(body))
		b.WriteString(" end\n")
		if len(d.Keys) > 0 {
			b.WriteString("# dispatches: ")
			b.WriteString(strings.Join(d.Keys, ", "))
			b.WriteString("\n")
		}
	}
	return []byte(b.String())
}

// outputPath returns <dir>/<base>.rewired.<ext> where dir defaults to the
// input's directory.
func outputPath(inputPath, outDir, format string) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	ext := ".json"
	if format == "text" {
		ext = ".txt"
	}
	return filepath.Join(dir, base+".rewired"+ext)
}
