package inject

import "github.com/sghaida/rewire/ast"

// canonicalOrder is the order try sections come out in, after the body.
var canonicalOrder = [...]ast.SectionKind{ast.Rescue, ast.Catch, ast.Else}

// canonicalize rewrites a try block and reorders its sections.
//
// The body and each clause body are rewritten; patterns and guards are not.
// Sections of the same kind are merged in input order and emitted in
// canonicalOrder whatever order they were written in. A kind with no clauses
// is left out rather than synthesized.
func (w *walker) canonicalize(t *ast.TryBlock) (*ast.TryBlock, error) {
	body, err := w.walk(t.Body)
	if err != nil {
		return nil, err
	}

	out := &ast.TryBlock{Meta: t.Meta, Body: body}
	for _, kind := range canonicalOrder {
		clauses := t.Clauses(kind)
		if len(clauses) == 0 {
			continue
		}
		rewritten, err := w.walkClauses(clauses)
		if err != nil {
			return nil, err
		}
		out.Sections = append(out.Sections, ast.TrySection{Kind: kind, Clauses: rewritten})
	}
	return out, nil
}
