package match

import (
	"sort"
	"strings"

	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/diagnostics"
	"github.com/funvibe/funcase/internal/variant"
)

// validate checks every pattern of the match expression against the
// registry: constructors must be declared, constructor patterns must carry
// exactly the declared arity, and all alternatives of an or-pattern must
// bind the same set of names.
func validate(me *ast.MatchExpression, reg *variant.Registry) []*diagnostics.DiagnosticError {
	var diags []*diagnostics.DiagnosticError
	for _, arm := range me.Arms {
		diags = append(diags, validatePattern(arm.Pattern, reg)...)
	}
	return diags
}

func validatePattern(p ast.Pattern, reg *variant.Registry) []*diagnostics.DiagnosticError {
	var diags []*diagnostics.DiagnosticError

	switch pat := p.(type) {
	case *ast.ConstructorPattern:
		ctor, ok := reg.LookupConstructor(pat.Name.Value)
		if !ok {
			return []*diagnostics.DiagnosticError{diagnostics.NewError(
				diagnostics.ErrD003, pat.Token,
				"unknown constructor %s", pat.Name.Value)}
		}
		if len(pat.Elements) != ctor.Arity {
			diags = append(diags, diagnostics.NewError(
				diagnostics.ErrD002, pat.Token,
				"constructor %s expects %d sub-patterns, got %d",
				pat.Name.Value, ctor.Arity, len(pat.Elements)))
		}
		for _, el := range pat.Elements {
			diags = append(diags, validatePattern(el, reg)...)
		}

	case *ast.OrPattern:
		for _, alt := range pat.Alternatives {
			diags = append(diags, validatePattern(alt, reg)...)
		}
		if len(diags) > 0 {
			return diags
		}
		first := bindingSet(pat.Alternatives[0])
		for _, alt := range pat.Alternatives[1:] {
			if !sameBindings(first, bindingSet(alt)) {
				diags = append(diags, diagnostics.NewError(
					diagnostics.ErrM003, pat.Token,
					"or-pattern alternatives bind different variables: %s vs %s",
					describeBindings(first), describeBindings(bindingSet(alt))))
				break
			}
		}
	}
	return diags
}

func bindingSet(p ast.Pattern) map[string]bool {
	out := make(map[string]bool)
	collectBindingNames(p, out)
	return out
}

func collectBindingNames(p ast.Pattern, out map[string]bool) {
	switch pat := p.(type) {
	case *ast.IdentifierPattern:
		out[pat.Value] = true
	case *ast.ConstructorPattern:
		for _, el := range pat.Elements {
			collectBindingNames(el, out)
		}
	case *ast.OrPattern:
		// Alternatives bind identical sets (validated), the first stands in.
		if len(pat.Alternatives) > 0 {
			collectBindingNames(pat.Alternatives[0], out)
		}
	}
}

func sameBindings(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func describeBindings(set map[string]bool) string {
	if len(set) == 0 {
		return "{}"
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return "{" + strings.Join(names, ", ") + "}"
}

// expandOr rewrites a pattern into the list of or-free patterns it stands
// for. Nested or-patterns inside constructors expand to the cross product
// of their elements' expansions.
func expandOr(p ast.Pattern) []ast.Pattern {
	switch pat := p.(type) {
	case *ast.OrPattern:
		var out []ast.Pattern
		for _, alt := range pat.Alternatives {
			out = append(out, expandOr(alt)...)
		}
		return out

	case *ast.ConstructorPattern:
		expanded := [][]ast.Pattern{nil}
		for _, el := range pat.Elements {
			alts := expandOr(el)
			var next [][]ast.Pattern
			for _, prefix := range expanded {
				for _, alt := range alts {
					row := make([]ast.Pattern, len(prefix), len(prefix)+1)
					copy(row, prefix)
					next = append(next, append(row, alt))
				}
			}
			expanded = next
		}
		out := make([]ast.Pattern, len(expanded))
		for i, els := range expanded {
			out[i] = &ast.ConstructorPattern{Token: pat.Token, Name: pat.Name, Elements: els}
		}
		return out

	default:
		return []ast.Pattern{p}
	}
}
