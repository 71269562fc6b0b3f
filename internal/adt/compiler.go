// Package adt compiles data declarations into variant registry entries and
// emitted constructor functions. The runtime tag test and field projection
// are exposed to host code through the __adt_is and __adt_field intrinsics,
// usable standalone outside pattern matching.
package adt

import (
	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/config"
	"github.com/funvibe/funcase/internal/diagnostics"
	"github.com/funvibe/funcase/internal/variant"

	"github.com/google/uuid"
)

// Compiled is the result of compiling one data declaration.
type Compiled struct {
	Spec *variant.VariantSpec

	// Statements replace the declaration in the transformed tree: one
	// constructor function per variant, e.g.
	//
	//	fun Cons(head, tail) { __adt_new("Cons", head, tail) }
	Statements []ast.Statement
}

// Compile registers the declared type and synthesizes its constructor
// functions. Duplicate constructor names — within the declaration or
// against previously registered types — are fatal at declaration time.
func Compile(decl *ast.DataDeclaration, reg *variant.Registry, unitID uuid.UUID) (*Compiled, []*diagnostics.DiagnosticError) {
	var diags []*diagnostics.DiagnosticError

	// Duplicates within the declaration are reported at the offending
	// constructor's own token, before touching the registry.
	seen := make(map[string]bool, len(decl.Constructors))
	defs := make([]variant.CtorDef, 0, len(decl.Constructors))
	for _, c := range decl.Constructors {
		if seen[c.Name.Value] {
			diags = append(diags, diagnostics.NewError(
				diagnostics.ErrD001, c.Token,
				"duplicate constructor %s in data type %s", c.Name.Value, decl.Name.Value))
			continue
		}
		seen[c.Name.Value] = true
		defs = append(defs, variant.CtorDef{Name: c.Name.Value, Arity: c.Arity()})
	}
	if len(diags) > 0 {
		return nil, diags
	}

	spec, err := variant.NewSpec(decl.Name.Value, unitID, defs)
	if err != nil {
		return nil, []*diagnostics.DiagnosticError{
			diagnostics.NewError(diagnostics.ErrD001, decl.Token, "%s", err),
		}
	}
	if err := reg.Register(spec); err != nil {
		return nil, []*diagnostics.DiagnosticError{
			diagnostics.NewError(diagnostics.ErrD001, decl.Token, "%s", err),
		}
	}

	out := &Compiled{Spec: spec}
	for _, c := range decl.Constructors {
		out.Statements = append(out.Statements, constructorFunction(c))
	}
	return out, nil
}

// constructorFunction synthesizes the constructor function for one variant:
// a fixed-parameter function that builds a tagged value via __adt_new.
func constructorFunction(c *ast.ConstructorDef) *ast.FunctionStatement {
	args := make([]ast.Expression, 0, len(c.Fields)+1)
	args = append(args, ast.NewString(c.Token, c.Name.Value))

	params := make([]*ast.Identifier, len(c.Fields))
	for i, f := range c.Fields {
		params[i] = ast.NewIdent(c.Token, f.Value)
		args = append(args, ast.NewIdent(c.Token, f.Value))
	}

	body := ast.NewBlock(c.Token,
		ast.NewExprStmt(ast.NewCall(c.Token, config.AdtNewFuncName, args...)),
	)
	return &ast.FunctionStatement{
		Token:      c.Token,
		Name:       ast.NewIdent(c.Token, c.Name.Value),
		Parameters: params,
		Body:       body,
	}
}
