package adt

import (
	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/pipeline"
)

// Processor compiles every data declaration of the unit and splices the
// synthesized constructor functions into the declaration's position. It
// runs before the match stage so the registry is fully populated by the
// time any match expression in the same unit is compiled.
type Processor struct{}

// Process walks the whole tree, not just the top level: the parser accepts
// a data declaration in any statement position, so one inside a function
// body compiles like any other. The constructor functions land in the
// enclosing block and follow its scope; the registry entry is unit-wide
// either way.
func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.AstRoot == nil || !ctx.Config.ADTEnabled() {
		return ctx
	}

	ctx.AstRoot = ast.Rewrite(ctx.AstRoot, func(n ast.Node) ast.Node {
		switch node := n.(type) {
		case *ast.Program:
			node.Statements = compileDecls(node.Statements, ctx)
		case *ast.BlockStatement:
			node.Statements = compileDecls(node.Statements, ctx)
		}
		return n
	})
	return ctx
}

// compileDecls replaces each data declaration in the statement list with
// its constructor functions. A declaration that failed to compile is
// dropped; its diagnostics make the unit fatal, so the tree never escapes.
func compileDecls(stmts []ast.Statement, ctx *pipeline.Context) []ast.Statement {
	out := make([]ast.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		decl, ok := stmt.(*ast.DataDeclaration)
		if !ok {
			out = append(out, stmt)
			continue
		}
		compiled, diags := Compile(decl, ctx.Registry, ctx.UnitID)
		ctx.AddAll(diags)
		if compiled == nil {
			continue
		}
		out = append(out, compiled.Statements...)
	}
	return out
}
