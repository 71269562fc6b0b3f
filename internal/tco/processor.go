package tco

import (
	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/pipeline"
)

// Processor rewrites every function of the unit into trampoline form where
// tail calls were found. It runs after the adt stage, so constructor
// functions are part of the known-function set, and before the match stage,
// so arm actions are still visible as tail positions.
type Processor struct{}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.AstRoot == nil || !ctx.Config.TCOEnabled() {
		return ctx
	}

	r := NewRewriter(ctx.AstRoot)
	ctx.AstRoot = ast.Rewrite(ctx.AstRoot, func(n ast.Node) ast.Node {
		if fn, ok := n.(*ast.FunctionStatement); ok {
			return r.RewriteFunction(fn)
		}
		return n
	})
	return ctx
}
