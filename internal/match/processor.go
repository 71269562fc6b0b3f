package match

import (
	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/pipeline"
)

// Processor lowers every match expression in the unit. Rewrite visits
// children first, so nested matches are already in loop form when the
// enclosing match is compiled — the scrutinee and arm expressions of the
// outer match never contain MatchExpression nodes at emission time.
type Processor struct{}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.AstRoot == nil || !ctx.Config.MatchEnabled() {
		return ctx
	}

	c := NewCompiler(ctx.Registry)
	failed := false

	rewritten := ast.Rewrite(ctx.AstRoot, func(n ast.Node) ast.Node {
		me, ok := n.(*ast.MatchExpression)
		if !ok {
			return n
		}
		expr, diags := c.Compile(me)
		ctx.AddAll(diags)
		if expr == nil {
			failed = true
			return n
		}
		return expr
	})

	// All or nothing: a unit with a broken match keeps its original tree so
	// downstream consumers never see a half-lowered program.
	if !failed {
		ctx.AstRoot = rewritten
	}
	return ctx
}
