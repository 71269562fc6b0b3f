// Package tco eliminates tail calls by rewriting recursive functions into
// trampoline form. A tail call inside a rewritten function is replaced by a
// __tco_call marker; the function's public entry bounces markers in a loop
// instead of growing the call stack, so mutual recursion of any depth runs
// in constant stack space.
package tco

import (
	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/config"
)

// Rewriter rewrites the functions of one unit. Only calls whose callee is a
// statically known function name are treated as tail calls; calls through
// arbitrary expressions stay ordinary calls.
type Rewriter struct {
	funcs map[string]bool
}

// NewRewriter collects every function name declared in the tree, including
// the constructor functions synthesized by the adt stage.
func NewRewriter(root ast.Node) *Rewriter {
	r := &Rewriter{funcs: make(map[string]bool)}
	ast.Inspect(root, func(n ast.Node) bool {
		if fn, ok := n.(*ast.FunctionStatement); ok {
			r.funcs[fn.Name.Value] = true
		}
		return true
	})
	return r
}

// RewriteFunction returns the trampoline form of fn, or fn unchanged when
// its body contains no tail call to a known function. The rewritten
// function dispatches on the __active binding, which the evaluator sets per
// call frame: true when the call is a trampoline bounce, false for a direct
// call.
//
//	fun f(a, b) {
//	    if __active {
//	        <body with tail calls as __tco_call markers>
//	    } else {
//	        let __r = __tco_call(f, a, b)
//	        for __tco_is(__r) { __r = __tco_invoke(__r) }
//	        __r
//	    }
//	}
//
// A direct call starts the loop; every bounce re-enters the callee with
// __active true, so the marked body returns the next marker straight to the
// outermost loop and the stack stays flat.
func (r *Rewriter) RewriteFunction(fn *ast.FunctionStatement) *ast.FunctionStatement {
	body, found := r.blockTail(fn.Body, true)
	if !found {
		return fn
	}
	out := *fn
	out.Body = wrapTrampoline(fn, body)
	return &out
}

// blockTail rewrites tail calls in a block. Only the final statement
// inherits the block's tail position; return values are tail positions at
// any depth because a return always lands at the function boundary.
func (r *Rewriter) blockTail(b *ast.BlockStatement, tail bool) (*ast.BlockStatement, bool) {
	out := &ast.BlockStatement{Token: b.Token, Statements: make([]ast.Statement, len(b.Statements))}
	found := false
	for i, s := range b.Statements {
		st := tail && i == len(b.Statements)-1
		ns, ch := r.stmtTail(s, st)
		out.Statements[i] = ns
		found = found || ch
	}
	return out, found
}

func (r *Rewriter) stmtTail(s ast.Statement, tail bool) (ast.Statement, bool) {
	switch st := s.(type) {
	case *ast.ReturnStatement:
		if st.Value == nil {
			return s, false
		}
		v, ch := r.exprTail(st.Value, true)
		out := *st
		out.Value = v
		return &out, ch

	case *ast.ExpressionStatement:
		e, ch := r.exprTail(st.Expression, tail)
		out := *st
		out.Expression = e
		return &out, ch

	case *ast.BlockStatement:
		return r.blockTail(st, tail)

	case *ast.LetStatement:
		v, ch := r.exprTail(st.Value, false)
		out := *st
		out.Value = v
		return &out, ch

	case *ast.BreakStatement:
		// A break value flows to the enclosing loop, not the function
		// boundary, so it is never a tail position.
		if st.Value == nil {
			return s, false
		}
		v, ch := r.exprTail(st.Value, false)
		out := *st
		out.Value = v
		return &out, ch

	case *ast.FunctionStatement:
		// Nested functions have their own tail positions and are rewritten
		// independently.
		return s, false

	default:
		return s, false
	}
}

func (r *Rewriter) exprTail(e ast.Expression, tail bool) (ast.Expression, bool) {
	switch ex := e.(type) {
	case *ast.CallExpression:
		out := *ex
		found := false
		out.Arguments = make([]ast.Expression, len(ex.Arguments))
		for i, a := range ex.Arguments {
			na, ch := r.exprTail(a, false)
			out.Arguments[i] = na
			found = found || ch
		}
		if id, ok := ex.Function.(*ast.Identifier); ok && tail && r.funcs[id.Value] {
			args := append([]ast.Expression{ast.NewIdent(id.Token, id.Value)}, out.Arguments...)
			return ast.NewCall(ex.Token, config.TcoCallFuncName, args...), true
		}
		return &out, found

	case *ast.IfExpression:
		out := *ex
		cond, ch1 := r.exprTail(ex.Condition, false)
		out.Condition = cond
		cons, ch2 := r.blockTail(ex.Consequence, tail)
		out.Consequence = cons
		ch3 := false
		if ex.Alternative != nil {
			out.Alternative, ch3 = r.blockTail(ex.Alternative, tail)
		}
		return &out, ch1 || ch2 || ch3

	case *ast.MatchExpression:
		// Runs before match lowering: arm actions are tail positions when
		// the match itself is.
		out := *ex
		scrut, found := r.exprTail(ex.Expression, false)
		out.Expression = scrut
		out.Arms = make([]*ast.MatchArm, len(ex.Arms))
		for i, arm := range ex.Arms {
			na := &ast.MatchArm{Pattern: arm.Pattern}
			if arm.Guard != nil {
				g, ch := r.exprTail(arm.Guard, false)
				na.Guard = g
				found = found || ch
			}
			act, ch := r.exprTail(arm.Expression, tail)
			na.Expression = act
			found = found || ch
			out.Arms[i] = na
		}
		return &out, found

	case *ast.ForExpression:
		out := *ex
		cond, ch1 := r.exprTail(ex.Condition, false)
		out.Condition = cond
		body, ch2 := r.blockTail(ex.Body, false)
		out.Body = body
		return &out, ch1 || ch2

	case *ast.InfixExpression:
		out := *ex
		l, ch1 := r.exprTail(ex.Left, false)
		rr, ch2 := r.exprTail(ex.Right, false)
		out.Left, out.Right = l, rr
		return &out, ch1 || ch2

	case *ast.PrefixExpression:
		out := *ex
		v, ch := r.exprTail(ex.Right, false)
		out.Right = v
		return &out, ch

	case *ast.AssignExpression:
		out := *ex
		v, ch := r.exprTail(ex.Value, false)
		out.Value = v
		return &out, ch

	default:
		return e, false
	}
}

func wrapTrampoline(fn *ast.FunctionStatement, body *ast.BlockStatement) *ast.BlockStatement {
	tok := fn.Token

	callArgs := make([]ast.Expression, 0, len(fn.Parameters)+1)
	callArgs = append(callArgs, ast.NewIdent(tok, fn.Name.Value))
	for _, p := range fn.Parameters {
		callArgs = append(callArgs, ast.NewIdent(tok, p.Value))
	}

	result := func() *ast.Identifier { return ast.NewIdent(tok, config.TcoResultName) }

	loop := &ast.ForExpression{
		Token:     tok,
		Condition: ast.NewCall(tok, config.TcoIsFuncName, result()),
		Body: ast.NewBlock(tok, ast.NewExprStmt(
			ast.NewAssign(tok, config.TcoResultName,
				ast.NewCall(tok, config.TcoInvokeFuncName, result())))),
	}

	driver := ast.NewBlock(tok,
		ast.NewLet(tok, config.TcoResultName, ast.NewCall(tok, config.TcoCallFuncName, callArgs...)),
		ast.NewExprStmt(loop),
		ast.NewExprStmt(result()),
	)

	dispatch := &ast.IfExpression{
		Token:       tok,
		Condition:   ast.NewIdent(tok, config.TcoActiveName),
		Consequence: body,
		Alternative: driver,
	}
	return ast.NewBlock(tok, ast.NewExprStmt(dispatch))
}
