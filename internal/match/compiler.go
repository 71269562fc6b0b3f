// Package match analyzes and lowers match expressions. Each expression is
// validated against the variant registry, checked for exhaustiveness and
// redundancy on a decision tree, and then compiled into a first-match-wins
// loop built from the __adt_is / __adt_field intrinsics.
package match

import (
	"fmt"

	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/config"
	"github.com/funvibe/funcase/internal/diagnostics"
	"github.com/funvibe/funcase/internal/token"
	"github.com/funvibe/funcase/internal/variant"
)

// Compiler lowers the match expressions of one compilation unit. The
// temporary counter is per-unit so generated names stay unique across
// nested matches.
type Compiler struct {
	reg   *variant.Registry
	temps int
}

func NewCompiler(reg *variant.Registry) *Compiler {
	return &Compiler{reg: reg}
}

// Compile analyzes one match expression and returns its lowered form.
// A nil expression means the diagnostics contain at least one fatal error;
// warnings (redundant clauses) come back alongside a usable expression.
func (c *Compiler) Compile(me *ast.MatchExpression) (ast.Expression, []*diagnostics.DiagnosticError) {
	diags := validate(me, c.reg)
	if diagnostics.HasFatal(diags) {
		return nil, diags
	}

	rows := make([]row, 0, len(me.Arms))
	for i, arm := range me.Arms {
		for _, p := range expandOr(arm.Pattern) {
			rows = append(rows, row{pats: []ast.Pattern{p}, clause: i, guarded: arm.Guard != nil})
		}
	}

	b := newTreeBuilder(c.reg)
	b.build(rows, [][]int{{}})

	if len(b.missing) > 0 {
		diags = append(diags, diagnostics.NewError(
			diagnostics.ErrM001, me.Token,
			"match is not exhaustive: %s", describeMissing(b.missingList())))
	}
	for i, arm := range me.Arms {
		if !b.used[i] {
			diags = append(diags, diagnostics.NewWarning(
				diagnostics.ErrM002, arm.Pattern.GetToken(),
				"unreachable match clause: earlier clauses already cover every value it matches"))
		}
	}
	if diagnostics.HasFatal(diags) {
		return nil, diags
	}
	return c.emit(me), diags
}

// emit produces the loop form of the match:
//
//	for true {
//	    let __m0 = <scrutinee>
//	    if <structural test> { let <binds>; [if <guard> {] break <action> [}] }
//	    ...
//	    __match_fail("...")
//	}
//
// Clauses are tested strictly in source order. A failed guard falls through
// to the next clause, matching runtime semantics exactly; the decision tree
// is an analysis artifact only.
func (c *Compiler) emit(me *ast.MatchExpression) ast.Expression {
	tok := me.Token
	tmp := fmt.Sprintf("%s%d", config.MatchTempPrefix, c.temps)
	c.temps++

	stmts := []ast.Statement{ast.NewLet(tok, tmp, me.Expression)}
	for _, arm := range me.Arms {
		for _, p := range expandOr(arm.Pattern) {
			stmts = append(stmts, c.clause(tmp, p, arm)...)
		}
	}
	stmts = append(stmts, ast.NewExprStmt(ast.NewCall(tok, config.MatchFailName,
		ast.NewString(tok, fmt.Sprintf("no clause matched at line %d", tok.Line)))))

	return &ast.ForExpression{
		Token:     tok,
		Condition: ast.NewBool(tok, true),
		Body:      ast.NewBlock(tok, stmts...),
	}
}

// clause lowers one or-free alternative of a match arm. A guarded clause
// keeps its bindings in scope for the guard and breaks only when the guard
// holds; otherwise control falls off the enclosing if and reaches the next
// clause.
func (c *Compiler) clause(tmp string, p ast.Pattern, arm *ast.MatchArm) []ast.Statement {
	tok := p.GetToken()
	scrut := ast.NewIdent(tok, tmp)

	body := bindingLets(scrut, p, nil)
	if arm.Guard != nil {
		body = append(body, ast.NewExprStmt(&ast.IfExpression{
			Token:       arm.Guard.GetToken(),
			Condition:   arm.Guard,
			Consequence: ast.NewBlock(tok, &ast.BreakStatement{Token: tok, Value: arm.Expression}),
		}))
	} else {
		body = append(body, &ast.BreakStatement{Token: tok, Value: arm.Expression})
	}

	cond := patternCond(scrut, p)
	if cond == nil {
		// Irrefutable pattern: no test to wrap.
		return body
	}
	return []ast.Statement{ast.NewExprStmt(&ast.IfExpression{
		Token:       tok,
		Condition:   cond,
		Consequence: ast.NewBlock(tok, body...),
	})}
}

// patternCond builds the structural test for p over the value expression v,
// or nil when p matches unconditionally. Tests are joined with &&, which
// short-circuits, so a field projection is only evaluated after the tag
// test that makes it valid.
func patternCond(v ast.Expression, p ast.Pattern) ast.Expression {
	switch pat := p.(type) {
	case *ast.LiteralPattern:
		return ast.NewInfix(pat.Token, v, "==", literalExpr(pat))

	case *ast.ConstructorPattern:
		var out ast.Expression = ast.NewCall(pat.Token, config.AdtIsFuncName,
			v, ast.NewString(pat.Token, pat.Name.Value))
		for i, el := range pat.Elements {
			if sub := patternCond(fieldAccess(el.GetToken(), v, i), el); sub != nil {
				out = ast.NewInfix(pat.Token, out, "&&", sub)
			}
		}
		return out

	default:
		return nil
	}
}

// bindingLets appends one let per variable bound by p, left to right in
// pattern order.
func bindingLets(v ast.Expression, p ast.Pattern, out []ast.Statement) []ast.Statement {
	switch pat := p.(type) {
	case *ast.IdentifierPattern:
		out = append(out, ast.NewLet(pat.Token, pat.Value, v))
	case *ast.ConstructorPattern:
		for i, el := range pat.Elements {
			out = bindingLets(fieldAccess(el.GetToken(), v, i), el, out)
		}
	}
	return out
}

func fieldAccess(tok token.Token, v ast.Expression, i int) ast.Expression {
	return ast.NewCall(tok, config.AdtFieldFuncName, v, ast.NewInt(tok, int64(i)))
}

func literalExpr(p *ast.LiteralPattern) ast.Expression {
	switch v := p.Value.(type) {
	case int64:
		return ast.NewInt(p.Token, v)
	case bool:
		return ast.NewBool(p.Token, v)
	case string:
		return ast.NewString(p.Token, v)
	default:
		panic(fmt.Sprintf("match: unsupported literal pattern value %T", v))
	}
}
