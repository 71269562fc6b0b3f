package tco_test

import (
	"testing"

	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/config"
	"github.com/funvibe/funcase/internal/lexer"
	"github.com/funvibe/funcase/internal/parser"
	"github.com/funvibe/funcase/internal/pipeline"
	"github.com/funvibe/funcase/internal/tco"
	"github.com/funvibe/funcase/internal/variant"
)

func rewrite(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v\nsource: %s", errs, src)
	}

	ctx := pipeline.NewContext("test.fc", src, variant.NewRegistry(), config.Default())
	ctx.AstRoot = prog
	ctx = (&tco.Processor{}).Process(ctx)
	return ctx.AstRoot.(*ast.Program)
}

func findFunction(t *testing.T, prog *ast.Program, name string) *ast.FunctionStatement {
	t.Helper()
	var fn *ast.FunctionStatement
	ast.Inspect(prog, func(n ast.Node) bool {
		if f, ok := n.(*ast.FunctionStatement); ok && f.Name.Value == name {
			fn = f
		}
		return true
	})
	if fn == nil {
		t.Fatalf("function %s not found", name)
	}
	return fn
}

func countMarkers(node ast.Node) int {
	count := 0
	ast.Inspect(node, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpression); ok {
			if id, ok := call.Function.(*ast.Identifier); ok && id.Value == config.TcoCallFuncName {
				count++
			}
		}
		return true
	})
	return count
}

// isTrampolined reports whether the function body has the dispatch shape:
// a single if on __active.
func isTrampolined(fn *ast.FunctionStatement) bool {
	if len(fn.Body.Statements) != 1 {
		return false
	}
	es, ok := fn.Body.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	ie, ok := es.Expression.(*ast.IfExpression)
	if !ok {
		return false
	}
	id, ok := ie.Condition.(*ast.Identifier)
	return ok && id.Value == config.TcoActiveName && ie.Alternative != nil
}

func TestSelfRecursiveTailCallIsRewritten(t *testing.T) {
	prog := rewrite(t, `
fun sum(n, acc) {
    if n == 0 {
        acc
    } else {
        sum(n - 1, acc + n)
    }
}
`)
	fn := findFunction(t, prog, "sum")
	if !isTrampolined(fn) {
		t.Fatalf("sum was not rewritten into trampoline form")
	}
	// One marked tail call in the body plus the driver's initial marker.
	if got := countMarkers(fn); got != 2 {
		t.Errorf("marker count = %d, want 2", got)
	}
}

func TestNonTailRecursionIsLeftAlone(t *testing.T) {
	prog := rewrite(t, `
fun fact(n) {
    if n == 0 {
        1
    } else {
        n * fact(n - 1)
    }
}
`)
	fn := findFunction(t, prog, "fact")
	if isTrampolined(fn) {
		t.Fatalf("fact has no tail calls and must not be rewritten")
	}
	if got := countMarkers(fn); got != 0 {
		t.Errorf("marker count = %d, want 0", got)
	}
}

func TestCallToUnknownNameIsNotATailCall(t *testing.T) {
	prog := rewrite(t, `
fun f(n) {
    g(n)
}
`)
	if isTrampolined(findFunction(t, prog, "f")) {
		t.Fatalf("call to an undeclared name must not trigger the rewrite")
	}
}

func TestMutualRecursionRewritesBoth(t *testing.T) {
	prog := rewrite(t, `
fun even(n) {
    if n == 0 { true } else { odd(n - 1) }
}

fun odd(n) {
    if n == 0 { false } else { even(n - 1) }
}
`)
	if !isTrampolined(findFunction(t, prog, "even")) {
		t.Errorf("even was not rewritten")
	}
	if !isTrampolined(findFunction(t, prog, "odd")) {
		t.Errorf("odd was not rewritten")
	}
}

func TestReturnValueIsATailPosition(t *testing.T) {
	prog := rewrite(t, `
fun loop(n) {
    if n == 0 {
        return 0
    }
    return loop(n - 1)
}
`)
	if !isTrampolined(findFunction(t, prog, "loop")) {
		t.Fatalf("return-position tail call must trigger the rewrite")
	}
}

func TestMatchArmsAreTailPositions(t *testing.T) {
	prog := rewrite(t, `
fun walk(xs, acc) {
    match xs {
        Nil -> acc,
        Cons(h, t) -> walk(t, acc + h),
    }
}
`)
	if !isTrampolined(findFunction(t, prog, "walk")) {
		t.Fatalf("tail call in a match arm must trigger the rewrite")
	}
}

func TestBreakValueIsNotATailPosition(t *testing.T) {
	prog := rewrite(t, `
fun f(n) {
    let x = for true {
        break f(n - 1)
    }
    x + 1
}
`)
	fn := findFunction(t, prog, "f")
	if isTrampolined(fn) {
		t.Fatalf("a call in a break value must not be treated as a tail call")
	}
}

func TestArgumentsOfATailCallAreNotMarked(t *testing.T) {
	prog := rewrite(t, `
fun f(n) {
    f(f(n - 1))
}
`)
	fn := findFunction(t, prog, "f")
	if !isTrampolined(fn) {
		t.Fatalf("outer call is a tail call")
	}
	// Only the outer call and the driver marker; the inner f(n - 1) stays a
	// plain call.
	if got := countMarkers(fn); got != 2 {
		t.Errorf("marker count = %d, want 2", got)
	}
}

func TestNestedFunctionsAreRewrittenIndependently(t *testing.T) {
	prog := rewrite(t, `
fun outer(n) {
    fun inner(k) {
        if k == 0 { 0 } else { inner(k - 1) }
    }
    inner(n) + 1
}
`)
	if !isTrampolined(findFunction(t, prog, "inner")) {
		t.Errorf("inner tail recursion must be rewritten")
	}
	if isTrampolined(findFunction(t, prog, "outer")) {
		t.Errorf("outer has no tail calls and must stay unchanged")
	}
}
