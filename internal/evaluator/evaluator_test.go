package evaluator_test

import (
	"strings"
	"testing"

	"github.com/funvibe/funcase/internal/evaluator"
	"github.com/funvibe/funcase/internal/lexer"
	"github.com/funvibe/funcase/internal/parser"
	"github.com/funvibe/funcase/internal/variant"

	"github.com/google/uuid"
)

// eval parses and evaluates source with an empty registry. These tests
// exercise the interpreter only; transformed programs are covered by the
// driver tests.
func eval(t *testing.T, src string) evaluator.Object {
	t.Helper()
	return evalWithRegistry(t, src, variant.NewRegistry())
}

func evalWithRegistry(t *testing.T, src string, reg *variant.Registry) evaluator.Object {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v\nsource: %s", errs, src)
	}
	env := evaluator.NewGlobalEnv(reg)
	return evaluator.Eval(prog, env)
}

func expectInt(t *testing.T, src string, want int64) {
	t.Helper()
	result := eval(t, src)
	i, ok := result.(*evaluator.Integer)
	if !ok {
		t.Fatalf("got %s (%s), want INTEGER %d\nsource: %s", result.Inspect(), result.Type(), want, src)
	}
	if i.Value != want {
		t.Errorf("got %d, want %d\nsource: %s", i.Value, want, src)
	}
}

func expectBool(t *testing.T, src string, want bool) {
	t.Helper()
	result := eval(t, src)
	b, ok := result.(*evaluator.Boolean)
	if !ok {
		t.Fatalf("got %s (%s), want BOOLEAN %t\nsource: %s", result.Inspect(), result.Type(), want, src)
	}
	if b.Value != want {
		t.Errorf("got %t, want %t\nsource: %s", b.Value, want, src)
	}
}

func expectError(t *testing.T, src string, fragment string) {
	t.Helper()
	result := eval(t, src)
	errObj, ok := result.(*evaluator.Error)
	if !ok {
		t.Fatalf("got %s (%s), want error containing %q\nsource: %s", result.Inspect(), result.Type(), fragment, src)
	}
	if !strings.Contains(errObj.Message, fragment) {
		t.Errorf("error %q does not contain %q", errObj.Message, fragment)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 3 - 2", 5},
		{"17 % 5", 2},
		{"-5 + 10", 5},
		{"20 / 4 / 5", 1},
	}
	for _, tt := range tests {
		expectInt(t, tt.input, tt.want)
	}
}

func TestComparisonsAndLogic(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 4", false},
		{"1 == 1", true},
		{"1 != 1", false},
		{`"a" == "a"`, true},
		{`"a" + "b" == "ab"`, true},
		{"true && false", false},
		{"true || false", true},
		{"!false", true},
		{"1 == true", false},
	}
	for _, tt := range tests {
		expectBool(t, tt.input, tt.want)
	}
}

func TestShortCircuitSkipsRightSide(t *testing.T) {
	// boom is undefined; && must not evaluate it when the left side is
	// false. The lowered match code depends on this.
	expectBool(t, "false && boom()", false)
	expectBool(t, "true || boom()", true)
}

func TestLetAndAssignment(t *testing.T) {
	expectInt(t, "let x = 5; x + 1", 6)
	expectInt(t, "let x = 5; x = x + 1; x", 6)
	// Assignment inside a block updates the outer binding.
	expectInt(t, `
let x = 1
fun bump() { x = x + 1 }
bump()
bump()
x
`, 3)
}

func TestBlocksYieldTheirLastValue(t *testing.T) {
	expectInt(t, "if true { 1; 2; 3 }", 3)
}

func TestFunctionsAndClosures(t *testing.T) {
	expectInt(t, `
fun add(a, b) { a + b }
add(2, 3)
`, 5)
	expectInt(t, `
fun makeAdder(a) {
    fun add(b) { a + b }
    add
}
let addTwo = makeAdder(2)
addTwo(40)
`, 42)
}

func TestReturnCutsThroughBlocks(t *testing.T) {
	expectInt(t, `
fun f(n) {
    if n > 0 {
        return 1
    }
    return 2
}
f(5)
`, 1)
}

func TestForLoop(t *testing.T) {
	expectInt(t, `
let i = 0
let total = 0
for i < 5 {
    i = i + 1
    total = total + i
}
total
`, 15)
}

func TestBreakCarriesTheLoopValue(t *testing.T) {
	expectInt(t, `
let i = 0
for true {
    i = i + 1
    if i == 7 {
        break i * 10
    }
}
`, 70)
}

func TestContinueSkipsTheRestOfTheBody(t *testing.T) {
	expectInt(t, `
let i = 0
let total = 0
for i < 10 {
    i = i + 1
    if i % 2 == 0 {
        continue
    }
    total = total + i
}
total
`, 25)
}

func TestRuntimeErrors(t *testing.T) {
	expectError(t, "1 / 0", "division by zero")
	expectError(t, "nope", "identifier not found")
	expectError(t, "5(1)", "not a function")
	expectError(t, "fun f(a) { a } f(1, 2)", "wrong number of arguments")
	expectError(t, `"a" - "b"`, "unknown operator")
}

func TestUntransformedConstructsAreRejected(t *testing.T) {
	expectError(t, "data List = Nil", "was not transformed")
	expectError(t, "match x { _ -> 1 }", "was not transformed")
}

func testRegistry(t *testing.T) *variant.Registry {
	t.Helper()
	reg := variant.NewRegistry()
	spec, err := variant.NewSpec("List", uuid.New(), []variant.CtorDef{
		{Name: "Nil", Arity: 0},
		{Name: "Cons", Arity: 2},
	})
	if err != nil {
		t.Fatalf("NewSpec: %s", err)
	}
	if err := reg.Register(spec); err != nil {
		t.Fatalf("Register: %s", err)
	}
	return reg
}

func TestVariantIntrinsics(t *testing.T) {
	reg := testRegistry(t)

	result := evalWithRegistry(t, `
let xs = __adt_new("Cons", 1, __adt_new("Nil"))
__adt_field(xs, 0)
`, reg)
	if i, ok := result.(*evaluator.Integer); !ok || i.Value != 1 {
		t.Fatalf("head = %s, want 1", result.Inspect())
	}

	result = evalWithRegistry(t, `
let xs = __adt_new("Cons", 1, __adt_new("Nil"))
__adt_is(xs, "Cons") && !__adt_is(xs, "Nil") && !__adt_is(5, "Cons")
`, reg)
	if b, ok := result.(*evaluator.Boolean); !ok || !b.Value {
		t.Fatalf("tag tests = %s, want true", result.Inspect())
	}

	result = evalWithRegistry(t, `__adt_tag(__adt_new("Cons", 1, 2))`, reg)
	if i, ok := result.(*evaluator.Integer); !ok || i.Value != 1 {
		t.Fatalf("tag = %s, want 1", result.Inspect())
	}
}

func TestVariantIntrinsicErrors(t *testing.T) {
	reg := testRegistry(t)

	result := evalWithRegistry(t, `__adt_new("Cons", 1)`, reg)
	if _, ok := result.(*evaluator.Error); !ok {
		t.Errorf("arity mismatch must be an error, got %s", result.Inspect())
	}

	result = evalWithRegistry(t, `__adt_new("Kons")`, reg)
	if _, ok := result.(*evaluator.Error); !ok {
		t.Errorf("unknown constructor must be an error, got %s", result.Inspect())
	}

	result = evalWithRegistry(t, `__adt_field(__adt_new("Nil"), 0)`, reg)
	if _, ok := result.(*evaluator.Error); !ok {
		t.Errorf("out-of-range field must be an error, got %s", result.Inspect())
	}
}

func TestDataEqualityIsStructural(t *testing.T) {
	reg := testRegistry(t)
	result := evalWithRegistry(t, `
let a = __adt_new("Cons", 1, __adt_new("Nil"))
let b = __adt_new("Cons", 1, __adt_new("Nil"))
let c = __adt_new("Cons", 2, __adt_new("Nil"))
a == b && a != c
`, reg)
	if b, ok := result.(*evaluator.Boolean); !ok || !b.Value {
		t.Fatalf("structural equality = %s, want true", result.Inspect())
	}
}

func TestTrampolineIntrinsics(t *testing.T) {
	result := eval(t, `
fun inc(n) { n + 1 }
let m = __tco_call(inc, 41)
if __tco_is(m) {
    __tco_invoke(m)
} else {
    0
}
`)
	if i, ok := result.(*evaluator.Integer); !ok || i.Value != 42 {
		t.Fatalf("invoke = %s, want 42", result.Inspect())
	}

	result = eval(t, `__tco_is(5)`)
	if b, ok := result.(*evaluator.Boolean); !ok || b.Value {
		t.Fatalf("__tco_is(5) = %s, want false", result.Inspect())
	}

	result = eval(t, `
fun id(x) { x }
__tco_arg(__tco_call(id, 7, 8), 1)
`)
	if i, ok := result.(*evaluator.Integer); !ok || i.Value != 8 {
		t.Fatalf("__tco_arg = %s, want 8", result.Inspect())
	}
}

func TestMatchFailIntrinsic(t *testing.T) {
	expectError(t, `__match_fail("no clause matched at line 3")`, "no clause matched")
}
