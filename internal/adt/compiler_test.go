package adt_test

import (
	"testing"

	"github.com/funvibe/funcase/internal/adt"
	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/config"
	"github.com/funvibe/funcase/internal/diagnostics"
	"github.com/funvibe/funcase/internal/lexer"
	"github.com/funvibe/funcase/internal/parser"
	"github.com/funvibe/funcase/internal/variant"

	"github.com/google/uuid"
)

func parseDecl(t *testing.T, src string) *ast.DataDeclaration {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	decl, ok := prog.Statements[0].(*ast.DataDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.DataDeclaration", prog.Statements[0])
	}
	return decl
}

func TestCompileRegistersTheType(t *testing.T) {
	reg := variant.NewRegistry()
	unitID := uuid.New()

	compiled, diags := adt.Compile(parseDecl(t, "data List = Nil | Cons(head, tail)"), reg, unitID)
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	if compiled.Spec.TypeName != "List" {
		t.Errorf("type name = %q, want List", compiled.Spec.TypeName)
	}
	if compiled.Spec.UnitID != unitID {
		t.Errorf("spec does not carry the declaring unit id")
	}

	cons, ok := reg.LookupConstructor("Cons")
	if !ok {
		t.Fatalf("Cons not registered")
	}
	if cons.Arity != 2 || cons.TagID != 1 {
		t.Errorf("Cons = arity %d tag %d, want arity 2 tag 1", cons.Arity, cons.TagID)
	}
}

func TestCompileEmitsOneFunctionPerConstructor(t *testing.T) {
	reg := variant.NewRegistry()
	compiled, diags := adt.Compile(parseDecl(t, "data List = Nil | Cons(head, tail)"), reg, uuid.New())
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(compiled.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(compiled.Statements))
	}

	fn, ok := compiled.Statements[1].(*ast.FunctionStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionStatement", compiled.Statements[1])
	}
	if fn.Name.Value != "Cons" {
		t.Errorf("function name = %q, want Cons", fn.Name.Value)
	}
	if len(fn.Parameters) != 2 || fn.Parameters[0].Value != "head" {
		t.Errorf("parameters = %v, want declared field names", fn.Parameters)
	}

	// The body is a single __adt_new call with the tag string first and the
	// parameters after it.
	es, ok := fn.Body.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("body statement is %T", fn.Body.Statements[0])
	}
	call, ok := es.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("body expression is %T", es.Expression)
	}
	if id, ok := call.Function.(*ast.Identifier); !ok || id.Value != config.AdtNewFuncName {
		t.Errorf("call target = %v, want %s", call.Function, config.AdtNewFuncName)
	}
	if len(call.Arguments) != 3 {
		t.Fatalf("got %d arguments, want 3", len(call.Arguments))
	}
	if tag, ok := call.Arguments[0].(*ast.StringLiteral); !ok || tag.Value != "Cons" {
		t.Errorf("first argument = %v, want the tag string", call.Arguments[0])
	}
}

func TestDuplicateConstructorInDeclaration(t *testing.T) {
	reg := variant.NewRegistry()
	compiled, diags := adt.Compile(parseDecl(t, "data Shape = Dot | Dot"), reg, uuid.New())
	if compiled != nil {
		t.Errorf("compilation must fail")
	}
	if len(diags) != 1 || diags[0].Code != diagnostics.ErrD001 {
		t.Fatalf("got %v, want one D001", diags)
	}
	// A failed declaration leaves no trace in the registry.
	if _, ok := reg.LookupType("Shape"); ok {
		t.Errorf("failed declaration leaked into the registry")
	}
}

func TestConstructorClashAgainstAnotherType(t *testing.T) {
	reg := variant.NewRegistry()
	if _, diags := adt.Compile(parseDecl(t, "data List = Nil | Cons(head, tail)"), reg, uuid.New()); len(diags) > 0 {
		t.Fatalf("setup failed: %v", diags)
	}

	compiled, diags := adt.Compile(parseDecl(t, "data Stack = Empty | Cons(top, rest)"), reg, uuid.New())
	if compiled != nil || len(diags) == 0 || diags[0].Code != diagnostics.ErrD001 {
		t.Fatalf("got %v, want D001 for the cross-type clash", diags)
	}
	if _, ok := reg.LookupType("Stack"); ok {
		t.Errorf("failed declaration leaked into the registry")
	}
	if _, ok := reg.LookupConstructor("Empty"); ok {
		t.Errorf("failed declaration leaked a constructor")
	}
}
