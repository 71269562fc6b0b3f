package evaluator

import (
	"fmt"
	"strings"

	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/variant"
)

type ObjectType string

const (
	INTEGER_OBJ  = "INTEGER"
	BOOLEAN_OBJ  = "BOOLEAN"
	STRING_OBJ   = "STRING"
	NIL_OBJ      = "NIL"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
	DATA_OBJ     = "DATA"

	RETURN_VALUE_OBJ = "RETURN_VALUE"
	BREAK_OBJ        = "BREAK"
	CONTINUE_OBJ     = "CONTINUE"
	ERROR_OBJ        = "ERROR"
	TCO_MARKER_OBJ   = "TCO_MARKER"
)

// Object is a runtime value.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

// Function is a user-defined function closed over its definition
// environment.
type Function struct {
	Name       string
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.Value
	}
	return fmt.Sprintf("fun %s(%s) { ... }", f.Name, strings.Join(params, ", "))
}

type BuiltinFunction func(line, column int, args ...Object) Object

type Builtin struct {
	Fn BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function" }

// Data wraps a tagged variant value. Fields hold evaluator Objects, so
// Inspect renders nested values through their own Inspect.
type Data struct {
	Value *variant.Value
}

func (d *Data) Type() ObjectType { return DATA_OBJ }
func (d *Data) Inspect() string  { return d.Value.String() }

// ReturnValue carries a return out of nested blocks to the function
// boundary.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// BreakSignal carries a break (and the loop's value) to the enclosing loop.
type BreakSignal struct {
	Value Object
}

func (bs *BreakSignal) Type() ObjectType { return BREAK_OBJ }
func (bs *BreakSignal) Inspect() string  { return "break" }

type ContinueSignal struct{}

func (cs *ContinueSignal) Type() ObjectType { return CONTINUE_OBJ }
func (cs *ContinueSignal) Inspect() string  { return "continue" }

type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	return fmt.Sprintf("runtime error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// TcoMarker is a suspended tail call: the trampoline loop applies Target to
// Args instead of letting the stack grow. Markers are ordinary values to
// the evaluator; only the rewritten code and the __tco_* builtins ever see
// them.
type TcoMarker struct {
	Target Object
	Args   []Object
}

func (m *TcoMarker) Type() ObjectType { return TCO_MARKER_OBJ }
func (m *TcoMarker) Inspect() string {
	return fmt.Sprintf("tail call -> %s/%d", m.Target.Inspect(), len(m.Args))
}
