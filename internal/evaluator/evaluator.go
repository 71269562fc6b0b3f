// Package evaluator is a tree-walking interpreter for transformed programs.
// It deliberately has no pattern-matching or data-declaration support: those
// constructs must be lowered by the pipeline first, and evaluating one is a
// runtime error. The variant and trampoline runtimes are exposed to host
// code as builtin functions.
package evaluator

import (
	"fmt"

	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/config"
	"github.com/funvibe/funcase/internal/variant"
)

var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func Eval(node ast.Node, env *Environment) Object {
	switch node := node.(type) {
	case *ast.Program:
		return evalProgram(node, env)

	case *ast.ExpressionStatement:
		return Eval(node.Expression, env)

	case *ast.LetStatement:
		val := Eval(node.Value, env)
		if isError(val) {
			return val
		}
		env.Set(node.Name.Value, val)
		return val

	case *ast.AssignExpression:
		val := Eval(node.Value, env)
		if isError(val) {
			return val
		}
		if !env.Update(node.Name.Value, val) {
			env.Set(node.Name.Value, val)
		}
		return val

	case *ast.ReturnStatement:
		val := Object(NIL)
		if node.Value != nil {
			val = Eval(node.Value, env)
			if isError(val) {
				return val
			}
		}
		return &ReturnValue{Value: val}

	case *ast.BreakStatement:
		val := Object(NIL)
		if node.Value != nil {
			val = Eval(node.Value, env)
			if isError(val) {
				return val
			}
		}
		return &BreakSignal{Value: val}

	case *ast.ContinueStatement:
		return &ContinueSignal{}

	case *ast.BlockStatement:
		return evalBlockStatement(node, NewEnclosedEnvironment(env))

	case *ast.FunctionStatement:
		fn := &Function{
			Name:       node.Name.Value,
			Parameters: node.Parameters,
			Body:       node.Body,
			Env:        env,
		}
		env.Set(node.Name.Value, fn)
		return fn

	case *ast.DataDeclaration:
		return newError(node.Token.Line, node.Token.Column,
			"data declaration reached the evaluator: the unit was not transformed")

	case *ast.MatchExpression:
		return newError(node.Token.Line, node.Token.Column,
			"match expression reached the evaluator: the unit was not transformed")

	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}

	case *ast.BooleanLiteral:
		return nativeBool(node.Value)

	case *ast.StringLiteral:
		return &String{Value: node.Value}

	case *ast.Identifier:
		return evalIdentifier(node, env)

	case *ast.PrefixExpression:
		right := Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return evalPrefixExpression(node, right)

	case *ast.InfixExpression:
		return evalInfixExpression(node, env)

	case *ast.IfExpression:
		return evalIfExpression(node, env)

	case *ast.ForExpression:
		return evalForExpression(node, env)

	case *ast.CallExpression:
		fn := Eval(node.Function, env)
		if isError(fn) {
			return fn
		}
		args, errObj := evalExpressions(node.Arguments, env)
		if errObj != nil {
			return errObj
		}
		return applyFunction(fn, args, node.Token.Line, node.Token.Column)
	}

	return NIL
}

func evalProgram(program *ast.Program, env *Environment) Object {
	var result Object = NIL
	for _, stmt := range program.Statements {
		result = Eval(stmt, env)
		switch r := result.(type) {
		case *ReturnValue:
			return r.Value
		case *Error:
			return r
		case *BreakSignal:
			return newError(0, 0, "break outside of a loop")
		case *ContinueSignal:
			return newError(0, 0, "continue outside of a loop")
		}
	}
	return result
}

// evalBlockStatement yields the value of the last statement. Control
// signals pass through unopened so the enclosing construct handles them.
func evalBlockStatement(block *ast.BlockStatement, env *Environment) Object {
	var result Object = NIL
	for _, stmt := range block.Statements {
		result = Eval(stmt, env)
		switch result.(type) {
		case *ReturnValue, *BreakSignal, *ContinueSignal, *Error:
			return result
		}
	}
	return result
}

func evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	return newError(node.Token.Line, node.Token.Column,
		"identifier not found: %s", node.Value)
}

func evalPrefixExpression(node *ast.PrefixExpression, right Object) Object {
	switch node.Operator {
	case "!":
		return nativeBool(!isTruthy(right))
	case "-":
		if i, ok := right.(*Integer); ok {
			return &Integer{Value: -i.Value}
		}
		return newError(node.Token.Line, node.Token.Column,
			"unknown operator: -%s", right.Type())
	default:
		return newError(node.Token.Line, node.Token.Column,
			"unknown operator: %s%s", node.Operator, right.Type())
	}
}

func evalInfixExpression(node *ast.InfixExpression, env *Environment) Object {
	// && and || short-circuit; everything else evaluates both sides.
	switch node.Operator {
	case "&&":
		left := Eval(node.Left, env)
		if isError(left) {
			return left
		}
		if !isTruthy(left) {
			return FALSE
		}
		right := Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return nativeBool(isTruthy(right))
	case "||":
		left := Eval(node.Left, env)
		if isError(left) {
			return left
		}
		if isTruthy(left) {
			return TRUE
		}
		right := Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return nativeBool(isTruthy(right))
	}

	left := Eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := Eval(node.Right, env)
	if isError(right) {
		return right
	}

	switch node.Operator {
	case "==":
		return nativeBool(objectEquals(left, right))
	case "!=":
		return nativeBool(!objectEquals(left, right))
	}

	switch {
	case left.Type() == INTEGER_OBJ && right.Type() == INTEGER_OBJ:
		return evalIntegerInfix(node, left.(*Integer), right.(*Integer))
	case left.Type() == STRING_OBJ && right.Type() == STRING_OBJ && node.Operator == "+":
		return &String{Value: left.(*String).Value + right.(*String).Value}
	default:
		return newError(node.Token.Line, node.Token.Column,
			"unknown operator: %s %s %s", left.Type(), node.Operator, right.Type())
	}
}

func evalIntegerInfix(node *ast.InfixExpression, left, right *Integer) Object {
	switch node.Operator {
	case "+":
		return &Integer{Value: left.Value + right.Value}
	case "-":
		return &Integer{Value: left.Value - right.Value}
	case "*":
		return &Integer{Value: left.Value * right.Value}
	case "/":
		if right.Value == 0 {
			return newError(node.Token.Line, node.Token.Column, "division by zero")
		}
		return &Integer{Value: left.Value / right.Value}
	case "%":
		if right.Value == 0 {
			return newError(node.Token.Line, node.Token.Column, "division by zero")
		}
		return &Integer{Value: left.Value % right.Value}
	case "<":
		return nativeBool(left.Value < right.Value)
	case ">":
		return nativeBool(left.Value > right.Value)
	case "<=":
		return nativeBool(left.Value <= right.Value)
	case ">=":
		return nativeBool(left.Value >= right.Value)
	default:
		return newError(node.Token.Line, node.Token.Column,
			"unknown operator: INTEGER %s INTEGER", node.Operator)
	}
}

func evalIfExpression(node *ast.IfExpression, env *Environment) Object {
	cond := Eval(node.Condition, env)
	if isError(cond) {
		return cond
	}
	if isTruthy(cond) {
		return Eval(node.Consequence, env)
	}
	if node.Alternative != nil {
		return Eval(node.Alternative, env)
	}
	return NIL
}

// evalForExpression loops while the condition is truthy. The loop's value
// is the value passed to break; a loop left by its condition yields nil.
func evalForExpression(node *ast.ForExpression, env *Environment) Object {
	for {
		cond := Eval(node.Condition, env)
		if isError(cond) {
			return cond
		}
		if !isTruthy(cond) {
			return NIL
		}
		result := Eval(node.Body, env)
		switch r := result.(type) {
		case *BreakSignal:
			return r.Value
		case *ContinueSignal:
			continue
		case *ReturnValue:
			return r
		case *Error:
			return r
		}
	}
}

func evalExpressions(exprs []ast.Expression, env *Environment) ([]Object, Object) {
	result := make([]Object, 0, len(exprs))
	for _, e := range exprs {
		val := Eval(e, env)
		if isError(val) {
			return nil, val
		}
		result = append(result, val)
	}
	return result, nil
}

func applyFunction(fn Object, args []Object, line, column int) Object {
	return applyWithMode(fn, args, false, line, column)
}

// applyWithMode applies fn with the given trampoline flag bound in the call
// frame. Direct calls bind __active false so a rewritten callee starts its
// own trampoline; __tco_invoke binds true so the callee returns markers to
// the loop already running.
func applyWithMode(fn Object, args []Object, inTrampoline bool, line, column int) Object {
	switch f := fn.(type) {
	case *Function:
		if len(args) != len(f.Parameters) {
			return newError(line, column,
				"wrong number of arguments to %s: want %d, got %d",
				f.Name, len(f.Parameters), len(args))
		}
		env := NewEnclosedEnvironment(f.Env)
		for i, p := range f.Parameters {
			env.Set(p.Value, args[i])
		}
		env.Set(config.TcoActiveName, nativeBool(inTrampoline))

		result := Eval(f.Body, env)
		switch r := result.(type) {
		case *ReturnValue:
			return r.Value
		case *BreakSignal:
			return newError(line, column, "break outside of a loop")
		case *ContinueSignal:
			return newError(line, column, "continue outside of a loop")
		}
		return result

	case *Builtin:
		return f.Fn(line, column, args...)

	default:
		return newError(line, column, "not a function: %s", fn.Type())
	}
}

func isTruthy(obj Object) bool {
	switch o := obj.(type) {
	case *Nil:
		return false
	case *Boolean:
		return o.Value
	default:
		return true
	}
}

func objectEquals(a, b Object) bool {
	switch av := a.(type) {
	case *Integer:
		bv, ok := b.(*Integer)
		return ok && av.Value == bv.Value
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *Data:
		bv, ok := b.(*Data)
		if !ok {
			return false
		}
		return variant.Equal(av.Value, bv.Value, func(x, y interface{}) bool {
			xo, xok := x.(Object)
			yo, yok := y.(Object)
			return xok && yok && objectEquals(xo, yo)
		})
	default:
		return a == b
	}
}

func nativeBool(v bool) *Boolean {
	if v {
		return TRUE
	}
	return FALSE
}

func isError(obj Object) bool {
	_, ok := obj.(*Error)
	return ok
}

func newError(line, column int, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Line: line, Column: column}
}
