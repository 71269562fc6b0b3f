package ast

import (
	"github.com/funvibe/funcase/internal/token"
)

// Builders for compiler-synthesized nodes. Synthesized nodes reuse the
// token of the construct they were generated from, so runtime errors in
// emitted code still point at the original source location.

func NewIdent(tok token.Token, name string) *Identifier {
	return &Identifier{Token: tok, Value: name}
}

func NewInt(tok token.Token, v int64) *IntegerLiteral {
	return &IntegerLiteral{Token: tok, Value: v}
}

func NewString(tok token.Token, v string) *StringLiteral {
	return &StringLiteral{Token: tok, Value: v}
}

func NewBool(tok token.Token, v bool) *BooleanLiteral {
	return &BooleanLiteral{Token: tok, Value: v}
}

func NewCall(tok token.Token, fn string, args ...Expression) *CallExpression {
	return &CallExpression{Token: tok, Function: NewIdent(tok, fn), Arguments: args}
}

func NewInfix(tok token.Token, left Expression, op string, right Expression) *InfixExpression {
	return &InfixExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func NewLet(tok token.Token, name string, value Expression) *LetStatement {
	return &LetStatement{Token: tok, Name: NewIdent(tok, name), Value: value}
}

func NewAssign(tok token.Token, name string, value Expression) *AssignExpression {
	return &AssignExpression{Token: tok, Name: NewIdent(tok, name), Value: value}
}

func NewExprStmt(e Expression) *ExpressionStatement {
	return &ExpressionStatement{Token: e.GetToken(), Expression: e}
}

func NewBlock(tok token.Token, stmts ...Statement) *BlockStatement {
	return &BlockStatement{Token: tok, Statements: stmts}
}
