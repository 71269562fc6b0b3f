package ast

import (
	"github.com/funvibe/funcase/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its primary token.
// This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node of every compilation unit.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// LetStatement introduces a new binding in the current scope.
// let x = 5
type LetStatement struct {
	Token token.Token // The 'let' token
	Name  *Identifier
	Value Expression
}

func (ls *LetStatement) statementNode()        {}
func (ls *LetStatement) TokenLiteral() string  { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token { return ls.Token }

// ReturnStatement represents a return statement.
// return <expression>
type ReturnStatement struct {
	Token token.Token // The 'return' token
	Value Expression
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// ExpressionStatement is a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// BlockStatement represents a list of statements within curly braces.
// A block is also an expression: its value is the value of the last statement.
type BlockStatement struct {
	Token      token.Token // {
	Statements []Statement
}

func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) expressionNode()       {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

// FunctionStatement represents a named function definition.
// fun name(a, b) { body }
type FunctionStatement struct {
	Token      token.Token // The 'fun' token
	Name       *Identifier
	Parameters []*Identifier
	Body       *BlockStatement
}

func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }

// BreakStatement represents a break statement.
// break or break <expression>
type BreakStatement struct {
	Token token.Token // The 'break' token
	Value Expression  // Optional value to return from the loop
}

func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }

// ContinueStatement represents a continue statement.
type ContinueStatement struct {
	Token token.Token // The 'continue' token
}

func (cs *ContinueStatement) statementNode()        {}
func (cs *ContinueStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ContinueStatement) GetToken() token.Token { return cs.Token }

// ConstructorDef is a single constructor inside a data declaration.
// Cons(head, tail) — arity is len(Fields). Field names are documentation
// only; variant fields are positional at runtime.
type ConstructorDef struct {
	Token  token.Token // The constructor name token
	Name   *Identifier
	Fields []*Identifier
}

func (cd *ConstructorDef) GetToken() token.Token { return cd.Token }

// Arity returns the declared number of fields.
func (cd *ConstructorDef) Arity() int { return len(cd.Fields) }

// DataDeclaration declares an algebraic data type.
// data List = Nil | Cons(head, tail)
type DataDeclaration struct {
	Token        token.Token // The 'data' token
	Name         *Identifier
	Constructors []*ConstructorDef
}

func (dd *DataDeclaration) statementNode()        {}
func (dd *DataDeclaration) TokenLiteral() string  { return dd.Token.Lexeme }
func (dd *DataDeclaration) GetToken() token.Token { return dd.Token }
