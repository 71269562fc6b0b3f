package ast

import (
	"github.com/funvibe/funcase/internal/token"
)

// Pattern is a compile-time-only node: patterns never survive into the
// transformed tree, the match compiler lowers them to tag tests and field
// projections.
type Pattern interface {
	Node
	patternNode()
	GetToken() token.Token
}

// WildcardPattern: _
type WildcardPattern struct {
	Token token.Token
}

func (p *WildcardPattern) patternNode()          {}
func (p *WildcardPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *WildcardPattern) GetToken() token.Token { return p.Token }

// IdentifierPattern: x — matches anything and binds it.
type IdentifierPattern struct {
	Token token.Token
	Value string
}

func (p *IdentifierPattern) patternNode()          {}
func (p *IdentifierPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *IdentifierPattern) GetToken() token.Token { return p.Token }

// LiteralPattern: 1, true, "s". Value is int64, bool or string.
type LiteralPattern struct {
	Token token.Token
	Value interface{}
}

func (p *LiteralPattern) patternNode()          {}
func (p *LiteralPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *LiteralPattern) GetToken() token.Token { return p.Token }

// ConstructorPattern: Cons(x, xs), Nil
type ConstructorPattern struct {
	Token    token.Token // Constructor name
	Name     *Identifier
	Elements []Pattern
}

func (p *ConstructorPattern) patternNode()          {}
func (p *ConstructorPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *ConstructorPattern) GetToken() token.Token { return p.Token }

// OrPattern: Nil | Cons(x, Nil) — matches if any alternative matches.
// All alternatives must bind the same set of names.
type OrPattern struct {
	Token        token.Token // the '|' token
	Alternatives []Pattern
}

func (p *OrPattern) patternNode()          {}
func (p *OrPattern) TokenLiteral() string  { return p.Token.Lexeme }
func (p *OrPattern) GetToken() token.Token { return p.Token }
