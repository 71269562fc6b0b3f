package parser

import (
	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/diagnostics"
	"github.com/funvibe/funcase/internal/token"
)

// parseMatchExpression parses:
//
//	match <expr> { <pattern> [if <guard>] -> <expr>, … }
func (p *Parser) parseMatchExpression() ast.Expression {
	expr := &ast.MatchExpression{Token: p.curToken}
	p.nextToken()
	expr.Expression = p.parseExpression(LOWEST)

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		arm := p.parseMatchArm()
		if arm == nil {
			return nil
		}
		expr.Arms = append(expr.Arms, arm)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	if len(expr.Arms) == 0 {
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP003, expr.Token, "match expression has no clauses"))
		return nil
	}
	return expr
}

func (p *Parser) parseMatchArm() *ast.MatchArm {
	arm := &ast.MatchArm{}

	arm.Pattern = p.parsePattern()
	if arm.Pattern == nil {
		return nil
	}

	if p.peekTokenIs(token.IF) {
		p.nextToken()
		p.nextToken()
		arm.Guard = p.parseExpression(LOWEST)
		if arm.Guard == nil {
			return nil
		}
	}

	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	arm.Expression = p.parseExpression(LOWEST)
	if arm.Expression == nil {
		return nil
	}
	return arm
}

// parsePattern parses a pattern, including | alternatives.
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parseSinglePattern()
	if first == nil {
		return nil
	}
	if !p.peekTokenIs(token.PIPE) {
		return first
	}

	or := &ast.OrPattern{Token: p.peekToken, Alternatives: []ast.Pattern{first}}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		alt := p.parseSinglePattern()
		if alt == nil {
			return nil
		}
		or.Alternatives = append(or.Alternatives, alt)
	}
	return or
}

func (p *Parser) parseSinglePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.WILDCARD:
		return &ast.WildcardPattern{Token: p.curToken}

	case token.IDENT_LOWER:
		return &ast.IdentifierPattern{Token: p.curToken, Value: p.curToken.Lexeme}

	case token.INT:
		value, _ := p.curToken.Literal.(int64)
		return &ast.LiteralPattern{Token: p.curToken, Value: value}

	case token.MINUS:
		tok := p.curToken
		if !p.expectPeek(token.INT) {
			return nil
		}
		value, _ := p.curToken.Literal.(int64)
		return &ast.LiteralPattern{Token: tok, Value: -value}

	case token.STRING:
		value, _ := p.curToken.Literal.(string)
		return &ast.LiteralPattern{Token: p.curToken, Value: value}

	case token.TRUE, token.FALSE:
		return &ast.LiteralPattern{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}

	case token.IDENT_UPPER:
		return p.parseConstructorPattern()

	default:
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP001, p.curToken, "unexpected token %s in pattern", p.curToken.Type))
		return nil
	}
}

func (p *Parser) parseConstructorPattern() ast.Pattern {
	pat := &ast.ConstructorPattern{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
	}

	if !p.peekTokenIs(token.LPAREN) {
		return pat // nullary constructor pattern
	}
	p.nextToken()

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return pat
	}
	for {
		p.nextToken()
		el := p.parsePattern()
		if el == nil {
			return nil
		}
		pat.Elements = append(pat.Elements, el)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return pat
}
