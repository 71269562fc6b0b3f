package parser

import (
	"github.com/funvibe/funcase/internal/ast"
	"github.com/funvibe/funcase/internal/diagnostics"
	"github.com/funvibe/funcase/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.FUN:
		return p.parseFunctionStatement()
	case token.DATA:
		return p.parseDataDeclaration()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return &ast.ContinueStatement{Token: p.curToken}
	case token.SEMICOLON:
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() *ast.LetStatement {
	stmt := &ast.LetStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT_LOWER) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()

	stmt.Value = p.parseExpression(LOWEST)
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseBreakStatement() *ast.BreakStatement {
	stmt := &ast.BreakStatement{Token: p.curToken}
	// break may carry a loop result value
	if !p.peekTokenIs(token.SEMICOLON) && !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	if stmt.Expression == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseFunctionStatement() *ast.FunctionStatement {
	stmt := &ast.FunctionStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT_LOWER) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.Parameters = p.parseParameterList()
	if stmt.Parameters == nil {
		return nil
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseParameterList() []*ast.Identifier {
	params := []*ast.Identifier{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		if !p.expectPeek(token.IDENT_LOWER) {
			return nil
		}
		params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	if p.curTokenIs(token.EOF) {
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP001, p.curToken, "unterminated block, expected }"))
	}
	return block
}

// parseDataDeclaration parses an algebraic data type declaration:
//
//	data List = Nil | Cons(head, tail)
func (p *Parser) parseDataDeclaration() *ast.DataDeclaration {
	stmt := &ast.DataDeclaration{Token: p.curToken}

	if p.peekTokenIs(token.IDENT_LOWER) {
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP003, p.peekToken, "data type name must start with an uppercase letter"))
		return nil
	}
	if !p.expectPeek(token.IDENT_UPPER) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}

	for {
		ctor := p.parseConstructorDef()
		if ctor == nil {
			return nil
		}
		stmt.Constructors = append(stmt.Constructors, ctor)
		if !p.peekTokenIs(token.PIPE) {
			break
		}
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseConstructorDef() *ast.ConstructorDef {
	if p.peekTokenIs(token.IDENT_LOWER) {
		p.errors = append(p.errors, diagnostics.NewError(
			diagnostics.ErrP003, p.peekToken, "constructor name must start with an uppercase letter"))
		return nil
	}
	if !p.expectPeek(token.IDENT_UPPER) {
		return nil
	}
	ctor := &ast.ConstructorDef{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
	}

	if !p.peekTokenIs(token.LPAREN) {
		return ctor // nullary constructor
	}
	p.nextToken()

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return ctor
	}
	for {
		if !p.expectPeek(token.IDENT_LOWER) {
			return nil
		}
		ctor.Fields = append(ctor.Fields, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return ctor
}
