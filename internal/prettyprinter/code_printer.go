// Package prettyprinter renders trees back to source text. The build
// command uses it to write the transformed unit; it also prints
// untransformed trees, so match expressions and data declarations render
// too.
package prettyprinter

import (
	"fmt"
	"strings"

	"github.com/funvibe/funcase/internal/ast"
)

const indentUnit = "    "

// Print renders the node as source text.
func Print(node ast.Node) string {
	p := &printer{}
	switch n := node.(type) {
	case *ast.Program:
		for i, s := range n.Statements {
			if i > 0 {
				p.sb.WriteString("\n")
			}
			p.stmt(s)
		}
	case ast.Statement:
		p.stmt(n)
	case ast.Expression:
		p.expr(n)
	}
	return p.sb.String()
}

type printer struct {
	sb     strings.Builder
	indent int
}

func (p *printer) line(format string, args ...interface{}) {
	p.pad()
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteString("\n")
}

func (p *printer) pad() {
	p.sb.WriteString(strings.Repeat(indentUnit, p.indent))
}

func (p *printer) stmt(s ast.Statement) {
	switch st := s.(type) {
	case *ast.LetStatement:
		p.pad()
		p.sb.WriteString("let " + st.Name.Value + " = ")
		p.expr(st.Value)
		p.sb.WriteString("\n")

	case *ast.ReturnStatement:
		p.pad()
		p.sb.WriteString("return")
		if st.Value != nil {
			p.sb.WriteString(" ")
			p.expr(st.Value)
		}
		p.sb.WriteString("\n")

	case *ast.BreakStatement:
		p.pad()
		p.sb.WriteString("break")
		if st.Value != nil {
			p.sb.WriteString(" ")
			p.expr(st.Value)
		}
		p.sb.WriteString("\n")

	case *ast.ContinueStatement:
		p.line("continue")

	case *ast.FunctionStatement:
		params := make([]string, len(st.Parameters))
		for i, prm := range st.Parameters {
			params[i] = prm.Value
		}
		p.pad()
		p.sb.WriteString("fun " + st.Name.Value + "(" + strings.Join(params, ", ") + ") ")
		p.block(st.Body)
		p.sb.WriteString("\n")

	case *ast.DataDeclaration:
		ctors := make([]string, len(st.Constructors))
		for i, c := range st.Constructors {
			ctors[i] = constructorDef(c)
		}
		p.line("data %s = %s", st.Name.Value, strings.Join(ctors, " | "))

	case *ast.BlockStatement:
		p.pad()
		p.block(st)
		p.sb.WriteString("\n")

	case *ast.ExpressionStatement:
		p.pad()
		p.expr(st.Expression)
		p.sb.WriteString("\n")
	}
}

func constructorDef(c *ast.ConstructorDef) string {
	if len(c.Fields) == 0 {
		return c.Name.Value
	}
	fields := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		fields[i] = f.Value
	}
	return c.Name.Value + "(" + strings.Join(fields, ", ") + ")"
}

// block writes "{ ... }" starting at the current position; the caller owns
// the surrounding layout.
func (p *printer) block(b *ast.BlockStatement) {
	if len(b.Statements) == 0 {
		p.sb.WriteString("{}")
		return
	}
	p.sb.WriteString("{\n")
	p.indent++
	for _, s := range b.Statements {
		p.stmt(s)
	}
	p.indent--
	p.pad()
	p.sb.WriteString("}")
}

func (p *printer) expr(e ast.Expression) {
	switch ex := e.(type) {
	case *ast.Identifier:
		p.sb.WriteString(ex.Value)

	case *ast.IntegerLiteral:
		fmt.Fprintf(&p.sb, "%d", ex.Value)

	case *ast.BooleanLiteral:
		fmt.Fprintf(&p.sb, "%t", ex.Value)

	case *ast.StringLiteral:
		fmt.Fprintf(&p.sb, "%q", ex.Value)

	case *ast.PrefixExpression:
		p.sb.WriteString(ex.Operator)
		p.expr(ex.Right)

	case *ast.InfixExpression:
		p.sb.WriteString("(")
		p.expr(ex.Left)
		p.sb.WriteString(" " + ex.Operator + " ")
		p.expr(ex.Right)
		p.sb.WriteString(")")

	case *ast.AssignExpression:
		p.sb.WriteString(ex.Name.Value + " = ")
		p.expr(ex.Value)

	case *ast.CallExpression:
		p.expr(ex.Function)
		p.sb.WriteString("(")
		for i, a := range ex.Arguments {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.expr(a)
		}
		p.sb.WriteString(")")

	case *ast.IfExpression:
		p.sb.WriteString("if ")
		p.expr(ex.Condition)
		p.sb.WriteString(" ")
		p.block(ex.Consequence)
		if ex.Alternative != nil {
			p.sb.WriteString(" else ")
			p.block(ex.Alternative)
		}

	case *ast.ForExpression:
		p.sb.WriteString("for ")
		p.expr(ex.Condition)
		p.sb.WriteString(" ")
		p.block(ex.Body)

	case *ast.MatchExpression:
		p.sb.WriteString("match ")
		p.expr(ex.Expression)
		p.sb.WriteString(" {\n")
		p.indent++
		for _, arm := range ex.Arms {
			p.pad()
			p.sb.WriteString(patternString(arm.Pattern))
			if arm.Guard != nil {
				p.sb.WriteString(" if ")
				p.expr(arm.Guard)
			}
			p.sb.WriteString(" -> ")
			p.expr(arm.Expression)
			p.sb.WriteString(",\n")
		}
		p.indent--
		p.pad()
		p.sb.WriteString("}")

	case *ast.BlockStatement:
		p.block(ex)
	}
}

func patternString(pat ast.Pattern) string {
	switch pt := pat.(type) {
	case *ast.WildcardPattern:
		return "_"
	case *ast.IdentifierPattern:
		return pt.Value
	case *ast.LiteralPattern:
		if s, ok := pt.Value.(string); ok {
			return fmt.Sprintf("%q", s)
		}
		return fmt.Sprintf("%v", pt.Value)
	case *ast.ConstructorPattern:
		if len(pt.Elements) == 0 {
			return pt.Name.Value
		}
		els := make([]string, len(pt.Elements))
		for i, el := range pt.Elements {
			els[i] = patternString(el)
		}
		return pt.Name.Value + "(" + strings.Join(els, ", ") + ")"
	case *ast.OrPattern:
		alts := make([]string, len(pt.Alternatives))
		for i, a := range pt.Alternatives {
			alts[i] = patternString(a)
		}
		return strings.Join(alts, " | ")
	default:
		return ""
	}
}
