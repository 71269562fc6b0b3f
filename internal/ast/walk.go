package ast

// Rewrite applies f to every statement and expression of the tree, bottom-up
// (children first), and returns the rewritten tree. The input tree is never
// mutated: nodes are shallow-copied on the way down, so a failed
// transformation pass can discard its partial result and hand the caller's
// tree back untouched. Patterns are not visited — they are compile-time-only
// nodes that the match compiler consumes whole.
func Rewrite(node Node, f func(Node) Node) Node {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Program:
		out := &Program{File: n.File, Statements: make([]Statement, len(n.Statements))}
		for i, s := range n.Statements {
			out.Statements[i] = rewriteStmt(s, f)
		}
		return f(out)

	case *LetStatement:
		out := *n
		out.Value = rewriteExpr(n.Value, f)
		return f(&out)

	case *ReturnStatement:
		out := *n
		out.Value = rewriteExpr(n.Value, f)
		return f(&out)

	case *ExpressionStatement:
		out := *n
		out.Expression = rewriteExpr(n.Expression, f)
		return f(&out)

	case *BlockStatement:
		out := &BlockStatement{Token: n.Token, Statements: make([]Statement, len(n.Statements))}
		for i, s := range n.Statements {
			out.Statements[i] = rewriteStmt(s, f)
		}
		return f(out)

	case *FunctionStatement:
		out := *n
		out.Body, _ = Rewrite(n.Body, f).(*BlockStatement)
		return f(&out)

	case *BreakStatement:
		out := *n
		out.Value = rewriteExpr(n.Value, f)
		return f(&out)

	case *ContinueStatement:
		out := *n
		return f(&out)

	case *DataDeclaration:
		out := *n
		return f(&out)

	case *Identifier, *IntegerLiteral, *BooleanLiteral, *StringLiteral:
		return f(node)

	case *PrefixExpression:
		out := *n
		out.Right = rewriteExpr(n.Right, f)
		return f(&out)

	case *InfixExpression:
		out := *n
		out.Left = rewriteExpr(n.Left, f)
		out.Right = rewriteExpr(n.Right, f)
		return f(&out)

	case *IfExpression:
		out := *n
		out.Condition = rewriteExpr(n.Condition, f)
		out.Consequence, _ = Rewrite(n.Consequence, f).(*BlockStatement)
		if n.Alternative != nil {
			out.Alternative, _ = Rewrite(n.Alternative, f).(*BlockStatement)
		}
		return f(&out)

	case *CallExpression:
		out := *n
		out.Function = rewriteExpr(n.Function, f)
		out.Arguments = make([]Expression, len(n.Arguments))
		for i, a := range n.Arguments {
			out.Arguments[i] = rewriteExpr(a, f)
		}
		return f(&out)

	case *AssignExpression:
		out := *n
		out.Value = rewriteExpr(n.Value, f)
		return f(&out)

	case *ForExpression:
		out := *n
		out.Condition = rewriteExpr(n.Condition, f)
		out.Body, _ = Rewrite(n.Body, f).(*BlockStatement)
		return f(&out)

	case *MatchExpression:
		out := &MatchExpression{Token: n.Token, Expression: rewriteExpr(n.Expression, f)}
		out.Arms = make([]*MatchArm, len(n.Arms))
		for i, arm := range n.Arms {
			out.Arms[i] = &MatchArm{
				Pattern:    arm.Pattern,
				Guard:      rewriteExpr(arm.Guard, f),
				Expression: rewriteExpr(arm.Expression, f),
			}
		}
		return f(out)

	default:
		return f(node)
	}
}

func rewriteStmt(s Statement, f func(Node) Node) Statement {
	if s == nil {
		return nil
	}
	out, _ := Rewrite(s, f).(Statement)
	return out
}

func rewriteExpr(e Expression, f func(Node) Node) Expression {
	if e == nil {
		return nil
	}
	out, _ := Rewrite(e, f).(Expression)
	return out
}

// Inspect traverses the tree pre-order, calling f for every statement and
// expression. If f returns false, the node's children are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *LetStatement:
		Inspect(n.Value, f)
	case *ReturnStatement:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *ExpressionStatement:
		Inspect(n.Expression, f)
	case *BlockStatement:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *FunctionStatement:
		Inspect(n.Body, f)
	case *BreakStatement:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *PrefixExpression:
		Inspect(n.Right, f)
	case *InfixExpression:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *IfExpression:
		Inspect(n.Condition, f)
		Inspect(n.Consequence, f)
		if n.Alternative != nil {
			Inspect(n.Alternative, f)
		}
	case *CallExpression:
		Inspect(n.Function, f)
		for _, a := range n.Arguments {
			Inspect(a, f)
		}
	case *AssignExpression:
		Inspect(n.Value, f)
	case *ForExpression:
		Inspect(n.Condition, f)
		Inspect(n.Body, f)
	case *MatchExpression:
		Inspect(n.Expression, f)
		for _, arm := range n.Arms {
			if arm.Guard != nil {
				Inspect(arm.Guard, f)
			}
			Inspect(arm.Expression, f)
		}
	}
}
