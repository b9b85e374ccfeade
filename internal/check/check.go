// Package check validates parsed expressions beyond what the grammar
// enforces: assignment targets, compound operators, where `v[]` may appear,
// named argument uniqueness, unit suffixes and address checksums.
package check

import (
	"github.com/sulk-lang/sulk/internal/ast"
	"github.com/sulk-lang/sulk/internal/diag"
	"github.com/sulk-lang/sulk/internal/lexer"
)

type checker struct {
	diags []diag.Diagnostic
}

// Expr checks e and every expression nested in it. Diagnostics come back in
// pre-order.
func Expr(e *ast.Expr) []diag.Diagnostic {
	c := &checker{}
	c.walk(e)
	return c.diags
}

// Exprs checks each expression in turn.
func Exprs(exprs []*ast.Expr) []diag.Diagnostic {
	c := &checker{}
	for _, e := range exprs {
		c.walk(e)
	}
	return c.diags
}

func (c *checker) walk(e *ast.Expr) {
	ast.Walk(e, func(n *ast.Expr) bool {
		c.node(n)
		return true
	})
}

func (c *checker) node(e *ast.Expr) {
	switch k := e.Kind.(type) {
	case *ast.AssignExpr:
		c.assign(k)
	case *ast.UnaryExpr:
		switch k.Op.Kind {
		case ast.UnPreInc, ast.UnPostInc:
			c.lvalue(k.Operand, "increment", false)
		case ast.UnPreDec, ast.UnPostDec:
			c.lvalue(k.Operand, "decrement", false)
		}
	case *ast.DeleteExpr:
		c.lvalue(k.Operand, "delete", false)
	case *ast.CallExpr:
		if named, ok := k.Args.Named(); ok {
			c.uniqueNames(named, "argument")
		}
	case *ast.PayableExpr:
		if named, ok := k.Args.Named(); ok {
			c.uniqueNames(named, "argument")
		}
	case *ast.CallOptionsExpr:
		c.uniqueNames(k.Options, "call option")
	case *ast.IndexExpr:
		if single, ok := k.Index.(*ast.IndexSingle); ok && single.Index == nil && !isTypeLike(k.Base) {
			c.add(newDiag(diag.CodeCheckEmptyIndex, e.Span, "index expression is missing an index").
				WithHelp("`T[]` is only valid when T names a type"))
		}
	case *ast.LitExpr:
		c.lit(k)
	}
}

func (c *checker) assign(k *ast.AssignExpr) {
	if k.Op != nil && !k.Op.Kind.Assignable() {
		c.add(newDiag(diag.CodeCheckNotAssignableOperator, k.Op.Span,
			"'"+k.Op.Kind.String()+"' has no compound assignment form").
			WithPrimarySpan(lexer.ToDiagSpan(k.Op.Span), "not an assignment operator").
			WithHelp("write the operation out: `a = a "+k.Op.Kind.String()+" b`"))
	}

	if k.Op != nil {
		if tuple, ok := k.Target.Kind.(*ast.TupleExpr); ok && len(tuple.Elems) != 1 {
			c.add(newDiag(diag.CodeCheckNotLValue, k.Target.Span,
				"compound assignment is not allowed for tuples"))
			return
		}
	}

	c.lvalue(k.Target, "assign to", true)
}

func (c *checker) uniqueNames(args ast.NamedArgList, what string) {
	seen := make(map[string]ast.Ident, len(args))
	for _, arg := range args {
		first, dup := seen[arg.Name.Name]
		if !dup {
			seen[arg.Name.Name] = arg.Name
			continue
		}
		c.add(newDiag(diag.CodeCheckDuplicateNamedArg, arg.Name.Span,
			"duplicate "+what+" '"+arg.Name.Name+"'").
			WithPrimarySpan(lexer.ToDiagSpan(arg.Name.Span), "repeated here").
			WithSecondarySpan(lexer.ToDiagSpan(first.Span), "first given here"))
	}
}

func (c *checker) lit(k *ast.LitExpr) {
	if k.Denom != nil && k.Lit.Kind != ast.LitNumber && k.Lit.Kind != ast.LitRational {
		c.add(newDiag(diag.CodeCheckDenominationOnNonNum, k.Lit.Span,
			"unit '"+k.Denom.String()+"' cannot be applied to a "+k.Lit.Kind.String()+" literal"))
	}

	if k.Lit.Kind == ast.LitAddress {
		c.address(k.Lit)
	}
}

func (c *checker) add(d diag.Diagnostic) {
	c.diags = append(c.diags, d)
}

func newDiag(code diag.Code, span lexer.Span, msg string) diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageCheck,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  msg,
		Span:     lexer.ToDiagSpan(span),
	}
}
