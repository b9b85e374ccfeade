package check

import (
	"github.com/sulk-lang/sulk/internal/ast"
	"github.com/sulk-lang/sulk/internal/diag"
	"github.com/sulk-lang/sulk/internal/lexer"
)

// lvalue reports e if it cannot be written through. Identifiers, members and
// indexed elements are writable; tuples are writable element-wise, with
// holes skipped, when allowTuple is set. A one-element tuple is just
// parentheses and is looked through.
func (c *checker) lvalue(e *ast.Expr, verb string, allowTuple bool) {
	switch k := e.Kind.(type) {
	case *ast.IdentExpr, *ast.MemberExpr:
		return
	case *ast.IndexExpr:
		switch idx := k.Index.(type) {
		case *ast.IndexRange:
			c.add(newDiag(diag.CodeCheckSliceAssignment, e.Span, "cannot "+verb+" a slice").
				WithHelp("slices are read-only views"))
		case *ast.IndexSingle:
			if idx.Index == nil {
				c.add(newDiag(diag.CodeCheckNotLValue, e.Span, "cannot "+verb+" an index expression without an index"))
			}
		}
		return
	case *ast.TupleExpr:
		if len(k.Elems) == 1 && k.Elems[0] != nil {
			c.lvalue(k.Elems[0], verb, allowTuple)
			return
		}
		if allowTuple {
			for _, elem := range k.Elems {
				if elem != nil {
					c.lvalue(elem, verb, true)
				}
			}
			return
		}
	}

	c.add(newDiag(diag.CodeCheckNotLValue, e.Span, "cannot "+verb+" this expression").
		WithPrimarySpan(lexer.ToDiagSpan(e.Span), "not assignable"))
}

// isTypeLike reports whether e can name a type, which is where `T[]` is
// allowed in expression position: `abi.decode(data, (uint[]))`.
func isTypeLike(e *ast.Expr) bool {
	switch k := e.Kind.(type) {
	case *ast.TypeExpr, *ast.IdentExpr:
		return true
	case *ast.MemberExpr:
		return isPath(k.Base)
	case *ast.IndexExpr:
		if _, ok := k.Index.(*ast.IndexSingle); ok {
			return isTypeLike(k.Base)
		}
	}
	return false
}

func isPath(e *ast.Expr) bool {
	switch k := e.Kind.(type) {
	case *ast.IdentExpr:
		return true
	case *ast.MemberExpr:
		return isPath(k.Base)
	}
	return false
}
