// Package prec holds the binding strength of expression forms. The AST does
// not encode precedence; the parser uses these levels to build trees and the
// printer uses them to decide where parentheses are required.
package prec

import "github.com/sulk-lang/sulk/internal/ast"

// Level orders expression forms from loosest to tightest binding.
type Level int

const (
	Lowest         Level = iota
	Assign               // = += -= ... (right associative)
	Ternary              // ?: (right associative)
	Or                   // ||
	And                  // &&
	Equality             // == !=
	Comparison           // < <= > >=
	BitOr                // |
	BitXor               // ^
	BitAnd               // &
	Shift                // << >> >>>
	Additive             // + -
	Multiplicative       // * / %
	Pow                  // ** (right associative)
	Prefix               // ! - ~ ++x --x delete
	Postfix              // x++ x-- calls, indexing, member access, call options
	Atom
)

// Binary returns the level of a binary operator.
func Binary(k ast.BinOpKind) Level {
	switch k {
	case ast.BinOr:
		return Or
	case ast.BinAnd:
		return And
	case ast.BinEq, ast.BinNe:
		return Equality
	case ast.BinLt, ast.BinLe, ast.BinGt, ast.BinGe:
		return Comparison
	case ast.BinBitOr:
		return BitOr
	case ast.BinBitXor:
		return BitXor
	case ast.BinBitAnd:
		return BitAnd
	case ast.BinShl, ast.BinShr, ast.BinSar:
		return Shift
	case ast.BinAdd, ast.BinSub:
		return Additive
	case ast.BinMul, ast.BinDiv, ast.BinRem:
		return Multiplicative
	case ast.BinPow:
		return Pow
	default:
		return Lowest
	}
}

// RightAssoc reports whether a binary operator groups to the right.
func RightAssoc(k ast.BinOpKind) bool {
	return k == ast.BinPow
}

// Unary returns the level of a unary operator.
func Unary(k ast.UnOpKind) Level {
	if k.IsPrefix() {
		return Prefix
	}
	return Postfix
}

// Of returns the level an expression binds at when printed.
func Of(e *ast.Expr) Level {
	switch k := e.Kind.(type) {
	case *ast.AssignExpr:
		return Assign
	case *ast.TernaryExpr:
		return Ternary
	case *ast.BinaryExpr:
		return Binary(k.Op.Kind)
	case *ast.UnaryExpr:
		return Unary(k.Op.Kind)
	case *ast.DeleteExpr:
		return Prefix
	case *ast.CallExpr, *ast.CallOptionsExpr, *ast.IndexExpr, *ast.MemberExpr:
		return Postfix
	case *ast.NewExpr:
		// `new T` takes the whole type, so it can be called but a following
		// `.` or `[` would be read as part of the type.
		return Postfix
	default:
		return Atom
	}
}
