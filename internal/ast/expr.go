// Package ast defines the expression tree of the contract language along with
// the operator, literal and type models its nodes are built from.
package ast

import "github.com/sulk-lang/sulk/internal/lexer"

// Expr is an expression node. A parent exclusively owns its sub-expressions;
// trees are never shared, and passes that rewrite them build new nodes.
type Expr struct {
	Span lexer.Span
	Kind ExprKind
}

// FromIdent wraps an identifier as an expression spanning the identifier.
func FromIdent(ident Ident) *Expr {
	return &Expr{Span: ident.Span, Kind: &IdentExpr{Ident: ident}}
}

// FromTy wraps a type as an expression spanning the type.
func FromTy(ty Ty) *Expr {
	return &Expr{Span: ty.Span, Kind: &TypeExpr{Ty: ty}}
}

// ExprKind is the closed set of expression forms. Only the types in this
// file implement it; consumers switch over them or implement Visitor.
type ExprKind interface {
	exprKind()
}

// ArrayExpr is an array literal: `[a, b, c]`. Elements are never nil.
type ArrayExpr struct {
	Elems []*Expr
}

// AssignExpr is `a = b` when Op is nil and the compound `a += b` otherwise.
type AssignExpr struct {
	Target *Expr
	Op     *BinOp
	Value  *Expr
}

// BinaryExpr is `a + b`.
type BinaryExpr struct {
	Left  *Expr
	Op    BinOp
	Right *Expr
}

// CallExpr is `foo(42)` or `foo({bar: 42})`.
type CallExpr struct {
	Callee *Expr
	Args   CallArgs
}

// CallOptionsExpr is `foo.bar{value: 1, gas: 2}`.
type CallOptionsExpr struct {
	Callee  *Expr
	Options NamedArgList
}

// DeleteExpr is `delete x`.
type DeleteExpr struct {
	Operand *Expr
}

// IdentExpr is a bare identifier: `foo`.
type IdentExpr struct {
	Ident Ident
}

// IndexExpr is `v[i]` or `v[l:r]`.
type IndexExpr struct {
	Base  *Expr
	Index IndexKind
}

// LitExpr is a literal with an optional unit suffix: `5 ether`.
type LitExpr struct {
	Lit   Lit
	Denom *SubDenomination
}

// MemberExpr is `obj.k`.
type MemberExpr struct {
	Base   *Expr
	Member Ident
}

// NewExpr is `new Contract`.
type NewExpr struct {
	Ty Ty
}

// PayableExpr is `payable(x)`.
type PayableExpr struct {
	Args CallArgs
}

// TernaryExpr is `c ? a : b`.
type TernaryExpr struct {
	Cond *Expr
	Then *Expr
	Else *Expr
}

// TupleExpr is `(a, , b)`. A nil element is a hole left in source, which is
// not the same as the element being absent: `(a,,b)` has three slots.
type TupleExpr struct {
	Elems []*Expr
}

// TypeCallExpr is `type(uint256)`.
type TypeCallExpr struct {
	Ty Ty
}

// TypeExpr is a type used in expression position, such as a cast target.
type TypeExpr struct {
	Ty Ty
}

// UnaryExpr is `!x`, `-x`, `++x` or `x++`.
type UnaryExpr struct {
	Op      UnOp
	Operand *Expr
}

func (*ArrayExpr) exprKind()       {}
func (*AssignExpr) exprKind()      {}
func (*BinaryExpr) exprKind()      {}
func (*CallExpr) exprKind()        {}
func (*CallOptionsExpr) exprKind() {}
func (*DeleteExpr) exprKind()      {}
func (*IdentExpr) exprKind()       {}
func (*IndexExpr) exprKind()       {}
func (*LitExpr) exprKind()         {}
func (*MemberExpr) exprKind()      {}
func (*NewExpr) exprKind()         {}
func (*PayableExpr) exprKind()     {}
func (*TernaryExpr) exprKind()     {}
func (*TupleExpr) exprKind()       {}
func (*TypeCallExpr) exprKind()    {}
func (*TypeExpr) exprKind()        {}
func (*UnaryExpr) exprKind()       {}
