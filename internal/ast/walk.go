package ast

import "fmt"

// Visitor has one method per expression form. Adding a form adds a method,
// so every implementation stops compiling until it handles the new form.
type Visitor[R any] interface {
	VisitArray(*Expr, *ArrayExpr) R
	VisitAssign(*Expr, *AssignExpr) R
	VisitBinary(*Expr, *BinaryExpr) R
	VisitCall(*Expr, *CallExpr) R
	VisitCallOptions(*Expr, *CallOptionsExpr) R
	VisitDelete(*Expr, *DeleteExpr) R
	VisitIdent(*Expr, *IdentExpr) R
	VisitIndex(*Expr, *IndexExpr) R
	VisitLit(*Expr, *LitExpr) R
	VisitMember(*Expr, *MemberExpr) R
	VisitNew(*Expr, *NewExpr) R
	VisitPayable(*Expr, *PayableExpr) R
	VisitTernary(*Expr, *TernaryExpr) R
	VisitTuple(*Expr, *TupleExpr) R
	VisitTypeCall(*Expr, *TypeCallExpr) R
	VisitType(*Expr, *TypeExpr) R
	VisitUnary(*Expr, *UnaryExpr) R
}

// Accept dispatches e to the matching Visitor method.
func Accept[R any](e *Expr, v Visitor[R]) R {
	switch k := e.Kind.(type) {
	case *ArrayExpr:
		return v.VisitArray(e, k)
	case *AssignExpr:
		return v.VisitAssign(e, k)
	case *BinaryExpr:
		return v.VisitBinary(e, k)
	case *CallExpr:
		return v.VisitCall(e, k)
	case *CallOptionsExpr:
		return v.VisitCallOptions(e, k)
	case *DeleteExpr:
		return v.VisitDelete(e, k)
	case *IdentExpr:
		return v.VisitIdent(e, k)
	case *IndexExpr:
		return v.VisitIndex(e, k)
	case *LitExpr:
		return v.VisitLit(e, k)
	case *MemberExpr:
		return v.VisitMember(e, k)
	case *NewExpr:
		return v.VisitNew(e, k)
	case *PayableExpr:
		return v.VisitPayable(e, k)
	case *TernaryExpr:
		return v.VisitTernary(e, k)
	case *TupleExpr:
		return v.VisitTuple(e, k)
	case *TypeCallExpr:
		return v.VisitTypeCall(e, k)
	case *TypeExpr:
		return v.VisitType(e, k)
	case *UnaryExpr:
		return v.VisitUnary(e, k)
	default:
		panic(fmt.Sprintf("ast: unexpected expression kind %T", e.Kind))
	}
}

// Walk traverses the tree rooted at e in pre-order, calling fn for each
// expression. If fn returns false, Walk does not descend into that node.
// Tuple holes and omitted slice bounds are skipped.
func Walk(e *Expr, fn func(*Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, child := range Children(e) {
		Walk(child, fn)
	}
}

// Children returns the direct sub-expressions of e that are present, in
// source order. Array sizes inside type expressions are included.
func Children(e *Expr) []*Expr {
	var out []*Expr
	add := func(children ...*Expr) {
		for _, c := range children {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch k := e.Kind.(type) {
	case *ArrayExpr:
		add(k.Elems...)
	case *AssignExpr:
		add(k.Target, k.Value)
	case *BinaryExpr:
		add(k.Left, k.Right)
	case *CallExpr:
		add(k.Callee)
		add(k.Args.Exprs()...)
	case *CallOptionsExpr:
		add(k.Callee)
		for _, opt := range k.Options {
			add(opt.Value)
		}
	case *DeleteExpr:
		add(k.Operand)
	case *IdentExpr, *LitExpr:
	case *IndexExpr:
		add(k.Base)
		switch idx := k.Index.(type) {
		case *IndexSingle:
			add(idx.Index)
		case *IndexRange:
			add(idx.Start, idx.End)
		}
	case *MemberExpr:
		add(k.Base)
	case *NewExpr:
		add(TyExprs(&k.Ty)...)
	case *PayableExpr:
		add(k.Args.Exprs()...)
	case *TernaryExpr:
		add(k.Cond, k.Then, k.Else)
	case *TupleExpr:
		add(k.Elems...)
	case *TypeCallExpr:
		add(TyExprs(&k.Ty)...)
	case *TypeExpr:
		add(TyExprs(&k.Ty)...)
	case *UnaryExpr:
		add(k.Operand)
	}
	return out
}

// TyExprs returns the array size expressions nested in ty in source order.
func TyExprs(ty *Ty) []*Expr {
	if ty == nil {
		return nil
	}
	switch k := ty.Kind.(type) {
	case *ArrayTy:
		out := TyExprs(k.Elem)
		if k.Size != nil {
			out = append(out, k.Size)
		}
		return out
	case *MappingTy:
		return append(TyExprs(k.Key), TyExprs(k.Value)...)
	default:
		return nil
	}
}
