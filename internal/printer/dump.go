package printer

import (
	"math"
	"strings"

	"github.com/turbolent/prettier"

	"github.com/sulk-lang/sulk/internal/ast"
)

// Dump renders e as a compact S-expression that shows the tree shape
// directly: `(+ a (* b c))`. Tuple holes and omitted slice bounds print
// as `_`, so `(a,,b)` dumps as `(tuple a _ b)`.
func Dump(e *ast.Expr) string {
	if e == nil {
		return "_"
	}
	return ast.Accept[string](e, dumpVisitor{})
}

// TyString renders a type as source text on one line.
func TyString(ty ast.Ty) string {
	var b strings.Builder
	prettier.Prettier(&b, TyDoc(ty), math.MaxInt32, indent)
	return b.String()
}

type dumpVisitor struct{}

func sexpr(head string, parts ...string) string {
	if len(parts) == 0 {
		return "(" + head + ")"
	}
	return "(" + head + " " + strings.Join(parts, " ") + ")"
}

func dumpAll(exprs []*ast.Expr) []string {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = Dump(e)
	}
	return out
}

func dumpNamed(args ast.NamedArgList) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.Name.Name + ": " + Dump(arg.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func dumpArgs(args ast.CallArgs) []string {
	if named, ok := args.Named(); ok {
		return []string{dumpNamed(named)}
	}
	unnamed, _ := args.Unnamed()
	return dumpAll(unnamed)
}

func (dumpVisitor) VisitArray(_ *ast.Expr, k *ast.ArrayExpr) string {
	return sexpr("array", dumpAll(k.Elems)...)
}

func (dumpVisitor) VisitAssign(_ *ast.Expr, k *ast.AssignExpr) string {
	op := "="
	if k.Op != nil {
		op = k.Op.Kind.String() + "="
	}
	return sexpr(op, Dump(k.Target), Dump(k.Value))
}

func (dumpVisitor) VisitBinary(_ *ast.Expr, k *ast.BinaryExpr) string {
	return sexpr(k.Op.Kind.String(), Dump(k.Left), Dump(k.Right))
}

func (dumpVisitor) VisitCall(_ *ast.Expr, k *ast.CallExpr) string {
	return sexpr("call", append([]string{Dump(k.Callee)}, dumpArgs(k.Args)...)...)
}

func (dumpVisitor) VisitCallOptions(_ *ast.Expr, k *ast.CallOptionsExpr) string {
	return sexpr("opts", Dump(k.Callee), dumpNamed(k.Options))
}

func (dumpVisitor) VisitDelete(_ *ast.Expr, k *ast.DeleteExpr) string {
	return sexpr("delete", Dump(k.Operand))
}

func (dumpVisitor) VisitIdent(_ *ast.Expr, k *ast.IdentExpr) string {
	return k.Ident.Name
}

func (dumpVisitor) VisitIndex(_ *ast.Expr, k *ast.IndexExpr) string {
	switch idx := k.Index.(type) {
	case *ast.IndexSingle:
		if idx.Index == nil {
			return sexpr("index", Dump(k.Base))
		}
		return sexpr("index", Dump(k.Base), Dump(idx.Index))
	case *ast.IndexRange:
		return sexpr("slice", Dump(k.Base), Dump(idx.Start), Dump(idx.End))
	default:
		return sexpr("index", Dump(k.Base), "?")
	}
}

func (dumpVisitor) VisitLit(_ *ast.Expr, k *ast.LitExpr) string {
	if k.Denom != nil {
		return "(" + LitString(k.Lit) + " " + k.Denom.String() + ")"
	}
	return LitString(k.Lit)
}

func (dumpVisitor) VisitMember(_ *ast.Expr, k *ast.MemberExpr) string {
	return sexpr(".", Dump(k.Base), k.Member.Name)
}

func (dumpVisitor) VisitNew(_ *ast.Expr, k *ast.NewExpr) string {
	return sexpr("new", TyString(k.Ty))
}

func (dumpVisitor) VisitPayable(_ *ast.Expr, k *ast.PayableExpr) string {
	return sexpr("payable", dumpArgs(k.Args)...)
}

func (dumpVisitor) VisitTernary(_ *ast.Expr, k *ast.TernaryExpr) string {
	return sexpr("?", Dump(k.Cond), Dump(k.Then), Dump(k.Else))
}

func (dumpVisitor) VisitTuple(_ *ast.Expr, k *ast.TupleExpr) string {
	return sexpr("tuple", dumpAll(k.Elems)...)
}

func (dumpVisitor) VisitTypeCall(_ *ast.Expr, k *ast.TypeCallExpr) string {
	return sexpr("type", TyString(k.Ty))
}

func (dumpVisitor) VisitType(_ *ast.Expr, k *ast.TypeExpr) string {
	return sexpr("ty", TyString(k.Ty))
}

func (dumpVisitor) VisitUnary(_ *ast.Expr, k *ast.UnaryExpr) string {
	op := k.Op.Kind.String()
	switch k.Op.Kind {
	case ast.UnPreInc, ast.UnPreDec:
		op = "pre" + op
	case ast.UnPostInc, ast.UnPostDec:
		op = "post" + op
	}
	return sexpr(op, Dump(k.Operand))
}
