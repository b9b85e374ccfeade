package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulk-lang/sulk/internal/ast"
	"github.com/sulk-lang/sulk/internal/lexer"
)

func span(start, end int) lexer.Span {
	return lexer.Span{Line: 1, Column: start + 1, Start: start, End: end}
}

func ident(name string) *ast.Expr {
	return ast.FromIdent(ast.NewIdent(name, lexer.Span{}))
}

func TestBinOpKindString(t *testing.T) {
	want := map[ast.BinOpKind]string{
		ast.BinLt:     "<",
		ast.BinLe:     "<=",
		ast.BinGt:     ">",
		ast.BinGe:     ">=",
		ast.BinEq:     "==",
		ast.BinNe:     "!=",
		ast.BinOr:     "||",
		ast.BinAnd:    "&&",
		ast.BinShr:    ">>",
		ast.BinShl:    "<<",
		ast.BinSar:    ">>>",
		ast.BinBitAnd: "&",
		ast.BinBitOr:  "|",
		ast.BinBitXor: "^",
		ast.BinAdd:    "+",
		ast.BinSub:    "-",
		ast.BinPow:    "**",
		ast.BinMul:    "*",
		ast.BinDiv:    "/",
		ast.BinRem:    "%",
	}

	kinds := ast.BinOpKinds()
	require.Len(t, kinds, len(want))
	for _, k := range kinds {
		assert.Equal(t, want[k], k.String())
	}
}

func TestBinOpKindAssignable(t *testing.T) {
	assignable := map[ast.BinOpKind]bool{
		ast.BinShr: true, ast.BinShl: true, ast.BinSar: true,
		ast.BinBitAnd: true, ast.BinBitOr: true, ast.BinBitXor: true,
		ast.BinAdd: true, ast.BinSub: true, ast.BinMul: true, ast.BinDiv: true, ast.BinRem: true,
	}

	var yes, no int
	for _, k := range ast.BinOpKinds() {
		assert.Equal(t, assignable[k], k.Assignable(), "operator %s", k)
		if k.Assignable() {
			yes++
		} else {
			no++
		}
	}
	assert.Equal(t, 11, yes)
	assert.Equal(t, 9, no)

	assert.False(t, ast.BinPow.Assignable(), "there is no **=")
	assert.False(t, ast.BinAnd.Assignable())
	assert.False(t, ast.BinLe.Assignable())
}

func TestBinOpKindFamily(t *testing.T) {
	assert.Equal(t, ast.FamilyComparison, ast.BinNe.Family())
	assert.Equal(t, ast.FamilyLogical, ast.BinOr.Family())
	assert.Equal(t, ast.FamilyBitwise, ast.BinSar.Family())
	assert.Equal(t, ast.FamilyArithmetic, ast.BinPow.Family())
	assert.Equal(t, "bitwise", ast.FamilyBitwise.String())
}

func TestLookupBinOpRoundTrip(t *testing.T) {
	for _, k := range ast.BinOpKinds() {
		got, ok := ast.LookupBinOp(k.String())
		require.True(t, ok, "spelling %q", k.String())
		assert.Equal(t, k, got)
	}

	_, ok := ast.LookupBinOp("**=")
	assert.False(t, ok)
	_, ok = ast.LookupBinOp("=")
	assert.False(t, ok)
}

func TestUnOpKind(t *testing.T) {
	tests := []struct {
		kind   ast.UnOpKind
		str    string
		prefix bool
	}{
		{ast.UnPreInc, "++", true},
		{ast.UnPreDec, "--", true},
		{ast.UnNot, "!", true},
		{ast.UnNeg, "-", true},
		{ast.UnBitNot, "~", true},
		{ast.UnPostInc, "++", false},
		{ast.UnPostDec, "--", false},
	}

	require.Len(t, ast.UnOpKinds(), len(tests))
	for _, tt := range tests {
		assert.Equal(t, tt.str, tt.kind.String())
		assert.Equal(t, tt.prefix, tt.kind.IsPrefix(), "%v", tt.kind)
		assert.Equal(t, !tt.prefix, tt.kind.IsPostfix(), "%v", tt.kind)

		got, ok := ast.LookupUnOp(tt.str, tt.prefix)
		require.True(t, ok)
		assert.Equal(t, tt.kind, got)
	}

	assert.Equal(t, ast.UnPreInc.String(), ast.UnPostInc.String())
	assert.NotEqual(t, ast.UnPreInc, ast.UnPostInc)

	_, ok := ast.LookupUnOp("!", false)
	assert.False(t, ok)
}

func TestOpDisplay(t *testing.T) {
	assert.Equal(t, ">>>", ast.BinOp{Kind: ast.BinSar}.String())
	assert.Equal(t, "--", ast.UnOp{Kind: ast.UnPostDec}.String())
}

func TestCallArgs(t *testing.T) {
	empty := ast.EmptyCallArgs()
	assert.Equal(t, ast.CallArgs{}, empty)
	assert.False(t, empty.IsNamed())
	assert.Zero(t, empty.Len())

	unnamed, ok := empty.Unnamed()
	assert.True(t, ok)
	assert.Empty(t, unnamed)

	assert.Equal(t, ast.CallArgs{}, ast.UnnamedArgs())

	a, b := ident("a"), ident("b")
	positional := ast.UnnamedArgs(a, b)
	assert.Equal(t, 2, positional.Len())
	assert.Equal(t, []*ast.Expr{a, b}, positional.Exprs())
	_, ok = positional.Named()
	assert.False(t, ok)

	named := ast.NamedArgs(
		ast.NamedArg{Name: ast.NewIdent("x", lexer.Span{}), Value: a},
		ast.NamedArg{Name: ast.NewIdent("y", lexer.Span{}), Value: b},
	)
	assert.True(t, named.IsNamed())
	assert.Equal(t, []*ast.Expr{a, b}, named.Exprs())
	_, ok = named.Unnamed()
	assert.False(t, ok)

	emptyNamed := ast.NamedArgs()
	assert.True(t, emptyNamed.IsNamed())
	assert.NotEqual(t, ast.EmptyCallArgs(), emptyNamed)
	list, ok := emptyNamed.Named()
	assert.True(t, ok)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestFromIdent(t *testing.T) {
	id := ast.NewIdent("owner", span(4, 9))
	expr := ast.FromIdent(id)

	assert.Equal(t, id.Span, expr.Span)
	kind, ok := expr.Kind.(*ast.IdentExpr)
	require.True(t, ok)
	assert.Equal(t, id, kind.Ident)
}

func TestFromTy(t *testing.T) {
	el, ok := ast.LookupElementary("uint256")
	require.True(t, ok)
	ty := ast.Ty{Span: span(0, 7), Kind: &el}

	expr := ast.FromTy(ty)
	assert.Equal(t, ty.Span, expr.Span)
	kind, ok := expr.Kind.(*ast.TypeExpr)
	require.True(t, ok)
	assert.Equal(t, ty, kind.Ty)
}

func TestTupleHoles(t *testing.T) {
	a, b := ident("a"), ident("b")
	withHole := &ast.TupleExpr{Elems: []*ast.Expr{a, nil, b}}
	without := &ast.TupleExpr{Elems: []*ast.Expr{a, b}}

	assert.Len(t, withHole.Elems, 3)
	assert.NotEqual(t, withHole, without)

	children := ast.Children(&ast.Expr{Kind: withHole})
	assert.Equal(t, []*ast.Expr{a, b}, children)
}

func TestLookupElementary(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		want ast.ElementaryTy
	}{
		{"address", true, ast.ElementaryTy{Kind: ast.TyAddress}},
		{"bool", true, ast.ElementaryTy{Kind: ast.TyBool}},
		{"string", true, ast.ElementaryTy{Kind: ast.TyString}},
		{"bytes", true, ast.ElementaryTy{Kind: ast.TyBytes}},
		{"byte", true, ast.ElementaryTy{Kind: ast.TyFixedBytes, Size: 1}},
		{"bytes32", true, ast.ElementaryTy{Kind: ast.TyFixedBytes, Size: 32}},
		{"uint", true, ast.ElementaryTy{Kind: ast.TyUInt}},
		{"uint8", true, ast.ElementaryTy{Kind: ast.TyUInt, Size: 8}},
		{"int256", true, ast.ElementaryTy{Kind: ast.TyInt, Size: 256}},
		{"fixed", true, ast.ElementaryTy{Kind: ast.TyFixed}},
		{"ufixed128x18", true, ast.ElementaryTy{Kind: ast.TyUFixed, Size: 128, Fractional: 18}},
		{"bytes0", false, ast.ElementaryTy{}},
		{"bytes33", false, ast.ElementaryTy{}},
		{"uint7", false, ast.ElementaryTy{}},
		{"uint264", false, ast.ElementaryTy{}},
		{"uint08", false, ast.ElementaryTy{}},
		{"fixed128", false, ast.ElementaryTy{}},
		{"fixed128x81", false, ast.ElementaryTy{}},
		{"owner", false, ast.ElementaryTy{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ast.LookupElementary(tt.name)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
				if tt.name != "byte" {
					assert.Equal(t, tt.name, got.String())
				}
			}
		})
	}

	payable := ast.ElementaryTy{Kind: ast.TyAddress, Payable: true}
	assert.Equal(t, "address payable", payable.String())
}

func TestSubDenomination(t *testing.T) {
	for _, name := range []string{"wei", "gwei", "ether", "seconds", "minutes", "hours", "days", "weeks", "years"} {
		d, ok := ast.LookupSubDenomination(name)
		require.True(t, ok, name)
		assert.Equal(t, name, d.String())
		assert.NotEqual(t, d.IsEther(), d.IsTime(), name)
	}

	_, ok := ast.LookupSubDenomination("finney")
	assert.False(t, ok)

	assert.Equal(t, "1000000000000000000", ast.Ether.Multiplier().String())
	assert.Equal(t, "604800", ast.Weeks.Multiplier().String())
}

func TestLitKind(t *testing.T) {
	assert.True(t, ast.LitHexStr.IsStr())
	assert.True(t, ast.LitUnicodeStr.IsStr())
	assert.False(t, ast.LitAddress.IsStr())
	assert.Equal(t, "rational", ast.LitRational.String())
}

func TestPathTyString(t *testing.T) {
	path := &ast.PathTy{Path: []ast.Ident{ast.NewIdent("Lib", lexer.Span{}), ast.NewIdent("Point", lexer.Span{})}}
	assert.Equal(t, "Lib.Point", path.String())
}

func TestWalk(t *testing.T) {
	// f(a + b)[i:].x = -c
	a, b, c, f, i := ident("a"), ident("b"), ident("c"), ident("f"), ident("i")
	sum := &ast.Expr{Kind: &ast.BinaryExpr{Left: a, Op: ast.BinOp{Kind: ast.BinAdd}, Right: b}}
	call := &ast.Expr{Kind: &ast.CallExpr{Callee: f, Args: ast.UnnamedArgs(sum)}}
	slice := &ast.Expr{Kind: &ast.IndexExpr{Base: call, Index: &ast.IndexRange{Start: i}}}
	member := &ast.Expr{Kind: &ast.MemberExpr{Base: slice, Member: ast.NewIdent("x", lexer.Span{})}}
	neg := &ast.Expr{Kind: &ast.UnaryExpr{Op: ast.UnOp{Kind: ast.UnNeg}, Operand: c}}
	root := &ast.Expr{Kind: &ast.AssignExpr{Target: member, Value: neg}}

	var visited []*ast.Expr
	ast.Walk(root, func(e *ast.Expr) bool {
		visited = append(visited, e)
		return true
	})
	assert.Equal(t, []*ast.Expr{root, member, slice, call, f, sum, a, b, i, neg, c}, visited)

	visited = nil
	ast.Walk(root, func(e *ast.Expr) bool {
		visited = append(visited, e)
		return e != call
	})
	assert.Equal(t, []*ast.Expr{root, member, slice, call, i, neg, c}, visited)
}

func TestChildrenIncludesTypeSizes(t *testing.T) {
	size := ident("n")
	el, _ := ast.LookupElementary("uint")
	elem := ast.Ty{Kind: &el}
	arr := ast.Ty{Kind: &ast.ArrayTy{Elem: &elem, Size: size}}

	newExpr := &ast.Expr{Kind: &ast.NewExpr{Ty: arr}}
	assert.Equal(t, []*ast.Expr{size}, ast.Children(newExpr))

	opts := &ast.Expr{Kind: &ast.CallOptionsExpr{
		Callee:  ident("f"),
		Options: ast.NamedArgList{{Name: ast.NewIdent("value", lexer.Span{}), Value: size}},
	}}
	assert.Len(t, ast.Children(opts), 2)
}

type kindCounter struct {
	counts map[string]int
}

func (k kindCounter) bump(name string) int { k.counts[name]++; return k.counts[name] }

func (k kindCounter) VisitArray(*ast.Expr, *ast.ArrayExpr) int             { return k.bump("array") }
func (k kindCounter) VisitAssign(*ast.Expr, *ast.AssignExpr) int           { return k.bump("assign") }
func (k kindCounter) VisitBinary(*ast.Expr, *ast.BinaryExpr) int           { return k.bump("binary") }
func (k kindCounter) VisitCall(*ast.Expr, *ast.CallExpr) int               { return k.bump("call") }
func (k kindCounter) VisitCallOptions(*ast.Expr, *ast.CallOptionsExpr) int { return k.bump("opts") }
func (k kindCounter) VisitDelete(*ast.Expr, *ast.DeleteExpr) int           { return k.bump("delete") }
func (k kindCounter) VisitIdent(*ast.Expr, *ast.IdentExpr) int             { return k.bump("ident") }
func (k kindCounter) VisitIndex(*ast.Expr, *ast.IndexExpr) int             { return k.bump("index") }
func (k kindCounter) VisitLit(*ast.Expr, *ast.LitExpr) int                 { return k.bump("lit") }
func (k kindCounter) VisitMember(*ast.Expr, *ast.MemberExpr) int           { return k.bump("member") }
func (k kindCounter) VisitNew(*ast.Expr, *ast.NewExpr) int                 { return k.bump("new") }
func (k kindCounter) VisitPayable(*ast.Expr, *ast.PayableExpr) int         { return k.bump("payable") }
func (k kindCounter) VisitTernary(*ast.Expr, *ast.TernaryExpr) int         { return k.bump("ternary") }
func (k kindCounter) VisitTuple(*ast.Expr, *ast.TupleExpr) int             { return k.bump("tuple") }
func (k kindCounter) VisitTypeCall(*ast.Expr, *ast.TypeCallExpr) int       { return k.bump("typecall") }
func (k kindCounter) VisitType(*ast.Expr, *ast.TypeExpr) int               { return k.bump("type") }
func (k kindCounter) VisitUnary(*ast.Expr, *ast.UnaryExpr) int             { return k.bump("unary") }

func TestAccept(t *testing.T) {
	v := kindCounter{counts: map[string]int{}}
	a := ident("a")
	tuple := &ast.Expr{Kind: &ast.TupleExpr{Elems: []*ast.Expr{a, nil}}}

	assert.Equal(t, 1, ast.Accept[int](a, v))
	assert.Equal(t, 2, ast.Accept[int](a, v))
	assert.Equal(t, 1, ast.Accept[int](tuple, v))
	assert.Equal(t, map[string]int{"ident": 2, "tuple": 1}, v.counts)
}
