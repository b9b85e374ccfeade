package parser_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sulk-lang/sulk/internal/ast"
	"github.com/sulk-lang/sulk/internal/diag"
	"github.com/sulk-lang/sulk/internal/parser"
	"github.com/sulk-lang/sulk/internal/printer"
)

func parseExpr(t *testing.T, src string) (*ast.Expr, []parser.ParseError) {
	t.Helper()

	p := parser.New(src)
	expr := p.ParseExpr()

	return expr, p.Errors()
}

func assertNoErrors(t *testing.T, errs []parser.ParseError) {
	t.Helper()

	if len(errs) == 0 {
		return
	}

	for _, err := range errs {
		t.Errorf("unexpected parse error: %s", err.Message)
	}
	t.Fatalf("parser reported %d error(s)", len(errs))
}

func mustParse(t *testing.T, src string) *ast.Expr {
	t.Helper()

	expr, errs := parseExpr(t, src)
	assertNoErrors(t, errs)
	require.NotNil(t, expr)
	return expr
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		// precedence and associativity
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"a - b - c", "(- (- a b) c)"},
		{"a ** b ** c", "(** a (** b c))"},
		{"-a ** b", "(** (- a) b)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a == b < c", "(== a (< b c))"},
		{"a | b ^ c & d", "(| a (^ b (& c d)))"},
		{"a << 1 + 2", "(<< a (+ 1 2))"},
		{"a >>> 2 >> 1", "(>> (>>> a 2) 1)"},
		{"a % b / c", "(/ (% a b) c)"},

		// assignment
		{"a = b = c", "(= a (= b c))"},
		{"x += 1", "(+= x 1)"},
		{"x >>>= 1", "(>>>= x 1)"},
		{"x |= y & z", "(|= x (& y z))"},

		// ternary
		{"c ? a : b", "(? c a b)"},
		{"c ? a : d ? e : f", "(? c a (? d e f))"},
		{"x = c ? a : b", "(= x (? c a b))"},
		{"a ? b : c = d", "(? a b (= c d))"},
		{"a || b ? c : d", "(? (|| a b) c d)"},

		// unary
		{"!a++", "(! (post++ a))"},
		{"++a", "(pre++ a)"},
		{"a--", "(post-- a)"},
		{"- -a", "(- (- a))"},
		{"~a.b", "(~ (. a b))"},
		{"delete a[1]", "(delete (index a 1))"},

		// calls and members
		{"f()", "(call f)"},
		{"a.b.c(1, 2)", "(call (. (. a b) c) 1 2)"},
		{"f({x: 1, y: 2})", "(call f {x: 1, y: 2})"},
		{"f({})", "(call f {})"},
		{`addr.call{value: 1 ether, gas: 500}("")`, `(call (opts (. addr call) {value: (1 ether), gas: 500}) "")`},
		{"f{value: 1}", "(opts f {value: 1})"},
		{"payable(msg.sender)", "(payable (. msg sender))"},
		{"payable({a: 1})", "(payable {a: 1})"},

		// types in expression position
		{"new Foo", "(new Foo)"},
		{"new Lib.Foo(1)", "(call (new Lib.Foo) 1)"},
		{"new uint[](5)", "(call (new uint[]) 5)"},
		{"new bytes32[2][]", "(new bytes32[2][])"},
		{"type(uint256).max", "(. (type uint256) max)"},
		{"uint256(x)", "(call (ty uint256) x)"},
		{"address(this).balance", "(. (call (ty address) this) balance)"},
		{"abi.decode(data, (uint[], address))", "(call (. abi decode) data (tuple (index (ty uint)) (ty address)))"},

		// indexing
		{"v[3]", "(index v 3)"},
		{"v[1:]", "(slice v 1 _)"},
		{"v[:2]", "(slice v _ 2)"},
		{"v[:]", "(slice v _ _)"},
		{"v[1:2]", "(slice v 1 2)"},
		{"v[]", "(index v)"},
		{"m[a][b]", "(index (index m a) b)"},

		// tuples and arrays
		{"(a, , b)", "(tuple a _ b)"},
		{"(a,,b)", "(tuple a _ b)"},
		{"(a, b)", "(tuple a b)"},
		{"(a)", "(tuple a)"},
		{"()", "(tuple)"},
		{"(, a)", "(tuple _ a)"},
		{"(a,)", "(tuple a _)"},
		{"(,)", "(tuple _ _)"},
		{"(a, b) = (b, a)", "(= (tuple a b) (tuple b a))"},
		{"[1, 2, 3]", "(array 1 2 3)"},
		{"[]", "(array)"},

		// literals
		{"true", "true"},
		{"1 ether", "(1 ether)"},
		{"2 days + 1 hours", "(+ (2 days) (1 hours))"},
		{`"a" "b"`, `"a" "b"`},
		{`hex"00ff"`, `hex"00ff"`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr := mustParse(t, tt.src)
			assert.Equal(t, tt.want, printer.Dump(expr))
		})
	}
}

func TestParseTupleHoleIsNotAbsence(t *testing.T) {
	withHole := mustParse(t, "(a, , b)")
	without := mustParse(t, "(a, b)")

	holeTuple, ok := withHole.Kind.(*ast.TupleExpr)
	require.True(t, ok)
	require.Len(t, holeTuple.Elems, 3)
	assert.Nil(t, holeTuple.Elems[1])

	plainTuple, ok := without.Kind.(*ast.TupleExpr)
	require.True(t, ok)
	assert.Len(t, plainTuple.Elems, 2)
}

func TestParseIndexKinds(t *testing.T) {
	tests := []struct {
		src        string
		wantRange  bool
		wantStart  bool
		wantEnd    bool
		wantSingle bool
	}{
		{src: "v[3]", wantSingle: true},
		{src: "v[]"},
		{src: "v[1:]", wantRange: true, wantStart: true},
		{src: "v[:2]", wantRange: true, wantEnd: true},
		{src: "v[:]", wantRange: true},
		{src: "v[1:2]", wantRange: true, wantStart: true, wantEnd: true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr := mustParse(t, tt.src)
			index, ok := expr.Kind.(*ast.IndexExpr)
			require.True(t, ok, "expected index expression, got %T", expr.Kind)

			switch idx := index.Index.(type) {
			case *ast.IndexSingle:
				require.False(t, tt.wantRange)
				assert.Equal(t, tt.wantSingle, idx.Index != nil)
			case *ast.IndexRange:
				require.True(t, tt.wantRange)
				assert.Equal(t, tt.wantStart, idx.Start != nil)
				assert.Equal(t, tt.wantEnd, idx.End != nil)
			default:
				t.Fatalf("unexpected index kind %T", idx)
			}
		})
	}
}

func TestParseCallArgsForms(t *testing.T) {
	empty := mustParse(t, "f()")
	call := empty.Kind.(*ast.CallExpr)
	assert.Equal(t, ast.CallArgs{}, call.Args)
	assert.Equal(t, ast.EmptyCallArgs(), call.Args)
	assert.False(t, call.Args.IsNamed())

	named := mustParse(t, "f({b: 2, a: 1})")
	call = named.Kind.(*ast.CallExpr)
	args, ok := call.Args.Named()
	require.True(t, ok)
	require.Len(t, args, 2)
	assert.Equal(t, "b", args[0].Name.Name)
	assert.Equal(t, "a", args[1].Name.Name)

	_, ok = call.Args.Unnamed()
	assert.False(t, ok)

	emptyNamed := mustParse(t, "f({})")
	call = emptyNamed.Kind.(*ast.CallExpr)
	assert.True(t, call.Args.IsNamed())
	assert.Zero(t, call.Args.Len())
}

func TestParseCompoundAssignOperators(t *testing.T) {
	for _, k := range ast.BinOpKinds() {
		if !k.Assignable() {
			continue
		}
		src := "x " + k.String() + "= y"
		t.Run(src, func(t *testing.T) {
			expr := mustParse(t, src)
			assign, ok := expr.Kind.(*ast.AssignExpr)
			require.True(t, ok)
			require.NotNil(t, assign.Op)
			assert.Equal(t, k, assign.Op.Kind)
		})
	}

	plain := mustParse(t, "x = y")
	assert.Nil(t, plain.Kind.(*ast.AssignExpr).Op)
}

func TestParseNumberLiterals(t *testing.T) {
	tests := []struct {
		src      string
		kind     ast.LitKind
		number   string
		rational string
	}{
		{src: "42", kind: ast.LitNumber, number: "42"},
		{src: "1_000_000", kind: ast.LitNumber, number: "1000000"},
		{src: "0x1f", kind: ast.LitNumber, number: "31"},
		{src: "2e3", kind: ast.LitNumber, number: "2000"},
		{src: "1.0", kind: ast.LitNumber, number: "1"},
		{src: "1.5", kind: ast.LitRational, rational: "3/2"},
		{src: ".5", kind: ast.LitRational, rational: "1/2"},
		{src: "1.5e-3", kind: ast.LitRational, rational: "3/2000"},
		{src: "25e-1", kind: ast.LitRational, rational: "5/2"},
		{src: "0xdCad3a6d3569DF655070DEd06cb7A1b2Ccd1D3AF", kind: ast.LitAddress},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr := mustParse(t, tt.src)
			lit := expr.Kind.(*ast.LitExpr).Lit

			assert.Equal(t, tt.kind, lit.Kind)
			assert.Equal(t, tt.src, lit.Symbol)
			if tt.number != "" {
				require.NotNil(t, lit.Number)
				assert.Equal(t, tt.number, lit.Number.String())
			}
			if tt.rational != "" {
				require.NotNil(t, lit.Rational)
				assert.Equal(t, tt.rational, lit.Rational.String())
			}
		})
	}
}

func TestParseAddressLiteralValue(t *testing.T) {
	expr := mustParse(t, "0x00000000000000000000000000000000000000ff")
	lit := expr.Kind.(*ast.LitExpr).Lit

	assert.Equal(t, ast.LitAddress, lit.Kind)
	assert.Equal(t, 0, lit.Number.Cmp(big.NewInt(255)))
}

func TestParseStringLiterals(t *testing.T) {
	concat := mustParse(t, `"a" 'b'`)
	lit := concat.Kind.(*ast.LitExpr).Lit
	assert.Equal(t, ast.LitStr, lit.Kind)
	assert.Equal(t, "ab", lit.Str)
	assert.Equal(t, `"a" 'b'`, lit.Symbol)

	hexLit := mustParse(t, `hex"00ff" hex"01"`).Kind.(*ast.LitExpr).Lit
	assert.Equal(t, ast.LitHexStr, hexLit.Kind)
	assert.Equal(t, "\x00\xff\x01", hexLit.Str)

	uni := mustParse(t, `unicode"héllo"`).Kind.(*ast.LitExpr).Lit
	assert.Equal(t, ast.LitUnicodeStr, uni.Kind)
	assert.Equal(t, "héllo", uni.Str)
}

func TestParseDenomination(t *testing.T) {
	expr := mustParse(t, "5 gwei")
	lit := expr.Kind.(*ast.LitExpr)
	require.NotNil(t, lit.Denom)
	assert.Equal(t, ast.Gwei, *lit.Denom)
	assert.Equal(t, 0, expr.Span.Start)
	assert.Equal(t, 6, expr.Span.End)

	plain := mustParse(t, "5")
	assert.Nil(t, plain.Kind.(*ast.LitExpr).Denom)
}

func TestParseSpans(t *testing.T) {
	expr := mustParse(t, "foo + barbaz")
	assert.Equal(t, 0, expr.Span.Start)
	assert.Equal(t, 12, expr.Span.End)

	bin := expr.Kind.(*ast.BinaryExpr)
	assert.Equal(t, 4, bin.Op.Span.Start)
	assert.Equal(t, 5, bin.Op.Span.End)
	assert.Equal(t, 6, bin.Right.Span.Start)

	call := mustParse(t, "f(a, b)")
	assert.Equal(t, 7, call.Span.End)

	tuple := mustParse(t, "(a, , b)")
	assert.Equal(t, 0, tuple.Span.Start)
	assert.Equal(t, 8, tuple.Span.End)

	post := mustParse(t, "i++")
	unary := post.Kind.(*ast.UnaryExpr)
	assert.Equal(t, 1, unary.Op.Span.Start)
	assert.Equal(t, 3, post.Span.End)
}

func TestParseWithFilename(t *testing.T) {
	p := parser.New("a +", parser.WithFilename("test.sol"))
	p.ParseExpr()

	errs := p.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "test.sol", errs[0].Span.Filename)
	assert.Equal(t, "test.sol", errs[0].ToDiagnostic().Span.Filename)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"a +", diag.CodeParseUnexpectedToken},
		{"", diag.CodeParseUnexpectedToken},
		{"a b", diag.CodeParseTrailingInput},
		{"f(a, {x: 1})", diag.CodeParseMixedCallArguments},
		{"f({x: 1}, a)", diag.CodeParseMixedCallArguments},
		{"0x10 ether", diag.CodeParseInvalidDenomination},
		{"1e5000", diag.CodeParseInvalidLiteral},
		{"[1, , 2]", diag.CodeParseUnexpectedToken},
		{"f(a b)", diag.CodeParseExpectedToken},
		{"a ? b", diag.CodeParseExpectedToken},
		{"f{1}", diag.CodeParseExpectedToken},
		{"x.", diag.CodeParseExpectedToken},
		{"new 1", diag.CodeParseUnexpectedToken},
		{"v[1", diag.CodeParseExpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, errs := parseExpr(t, tt.src)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.code, errs[0].Code)

			d := errs[0].ToDiagnostic()
			assert.Equal(t, diag.StageParser, d.Stage)
			assert.Equal(t, diag.SeverityError, d.Severity)
			assert.Equal(t, tt.code, d.Code)
		})
	}
}

func TestParseSurfacesLexerErrors(t *testing.T) {
	p := parser.New(`f("abc`)
	p.ParseExpr()

	ds := p.Diagnostics()
	require.NotEmpty(t, ds)
	assert.Equal(t, diag.StageLexer, ds[0].Stage)
	assert.Equal(t, diag.CodeLexerUnterminatedString, ds[0].Code)
}

func TestParseMalformedNumberReportedOnce(t *testing.T) {
	p := parser.New("1__0")
	expr := p.ParseExpr()

	require.NotNil(t, expr)
	assert.Equal(t, ast.LitErr, expr.Kind.(*ast.LitExpr).Lit.Kind)
	assert.Empty(t, p.Errors())
	assert.Len(t, p.Diagnostics(), 1)
}

func TestParseExprList(t *testing.T) {
	p := parser.New("a = 1; b++; ; f(x)")
	exprs := p.ParseExprList()
	assertNoErrors(t, p.Errors())

	require.Len(t, exprs, 3)
	assert.Equal(t, "(= a 1)", printer.Dump(exprs[0]))
	assert.Equal(t, "(post++ b)", printer.Dump(exprs[1]))
	assert.Equal(t, "(call f x)", printer.Dump(exprs[2]))
}

func TestParseExprListRecovers(t *testing.T) {
	p := parser.New("a +; b; c d; e")
	exprs := p.ParseExprList()

	require.Len(t, p.Errors(), 2)
	dumps := make([]string, len(exprs))
	for i, e := range exprs {
		dumps[i] = printer.Dump(e)
	}
	assert.Equal(t, []string{"b", "c", "e"}, dumps)
}
