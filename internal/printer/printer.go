// Package printer renders expression trees back to source text. Output is
// laid out with github.com/turbolent/prettier and carries the fewest
// parentheses that keep the tree's shape, so printing a parsed expression and
// parsing the result gives back the same tree.
package printer

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/turbolent/prettier"

	"github.com/sulk-lang/sulk/internal/ast"
	"github.com/sulk-lang/sulk/internal/prec"
)

// DefaultWidth is the line width Format breaks at.
const DefaultWidth = 80

const indent = "    "

type Option func(*config)

type config struct {
	width int
}

// WithWidth sets the maximum line width.
func WithWidth(width int) Option {
	return func(c *config) {
		c.width = width
	}
}

// Doc returns the layout document for e.
func Doc(e *ast.Expr) prettier.Doc {
	if e == nil {
		return prettier.Text("")
	}
	return ast.Accept[prettier.Doc](e, docVisitor{})
}

// Format renders e as source text.
func Format(e *ast.Expr, opts ...Option) string {
	cfg := config{width: DefaultWidth}
	for _, opt := range opts {
		opt(&cfg)
	}

	var b strings.Builder
	prettier.Prettier(&b, Doc(e), cfg.width, indent)
	return b.String()
}

// Fprint writes e to w, breaking lines longer than width.
func Fprint(w io.Writer, e *ast.Expr, width int) error {
	if _, err := io.WriteString(w, Format(e, WithWidth(width))); err != nil {
		return errors.Wrap(err, "printing expression")
	}
	return nil
}

var (
	commaLineDoc prettier.Doc = prettier.Concat{
		prettier.Text(","),
		prettier.Line{},
	}
	emptyParensDoc   prettier.Doc = prettier.Text("()")
	emptyBracketsDoc prettier.Doc = prettier.Text("[]")
	emptyBracesDoc   prettier.Doc = prettier.Text("{}")
	colonDoc         prettier.Doc = prettier.Text(":")
	dotDoc           prettier.Doc = prettier.Text(".")
)

type docVisitor struct{}

// operand prints e, parenthesised if it binds looser than min.
func operand(e *ast.Expr, min prec.Level) prettier.Doc {
	doc := Doc(e)
	if prec.Of(e) < min {
		return prettier.WrapParentheses(doc, prettier.SoftLine{})
	}
	return doc
}

// postfixBase prints the left side of `.`, `[`, `(` and `{`.
func postfixBase(e *ast.Expr) prettier.Doc {
	doc := Doc(e)
	if prec.Of(e) < prec.Postfix {
		return prettier.WrapParentheses(doc, prettier.SoftLine{})
	}
	return doc
}

// accessBase is postfixBase for `.` and `[`, which would otherwise be
// swallowed by the type of a `new` expression.
func accessBase(e *ast.Expr) prettier.Doc {
	if _, ok := e.Kind.(*ast.NewExpr); ok {
		return prettier.WrapParentheses(Doc(e), prettier.SoftLine{})
	}
	return postfixBase(e)
}

func list(open, close string, docs []prettier.Doc) prettier.Doc {
	return prettier.Group{
		Doc: prettier.Wrap(
			prettier.Text(open),
			prettier.Join(commaLineDoc, docs...),
			prettier.Text(close),
			prettier.SoftLine{},
		),
	}
}

func exprDocs(exprs []*ast.Expr) []prettier.Doc {
	docs := make([]prettier.Doc, len(exprs))
	for i, e := range exprs {
		docs[i] = Doc(e)
	}
	return docs
}

func namedArgsDoc(args ast.NamedArgList) prettier.Doc {
	if len(args) == 0 {
		return emptyBracesDoc
	}
	docs := make([]prettier.Doc, len(args))
	for i, arg := range args {
		docs[i] = prettier.Concat{
			prettier.Text(arg.Name.Name + ": "),
			Doc(arg.Value),
		}
	}
	return list("{", "}", docs)
}

func callArgsDoc(args ast.CallArgs) prettier.Doc {
	if named, ok := args.Named(); ok {
		return prettier.Concat{
			prettier.Text("("),
			namedArgsDoc(named),
			prettier.Text(")"),
		}
	}
	unnamed, _ := args.Unnamed()
	if len(unnamed) == 0 {
		return emptyParensDoc
	}
	return list("(", ")", exprDocs(unnamed))
}

func (docVisitor) VisitArray(_ *ast.Expr, k *ast.ArrayExpr) prettier.Doc {
	if len(k.Elems) == 0 {
		return emptyBracketsDoc
	}
	return list("[", "]", exprDocs(k.Elems))
}

func (docVisitor) VisitAssign(_ *ast.Expr, k *ast.AssignExpr) prettier.Doc {
	op := "="
	if k.Op != nil {
		op = k.Op.Kind.String() + "="
	}
	return prettier.Group{
		Doc: prettier.Concat{
			operand(k.Target, prec.Ternary+1),
			prettier.Space,
			prettier.Text(op),
			prettier.Indent{
				Doc: prettier.Concat{
					prettier.Line{},
					Doc(k.Value),
				},
			},
		},
	}
}

func (docVisitor) VisitBinary(_ *ast.Expr, k *ast.BinaryExpr) prettier.Doc {
	level := prec.Binary(k.Op.Kind)

	leftMin, rightMin := level, level+1
	if prec.RightAssoc(k.Op.Kind) {
		leftMin, rightMin = level+1, level
	}

	return prettier.Group{
		Doc: prettier.Concat{
			prettier.Group{
				Doc: operand(k.Left, leftMin),
			},
			prettier.Line{},
			prettier.Text(k.Op.Kind.String()),
			prettier.Space,
			prettier.Group{
				Doc: operand(k.Right, rightMin),
			},
		},
	}
}

func (docVisitor) VisitCall(_ *ast.Expr, k *ast.CallExpr) prettier.Doc {
	return prettier.Concat{
		postfixBase(k.Callee),
		callArgsDoc(k.Args),
	}
}

func (docVisitor) VisitCallOptions(_ *ast.Expr, k *ast.CallOptionsExpr) prettier.Doc {
	return prettier.Concat{
		postfixBase(k.Callee),
		namedArgsDoc(k.Options),
	}
}

func (docVisitor) VisitDelete(_ *ast.Expr, k *ast.DeleteExpr) prettier.Doc {
	return prettier.Concat{
		prettier.Text("delete "),
		operand(k.Operand, prec.Prefix),
	}
}

func (docVisitor) VisitIdent(_ *ast.Expr, k *ast.IdentExpr) prettier.Doc {
	return prettier.Text(k.Ident.Name)
}

func (docVisitor) VisitIndex(_ *ast.Expr, k *ast.IndexExpr) prettier.Doc {
	var inner prettier.Doc
	switch idx := k.Index.(type) {
	case *ast.IndexSingle:
		if idx.Index == nil {
			return prettier.Concat{accessBase(k.Base), emptyBracketsDoc}
		}
		inner = Doc(idx.Index)
	case *ast.IndexRange:
		parts := prettier.Concat{}
		if idx.Start != nil {
			parts = append(parts, Doc(idx.Start))
		}
		parts = append(parts, colonDoc)
		if idx.End != nil {
			parts = append(parts, Doc(idx.End))
		}
		inner = parts
	}

	return prettier.Concat{
		accessBase(k.Base),
		prettier.WrapBrackets(inner, prettier.SoftLine{}),
	}
}

func (docVisitor) VisitLit(_ *ast.Expr, k *ast.LitExpr) prettier.Doc {
	text := LitString(k.Lit)
	if k.Denom != nil {
		text += " " + k.Denom.String()
	}
	return prettier.Text(text)
}

func (docVisitor) VisitMember(_ *ast.Expr, k *ast.MemberExpr) prettier.Doc {
	return prettier.Concat{
		accessBase(k.Base),
		prettier.Group{
			Doc: prettier.Indent{
				Doc: prettier.Concat{
					prettier.SoftLine{},
					dotDoc,
					prettier.Text(k.Member.Name),
				},
			},
		},
	}
}

func (docVisitor) VisitNew(_ *ast.Expr, k *ast.NewExpr) prettier.Doc {
	return prettier.Concat{
		prettier.Text("new "),
		TyDoc(k.Ty),
	}
}

func (docVisitor) VisitPayable(_ *ast.Expr, k *ast.PayableExpr) prettier.Doc {
	return prettier.Concat{
		prettier.Text("payable"),
		callArgsDoc(k.Args),
	}
}

func (docVisitor) VisitTernary(_ *ast.Expr, k *ast.TernaryExpr) prettier.Doc {
	return prettier.Group{
		Doc: prettier.Concat{
			operand(k.Cond, prec.Ternary+1),
			prettier.Indent{
				Doc: prettier.Concat{
					prettier.Line{},
					prettier.Text("? "),
					prettier.Indent{Doc: Doc(k.Then)},
					prettier.Line{},
					prettier.Text(": "),
					prettier.Indent{Doc: Doc(k.Else)},
				},
			},
		},
	}
}

func (docVisitor) VisitTuple(_ *ast.Expr, k *ast.TupleExpr) prettier.Doc {
	if len(k.Elems) == 0 {
		return emptyParensDoc
	}
	return list("(", ")", exprDocs(k.Elems))
}

func (docVisitor) VisitTypeCall(_ *ast.Expr, k *ast.TypeCallExpr) prettier.Doc {
	return prettier.Concat{
		prettier.Text("type("),
		TyDoc(k.Ty),
		prettier.Text(")"),
	}
}

func (docVisitor) VisitType(_ *ast.Expr, k *ast.TypeExpr) prettier.Doc {
	return TyDoc(k.Ty)
}

func (docVisitor) VisitUnary(_ *ast.Expr, k *ast.UnaryExpr) prettier.Doc {
	op := prettier.Text(k.Op.Kind.String())

	if k.Op.Kind.IsPostfix() {
		return prettier.Concat{
			operand(k.Operand, prec.Postfix),
			op,
		}
	}

	doc := prettier.Concat{op}
	if startsWithMinus(k.Op.Kind, k.Operand) {
		// `- -x` must not lex as `--x`.
		doc = append(doc, prettier.Space)
	}
	return append(doc, operand(k.Operand, prec.Prefix))
}

func startsWithMinus(op ast.UnOpKind, operand *ast.Expr) bool {
	if op != ast.UnNeg && op != ast.UnPreDec {
		return false
	}
	u, ok := operand.Kind.(*ast.UnaryExpr)
	return ok && (u.Op.Kind == ast.UnNeg || u.Op.Kind == ast.UnPreDec)
}

// TyDoc returns the layout document for a type.
func TyDoc(ty ast.Ty) prettier.Doc {
	switch k := ty.Kind.(type) {
	case *ast.ElementaryTy:
		return prettier.Text(k.String())
	case *ast.PathTy:
		return prettier.Text(k.String())
	case *ast.ArrayTy:
		var elem prettier.Doc = prettier.Text("")
		if k.Elem != nil {
			elem = TyDoc(*k.Elem)
		}
		if k.Size == nil {
			return prettier.Concat{elem, emptyBracketsDoc}
		}
		return prettier.Concat{elem, prettier.WrapBrackets(Doc(k.Size), prettier.SoftLine{})}
	case *ast.MappingTy:
		var key, value prettier.Doc = prettier.Text(""), prettier.Text("")
		if k.Key != nil {
			key = TyDoc(*k.Key)
		}
		if k.Value != nil {
			value = TyDoc(*k.Value)
		}
		return prettier.Concat{
			prettier.Text("mapping("),
			key,
			prettier.Text(" => "),
			value,
			prettier.Text(")"),
		}
	default:
		return prettier.Text("")
	}
}
