package parser

import (
	"strings"

	"github.com/sulk-lang/sulk/internal/ast"
	"github.com/sulk-lang/sulk/internal/diag"
	"github.com/sulk-lang/sulk/internal/lexer"
	"github.com/sulk-lang/sulk/internal/prec"
)

// parseExpr is the Pratt loop: it parses a prefix form at curTok and then
// folds in infix and postfix forms that bind tighter than precedence.
func (p *Parser) parseExpr(precedence prec.Level) *ast.Expr {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportError("expected expression, found "+describe(p.curTok), p.curTok.Span)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekTok.Type != lexer.SEMICOLON && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			return left
		}

		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

// parseIdentifier handles plain identifiers and elementary type names used
// as values, as in `uint256(x)` or `address(this)`. Array suffixes are left
// to the index parser so `uint[]` reads as an index with no operand.
func (p *Parser) parseIdentifier() *ast.Expr {
	tok := p.curTok
	if el, ok := ast.LookupElementary(tok.Raw); ok {
		return ast.FromTy(ast.Ty{Span: tok.Span, Kind: &el})
	}
	return ast.FromIdent(ast.NewIdent(tok.Raw, tok.Span))
}

func (p *Parser) parsePrefixExpr() *ast.Expr {
	tok := p.curTok
	kind, _ := ast.LookupUnOp(string(tok.Type), true)

	p.nextToken()
	operand := p.parseExpr(prec.Prefix)
	if operand == nil {
		return nil
	}

	return &ast.Expr{
		Span: tok.Span.To(operand.Span),
		Kind: &ast.UnaryExpr{Op: ast.UnOp{Span: tok.Span, Kind: kind}, Operand: operand},
	}
}

func (p *Parser) parsePostfixExpr(operand *ast.Expr) *ast.Expr {
	tok := p.curTok
	kind, _ := ast.LookupUnOp(string(tok.Type), false)

	return &ast.Expr{
		Span: operand.Span.To(tok.Span),
		Kind: &ast.UnaryExpr{Op: ast.UnOp{Span: tok.Span, Kind: kind}, Operand: operand},
	}
}

func (p *Parser) parseDeleteExpr() *ast.Expr {
	tok := p.curTok

	p.nextToken()
	operand := p.parseExpr(prec.Prefix)
	if operand == nil {
		return nil
	}

	return &ast.Expr{Span: tok.Span.To(operand.Span), Kind: &ast.DeleteExpr{Operand: operand}}
}

func (p *Parser) parseNewExpr() *ast.Expr {
	tok := p.curTok

	p.nextToken()
	ty, ok := p.parseType()
	if !ok {
		return nil
	}

	return &ast.Expr{Span: tok.Span.To(ty.Span), Kind: &ast.NewExpr{Ty: ty}}
}

func (p *Parser) parsePayableExpr() *ast.Expr {
	tok := p.curTok
	if !p.expect(lexer.LPAREN) {
		return nil
	}

	args, ok := p.parseCallArgs()
	if !ok {
		return nil
	}

	return &ast.Expr{Span: tok.Span.To(p.curTok.Span), Kind: &ast.PayableExpr{Args: args}}
}

func (p *Parser) parseTypeCallExpr() *ast.Expr {
	tok := p.curTok
	if !p.expect(lexer.LPAREN) {
		return nil
	}

	p.nextToken()
	ty, ok := p.parseType()
	if !ok {
		return nil
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}

	return &ast.Expr{Span: tok.Span.To(p.curTok.Span), Kind: &ast.TypeCallExpr{Ty: ty}}
}

func (p *Parser) parseTypeExpr() *ast.Expr {
	ty, ok := p.parseType()
	if !ok {
		return nil
	}
	return ast.FromTy(ty)
}

// parseTupleExpr parses `( ... )`. Parentheses always produce a tuple, so
// `(a)` is a one-element tuple and `()` the empty one. A missing element
// between or after commas is recorded as a nil hole.
func (p *Parser) parseTupleExpr() *ast.Expr {
	start := p.curTok.Span
	elems := []*ast.Expr{}

	done := func() *ast.Expr {
		return &ast.Expr{Span: start.To(p.curTok.Span), Kind: &ast.TupleExpr{Elems: elems}}
	}

	p.nextToken()
	if p.curTok.Type == lexer.RPAREN {
		return done()
	}

	for {
		switch p.curTok.Type {
		case lexer.COMMA:
			elems = append(elems, nil)
			p.nextToken()
			continue
		case lexer.RPAREN:
			// Only reachable right after a comma.
			elems = append(elems, nil)
			return done()
		}

		elem := p.parseExpr(prec.Lowest)
		if elem == nil {
			return nil
		}
		elems = append(elems, elem)

		switch p.peekTok.Type {
		case lexer.COMMA:
			p.nextToken()
			p.nextToken()
			if p.curTok.Type == lexer.RPAREN {
				elems = append(elems, nil)
				return done()
			}
		case lexer.RPAREN:
			p.nextToken()
			return done()
		default:
			p.reportErrorCode("expected ',' or ')', found "+describe(p.peekTok),
				diag.CodeParseExpectedToken, p.peekTok.Span)
			return nil
		}
	}
}

func (p *Parser) parseArrayExpr() *ast.Expr {
	start := p.curTok.Span

	p.nextToken()
	res, ok := parseDelimited(p, delimitedConfig{
		Closing:           lexer.RBRACKET,
		AllowEmpty:        true,
		MissingElementMsg: "expected array element",
	}, func(int) (*ast.Expr, bool) {
		elem := p.parseExpr(prec.Lowest)
		return elem, elem != nil
	})
	if !ok {
		return nil
	}

	elems := res.Items
	if elems == nil {
		elems = []*ast.Expr{}
	}
	return &ast.Expr{Span: start.To(p.curTok.Span), Kind: &ast.ArrayExpr{Elems: elems}}
}

func (p *Parser) parseInfixExpr(left *ast.Expr) *ast.Expr {
	tok := p.curTok
	kind, _ := ast.LookupBinOp(string(tok.Type))

	level := p.curPrecedence()
	if prec.RightAssoc(kind) {
		level--
	}

	p.nextToken()
	right := p.parseExpr(level)
	if right == nil {
		return nil
	}

	return &ast.Expr{
		Span: left.Span.To(right.Span),
		Kind: &ast.BinaryExpr{Left: left, Op: ast.BinOp{Span: tok.Span, Kind: kind}, Right: right},
	}
}

// parseAssignExpr handles `=` and the compound forms. Assignment groups to
// the right. Whether the target is assignable is left to the checker.
func (p *Parser) parseAssignExpr(target *ast.Expr) *ast.Expr {
	tok := p.curTok

	var op *ast.BinOp
	if tok.Type != lexer.ASSIGN {
		kind, ok := ast.LookupBinOp(strings.TrimSuffix(string(tok.Type), "="))
		if !ok || !kind.Assignable() {
			p.reportErrorWithHelp("'"+tok.Raw+"' is not an assignment operator",
				diag.CodeParseInvalidCompoundOp, tok.Span,
				"write the operation out: `a = a op b`")
			return nil
		}
		op = &ast.BinOp{Span: tok.Span, Kind: kind}
	}

	p.nextToken()
	value := p.parseExpr(prec.Assign - 1)
	if value == nil {
		return nil
	}

	return &ast.Expr{
		Span: target.Span.To(value.Span),
		Kind: &ast.AssignExpr{Target: target, Op: op, Value: value},
	}
}

// parseTernaryExpr parses `cond ? a : b`. Both branches are full
// expressions, so a trailing assignment belongs to the else branch.
func (p *Parser) parseTernaryExpr(cond *ast.Expr) *ast.Expr {
	p.nextToken()
	then := p.parseExpr(prec.Lowest)
	if then == nil {
		return nil
	}

	if !p.expect(lexer.COLON) {
		return nil
	}

	p.nextToken()
	els := p.parseExpr(prec.Lowest)
	if els == nil {
		return nil
	}

	return &ast.Expr{
		Span: cond.Span.To(els.Span),
		Kind: &ast.TernaryExpr{Cond: cond, Then: then, Else: els},
	}
}

func (p *Parser) parseCallExpr(callee *ast.Expr) *ast.Expr {
	args, ok := p.parseCallArgs()
	if !ok {
		return nil
	}

	return &ast.Expr{Span: callee.Span.To(p.curTok.Span), Kind: &ast.CallExpr{Callee: callee, Args: args}}
}

// parseCallArgs is entered on `(` and returns with curTok on `)`.
func (p *Parser) parseCallArgs() (ast.CallArgs, bool) {
	if p.peekTok.Type == lexer.LBRACE {
		p.nextToken()
		named, ok := p.parseNamedArgList()
		if !ok {
			return ast.CallArgs{}, false
		}
		if p.peekTok.Type == lexer.COMMA {
			p.reportMixedArgs(p.peekTok.Span)
			return ast.CallArgs{}, false
		}
		if !p.expect(lexer.RPAREN) {
			return ast.CallArgs{}, false
		}
		return ast.NamedArgs(named...), true
	}

	p.nextToken()
	res, ok := parseDelimited(p, delimitedConfig{
		Closing:           lexer.RPAREN,
		AllowEmpty:        true,
		MissingElementMsg: "expected argument",
	}, func(int) (*ast.Expr, bool) {
		if p.curTok.Type == lexer.LBRACE {
			p.reportMixedArgs(p.curTok.Span)
			return nil, false
		}
		arg := p.parseExpr(prec.Lowest)
		return arg, arg != nil
	})
	if !ok {
		return ast.CallArgs{}, false
	}

	return ast.UnnamedArgs(res.Items...), true
}

func (p *Parser) reportMixedArgs(span lexer.Span) {
	p.reportErrorWithHelp("cannot mix named and positional arguments",
		diag.CodeParseMixedCallArguments, span,
		"pass either `f(a, b)` or `f({x: a, y: b})`")
}

func (p *Parser) parseCallOptionsExpr(callee *ast.Expr) *ast.Expr {
	opts, ok := p.parseNamedArgList()
	if !ok {
		return nil
	}

	return &ast.Expr{Span: callee.Span.To(p.curTok.Span), Kind: &ast.CallOptionsExpr{Callee: callee, Options: opts}}
}

// parseNamedArgList parses `{a: 1, b: 2}`. It is entered on `{` and returns
// with curTok on `}`.
func (p *Parser) parseNamedArgList() (ast.NamedArgList, bool) {
	p.nextToken()
	res, ok := parseDelimited(p, delimitedConfig{
		Closing:           lexer.RBRACE,
		AllowEmpty:        true,
		MissingElementMsg: "expected named argument",
	}, func(int) (ast.NamedArg, bool) {
		if p.curTok.Type != lexer.IDENT {
			p.reportErrorCode("expected argument name, found "+describe(p.curTok),
				diag.CodeParseExpectedToken, p.curTok.Span)
			return ast.NamedArg{}, false
		}
		name := ast.NewIdent(p.curTok.Raw, p.curTok.Span)

		if !p.expect(lexer.COLON) {
			return ast.NamedArg{}, false
		}

		p.nextToken()
		value := p.parseExpr(prec.Lowest)
		if value == nil {
			return ast.NamedArg{}, false
		}
		return ast.NamedArg{Name: name, Value: value}, true
	})
	if !ok {
		return nil, false
	}

	if res.Items == nil {
		return ast.NamedArgList{}, true
	}
	return res.Items, true
}

// parseIndexExpr parses `v[i]`, `v[]` and the slice forms `v[l:r]`, `v[l:]`,
// `v[:r]` and `v[:]`.
func (p *Parser) parseIndexExpr(base *ast.Expr) *ast.Expr {
	p.nextToken()

	var index ast.IndexKind
	switch p.curTok.Type {
	case lexer.RBRACKET:
		index = &ast.IndexSingle{}
	case lexer.COLON:
		end, ok := p.parseSliceEnd()
		if !ok {
			return nil
		}
		index = &ast.IndexRange{End: end}
	default:
		start := p.parseExpr(prec.Lowest)
		if start == nil {
			return nil
		}
		if p.peekTok.Type == lexer.COLON {
			p.nextToken()
			end, ok := p.parseSliceEnd()
			if !ok {
				return nil
			}
			index = &ast.IndexRange{Start: start, End: end}
			break
		}
		if !p.expect(lexer.RBRACKET) {
			return nil
		}
		index = &ast.IndexSingle{Index: start}
	}

	return &ast.Expr{Span: base.Span.To(p.curTok.Span), Kind: &ast.IndexExpr{Base: base, Index: index}}
}

// parseSliceEnd is entered on `:` and returns with curTok on `]`.
func (p *Parser) parseSliceEnd() (*ast.Expr, bool) {
	p.nextToken()
	if p.curTok.Type == lexer.RBRACKET {
		return nil, true
	}

	end := p.parseExpr(prec.Lowest)
	if end == nil {
		return nil, false
	}
	if !p.expect(lexer.RBRACKET) {
		return nil, false
	}
	return end, true
}

func (p *Parser) parseMemberExpr(base *ast.Expr) *ast.Expr {
	if !p.expect(lexer.IDENT) {
		return nil
	}
	member := ast.NewIdent(p.curTok.Raw, p.curTok.Span)

	return &ast.Expr{Span: base.Span.To(member.Span), Kind: &ast.MemberExpr{Base: base, Member: member}}
}
