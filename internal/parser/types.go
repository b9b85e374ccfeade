package parser

import (
	"github.com/sulk-lang/sulk/internal/ast"
	"github.com/sulk-lang/sulk/internal/lexer"
	"github.com/sulk-lang/sulk/internal/prec"
)

// parseType parses a type starting at curTok, including any array suffixes,
// and returns with curTok on its last token.
func (p *Parser) parseType() (ast.Ty, bool) {
	var ty ast.Ty

	switch p.curTok.Type {
	case lexer.IDENT:
		el, ok := ast.LookupElementary(p.curTok.Raw)
		if !ok {
			path, ok := p.parsePathTy()
			if !ok {
				return ast.Ty{}, false
			}
			ty = path
			break
		}
		span := p.curTok.Span
		if el.Kind == ast.TyAddress && p.peekTok.Type == lexer.PAYABLE {
			p.nextToken()
			el.Payable = true
			span = span.To(p.curTok.Span)
		}
		ty = ast.Ty{Span: span, Kind: &el}
	case lexer.MAPPING:
		m, ok := p.parseMappingTy()
		if !ok {
			return ast.Ty{}, false
		}
		ty = m
	default:
		p.reportError("expected type, found "+describe(p.curTok), p.curTok.Span)
		return ast.Ty{}, false
	}

	for p.peekTok.Type == lexer.LBRACKET {
		p.nextToken()
		elem := ty

		var size *ast.Expr
		if p.peekTok.Type != lexer.RBRACKET {
			p.nextToken()
			size = p.parseExpr(prec.Lowest)
			if size == nil {
				return ast.Ty{}, false
			}
		}
		if !p.expect(lexer.RBRACKET) {
			return ast.Ty{}, false
		}

		ty = ast.Ty{Span: elem.Span.To(p.curTok.Span), Kind: &ast.ArrayTy{Elem: &elem, Size: size}}
	}

	return ty, true
}

// parsePathTy parses a dotted user-defined type name: `IERC20`, `Lib.Point`.
func (p *Parser) parsePathTy() (ast.Ty, bool) {
	span := p.curTok.Span
	path := []ast.Ident{ast.NewIdent(p.curTok.Raw, p.curTok.Span)}

	for p.peekTok.Type == lexer.DOT {
		p.nextToken()
		if !p.expect(lexer.IDENT) {
			return ast.Ty{}, false
		}
		path = append(path, ast.NewIdent(p.curTok.Raw, p.curTok.Span))
		span = span.To(p.curTok.Span)
	}

	return ast.Ty{Span: span, Kind: &ast.PathTy{Path: path}}, true
}

// parseMappingTy parses `mapping(K => V)`.
func (p *Parser) parseMappingTy() (ast.Ty, bool) {
	start := p.curTok.Span
	if !p.expect(lexer.LPAREN) {
		return ast.Ty{}, false
	}

	p.nextToken()
	key, ok := p.parseType()
	if !ok {
		return ast.Ty{}, false
	}
	if !p.expect(lexer.FATARROW) {
		return ast.Ty{}, false
	}

	p.nextToken()
	value, ok := p.parseType()
	if !ok {
		return ast.Ty{}, false
	}
	if !p.expect(lexer.RPAREN) {
		return ast.Ty{}, false
	}

	return ast.Ty{Span: start.To(p.curTok.Span), Kind: &ast.MappingTy{Key: &key, Value: &value}}, true
}
