package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/sulk-lang/sulk/internal/ast"
	"github.com/sulk-lang/sulk/internal/diag"
	"github.com/sulk-lang/sulk/internal/lexer"
)

// maxExponent bounds scientific notation so `1e999999999` cannot exhaust
// memory while being scaled.
const maxExponent = 4096

// addressHexDigits is the length of an address literal without its 0x prefix.
const addressHexDigits = 40

func (p *Parser) parseNumberLiteral() *ast.Expr {
	tok := p.curTok
	lit := &ast.LitExpr{Lit: p.decodeNumber(tok)}
	expr := &ast.Expr{Span: tok.Span, Kind: lit}

	if p.peekTok.Type != lexer.IDENT {
		return expr
	}
	denom, ok := ast.LookupSubDenomination(p.peekTok.Raw)
	if !ok {
		return expr
	}

	p.nextToken()
	lit.Denom = &denom
	expr.Span = expr.Span.To(p.curTok.Span)

	if isHexNumber(tok.Raw) {
		p.reportErrorWithHelp("hexadecimal literals cannot have a unit suffix",
			diag.CodeParseInvalidDenomination, p.curTok.Span,
			"write the value in decimal: `1 "+denom.String()+"`")
	}
	return expr
}

// decodeNumber evaluates a number token. Tokens the lexer already rejected
// decode to LitErr without a second diagnostic.
func (p *Parser) decodeNumber(tok lexer.Token) ast.Lit {
	lit := ast.Lit{Span: tok.Span, Symbol: tok.Raw, Kind: ast.LitErr}
	if p.hasLexError(tok.Span) {
		return lit
	}

	digits := strings.ReplaceAll(tok.Raw, "_", "")

	if isHexNumber(digits) {
		n, ok := new(big.Int).SetString(digits[2:], 16)
		if !ok {
			p.reportErrorCode("invalid hexadecimal literal "+tok.Raw, diag.CodeParseInvalidLiteral, tok.Span)
			return lit
		}
		lit.Number = n
		lit.Kind = ast.LitNumber
		if len(digits)-2 == addressHexDigits && !strings.Contains(tok.Raw, "_") {
			lit.Kind = ast.LitAddress
		}
		return lit
	}

	if tok.Type == lexer.INT {
		n, ok := new(big.Int).SetString(digits, 10)
		if !ok {
			p.reportErrorCode("invalid number literal "+tok.Raw, diag.CodeParseInvalidLiteral, tok.Span)
			return lit
		}
		lit.Number = n
		lit.Kind = ast.LitNumber
		return lit
	}

	r, ok := parseRational(digits)
	if !ok {
		p.reportErrorWithHelp("number literal "+tok.Raw+" is out of range",
			diag.CodeParseInvalidLiteral, tok.Span,
			"exponents are limited to "+strconv.Itoa(maxExponent))
		return lit
	}
	if r.IsInt() {
		lit.Number = new(big.Int).Set(r.Num())
		lit.Kind = ast.LitNumber
		return lit
	}
	lit.Rational = r
	lit.Kind = ast.LitRational
	return lit
}

func (p *Parser) hasLexError(span lexer.Span) bool {
	for _, e := range p.lx.Errors {
		if e.Span.Start == span.Start {
			return true
		}
	}
	return false
}

func isHexNumber(s string) bool {
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// parseRational evaluates `1.5`, `.5`, `2e10` and `1.5e-3` exactly.
func parseRational(s string) (*big.Rat, bool) {
	mantissa, exp := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		e, err := strconv.Atoi(s[i+1:])
		if err != nil || e > maxExponent || e < -maxExponent {
			return nil, false
		}
		exp = e
	}
	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}

	r, ok := new(big.Rat).SetString(mantissa)
	if !ok {
		return nil, false
	}
	if exp == 0 {
		return r, true
	}

	abs := exp
	if abs < 0 {
		abs = -abs
	}
	scale := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs)), nil))
	if exp > 0 {
		return r.Mul(r, scale), true
	}
	return r.Quo(r, scale), true
}

// parseStringLiteral parses a string literal and any directly following
// literals of the same kind, which concatenate: `"a" "b"` is "ab".
func (p *Parser) parseStringLiteral() *ast.Expr {
	first := p.curTok

	kind := ast.LitStr
	switch first.Type {
	case lexer.UNICODESTR:
		kind = ast.LitUnicodeStr
	case lexer.HEXSTR:
		kind = ast.LitHexStr
	}

	symbols := []string{first.Raw}
	var value strings.Builder
	value.WriteString(first.Value)
	span := first.Span

	for p.peekTok.Type == first.Type {
		p.nextToken()
		symbols = append(symbols, p.curTok.Raw)
		value.WriteString(p.curTok.Value)
		span = span.To(p.curTok.Span)
	}

	lit := ast.Lit{Span: span, Symbol: strings.Join(symbols, " "), Kind: kind, Str: value.String()}
	return &ast.Expr{Span: span, Kind: &ast.LitExpr{Lit: lit}}
}

func (p *Parser) parseBoolLiteral() *ast.Expr {
	tok := p.curTok
	lit := ast.Lit{Span: tok.Span, Symbol: tok.Raw, Kind: ast.LitBool, Bool: tok.Type == lexer.TRUE}
	return &ast.Expr{Span: tok.Span, Kind: &ast.LitExpr{Lit: lit}}
}

// parseIllegal turns a token the lexer rejected into an error literal so the
// surrounding expression still parses. The lexer has already reported it.
func (p *Parser) parseIllegal() *ast.Expr {
	tok := p.curTok
	lit := ast.Lit{Span: tok.Span, Symbol: tok.Raw, Kind: ast.LitErr}
	return &ast.Expr{Span: tok.Span, Kind: &ast.LitExpr{Lit: lit}}
}
