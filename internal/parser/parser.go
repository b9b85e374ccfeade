package parser

import (
	"golang.org/x/exp/slices"

	"github.com/sulk-lang/sulk/internal/ast"
	"github.com/sulk-lang/sulk/internal/diag"
	"github.com/sulk-lang/sulk/internal/lexer"
	"github.com/sulk-lang/sulk/internal/prec"
)

type (
	prefixParseFn func() *ast.Expr
	infixParseFn  func(*ast.Expr) *ast.Expr
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// precedences maps every token that may continue an expression to the level
// it binds at. Binary operators are filled in from prec.Binary so the parser
// and the printer can never disagree.
var precedences = map[lexer.TokenType]prec.Level{
	lexer.ASSIGN:   prec.Assign,
	lexer.QUESTION: prec.Ternary,
	lexer.INC:      prec.Postfix,
	lexer.DEC:      prec.Postfix,
	lexer.LPAREN:   prec.Postfix,
	lexer.LBRACE:   prec.Postfix,
	lexer.LBRACKET: prec.Postfix,
	lexer.DOT:      prec.Postfix,
}

var compoundAssignTokens = []lexer.TokenType{
	lexer.PLUS_ASSIGN,
	lexer.MINUS_ASSIGN,
	lexer.ASTERISK_ASSIGN,
	lexer.SLASH_ASSIGN,
	lexer.PERCENT_ASSIGN,
	lexer.AMP_ASSIGN,
	lexer.PIPE_ASSIGN,
	lexer.CARET_ASSIGN,
	lexer.SHL_ASSIGN,
	lexer.SHR_ASSIGN,
	lexer.SAR_ASSIGN,
}

func init() {
	for _, k := range ast.BinOpKinds() {
		precedences[lexer.TokenType(k.String())] = prec.Binary(k)
	}
	for _, tt := range compoundAssignTokens {
		precedences[tt] = prec.Assign
	}
}

// Parser is a Pratt parser for contract-language expressions.
//
// curTok is the token under examination and peekTok the one after it; the
// pair is only advanced through nextToken. Prefix functions are entered with
// curTok on the first token of the construct and return with curTok on its
// last token. errors is append-only.
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token

	errors []ParseError

	filename string

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser initialised with the provided source input.
func New(input string, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Parser{
		lx:        lexer.New(input),
		prefixFns: make(map[lexer.TokenType]prefixParseFn),
		infixFns:  make(map[lexer.TokenType]infixParseFn),
		filename:  cfg.filename,
	}

	if cfg.filename != "" {
		p.lx.SetFilename(cfg.filename)
	}

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseNumberLiteral)
	p.registerPrefix(lexer.RATIONAL, p.parseNumberLiteral)
	p.registerPrefix(lexer.STRING, p.parseStringLiteral)
	p.registerPrefix(lexer.UNICODESTR, p.parseStringLiteral)
	p.registerPrefix(lexer.HEXSTR, p.parseStringLiteral)
	p.registerPrefix(lexer.TRUE, p.parseBoolLiteral)
	p.registerPrefix(lexer.FALSE, p.parseBoolLiteral)
	p.registerPrefix(lexer.ILLEGAL, p.parseIllegal)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpr)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpr)
	p.registerPrefix(lexer.TILDE, p.parsePrefixExpr)
	p.registerPrefix(lexer.INC, p.parsePrefixExpr)
	p.registerPrefix(lexer.DEC, p.parsePrefixExpr)
	p.registerPrefix(lexer.DELETE, p.parseDeleteExpr)
	p.registerPrefix(lexer.NEW, p.parseNewExpr)
	p.registerPrefix(lexer.PAYABLE, p.parsePayableExpr)
	p.registerPrefix(lexer.TYPE, p.parseTypeCallExpr)
	p.registerPrefix(lexer.MAPPING, p.parseTypeExpr)
	p.registerPrefix(lexer.LPAREN, p.parseTupleExpr)
	p.registerPrefix(lexer.LBRACKET, p.parseArrayExpr)

	for _, k := range ast.BinOpKinds() {
		p.registerInfix(lexer.TokenType(k.String()), p.parseInfixExpr)
	}
	p.registerInfix(lexer.ASSIGN, p.parseAssignExpr)
	for _, tt := range compoundAssignTokens {
		p.registerInfix(tt, p.parseAssignExpr)
	}
	p.registerInfix(lexer.QUESTION, p.parseTernaryExpr)
	p.registerInfix(lexer.INC, p.parsePostfixExpr)
	p.registerInfix(lexer.DEC, p.parsePostfixExpr)
	p.registerInfix(lexer.LPAREN, p.parseCallExpr)
	p.registerInfix(lexer.LBRACE, p.parseCallOptionsExpr)
	p.registerInfix(lexer.LBRACKET, p.parseIndexExpr)
	p.registerInfix(lexer.DOT, p.parseMemberExpr)

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns all recoverable parse errors that were encountered.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// Diagnostics returns lexer and parser errors merged in source order.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(p.lx.Errors)+len(p.errors))
	for _, e := range p.lx.Errors {
		out = append(out, e.ToDiagnostic())
	}
	for _, e := range p.errors {
		out = append(out, e.ToDiagnostic())
	}
	slices.SortStableFunc(out, func(a, b diag.Diagnostic) int {
		return a.Span.Start - b.Span.Start
	})
	return out
}

// ParseExpr parses a single expression that must span the whole input.
// It returns nil if no expression could be built; Errors explains why.
func (p *Parser) ParseExpr() *ast.Expr {
	if p.curTok.Type == lexer.EOF {
		p.reportErrorCode("expected expression", diag.CodeParseUnexpectedToken, p.curTok.Span)
		return nil
	}

	expr := p.parseExpr(prec.Lowest)
	if expr == nil {
		return nil
	}

	if p.peekTok.Type != lexer.EOF {
		p.reportErrorWithHelp("unexpected "+describe(p.peekTok)+" after expression",
			diag.CodeParseTrailingInput, p.peekTok.Span,
			"separate expressions with ';' to parse a list")
	}
	return expr
}

// ParseExprList parses `;`-separated expressions until the end of input.
// Empty statements are skipped. After an error the parser resynchronises at
// the next `;`, so one bad expression does not hide the rest.
func (p *Parser) ParseExprList() []*ast.Expr {
	var exprs []*ast.Expr

	for p.curTok.Type != lexer.EOF {
		if p.curTok.Type == lexer.SEMICOLON {
			p.nextToken()
			continue
		}

		expr := p.parseExpr(prec.Lowest)
		if expr == nil {
			p.recover()
			continue
		}
		exprs = append(exprs, expr)

		switch p.peekTok.Type {
		case lexer.SEMICOLON:
			p.nextToken()
			p.nextToken()
		case lexer.EOF:
			p.nextToken()
		default:
			p.reportErrorCode("expected ';' after expression, found "+describe(p.peekTok),
				diag.CodeParseExpectedToken, p.peekTok.Span)
			p.nextToken()
			p.recover()
		}
	}

	return exprs
}

// recover skips to the token after the next `;`.
func (p *Parser) recover() {
	for p.curTok.Type != lexer.EOF && p.curTok.Type != lexer.SEMICOLON {
		p.nextToken()
	}
	if p.curTok.Type == lexer.SEMICOLON {
		p.nextToken()
	}
}

func (p *Parser) registerPrefix(tt lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *Parser) registerInfix(tt lexer.TokenType, fn infixParseFn) {
	p.infixFns[tt] = fn
}
