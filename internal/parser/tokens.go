package parser

import (
	"strings"

	"github.com/sulk-lang/sulk/internal/diag"
	"github.com/sulk-lang/sulk/internal/lexer"
	"github.com/sulk-lang/sulk/internal/prec"
)

// nextToken advances the parser's token window.
// Contract: after calling nextToken, curTok == old(peekTok). The lexer is only
// queried from this hop to keep lookahead bookkeeping centralized.
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

// expect asserts that the peek token matches the provided type.
// The caller is responsible for inspecting curTok before invoking expect,
// because expect never rewinds; on success it promotes peekTok into curTok.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}

	p.reportErrorCode("expected "+quote(tt)+", found "+describe(p.peekTok),
		diag.CodeParseExpectedToken, p.peekTok.Span)
	return false
}

func (p *Parser) peekPrecedence() prec.Level {
	if l, ok := precedences[p.peekTok.Type]; ok {
		return l
	}
	return prec.Lowest
}

func (p *Parser) curPrecedence() prec.Level {
	if l, ok := precedences[p.curTok.Type]; ok {
		return l
	}
	return prec.Lowest
}

// quote renders a token type for messages: punctuation in quotes, literal
// classes in lower case.
func quote(tt lexer.TokenType) string {
	switch tt {
	case lexer.IDENT:
		return "identifier"
	case lexer.INT, lexer.RATIONAL:
		return "number"
	case lexer.STRING, lexer.UNICODESTR, lexer.HEXSTR:
		return "string"
	case lexer.EOF:
		return "end of input"
	}
	s := string(tt)
	if lexer.LookupIdent(strings.ToLower(s)) == tt {
		s = strings.ToLower(s)
	}
	return "'" + s + "'"
}

// describe names the token for messages, including its spelling where that
// helps.
func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.IDENT:
		return "identifier '" + tok.Raw + "'"
	case lexer.INT, lexer.RATIONAL:
		return "number " + tok.Raw
	case lexer.STRING, lexer.UNICODESTR, lexer.HEXSTR:
		return "string " + tok.Raw
	}
	return "'" + tok.Raw + "'"
}
