package parser

import (
	"github.com/sulk-lang/sulk/internal/diag"
	"github.com/sulk-lang/sulk/internal/lexer"
)

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Message  string
	Span     lexer.Span
	Severity diag.Severity
	Code     diag.Code
	Help     string
	Notes    []string
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return e.Span.String() + ": " + e.Message
}

// ToDiagnostic converts a parse error into the shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	severity := e.Severity
	if severity == "" {
		severity = diag.SeverityError
	}
	code := e.Code
	if code == "" {
		code = diag.CodeParseUnexpectedToken
	}
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: severity,
		Code:     code,
		Message:  e.Message,
		Span:     lexer.ToDiagSpan(e.Span),
		Notes:    append([]string(nil), e.Notes...),
		Help:     e.Help,
	}
	return d.WithPrimarySpan(d.Span, "")
}

// emitParseDiagnostic records a recoverable diagnostic without aborting
// parsing. Call sites supply the best-effort span available at the failure
// site.
func (p *Parser) emitParseDiagnostic(err ParseError) {
	if err.Span.Filename == "" && p.filename != "" {
		err.Span.Filename = p.filename
	}
	if err.Severity == "" {
		err.Severity = diag.SeverityError
	}
	p.errors = append(p.errors, err)
}

// reportError reports an unexpected-token error.
func (p *Parser) reportError(msg string, span lexer.Span) {
	p.reportErrorCode(msg, diag.CodeParseUnexpectedToken, span)
}

func (p *Parser) reportErrorCode(msg string, code diag.Code, span lexer.Span) {
	p.emitParseDiagnostic(ParseError{Message: msg, Span: span, Code: code})
}

// reportErrorWithHelp reports an error with help text.
func (p *Parser) reportErrorWithHelp(msg string, code diag.Code, span lexer.Span, help string) {
	p.emitParseDiagnostic(ParseError{Message: msg, Span: span, Code: code, Help: help})
}
