package diag

import "fmt"

// Stage identifies which compiler phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
	StageCheck  Stage = "check"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// LabeledSpan represents a span with an optional label.
type LabeledSpan struct {
	Span  Span
	Label string // Optional label (e.g., "this operator has no assignment form")
	Style string // "primary" or "secondary"; primary spans are emphasized
}

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerUnterminatedString       Code = "LEXER_UNTERMINATED_STRING"
	CodeLexerUnterminatedBlockComment Code = "LEXER_UNTERMINATED_BLOCK_COMMENT"
	CodeLexerIllegalRune              Code = "LEXER_ILLEGAL_RUNE"
	CodeLexerMalformedNumber          Code = "LEXER_MALFORMED_NUMBER"
	CodeLexerInvalidHexString         Code = "LEXER_INVALID_HEX_STRING"

	// Parser errors
	CodeParseUnexpectedToken     Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseExpectedToken       Code = "PARSE_EXPECTED_TOKEN"
	CodeParseInvalidCompoundOp   Code = "PARSE_INVALID_COMPOUND_OPERATOR"
	CodeParseInvalidLiteral      Code = "PARSE_INVALID_LITERAL"
	CodeParseMixedCallArguments  Code = "PARSE_MIXED_CALL_ARGUMENTS"
	CodeParseTrailingInput       Code = "PARSE_TRAILING_INPUT"
	CodeParseInvalidDenomination Code = "PARSE_INVALID_DENOMINATION"

	// Checker errors
	CodeCheckNotAssignableOperator Code = "CHECK_NOT_ASSIGNABLE_OPERATOR"
	CodeCheckNotLValue             Code = "CHECK_NOT_LVALUE"
	CodeCheckSliceAssignment       Code = "CHECK_SLICE_ASSIGNMENT"
	CodeCheckEmptyIndex            Code = "CHECK_EMPTY_INDEX"
	CodeCheckDuplicateNamedArg     Code = "CHECK_DUPLICATE_NAMED_ARGUMENT"
	CodeCheckDenominationOnNonNum  Code = "CHECK_DENOMINATION_ON_NON_NUMBER"
	CodeCheckAddressChecksum       Code = "CHECK_ADDRESS_CHECKSUM"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a compiler diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span // Primary span
	// LabeledSpans allows multiple spans with labels.
	// The first span is treated as primary, others as secondary.
	LabeledSpans []LabeledSpan
	Notes        []string
	Help         string
}

// Error implements the error interface so a diagnostic can travel as an error value.
func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{
		Span:  span,
		Label: label,
		Style: style,
	})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// HasErrors reports whether any diagnostic in ds is an error.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError || d.Severity == "" {
			return true
		}
	}
	return false
}
