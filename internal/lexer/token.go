package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune of the original input
	End      int    // exclusive end index
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid reports whether the span carries location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// To returns a span starting at s and ending where end ends.
// The receiver should be the earlier of the two spans.
func (s Span) To(end Span) Span {
	span := s
	if span.Filename == "" {
		span.Filename = end.Filename
	}
	if span.Line == 0 && end.Line != 0 {
		span.Line = end.Line
		span.Column = end.Column
		span.Start = end.Start
	}
	if end.End > span.End {
		span.End = end.End
	}
	return span
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Raw   string // exact runes from source
	Value string // decoded value (strings are unquoted and unescaped)
	Span  Span
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT      TokenType = "IDENT"       // foo, _bar, $baz
	INT        TokenType = "INT"         // 42, 0x2a, 1_000
	RATIONAL   TokenType = "RATIONAL"    // 1.5, 2e10, .5
	STRING     TokenType = "STRING"      // "hello", 'hello'
	UNICODESTR TokenType = "UNICODE_STR" // unicode"hello"
	HEXSTR     TokenType = "HEX_STR"     // hex"00ff"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	POW      TokenType = "**"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	BANG     TokenType = "!"
	TILDE    TokenType = "~"
	INC      TokenType = "++"
	DEC      TokenType = "--"

	AMPERSAND TokenType = "&"
	PIPE      TokenType = "|"
	CARET     TokenType = "^"
	SHL       TokenType = "<<"
	SHR       TokenType = ">>"
	SAR       TokenType = ">>>"

	AND TokenType = "&&"
	OR  TokenType = "||"

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Compound assignment
	PLUS_ASSIGN     TokenType = "+="
	MINUS_ASSIGN    TokenType = "-="
	ASTERISK_ASSIGN TokenType = "*="
	SLASH_ASSIGN    TokenType = "/="
	PERCENT_ASSIGN  TokenType = "%="
	AMP_ASSIGN      TokenType = "&="
	PIPE_ASSIGN     TokenType = "|="
	CARET_ASSIGN    TokenType = "^="
	SHL_ASSIGN      TokenType = "<<="
	SHR_ASSIGN      TokenType = ">>="
	SAR_ASSIGN      TokenType = ">>>="

	QUESTION TokenType = "?"
	FATARROW TokenType = "=>"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	DOT       TokenType = "."

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	TRUE    TokenType = "TRUE"
	FALSE   TokenType = "FALSE"
	DELETE  TokenType = "DELETE"
	NEW     TokenType = "NEW"
	PAYABLE TokenType = "PAYABLE"
	TYPE    TokenType = "TYPE"
	MAPPING TokenType = "MAPPING"

	// Trivia tokens (comments, whitespace, newlines)
	LINE_COMMENT  TokenType = "LINE_COMMENT"  // //
	BLOCK_COMMENT TokenType = "BLOCK_COMMENT" // /* */
	WHITESPACE    TokenType = "WHITESPACE"    // spaces, tabs
	NEWLINE       TokenType = "NEWLINE"       // \n, \r\n
)

var keywords = map[string]TokenType{
	"true":    TRUE,
	"false":   FALSE,
	"delete":  DELETE,
	"new":     NEW,
	"payable": PAYABLE,
	"type":    TYPE,
	"mapping": MAPPING,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsCompoundAssign reports whether tt is one of the `op=` assignment tokens.
func (tt TokenType) IsCompoundAssign() bool {
	switch tt {
	case PLUS_ASSIGN, MINUS_ASSIGN, ASTERISK_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN,
		AMP_ASSIGN, PIPE_ASSIGN, CARET_ASSIGN, SHL_ASSIGN, SHR_ASSIGN, SAR_ASSIGN:
		return true
	default:
		return false
	}
}
