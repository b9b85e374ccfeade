package lexer

import (
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"

	"github.com/sulk-lang/sulk/internal/diag"
)

type LexerErrorKind int

const (
	ErrUnterminatedString LexerErrorKind = iota
	ErrUnterminatedBlockComment
	ErrIllegalRune
	ErrMalformedNumber
	ErrInvalidHexString
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnterminatedString:
		return diag.CodeLexerUnterminatedString
	case ErrUnterminatedBlockComment:
		return diag.CodeLexerUnterminatedBlockComment
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrMalformedNumber:
		return diag.CodeLexerMalformedNumber
	case ErrInvalidHexString:
		return diag.CodeLexerInvalidHexString
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     ToDiagSpan(e.Span),
	}
}

// ToDiagSpan converts a lexer span into its diagnostic counterpart.
func ToDiagSpan(s Span) diag.Span {
	return diag.Span{
		Filename: s.Filename,
		Line:     s.Line,
		Column:   s.Column,
		Start:    s.Start,
		End:      s.End,
	}
}

// punctuation lists the operator spellings per leading rune, longest first,
// so the lexer always takes the maximal munch.
var punctuation = map[rune][]TokenType{
	'=': {EQ, FATARROW, ASSIGN},
	'+': {INC, PLUS_ASSIGN, PLUS},
	'-': {DEC, MINUS_ASSIGN, MINUS},
	'*': {POW, ASTERISK_ASSIGN, ASTERISK},
	'/': {SLASH_ASSIGN, SLASH},
	'%': {PERCENT_ASSIGN, PERCENT},
	'!': {NOT_EQ, BANG},
	'~': {TILDE},
	'&': {AND, AMP_ASSIGN, AMPERSAND},
	'|': {OR, PIPE_ASSIGN, PIPE},
	'^': {CARET_ASSIGN, CARET},
	'<': {SHL_ASSIGN, SHL, LE, LT},
	'>': {SAR_ASSIGN, SAR, SHR_ASSIGN, SHR, GE, GT},
	'?': {QUESTION},
	',': {COMMA},
	';': {SEMICOLON},
	':': {COLON},
	'.': {DOT},
	'(': {LPAREN},
	')': {RPAREN},
	'{': {LBRACE},
	'}': {RBRACE},
	'[': {LBRACKET},
	']': {RBRACKET},
}

// Lexer represents the lexer state
type Lexer struct {
	input      []rune
	pos        int  // index of the current rune
	ch         rune // current rune (0 = EOF)
	line       int  // current line number (1-based)
	column     int  // current column number (1-based)
	emitTrivia bool // whether to emit trivia tokens (comments, whitespace)
	filename   string

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	span.Filename = l.filename
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// newLexer is the single internal constructor that sets up all lexer state
func newLexer(input string, emitTrivia bool) *Lexer {
	l := &Lexer{
		input:      []rune(input),
		pos:        -1, // start before first rune
		line:       1,
		column:     0, // will be 1 after first read()
		emitTrivia: emitTrivia,
	}
	l.read()
	return l
}

// New creates a new lexer for the given input (trivia mode disabled)
func New(input string) *Lexer {
	return newLexer(input, false)
}

// NewWithTrivia creates a new lexer that emits trivia tokens
func NewWithTrivia(input string) *Lexer {
	return newLexer(input, true)
}

// SetFilename attributes all subsequently emitted spans to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// read advances the lexer to the next character.
// line/column always reflect the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		// Moved past the last rune; normalize position to virtual EOF
		l.pos = inputLen
		if prevPos >= 0 && prevPos < inputLen {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else if prevPos < 0 {
			l.column = 1
		}
		l.ch = 0
		return
	}

	l.ch = l.input[l.pos]

	if prevPos >= 0 && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	return l.peekAt(1)
}

func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// hasPrefix reports whether the input at the current position starts with s.
func (l *Lexer) hasPrefix(s string) bool {
	for i, r := range []rune(s) {
		if l.peekAt(i) != r {
			return false
		}
	}
	return true
}

// currentSpanStart returns the position of the character about to be tokenized.
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

// makeToken creates a token with span information
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, raw, value string) Token {
	return Token{
		Type:  tokType,
		Raw:   raw,
		Value: value,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      endPos,
		},
	}
}

// skipWhitespace skips whitespace characters, returning a trivia token in trivia mode.
func (l *Lexer) skipWhitespace() *Token {
	if !l.emitTrivia {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.read()
		}
		return nil
	}

	startLine, startColumn, startPos := l.currentSpanStart()

	if l.ch == '\n' || l.ch == '\r' {
		raw := string(l.ch)
		l.read()
		if l.ch == '\n' && raw == "\r" {
			raw = "\r\n"
			l.read()
		}
		tok := l.makeToken(NEWLINE, startLine, startColumn, startPos, l.pos, raw, raw)
		return &tok
	}

	if l.ch == ' ' || l.ch == '\t' {
		for l.ch == ' ' || l.ch == '\t' {
			l.read()
		}
		raw := string(l.input[startPos:l.pos])
		tok := l.makeToken(WHITESPACE, startLine, startColumn, startPos, l.pos, raw, raw)
		return &tok
	}

	return nil
}

// skipLineComment consumes a line comment whose `//` has already been read.
func (l *Lexer) skipLineComment(startLine, startColumn, startPos int) *Token {
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		l.read()
	}
	if !l.emitTrivia {
		return nil
	}
	raw := string(l.input[startPos:l.pos])
	tok := l.makeToken(LINE_COMMENT, startLine, startColumn, startPos, l.pos, raw, raw)
	return &tok
}

// skipBlockComment consumes a block comment whose `/*` has already been read.
// Block comments do not nest.
func (l *Lexer) skipBlockComment(startLine, startColumn, startPos int) *Token {
	for {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedBlockComment,
				"unterminated block comment",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			break
		}
		if l.ch == '*' && l.peek() == '/' {
			l.read()
			l.read()
			break
		}
		l.read()
	}

	if !l.emitTrivia {
		return nil
	}
	raw := string(l.input[startPos:l.pos])
	tok := l.makeToken(BLOCK_COMMENT, startLine, startColumn, startPos, l.pos, raw, raw)
	return &tok
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readDigits consumes digits accepted by ok, allowing single `_` separators
// between them. It reports whether the run was well formed.
func (l *Lexer) readDigits(ok func(rune) bool) bool {
	wellFormed := true
	prevUnderscore := false
	for ok(l.ch) || l.ch == '_' {
		if l.ch == '_' {
			if prevUnderscore || !ok(l.peek()) {
				wellFormed = false
			}
			prevUnderscore = true
		} else {
			prevUnderscore = false
		}
		l.read()
	}
	return wellFormed
}

// readNumber reads a number literal: decimal, hex (0x...), decimal fraction
// (1.5, .5) or scientific notation (2e10, 1.5e-3).
func (l *Lexer) readNumber(startLine, startColumn int) (string, TokenType) {
	start := l.pos
	wellFormed := true

	if l.ch == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.read() // '0'
		l.read() // 'x'
		if !isHexDigit(l.ch) {
			wellFormed = false
		}
		wellFormed = l.readDigits(isHexDigit) && wellFormed
		if isLetter(l.ch) || isDigit(l.ch) {
			wellFormed = false
			for isLetter(l.ch) || isDigit(l.ch) {
				l.read()
			}
		}
		literal := string(l.input[start:l.pos])
		if !wellFormed {
			l.addError(ErrMalformedNumber, "malformed hexadecimal number "+strconv.Quote(literal),
				Span{Line: startLine, Column: startColumn, Start: start, End: l.pos})
		}
		return literal, INT
	}

	tokType := INT
	if l.ch != '.' {
		wellFormed = l.readDigits(isDigit)
	}

	if l.ch == '.' && isDigit(l.peek()) {
		tokType = RATIONAL
		l.read() // '.'
		wellFormed = l.readDigits(isDigit) && wellFormed
	}

	if (l.ch == 'e' || l.ch == 'E') && (isDigit(l.peek()) || (l.peek() == '-' && isDigit(l.peekAt(2)))) {
		tokType = RATIONAL
		l.read() // 'e'
		if l.ch == '-' {
			l.read()
		}
		wellFormed = l.readDigits(isDigit) && wellFormed
	}

	if isLetter(l.ch) {
		// A number immediately followed by an identifier rune, as in `1wei`.
		wellFormed = false
		for isLetter(l.ch) || isDigit(l.ch) {
			l.read()
		}
	}

	literal := string(l.input[start:l.pos])
	if !wellFormed {
		l.addError(ErrMalformedNumber, "malformed number "+strconv.Quote(literal),
			Span{Line: startLine, Column: startColumn, Start: start, End: l.pos})
	}
	return literal, tokType
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		if triviaTok := l.skipWhitespace(); triviaTok != nil {
			return *triviaTok
		}

		startLine, startColumn, startPos := l.currentSpanStart()

		switch {
		case l.ch == 0:
			return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "", "")

		case l.ch == '/' && l.peek() == '/':
			l.read()
			l.read()
			if tok := l.skipLineComment(startLine, startColumn, startPos); tok != nil {
				return *tok
			}
			continue

		case l.ch == '/' && l.peek() == '*':
			l.read()
			l.read()
			if tok := l.skipBlockComment(startLine, startColumn, startPos); tok != nil {
				return *tok
			}
			continue

		case l.ch == '"' || l.ch == '\'':
			raw, value, terminated := l.readString(startLine, startColumn, startPos)
			if !terminated {
				return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
			}
			return l.makeToken(STRING, startLine, startColumn, startPos, l.pos, raw, value)

		case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peek())):
			literal, tokType := l.readNumber(startLine, startColumn)
			return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, literal, literal)

		case l.hasPrefix(`hex"`) || l.hasPrefix(`hex'`):
			return l.readHexString(startLine, startColumn, startPos)

		case l.hasPrefix(`unicode"`) || l.hasPrefix(`unicode'`):
			for i := 0; i < len("unicode"); i++ {
				l.read()
			}
			raw, value, terminated := l.readString(startLine, startColumn, startPos)
			raw = "unicode" + raw
			if !terminated {
				return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
			}
			return l.makeToken(UNICODESTR, startLine, startColumn, startPos, l.pos, raw, value)

		case isLetter(l.ch):
			literal := l.readIdentifier()
			return l.makeToken(LookupIdent(literal), startLine, startColumn, startPos, l.pos, literal, literal)
		}

		for _, candidate := range punctuation[l.ch] {
			spelling := string(candidate)
			if !l.hasPrefix(spelling) {
				continue
			}
			for range []rune(spelling) {
				l.read()
			}
			return l.makeToken(candidate, startLine, startColumn, startPos, l.pos, spelling, spelling)
		}

		raw := string(l.ch)
		l.read()
		tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
		l.addError(ErrIllegalRune, "illegal character "+strconv.Quote(raw), tok.Span)
		return tok
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '$'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'f') ||
		(ch >= 'A' && ch <= 'F')
}

// readHexString reads hex"..." and returns a HEXSTR token whose Value holds
// the decoded bytes.
func (l *Lexer) readHexString(startLine, startColumn, startPos int) Token {
	for i := 0; i < len("hex"); i++ {
		l.read()
	}
	quote := l.ch
	l.read()

	var digits strings.Builder
	wellFormed := true
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' || l.ch == '\r' {
			l.addError(ErrUnterminatedString, "unterminated hex string literal",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos})
			raw := string(l.input[startPos:l.pos])
			return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
		}
		switch {
		case isHexDigit(l.ch):
			digits.WriteRune(l.ch)
		case l.ch == '_' && digits.Len()%2 == 0 && digits.Len() > 0 && isHexDigit(l.peek()):
		default:
			wellFormed = false
		}
		l.read()
	}
	l.read() // closing quote

	raw := string(l.input[startPos:l.pos])
	decoded, err := hex.DecodeString(digits.String())
	if err != nil || !wellFormed {
		l.addError(ErrInvalidHexString, "invalid hex string literal "+raw,
			Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos})
		return l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, raw, raw)
	}
	return l.makeToken(HEXSTR, startLine, startColumn, startPos, l.pos, raw, string(decoded))
}

// readString reads a quoted string literal at l.ch, handling escape sequences.
// Returns both raw (with quotes and escapes) and decoded values, along with a
// flag indicating whether the string was properly terminated.
func (l *Lexer) readString(startLine, startColumn, startPos int) (raw string, value string, terminated bool) {
	quote := l.ch
	var rawRunes []rune
	var decoded strings.Builder

	rawRunes = append(rawRunes, quote)
	l.read()

	for {
		if l.ch == 0 {
			l.addError(
				ErrUnterminatedString,
				"unterminated string literal",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			break
		}
		if l.ch == quote {
			rawRunes = append(rawRunes, quote)
			l.read()
			return string(rawRunes), decoded.String(), true
		}
		if l.ch == '\n' || l.ch == '\r' {
			l.addError(
				ErrUnterminatedString,
				"newline in string literal",
				Span{Line: startLine, Column: startColumn, Start: startPos, End: l.pos},
			)
			break
		}
		if l.ch == '\\' {
			rawRunes = append(rawRunes, '\\')
			l.read()
			if l.ch == 0 {
				continue
			}
			rawRunes = append(rawRunes, l.ch)
			switch l.ch {
			case 'n':
				decoded.WriteByte('\n')
			case 't':
				decoded.WriteByte('\t')
			case 'r':
				decoded.WriteByte('\r')
			case '\\', '"', '\'':
				decoded.WriteRune(l.ch)
			case '\n':
				// line continuation
			case 'x':
				if isHexDigit(l.peek()) && isHexDigit(l.peekAt(2)) {
					b, _ := strconv.ParseUint(string([]rune{l.peek(), l.peekAt(2)}), 16, 8)
					decoded.WriteByte(byte(b))
					l.read()
					rawRunes = append(rawRunes, l.ch)
					l.read()
					rawRunes = append(rawRunes, l.ch)
				} else {
					decoded.WriteString(`\x`)
				}
			case 'u':
				if hexRun := string([]rune{l.peekAt(1), l.peekAt(2), l.peekAt(3), l.peekAt(4)}); isHexString(hexRun) {
					r, _ := strconv.ParseUint(hexRun, 16, 32)
					decoded.WriteRune(rune(r))
					for i := 0; i < 4; i++ {
						l.read()
						rawRunes = append(rawRunes, l.ch)
					}
				} else {
					decoded.WriteString(`\u`)
				}
			default:
				decoded.WriteByte('\\')
				decoded.WriteRune(l.ch)
			}
			l.read()
			continue
		}
		rawRunes = append(rawRunes, l.ch)
		decoded.WriteRune(l.ch)
		l.read()
	}

	return string(rawRunes), decoded.String(), false
}

func isHexString(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isHexDigit(r) {
			return false
		}
	}
	return true
}
