package ast

import "github.com/sulk-lang/sulk/internal/lexer"

// Ident is a name together with the span it was written at.
type Ident struct {
	Name string
	Span lexer.Span
}

// NewIdent constructs an identifier.
func NewIdent(name string, span lexer.Span) Ident {
	return Ident{Name: name, Span: span}
}

func (i Ident) String() string { return i.Name }
