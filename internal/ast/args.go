package ast

// NamedArg is `name: value`.
type NamedArg struct {
	Name  Ident
	Value *Expr
}

// NamedArgList is `{a: "1", b: 2}`. Duplicate names are not rejected here.
type NamedArgList []NamedArg

// CallArgs holds the arguments of a call: either positional `(1, 2, 3)` or
// named `({x: 1, y: 2})`, never a mix. The zero value is the empty
// positional list.
type CallArgs struct {
	named     bool
	unnamed   []*Expr
	namedArgs NamedArgList
}

// EmptyCallArgs returns the empty positional argument list. It is equal to
// the zero value.
func EmptyCallArgs() CallArgs {
	return CallArgs{}
}

// UnnamedArgs builds a positional argument list.
func UnnamedArgs(args ...*Expr) CallArgs {
	if len(args) == 0 {
		return CallArgs{}
	}
	return CallArgs{unnamed: args}
}

// NamedArgs builds a named argument list. An empty list is still the named
// form: `f({})`.
func NamedArgs(args ...NamedArg) CallArgs {
	if args == nil {
		args = NamedArgList{}
	}
	return CallArgs{named: true, namedArgs: args}
}

// IsNamed reports whether the arguments use the `{name: value}` form.
func (a CallArgs) IsNamed() bool { return a.named }

// Unnamed returns the positional arguments; ok is false for the named form.
func (a CallArgs) Unnamed() (args []*Expr, ok bool) {
	if a.named {
		return nil, false
	}
	return a.unnamed, true
}

// Named returns the named arguments; ok is false for the positional form.
func (a CallArgs) Named() (args NamedArgList, ok bool) {
	if !a.named {
		return nil, false
	}
	return a.namedArgs, true
}

// Len returns the number of arguments in either form.
func (a CallArgs) Len() int {
	if a.named {
		return len(a.namedArgs)
	}
	return len(a.unnamed)
}

// Exprs returns the argument values in source order regardless of form.
func (a CallArgs) Exprs() []*Expr {
	if !a.named {
		return a.unnamed
	}
	out := make([]*Expr, len(a.namedArgs))
	for i, arg := range a.namedArgs {
		out[i] = arg.Value
	}
	return out
}

// IndexKind is the bracketed part of an index expression: IndexSingle or
// IndexRange.
type IndexKind interface {
	indexKind()
}

// IndexSingle is `v[i]`. A nil Index is the bare `v[]`, which only appears
// in type positions such as `new uint[](n)`.
type IndexSingle struct {
	Index *Expr
}

// IndexRange is the slice `v[l:r]`; either bound may be omitted.
type IndexRange struct {
	Start *Expr
	End   *Expr
}

func (*IndexSingle) indexKind() {}
func (*IndexRange) indexKind()  {}
