package ast

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/sulk-lang/sulk/internal/lexer"
)

// BinOp is a binary operator together with the span of its token.
type BinOp struct {
	Span lexer.Span
	Kind BinOpKind
}

func (op BinOp) String() string { return op.Kind.String() }

// BinOpKind enumerates the binary operators. It carries no precedence;
// see package prec for binding strength.
type BinOpKind uint8

const (
	BinLt BinOpKind = iota // <
	BinLe                  // <=
	BinGt                  // >
	BinGe                  // >=
	BinEq                  // ==
	BinNe                  // !=
	BinOr                  // ||
	BinAnd                 // &&

	BinShr    // >>
	BinShl    // <<
	BinSar    // >>>
	BinBitAnd // &
	BinBitOr  // |
	BinBitXor // ^

	BinAdd // +
	BinSub // -
	BinPow // **
	BinMul // *
	BinDiv // /
	BinRem // %

	numBinOpKinds
)

// BinOpFamily groups binary operators that sit next to each other in the
// precedence ladder.
type BinOpFamily uint8

const (
	FamilyComparison BinOpFamily = iota
	FamilyLogical
	FamilyBitwise
	FamilyArithmetic
)

func (f BinOpFamily) String() string {
	switch f {
	case FamilyComparison:
		return "comparison"
	case FamilyLogical:
		return "logical"
	case FamilyBitwise:
		return "bitwise"
	case FamilyArithmetic:
		return "arithmetic"
	default:
		return fmt.Sprintf("BinOpFamily(%d)", uint8(f))
	}
}

type binOpEntry struct {
	spelling   string
	family     BinOpFamily
	assignable bool
}

var binOpInfo = [numBinOpKinds]binOpEntry{
	BinLt:     {"<", FamilyComparison, false},
	BinLe:     {"<=", FamilyComparison, false},
	BinGt:     {">", FamilyComparison, false},
	BinGe:     {">=", FamilyComparison, false},
	BinEq:     {"==", FamilyComparison, false},
	BinNe:     {"!=", FamilyComparison, false},
	BinOr:     {"||", FamilyLogical, false},
	BinAnd:    {"&&", FamilyLogical, false},
	BinShr:    {">>", FamilyBitwise, true},
	BinShl:    {"<<", FamilyBitwise, true},
	BinSar:    {">>>", FamilyBitwise, true},
	BinBitAnd: {"&", FamilyBitwise, true},
	BinBitOr:  {"|", FamilyBitwise, true},
	BinBitXor: {"^", FamilyBitwise, true},
	BinAdd:    {"+", FamilyArithmetic, true},
	BinSub:    {"-", FamilyArithmetic, true},
	BinPow:    {"**", FamilyArithmetic, false}, // there is no `**=`
	BinMul:    {"*", FamilyArithmetic, true},
	BinDiv:    {"/", FamilyArithmetic, true},
	BinRem:    {"%", FamilyArithmetic, true},
}

// String returns the operator exactly as it is spelled in source.
func (k BinOpKind) String() string {
	if k < numBinOpKinds {
		return binOpInfo[k].spelling
	}
	return fmt.Sprintf("BinOpKind(%d)", uint8(k))
}

// Assignable reports whether the operator has a compound assignment form
// (`+=`, `>>>=`, ...). Anything validating an Assign node's operator must go
// through this method.
func (k BinOpKind) Assignable() bool {
	return k < numBinOpKinds && binOpInfo[k].assignable
}

// Family returns the precedence family the operator belongs to.
func (k BinOpKind) Family() BinOpFamily {
	if k < numBinOpKinds {
		return binOpInfo[k].family
	}
	return FamilyArithmetic
}

// BinOpKinds returns every binary operator in declaration order.
func BinOpKinds() []BinOpKind {
	kinds := make([]BinOpKind, numBinOpKinds)
	for i := range kinds {
		kinds[i] = BinOpKind(i)
	}
	return kinds
}

// LookupBinOp is the inverse of BinOpKind.String.
func LookupBinOp(s string) (BinOpKind, bool) {
	i := slices.IndexFunc(binOpInfo[:], func(info binOpEntry) bool {
		return info.spelling == s
	})
	if i < 0 {
		return 0, false
	}
	return BinOpKind(i), true
}

// UnOp is a unary operator together with the span of its token.
type UnOp struct {
	Span lexer.Span
	Kind UnOpKind
}

func (op UnOp) String() string { return op.Kind.String() }

// UnOpKind enumerates the unary operators.
type UnOpKind uint8

const (
	UnPreInc UnOpKind = iota // ++x
	UnPreDec                 // --x
	UnNot                    // !x
	UnNeg                    // -x
	UnBitNot                 // ~x

	UnPostInc // x++
	UnPostDec // x--

	numUnOpKinds
)

var unOpInfo = [numUnOpKinds]struct {
	spelling string
	prefix   bool
}{
	UnPreInc:  {"++", true},
	UnPreDec:  {"--", true},
	UnNot:     {"!", true},
	UnNeg:     {"-", true},
	UnBitNot:  {"~", true},
	UnPostInc: {"++", false},
	UnPostDec: {"--", false},
}

// String returns the operator spelling. Increment and decrement share their
// spelling between the prefix and postfix forms; only the position tells
// them apart.
func (k UnOpKind) String() string {
	if k < numUnOpKinds {
		return unOpInfo[k].spelling
	}
	return fmt.Sprintf("UnOpKind(%d)", uint8(k))
}

// IsPrefix reports whether the operator is written before its operand.
func (k UnOpKind) IsPrefix() bool {
	return k < numUnOpKinds && unOpInfo[k].prefix
}

// IsPostfix reports whether the operator is written after its operand.
func (k UnOpKind) IsPostfix() bool {
	return !k.IsPrefix()
}

// UnOpKinds returns every unary operator in declaration order.
func UnOpKinds() []UnOpKind {
	kinds := make([]UnOpKind, numUnOpKinds)
	for i := range kinds {
		kinds[i] = UnOpKind(i)
	}
	return kinds
}

// LookupUnOp resolves a spelling in the given position.
func LookupUnOp(s string, prefix bool) (UnOpKind, bool) {
	for i, info := range unOpInfo {
		if info.spelling == s && info.prefix == prefix {
			return UnOpKind(i), true
		}
	}
	return 0, false
}
