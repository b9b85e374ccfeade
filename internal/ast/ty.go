package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sulk-lang/sulk/internal/lexer"
)

// Ty is a type as written in source.
type Ty struct {
	Span lexer.Span
	Kind TyKind
}

// TyKind is implemented by ElementaryTy, ArrayTy, PathTy and MappingTy.
type TyKind interface {
	tyKind()
}

// ElementaryKind names the built-in type families.
type ElementaryKind uint8

const (
	TyAddress ElementaryKind = iota
	TyBool
	TyString
	TyBytes
	TyFixedBytes
	TyInt
	TyUInt
	TyFixed
	TyUFixed
)

// ElementaryTy is a built-in type: `uint256`, `bytes32`, `address payable`.
type ElementaryTy struct {
	Kind ElementaryKind
	// Size is the bit width for TyInt, TyUInt, TyFixed and TyUFixed and the
	// byte length for TyFixedBytes. Zero means the unsized spelling.
	Size uint16
	// Fractional is the number of decimals for TyFixed and TyUFixed.
	Fractional uint8
	// Payable marks `address payable`.
	Payable bool
}

// String returns the source spelling of the type.
func (t ElementaryTy) String() string {
	switch t.Kind {
	case TyAddress:
		if t.Payable {
			return "address payable"
		}
		return "address"
	case TyBool:
		return "bool"
	case TyString:
		return "string"
	case TyBytes:
		return "bytes"
	case TyFixedBytes:
		return "bytes" + strconv.Itoa(int(t.Size))
	case TyInt, TyUInt:
		name := "int"
		if t.Kind == TyUInt {
			name = "uint"
		}
		if t.Size == 0 {
			return name
		}
		return name + strconv.Itoa(int(t.Size))
	case TyFixed, TyUFixed:
		name := "fixed"
		if t.Kind == TyUFixed {
			name = "ufixed"
		}
		if t.Size == 0 {
			return name
		}
		return fmt.Sprintf("%s%dx%d", name, t.Size, t.Fractional)
	default:
		return "unknown"
	}
}

// LookupElementary parses an elementary type name such as `uint8`,
// `bytes32` or `fixed128x18`. `address payable` is two tokens and is
// assembled by the parser.
func LookupElementary(name string) (ElementaryTy, bool) {
	switch name {
	case "address":
		return ElementaryTy{Kind: TyAddress}, true
	case "bool":
		return ElementaryTy{Kind: TyBool}, true
	case "string":
		return ElementaryTy{Kind: TyString}, true
	case "bytes":
		return ElementaryTy{Kind: TyBytes}, true
	case "byte":
		return ElementaryTy{Kind: TyFixedBytes, Size: 1}, true
	}

	if rest, ok := strings.CutPrefix(name, "bytes"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 || n > 32 || rest[0] == '0' {
			return ElementaryTy{}, false
		}
		return ElementaryTy{Kind: TyFixedBytes, Size: uint16(n)}, true
	}

	for _, fam := range []struct {
		prefix string
		kind   ElementaryKind
	}{{"uint", TyUInt}, {"int", TyInt}} {
		rest, ok := strings.CutPrefix(name, fam.prefix)
		if !ok {
			continue
		}
		if rest == "" {
			return ElementaryTy{Kind: fam.kind}, true
		}
		bits, ok := parseBits(rest)
		if !ok {
			return ElementaryTy{}, false
		}
		return ElementaryTy{Kind: fam.kind, Size: bits}, true
	}

	for _, fam := range []struct {
		prefix string
		kind   ElementaryKind
	}{{"ufixed", TyUFixed}, {"fixed", TyFixed}} {
		rest, ok := strings.CutPrefix(name, fam.prefix)
		if !ok {
			continue
		}
		if rest == "" {
			return ElementaryTy{Kind: fam.kind}, true
		}
		m, n, ok := strings.Cut(rest, "x")
		if !ok {
			return ElementaryTy{}, false
		}
		bits, ok := parseBits(m)
		if !ok {
			return ElementaryTy{}, false
		}
		decimals, err := strconv.Atoi(n)
		if err != nil || decimals < 0 || decimals > 80 || (len(n) > 1 && n[0] == '0') {
			return ElementaryTy{}, false
		}
		return ElementaryTy{Kind: fam.kind, Size: bits, Fractional: uint8(decimals)}, true
	}

	return ElementaryTy{}, false
}

// parseBits accepts multiples of 8 between 8 and 256.
func parseBits(s string) (uint16, bool) {
	if s == "" || s[0] == '0' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 8 || n > 256 || n%8 != 0 {
		return 0, false
	}
	return uint16(n), true
}

// ArrayTy is `T[]` or `T[n]`. A nil Size is a dynamically sized array.
type ArrayTy struct {
	Elem *Ty
	Size *Expr
}

// PathTy is a user-defined type named by a dotted path: `IERC20`, `Lib.Point`.
type PathTy struct {
	Path []Ident
}

// String joins the path segments with dots.
func (p *PathTy) String() string {
	parts := make([]string, len(p.Path))
	for i, seg := range p.Path {
		parts[i] = seg.Name
	}
	return strings.Join(parts, ".")
}

// MappingTy is `mapping(K => V)`.
type MappingTy struct {
	Key   *Ty
	Value *Ty
}

func (*ElementaryTy) tyKind() {}
func (*ArrayTy) tyKind()      {}
func (*PathTy) tyKind()       {}
func (*MappingTy) tyKind()    {}
