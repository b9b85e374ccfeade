package ast

import (
	"math/big"

	"github.com/sulk-lang/sulk/internal/lexer"
)

// LitKind distinguishes the literal forms.
type LitKind uint8

const (
	// LitStr is a regular string literal: "hello".
	LitStr LitKind = iota
	// LitUnicodeStr is a unicode string literal: unicode"héllo".
	LitUnicodeStr
	// LitHexStr is a hex string literal: hex"00ff".
	LitHexStr
	// LitNumber is an integer literal: 42, 0x2a, 1e18.
	LitNumber
	// LitRational is a non-integral number literal: 1.5, 2e-3.
	LitRational
	// LitAddress is a 40 hex digit literal: 0xdCad3a6d3569DF655070DEd06cb7A1b2Ccd1D3AF.
	LitAddress
	// LitBool is `true` or `false`.
	LitBool
	// LitErr is a literal that failed to lex or decode.
	LitErr
)

var litKindNames = [...]string{
	LitStr:        "string",
	LitUnicodeStr: "unicode string",
	LitHexStr:     "hex string",
	LitNumber:     "number",
	LitRational:   "rational",
	LitAddress:    "address",
	LitBool:       "bool",
	LitErr:        "error",
}

func (k LitKind) String() string {
	if int(k) < len(litKindNames) {
		return litKindNames[k]
	}
	return "unknown"
}

// IsStr reports whether k is one of the string literal forms.
func (k LitKind) IsStr() bool {
	return k == LitStr || k == LitUnicodeStr || k == LitHexStr
}

// Lit is a literal value. Symbol keeps the source spelling; exactly one of the
// value fields is meaningful, selected by Kind.
type Lit struct {
	Span   lexer.Span
	Symbol string
	Kind   LitKind

	Str      string   // LitStr, LitUnicodeStr, LitHexStr (decoded bytes)
	Number   *big.Int // LitNumber, LitAddress
	Rational *big.Rat // LitRational
	Bool     bool     // LitBool
}

// SubDenomination is a unit suffix on a number literal: `5 ether`, `2 days`.
type SubDenomination uint8

const (
	Wei SubDenomination = iota
	Gwei
	Ether
	Seconds
	Minutes
	Hours
	Days
	Weeks
	Years
)

var subDenominations = [...]struct {
	name       string
	multiplier int64
}{
	Wei:     {"wei", 1},
	Gwei:    {"gwei", 1_000_000_000},
	Ether:   {"ether", 1_000_000_000_000_000_000},
	Seconds: {"seconds", 1},
	Minutes: {"minutes", 60},
	Hours:   {"hours", 3600},
	Days:    {"days", 86400},
	Weeks:   {"weeks", 7 * 86400},
	Years:   {"years", 365 * 86400},
}

// String returns the suffix as written in source.
func (d SubDenomination) String() string {
	if int(d) < len(subDenominations) {
		return subDenominations[d].name
	}
	return "unknown"
}

// Multiplier returns the factor the suffix scales a literal by.
func (d SubDenomination) Multiplier() *big.Int {
	if int(d) < len(subDenominations) {
		return big.NewInt(subDenominations[d].multiplier)
	}
	return big.NewInt(1)
}

// IsEther reports whether d is a currency unit.
func (d SubDenomination) IsEther() bool {
	return d <= Ether
}

// IsTime reports whether d is a time unit.
func (d SubDenomination) IsTime() bool {
	return d >= Seconds && d <= Years
}

// LookupSubDenomination resolves a suffix spelling.
func LookupSubDenomination(s string) (SubDenomination, bool) {
	for i, sd := range subDenominations {
		if sd.name == s {
			return SubDenomination(i), true
		}
	}
	return 0, false
}
