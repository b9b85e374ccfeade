package printer

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sulk-lang/sulk/internal/ast"
)

// LitString returns the source text of a literal. Parsed literals keep their
// spelling in Symbol; literals built in code are spelled from their value.
func LitString(lit ast.Lit) string {
	if lit.Symbol != "" {
		return lit.Symbol
	}

	switch lit.Kind {
	case ast.LitStr:
		return quoteString(lit.Str, false)
	case ast.LitUnicodeStr:
		return "unicode" + quoteString(lit.Str, true)
	case ast.LitHexStr:
		return `hex"` + hex.EncodeToString([]byte(lit.Str)) + `"`
	case ast.LitNumber:
		if lit.Number == nil {
			return "0"
		}
		return lit.Number.String()
	case ast.LitAddress:
		if lit.Number == nil {
			return fmt.Sprintf("0x%040x", 0)
		}
		return fmt.Sprintf("0x%040x", lit.Number)
	case ast.LitRational:
		if lit.Rational == nil {
			return "0"
		}
		return decimalString(lit.Rational)
	case ast.LitBool:
		return strconv.FormatBool(lit.Bool)
	default:
		return ""
	}
}

// quoteString writes s as a double-quoted literal using only the escapes
// the lexer understands. Non-ASCII text is kept verbatim in unicode literals
// and written byte by byte otherwise.
func quoteString(s string, unicode bool) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r > 0x7f && unicode && !(r == utf8.RuneError && size == 1):
			b.WriteRune(r)
		case r > 0x7f:
			for _, c := range []byte(s[i : i+size]) {
				fmt.Fprintf(&b, `\x%02x`, c)
			}
		default:
			b.WriteRune(r)
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}

// decimalString prints r exactly when it has a finite decimal expansion and
// rounds to 18 places otherwise.
func decimalString(r *big.Rat) string {
	den := new(big.Int).Set(r.Denom())
	digits := 0
	for _, f := range []int64{2, 5} {
		factor := big.NewInt(f)
		n := 0
		mod := new(big.Int)
		for {
			q, m := new(big.Int).QuoRem(den, factor, mod)
			if m.Sign() != 0 {
				break
			}
			den = q
			n++
		}
		digits = max(digits, n)
	}
	if den.Cmp(big.NewInt(1)) != 0 {
		digits = 18
	}
	return r.FloatString(digits)
}
