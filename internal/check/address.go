package check

import (
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/sulk-lang/sulk/internal/ast"
	"github.com/sulk-lang/sulk/internal/diag"
)

// ChecksumAddress returns the EIP-55 mixed-case spelling of a 40 digit hex
// address given without its 0x prefix.
func ChecksumAddress(hexDigits string) string {
	lower := strings.ToLower(hexDigits)

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	sum := h.Sum(nil)

	out := []byte(lower)
	for i, ch := range out {
		if ch < 'a' || ch > 'f' {
			continue
		}
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = ch - 'a' + 'A'
		}
	}
	return string(out)
}

// address reports address literals whose spelling is not the checksummed
// form. Literals built without a source spelling are not checked.
func (c *checker) address(lit ast.Lit) {
	if len(lit.Symbol) != 42 {
		return
	}
	digits := lit.Symbol[2:]
	want := ChecksumAddress(digits)
	if digits == want {
		return
	}
	c.add(newDiag(diag.CodeCheckAddressChecksum, lit.Span,
		"this looks like an address but has an invalid checksum").
		WithHelp("the correctly checksummed address is 0x" + want))
}
