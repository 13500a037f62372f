package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var vatDSuffixRe = regexp.MustCompile(`\bD\b\s*$`)

// ExtractSGRRecovered finds the bottle-deposit refund: a negative LEI token
// whose raw line carries a VAT-D suffix, or, failing that, a split
// <money>/"D" line pair anywhere in the receipt.
func ExtractSGRRecovered(lines []string, lei []LeiToken) decimal.Decimal {
	for _, tok := range lei {
		if !tok.Value.IsNegative() {
			continue
		}
		ru := UpperASCII(NormSpaces(tok.Raw))
		if vatDSuffixRe.MatchString(ru) {
			return tok.Value.Abs().Round(2)
		}
	}

	for idx := 0; idx < len(lines)-1; idx++ {
		a := NormSpaces(lines[idx])
		b := NormSpaces(lines[idx+1])
		if b != "D" {
			continue
		}
		v, ok := ParseMoney(a)
		if !ok {
			continue
		}
		if strings.Contains(strings.ReplaceAll(lines[idx], " ", ""), "-") {
			v = v.Neg()
		}
		if v.IsNegative() {
			return v.Abs().Round(2)
		}
	}

	return decimal.Zero
}
