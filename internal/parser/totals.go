package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

const totalTVAScanWindow = 40

// ExtractTotals derives total and subtotal from the positive entries of the
// LEI token stream: the last positive token is the total, the second to
// last is the subtotal. This mirrors the original parser's heuristic
// verbatim, including its reliance on receipt layout rather than an
// explicit "SUBTOTAL" label — see the design notes on this choice.
// totalTVA, when present, is read from the line following a "TOTAL TVA"
// marker within a short scan window.
func ExtractTotals(lines []string, lei []LeiToken) (total, subtotal, totalTVA *decimal.Decimal) {
	var positives []decimal.Decimal
	for _, t := range lei {
		if t.Value.IsPositive() {
			positives = append(positives, t.Value)
		}
	}
	if n := len(positives); n > 0 {
		v := positives[n-1]
		total = &v
	}
	if n := len(positives); n >= 2 {
		v := positives[n-2]
		subtotal = &v
	}

	for i, ln := range lines {
		if !strings.HasPrefix(UpperASCII(NormSpaces(ln)), "TOTAL TVA") {
			continue
		}
		limit := i + totalTVAScanWindow
		if limit > len(lines) {
			limit = len(lines)
		}
		for j := i + 1; j < limit; j++ {
			if v, ok := ParseMoney(lines[j]); ok {
				r := v.Round(2)
				totalTVA = &r
				break
			}
		}
		break
	}

	return total, subtotal, totalTVA
}
