package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LeiToken is a single signed amount read off the LEI-anchored section of
// the receipt, alongside the raw line it was read from (needed later to
// recover its VAT letter).
type LeiToken struct {
	Value decimal.Decimal
	Raw   string
}

var leiStopPrefixes = []string{
	"TRANZAC", "CASA", "MG", "DATA", "TZ/POS", "ORA", "BON",
	"MULTUMESC", "ACHIZIT", "DETALII",
}

// FindLeiSectionStart returns the index of the line that is exactly "LEI"
// (after normalization), or -1 if none is present.
func FindLeiSectionStart(lines []string) int {
	for i, ln := range lines {
		if UpperASCII(NormSpaces(ln)) == "LEI" {
			return i
		}
	}
	return -1
}

// ExtractLeiStream walks the lines following the LEI marker and collects
// every signed money amount, skipping quantity lines, BUC/KG interleave
// noise, and stopping once a known footer-section prefix is reached.
func ExtractLeiStream(lines []string) []LeiToken {
	start := FindLeiSectionStart(lines)
	if start < 0 {
		return nil
	}

	var out []LeiToken
	for _, ln := range lines[start+1:] {
		u := UpperASCII(ln)
		normed := NormSpaces(ln)

		if _, ok := MatchQtyLine(normed); ok {
			continue
		}

		uu := UpperASCII(normed)
		if (strings.Contains(uu, "BUC") || strings.Contains(uu, "KG")) &&
			(strings.Contains(" "+uu+" ", " X ") || strings.Contains(uu, "×") || strings.Contains(uu, " X")) {
			continue
		}

		stopped := false
		for _, p := range leiStopPrefixes {
			if strings.HasPrefix(u, p) {
				stopped = true
				break
			}
		}
		if stopped {
			break
		}

		if !moneyRe.MatchString(normed) {
			continue
		}
		v, ok := ParseMoney(ln)
		if !ok {
			continue
		}
		if strings.Contains(strings.ReplaceAll(ln, " ", ""), "-") {
			v = v.Neg()
		}
		out = append(out, LeiToken{Value: v.Round(2), Raw: ln})
	}
	return out
}
