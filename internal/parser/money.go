package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// moneyRe finds a Romanian-formatted amount: up to three digits, then zero
// or more thousands groups separated by "." or a space, then a decimal
// separator ("." or ",") and exactly two cents digits. Whitespace is
// permitted between the decimal separator and the cents digits because OCR
// sometimes inserts a stray space there.
var moneyRe = regexp.MustCompile(`\d{1,3}(?:[.\s]\d{3})*[.,]\s*\d{2}`)

// moneySplitRe pulls the integer portion and the two cents digits out of an
// already-matched money token, using the greedy leading group to land on
// the LAST "." or "," in the token as the decimal separator. That lets a
// token use "." as a thousands separator in one position (1.234,56) and as
// the decimal separator in another (12.19) without ambiguity.
var moneySplitRe = regexp.MustCompile(`^(.*)[.,]\s*(\d{2})$`)

var qtyNumRe = regexp.MustCompile(`\d+[.,]\d+`)

// ParseMoney finds the first money-shaped token in line and returns its
// unsigned magnitude.
func ParseMoney(line string) (decimal.Decimal, bool) {
	m := moneyRe.FindString(line)
	if m == "" {
		return decimal.Decimal{}, false
	}
	return parseMoneyToken(m)
}

func parseMoneyToken(tok string) (decimal.Decimal, bool) {
	parts := moneySplitRe.FindStringSubmatch(tok)
	if parts == nil {
		return decimal.Decimal{}, false
	}
	raw := stripSeparators(parts[1]) + "." + parts[2]
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d.Round(2), true
}

func stripSeparators(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '.' || r == ',' || r == ' ' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsNegativeToken reports whether line carries a minus sign once interior
// whitespace is removed.
func IsNegativeToken(line string) bool {
	return strings.Contains(strings.ReplaceAll(line, " ", ""), "-")
}

// ParseQuantity extracts a decimal-comma or decimal-point fractional
// quantity (e.g. "0,718" or "1.5") from s.
func ParseQuantity(s string) (decimal.Decimal, bool) {
	m := qtyNumRe.FindString(s)
	if m == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", "."))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
