package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mpopescu/lidl-receipts/internal/models"
)

// qtyLineRe anchors a quantity line end-to-end: "<qty> BUC|KG x <unit price>".
var qtyLineRe = regexp.MustCompile(`(?i)^\s*(\d+[.,]\d+)\s+(BUC|KG)\s*[xX×]\s*(\d+[.,]\s*\d{2})\s*$`)

var vatSuffixRe = regexp.MustCompile(`\b([ABD])\b\s*$`)

var leadNonDigitRe = regexp.MustCompile(`^[^0-9\-]+`)
var trailNonMoneyRe = regexp.MustCompile(`[^0-9.,\-\s]+$`)
var moneyOnlyFullRe = regexp.MustCompile(`^-?\d{1,3}(?:[.\s]\d{3})*[.,]\s*\d{2}$`)
var anyLetterRe = regexp.MustCompile(`[A-Z]`)

var footerPrefixes = []string{
	"TVA", "TRANZAC", "CASA", "MG", "DATA", "TZ/POS", "ORA", "BON",
	"MULTUMESC", "ACHIZIT", "DETALII",
}

// QtyLine is the quantity/unit/unit-price triple read off a line matching
// is_qty_line.
type QtyLine struct {
	Quantity     decimal.Decimal
	QuantityRaw  string
	Unit         string
	UnitPrice    decimal.Decimal
	UnitPriceRaw string
}

// MatchQtyLine reports whether line is a quantity anchor and, if so, its
// parsed quantity/unit/unit-price.
func MatchQtyLine(line string) (QtyLine, bool) {
	m := qtyLineRe.FindStringSubmatch(line)
	if m == nil {
		return QtyLine{}, false
	}
	qty, ok := ParseQuantity(m[1])
	if !ok {
		return QtyLine{}, false
	}
	price, ok := ParseMoney(m[3])
	if !ok {
		return QtyLine{}, false
	}
	return QtyLine{
		Quantity:     qty,
		QuantityRaw:  m[1],
		Unit:         strings.ToUpper(m[2]),
		UnitPrice:    price,
		UnitPriceRaw: m[3],
	}, true
}

// LineIsVatOnly reports whether line consists solely of a VAT letter (A, B
// or D), once diacritics are folded and case is normalized.
func LineIsVatOnly(line string) (models.VatCode, bool) {
	uu := UpperASCII(strings.TrimSpace(line))
	switch uu {
	case "A", "B", "D":
		return models.VatCode(uu), true
	}
	return "", false
}

// ParseMoneyOnly parses a line that must contain nothing but a (possibly
// signed) money amount once leading/trailing non-money noise is trimmed and
// no letters remain.
func ParseMoneyOnly(line string) (decimal.Decimal, bool) {
	ss := NormSpaces(line)
	val, ok := ParseMoney(ss)
	if !ok {
		return decimal.Decimal{}, false
	}
	uu := UpperASCII(ss)
	if anyLetterRe.MatchString(uu) {
		return decimal.Decimal{}, false
	}
	trimmed := leadNonDigitRe.ReplaceAllString(uu, "")
	trimmed = trailNonMoneyRe.ReplaceAllString(trimmed, "")
	trimmed = strings.TrimSpace(trimmed)
	if !moneyOnlyFullRe.MatchString(trimmed) {
		return decimal.Decimal{}, false
	}
	if IsNegativeToken(ss) {
		val = val.Neg()
	}
	return val.Round(2), true
}

// ParseMoneyVatInline parses a line carrying both a money amount and a
// trailing VAT letter on the same line, returning the amount, the VAT code
// and whatever text remains once both are stripped (a candidate item name).
func ParseMoneyVatInline(line string) (decimal.Decimal, models.VatCode, string, bool) {
	ss := NormSpaces(line)
	val, ok := ParseMoney(ss)
	if !ok {
		return decimal.Decimal{}, "", "", false
	}
	su := UpperASCII(ss)
	m := vatSuffixRe.FindStringSubmatch(su)
	if m == nil {
		return decimal.Decimal{}, "", "", false
	}
	vat := models.VatCode(m[1])
	if IsNegativeToken(ss) {
		val = val.Neg()
	}

	namePart := ss
	if loc := moneyRe.FindStringIndex(ss); loc != nil {
		namePart = ss[:loc[0]] + ss[loc[1]:]
	}
	namePart = strings.TrimSpace(namePart)
	namePart = vatSuffixRe.ReplaceAllString(namePart, "")
	namePart = strings.TrimSpace(namePart)

	return val.Round(2), vat, namePart, true
}

// ParseMoneyThenVat parses the split form where a money amount and its VAT
// letter occupy two consecutive lines, in either order. Returns the number
// of source lines consumed (always 2) on success.
func ParseMoneyThenVat(lines []string, idx int) (decimal.Decimal, models.VatCode, int, bool) {
	if idx+1 >= len(lines) {
		return decimal.Decimal{}, "", 0, false
	}
	a := NormSpaces(lines[idx])
	b := NormSpaces(lines[idx+1])

	if val, ok := ParseMoney(a); ok {
		if vat, ok2 := LineIsVatOnly(b); ok2 {
			if IsNegativeToken(a) {
				val = val.Neg()
			}
			return val.Round(2), vat, 2, true
		}
	}
	if vat, ok := LineIsVatOnly(a); ok {
		if val, ok2 := ParseMoney(b); ok2 {
			if IsNegativeToken(b) {
				val = val.Neg()
			}
			return val.Round(2), vat, 2, true
		}
	}
	return decimal.Decimal{}, "", 0, false
}

// IsTotalsMarker reports whether line introduces the totals block.
func IsTotalsMarker(line string) bool {
	u := UpperASCII(NormSpaces(line))
	return strings.HasPrefix(u, "SUBTOTAL") || strings.HasPrefix(u, "TOTAL")
}

// IsDiscountMarker reports whether line is the "DISCOUNT" section header.
func IsDiscountMarker(line string) bool {
	return strings.HasPrefix(UpperASCII(NormSpaces(line)), "DISCOUNT")
}

// IsDiscountPrelude reports whether line is a store-loyalty discount
// prelude line (e.g. "REDUCERE LIDL PLUS") that precedes the actual
// discount amount without being the DISCOUNT marker itself.
func IsDiscountPrelude(line string) bool {
	u := UpperASCII(NormSpaces(line))
	if strings.HasPrefix(u, "REDUCERE") {
		return true
	}
	return strings.Contains(u, "REDUCERE") && strings.Contains(u, "LIDL") && strings.Contains(u, "PLUS")
}

// IsFooterNoise reports whether line is boilerplate that carries no item
// data: blank lines, bare "CARD"/"LEI"/VAT-letter lines, or one of the
// known receipt-footer section headers.
func IsFooterNoise(line string) bool {
	u := UpperASCII(NormSpaces(line))
	if u == "" {
		return true
	}
	switch u {
	case "CARD", "LEI", "A", "B", "D":
		return true
	}
	for _, p := range footerPrefixes {
		if strings.HasPrefix(u, p) {
			return true
		}
	}
	return false
}

// IsReturnareGarantie reports whether line marks a bottle-return
// (garanție) block that the item state machine must skip rather than
// attempt to parse as an item.
func IsReturnareGarantie(line string) bool {
	u := UpperASCII(line)
	return strings.Contains(u, "RETURNARE") && strings.Contains(u, "GARANT")
}

// looksLikeMoneyNoise reports whether s is entirely digits, separators and
// whitespace once a money token has been confirmed present — i.e. it has no
// alphabetic content and so cannot double as an item name.
func looksLikeMoneyNoise(s string) bool {
	ss := NormSpaces(s)
	if _, ok := ParseMoney(ss); !ok {
		return false
	}
	return moneyNoiseRe.MatchString(UpperASCII(ss))
}

var moneyNoiseRe = regexp.MustCompile(`^[0-9.,\-\s]+$`)
