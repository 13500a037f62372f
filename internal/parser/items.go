package parser

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mpopescu/lidl-receipts/internal/models"
)

// itemAccumulator holds the in-progress fields for the item currently being
// collected, anchored at a quantity line.
type itemAccumulator struct {
	name    *string
	paid    *decimal.Decimal
	paidRaw string
	vat     models.VatCode
}

func (a *itemAccumulator) hasPaid() bool { return a.paid != nil }

// ParseItems walks lines from index 0, anchoring on each line matching
// is_qty_line and collecting the item it introduces per the rules in the
// item state machine: name and paid amount may appear in either order
// (Pattern A/B), split across two lines with the VAT letter (Pattern C), or
// as money-only with a VAT letter seen earlier on a line of its own
// (pending_vat). An item missing either field when the collection loop
// closes is dropped with a warning rather than emitted incomplete.
//
// A trailing discount block (Pattern D) immediately following a closed item
// is attached inline here; the discount reconciler pass re-derives and may
// override it once the full LEI token stream is available.
func ParseItems(lines []string, trace *Trace) ([]models.Item, []string) {
	var items []models.Item
	var warnings []string

	i := 0
	for i < len(lines) {
		ln := NormSpaces(lines[i])
		if IsTotalsMarker(ln) {
			break
		}

		qty, ok := MatchQtyLine(ln)
		if !ok {
			i++
			continue
		}

		acc := &itemAccumulator{}
		var pendingVat models.VatCode
		skippedReturnareGarantie := false

		j := i + 1
		for j < len(lines) {
			cand := NormSpaces(lines[j])

			if IsTotalsMarker(cand) {
				break
			}
			if _, isQty := MatchQtyLine(cand); isQty {
				break
			}
			if IsFooterNoise(cand) {
				j++
				continue
			}
			if IsDiscountPrelude(cand) || IsDiscountMarker(cand) {
				j++
				continue
			}
			if vat, isVatOnly := LineIsVatOnly(cand); isVatOnly {
				pendingVat = vat
				trace.Logf("[vat] pending_vat=%s line=%q", vat, cand)
				j++
				continue
			}
			if acc.name == nil && IsReturnareGarantie(cand) {
				trace.Logf("[skip] returnare_garantie after q_line=%q", ln)
				j++
				for j < len(lines) {
					next := NormSpaces(lines[j])
					if _, isQty := MatchQtyLine(next); isQty {
						break
					}
					if IsTotalsMarker(next) {
						break
					}
					j++
				}
				skippedReturnareGarantie = true
				break
			}

			if val, vat, namePart, ok := ParseMoneyVatInline(cand); ok && val.IsPositive() && !acc.hasPaid() {
				v := val
				acc.paid = &v
				acc.vat = vat
				acc.paidRaw = cand
				if acc.name == nil && namePart != "" && !looksLikeMoneyNoise(namePart) {
					n := namePart
					acc.name = &n
				}
				trace.Logf("[paid] inline val=%s vat=%s line=%q", val, vat, cand)
				j++
				continue
			}

			if val, vat, consumed, ok := ParseMoneyThenVat(lines, j); ok && val.IsPositive() && !acc.hasPaid() {
				v := val
				acc.paid = &v
				acc.vat = vat
				acc.paidRaw = NormSpaces(lines[j]) + " " + NormSpaces(lines[j+1])
				trace.Logf("[paid] split val=%s vat=%s line=%q", val, vat, acc.paidRaw)
				j += consumed
				continue
			}

			if val, ok := ParseMoneyOnly(cand); ok && val.IsPositive() && !acc.hasPaid() {
				v := val
				acc.paid = &v
				acc.vat = pendingVat
				if pendingVat != "" {
					acc.paidRaw = cand + " " + string(pendingVat)
				} else {
					acc.paidRaw = cand
				}
				trace.Logf("[paid] money_only val=%s vat=%s line=%q", val, pendingVat, acc.paidRaw)
				pendingVat = ""
				j++
				continue
			}

			if acc.name == nil && !looksLikeMoneyNoise(cand) {
				if _, isVatOnly := LineIsVatOnly(cand); !isVatOnly {
					n := cand
					acc.name = &n
					trace.Logf("[name] %q", n)
					j++
					continue
				}
			}

			j++
		}

		if skippedReturnareGarantie {
			i = j
			continue
		}

		if acc.name == nil || !acc.hasPaid() {
			warnings = append(warnings, fmt.Sprintf(
				"incomplete item after quantity line %q (name=%s, paid=%s)",
				ln, derefStr(acc.name), derefMoney(acc.paid)))
			trace.Logf("[warn] incomplete item q_line=%q name=%s paid=%s pending_vat=%s",
				ln, derefStr(acc.name), derefMoney(acc.paid), pendingVat)
			i++
			continue
		}

		k := j
		for k < len(lines) && IsDiscountPrelude(NormSpaces(lines[k])) {
			k++
		}
		if k < len(lines) && IsDiscountMarker(NormSpaces(lines[k])) {
			k++
		}

		discount := decimal.Zero
		var discountRaw *string
		if k < len(lines) {
			if val, raw, consumed, vat, ok := takeNegativeAmount(lines, k); ok {
				if vat != models.VatD {
					discount = val
					r := raw
					discountRaw = &r
					k += consumed
				}
			}
		}

		item := models.Item{
			Name:          *acc.name,
			Quantity:      qty.Quantity,
			QuantityRaw:   qty.QuantityRaw,
			Unit:          qty.Unit,
			UnitPrice:     qty.UnitPrice,
			UnitPriceRaw:  qty.UnitPriceRaw,
			PaidAmount:    *acc.paid,
			PaidAmountRaw: acc.paidRaw,
			VatCode:       acc.vat,
			Discount:      discount,
			DiscountRaw:   discountRaw,
		}
		items = append(items, item)
		trace.Logf("[item] q_line=%q name=%q paid=%s vat=%s discount=%s",
			ln, item.Name, item.PaidAmount, acc.vat, discount)

		if k > i+1 {
			i = k
		} else {
			i++
		}
	}

	return items, warnings
}

// takeNegativeAmount tries, in order, the three amount forms (inline VAT,
// money-only, split-VAT) at lines[k] and returns the first negative match
// as a positive magnitude.
func takeNegativeAmount(lines []string, k int) (decimal.Decimal, string, int, models.VatCode, bool) {
	line0 := NormSpaces(lines[k])

	if val, vat, _, ok := ParseMoneyVatInline(line0); ok && val.IsNegative() {
		return val.Abs(), line0, 1, vat, true
	}
	if val, ok := ParseMoneyOnly(line0); ok && val.IsNegative() {
		return val.Abs(), line0, 1, "", true
	}
	if val, vat, consumed, ok := ParseMoneyThenVat(lines, k); ok && val.IsNegative() {
		raw := NormSpaces(lines[k])
		if k+1 < len(lines) {
			raw += " " + NormSpaces(lines[k+1])
		}
		return val.Abs(), raw, consumed, vat, true
	}
	return decimal.Decimal{}, "", 0, "", false
}

func derefStr(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func derefMoney(d *decimal.Decimal) string {
	if d == nil {
		return "<nil>"
	}
	return d.String()
}
