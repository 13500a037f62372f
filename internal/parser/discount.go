package parser

import (
	"github.com/shopspring/decimal"

	"github.com/mpopescu/lidl-receipts/internal/models"
)

// AttachDiscountsFromLEI re-derives each item's discount by walking the LEI
// token stream in the items' own order, matching each item's paid_amount to
// the next equal positive token and inspecting the token immediately after
// it: a negative, non-D token there is the item's discount. This pass is
// authoritative and overrides whatever Pattern D attached inline during
// item collection.
//
// If there are no items or no LEI tokens, the inline Pattern D discounts
// (if any) are left untouched rather than zeroed.
func AttachDiscountsFromLEI(items []models.Item, lei []LeiToken) decimal.Decimal {
	if len(items) == 0 || len(lei) == 0 {
		return decimal.Zero
	}

	for i := range items {
		items[i].Discount = decimal.Zero
		items[i].DiscountRaw = nil
	}

	discountTotal := decimal.Zero
	ti := 0
	for idx := range items {
		paid := items[idx].PaidAmount.Round(2)

		found := false
		for ti < len(lei) {
			if lei[ti].Value.IsPositive() && lei[ti].Value.Round(2).Equal(paid) {
				found = true
				break
			}
			ti++
		}
		if !found {
			continue
		}

		if ti+1 < len(lei) {
			next := lei[ti+1]
			if next.Value.IsNegative() {
				vat := vatFromRawToken(next.Raw)
				if vat != models.VatD {
					disc := next.Value.Abs().Round(2)
					items[idx].Discount = disc
					raw := NormSpaces(next.Raw)
					items[idx].DiscountRaw = &raw
					discountTotal = discountTotal.Add(disc)
					ti += 2
					continue
				}
			}
		}
		ti++
	}

	return discountTotal.Round(2)
}

func vatFromRawToken(raw string) models.VatCode {
	ru := UpperASCII(NormSpaces(raw))
	m := vatSuffixRe.FindStringSubmatch(ru)
	if m == nil {
		return ""
	}
	return models.VatCode(m[1])
}
