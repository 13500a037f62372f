package parser

import "github.com/mpopescu/lidl-receipts/internal/models"

// PostProcessItems flags items needing review and collapses a consecutive
// duplicate pair produced by an OCR-duplicated line block.
//
// needs_review is set when an item reached this stage without a paid
// amount; the item state machine never appends such an item (one missing
// either name or paid amount is dropped with a warning instead), so this
// currently always evaluates false. It is kept because a future relaxation
// of the collection loop could start emitting partial items, and this is
// where they would need to be flagged.
func PostProcessItems(items []models.Item) []models.Item {
	for i := range items {
		items[i].NeedsReview = items[i].PaidAmountRaw == ""
	}
	return dedupeIncompleteDuplicates(items)
}

// dedupeIncompleteDuplicates walks items left to right; when the current
// and previous item share normalized name, unit, quantity and unit price
// and exactly one of the pair is missing its paid amount, the incomplete
// one is dropped in favor of the complete one.
func dedupeIncompleteDuplicates(items []models.Item) []models.Item {
	if len(items) < 2 {
		return items
	}

	out := make([]models.Item, 0, len(items))
	out = append(out, items[0])

	for i := 1; i < len(items); i++ {
		prev := &out[len(out)-1]
		cur := items[i]

		if sameItemShape(*prev, cur) {
			prevIncomplete := prev.PaidAmountRaw == ""
			curIncomplete := cur.PaidAmountRaw == ""
			if prevIncomplete != curIncomplete {
				if curIncomplete {
					continue
				}
				*prev = cur
				continue
			}
		}

		out = append(out, cur)
	}

	return out
}

func sameItemShape(a, b models.Item) bool {
	return UpperASCII(a.Name) == UpperASCII(b.Name) &&
		a.Unit == b.Unit &&
		a.Quantity.Equal(b.Quantity) &&
		a.UnitPrice.Equal(b.UnitPrice)
}
