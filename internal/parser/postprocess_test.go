package parser

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mpopescu/lidl-receipts/internal/models"
)

func TestPostProcessItems_FlagsMissingPaidAmountRaw(t *testing.T) {
	items := []models.Item{{Name: "Lapte", PaidAmountRaw: "7,99 B"}, {Name: "Mere", PaidAmountRaw: ""}}
	got := PostProcessItems(items)
	if got[0].NeedsReview {
		t.Error("item with a paid amount should not need review")
	}
	if !got[1].NeedsReview {
		t.Error("item without a paid amount should need review")
	}
}

func TestDedupeIncompleteDuplicates_DropsIncompleteTwin(t *testing.T) {
	qty := decimal.RequireFromString("1.000")
	price := decimal.RequireFromString("7.99")
	paid := decimal.RequireFromString("7.99")
	items := []models.Item{
		{Name: "Lapte 1L", Unit: "BUC", Quantity: qty, UnitPrice: price, PaidAmountRaw: ""},
		{Name: "Lapte 1L", Unit: "BUC", Quantity: qty, UnitPrice: price, PaidAmount: paid, PaidAmountRaw: "7,99 B"},
	}
	got := dedupeIncompleteDuplicates(items)
	if len(got) != 1 {
		t.Fatalf("want 1 item, got %d: %+v", len(got), got)
	}
	if got[0].PaidAmountRaw == "" {
		t.Error("expected the complete twin to survive")
	}
}

func TestDedupeIncompleteDuplicates_LeavesDistinctItems(t *testing.T) {
	items := []models.Item{
		{Name: "Lapte 1L", PaidAmountRaw: "7,99 B"},
		{Name: "Mere Golden", PaidAmountRaw: "5,46 B"},
	}
	got := dedupeIncompleteDuplicates(items)
	if len(got) != 2 {
		t.Errorf("want 2 items, got %d", len(got))
	}
}
