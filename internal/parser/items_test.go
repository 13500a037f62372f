package parser

import (
	"strings"
	"testing"

	"github.com/mpopescu/lidl-receipts/internal/models"
)

func TestParseItems_PatternA_NameThenPaidInline(t *testing.T) {
	lines := strings.Split("1,000 BUC x 7,99\nLapte 1L\n7,99 B", "\n")
	items, warnings := ParseItems(lines, nil)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(items) != 1 {
		t.Fatalf("want 1 item, got %d: %+v", len(items), items)
	}
	it := items[0]
	if it.Name != "Lapte 1L" {
		t.Errorf("Name: want %q, got %q", "Lapte 1L", it.Name)
	}
	if it.Unit != "BUC" || it.UnitPrice.String() != "7.99" {
		t.Errorf("Unit/UnitPrice: got %s %s", it.Unit, it.UnitPrice)
	}
	if it.PaidAmount.String() != "7.99" {
		t.Errorf("PaidAmount: want 7.99, got %s", it.PaidAmount)
	}
	if it.VatCode != models.VatB {
		t.Errorf("VatCode: want B, got %s", it.VatCode)
	}
}

func TestParseItems_PatternB_PaidThenName(t *testing.T) {
	lines := strings.Split("0,420 KG x 12,99\n5,46 B\nMere Golden", "\n")
	items, warnings := ParseItems(lines, nil)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(items) != 1 {
		t.Fatalf("want 1 item, got %d", len(items))
	}
	it := items[0]
	if it.Name != "Mere Golden" {
		t.Errorf("Name: want %q, got %q", "Mere Golden", it.Name)
	}
	if it.Quantity.StringFixed(3) != "0.420" {
		t.Errorf("Quantity: want 0.420, got %s", it.Quantity)
	}
	if it.PaidAmount.String() != "5.46" {
		t.Errorf("PaidAmount: want 5.46, got %s", it.PaidAmount)
	}
}

func TestParseItems_PatternC_SplitVatPendingThenAmount(t *testing.T) {
	lines := strings.Split("2,000 BUC x 3,50\nPaine\nB\n7,00", "\n")
	items, warnings := ParseItems(lines, nil)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(items) != 1 {
		t.Fatalf("want 1 item, got %d", len(items))
	}
	it := items[0]
	if it.PaidAmount.StringFixed(2) != "7.00" {
		t.Errorf("PaidAmount: want 7.00, got %s", it.PaidAmount)
	}
	if it.VatCode != models.VatB {
		t.Errorf("VatCode: want B, got %s", it.VatCode)
	}
}

func TestParseItems_PatternD_DiscountBlockDoesNotProduceSpuriousItem(t *testing.T) {
	// The discount reconciler (AttachDiscountsFromLEI), not the item state
	// machine, is authoritative for Pattern D - see discount_test.go and
	// the full end-to-end S4 case in parser_test.go. This only checks that
	// a trailing REDUCERE/DISCOUNT block doesn't get misread as a second
	// item or corrupt the one already collected.
	lines := strings.Split(
		"1,000 BUC x 10,00\nSirop\n10,00 B\nREDUCERE 25%\nDISCOUNT\n2,50-B", "\n")
	items, warnings := ParseItems(lines, nil)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(items) != 1 {
		t.Fatalf("want 1 item, got %d: %+v", len(items), items)
	}
	it := items[0]
	if it.Name != "Sirop" || it.PaidAmount.StringFixed(2) != "10.00" {
		t.Errorf("want Sirop/10.00, got %q/%s", it.Name, it.PaidAmount)
	}
}

func TestParseItems_ReturnareGarantieSkipped(t *testing.T) {
	lines := strings.Split(
		"1,000 BUC x 0,50\nReturnare garantie\n2,000 BUC x 7,99\nLapte 1L\n7,99 B", "\n")
	items, _ := ParseItems(lines, nil)
	if len(items) != 1 {
		t.Fatalf("want 1 item (the garantie anchor should be skipped), got %d: %+v", len(items), items)
	}
	if items[0].Name != "Lapte 1L" {
		t.Errorf("expected the surviving item to be Lapte 1L, got %q", items[0].Name)
	}
}

func TestParseItems_IncompleteItemDroppedWithWarning(t *testing.T) {
	lines := strings.Split("1,000 BUC x 7,99\nTOTAL", "\n")
	items, warnings := ParseItems(lines, nil)
	if len(items) != 0 {
		t.Errorf("want 0 items, got %d", len(items))
	}
	if len(warnings) != 1 {
		t.Errorf("want 1 warning, got %d: %v", len(warnings), warnings)
	}
}

func TestParseItems_StopsAtTotalsMarker(t *testing.T) {
	lines := strings.Split("TOTAL\n1,000 BUC x 7,99\nLapte 1L\n7,99 B", "\n")
	items, _ := ParseItems(lines, nil)
	if len(items) != 0 {
		t.Errorf("want 0 items once a totals marker is reached at the outer loop, got %d", len(items))
	}
}

func TestParseItems_MultipleAnchorsInOriginalOrder(t *testing.T) {
	lines := strings.Split(strings.Join([]string{
		"1,000 BUC x 7,99",
		"Lapte 1L",
		"7,99 B",
		"0,420 KG x 12,99",
		"5,46 B",
		"Mere Golden",
	}, "\n"), "\n")
	items, warnings := ParseItems(lines, nil)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(items) != 2 {
		t.Fatalf("want 2 items, got %d", len(items))
	}
	if items[0].Name != "Lapte 1L" || items[1].Name != "Mere Golden" {
		t.Errorf("expected items in anchor order, got %q then %q", items[0].Name, items[1].Name)
	}
}

func TestParseItems_TraceRecordsDecisions(t *testing.T) {
	trace := NewTrace()
	lines := strings.Split("1,000 BUC x 7,99\nLapte 1L\n7,99 B", "\n")
	_, _ = ParseItems(lines, trace)
	if len(trace.Lines()) == 0 {
		t.Error("expected the trace to record at least one decision")
	}
}
