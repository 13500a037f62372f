package parser

import "testing"

func TestExtractTotals_LastPositiveIsTotal(t *testing.T) {
	lines := []string{"LEI", "3,00", "5,00", "TOTAL"}
	lei := ExtractLeiStream(lines)
	total, subtotal, _ := ExtractTotals(lines, lei)
	if total == nil || total.StringFixed(2) != "5.00" {
		t.Errorf("total: want 5.00, got %v", total)
	}
	if subtotal == nil || subtotal.StringFixed(2) != "3.00" {
		t.Errorf("subtotal: want 3.00, got %v", subtotal)
	}
}

func TestExtractTotals_SinglePositiveHasNoSubtotal(t *testing.T) {
	lines := []string{"LEI", "5,00", "TOTAL"}
	lei := ExtractLeiStream(lines)
	total, subtotal, _ := ExtractTotals(lines, lei)
	if total == nil || total.StringFixed(2) != "5.00" {
		t.Errorf("total: want 5.00, got %v", total)
	}
	if subtotal != nil {
		t.Errorf("subtotal: want nil, got %v", *subtotal)
	}
}

func TestExtractTotals_NoLeiTokensYieldsNilTotal(t *testing.T) {
	total, subtotal, _ := ExtractTotals(nil, nil)
	if total != nil || subtotal != nil {
		t.Errorf("expected nil total and subtotal, got %v %v", total, subtotal)
	}
}

func TestExtractTotals_TotalTVA(t *testing.T) {
	lines := []string{"LEI", "5,00", "TOTAL", "TOTAL TVA", "0,95"}
	lei := ExtractLeiStream(lines)
	_, _, totalTVA := ExtractTotals(lines, lei)
	if totalTVA == nil || totalTVA.String() != "0.95" {
		t.Errorf("totalTVA: want 0.95, got %v", totalTVA)
	}
}
