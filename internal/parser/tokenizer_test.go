package parser

import (
	"testing"

	"github.com/mpopescu/lidl-receipts/internal/models"
)

func TestMatchQtyLine_Buc(t *testing.T) {
	got, ok := MatchQtyLine("1,000 BUC x 7,99")
	if !ok {
		t.Fatal("expected match")
	}
	if got.Quantity.StringFixed(3) != "1.000" {
		t.Errorf("Quantity: want 1.000, got %s", got.Quantity)
	}
	if got.Unit != "BUC" {
		t.Errorf("Unit: want BUC, got %s", got.Unit)
	}
	if got.UnitPrice.String() != "7.99" {
		t.Errorf("UnitPrice: want 7.99, got %s", got.UnitPrice)
	}
}

func TestMatchQtyLine_Kg(t *testing.T) {
	got, ok := MatchQtyLine("0,420 KG x 12,99")
	if !ok {
		t.Fatal("expected match")
	}
	if got.Unit != "KG" {
		t.Errorf("Unit: want KG, got %s", got.Unit)
	}
}

func TestMatchQtyLine_MultiplicationSign(t *testing.T) {
	if _, ok := MatchQtyLine("1,000 BUC × 7,99"); !ok {
		t.Error("expected the × sign to be accepted as a multiplication marker")
	}
}

func TestMatchQtyLine_Rejects(t *testing.T) {
	if _, ok := MatchQtyLine("Lapte 1L"); ok {
		t.Error("expected no match on a name line")
	}
}

func TestLineIsVatOnly(t *testing.T) {
	cases := map[string]models.VatCode{"A": models.VatA, "B": models.VatB, "D": models.VatD}
	for line, want := range cases {
		got, ok := LineIsVatOnly(line)
		if !ok || got != want {
			t.Errorf("LineIsVatOnly(%q) = %v, %v; want %v, true", line, got, ok, want)
		}
	}
}

func TestLineIsVatOnly_RejectsNonVatText(t *testing.T) {
	if _, ok := LineIsVatOnly("Lapte 1L"); ok {
		t.Error("expected no match")
	}
}

func TestParseMoneyOnly_PlainAmount(t *testing.T) {
	got, ok := ParseMoneyOnly("7,99")
	if !ok {
		t.Fatal("expected match")
	}
	if got.String() != "7.99" {
		t.Errorf("want 7.99, got %s", got)
	}
}

func TestParseMoneyOnly_RejectsLineWithLetters(t *testing.T) {
	if _, ok := ParseMoneyOnly("7,99 B"); ok {
		t.Error("a line carrying a VAT letter is not money-only")
	}
}

func TestParseMoneyOnly_Negative(t *testing.T) {
	got, ok := ParseMoneyOnly("-8,50")
	if !ok {
		t.Fatal("expected match")
	}
	if !got.IsNegative() {
		t.Errorf("want negative, got %s", got)
	}
}

func TestParseMoneyVatInline(t *testing.T) {
	val, vat, name, ok := ParseMoneyVatInline("7,99 B")
	if !ok {
		t.Fatal("expected match")
	}
	if val.String() != "7.99" {
		t.Errorf("val: want 7.99, got %s", val)
	}
	if vat != models.VatB {
		t.Errorf("vat: want B, got %s", vat)
	}
	if name != "" {
		t.Errorf("name: want empty, got %q", name)
	}
}

func TestParseMoneyVatInline_WithLeadingName(t *testing.T) {
	val, vat, name, ok := ParseMoneyVatInline("Lapte 1L 7,99 B")
	if !ok {
		t.Fatal("expected match")
	}
	if val.String() != "7.99" {
		t.Errorf("val: want 7.99, got %s", val)
	}
	if vat != models.VatB {
		t.Errorf("vat: want B, got %s", vat)
	}
	if name != "Lapte 1L" {
		t.Errorf("name: want %q, got %q", "Lapte 1L", name)
	}
}

func TestParseMoneyVatInline_RejectsNoVatSuffix(t *testing.T) {
	if _, _, _, ok := ParseMoneyVatInline("7,99"); ok {
		t.Error("expected no match without a trailing VAT letter")
	}
}

func TestParseMoneyThenVat_MoneyFirst(t *testing.T) {
	lines := []string{"7,00", "B"}
	val, vat, consumed, ok := ParseMoneyThenVat(lines, 0)
	if !ok {
		t.Fatal("expected match")
	}
	if val.StringFixed(2) != "7.00" || vat != models.VatB || consumed != 2 {
		t.Errorf("got val=%s vat=%s consumed=%d", val, vat, consumed)
	}
}

func TestParseMoneyThenVat_VatFirst(t *testing.T) {
	lines := []string{"B", "7,00"}
	val, vat, consumed, ok := ParseMoneyThenVat(lines, 0)
	if !ok {
		t.Fatal("expected match")
	}
	if val.StringFixed(2) != "7.00" || vat != models.VatB || consumed != 2 {
		t.Errorf("got val=%s vat=%s consumed=%d", val, vat, consumed)
	}
}

func TestIsTotalsMarker(t *testing.T) {
	if !IsTotalsMarker("TOTAL") {
		t.Error("expected TOTAL to be a totals marker")
	}
	if !IsTotalsMarker("SUBTOTAL") {
		t.Error("expected SUBTOTAL to be a totals marker")
	}
	if IsTotalsMarker("Lapte 1L") {
		t.Error("expected no match")
	}
}

func TestIsDiscountMarker(t *testing.T) {
	if !IsDiscountMarker("DISCOUNT") {
		t.Error("expected DISCOUNT to match")
	}
}

func TestIsDiscountPrelude(t *testing.T) {
	if !IsDiscountPrelude("REDUCERE 25%") {
		t.Error("expected a REDUCERE-prefixed line to match")
	}
	if !IsDiscountPrelude("REDUCERE LIDL PLUS") {
		t.Error("expected a LIDL PLUS loyalty discount line to match")
	}
}

func TestIsFooterNoise(t *testing.T) {
	cases := []string{"", "CARD", "LEI", "A", "TVA 19%", "MULTUMESC"}
	for _, c := range cases {
		if !IsFooterNoise(c) {
			t.Errorf("IsFooterNoise(%q) = false, want true", c)
		}
	}
}

func TestIsFooterNoise_DiacriticVariant(t *testing.T) {
	if !IsFooterNoise("MULȚUMESC") {
		t.Error("diacritic variants of MULTUMESC must be treated as footer noise")
	}
}

func TestIsReturnareGarantie(t *testing.T) {
	if !IsReturnareGarantie("Returnare garantie") {
		t.Error("expected match")
	}
	if IsReturnareGarantie("Lapte 1L") {
		t.Error("expected no match")
	}
}
