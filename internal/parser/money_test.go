package parser

import "testing"

func TestParseMoney_ThousandsDot(t *testing.T) {
	got, ok := ParseMoney("Total: 1.234,56 LEI")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.String() != "1234.56" {
		t.Errorf("want 1234.56, got %s", got.String())
	}
}

func TestParseMoney_ThousandsSpace(t *testing.T) {
	got, ok := ParseMoney("1 234,56")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.String() != "1234.56" {
		t.Errorf("want 1234.56, got %s", got.String())
	}
}

func TestParseMoney_BareDecimalDot(t *testing.T) {
	got, ok := ParseMoney("12.19")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.String() != "12.19" {
		t.Errorf("want 12.19, got %s", got.String())
	}
}

func TestParseMoney_BareDecimalComma(t *testing.T) {
	got, ok := ParseMoney("12,19")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.String() != "12.19" {
		t.Errorf("want 12.19, got %s", got.String())
	}
}

func TestParseMoney_NoMatch(t *testing.T) {
	if _, ok := ParseMoney("no amount here"); ok {
		t.Error("expected no match")
	}
}

func TestIsNegativeToken_PlainMinus(t *testing.T) {
	if !IsNegativeToken("-8,50 D") {
		t.Error("expected negative")
	}
}

func TestIsNegativeToken_SpacedMinus(t *testing.T) {
	if !IsNegativeToken("- 8,50 D") {
		t.Error("spaces around the minus sign must not affect sign detection")
	}
}

func TestIsNegativeToken_Positive(t *testing.T) {
	if IsNegativeToken("8,50 D") {
		t.Error("expected no negative sign detected")
	}
}

func TestParseQuantity_Comma(t *testing.T) {
	got, ok := ParseQuantity("0,420 KG x 12,99")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.StringFixed(3) != "0.420" {
		t.Errorf("want 0.420, got %s", got.String())
	}
}

func TestParseQuantity_Dot(t *testing.T) {
	got, ok := ParseQuantity("1.5 BUC")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.String() != "1.5" {
		t.Errorf("want 1.5, got %s", got.String())
	}
}
