package parser

import "testing"

func TestFindLeiSectionStart_Found(t *testing.T) {
	lines := []string{"Lapte 1L", "LEI", "7,99"}
	if got := FindLeiSectionStart(lines); got != 1 {
		t.Errorf("want 1, got %d", got)
	}
}

func TestFindLeiSectionStart_Absent(t *testing.T) {
	if got := FindLeiSectionStart([]string{"Lapte 1L", "7,99"}); got != -1 {
		t.Errorf("want -1, got %d", got)
	}
}

func TestExtractLeiStream_CollectsAmounts(t *testing.T) {
	lines := []string{"LEI", "7,99", "5,46", "TOTAL"}
	got := ExtractLeiStream(lines)
	if len(got) != 2 {
		t.Fatalf("want 2 tokens, got %d: %+v", len(got), got)
	}
	if got[0].Value.String() != "7.99" {
		t.Errorf("first token: want 7.99, got %s", got[0].Value)
	}
}

func TestExtractLeiStream_NegativeToken(t *testing.T) {
	lines := []string{"LEI", "7,99", "-8,50 D", "TOTAL"}
	got := ExtractLeiStream(lines)
	if len(got) != 2 {
		t.Fatalf("want 2 tokens, got %d: %+v", len(got), got)
	}
	if !got[1].Value.IsNegative() {
		t.Errorf("second token: want negative, got %s", got[1].Value)
	}
	if got[1].Value.Abs().StringFixed(2) != "8.50" {
		t.Errorf("second token magnitude: want 8.50, got %s", got[1].Value.Abs())
	}
}

func TestExtractLeiStream_StopsAtFooterSection(t *testing.T) {
	lines := []string{"LEI", "7,99", "TRANZACTIE 12345", "5,46"}
	got := ExtractLeiStream(lines)
	if len(got) != 1 {
		t.Errorf("expected scanning to stop at the footer prefix, got %d tokens: %+v", len(got), got)
	}
}

func TestExtractLeiStream_SkipsQtyInterleave(t *testing.T) {
	lines := []string{"LEI", "1,000 BUC x 7,99", "7,99", "TOTAL"}
	got := ExtractLeiStream(lines)
	if len(got) != 1 {
		t.Fatalf("expected the quantity line to be skipped, got %d tokens: %+v", len(got), got)
	}
}

func TestExtractLeiStream_AbsentAnchor(t *testing.T) {
	if got := ExtractLeiStream([]string{"Lapte 1L", "7,99"}); got != nil {
		t.Errorf("expected nil without a LEI anchor, got %+v", got)
	}
}
