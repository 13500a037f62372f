package parser

import "testing"

func TestExtractTimestamp_DateAndTime(t *testing.T) {
	lines := []string{"DATA: 05/03/2026", "ORA: 14-22-10"}
	got := ExtractTimestamp(lines)
	if got == nil {
		t.Fatal("expected a timestamp")
	}
	if *got != "2026-03-05T14:22:10" {
		t.Errorf("want 2026-03-05T14:22:10, got %s", *got)
	}
}

func TestExtractTimestamp_DateOnlyDefaultsToMidnight(t *testing.T) {
	lines := []string{"DATA: 05/03/2026"}
	got := ExtractTimestamp(lines)
	if got == nil {
		t.Fatal("expected a timestamp")
	}
	if *got != "2026-03-05T00:00:00" {
		t.Errorf("want 2026-03-05T00:00:00, got %s", *got)
	}
}

func TestExtractTimestamp_Absent(t *testing.T) {
	got := ExtractTimestamp([]string{"Lapte 1L", "7,99 B"})
	if got != nil {
		t.Errorf("expected nil, got %v", *got)
	}
}

func TestExtractTimestamp_ZeroOCRdForO(t *testing.T) {
	lines := []string{"DATA: 05/03/2026", "0RA 14-22-10"}
	got := ExtractTimestamp(lines)
	if got == nil {
		t.Fatal("expected a timestamp")
	}
	if *got != "2026-03-05T14:22:10" {
		t.Errorf("want 2026-03-05T14:22:10, got %s", *got)
	}
}

func TestExtractTimestamp_Format(t *testing.T) {
	lines := []string{"DATA : 01/01/2026", "ORA : 09:05:00"}
	got := ExtractTimestamp(lines)
	if got == nil {
		t.Fatal("expected a timestamp")
	}
	want := "2026-01-01T09:05:00"
	if *got != want {
		t.Errorf("want %s, got %s", want, *got)
	}
}
