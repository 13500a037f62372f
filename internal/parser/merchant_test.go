package parser

import "testing"

func TestExtractMerchant_AllFields(t *testing.T) {
	lines := []string{
		"LIDL Romania SCS",
		"12345678",
		"Strada Exemplu nr. 1",
		"Bucuresti",
	}
	got := ExtractMerchant(lines)
	if got.Name == nil || *got.Name != "LIDL Romania SCS" {
		t.Errorf("Name: got %v", got.Name)
	}
	if got.CIF == nil || *got.CIF != "12345678" {
		t.Errorf("CIF: got %v", got.CIF)
	}
	if got.Address == nil || *got.Address != "Strada Exemplu nr. 1" {
		t.Errorf("Address: got %v", got.Address)
	}
	if got.City == nil || *got.City != "Bucuresti" {
		t.Errorf("City: got %v", got.City)
	}
}

func TestExtractMerchant_BoulevardAddress(t *testing.T) {
	lines := []string{"LIDL", "Bulevardul Unirii nr. 5", "Cluj-Napoca"}
	got := ExtractMerchant(lines)
	if got.Address == nil || *got.Address != "Bulevardul Unirii nr. 5" {
		t.Errorf("Address: got %v", got.Address)
	}
}

func TestExtractMerchant_MissingFieldsAreNil(t *testing.T) {
	got := ExtractMerchant([]string{"1,000 BUC x 7,99", "Lapte 1L"})
	if got.Name != nil || got.CIF != nil || got.Address != nil {
		t.Errorf("expected all fields nil, got %+v", got)
	}
}

func TestExtractMerchant_OnlyScansFirst50Lines(t *testing.T) {
	lines := make([]string, 60)
	for i := range lines {
		lines[i] = "filler"
	}
	lines[55] = "LIDL Romania SCS"
	got := ExtractMerchant(lines)
	if got.Name != nil {
		t.Errorf("expected name beyond the scan window to be ignored, got %v", *got.Name)
	}
}
