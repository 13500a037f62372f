package parser

import (
	"regexp"
	"strings"

	"github.com/mpopescu/lidl-receipts/internal/models"
)

const merchantScanLimit = 50

var cifRe = regexp.MustCompile(`^\d{8}$`)

// ExtractMerchant scans the first 50 lines of the receipt for a LIDL name
// line, an 8-digit CIF, and a STRADA/BULEVARDUL address line (taking the
// following line as the city). Every field is best-effort; none are
// required for the record to be usable.
func ExtractMerchant(lines []string) models.Merchant {
	var name, address, city, cif *string

	limit := len(lines)
	if limit > merchantScanLimit {
		limit = merchantScanLimit
	}

	for idx := 0; idx < limit; idx++ {
		line := lines[idx]
		u := UpperASCII(line)

		if name == nil && strings.Contains(u, "LIDL") {
			v := NormSpaces(line)
			name = &v
		}

		if cif == nil {
			trimmed := strings.TrimSpace(line)
			if cifRe.MatchString(trimmed) {
				v := trimmed
				cif = &v
			}
		}

		if address == nil && (strings.HasPrefix(u, "STRADA") || strings.HasPrefix(u, "BULEVARDUL")) {
			v := NormSpaces(line)
			address = &v
			if idx+1 < len(lines) {
				c := NormSpaces(lines[idx+1])
				city = &c
			}
		}
	}

	return models.Merchant{Name: name, Address: address, City: city, CIF: cif}
}
