// Package parser implements the LIDL receipt OCR-text parser: a pure,
// single-threaded transform from OCR line output to a schema v3
// ReceiptRecord. Nothing in this package performs I/O; callers own
// acquiring the OCR text and persisting the result.
package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const nbsp = " "

// NormSpaces collapses runs of whitespace (including the non-breaking
// space OCR engines sometimes emit) to single spaces and trims the ends.
func NormSpaces(s string) string {
	s = strings.ReplaceAll(s, nbsp, " ")
	return strings.Join(strings.Fields(s), " ")
}

// stripDiacritics removes Romanian diacritics by decomposing to NFKD and
// dropping the resulting combining marks.
func stripDiacritics(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// UpperASCII folds diacritics and upper-cases, the normalization every
// tokenizer predicate runs its input through before matching.
func UpperASCII(s string) string {
	return strings.ToUpper(stripDiacritics(s))
}
