package parser

import (
	"fmt"
	"regexp"
)

var dateRe = regexp.MustCompile(`DATA\s*[: ]\s*(\d{2})/(\d{2})/(\d{4})`)
var timeRe = regexp.MustCompile(`[O0]RA\s*[: ]\s*(\d{2})[-: ](\d{2})[-: ](\d{2})`)
var nonDigitRe = regexp.MustCompile(`\D`)

// ExtractTimestamp scans the lines for the first "DATA DD/MM/YYYY" and the
// first "ORA HH-MM-SS" token and combines them into an ISO-8601 timestamp.
// If only a date is found, the time defaults to midnight. Returns nil when
// no date is found, even if a time is present.
func ExtractTimestamp(lines []string) *string {
	var dateS, timeS string

	for _, line := range lines {
		u := UpperASCII(line)
		if dateS == "" {
			if m := dateRe.FindStringSubmatch(u); m != nil {
				dateS = fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
			}
		}
		if timeS == "" {
			if m := timeRe.FindStringSubmatch(u); m != nil {
				h := nonDigitRe.ReplaceAllString(m[1], "0")
				mi := nonDigitRe.ReplaceAllString(m[2], "0")
				s := nonDigitRe.ReplaceAllString(m[3], "0")
				timeS = fmt.Sprintf("%s:%s:%s", h, mi, s)
			}
		}
	}

	switch {
	case dateS != "" && timeS != "":
		v := dateS + "T" + timeS
		return &v
	case dateS != "":
		v := dateS + "T00:00:00"
		return &v
	default:
		return nil
	}
}
