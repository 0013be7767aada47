package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

var thousandsDotPattern = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)

// ParseLocalizedNumber converts accountant-supplied numeric text in
// "thousands-dot, decimal-comma" format into a plain float.
//
//	"5.000,00"  -> 5000.00
//	"1.234.567" -> 1234567
//	"123,45"    -> 123.45
//
// Unparsable text yields 0 by contract: subtotal dashes, currency noise
// and blank cells are all treated as "no amount", never as an error.
func ParseLocalizedNumber(s string) float64 {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0
	}

	// Strip currency decorations.
	for _, sym := range []string{"₺", "TL", "TRY", "$", "€"} {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || cleaned == "-" {
		return 0
	}

	// Accounting negatives: (1.000,00)
	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = strings.TrimSuffix(strings.TrimPrefix(cleaned, "("), ")")
	}

	if strings.Contains(cleaned, ",") {
		// Comma present: dots are thousands separators, comma is decimal.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else if thousandsDotPattern.MatchString(cleaned) {
		// Pure grouped integer like "1.234.567".
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	// Otherwise leave dots alone so plain "1234.56" still parses.

	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	if negative {
		return -val
	}
	return val
}
