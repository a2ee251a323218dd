package nfe

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ParseDecimal converts a locale-formatted number ("10.50" or "10,50") to an
// exact decimal. Empty or unparsable input yields zero.
func ParseDecimal(text string) decimal.Decimal {
	s := strings.TrimSpace(strings.ReplaceAll(text, ",", "."))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// TruncateToDate keeps the calendar date of a YYYY-MM-DD[THH:MM:SS[±TZ]]
// value verbatim, without any timezone conversion.
func TruncateToDate(text string) string {
	s := strings.TrimSpace(text)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// DigitsOnly strips every non-digit from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeName lower-cases, strips diacritics and trims a product description
// so it can be compared against catalog names.
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.TrimSpace(strings.ToLower(result))
}
