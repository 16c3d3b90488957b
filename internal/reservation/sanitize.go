package reservation

import "strings"

// Card input sanitizers. These are input-formatting rules, not business
// rules: pure string transforms producing identical output for identical
// raw input.

// FormatCardNumber strips whitespace and regroups the characters in blocks
// of four separated by single spaces: "12345678" becomes "1234 5678".
func FormatCardNumber(raw string) string {
	compact := strings.Join(strings.Fields(raw), "")

	var b strings.Builder
	for i, r := range compact {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatCardExpiry keeps only digits and shapes them as MM/YY: "1226"
// becomes "12/26". Fewer than two digits pass through unchanged; anything
// past five characters is cut.
func FormatCardExpiry(raw string) string {
	digits := keepDigits(raw)
	if len(digits) < 2 {
		return digits
	}
	out := digits[:2] + "/" + digits[2:]
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// FormatCVV keeps only digits.
func FormatCVV(raw string) string {
	return keepDigits(raw)
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
