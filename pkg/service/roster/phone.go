package roster

import "strings"

// NormalizePhone converts free-form phone text into a dialable E.164-ish
// string. It is total and never fails; inputs that are neither 10 nor 11
// digits and lack a leading + get a best-effort +1 prefix even when the
// result is malformed.
//
// The rules apply in order and the order matters: the 11-digit check runs
// before the leading-+ check, and the leading-+ check inspects the raw
// input, not the stripped digits.
func NormalizePhone(raw string) string {
	digits := stripNonDigits(raw)

	if len(digits) == 10 {
		return "+1" + digits
	}

	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		return "+" + digits
	}

	if strings.HasPrefix(raw, "+") {
		return raw
	}

	return "+1" + digits
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
