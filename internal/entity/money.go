package domain

import "strconv"

// FormatVND renders an integer VND amount the Vietnamese way:
// dot thousands separators, no decimal subunits, trailing đồng sign.
// FormatVND(1234567) == "1.234.567₫".
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		out = append([]byte{'-'}, out...)
	}
	return string(out) + "₫"
}
