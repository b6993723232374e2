package utils

import (
	"strconv"
	"strings"
)

// FormatThousands memformat nominal IDR dengan pemisah ribuan.
// Contoh: 30000 -> "30,000"
func FormatThousands(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.Itoa(amount)
	if len(digits) <= 3 {
		return sign + digits
	}

	// Kelompokkan per tiga digit dari belakang
	var groups []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{digits[start:i]}, groups...)
	}

	return sign + strings.Join(groups, ",")
}
