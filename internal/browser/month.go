package browser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidMonth = errors.New("invalid month")

// ParseMonth reads manual month entry for environments without a month
// picker. It accepts "2024-03", "2024-3" and "03/2024" and returns the
// canonical "YYYY-MM" form the API stores.
func ParseMonth(s string) (string, error) {
	s = strings.TrimSpace(s)
	var yearPart, monthPart string
	switch {
	case strings.Contains(s, "-"):
		yearPart, monthPart, _ = strings.Cut(s, "-")
	case strings.Contains(s, "/"):
		monthPart, yearPart, _ = strings.Cut(s, "/")
	default:
		return "", fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidMonth, s)
	}

	if len(yearPart) != 4 || !allDigits(yearPart) {
		return "", fmt.Errorf("%w: %q (year must have four digits)", ErrInvalidMonth, s)
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil || year < 1 {
		return "", fmt.Errorf("%w: %q (bad year)", ErrInvalidMonth, s)
	}
	if len(monthPart) < 1 || len(monthPart) > 2 || !allDigits(monthPart) {
		return "", fmt.Errorf("%w: %q (bad month)", ErrInvalidMonth, s)
	}
	month, err := strconv.Atoi(monthPart)
	if err != nil || month < 1 || month > 12 {
		return "", fmt.Errorf("%w: %q (month must be 01-12)", ErrInvalidMonth, s)
	}
	return fmt.Sprintf("%04d-%02d", year, month), nil
}

// allDigits reports whether s holds ASCII digits only, so no sign.
func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatMonth renders t as "YYYY-MM".
func FormatMonth(t time.Time) string {
	return t.Format("2006-01")
}
