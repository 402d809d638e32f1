package dates

import (
	"fmt"
	"regexp"
	"strings"
)

// Locale selects how the first two groups of a short date are read.
type Locale string

const (
	// MDY reads `M/D/YYYY` (en-US listings).
	MDY Locale = "MDY"
	// DMY reads `D/M/YYYY`.
	DMY Locale = "DMY"
)

var shortDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseLocale accepts "MDY" or "DMY" in any case.
func ParseLocale(value string) (Locale, error) {
	switch Locale(strings.ToUpper(strings.TrimSpace(value))) {
	case MDY:
		return MDY, nil
	case DMY:
		return DMY, nil
	default:
		return "", fmt.Errorf("unsupported date locale %q (want MDY or DMY)", value)
	}
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	return l == MDY || l == DMY
}

// ToISO converts a short date into a zero-padded `YYYY-MM-DD` string.
// Calendar validity is not checked: 02/30/2020 converts verbatim.
func ToISO(value string, locale Locale) string {
	match := shortDatePattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return ""
	}
	var month, day string
	switch locale {
	case MDY:
		month, day = match[1], match[2]
	case DMY:
		day, month = match[1], match[2]
	default:
		return ""
	}
	return match[3] + "-" + pad2(month) + "-" + pad2(day)
}

// IsISO reports whether value has the `YYYY-MM-DD` shape.
func IsISO(value string) bool {
	return isoDatePattern.MatchString(value)
}

func pad2(value string) string {
	if len(value) == 1 {
		return "0" + value
	}
	return value
}
