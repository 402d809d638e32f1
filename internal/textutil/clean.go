package textutil

import "strings"

// CleanText collapses runs of whitespace into single spaces and trims the
// result. strings.Fields treats non-breaking spaces as whitespace, so the
// &nbsp; padding of grid cells disappears too.
func CleanText(value string) string {
	if value == "" {
		return ""
	}
	return strings.Join(strings.Fields(value), " ")
}
