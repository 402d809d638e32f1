// Package dates converts the short dates shown in TMDb listing views into ISO
// `YYYY-MM-DD` strings.
//
// The listing grids render air dates in the account's locale, either
// month/day/year or day/month/year. Nothing here guesses the order: callers
// pass the Locale explicitly. Conversion never fails loudly; input that does
// not look like a short date yields an empty string.
package dates
