package tmdbweb

import (
	"tmdbpost/internal/textutil"
	"tmdbpost/internal/tvshow"
)

// Find returns the first row whose record has the target's key. With
// compareFields set, every non-empty field of target must also equal the
// scraped value once both are whitespace-collapsed the way grid cells are;
// an empty target field matches anything. A key match whose
// fields differ is reported as absent.
func Find[T tvshow.Record](rows []Row[T], target T, compareFields bool) (Row[T], bool) {
	for _, row := range rows {
		if row.Record.Key() != target.Key() {
			continue
		}
		if compareFields && !fieldsMatch(row.Record.Fields(), target.Fields()) {
			return Row[T]{}, false
		}
		return row, true
	}
	return Row[T]{}, false
}

func fieldsMatch(scraped, want tvshow.Fields) bool {
	return matches(scraped.Name, want.Name) &&
		matches(scraped.Overview, want.Overview) &&
		matches(scraped.Date, want.Date)
}

func matches(scraped, want string) bool {
	want = textutil.CleanText(want)
	return want == "" || textutil.CleanText(scraped) == want
}
