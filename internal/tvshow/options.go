package tvshow

import (
	"fmt"

	"golang.org/x/text/language"

	"tmdbpost/internal/dates"
)

// DefaultTranslation is the edit language used when none is configured.
const DefaultTranslation = "en-US"

// PostOptions controls how records are posted.
type PostOptions struct {
	// Translation is the BCP-47 tag of the translation being edited.
	Translation string
	// DateLocale is the order of dates shown in the listing grid.
	DateLocale dates.Locale
	// AllowUpdate updates existing entries instead of ignoring them.
	AllowUpdate bool
	// MaxParallel > 1 posts items concurrently, one tab each.
	MaxParallel int
}

// Normalize fills defaults and canonicalizes the translation tag.
func (o PostOptions) Normalize() (PostOptions, error) {
	if o.Translation == "" {
		o.Translation = DefaultTranslation
	} else {
		tag, err := language.Parse(o.Translation)
		if err != nil {
			return o, fmt.Errorf("translation %q: %w", o.Translation, err)
		}
		o.Translation = tag.String()
	}
	if o.DateLocale == "" {
		o.DateLocale = dates.MDY
	}
	if !o.DateLocale.Valid() {
		return o, fmt.Errorf("unsupported date locale %q", o.DateLocale)
	}
	if o.MaxParallel < 1 {
		o.MaxParallel = 1
	}
	return o, nil
}
