package navigation

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public TMDb website.
const DefaultBaseURL = "https://www.themoviedb.org"

// Show edit sections (`active_nav_item` values).
const (
	ShowPrimaryFacts          = "primary_facts"
	ShowAlternativeNames      = "alternative_titles"
	ShowContentRatings        = "content_ratings"
	ShowCrew                  = "crew"
	ShowEpisodeGroups         = "episode_groups"
	ShowExternalIDs           = "external_ids"
	ShowGenres                = "genres"
	ShowKeywords              = "keywords"
	ShowProductionInformation = "production_information"
	ShowRegularCast           = "regular_cast"
	ShowSeasons               = "seasons"
	ShowVideos                = "videos"
)

// Season edit sections.
const (
	SeasonPrimaryFacts = "primary_facts"
	SeasonEpisodes     = "episodes"
	SeasonExternalIDs  = "external_ids"
	SeasonVideos       = "videos"
)

// Options selects the view of a show or season page.
type Options struct {
	// Edit targets the edit page instead of the public page.
	Edit bool
	// Section is an edit section; ignored unless Edit is set.
	Section string
	// Language scopes the edit page to a translation; ignored unless Edit is set.
	Language string
}

// Builder produces URLs rooted at BaseURL.
type Builder struct {
	BaseURL string
}

// New returns a Builder for baseURL, falling back to DefaultBaseURL.
func New(baseURL string) Builder {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Builder{BaseURL: baseURL}
}

func (b Builder) base() string {
	if b.BaseURL == "" {
		return DefaultBaseURL
	}
	return b.BaseURL
}

// HomeURL returns the site root.
func (b Builder) HomeURL() string {
	return b.base()
}

// LoginURL returns the login form URL.
func (b Builder) LoginURL() string {
	return b.base() + "/login"
}

// ShowURL returns the URL of a TV show page.
func (b Builder) ShowURL(showID string, opts Options) string {
	return b.withOptions(fmt.Sprintf("%s/tv/%s", b.base(), url.PathEscape(showID)), opts)
}

// SeasonURL returns the URL of a season of a TV show. Season 0 is "Specials".
func (b Builder) SeasonURL(showID string, season int, opts Options) string {
	return b.withOptions(fmt.Sprintf("%s/tv/%s/season/%d", b.base(), url.PathEscape(showID), season), opts)
}

func (b Builder) withOptions(page string, opts Options) string {
	if !opts.Edit {
		return page
	}
	page += "/edit"
	params := url.Values{}
	if section := strings.TrimSpace(opts.Section); section != "" {
		params.Set("active_nav_item", section)
	}
	if lang := strings.TrimSpace(opts.Language); lang != "" {
		params.Set("language", lang)
	}
	if len(params) == 0 {
		return page
	}
	return page + "?" + params.Encode()
}
