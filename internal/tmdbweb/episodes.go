package tmdbweb

import (
	"context"
	"fmt"
	"strings"

	"tmdbpost/internal/dates"
	"tmdbpost/internal/navigation"
	"tmdbpost/internal/services"
	"tmdbpost/internal/tvshow"
)

// PostEpisodesInSeason adds, updates, or ignores each episode on the season's
// episodes edit page. Feedback ordering and abort semantics match PostSeasons.
func (r *Reconciler) PostEpisodesInSeason(ctx context.Context, showID string, season int, episodes []tvshow.Episode, opts tvshow.PostOptions, onFeedback tvshow.FeedbackFunc[tvshow.Episode]) ([]tvshow.Feedback[tvshow.Episode], error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "reconciler", "post episodes", "invalid options", err)
	}
	ctx = services.WithSeason(services.WithShowID(ctx, showID), season)

	items := make([]tvshow.Episode, len(episodes))
	for i, episode := range episodes {
		episode.ShowID = showID
		episode.Season = season
		items[i] = episode
	}
	return post(ctx, r, r.episodeListing(showID, season, opts), items, opts, onFeedback)
}

func (r *Reconciler) episodeListing(showID string, season int, opts tvshow.PostOptions) listing[tvshow.Episode] {
	sel := EpisodeSelectors(opts.Translation)
	return listing[tvshow.Episode]{
		noun: "episodes",
		url: r.nav.SeasonURL(showID, season, navigation.Options{
			Edit:     true,
			Section:  navigation.SeasonEpisodes,
			Language: languageParam(opts.Translation),
		}),
		sel: sel,
		scrape: func(ctx context.Context, page Page) ([]Row[tvshow.Episode], error) {
			return ScrapeEpisodes(ctx, page, sel, showID, season, opts.DateLocale, r.wait)
		},
		addFields: func(e tvshow.Episode) ([]field, error) {
			if err := validateNewEpisode(e); err != nil {
				return nil, err
			}
			return []field{
				{selector: sel.NameInput, value: e.Name},
				{selector: sel.OverviewInput, value: e.Overview},
				{selector: sel.DateInput, value: e.Date, replace: true},
			}, nil
		},
	}
}

// validateNewEpisode checks the fields TMDb needs to create an episode.
func validateNewEpisode(e tvshow.Episode) error {
	var missing []string
	if strings.TrimSpace(e.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(e.Overview) == "" {
		missing = append(missing, "overview")
	}
	if strings.TrimSpace(e.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return services.Wrap(services.ErrValidation, "reconciler", "add episode",
			fmt.Sprintf("%s is missing %s", e.Label(), strings.Join(missing, ", ")), nil)
	}
	if !dates.IsISO(e.Date) {
		return services.Wrap(services.ErrValidation, "reconciler", "add episode",
			fmt.Sprintf("%s date %q is not YYYY-MM-DD", e.Label(), e.Date), nil)
	}
	return nil
}
