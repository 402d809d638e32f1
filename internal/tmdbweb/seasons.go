package tmdbweb

import (
	"context"

	"tmdbpost/internal/navigation"
	"tmdbpost/internal/services"
	"tmdbpost/internal/tvshow"
)

// PostSeason adds or updates a single season of a show.
func (r *Reconciler) PostSeason(ctx context.Context, showID string, season tvshow.Season, opts tvshow.PostOptions) (tvshow.Feedback[tvshow.Season], error) {
	feedbacks, err := r.PostSeasons(ctx, showID, []tvshow.Season{season}, opts, nil)
	if err != nil {
		return tvshow.Feedback[tvshow.Season]{}, err
	}
	return feedbacks[0], nil
}

// PostSeasons adds, updates, or ignores each season on the show's seasons
// edit page. onFeedback, when set, is called in order as each season is
// settled. The returned slice holds one feedback per season in input order;
// when a session-level error aborts the run it holds the feedback issued so
// far.
func (r *Reconciler) PostSeasons(ctx context.Context, showID string, seasons []tvshow.Season, opts tvshow.PostOptions, onFeedback tvshow.FeedbackFunc[tvshow.Season]) ([]tvshow.Feedback[tvshow.Season], error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "reconciler", "post seasons", "invalid options", err)
	}
	ctx = services.WithShowID(ctx, showID)

	items := make([]tvshow.Season, len(seasons))
	for i, season := range seasons {
		season.ShowID = showID
		items[i] = season
	}
	return post(ctx, r, r.seasonListing(showID, opts), items, opts, onFeedback)
}

func (r *Reconciler) seasonListing(showID string, opts tvshow.PostOptions) listing[tvshow.Season] {
	sel := SeasonSelectors(opts.Translation)
	return listing[tvshow.Season]{
		noun: "seasons",
		url: r.nav.ShowURL(showID, navigation.Options{
			Edit:     true,
			Section:  navigation.ShowSeasons,
			Language: languageParam(opts.Translation),
		}),
		sel: sel,
		scrape: func(ctx context.Context, page Page) ([]Row[tvshow.Season], error) {
			return ScrapeSeasons(ctx, page, sel, showID, r.wait)
		},
		addFields: func(s tvshow.Season) ([]field, error) {
			name := s.Name
			if name == "" {
				name = s.DefaultName()
			}
			return []field{
				{selector: sel.OverviewInput, value: s.Overview},
				{selector: sel.NameInput, value: name},
			}, nil
		},
	}
}

// languageParam returns the language query value for edit URLs. The default
// translation is what TMDb opens without one, so it is left out.
func languageParam(translation string) string {
	if translation == tvshow.DefaultTranslation {
		return ""
	}
	return translation
}
