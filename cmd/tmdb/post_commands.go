package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tmdbpost/internal/config"
	"tmdbpost/internal/dates"
	"tmdbpost/internal/services"
	"tmdbpost/internal/tmdbweb"
	"tmdbpost/internal/tvshow"
)

type postFlags struct {
	session     sessionFlags
	allowUpdate bool
	// allowUpdateSet records an explicit --allow-update, which beats the
	// config either way.
	allowUpdateSet bool
	translation    string
	dateLocale     string
	maxParallel    int
	jsonOut        bool
}

func newPostCommand(ctx *commandContext) *cobra.Command {
	var flags postFlags

	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Post data to a TV show on TMDb",
	}

	pf := postCmd.PersistentFlags()
	addSessionFlags(pf, &flags.session)
	pf.BoolVar(&flags.allowUpdate, "allow-update", false, "Update existing entries instead of ignoring them")
	pf.StringVar(&flags.translation, "translation", "", "Translation to edit, as a language tag (default: tmdb.language)")
	pf.StringVar(&flags.dateLocale, "date-locale", "", "Date order TMDb shows in listings: MDY or DMY (default: posting.date_locale)")
	pf.IntVar(&flags.maxParallel, "max-parallel", 0, "Post up to N records at once, one tab each (default: posting.max_parallel)")
	pf.BoolVar(&flags.jsonOut, "json", false, "Print feedback as JSON")

	postCmd.AddCommand(newPostSeasonsCommand(ctx, &flags))
	postCmd.AddCommand(newPostEpisodesCommand(ctx, &flags))
	return postCmd
}

func newPostSeasonsCommand(ctx *commandContext, flags *postFlags) *cobra.Command {
	var file, name, overview string
	var number int

	cmd := &cobra.Command{
		Use:   "seasons <show-id>",
		Short: "Add or update seasons of a TV show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			showID, err := parseShowID(args[0])
			if err != nil {
				return err
			}

			var seasons []tvshow.Season
			switch {
			case file != "" && cmd.Flags().Changed("season"):
				return usageError("post seasons", "use either --file or --season, not both")
			case file != "":
				if seasons, err = readSeasons(file); err != nil {
					return err
				}
			case cmd.Flags().Changed("season"):
				seasons = []tvshow.Season{{Number: number, Name: name, Overview: overview}}
				if err := checkSeasons(seasons); err != nil {
					return usageError("post seasons", err.Error())
				}
			default:
				return usageError("post seasons", "pass --file or --season")
			}

			return runPost(ctx, cmd, flags, func(run context.Context, rec *tmdbweb.Reconciler, opts tvshow.PostOptions, onFeedback tvshow.FeedbackFunc[tvshow.Season]) ([]tvshow.Feedback[tvshow.Season], error) {
				return rec.PostSeasons(run, showID, seasons, opts, onFeedback)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or TOML file listing seasons")
	cmd.Flags().IntVar(&number, "season", 0, "Number of a single season to post")
	cmd.Flags().StringVar(&name, "name", "", "Name of the single season (default: \"Season N\")")
	cmd.Flags().StringVar(&overview, "overview", "", "Overview of the single season")
	return cmd
}

func newPostEpisodesCommand(ctx *commandContext, flags *postFlags) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "episodes <show-id> <season>",
		Short: "Add or update episodes of an existing season",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			showID, err := parseShowID(args[0])
			if err != nil {
				return err
			}
			season, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil || season < 0 {
				return usageError("post episodes", fmt.Sprintf("season %q is not a season number", args[1]))
			}
			if file == "" {
				return usageError("post episodes", "pass --file")
			}
			episodes, err := readEpisodes(file)
			if err != nil {
				return err
			}

			return runPost(ctx, cmd, flags, func(run context.Context, rec *tmdbweb.Reconciler, opts tvshow.PostOptions, onFeedback tvshow.FeedbackFunc[tvshow.Episode]) ([]tvshow.Feedback[tvshow.Episode], error) {
				return rec.PostEpisodesInSeason(run, showID, season, episodes, opts, onFeedback)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or TOML file listing episodes")
	return cmd
}

// runPost opens the browser, makes sure TMDb is logged in, posts, and
// renders the feedback. Records that end in error fail the command after
// everything has been reported.
func runPost[T tvshow.Record](c *commandContext, cmd *cobra.Command, flags *postFlags, post func(context.Context, *tmdbweb.Reconciler, tvshow.PostOptions, tvshow.FeedbackFunc[T]) ([]tvshow.Feedback[T], error)) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	flags.allowUpdateSet = cmd.Flags().Changed("allow-update")
	opts, err := postOptions(cfg, *flags)
	if err != nil {
		return err
	}
	logger, err := c.commandLogger(cmd)
	if err != nil {
		return err
	}
	ctx := c.runContext(cmd)

	session, err := openBrowserSession(ctx, cfg, flags.session, logger)
	if err != nil {
		return err
	}
	defer closeSession(session, logger)

	if _, err := ensureLoggedIn(ctx, session, cfg, flags.session, newPrompter(cmd.ErrOrStderr()), logger); err != nil {
		return err
	}

	rec := tmdbweb.NewReconciler(session,
		tmdbweb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdbweb.WithWaitTimeout(cfg.WaitTimeout()),
		tmdbweb.WithLogger(logger),
	)

	out := cmd.OutOrStdout()
	var onFeedback tvshow.FeedbackFunc[T]
	if !flags.jsonOut {
		colorize := shouldColorize(out)
		onFeedback = func(fb tvshow.Feedback[T]) {
			fmt.Fprintln(out, renderFeedbackLine(fb, colorize))
		}
	}

	feedbacks, postErr := post(ctx, rec, opts, onFeedback)
	if flags.jsonOut {
		if err := writeFeedbackJSON(out, feedbacks); err != nil {
			return err
		}
	} else if len(feedbacks) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderFeedbackTable(feedbacks))
		fmt.Fprintln(out, summarizeFeedback(feedbacks))
	}
	if postErr != nil {
		return postErr
	}
	return failedRecordsError(feedbacks)
}

// postOptions merges flags over the configured posting defaults.
func postOptions(cfg *config.Config, flags postFlags) (tvshow.PostOptions, error) {
	localeValue := cfg.Posting.DateLocale
	if flags.dateLocale != "" {
		localeValue = flags.dateLocale
	}
	locale, err := dates.ParseLocale(localeValue)
	if err != nil {
		return tvshow.PostOptions{}, usageError("post", err.Error())
	}

	opts := tvshow.PostOptions{
		Translation: cfg.TMDB.Language,
		DateLocale:  locale,
		AllowUpdate: cfg.Posting.AllowUpdate,
		MaxParallel: cfg.Posting.MaxParallel,
	}
	if flags.allowUpdateSet {
		opts.AllowUpdate = flags.allowUpdate
	}
	if flags.translation != "" {
		opts.Translation = flags.translation
	}
	if flags.maxParallel > 0 {
		opts.MaxParallel = flags.maxParallel
	}
	normalized, err := opts.Normalize()
	if err != nil {
		return tvshow.PostOptions{}, usageError("post", err.Error())
	}
	return normalized, nil
}

func parseShowID(value string) (string, error) {
	showID := strings.TrimSpace(value)
	if showID == "" || strings.ContainsAny(showID, "/?# ") {
		return "", usageError("post", fmt.Sprintf("show id %q is not a TMDb show id", value))
	}
	return showID, nil
}

func failedRecordsError[T tvshow.Record](feedbacks []tvshow.Feedback[T]) error {
	failed := 0
	for _, fb := range feedbacks {
		if fb.Status == tvshow.StatusError {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d records failed", failed, len(feedbacks))
}

func usageError(operation, message string) error {
	return services.Wrap(services.ErrValidation, "cli", operation, message, nil)
}
