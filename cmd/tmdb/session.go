package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"tmdbpost/internal/config"
	"tmdbpost/internal/credentials"
	"tmdbpost/internal/logging"
	"tmdbpost/internal/navigation"
	"tmdbpost/internal/tmdbweb"
)

// sessionFlags are the browser and account flags shared by commands that
// talk to TMDb.
type sessionFlags struct {
	user  string
	pass  string
	head  bool
	slow  bool
	wsURL string
}

func addSessionFlags(flags *pflag.FlagSet, target *sessionFlags) {
	// -h is taken by --head, so help gets a long flag only.
	flags.Bool("help", false, "Show help for this command")
	flags.StringVarP(&target.user, "user", "u", "", "TMDb username")
	flags.StringVarP(&target.pass, "pass", "p", "", "TMDb password")
	flags.BoolVarP(&target.head, "head", "h", false, "Show the browser window")
	flags.BoolVarP(&target.slow, "slow", "s", false, "Slow down browser actions")
	flags.StringVar(&target.wsURL, "ws-url", "", "Attach to a running browser at this DevTools endpoint")
}

// newPrompter returns a terminal prompter for missing credentials, or nil
// when stdin is not interactive.
var newPrompter = func(out io.Writer) credentials.Prompter {
	if p := credentials.NewTerminalPrompter(os.Stdin, out); p != nil {
		return p
	}
	return nil
}

// ensureLoggedIn opens a TMDb tab and logs in unless the profile already
// carries a session. It reports whether a login was performed.
func ensureLoggedIn(ctx context.Context, pages tmdbweb.Pages, cfg *config.Config, flags sessionFlags, prompter credentials.Prompter, logger *slog.Logger) (bool, error) {
	nav := navigation.New(cfg.TMDB.BaseURL)
	page, err := pages.GetOrCreatePage(ctx, nav.HomeURL(), false)
	if err != nil {
		return false, err
	}
	loggedIn, err := tmdbweb.IsLoggedIn(ctx, page)
	if err != nil {
		return false, err
	}
	if loggedIn {
		logger.Debug("reusing existing TMDb session")
		return false, nil
	}

	creds, err := credentials.Resolve(
		credentials.Credentials{Username: flags.user, Password: flags.pass},
		credentials.Credentials{Username: cfg.Credentials.Username, Password: cfg.Credentials.Password},
		prompter,
	)
	if err != nil {
		return false, err
	}
	if err := tmdbweb.Login(ctx, page, nav, creds, cfg.WaitTimeout()); err != nil {
		return false, err
	}
	if err := tmdbweb.RequireAuth(ctx, page); err != nil {
		return false, err
	}
	logger.Info("logged in", logging.String("user", creds.Username))
	return true, nil
}

// closeSession releases the browser, logging rather than returning errors so
// the command's own result wins.
func closeSession(session browserSession, logger *slog.Logger) {
	if err := session.Close(); err != nil {
		logger.Warn("failed to close browser", logging.Error(err))
	}
}
