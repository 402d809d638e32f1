package tmdbweb

import (
	"context"
	"fmt"
	"time"

	"tmdbpost/internal/credentials"
	"tmdbpost/internal/navigation"
	"tmdbpost/internal/textutil"
)

const (
	loginUsernameInput = "#username"
	loginPasswordInput = "#password"
	loggedInMarker     = "header ul > li.user"
	loginPollInterval  = 250 * time.Millisecond
)

// Containers TMDb renders a login error into, most common first. The second
// one is the "too many attempts" page.
var loginErrorContainers = []string{
	".error_status.card content",
	"#main .error_wrapper h2",
}

// Login submits creds on the TMDb login page and waits until the session is
// established or TMDb reports an error.
func Login(ctx context.Context, page Page, nav navigation.Builder, creds credentials.Credentials, wait time.Duration) error {
	if !creds.Complete() {
		return &LoginFailedError{Message: "username and password are required"}
	}
	if wait <= 0 {
		wait = DefaultWaitTimeout
	}

	if err := page.Navigate(ctx, nav.LoginURL()); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	err := page.WaitVisible(waitCtx, loginUsernameInput)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return notFoundOn(ctx, page, "login form")
	}

	if err := page.Type(ctx, loginUsernameInput, creds.Username); err != nil {
		return fmt.Errorf("type username: %w", err)
	}
	if err := page.Type(ctx, loginPasswordInput, creds.Password); err != nil {
		return fmt.Errorf("type password: %w", err)
	}
	if err := page.Press(ctx, KeyEnter, false); err != nil {
		return fmt.Errorf("submit login: %w", err)
	}
	return awaitLogin(ctx, page, wait)
}

// awaitLogin polls until the user menu or a login error shows up. Lookup
// errors are retried because the page is navigating while the form posts.
func awaitLogin(ctx context.Context, page Page, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	ticker := time.NewTicker(loginPollInterval)
	defer ticker.Stop()

	for {
		if loggedIn, err := IsLoggedIn(ctx, page); err == nil && loggedIn {
			return nil
		}
		if message, ok := loginError(ctx, page); ok {
			return &LoginFailedError{Message: message}
		}
		if time.Now().After(deadline) {
			return &LoginFailedError{Message: fmt.Sprintf("no session after %s", wait)}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func loginError(ctx context.Context, page Page) (string, bool) {
	for _, sel := range loginErrorContainers {
		present, err := page.Exists(ctx, sel)
		if err != nil || !present {
			continue
		}
		text, err := page.Text(ctx, sel)
		if err != nil {
			continue
		}
		return textutil.CleanText(text), true
	}
	return "", false
}

// IsLoggedIn reports whether page, already on a TMDb page, shows the signed-in
// user menu.
func IsLoggedIn(ctx context.Context, page Page) (bool, error) {
	present, err := page.Exists(ctx, loggedInMarker)
	if err != nil {
		return false, fmt.Errorf("look up user menu: %w", err)
	}
	return present, nil
}

// RequireAuth returns ErrAuthenticationRequired unless page shows a signed-in
// session.
func RequireAuth(ctx context.Context, page Page) error {
	loggedIn, err := IsLoggedIn(ctx, page)
	if err != nil {
		return err
	}
	if !loggedIn {
		return ErrAuthenticationRequired
	}
	return nil
}
