package tmdbweb

import (
	"context"
	"fmt"

	"tmdbpost/internal/services"
)

// NotFoundError reports a page element or row that was expected but absent.
type NotFoundError struct {
	// What describes the missing element.
	What string
	// URL is the page address at the time of the failure, when known.
	URL string
}

func (e *NotFoundError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("not found: %s", e.What)
	}
	return fmt.Sprintf("not found: %s (on %s)", e.What, e.URL)
}

func (e *NotFoundError) Unwrap() error { return services.ErrNotFound }

// LoginFailedError carries the message TMDb showed for a rejected login.
type LoginFailedError struct {
	Message string
}

func (e *LoginFailedError) Error() string {
	if e.Message == "" {
		return "login failed"
	}
	return "login failed: " + e.Message
}

func (e *LoginFailedError) Unwrap() error { return services.ErrAuthentication }

// ErrAuthenticationRequired is returned by RequireAuth when no session is active.
var ErrAuthenticationRequired = fmt.Errorf("%w: login required", services.ErrAuthentication)

// notFoundOn builds a NotFoundError annotated with the page's current URL.
func notFoundOn(ctx context.Context, page Page, what string) *NotFoundError {
	current, _ := page.URL(ctx)
	return &NotFoundError{What: what, URL: current}
}
