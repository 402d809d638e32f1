package tmdbweb

import "context"

// Key names accepted by Page.Press.
const (
	KeyTab    = "Tab"
	KeyDelete = "Delete"
	KeyEnter  = "Enter"
)

// Page is the set of browser capabilities the reconciler relies on. Selectors
// are CSS selectors; waits are bounded by the context deadline.
type Page interface {
	Navigate(ctx context.Context, url string) error
	URL(ctx context.Context) (string, error)
	Exists(ctx context.Context, selector string) (bool, error)
	Click(ctx context.Context, selector string) error
	// Type focuses selector and types text after any existing value.
	Type(ctx context.Context, selector, text string) error
	// SetValue replaces the value of an input without key events.
	SetValue(ctx context.Context, selector, value string) error
	// Press sends a single named key to the focused element.
	Press(ctx context.Context, key string, shift bool) error
	// TypeKeys types text into whatever element currently has focus.
	TypeKeys(ctx context.Context, text string) error
	WaitVisible(ctx context.Context, selector string) error
	// WaitHidden returns once selector is absent or not rendered.
	WaitHidden(ctx context.Context, selector string) error
	OuterHTML(ctx context.Context, selector string) (string, error)
	Text(ctx context.Context, selector string) (string, error)
}

// ClosablePage is a tab owned by its caller.
type ClosablePage interface {
	Page
	Close() error
}

// Pages hands out browser tabs.
type Pages interface {
	// GetOrCreatePage returns a tab showing url, reusing an open tab whose
	// address starts with url (or equals it when exact is set).
	GetOrCreatePage(ctx context.Context, url string, exact bool) (Page, error)
	// NewPage opens a fresh tab.
	NewPage(ctx context.Context) (ClosablePage, error)
}
