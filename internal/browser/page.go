package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"tmdbpost/internal/services"
	"tmdbpost/internal/tmdbweb"
)

const hiddenPollInterval = 100 * time.Millisecond

// Page is one browser tab.
type Page struct {
	session *Session
	id      target.ID
	ctx     context.Context
	// cancel is nil for the session's first tab, which lives as long as the
	// session.
	cancel context.CancelFunc
}

var _ tmdbweb.ClosablePage = (*Page)(nil)

// run executes actions on the tab, bounded by both the tab and ctx. act
// marks user-visible actions, which are delayed by the slow motion setting.
func (p *Page) run(ctx context.Context, act bool, actions ...chromedp.Action) error {
	if act {
		if err := p.pause(ctx); err != nil {
			return err
		}
	}
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (p *Page) pause(ctx context.Context) error {
	if p.session.slow <= 0 {
		return nil
	}
	timer := time.NewTimer(p.session.slow)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Page) Navigate(ctx context.Context, url string) error {
	if err := p.run(ctx, true, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return services.Wrap(services.ErrBrowser, "browser", "navigate", url, err)
	}
	return nil
}

func (p *Page) URL(ctx context.Context) (string, error) {
	var url string
	if err := p.run(ctx, false, chromedp.Location(&url)); err != nil {
		return "", err
	}
	return url, nil
}

func (p *Page) Exists(ctx context.Context, selector string) (bool, error) {
	var present bool
	expr := fmt.Sprintf("document.querySelector(%s) !== null", jsString(selector))
	if err := p.run(ctx, false, chromedp.Evaluate(expr, &present)); err != nil {
		return false, err
	}
	return present, nil
}

func (p *Page) Click(ctx context.Context, selector string) error {
	return p.run(ctx, true, chromedp.Click(selector, chromedp.ByQuery))
}

func (p *Page) Type(ctx context.Context, selector, text string) error {
	return p.run(ctx, true, chromedp.SendKeys(selector, text, chromedp.ByQuery))
}

func (p *Page) SetValue(ctx context.Context, selector, value string) error {
	return p.run(ctx, true, chromedp.SetValue(selector, value, chromedp.ByQuery))
}

// Press sends one named key to the focused element.
func (p *Page) Press(ctx context.Context, key string, shift bool) error {
	code, err := keyCode(key)
	if err != nil {
		return err
	}
	var opts []chromedp.KeyOption
	if shift {
		opts = append(opts, chromedp.KeyModifiers(input.ModifierShift))
	}
	return p.run(ctx, true, chromedp.KeyEvent(code, opts...))
}

// TypeKeys types text into whatever element has focus.
func (p *Page) TypeKeys(ctx context.Context, text string) error {
	return p.run(ctx, true, chromedp.KeyEvent(text))
}

func (p *Page) WaitVisible(ctx context.Context, selector string) error {
	return p.run(ctx, false, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// WaitHidden waits until selector matches nothing or an element that is not
// rendered.
func (p *Page) WaitHidden(ctx context.Context, selector string) error {
	expr := fmt.Sprintf(`(() => {
	const el = document.querySelector(%s);
	return el === null || el.offsetParent === null || getComputedStyle(el).visibility === "hidden";
})()`, jsString(selector))
	var hidden bool
	return p.run(ctx, false, chromedp.Poll(expr, &hidden, chromedp.WithPollingInterval(hiddenPollInterval)))
}

func (p *Page) OuterHTML(ctx context.Context, selector string) (string, error) {
	var html string
	if err := p.run(ctx, false, chromedp.OuterHTML(selector, &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

func (p *Page) Text(ctx context.Context, selector string) (string, error) {
	var text string
	if err := p.run(ctx, false, chromedp.Text(selector, &text, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return text, nil
}

// Close closes the tab. The session's first tab is only closed with the
// session.
func (p *Page) Close() error {
	p.session.forget(p.id)
	if p.cancel == nil {
		return nil
	}
	p.cancel()
	return nil
}

func keyCode(key string) (string, error) {
	switch key {
	case tmdbweb.KeyTab:
		return kb.Tab, nil
	case tmdbweb.KeyDelete:
		return kb.Delete, nil
	case tmdbweb.KeyEnter:
		return kb.Enter, nil
	default:
		return "", fmt.Errorf("unsupported key %q", key)
	}
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted)
}
