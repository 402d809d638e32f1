package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/gofrs/flock"

	"tmdbpost/internal/logging"
	"tmdbpost/internal/services"
	"tmdbpost/internal/tmdbweb"
)

// profileLockName is created inside the profile directory while a session
// owns it.
const profileLockName = "tmdbpost.lock"

var (
	// ErrNotLaunched is returned when a session is used before launch or
	// after Close.
	ErrNotLaunched = fmt.Errorf("%w: browser not launched", services.ErrBrowser)
	// ErrNotConnected is returned when attaching to a running browser fails.
	ErrNotConnected = fmt.Errorf("%w: browser not connected", services.ErrBrowser)
)

// Options configures how the browser is started.
type Options struct {
	// Headless hides the browser window.
	Headless bool
	// SlowMotion is slept before every page action.
	SlowMotion time.Duration
	// ExecutablePath overrides the Chromium binary chromedp looks up.
	ExecutablePath string
	// ProfileDir keeps cookies and the TMDb session between runs.
	ProfileDir string
	Logger     *slog.Logger
}

// Session owns one browser connection and the tabs opened through it.
type Session struct {
	mu sync.Mutex

	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	attached      bool

	slow   time.Duration
	lock   *flock.Flock
	logger *slog.Logger
	pages  map[target.ID]*Page
}

var _ tmdbweb.Pages = (*Session)(nil)

// Launch starts a new Chromium process. The browser outlives ctx and is
// stopped by Close.
func Launch(ctx context.Context, opts Options) (*Session, error) {
	s := newSession(opts)

	if opts.ProfileDir != "" {
		lock, err := lockProfile(opts.ProfileDir)
		if err != nil {
			return nil, err
		}
		s.lock = lock
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts, chromedp.Flag("headless", opts.Headless))
	if opts.ExecutablePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecutablePath))
	}
	if opts.ProfileDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.ProfileDir))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	if err := s.start(allocCtx, allocCancel); err != nil {
		s.releaseLock()
		return nil, services.Wrap(services.ErrBrowser, "browser", "launch", "start chromium", err)
	}
	s.logger.Info("browser launched",
		logging.Bool("headless", opts.Headless),
		logging.String("profile_dir", opts.ProfileDir),
		logging.Duration("slow_motion", opts.SlowMotion),
	)
	return s, nil
}

// Attach connects to a browser already running with remote debugging
// enabled. wsURL is its DevTools websocket or HTTP endpoint. Close only
// disconnects.
func Attach(ctx context.Context, wsURL string, opts Options) (*Session, error) {
	if strings.TrimSpace(wsURL) == "" {
		return nil, fmt.Errorf("%w: empty debugger url", ErrNotConnected)
	}
	s := newSession(opts)
	s.attached = true

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(context.WithoutCancel(ctx), wsURL)
	if err := s.start(allocCtx, allocCancel); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotConnected, wsURL, err)
	}
	s.logger.Info("browser attached", logging.String(logging.FieldURL, wsURL))
	return s, nil
}

func newSession(opts Options) *Session {
	return &Session{
		slow:   opts.SlowMotion,
		logger: logging.NewComponentLogger(opts.Logger, "browser"),
		pages:  make(map[target.ID]*Page),
	}
}

// start opens the first tab, which brings up the browser connection. The
// first Run must use the tab context itself: a derived context would bound
// the browser's lifetime.
func (s *Session) start(allocCtx context.Context, allocCancel context.CancelFunc) error {
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return err
	}

	s.allocCancel = allocCancel
	s.browserCtx = browserCtx
	s.browserCancel = browserCancel
	first := chromedp.FromContext(browserCtx).Target.TargetID
	s.pages[first] = &Page{session: s, id: first, ctx: browserCtx}
	return nil
}

// GetOrCreatePage returns a tab showing url. An open tab whose URL starts
// with url (or equals it, when exact) is preferred, then a blank tab, then a
// new one. The tab is navigated to url either way.
func (s *Session) GetOrCreatePage(ctx context.Context, url string, exact bool) (tmdbweb.Page, error) {
	browserCtx, err := s.context()
	if err != nil {
		return nil, err
	}

	infos, err := chromedp.Targets(browserCtx)
	if err != nil {
		return nil, services.Wrap(services.ErrBrowser, "browser", "list tabs", "", err)
	}

	var page *Page
	if id, ok := pickTarget(infos, url, exact); ok {
		page, err = s.pageFor(id)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("reusing tab", logging.String(logging.FieldURL, url))
	} else {
		page, err = s.newPage(ctx)
		if err != nil {
			return nil, err
		}
	}
	if err := page.Navigate(ctx, url); err != nil {
		return nil, err
	}
	return page, nil
}

// NewPage opens a fresh blank tab. Closing it closes the tab.
func (s *Session) NewPage(ctx context.Context) (tmdbweb.ClosablePage, error) {
	page, err := s.newPage(ctx)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (s *Session) newPage(ctx context.Context) (*Page, error) {
	browserCtx, err := s.context()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(browserCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, services.Wrap(services.ErrBrowser, "browser", "open tab", "", err)
	}
	page := &Page{session: s, id: chromedp.FromContext(tabCtx).Target.TargetID, ctx: tabCtx, cancel: cancel}

	s.mu.Lock()
	s.pages[page.id] = page
	s.mu.Unlock()
	return page, nil
}

// pageFor returns the Page for an existing target, attaching to it once.
func (s *Session) pageFor(id target.ID) (*Page, error) {
	s.mu.Lock()
	page, ok := s.pages[id]
	browserCtx := s.browserCtx
	s.mu.Unlock()
	if ok {
		return page, nil
	}
	if browserCtx == nil {
		return nil, ErrNotLaunched
	}

	tabCtx, cancel := chromedp.NewContext(browserCtx, chromedp.WithTargetID(id))
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, services.Wrap(services.ErrBrowser, "browser", "attach tab", string(id), err)
	}
	page = &Page{session: s, id: id, ctx: tabCtx, cancel: cancel}
	s.mu.Lock()
	s.pages[id] = page
	s.mu.Unlock()
	return page, nil
}

func (s *Session) forget(id target.ID) {
	s.mu.Lock()
	delete(s.pages, id)
	s.mu.Unlock()
}

func (s *Session) context() (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browserCtx == nil {
		return nil, ErrNotLaunched
	}
	return s.browserCtx, nil
}

// Close stops a launched browser or disconnects from an attached one, then
// releases the profile lock.
func (s *Session) Close() error {
	s.mu.Lock()
	browserCtx := s.browserCtx
	s.browserCtx = nil
	s.pages = make(map[target.ID]*Page)
	s.mu.Unlock()
	if browserCtx == nil {
		return ErrNotLaunched
	}

	var err error
	if s.attached {
		s.browserCancel()
	} else if cancelErr := chromedp.Cancel(browserCtx); cancelErr != nil && !errors.Is(cancelErr, context.Canceled) {
		err = services.Wrap(services.ErrBrowser, "browser", "close", "", cancelErr)
	}
	s.allocCancel()
	s.releaseLock()
	s.logger.Debug("browser session closed", logging.Bool("attached", s.attached))
	return err
}

func (s *Session) releaseLock() {
	if s.lock == nil {
		return
	}
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release profile lock", logging.Error(err))
	}
	s.lock = nil
}

// lockProfile takes the profile directory's lock without waiting.
func lockProfile(dir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "browser", "profile", "create profile dir", err)
	}
	lock := flock.New(filepath.Join(dir, profileLockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrBrowser, "browser", "profile", "acquire lock", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrBrowser, "browser", "profile",
			fmt.Sprintf("profile %s is in use by another run", dir), nil)
	}
	return lock, nil
}

// pickTarget chooses the tab to reuse for url: the first page tab matching
// it, else the first blank page tab.
func pickTarget(infos []*target.Info, url string, exact bool) (target.ID, bool) {
	var blank target.ID
	for _, info := range infos {
		if info == nil || info.Type != "page" {
			continue
		}
		if exact && info.URL == url || !exact && strings.HasPrefix(info.URL, url) {
			return info.TargetID, true
		}
		if blank == "" && info.URL == "about:blank" {
			blank = info.TargetID
		}
	}
	return blank, blank != ""
}
