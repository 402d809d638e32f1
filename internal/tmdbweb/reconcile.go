package tmdbweb

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"tmdbpost/internal/logging"
	"tmdbpost/internal/navigation"
	"tmdbpost/internal/tvshow"
)

// DefaultWaitTimeout bounds every wait for a page element.
const DefaultWaitTimeout = 30 * time.Second

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithBaseURL points the reconciler at another TMDb instance.
func WithBaseURL(baseURL string) Option {
	return func(r *Reconciler) {
		r.nav = navigation.New(baseURL)
	}
}

// WithWaitTimeout bounds element waits. Non-positive values are ignored.
func WithWaitTimeout(d time.Duration) Option {
	return func(r *Reconciler) {
		if d > 0 {
			r.wait = d
		}
	}
}

// WithLogger sets the logger used for reconcile decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logging.NewComponentLogger(logger, "reconciler")
	}
}

// Reconciler posts seasons and episodes through the TMDb edit pages.
type Reconciler struct {
	pages  Pages
	nav    navigation.Builder
	wait   time.Duration
	logger *slog.Logger
}

// NewReconciler returns a Reconciler that acquires tabs from pages.
func NewReconciler(pages Pages, opts ...Option) *Reconciler {
	r := &Reconciler{
		pages:  pages,
		nav:    navigation.New(""),
		wait:   DefaultWaitTimeout,
		logger: logging.NewComponentLogger(nil, "reconciler"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// listing describes one kind of edit grid: where it lives, how to read it,
// and what the add form needs for a record.
type listing[T tvshow.Record] struct {
	noun   string
	url    string
	sel    FormSelectors
	scrape func(ctx context.Context, page Page) ([]Row[T], error)
	// addFields lists the inputs of the add form other than the number, or
	// an error when item cannot be added.
	addFields func(item T) ([]field, error)
}

func post[T tvshow.Record](ctx context.Context, r *Reconciler, l listing[T], items []T, opts tvshow.PostOptions, onFeedback tvshow.FeedbackFunc[T]) ([]tvshow.Feedback[T], error) {
	if len(items) == 0 {
		return nil, nil
	}
	if opts.MaxParallel > 1 && len(items) > 1 {
		return postParallel(ctx, r, l, items, opts, onFeedback)
	}

	page, err := r.pages.GetOrCreatePage(ctx, l.url, true)
	if err != nil {
		return nil, fmt.Errorf("open %s page: %w", l.noun, err)
	}
	if err := checkLanding(ctx, page, l.url); err != nil {
		return nil, err
	}

	feedbacks := make([]tvshow.Feedback[T], 0, len(items))
	for _, item := range items {
		fb, err := reconcile(ctx, r, page, l, item, opts)
		if err != nil {
			return feedbacks, err
		}
		feedbacks = append(feedbacks, fb)
		if onFeedback != nil {
			onFeedback(fb)
		}
	}
	return feedbacks, nil
}

// postParallel reconciles items concurrently, each on its own tab, and
// delivers feedback in item order.
func postParallel[T tvshow.Record](ctx context.Context, r *Reconciler, l listing[T], items []T, opts tvshow.PostOptions, onFeedback tvshow.FeedbackFunc[T]) ([]tvshow.Feedback[T], error) {
	results := make([]tvshow.Feedback[T], len(items))
	emitter := newOrderedEmitter(onFeedback)

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(opts.MaxParallel)
	for i, item := range items {
		p.Go(func(ctx context.Context) error {
			fb, err := reconcileOnNewPage(ctx, r, l, item, opts)
			if err != nil {
				return err
			}
			results[i] = fb
			emitter.deliver(i, fb)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return results[:emitter.emitted()], err
	}
	return results, nil
}

func reconcileOnNewPage[T tvshow.Record](ctx context.Context, r *Reconciler, l listing[T], item T, opts tvshow.PostOptions) (tvshow.Feedback[T], error) {
	page, err := r.pages.NewPage(ctx)
	if err != nil {
		return tvshow.Feedback[T]{}, fmt.Errorf("open tab: %w", err)
	}
	defer page.Close()

	if err := page.Navigate(ctx, l.url); err != nil {
		return tvshow.Feedback[T]{}, fmt.Errorf("open %s page: %w", l.noun, err)
	}
	if err := checkLanding(ctx, page, l.url); err != nil {
		return tvshow.Feedback[T]{}, err
	}
	return reconcile(ctx, r, page, l, item, opts)
}

// checkLanding fails when the browser did not end up on want, which is what
// TMDb does for unknown shows, missing seasons, and logged-out sessions.
func checkLanding(ctx context.Context, page Page, want string) error {
	current, err := page.URL(ctx)
	if err != nil {
		return fmt.Errorf("read page url: %w", err)
	}
	if current != want {
		return &NotFoundError{What: want, URL: current}
	}
	return nil
}

// reconcile runs the add/update/ignore decision for one item. The returned
// error is reserved for failures that end the whole run.
func reconcile[T tvshow.Record](ctx context.Context, r *Reconciler, page Page, l listing[T], item T, opts tvshow.PostOptions) (tvshow.Feedback[T], error) {
	logger := logging.WithContext(ctx, r.logger).With(logging.String(logging.FieldRecord, item.Label()))

	rows, err := l.scrape(ctx, page)
	if err != nil {
		return tvshow.Feedback[T]{}, err
	}

	var fb tvshow.Feedback[T]
	existing, found := Find(rows, item, false)
	switch {
	case !found:
		logger.Debug("record decision", logging.Args(logging.DecisionAttrs("post", "add", "number not listed")...)...)
		fb = add(ctx, r, page, l, item)
	case !opts.AllowUpdate:
		logger.Debug("record decision", logging.Args(logging.DecisionAttrs("post", "ignore", "number listed and updates disabled")...)...)
		fb = tvshow.NewFeedback(item, tvshow.StatusIgnored)
	default:
		logger.Debug("record decision", logging.Args(logging.DecisionAttrs("post", "update", "number listed")...)...)
		fb = update(ctx, r, page, l, existing, item)
	}

	if err := ctx.Err(); err != nil {
		return tvshow.Feedback[T]{}, err
	}

	if fb.Status == tvshow.StatusError {
		logger.Warn("record not posted",
			logging.String(logging.FieldStatus, string(fb.Status)),
			logging.String(logging.FieldEventType, "post_failed"),
			logging.Error(fb.Err),
		)
	} else {
		logger.Info("record posted", logging.String(logging.FieldStatus, string(fb.Status)))
	}
	return fb, nil
}

func add[T tvshow.Record](ctx context.Context, r *Reconciler, page Page, l listing[T], item T) tvshow.Feedback[T] {
	fb := tvshow.NewFeedback(item, tvshow.StatusUnchanged)

	fields, err := l.addFields(item)
	if err != nil {
		return fb.Failed(err)
	}

	f := form{page: page, sel: l.sel, wait: r.wait}
	if err := f.open(ctx, l.sel.AddButton, fmt.Sprintf("%q button", "Add New "+singular(l.noun))); err != nil {
		return fb.Failed(err)
	}
	if err := f.fill(ctx, fields); err != nil {
		return fb.Failed(err)
	}
	// Last, because typing into the number input auto-tabs to the name input.
	if err := f.setNumber(ctx, item.Key()); err != nil {
		return fb.Failed(err)
	}
	if err := f.submit(ctx); err != nil {
		return fb.Failed(err)
	}

	confirmed, err := confirm(ctx, page, l, item, "added")
	if err != nil {
		return fb.Failed(err)
	}
	return fb.Added(confirmed)
}

func update[T tvshow.Record](ctx context.Context, r *Reconciler, page Page, l listing[T], existing Row[T], item T) tvshow.Feedback[T] {
	fb := tvshow.NewFeedback(item, tvshow.StatusUnchanged)

	fields := changedFields(l.sel, existing.Record.Fields(), item.Fields())
	if len(fields) == 0 {
		fb.Item = existing.Record
		return fb
	}

	if existing.Edit == "" {
		return fb.Failed(notFoundOn(ctx, page, fmt.Sprintf("edit button for %s row %s", singular(l.noun), item.Label())))
	}
	f := form{page: page, sel: l.sel, wait: r.wait}
	if err := f.open(ctx, string(existing.Edit), "edit button for "+item.Label()); err != nil {
		return fb.Failed(err)
	}
	if err := f.fill(ctx, fields); err != nil {
		return fb.Failed(err)
	}
	fb.Status = tvshow.StatusUpdated
	if err := f.submit(ctx); err != nil {
		return fb.Failed(err)
	}

	confirmed, err := confirm(ctx, page, l, item, "updated")
	if err != nil {
		return fb.Failed(err)
	}
	fb.Item = confirmed
	return fb
}

// changedFields lists the inputs whose wanted value is non-empty and differs
// from the listed one after whitespace cleanup. The wanted value is typed
// as given. The number is never a candidate.
func changedFields(sel FormSelectors, current, want tvshow.Fields) []field {
	candidates := []struct {
		selector   string
		have, want string
	}{
		{sel.NameInput, current.Name, want.Name},
		{sel.OverviewInput, current.Overview, want.Overview},
		{sel.DateInput, current.Date, want.Date},
	}
	var fields []field
	for _, c := range candidates {
		if c.selector == "" || matches(c.have, c.want) {
			continue
		}
		fields = append(fields, field{selector: c.selector, value: c.want, replace: true})
	}
	return fields
}

// confirm re-reads the grid and returns the listed record matching every
// non-empty field of item.
func confirm[T tvshow.Record](ctx context.Context, page Page, l listing[T], item T, verb string) (T, error) {
	var zero T
	rows, err := l.scrape(ctx, page)
	if err != nil {
		return zero, err
	}
	row, ok := Find(rows, item, true)
	if !ok {
		return zero, notFoundOn(ctx, page, fmt.Sprintf("%s %s row %s", verb, singular(l.noun), item.Label()))
	}
	return row.Record, nil
}

func singular(noun string) string {
	switch noun {
	case "seasons":
		return "Season"
	case "episodes":
		return "Episode"
	default:
		return noun
	}
}

// orderedEmitter forwards feedback to fn in index order regardless of the
// order in which items finish.
type orderedEmitter[T tvshow.Record] struct {
	mu      sync.Mutex
	fn      tvshow.FeedbackFunc[T]
	next    int
	pending map[int]tvshow.Feedback[T]
}

func newOrderedEmitter[T tvshow.Record](fn tvshow.FeedbackFunc[T]) *orderedEmitter[T] {
	return &orderedEmitter[T]{fn: fn, pending: make(map[int]tvshow.Feedback[T])}
}

func (e *orderedEmitter[T]) deliver(index int, fb tvshow.Feedback[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending[index] = fb
	for {
		ready, ok := e.pending[e.next]
		if !ok {
			return
		}
		delete(e.pending, e.next)
		if e.fn != nil {
			e.fn(ready)
		}
		e.next++
	}
}

// emitted reports how many leading items have been delivered.
func (e *orderedEmitter[T]) emitted() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.next
}
