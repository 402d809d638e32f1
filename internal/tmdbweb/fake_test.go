package tmdbweb_test

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"tmdbpost/internal/dates"
	"tmdbpost/internal/tmdbweb"
)

const fakeBaseURL = "https://tmdb.test"

// fakeRow is a listing entry. date is ISO and rendered in the site's locale.
type fakeRow struct {
	number   int
	name     string
	overview string
	date     string
	noEdit   bool
}

// fakeSite is an in-memory TMDb edit grid shared by every tab of a fakeBrowser.
type fakeSite struct {
	mu sync.Mutex

	sel     tmdbweb.FormSelectors
	seasons bool
	locale  dates.Locale
	rows    []fakeRow

	// landing overrides where every navigation ends up.
	landing     string
	noTable     bool
	noAddButton bool
	dropSaves   bool

	loggedIn      bool
	password      string
	typedPassword string
	loginError    string

	clicks int
	saves  int
}

func newEpisodeSite(rows ...fakeRow) *fakeSite {
	return &fakeSite{sel: tmdbweb.EpisodeSelectors("en-US"), locale: dates.MDY, rows: rows}
}

func newSeasonSite(rows ...fakeRow) *fakeSite {
	return &fakeSite{sel: tmdbweb.SeasonSelectors("en-US"), seasons: true, locale: dates.MDY, rows: rows}
}

func (s *fakeSite) snapshot() []fakeRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]fakeRow(nil), s.rows...)
}

func (s *fakeSite) counts() (clicks, saves int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clicks, s.saves
}

func (s *fakeSite) displayDate(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	year := parts[0]
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])
	if s.locale == dates.DMY {
		return fmt.Sprintf("%d/%d/%s", day, month, year)
	}
	return fmt.Sprintf("%d/%d/%s", month, day, year)
}

func (s *fakeSite) tableHTML() string {
	var b strings.Builder
	b.WriteString(`<table role="grid"><tbody>`)
	if len(s.rows) == 0 {
		b.WriteString(`<tr class="k-no-data"><td colspan="6">No records available.</td></tr>`)
	}
	for _, row := range s.rows {
		edit := `<td><a class="k-button k-grid-edit" href="#">Edit</a></td>`
		if row.noEdit {
			edit = "<td></td>"
		}
		b.WriteString("<tr>")
		fmt.Fprintf(&b, "<td>%d</td><td> %s </td><td>%s</td>", row.number, html.EscapeString(row.name), html.EscapeString(row.overview))
		if s.seasons {
			b.WriteString("<td>10</td><td></td>")
		} else {
			fmt.Fprintf(&b, "<td>%s</td>", s.displayDate(row.date))
		}
		b.WriteString(edit)
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

var editSelectorPattern = regexp.MustCompile(`:nth-child\((\d+)\) > td:nth-child\((\d+)\) > a$`)

// fakePage is one tab. Each tab has its own modal state.
type fakePage struct {
	site   *fakeSite
	url    string
	closed bool

	modalOpen bool
	editing   int // index into rows, -1 when adding
	draft     fakeRow
	numberBuf string
	focus     string
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	if p.site.landing != "" {
		p.url = p.site.landing
	} else {
		p.url = url
	}
	p.modalOpen = false
	return nil
}

func (p *fakePage) URL(context.Context) (string, error) {
	return p.url, nil
}

func (p *fakePage) Exists(_ context.Context, sel string) (bool, error) {
	s := p.site
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case sel == s.sel.AddButton:
		return !s.noAddButton, nil
	case sel == "header ul > li.user":
		return s.loggedIn, nil
	case sel == ".error_status.card content":
		return s.loginError != "", nil
	case editSelectorPattern.MatchString(sel):
		idx, ok := p.rowIndex(sel)
		return ok && !s.rows[idx].noEdit, nil
	default:
		return p.modalOpen, nil
	}
}

func (p *fakePage) rowIndex(sel string) (int, bool) {
	m := editSelectorPattern.FindStringSubmatch(sel)
	if m == nil {
		return 0, false
	}
	n, _ := strconv.Atoi(m[1])
	if n < 1 || n > len(p.site.rows) {
		return 0, false
	}
	return n - 1, true
}

func (p *fakePage) Click(_ context.Context, sel string) error {
	s := p.site
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicks++
	switch {
	case sel == s.sel.AddButton:
		if s.noAddButton {
			return fmt.Errorf("no node for %s", sel)
		}
		p.openModal(-1, fakeRow{}, strconv.Itoa(len(s.rows)+1))
	case editSelectorPattern.MatchString(sel):
		idx, ok := p.rowIndex(sel)
		if !ok {
			return fmt.Errorf("no node for %s", sel)
		}
		row := s.rows[idx]
		p.openModal(idx, row, strconv.Itoa(row.number))
	case sel == s.sel.SaveButton:
		p.save()
	default:
		p.focus = sel
	}
	return nil
}

func (p *fakePage) openModal(editing int, draft fakeRow, number string) {
	p.modalOpen = true
	p.editing = editing
	p.draft = draft
	p.numberBuf = number
	p.focus = ""
}

func (p *fakePage) save() {
	s := p.site
	number, err := strconv.Atoi(p.numberBuf)
	if err != nil {
		return
	}
	s.saves++
	p.modalOpen = false
	if s.dropSaves {
		return
	}
	p.draft.number = number
	if p.editing >= 0 {
		s.rows[p.editing] = p.draft
		return
	}
	s.rows = append(s.rows, p.draft)
}

func (p *fakePage) field(sel string) *string {
	switch sel {
	case p.site.sel.NameInput:
		return &p.draft.name
	case p.site.sel.OverviewInput:
		return &p.draft.overview
	case p.site.sel.DateInput:
		return &p.draft.date
	}
	return nil
}

func (p *fakePage) Type(_ context.Context, sel, text string) error {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	p.focus = sel
	if target := p.field(sel); target != nil {
		*target += text
		return nil
	}
	switch sel {
	case "#username":
		return nil
	case "#password":
		p.site.typedPassword = text
		return nil
	}
	return fmt.Errorf("no input %s", sel)
}

func (p *fakePage) SetValue(_ context.Context, sel, value string) error {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	if target := p.field(sel); target != nil {
		*target = value
		return nil
	}
	return fmt.Errorf("no input %s", sel)
}

func (p *fakePage) Press(_ context.Context, key string, shift bool) error {
	s := p.site
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case key == tmdbweb.KeyTab && shift && p.focus == s.sel.NameInput:
		p.focus = "number"
	case key == tmdbweb.KeyDelete && p.focus == "number":
		if p.numberBuf != "" {
			p.numberBuf = p.numberBuf[1:]
		}
	case key == tmdbweb.KeyEnter:
		if s.typedPassword == s.password {
			s.loggedIn = true
		} else {
			s.loginError = "  We couldn't validate your information.\n Want to try again? "
		}
	}
	return nil
}

func (p *fakePage) TypeKeys(_ context.Context, text string) error {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	if p.focus == "number" {
		p.numberBuf += text
	}
	return nil
}

func (p *fakePage) WaitVisible(ctx context.Context, sel string) error {
	s := p.site
	s.mu.Lock()
	visible := true
	switch sel {
	case s.sel.Rows:
		visible = !s.noTable
	case s.sel.Ready:
		visible = p.modalOpen
	}
	s.mu.Unlock()
	if visible {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

func (p *fakePage) WaitHidden(ctx context.Context, sel string) error {
	p.site.mu.Lock()
	open := p.modalOpen && sel == p.site.sel.Ready
	p.site.mu.Unlock()
	if !open {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

func (p *fakePage) OuterHTML(_ context.Context, sel string) (string, error) {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	if sel != p.site.sel.Table {
		return "", fmt.Errorf("no node for %s", sel)
	}
	return p.site.tableHTML(), nil
}

func (p *fakePage) Text(_ context.Context, sel string) (string, error) {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	if sel == ".error_status.card content" {
		return p.site.loginError, nil
	}
	return "", fmt.Errorf("no node for %s", sel)
}

func (p *fakePage) Close() error {
	p.site.mu.Lock()
	defer p.site.mu.Unlock()
	p.closed = true
	return nil
}

// fakeBrowser hands out fakePages over one site.
type fakeBrowser struct {
	site *fakeSite

	mu    sync.Mutex
	pages []*fakePage
}

func (b *fakeBrowser) open() *fakePage {
	b.mu.Lock()
	defer b.mu.Unlock()
	page := &fakePage{site: b.site, url: "about:blank"}
	b.pages = append(b.pages, page)
	return page
}

func (b *fakeBrowser) GetOrCreatePage(ctx context.Context, url string, _ bool) (tmdbweb.Page, error) {
	page := b.open()
	if err := page.Navigate(ctx, url); err != nil {
		return nil, err
	}
	return page, nil
}

func (b *fakeBrowser) NewPage(context.Context) (tmdbweb.ClosablePage, error) {
	return b.open(), nil
}

func (b *fakeBrowser) openedPages() []*fakePage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*fakePage(nil), b.pages...)
}
