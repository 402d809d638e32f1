package tmdbweb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tmdbpost/internal/dates"
	"tmdbpost/internal/textutil"
	"tmdbpost/internal/tvshow"
)

// Row is a record read from a listing grid together with its edit trigger.
// Rows are rebuilt on every scrape.
type Row[T tvshow.Record] struct {
	Record T
	Edit   EditAction
}

// ScrapeSeasons reads the seasons grid of a show edit page.
func ScrapeSeasons(ctx context.Context, page Page, sel FormSelectors, showID string, wait time.Duration) ([]Row[tvshow.Season], error) {
	return scrapeRows(ctx, page, sel, "seasons", wait, func(cells []string) (tvshow.Season, bool) {
		if len(cells) < 3 {
			return tvshow.Season{}, false
		}
		number, err := strconv.Atoi(cells[0])
		if err != nil {
			return tvshow.Season{}, false
		}
		return tvshow.Season{ShowID: showID, Number: number, Name: cells[1], Overview: cells[2]}, true
	})
}

// ScrapeEpisodes reads the episodes grid of a season edit page. Air dates are
// converted from the grid's display order to ISO using locale.
func ScrapeEpisodes(ctx context.Context, page Page, sel FormSelectors, showID string, season int, locale dates.Locale, wait time.Duration) ([]Row[tvshow.Episode], error) {
	return scrapeRows(ctx, page, sel, "episodes", wait, func(cells []string) (tvshow.Episode, bool) {
		if len(cells) < 4 {
			return tvshow.Episode{}, false
		}
		number, err := strconv.Atoi(cells[0])
		if err != nil {
			return tvshow.Episode{}, false
		}
		return tvshow.Episode{
			ShowID:   showID,
			Season:   season,
			Number:   number,
			Name:     cells[1],
			Overview: cells[2],
			Date:     dates.ToISO(cells[3], locale),
		}, true
	})
}

func scrapeRows[T tvshow.Record](ctx context.Context, page Page, sel FormSelectors, noun string, wait time.Duration, parse func(cells []string) (T, bool)) ([]Row[T], error) {
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	err := page.WaitVisible(waitCtx, sel.Rows)
	cancel()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, notFoundOn(ctx, page, noun+" table did not show up")
	}

	html, err := page.OuterHTML(ctx, sel.Table)
	if err != nil {
		return nil, fmt.Errorf("read %s table: %w", noun, err)
	}
	rows, err := ParseRows(html, sel, parse)
	if err != nil {
		return nil, fmt.Errorf("parse %s table: %w", noun, err)
	}
	// Every show and season is expected to list at least one entry.
	if len(rows) == 0 {
		return nil, notFoundOn(ctx, page, noun+" rows")
	}
	return rows, nil
}

// ParseRows parses the outer HTML of a listing table. parse receives the
// cleaned cell texts of each row by position and reports false for rows that
// do not describe a record, which are skipped.
func ParseRows[T tvshow.Record](html string, sel FormSelectors, parse func(cells []string) (T, bool)) ([]Row[T], error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var rows []Row[T]
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.ChildrenFiltered("td")
		cells := make([]string, tds.Length())
		tds.Each(func(i int, td *goquery.Selection) {
			cells[i] = textutil.CleanText(td.Text())
		})
		record, ok := parse(cells)
		if !ok {
			return
		}
		row := Row[T]{Record: record}
		if sel.EditColumn > 0 && sel.EditColumn <= tds.Length() {
			if tds.Eq(sel.EditColumn-1).ChildrenFiltered("a").Length() > 0 {
				row.Edit = sel.editAction(tr.Index() + 1)
			}
		}
		rows = append(rows, row)
	})
	return rows, nil
}
