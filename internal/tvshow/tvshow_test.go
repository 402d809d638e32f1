package tvshow_test

import (
	"errors"
	"testing"

	"tmdbpost/internal/dates"
	"tmdbpost/internal/tvshow"
)

func TestRecordLabels(t *testing.T) {
	if got := (tvshow.Season{Number: 2}).Label(); got != "S02" {
		t.Fatalf("season label = %q", got)
	}
	if got := (tvshow.Episode{Season: 1, Number: 5}).Label(); got != "S01E05" {
		t.Fatalf("episode label = %q", got)
	}
	if got := (tvshow.Episode{Number: 12}).Label(); got != "E12" {
		t.Fatalf("episode label without season = %q", got)
	}
}

func TestSeasonFieldsHaveNoDate(t *testing.T) {
	fields := tvshow.Season{Number: 1, Name: "One", Overview: "First"}.Fields()
	if fields.Date != "" || fields.Name != "One" || fields.Overview != "First" {
		t.Fatalf("unexpected season fields: %#v", fields)
	}
	if got := (tvshow.Season{Number: 3}).DefaultName(); got != "Season 3" {
		t.Fatalf("default name = %q", got)
	}
}

func TestFeedbackTransitions(t *testing.T) {
	fb := tvshow.NewFeedback(tvshow.Episode{Number: 1}, tvshow.StatusUnchanged)
	added := fb.Added(tvshow.Episode{Number: 1, Name: "Pilot"})
	if added.Status != tvshow.StatusAdded || added.Item.Name != "Pilot" {
		t.Fatalf("unexpected added feedback: %#v", added)
	}
	if fb.Status != tvshow.StatusUnchanged {
		t.Fatal("expected original feedback to be untouched")
	}
	boom := errors.New("boom")
	failed := fb.Failed(boom)
	if failed.Status != tvshow.StatusError || !errors.Is(failed.Err, boom) {
		t.Fatalf("unexpected failed feedback: %#v", failed)
	}
	if !tvshow.HasErrors([]tvshow.Feedback[tvshow.Episode]{added, failed}) {
		t.Fatal("expected HasErrors to report the failed item")
	}
	if tvshow.HasErrors([]tvshow.Feedback[tvshow.Episode]{added}) {
		t.Fatal("expected no errors")
	}
}

func TestPostOptionsNormalize(t *testing.T) {
	opts, err := tvshow.PostOptions{}.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if opts.Translation != tvshow.DefaultTranslation || opts.DateLocale != dates.MDY || opts.MaxParallel != 1 {
		t.Fatalf("unexpected defaults: %#v", opts)
	}

	opts, err = tvshow.PostOptions{Translation: "fr-fr", DateLocale: dates.DMY, MaxParallel: 4}.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if opts.Translation != "fr-FR" {
		t.Fatalf("expected canonical tag, got %q", opts.Translation)
	}
	if opts.MaxParallel != 4 {
		t.Fatalf("expected max parallel to be kept, got %d", opts.MaxParallel)
	}

	if _, err := (tvshow.PostOptions{Translation: "not a tag!"}).Normalize(); err == nil {
		t.Fatal("expected invalid translation to fail")
	}
	if _, err := (tvshow.PostOptions{DateLocale: "YMD"}).Normalize(); err == nil {
		t.Fatal("expected invalid date locale to fail")
	}
}
