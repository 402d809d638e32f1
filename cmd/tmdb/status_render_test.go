package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"tmdbpost/internal/tvshow"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("S01", styleError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "S01:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("S01", styleForStatus(tvshow.StatusAdded), "", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
	if !strings.Contains(got, "[ADDED]") {
		t.Fatalf("expected ADDED tag, got %q", got)
	}
}

func TestStyleForStatus(t *testing.T) {
	tests := []struct {
		status tvshow.Status
		tag    string
		color  string
	}{
		{tvshow.StatusAdded, "ADDED", ansiGreen},
		{tvshow.StatusUpdated, "UPDATED", ansiGreen},
		{tvshow.StatusUnchanged, "SAME", ansiBlue},
		{tvshow.StatusIgnored, "SKIP", ansiYellow},
		{tvshow.StatusError, "ERROR", ansiRed},
		{tvshow.Status("odd"), "odd", ""},
	}
	for _, tt := range tests {
		got := styleForStatus(tt.status)
		if got.tag != tt.tag || got.color != tt.color {
			t.Fatalf("styleForStatus(%s) = %+v, want tag %q color %q", tt.status, got, tt.tag, tt.color)
		}
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
