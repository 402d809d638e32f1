package services_test

import (
	"errors"
	"strings"
	"testing"

	"tmdbpost/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrBrowser, "browser", "launch", "chromium exited", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrBrowser) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"browser", "launch", "chromium exited"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrBrowser) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: 0},
		{err: services.Wrap(services.ErrAuthentication, "auth", "login", "rejected", nil), want: services.ExitAuthentication},
		{err: services.Wrap(services.ErrNotFound, "tmdbweb", "navigate", "redirected", nil), want: services.ExitNotFound},
		{err: services.Wrap(services.ErrValidation, "input", "parse", "bad date", nil), want: services.ExitUsage},
		{err: services.Wrap(services.ErrConfiguration, "config", "load", "bad toml", nil), want: services.ExitUsage},
		{err: errors.New("io"), want: services.ExitFailure},
	}
	for _, tc := range tests {
		if got := services.ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
