package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"tmdbpost/internal/config"
	"tmdbpost/internal/credentials"
	"tmdbpost/internal/testsupport"
	"tmdbpost/internal/tmdbweb"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"TMDBPOST_USERNAME", "TMDBPOST_PASSWORD", "TMDBPOST_WS_DEBUGGER_URL", "TMDBPOST_DATE_LOCALE"} {
		t.Setenv(key, "")
	}

	previousPrompter := newPrompter
	newPrompter = func(io.Writer) credentials.Prompter { return nil }
	t.Cleanup(func() { newPrompter = previousPrompter })

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithoutLogDir()}, opts...)...)
	return &cliTestEnv{
		cfg:        cfg,
		configPath: testsupport.WriteConfig(t, cfg),
		baseDir:    testsupport.BaseDir(cfg),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// stubSession is a browser whose every tab sits on landing.
type stubSession struct {
	landing  string
	loggedIn bool
	openErr  error

	opened   int
	closed   bool
	gotFlags sessionFlags
}

// install replaces the browser opener for the duration of the test.
func (s *stubSession) install(t *testing.T) {
	t.Helper()
	previous := openBrowserSession
	openBrowserSession = func(_ context.Context, _ *config.Config, flags sessionFlags, _ *slog.Logger) (browserSession, error) {
		s.opened++
		s.gotFlags = flags
		if s.openErr != nil {
			return nil, s.openErr
		}
		return s, nil
	}
	t.Cleanup(func() { openBrowserSession = previous })
}

func (s *stubSession) GetOrCreatePage(context.Context, string, bool) (tmdbweb.Page, error) {
	return &stubPage{session: s}, nil
}

func (s *stubSession) NewPage(context.Context) (tmdbweb.ClosablePage, error) {
	return &stubPage{session: s}, nil
}

func (s *stubSession) Close() error {
	s.closed = true
	return nil
}

// stubPage answers the logged-in check and nothing else.
type stubPage struct {
	session *stubSession
}

func (p *stubPage) Navigate(context.Context, string) error { return nil }

func (p *stubPage) URL(context.Context) (string, error) { return p.session.landing, nil }

func (p *stubPage) Exists(_ context.Context, sel string) (bool, error) {
	return sel == "header ul > li.user" && p.session.loggedIn, nil
}

func (p *stubPage) Click(_ context.Context, sel string) error { return noNode(sel) }

func (p *stubPage) Type(_ context.Context, sel, _ string) error { return noNode(sel) }

func (p *stubPage) SetValue(_ context.Context, sel, _ string) error { return noNode(sel) }

func (p *stubPage) Press(context.Context, string, bool) error { return nil }

func (p *stubPage) TypeKeys(context.Context, string) error { return nil }

func (p *stubPage) WaitVisible(ctx context.Context, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func (p *stubPage) WaitHidden(context.Context, string) error { return nil }

func (p *stubPage) OuterHTML(_ context.Context, sel string) (string, error) { return "", noNode(sel) }

func (p *stubPage) Text(_ context.Context, sel string) (string, error) { return "", noNode(sel) }

func (p *stubPage) Close() error { return nil }

func noNode(sel string) error {
	return fmt.Errorf("no node matches %s", sel)
}
