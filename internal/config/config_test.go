package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"tmdbpost/internal/config"
	"tmdbpost/internal/services"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvUsername,
		config.EnvPassword,
		config.EnvExecutablePath,
		config.EnvProfileDir,
		config.EnvWSDebuggerURL,
		config.EnvDateLocale,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	clearEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "tmdbpost", "config.toml"); resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}
	if cfg.TMDB.BaseURL != "https://www.themoviedb.org" {
		t.Fatalf("unexpected base url: %q", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.Language != "en-US" {
		t.Fatalf("unexpected language: %q", cfg.TMDB.Language)
	}
	if !cfg.Browser.Headless {
		t.Fatal("expected headless by default")
	}
	if cfg.WaitTimeout() != 30*time.Second {
		t.Fatalf("unexpected wait timeout: %s", cfg.WaitTimeout())
	}
	if cfg.Posting.DateLocale != "MDY" {
		t.Fatalf("unexpected date locale: %q", cfg.Posting.DateLocale)
	}
	if cfg.Posting.AllowUpdate {
		t.Fatal("expected allow_update false by default")
	}
	if cfg.Posting.MaxParallel != 1 {
		t.Fatalf("unexpected max parallel: %d", cfg.Posting.MaxParallel)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Credentials.Username != "" || cfg.Credentials.Password != "" {
		t.Fatalf("expected empty credentials, got %+v", cfg.Credentials)
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	configPath := filepath.Join(tempDir, "tmdbpost.toml")

	custom := config.Default()
	custom.TMDB.BaseURL = "https://tmdb.example.com/"
	custom.TMDB.Language = "fr-FR"
	custom.Credentials.Username = "  editor  "
	custom.Browser.ProfileDir = "~/profile"
	custom.Browser.WaitTimeoutSeconds = 0
	custom.Posting.DateLocale = "dmy"
	custom.Posting.MaxParallel = 4
	custom.Logging.Format = "JSON"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected existing config at %q, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.TMDB.BaseURL != "https://tmdb.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.Language != "fr-FR" {
		t.Fatalf("unexpected language: %q", cfg.TMDB.Language)
	}
	if cfg.Credentials.Username != "editor" {
		t.Fatalf("expected trimmed username, got %q", cfg.Credentials.Username)
	}
	if cfg.Browser.ProfileDir != filepath.Join(tempDir, "profile") {
		t.Fatalf("expected expanded profile dir, got %q", cfg.Browser.ProfileDir)
	}
	if cfg.Browser.WaitTimeoutSeconds != 30 {
		t.Fatalf("expected default wait timeout, got %d", cfg.Browser.WaitTimeoutSeconds)
	}
	if cfg.Posting.DateLocale != "DMY" {
		t.Fatalf("expected upper-cased locale, got %q", cfg.Posting.DateLocale)
	}
	if cfg.Posting.MaxParallel != 4 {
		t.Fatalf("unexpected max parallel: %d", cfg.Posting.MaxParallel)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lower-cased format, got %q", cfg.Logging.Format)
	}
}

func TestLoadEnvFallbacks(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv(config.EnvUsername, "env-user")
	t.Setenv(config.EnvPassword, "env-pass")
	t.Setenv(config.EnvWSDebuggerURL, "ws://127.0.0.1:9222/devtools/browser/abc")
	t.Setenv(config.EnvDateLocale, "DMY")

	configPath := filepath.Join(tempDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[credentials]\nusername = \"file-user\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Credentials.Username != "file-user" {
		t.Fatalf("expected file value to win over env, got %q", cfg.Credentials.Username)
	}
	if cfg.Credentials.Password != "env-pass" {
		t.Fatalf("expected env password, got %q", cfg.Credentials.Password)
	}
	if cfg.Browser.WSDebuggerURL != "ws://127.0.0.1:9222/devtools/browser/abc" {
		t.Fatalf("unexpected ws url: %q", cfg.Browser.WSDebuggerURL)
	}
	if cfg.Posting.DateLocale != "DMY" {
		t.Fatalf("unexpected date locale: %q", cfg.Posting.DateLocale)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()
	t.Chdir(workDir)
	if err := os.WriteFile(filepath.Join(workDir, ".env"), []byte(config.EnvUsername+"=dotenv-user\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv(config.EnvUsername) })

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Credentials.Username != "dotenv-user" {
		t.Fatalf("expected username from .env, got %q", cfg.Credentials.Username)
	}
}

func TestLoadRejectsMalformedDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()
	t.Chdir(workDir)
	if err := os.WriteFile(filepath.Join(workDir, ".env"), []byte(config.EnvUsername+"=\"unterminated\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	_, _, _, err := config.Load("")
	if err == nil {
		t.Fatal("expected malformed .env to fail")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"relative base url", func(c *config.Config) { c.TMDB.BaseURL = "themoviedb.org" }, "tmdb.base_url"},
		{"bad language", func(c *config.Config) { c.TMDB.Language = "not a tag" }, "tmdb.language"},
		{"bad ws url", func(c *config.Config) { c.Browser.WSDebuggerURL = "ftp://host" }, "browser.ws_debugger_url"},
		{"bad locale", func(c *config.Config) { c.Posting.DateLocale = "YMD" }, "posting.date_locale"},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestCreateSampleLoads(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Posting.DateLocale != "MDY" {
		t.Fatalf("unexpected sample locale: %q", cfg.Posting.DateLocale)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "a", "b") {
		t.Fatalf("ExpandPath = %q", got)
	}
}
