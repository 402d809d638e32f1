package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"tmdbpost/internal/services"
)

// Environment variables consulted when the matching config value is empty.
const (
	EnvUsername       = "TMDBPOST_USERNAME"
	EnvPassword       = "TMDBPOST_PASSWORD"
	EnvExecutablePath = "TMDBPOST_BROWSER_EXECUTABLE_PATH"
	EnvProfileDir     = "TMDBPOST_BROWSER_PROFILE_DIR"
	EnvWSDebuggerURL  = "TMDBPOST_WS_DEBUGGER_URL"
	EnvDateLocale     = "TMDBPOST_DATE_LOCALE"
)

func (c *Config) normalize() error {
	// Real environment values always win over .env entries.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrConfiguration, "config", "load .env", "", err)
	}

	c.normalizeTMDB()
	c.normalizeCredentials()
	if err := c.normalizeBrowser(); err != nil {
		return err
	}
	c.normalizePosting()
	return c.normalizeLogging()
}

func (c *Config) normalizeTMDB() {
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
}

func (c *Config) normalizeCredentials() {
	c.Credentials.Username = envFallback(strings.TrimSpace(c.Credentials.Username), EnvUsername)
	if c.Credentials.Password == "" {
		if value, ok := os.LookupEnv(EnvPassword); ok {
			c.Credentials.Password = value
		}
	}
}

func (c *Config) normalizeBrowser() error {
	c.Browser.ExecutablePath = envFallback(strings.TrimSpace(c.Browser.ExecutablePath), EnvExecutablePath)
	c.Browser.WSDebuggerURL = envFallback(strings.TrimSpace(c.Browser.WSDebuggerURL), EnvWSDebuggerURL)
	c.Browser.ProfileDir = envFallback(strings.TrimSpace(c.Browser.ProfileDir), EnvProfileDir)

	var err error
	if c.Browser.ExecutablePath != "" && strings.ContainsRune(c.Browser.ExecutablePath, '/') {
		if c.Browser.ExecutablePath, err = expandPath(c.Browser.ExecutablePath); err != nil {
			return fmt.Errorf("browser.executable_path: %w", err)
		}
	}
	if c.Browser.ProfileDir, err = expandPath(c.Browser.ProfileDir); err != nil {
		return fmt.Errorf("browser.profile_dir: %w", err)
	}
	if c.Browser.WaitTimeoutSeconds <= 0 {
		c.Browser.WaitTimeoutSeconds = defaultWaitTimeoutSeconds
	}
	if c.Browser.SlowMotionMS < 0 {
		c.Browser.SlowMotionMS = 0
	}
	return nil
}

func (c *Config) normalizePosting() {
	c.Posting.DateLocale = strings.ToUpper(envFallback(strings.TrimSpace(c.Posting.DateLocale), EnvDateLocale))
	if c.Posting.DateLocale == "" {
		c.Posting.DateLocale = defaultDateLocale
	}
	if c.Posting.MaxParallel < 1 {
		c.Posting.MaxParallel = defaultMaxParallel
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.MaxAgeDays < 0 {
		c.Logging.MaxAgeDays = 0
	}
	return nil
}

func envFallback(value, key string) string {
	if value != "" {
		return value
	}
	if env, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(env)
	}
	return ""
}
