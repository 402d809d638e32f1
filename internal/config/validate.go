package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"

	"tmdbpost/internal/dates"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateBrowser(); err != nil {
		return err
	}
	if err := c.validatePosting(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTMDB() error {
	parsed, err := url.Parse(c.TMDB.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("tmdb.base_url must be an absolute URL, got %q", c.TMDB.BaseURL)
	}
	if _, err := language.Parse(c.TMDB.Language); err != nil {
		return fmt.Errorf("tmdb.language %q is not a valid language tag", c.TMDB.Language)
	}
	return nil
}

func (c *Config) validateBrowser() error {
	if c.Browser.WSDebuggerURL == "" {
		return nil
	}
	parsed, err := url.Parse(c.Browser.WSDebuggerURL)
	if err != nil {
		return fmt.Errorf("browser.ws_debugger_url: %w", err)
	}
	switch parsed.Scheme {
	case "ws", "wss", "http", "https":
		return nil
	default:
		return fmt.Errorf("browser.ws_debugger_url must use ws:// or http://, got %q", c.Browser.WSDebuggerURL)
	}
}

func (c *Config) validatePosting() error {
	if !dates.Locale(c.Posting.DateLocale).Valid() {
		return fmt.Errorf("posting.date_locale must be MDY or DMY, got %q", c.Posting.DateLocale)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
}
