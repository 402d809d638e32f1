package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tmdbpost/internal/browser"
	"tmdbpost/internal/config"
	"tmdbpost/internal/logging"
	"tmdbpost/internal/services"
	"tmdbpost/internal/tmdbweb"
)

// browserSession is what commands need from a browser: tabs to work in and
// a way to let go of them.
type browserSession interface {
	tmdbweb.Pages
	Close() error
}

// openBrowserSession starts or attaches to Chromium. Tests replace it.
var openBrowserSession = func(ctx context.Context, cfg *config.Config, flags sessionFlags, logger *slog.Logger) (browserSession, error) {
	opts := browser.Options{
		Headless:       cfg.Browser.Headless && !flags.head,
		SlowMotion:     cfg.SlowMotion(),
		ExecutablePath: cfg.Browser.ExecutablePath,
		ProfileDir:     cfg.Browser.ProfileDir,
		Logger:         logger,
	}
	if flags.slow {
		opts.SlowMotion += config.SlowMotionDefault * time.Millisecond
	}

	wsURL := strings.TrimSpace(flags.wsURL)
	if wsURL == "" {
		wsURL = cfg.Browser.WSDebuggerURL
	}
	var (
		session *browser.Session
		err     error
	)
	if wsURL != "" {
		session, err = browser.Attach(ctx, wsURL, opts)
	} else {
		session, err = browser.Launch(ctx, opts)
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	requestID string
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		requestID:    uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// commandLogger builds the run's logger, writing to the command's stderr.
func (c *commandContext) commandLogger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "logging", "init", "", err)
	}
	return logger, nil
}

// runContext tags the command's context with the session correlation id.
func (c *commandContext) runContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return services.WithRequestID(ctx, c.requestID)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
