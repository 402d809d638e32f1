package config

const (
	defaultConfigPath         = "~/.config/tmdbpost/config.toml"
	projectConfigName         = "tmdbpost.toml"
	defaultTMDBBaseURL        = "https://www.themoviedb.org"
	defaultTMDBLanguage       = "en-US"
	defaultWaitTimeoutSeconds = 30
	defaultSlowMotionMS       = 50
	defaultDateLocale         = "MDY"
	defaultMaxParallel        = 1
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogMaxSizeMB       = 10
	defaultLogMaxBackups      = 3
	defaultLogMaxAgeDays      = 28
)

// SlowMotionDefault is the per-action delay in milliseconds that --slow adds
// to browser.slow_motion_ms.
const SlowMotionDefault = defaultSlowMotionMS

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Browser: Browser{
			Headless:           true,
			WaitTimeoutSeconds: defaultWaitTimeoutSeconds,
		},
		Posting: Posting{
			DateLocale:  defaultDateLocale,
			MaxParallel: defaultMaxParallel,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
