package config

import "strings"

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Zero values (0, "", false) are replaced with defaults; explicit values are
// preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyWatcherDefaults(&cfg.Watcher)

	if cfg.BufferSize == 0 {
		cfg.BufferSize = 64 * 1024
	}
}

// applyLoggingDefaults sets logging defaults and normalizes the level casing.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)
}

// applyWatcherDefaults sets watch-backend defaults.
func applyWatcherDefaults(cfg *WatcherConfig) {
	if cfg.PollingInterval == 0 {
		cfg.PollingInterval = 1000
	}
}
