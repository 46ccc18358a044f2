// Package config loads diskprovider's runtime configuration from file,
// environment, and defaults, following dittofs's own viper +
// go-playground/validator layering (pkg/config/config.go in the original
// tree covered a much larger NFS server config; this is trimmed to exactly
// the options table the disk provider itself exposes).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is diskprovider's complete runtime configuration.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (DISKPROVIDER_*)
//  2. Configuration file (YAML or TOML)
//  3. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging"`

	// Server carries the product-channel tag the legacy-watcher heuristic
	// reads.
	Server ServerConfig `mapstructure:"server"`

	// Watcher controls the recursive watch multiplexer's backend selection.
	Watcher WatcherConfig `mapstructure:"watcher"`

	// BufferSize is the streaming-read chunk size in bytes.
	BufferSize int `mapstructure:"buffer_size" validate:"gt=0"`

	// LegacyWatcher is "on", "off", or "" (absent => heuristic).
	LegacyWatcher string `mapstructure:"legacy_watcher" validate:"omitempty,oneof=on off"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: TRACE, DEBUG, INFO, WARN, ERROR (case-insensitive).
	Level string `mapstructure:"level" validate:"required,oneof=TRACE DEBUG INFO WARN ERROR trace debug info warn error"`
}

// ServerConfig carries server-wide settings.
type ServerConfig struct {
	// Channel is the product release channel ("stable", "insiders", ...),
	// which feeds the legacy-watcher backend-selection heuristic.
	Channel string `mapstructure:"channel"`
}

// WatcherConfig controls the recursive watch backend.
type WatcherConfig struct {
	// UsePolling forces the polling watch backend for every folder.
	UsePolling bool `mapstructure:"use_polling"`

	// PollingInterval is the polling period in milliseconds.
	PollingInterval int `mapstructure:"polling_interval" validate:"gt=0"`
}

// Load loads configuration from file, environment, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// setupViper configures viper with environment variables and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("DISKPROVIDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}

	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper, configPath string) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// getConfigDir returns the configuration directory path, preferring
// XDG_CONFIG_HOME, then ~/.config, then the current directory.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "diskprovider")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "diskprovider")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// ConfigExists reports whether a config file exists at the default location.
func ConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}
