package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWithNoConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, 1000, cfg.Watcher.PollingInterval)
	assert.Equal(t, 64*1024, cfg.BufferSize)
}

func TestLoadReadsExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
watcher:
  use_polling: true
  polling_interval: 500
buffer_size: 4096
legacy_watcher: "on"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.True(t, cfg.Watcher.UsePolling)
	assert.Equal(t, 500, cfg.Watcher.PollingInterval)
	assert.Equal(t, 4096, cfg.BufferSize)
	assert.Equal(t, "on", cfg.LegacyWatcher)
}

func TestLoadRejectsInvalidLegacyWatcherValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("legacy_watcher: maybe\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvironmentVariableOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o644))

	t.Setenv("DISKPROVIDER_LOGGING_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", cfg.Logging.Level)
}

func TestGetDefaultConfigPathHonorsXDGConfigHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	assert.Equal(t, filepath.Join(home, "diskprovider", "config.yaml"), GetDefaultConfigPath())
}

func TestConfigExistsReflectsFilePresence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	assert.False(t, ConfigExists())

	require.NoError(t, os.MkdirAll(filepath.Join(home, "diskprovider"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "diskprovider", "config.yaml"), []byte("buffer_size: 1\n"), 0o644))

	assert.True(t, ConfigExists())
}
