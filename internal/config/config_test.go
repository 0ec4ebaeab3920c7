package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray .env or
// stockroom.yaml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultDBPath, cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("STOCKROOM_DB_PATH", "/tmp/shop.db")
	t.Setenv("STOCKROOM_LOG_LEVEL", "DEBUG")
	t.Setenv("STOCKROOM_LOG_FORMAT", "json")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/shop.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STOCKROOM_LOG_LEVEL=warn\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("STOCKROOM_LOG_LEVEL") })

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	yaml := "db_path: from-file.db\nlog_format: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stockroom.yaml"), []byte(yaml), 0o600))

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "from-file.db", cfg.DBPath)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_OverrideBeatsEnv(t *testing.T) {
	isolate(t)
	t.Setenv("STOCKROOM_DB_PATH", "env.db")

	v := viper.New()
	v.Set(KeyDBPath, "flag.db")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "flag.db", cfg.DBPath)
}

func TestLoad_ExpandsHome(t *testing.T) {
	isolate(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("STOCKROOM_DB_PATH", "~/stock/inventory.db")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "stock", "inventory.db"), cfg.DBPath)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("STOCKROOM_LOG_LEVEL", "loud")

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestValidate(t *testing.T) {
	cfg := &Config{DBPath: " ", LogLevel: "info", LogFormat: "xml"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db_path")
	assert.Contains(t, err.Error(), "log_format")

	cfg = &Config{DBPath: "inventory.db", LogLevel: "error", LogFormat: "text"}
	assert.NoError(t, cfg.Validate())
}
