// Package config loads stockroom settings from flags, the environment, an
// optional .env file and an optional stockroom.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment key, e.g. STOCKROOM_DB_PATH.
	EnvPrefix = "STOCKROOM"

	// DefaultDBPath is the database file used when none is configured
	DefaultDBPath = "inventory.db"
)

// Keys understood by Load. They double as flag names bound by the CLI.
const (
	KeyDBPath    = "db_path"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
)

// Config holds all configuration for the application
type Config struct {
	DBPath    string `mapstructure:"db_path"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load resolves configuration into cfg. Precedence, highest first: values
// bound on v (flags), STOCKROOM_* environment variables (a .env file in
// the working directory is loaded first), stockroom.yaml, then defaults.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	_ = godotenv.Load()

	v.SetDefault(KeyDBPath, DefaultDBPath)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetConfigName("stockroom")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	path, err := expandHome(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	cfg.DBPath = path
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects empty paths and unknown log settings.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, "db_path must not be empty")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log_level must be one of debug|info|warn|error (got %q)", c.LogLevel))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log_format must be text or json (got %q)", c.LogFormat))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
}

// expandHome replaces a leading "~/" with the user's home directory
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
