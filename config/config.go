package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variable overrides, e.g. CINENOW_TMDB_API_KEY
const EnvPrefix = "CINENOW"

// Load loads the configuration from file and environment.
// Without an explicit path a missing config file is not an error, so the
// tool can run from environment variables alone. A .env file in the working
// directory is loaded first; it never overrides variables already set.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cinenow"))
		}

		v.AddConfigPath("/etc/cinenow/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key needs one so
// that AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.language", "en-US")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p/w300")
	v.SetDefault("tmdb.timeout", "30s")
	v.SetDefault("tmdb.rate_limit", 40)
	v.SetDefault("tmdb.rate_burst", 20)

	// Radarr defaults
	v.SetDefault("radarr.enabled", false)
	v.SetDefault("radarr.url", "http://localhost:7878")
	v.SetDefault("radarr.api_key", "")

	// Server defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.rate_burst", 10)

	// Filter defaults
	v.SetDefault("filter.default_expression", "")

	// Display defaults
	v.SetDefault("display.show_details", true)
	v.SetDefault("display.max_per_category", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TMDB.URL == "" {
		return fmt.Errorf("tmdb.url is required")
	}
	if u, err := url.Parse(cfg.TMDB.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("tmdb.url must be an absolute URL: %s", cfg.TMDB.URL)
	}

	if cfg.TMDB.APIKey == "" || cfg.TMDB.APIKey == "your-api-key-here" {
		return fmt.Errorf("tmdb.api_key must be set to a valid API key or read access token")
	}

	if cfg.TMDB.Timeout <= 0 {
		return fmt.Errorf("tmdb.timeout must be positive")
	}

	if cfg.TMDB.RateLimit < 0 || cfg.Server.RateLimit < 0 {
		return fmt.Errorf("rate_limit cannot be negative")
	}

	if cfg.Radarr.Enabled {
		if cfg.Radarr.URL == "" {
			return fmt.Errorf("radarr.url is required when radarr is enabled")
		}
		if cfg.Radarr.APIKey == "" || cfg.Radarr.APIKey == "your-api-key-here" {
			return fmt.Errorf("radarr.api_key must be set when radarr is enabled")
		}
	}

	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if cfg.Display.MaxPerCategory < 0 {
		return fmt.Errorf("display.max_per_category cannot be negative")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
