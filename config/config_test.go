package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			URL:     "https://api.themoviedb.org/3",
			APIKey:  "valid-api-key",
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.TMDB.APIKey = "" },
			wantErr: "tmdb.api_key",
		},
		{
			name:    "placeholder api key",
			mutate:  func(c *Config) { c.TMDB.APIKey = "your-api-key-here" },
			wantErr: "tmdb.api_key",
		},
		{
			name:    "relative url",
			mutate:  func(c *Config) { c.TMDB.URL = "api.themoviedb.org/3" },
			wantErr: "absolute URL",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.TMDB.Timeout = 0 },
			wantErr: "tmdb.timeout",
		},
		{
			name: "radarr enabled without key",
			mutate: func(c *Config) {
				c.Radarr = RadarrConfig{Enabled: true, URL: "http://localhost:7878"}
			},
			wantErr: "radarr.api_key",
		},
		{
			name: "radarr disabled without key",
			mutate: func(c *Config) {
				c.Radarr = RadarrConfig{Enabled: false}
			},
		},
		{
			name:    "negative max per category",
			mutate:  func(c *Config) { c.Display.MaxPerCategory = -1 },
			wantErr: "max_per_category",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.Server.RateLimit = -1 },
			wantErr: "rate_limit",
		},
		{
			name:    "invalid level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "invalid format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
tmdb:
  api_key: file-key
  language: pt-BR
  timeout: 5s
filter:
  default_expression: "VoteAverage >= 6"
  presets:
    acclaimed: "VoteAverage >= 8 && VoteCount > 1000"
display:
  max_per_category: 5
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.TMDB.APIKey)
	assert.Equal(t, "pt-BR", cfg.TMDB.Language)
	assert.Equal(t, 5*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.URL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w300", cfg.TMDB.ImageBaseURL)
	assert.Equal(t, "VoteAverage >= 6", cfg.Filter.DefaultExpression)
	assert.Equal(t, "VoteAverage >= 8 && VoteCount > 1000", cfg.Filter.Presets["acclaimed"])
	assert.Equal(t, 5, cfg.Display.MaxPerCategory)
	assert.True(t, cfg.Display.ShowDetails)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tmdb:\n  api_key: file-key\n"), 0o600))

	t.Setenv("CINENOW_TMDB_API_KEY", "env-key")
	t.Setenv("CINENOW_SERVER_ADDR", "127.0.0.1:9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.TMDB.APIKey)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestLoadWithoutFileUsesEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("CINENOW_TMDB_API_KEY", "env-only-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-only-key", cfg.TMDB.APIKey)
}

func TestLoadRejectsMissingKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o600))
	t.Setenv("CINENOW_TMDB_API_KEY", "")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	// registered so the cleanup unsets what the .env file sets
	t.Setenv("CINENOW_TMDB_API_KEY", "")
	t.Setenv("CINENOW_TMDB_LANGUAGE", "")
	os.Unsetenv("CINENOW_TMDB_API_KEY")
	os.Unsetenv("CINENOW_TMDB_LANGUAGE")

	t.Setenv("CINENOW_LOGGING_LEVEL", "warn")

	dotenv := "CINENOW_TMDB_API_KEY=dotenv-key\nCINENOW_TMDB_LANGUAGE=fr-FR\nCINENOW_LOGGING_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.TMDB.APIKey)
	assert.Equal(t, "fr-FR", cfg.TMDB.Language)
	assert.Equal(t, "warn", cfg.Logging.Level, "process environment wins over .env")
	assert.Equal(t, 40.0, cfg.TMDB.RateLimit)
	assert.Equal(t, 20, cfg.TMDB.RateBurst)
	assert.Zero(t, cfg.Server.RateLimit)
}
