// Package config loads and validates exporter configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jfalvarez/bookscout/internal/openlibrary"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Limits  LimitsConfig  `mapstructure:"limits"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Output  OutputConfig  `mapstructure:"output"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig points at the remote bibliographic API.
type APIConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
}

// LimitsConfig bounds how many works a run may keep.
type LimitsConfig struct {
	PerAuthor int `mapstructure:"per_author"`
	Total     int `mapstructure:"total"`
}

// HTTPConfig configures per-request HTTP behavior.
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// FetchConfig governs the concurrent rating fan-out.
type FetchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// OutputConfig sets the sink destinations.
type OutputConfig struct {
	CSVPath  string `mapstructure:"csv_path"`
	HTMLPath string `mapstructure:"html_path"`
	Top      int    `mapstructure:"top"`
}

// ServerConfig controls the optional status HTTP server.
type ServerConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", openlibrary.DefaultBaseURL)
	v.SetDefault("api.user_agent", "bookscout/0.1")
	v.SetDefault("limits.per_author", 50)
	v.SetDefault("limits.total", 150)
	v.SetDefault("http.timeout_seconds", 15)
	v.SetDefault("fetch.concurrency", 8)
	v.SetDefault("output.csv_path", "books_output.csv")
	v.SetDefault("output.html_path", "books_output.html")
	v.SetDefault("output.top", 10)
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must be set")
	}
	if c.Limits.PerAuthor <= 0 {
		return fmt.Errorf("limits.per_author must be > 0")
	}
	if c.Limits.Total <= 0 {
		return fmt.Errorf("limits.total must be > 0")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.Fetch.Concurrency <= 0 {
		return fmt.Errorf("fetch.concurrency must be > 0")
	}
	if c.Server.Enabled && c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0 when the status server is enabled")
	}
	return nil
}

// RequestTimeout converts the HTTP timeout config into a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
