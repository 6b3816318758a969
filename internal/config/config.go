package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string               `toml:"environment"`
	Server      ServerConfig         `toml:"server"`
	API         APIConfig            `toml:"api"`
	Cache       CacheConfig          `toml:"cache"`
	Chart       ChartConfig          `toml:"chart"`
	MCP         MCPConfig            `toml:"mcp"`
	Metrics     MetricsConfig        `toml:"metrics"`
	Warmup      WarmupConfig         `toml:"warmup"`
	Logging     common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// APIConfig points at the market data REST backend.
type APIConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// CacheConfig selects and sizes the query cache store.
type CacheConfig struct {
	Backend    string `toml:"backend"`
	TTLSeconds int    `toml:"ttl_seconds"`
	MaxEntries int    `toml:"max_entries"`
	RedisURL   string `toml:"redis_url"`
	KeyPrefix  string `toml:"key_prefix"`
}

// ChartConfig holds defaults for the embedded advanced chart.
type ChartConfig struct {
	Theme        string `toml:"theme"`
	Height       int    `toml:"height"`
	DetailHeight int    `toml:"detail_height"`
	Locale       string `toml:"locale"`
	Timezone     string `toml:"timezone"`
	Interval     string `toml:"interval"`
}

// MCPConfig toggles the /mcp endpoint.
type MCPConfig struct {
	Enabled bool `toml:"enabled"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// WarmupConfig toggles start-up prefetching of popular lists.
type WarmupConfig struct {
	Enabled bool `toml:"enabled"`
}

// IsDevMode reports whether the portal runs with environment = "dev".
func (c *Config) IsDevMode() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "dev")
}

// APITimeout returns the backend request timeout.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// CacheTTL returns the fallback TTL for query resources without a dedicated tier.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// Validate returns the list of configuration problems. An empty list means
// the configuration is usable.
func (c *Config) Validate() []string {
	var issues []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}

	if strings.TrimSpace(c.API.URL) == "" {
		issues = append(issues, "api.url is required (INVEST_API_URL)")
	} else if u, err := url.Parse(c.API.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		issues = append(issues, fmt.Sprintf("api.url must be an absolute http(s) URL (got %q)", c.API.URL))
	}
	if c.API.TimeoutSeconds <= 0 {
		issues = append(issues, "api.timeout_seconds must be positive")
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		issues = append(issues, fmt.Sprintf("cache.backend must be \"memory\" or \"redis\" (got %q)", c.Cache.Backend))
	}
	if c.Cache.TTLSeconds <= 0 {
		issues = append(issues, "cache.ttl_seconds must be positive")
	}
	if c.Cache.MaxEntries <= 0 {
		issues = append(issues, "cache.max_entries must be positive")
	}
	if c.Cache.Backend == "redis" && strings.TrimSpace(c.Cache.RedisURL) == "" {
		issues = append(issues, "cache.redis_url is required when cache.backend is \"redis\"")
	}

	switch c.Chart.Theme {
	case "light", "dark":
	default:
		issues = append(issues, fmt.Sprintf("chart.theme must be \"light\" or \"dark\" (got %q)", c.Chart.Theme))
	}
	if c.Chart.Height <= 0 || c.Chart.DetailHeight <= 0 {
		issues = append(issues, "chart.height and chart.detail_height must be positive")
	}

	return issues
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> .env -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies INVEST_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("INVEST_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("INVEST_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("INVEST_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if apiURL := os.Getenv("INVEST_API_URL"); apiURL != "" {
		config.API.URL = strings.TrimRight(apiURL, "/")
	}
	if timeout := os.Getenv("INVEST_API_TIMEOUT_SECONDS"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			config.API.TimeoutSeconds = t
		}
	}
	if backend := os.Getenv("INVEST_CACHE_BACKEND"); backend != "" {
		config.Cache.Backend = backend
	}
	if redisURL := os.Getenv("INVEST_REDIS_URL"); redisURL != "" {
		config.Cache.RedisURL = redisURL
	}
	if theme := os.Getenv("INVEST_CHART_THEME"); theme != "" {
		config.Chart.Theme = theme
	}
	if level := os.Getenv("INVEST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("INVEST_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string, apiURL string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
	if apiURL != "" {
		config.API.URL = strings.TrimRight(apiURL, "/")
	}
}
