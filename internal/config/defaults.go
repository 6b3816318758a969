package config

import "github.com/bobmcallan/invest-portal/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		API: APIConfig{
			URL:            "http://localhost:8000",
			TimeoutSeconds: 10,
		},
		Cache: CacheConfig{
			Backend:    "memory",
			TTLSeconds: 60,
			MaxEntries: 1000,
			RedisURL:   "redis://localhost:6379/0",
			KeyPrefix:  "invest:",
		},
		Chart: ChartConfig{
			Theme:        "light",
			Height:       400,
			DetailHeight: 500,
			Locale:       "th_TH",
			Timezone:     "Asia/Bangkok",
			Interval:     "D",
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Warmup: WarmupConfig{
			Enabled: true,
		},
		Logging: common.LoggingConfig{
			Level:   "info",
			Format:  "text",
			Outputs: []string{"console"},
		},
	}
}
