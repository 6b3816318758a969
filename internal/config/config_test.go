package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host localhost, got %s", cfg.Server.Host)
	}
	if cfg.API.URL != "http://localhost:8000" {
		t.Errorf("expected default api url http://localhost:8000, got %s", cfg.API.URL)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("expected default cache backend memory, got %s", cfg.Cache.Backend)
	}
	if cfg.Chart.Theme != "light" || cfg.Chart.Height != 400 || cfg.Chart.DetailHeight != 500 {
		t.Errorf("unexpected chart defaults: %+v", cfg.Chart)
	}
	if cfg.Chart.Locale != "th_TH" || cfg.Chart.Timezone != "Asia/Bangkok" {
		t.Errorf("unexpected chart locale defaults: %+v", cfg.Chart)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("expected default config to validate, got %v", issues)
	}
}

func TestLoadFromFiles_NoFiles(t *testing.T) {
	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles with no files should not error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFiles_ValidTOML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "test.toml")

	content := `
environment = "dev"

[server]
port = 9090
host = "0.0.0.0"

[api]
url = "http://backend:8000"
timeout_seconds = 5

[cache]
backend = "redis"
redis_url = "redis://cache:6379/1"

[chart]
theme = "dark"

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if !cfg.IsDevMode() {
		t.Error("expected dev mode")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.API.URL != "http://backend:8000" {
		t.Errorf("expected api url http://backend:8000, got %s", cfg.API.URL)
	}
	if cfg.APITimeout() != 5*time.Second {
		t.Errorf("expected api timeout 5s, got %s", cfg.APITimeout())
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisURL != "redis://cache:6379/1" {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Chart.Theme != "dark" {
		t.Errorf("expected chart theme dark, got %s", cfg.Chart.Theme)
	}
	// Untouched keys in a touched section keep their defaults
	if cfg.Chart.Height != 400 {
		t.Errorf("expected default chart height 400, got %d", cfg.Chart.Height)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFiles_MultipleFiles(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "base.toml")
	if err := os.WriteFile(base, []byte("[server]\nport = 3000\nhost = \"base-host\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	override := filepath.Join(dir, "override.toml")
	if err := os.WriteFile(override, []byte("[server]\nport = 4000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(base, override)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("expected port 4000 from override, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "base-host" {
		t.Errorf("expected host base-host from base, got %s", cfg.Server.Host)
	}
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/path/config.toml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromFiles_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(tomlPath, []byte("[server\nport = "), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromFiles(tomlPath)
	if err == nil {
		t.Fatal("expected error for invalid TOML")
	}
	if !strings.Contains(err.Error(), "file 1 of 1") {
		t.Errorf("expected file position in error, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	t.Setenv("INVEST_ENV", "dev")
	t.Setenv("INVEST_SERVER_PORT", "9999")
	t.Setenv("INVEST_SERVER_HOST", "env-host")
	t.Setenv("INVEST_API_URL", "http://custom-backend:8001/")
	t.Setenv("INVEST_API_TIMEOUT_SECONDS", "3")
	t.Setenv("INVEST_CACHE_BACKEND", "redis")
	t.Setenv("INVEST_REDIS_URL", "redis://env:6379/2")
	t.Setenv("INVEST_CHART_THEME", "dark")
	t.Setenv("INVEST_LOG_LEVEL", "error")

	applyEnvOverrides(cfg)

	if cfg.Environment != "dev" {
		t.Errorf("expected environment dev, got %s", cfg.Environment)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "env-host" {
		t.Errorf("expected host env-host, got %s", cfg.Server.Host)
	}
	if cfg.API.URL != "http://custom-backend:8001" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.API.URL)
	}
	if cfg.API.TimeoutSeconds != 3 {
		t.Errorf("expected timeout 3, got %d", cfg.API.TimeoutSeconds)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisURL != "redis://env:6379/2" {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Chart.Theme != "dark" {
		t.Errorf("expected chart theme dark, got %s", cfg.Chart.Theme)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected log level error, got %s", cfg.Logging.Level)
	}
}

func TestApplyEnvOverrides_InvalidPort(t *testing.T) {
	cfg := NewDefaultConfig()
	t.Setenv("INVEST_SERVER_PORT", "not-a-number")

	applyEnvOverrides(cfg)

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port to remain 8080, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFiles_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("INVEST_API_URL=http://dotenv:8000\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	// Register cleanup so the variable set by godotenv does not leak.
	t.Setenv("INVEST_API_URL", "")
	os.Unsetenv("INVEST_API_URL")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.API.URL != "http://dotenv:8000" {
		t.Errorf("expected api url from .env, got %s", cfg.API.URL)
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 7777, "flag-host", "http://flag:8000/")

	if cfg.Server.Port != 7777 {
		t.Errorf("expected port 7777, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "flag-host" {
		t.Errorf("expected host flag-host, got %s", cfg.Server.Host)
	}
	if cfg.API.URL != "http://flag:8000" {
		t.Errorf("expected api url http://flag:8000, got %s", cfg.API.URL)
	}
}

func TestApplyFlagOverrides_ZeroPortNoOverride(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 0, "", "")

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port to remain 8080, got %d", cfg.Server.Port)
	}
	if cfg.API.URL != "http://localhost:8000" {
		t.Errorf("expected api url to remain default, got %s", cfg.API.URL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"empty api url", func(c *Config) { c.API.URL = "" }, "api.url is required"},
		{"relative api url", func(c *Config) { c.API.URL = "backend:8000" }, "api.url must be"},
		{"ftp api url", func(c *Config) { c.API.URL = "ftp://backend" }, "api.url must be"},
		{"zero timeout", func(c *Config) { c.API.TimeoutSeconds = 0 }, "api.timeout_seconds"},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"redis without url", func(c *Config) { c.Cache.Backend = "redis"; c.Cache.RedisURL = "" }, "cache.redis_url"},
		{"unknown theme", func(c *Config) { c.Chart.Theme = "neon" }, "chart.theme"},
		{"zero height", func(c *Config) { c.Chart.Height = 0 }, "chart.height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			issues := cfg.Validate()
			if len(issues) == 0 {
				t.Fatalf("expected an issue containing %q, got none", tt.want)
			}
			found := false
			for _, issue := range issues {
				if strings.Contains(issue, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an issue containing %q, got %v", tt.want, issues)
			}
		})
	}
}
