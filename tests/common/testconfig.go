// Package common holds the shared harness for the browser and integration
// suites: test configuration, a chromedp browser, and containers.
package common

import (
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// TestConfig is read from tests/ui/test_config.toml when present.
type TestConfig struct {
	Results struct {
		Dir string `toml:"dir"`
	} `toml:"results"`
	Server struct {
		URL string `toml:"url"`
	} `toml:"server"`
	Browser struct {
		Headless    bool `toml:"headless"`
		TimeoutSecs int  `toml:"timeout_seconds"`
	} `toml:"browser"`
}

var (
	globalConfig     *TestConfig
	globalConfigOnce sync.Once
	resultsDir       string
	resultsDirOnce   sync.Once
)

func LoadTestConfig() *TestConfig {
	globalConfigOnce.Do(func() {
		globalConfig = &TestConfig{}
		globalConfig.Results.Dir = "tests/results"
		globalConfig.Server.URL = "http://localhost:8080"
		globalConfig.Browser.Headless = true
		globalConfig.Browser.TimeoutSecs = 30

		configPaths := []string{
			"tests/ui/test_config.toml",
			"test_config.toml",
		}

		for _, path := range configPaths {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if err := toml.Unmarshal(data, globalConfig); err == nil {
				return
			}
		}
	})
	return globalConfig
}

// GetTestURL returns the portal under test. INVEST_TEST_URL wins over the
// config file.
func GetTestURL() string {
	if url := os.Getenv("INVEST_TEST_URL"); url != "" {
		return url
	}
	return LoadTestConfig().Server.URL
}

// RequirePortal skips t unless the portal under test answers /api/health.
func RequirePortal(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("browser tests skipped in -short mode")
	}

	base := GetTestURL()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(base + "/api/health")
	if err != nil {
		t.Skipf("portal not reachable at %s: %v", base, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Skipf("portal at %s unhealthy: status %d", base, resp.StatusCode)
	}
	return base
}

// GetResultsDir returns a per-run directory for screenshots.
func GetResultsDir() string {
	if dir := os.Getenv("INVEST_TEST_RESULTS_DIR"); dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			return abs
		}
		return dir
	}

	resultsDirOnce.Do(func() {
		base := LoadTestConfig().Results.Dir
		if !filepath.IsAbs(base) {
			base = filepath.Join(FindProjectRoot(), base)
		}
		resultsDir = filepath.Join(base, time.Now().Format("2006-01-02-15-04-05"))
		os.MkdirAll(resultsDir, 0755)
	})
	return resultsDir
}

func GetScreenshotDir(subdir string) string {
	dir := filepath.Join(GetResultsDir(), subdir)
	os.MkdirAll(dir, 0755)
	return dir
}

// FindProjectRoot walks up from the working directory to the go.mod.
func FindProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
