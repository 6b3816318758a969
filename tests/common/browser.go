package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

type BrowserConfig struct {
	Headless bool
	Timeout  time.Duration
}

func DefaultBrowserConfig() *BrowserConfig {
	cfg := LoadTestConfig()
	timeout := time.Duration(cfg.Browser.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BrowserConfig{
		Headless: cfg.Browser.Headless,
		Timeout:  timeout,
	}
}

func NewBrowserContext(cfg *BrowserConfig) (context.Context, context.CancelFunc) {
	if cfg == nil {
		cfg = DefaultBrowserConfig()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)
	ctx, timeoutCancel := context.WithTimeout(ctx, cfg.Timeout)

	cancel := func() {
		timeoutCancel()
		ctxCancel()
		allocCancel()
	}
	return ctx, cancel
}

// JSErrorCollector records exceptions and console.error calls. Create it
// before navigating. Errors raised inside the third-party chart iframe are
// not visible to the page and never collected.
type JSErrorCollector struct {
	mu     sync.Mutex
	errors []string
}

func NewJSErrorCollector(ctx context.Context) *JSErrorCollector {
	c := &JSErrorCollector{}

	chromedp.ListenTarget(ctx, func(ev any) {
		c.mu.Lock()
		defer c.mu.Unlock()

		switch e := ev.(type) {
		case *runtime.EventExceptionThrown:
			desc := e.ExceptionDetails.Text
			if e.ExceptionDetails.Exception != nil && e.ExceptionDetails.Exception.Description != "" {
				desc = e.ExceptionDetails.Exception.Description
			}
			c.errors = append(c.errors, fmt.Sprintf("EXCEPTION: %s", desc))

		case *runtime.EventConsoleAPICalled:
			if e.Type != runtime.APITypeError {
				return
			}
			var parts []string
			for _, arg := range e.Args {
				if arg.Value != nil {
					parts = append(parts, string(arg.Value))
				} else if arg.Description != "" {
					parts = append(parts, arg.Description)
				}
			}
			msg := strings.Join(parts, " ")
			if msg != "" && !strings.Contains(msg, "favicon") {
				c.errors = append(c.errors, fmt.Sprintf("console.error: %s", msg))
			}
		}
	})

	return c
}

func (c *JSErrorCollector) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.errors))
	copy(out, c.errors)
	return out
}

func NavigateAndWait(ctx context.Context, url string, waitMs int) error {
	if waitMs == 0 {
		waitMs = 800
	}
	return chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.Sleep(time.Duration(waitMs)*time.Millisecond),
	)
}

func Exists(ctx context.Context, selector string) (bool, error) {
	var exists bool
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`document.querySelector('%s') !== null`, escJS(selector)), &exists),
	)
	return exists, err
}

func ElementCount(ctx context.Context, selector string) (int, error) {
	var count int
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll('%s').length`, escJS(selector)), &count),
	)
	return count, err
}

func TextContains(ctx context.Context, selector, expected string) (bool, string, error) {
	var actual string
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector('%s');
				return el ? el.textContent.trim() : '';
			})()
		`, escJS(selector)), &actual),
	)
	if err != nil {
		return false, "", err
	}
	return strings.Contains(actual, expected), actual, nil
}

// Location returns the page's current URL.
func Location(ctx context.Context) (string, error) {
	var loc string
	err := chromedp.Run(ctx, chromedp.Location(&loc))
	return loc, err
}

func Screenshot(ctx context.Context, path string) error {
	var buf []byte
	if err := chromedp.Run(ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// TakeScreenshot saves a screenshot under the run's results directory and
// logs, rather than fails, when capture does not work.
func TakeScreenshot(t *testing.T, ctx context.Context, subdir, name string) {
	t.Helper()
	path := filepath.Join(GetScreenshotDir(subdir), name)
	if err := Screenshot(ctx, path); err != nil {
		t.Logf("screenshot %s failed: %v", name, err)
	}
}

func escJS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}
