package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bobmcallan/invest-portal/internal/app"
	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/config"
)

// backend is a canned market data API keyed by path.
type backend struct {
	mu     sync.Mutex
	bodies map[string]string
	hits   map[string]int
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.hits[r.URL.Path]++
	body, found := b.bodies[r.URL.Path]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !found {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": {"code": "NOT_FOUND", "message": "not found"}}`))
		return
	}
	w.Write([]byte(body))
}

func (b *backend) hitCount(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

func newTestApp(t *testing.T, mutate func(*config.Config)) (*app.App, *backend) {
	t.Helper()

	b := &backend{hits: map[string]int{}, bodies: map[string]string{
		"/health":                  `{"status": "ok", "service": "invest-api", "timestamp": "2026-10-15T00:00:00Z"}`,
		"/api/indices":             `{"success": true, "data": [{"symbol": "SPX", "name": "S&P 500", "component_count": 503}]}`,
		"/api/stocks/AAPL":         `{"success": true, "data": {"symbol": "AAPL", "name": "Apple Inc.", "exchange": "NMS"}}`,
		"/api/stocks/AAPL/history": `{"success": true, "data": [{"date": "2026-10-14", "open": 1, "high": 2, "low": 0.5, "close": 1.5, "volume": 100}]}`,
	}}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	cfg := config.NewDefaultConfig()
	cfg.API.URL = srv.URL
	cfg.Warmup.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}

	application, err := app.New(cfg, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}

	t.Cleanup(func() {
		application.Close()
	})

	return application, b
}

func do(srv *Server, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json, text/event-stream")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestRoutes_HealthEndpoint(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "GET", "/api/health", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %s", body["status"])
	}
}

func TestRoutes_VersionEndpoint(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "GET", "/api/version", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if _, ok := body["version"]; !ok {
		t.Error("expected version field in response")
	}
}

func TestRoutes_ServerHealthProbesBackend(t *testing.T) {
	application, b := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "GET", "/api/server-health", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if b.hitCount("/health") != 1 {
		t.Errorf("expected one backend health probe, got %d", b.hitCount("/health"))
	}
}

func TestRoutes_APINotFound(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "GET", "/api/nonexistent", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON 404, got %s", ct)
	}
}

func TestRoutes_HomePage(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "GET", "/", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	for _, want := range []string{"Thai US Invest", "/static/css/portal.css", "503 หุ้น"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected home page to contain %q", want)
		}
	}
}

func TestRoutes_UnknownPageRendersNotFound(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "GET", "/no/such/page", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("expected an HTML not-found page, got %s", w.Header().Get("Content-Type"))
	}
}

func TestRoutes_StockDetailUsesPathSymbol(t *testing.T) {
	application, b := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "GET", "/stocks/aapl", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if b.hitCount("/api/stocks/AAPL") != 1 {
		t.Errorf("expected the upper-cased symbol to reach the backend, hits: %d", b.hitCount("/api/stocks/AAPL"))
	}
}

func TestRoutes_StockDetailAllowsExternalLogo(t *testing.T) {
	application, b := newTestApp(t, nil)
	b.mu.Lock()
	b.bodies["/api/stocks/AAPL"] = `{"success": true, "data": {"symbol": "AAPL", "name": "Apple Inc.", "exchange": "NMS", "logo_url": "https://logo.clearbit.com/www.apple.com"}}`
	b.mu.Unlock()
	srv := New(application)

	w := do(srv, "GET", "/stocks/AAPL", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `<img src="https://logo.clearbit.com/www.apple.com"`) {
		t.Fatal("expected the logo image on the detail page")
	}

	var imgSrc []string
	for _, directive := range strings.Split(w.Header().Get("Content-Security-Policy"), ";") {
		fields := strings.Fields(directive)
		if len(fields) > 0 && fields[0] == "img-src" {
			imgSrc = fields[1:]
		}
	}
	allowed := false
	for _, source := range imgSrc {
		if source == "https:" || source == "https://logo.clearbit.com" {
			allowed = true
		}
	}
	if !allowed {
		t.Errorf("expected img-src to admit https logos, got %v", imgSrc)
	}
}

func TestRoutes_StockDetailPostFallsThroughToNotFound(t *testing.T) {
	application, b := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "POST", "/stocks/AAPL", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if b.hitCount("/api/stocks/AAPL") != 0 {
		t.Error("expected no backend call for a non-GET detail request")
	}
}

func TestRoutes_HistoryEndpoint(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "GET", "/api/stocks/AAPL/history?period=1y", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "2026-10-14") {
		t.Errorf("expected history rows, got %s", w.Body.String())
	}
}

func TestRoutes_StaticFiles(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "GET", "/static/js/portal.js", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestRoutes_MiddlewareApplied(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "GET", "/api/health", "")

	// Verify correlation ID middleware is applied
	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("expected X-Correlation-ID header from middleware")
	}

	// Verify CORS middleware is applied
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header from middleware")
	}

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected X-Content-Type-Options header from security middleware")
	}
	if !strings.Contains(w.Header().Get("Content-Security-Policy"), "s3.tradingview.com") {
		t.Error("expected CSP to admit the chart script host")
	}
}

func TestRoutes_MetricsEndpoint(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	do(srv, "GET", "/api/health", "")
	do(srv, "GET", "/stocks/AAPL", "")
	w := do(srv, "GET", "/metrics", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`invest_portal_http_requests_total{method="GET",route="/api/health",status="200"} 1`,
		`invest_portal_backend_requests_total{endpoint="stock",outcome="ok"}`,
		`invest_portal_query_cache_events_total{event="miss",resource="stock"}`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics to contain %s", want)
		}
	}
}

func TestRoutes_MetricsDisabled(t *testing.T) {
	application, _ := newTestApp(t, func(c *config.Config) { c.Metrics.Enabled = false })
	srv := New(application)

	w := do(srv, "GET", "/metrics", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRoutes_MCPEndpoint(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	initialize := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`
	w := do(srv, "POST", "/mcp", initialize)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "invest-portal") {
		t.Errorf("expected server info in initialize response, got %s", w.Body.String())
	}
}

func TestRoutes_MCPInfoPage(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "GET", "/mcp-info", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "get_stock_history") {
		t.Error("expected MCP page to list catalog tools")
	}
}

func TestRoutes_MCPDisabled(t *testing.T) {
	application, _ := newTestApp(t, func(c *config.Config) { c.MCP.Enabled = false })
	srv := New(application)

	if application.MCPHandler != nil {
		t.Fatal("expected no MCP handler when disabled")
	}

	w := do(srv, "GET", "/mcp", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestRoutes_Preflight(t *testing.T) {
	application, _ := newTestApp(t, nil)
	srv := New(application)

	w := do(srv, "OPTIONS", "/mcp", "")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for preflight, got %d", w.Code)
	}
}
