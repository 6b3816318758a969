package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, common.NewSilentLogger())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestComponentsQuery_EncodeOrder(t *testing.T) {
	q := ComponentsQuery{Sector: "Technology", Sort: "change", Order: "asc", Page: 2, PerPage: 50}
	want := "page=2&per_page=50&sort=change&order=asc&sector=Technology"
	if got := q.Encode(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestComponentsQuery_Defaults(t *testing.T) {
	want := "page=1&per_page=50&sort=weight&order=desc"
	if got := (ComponentsQuery{}).Encode(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestComponentsQuery_EscapesValues(t *testing.T) {
	q := ComponentsQuery{Sector: "Consumer Cyclical", Search: "a&b"}
	got := q.Encode()
	if !strings.HasSuffix(got, "&sector=Consumer+Cyclical&search=a%26b") {
		t.Errorf("expected escaped filters, got %q", got)
	}
}

func TestListIndexComponents_RequestAndMeta(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/indices/SPX/components" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.RawQuery != "page=2&per_page=50&sort=change&order=asc&sector=Technology" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("expected JSON accept header, got %q", r.Header.Get("Accept"))
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "invest-portal/") {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		writeJSON(w, http.StatusOK, `{
			"success": true,
			"data": [
				{"symbol": "aapl", "name": "Apple Inc.", "price": 189.5, "change_percent": 1.2, "trend": "uptrend", "weight": 7.1},
				{"symbol": "", "name": "broken"},
				{"symbol": "AAPL", "name": "duplicate"},
				{"symbol": "MSFT", "name": "Microsoft", "price": null, "trend": null}
			],
			"meta": {"total": 75, "page": 2, "per_page": 50, "total_pages": 2}
		}`)
	})

	page, err := c.ListIndexComponents(context.Background(), "spx", ComponentsQuery{
		Page: 2, PerPage: 50, Sort: "change", Order: "asc", Sector: "Technology",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 normalised rows, got %d", len(page.Items))
	}
	if page.Items[0].Symbol != "AAPL" || page.Items[0].Name != "Apple Inc." {
		t.Errorf("unexpected first row %+v", page.Items[0])
	}
	if page.Items[1].Price.Valid {
		t.Error("expected null price to stay null")
	}
	if page.Items[1].Trend != models.TrendNone {
		t.Errorf("expected null trend to be none, got %q", page.Items[1].Trend)
	}
	if page.Meta.TotalPages != 2 || page.Meta.Page != 2 {
		t.Errorf("unexpected meta %+v", page.Meta)
	}
}

func TestListStocks_MissingMetaRepaired(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "page=1&per_page=20" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		writeJSON(w, http.StatusOK, `{"success": true, "data": [{"symbol": "AAPL"}, {"symbol": "MSFT"}]}`)
	})

	page, err := c.ListStocks(context.Background(), StocksQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Meta.Total != 2 || page.Meta.TotalPages != 1 || page.Meta.PerPage != 20 {
		t.Errorf("unexpected repaired meta %+v", page.Meta)
	}
}

func TestGetStock_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"detail": {"code": "NOT_FOUND", "message": "Stock 'ZZZZ' not found"}}`)
	})

	_, err := c.GetStock(context.Background(), "zzzz")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Code != "NOT_FOUND" || apiErr.Message != "Stock 'ZZZZ' not found" {
		t.Errorf("unexpected parsed error %+v", apiErr)
	}
	if apiErr.Path != "/api/stocks/ZZZZ" {
		t.Errorf("unexpected path %s", apiErr.Path)
	}
}

func TestParseAPIError_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		code    string
		message string
	}{
		{"error envelope", `{"success":false,"error":{"code":"RATE_LIMITED","message":"slow down"}}`, "RATE_LIMITED", "slow down"},
		{"detail object", `{"detail":{"code":"VALIDATION_ERROR","message":"bad period"}}`, "VALIDATION_ERROR", "bad period"},
		{"detail string", `{"detail":"Index 'XYZ' not found"}`, "", "Index 'XYZ' not found"},
		{"plain text", `Internal Server Error`, "", ""},
		{"empty", ``, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := parseAPIError(500, "/api/x", []byte(tt.body))
			if e.Code != tt.code || e.Message != tt.message {
				t.Errorf("expected (%q, %q), got (%q, %q)", tt.code, tt.message, e.Code, e.Message)
			}
			if e.Error() == "" {
				t.Error("expected non-empty error string")
			}
		})
	}
}

func TestGet_UnsuccessfulEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success": false, "error": {"code": "UPSTREAM", "message": "yahoo unavailable"}}`)
	})

	_, err := c.GetStockQuote(context.Background(), "AAPL")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "yahoo unavailable" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("expected non-404 not to match ErrNotFound")
	}
}

func TestGetStockQuote_Nullable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stocks/BRK.B/quote" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"success": true, "data": {"symbol": "BRK.B", "price": 410.2, "pe_ratio": null, "trend": "downtrend"}}`)
	})

	q, err := c.GetStockQuote(context.Background(), " brk.b ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.PERatio.Valid {
		t.Error("expected pe_ratio null")
	}
	if q.Trend != models.TrendDown {
		t.Errorf("expected downtrend, got %q", q.Trend)
	}
}

func TestGetStockAnalysis_NullData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success": true, "data": null}`)
	})

	a, err := c.GetStockAnalysis(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != nil {
		t.Errorf("expected nil analysis, got %+v", a)
	}
}

func TestGetETFAnalysis_Present(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/etfs/SPY/analysis" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"success": true, "data": {"symbol": "spy", "title_th": "บทวิเคราะห์ SPY", "content_th": "เนื้อหา", "author": "ทีมวิเคราะห์", "target_price": 520}}`)
	})

	a, err := c.GetETFAnalysis(context.Background(), "SPY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == nil || a.Symbol != "SPY" || a.Author != "ทีมวิเคราะห์" {
		t.Errorf("unexpected analysis %+v", a)
	}
	if !a.TargetPrice.Valid || a.TargetPrice.Float64 != 520 {
		t.Errorf("unexpected target price %+v", a.TargetPrice)
	}
}

func TestGetStockHistory_InvalidPeriodFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("period") != "1y" {
			t.Errorf("expected period 1y, got %s", r.URL.Query().Get("period"))
		}
		writeJSON(w, http.StatusOK, `{"success": true, "data": [{"date": "2024-01-02", "close": 185.6}]}`)
	})

	bars, err := c.GetStockHistory(context.Background(), "AAPL", "10y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 || bars[0].Close.Float64 != 185.6 {
		t.Errorf("unexpected bars %+v", bars)
	}
}

func TestGetETFHoldings_LimitAndNormalise(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "limit=2" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		writeJSON(w, http.StatusOK, `{"success": true, "data": [
			{"holding_symbol": "aapl", "holding_name": "Apple", "weight": 7.0},
			{"holding_symbol": "", "holding_name": ""},
			{"holding_symbol": "msft", "holding_name": "Microsoft", "weight": 6.5},
			{"holding_symbol": "nvda", "holding_name": "NVIDIA", "weight": 6.1}
		]}`)
	})

	holdings, err := c.GetETFHoldings(context.Background(), "spy", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holdings) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(holdings))
	}
	if holdings[0].HoldingSymbol != "AAPL" || holdings[1].HoldingSymbol != "MSFT" {
		t.Errorf("unexpected holdings %+v", holdings)
	}
}

func TestListETFs_Category(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "page=3&per_page=20&category=Large+Blend" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		writeJSON(w, http.StatusOK, `{"success": true, "data": [], "meta": {"total": 41, "page": 3, "per_page": 20, "total_pages": 3}}`)
	})

	page, err := c.ListETFs(context.Background(), ETFsQuery{Page: 3, Category: "Large Blend"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !page.Empty() {
		t.Error("expected empty page")
	}
	if page.Items == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestSearch(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		if r.URL.Query().Get("q") != "apple" || r.URL.Query().Get("type") != "all" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		writeJSON(w, http.StatusOK, `{"success": true, "data": {"stocks": [{"symbol": "aapl", "type": "stock"}], "etfs": null}}`)
	})

	res, err := c.Search(context.Background(), "  apple ", "bogus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total() != 1 || res.Stocks[0].Symbol != "AAPL" {
		t.Errorf("unexpected result %+v", res)
	}
	if res.ETFs == nil {
		t.Error("expected empty ETF slice, not nil")
	}

	empty, err := c.Search(context.Background(), "   ", "all")
	if err != nil || empty.Total() != 0 {
		t.Errorf("expected empty result for blank query, got %+v, %v", empty, err)
	}
	if calls != 1 {
		t.Errorf("expected blank query not to call backend, got %d calls", calls)
	}
}

func TestNormalizeSearchQuery_Cap(t *testing.T) {
	long := strings.Repeat("ก", 60)
	got := NormalizeSearchQuery(long)
	if len([]rune(got)) != 50 {
		t.Errorf("expected 50 runes, got %d", len([]rune(got)))
	}
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, `{"status": "healthy", "service": "thai-us-invest-api"}`)
	})

	h, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Status != "healthy" {
		t.Errorf("expected healthy, got %s", h.Status)
	}
}

func TestGet_BackendUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second, common.NewSilentLogger())

	_, err := c.ListIndices(context.Background())
	if err == nil {
		t.Fatal("expected error for unreachable backend")
	}
	if !strings.Contains(err.Error(), "failed to reach backend") {
		t.Errorf("unexpected error: %v", err)
	}
}

type recordedCall struct {
	endpoint, outcome string
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeRecorder) BackendRequest(endpoint, outcome string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{endpoint, outcome})
}

func TestRecorder_Outcomes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/quote") {
			writeJSON(w, http.StatusServiceUnavailable, `{"detail":"down"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"success": true, "data": {"symbol": "AAPL"}}`)
	})
	rec := &fakeRecorder{}
	c.SetRecorder(rec)

	c.GetStock(context.Background(), "AAPL")
	c.GetStockQuote(context.Background(), "AAPL")

	want := []recordedCall{{"stock", "ok"}, {"quote", "503"}}
	if len(rec.calls) != len(want) {
		t.Fatalf("expected %d calls, got %+v", len(want), rec.calls)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("call %d: expected %+v, got %+v", i, want[i], rec.calls[i])
		}
	}
}
