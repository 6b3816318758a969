// Package client talks to the market data REST backend.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/config"
	"github.com/bobmcallan/invest-portal/internal/models"
)

const maxBodyBytes = 8 << 20

// Recorder receives one observation per backend call.
type Recorder interface {
	BackendRequest(endpoint, outcome string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) BackendRequest(string, string, time.Duration) {}

// Client is a typed wrapper over the backend's /api routes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *common.Logger
	recorder   Recorder
}

// NewClient creates a client for baseURL with the given request timeout.
func NewClient(baseURL string, timeout time.Duration, logger *common.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		userAgent: config.UserAgent(),
		logger:    logger,
		recorder:  nopRecorder{},
	}
}

// SetRecorder installs the metrics hook.
func (c *Client) SetRecorder(r Recorder) {
	if r == nil {
		r = nopRecorder{}
	}
	c.recorder = r
}

// BaseURL returns the backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// param is one query-string pair. Pairs are emitted in slice order.
type param struct {
	key   string
	value string
}

// encodeParams builds a query string in the given order, skipping empty values.
func encodeParams(params ...param) string {
	var b strings.Builder
	for _, p := range params {
		if p.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

func itoa(n int) string { return strconv.Itoa(n) }

// symbolPath joins a path prefix, an escaped symbol and optional suffix.
func symbolPath(prefix, symbol, suffix string) string {
	return prefix + "/" + url.PathEscape(models.NormalizeSymbol(symbol)) + suffix
}

// get performs a GET and returns the body of a successful response.
func (c *Client) get(ctx context.Context, endpoint, path, query string) ([]byte, error) {
	target := c.baseURL + path
	if query != "" {
		target += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.BackendRequest(endpoint, "transport_error", time.Since(start))
		c.logger.Warn().Str("path", path).Err(err).Msg("backend request failed")
		return nil, fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	duration := time.Since(start)
	if err != nil {
		c.recorder.BackendRequest(endpoint, "read_error", duration)
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().Str("path", path).Int("status", resp.StatusCode).Dur("duration", duration).Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recorder.BackendRequest(endpoint, strconv.Itoa(resp.StatusCode), duration)
		apiErr := parseAPIError(resp.StatusCode, path, body)
		if resp.StatusCode != http.StatusNotFound {
			c.logger.Warn().Str("path", path).Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("backend error response")
		}
		return nil, apiErr
	}

	var head struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		c.recorder.BackendRequest(endpoint, "decode_error", duration)
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if head.Success != nil && !*head.Success {
		c.recorder.BackendRequest(endpoint, "unsuccessful", duration)
		return nil, parseAPIError(resp.StatusCode, path, body)
	}

	c.recorder.BackendRequest(endpoint, "ok", duration)
	return body, nil
}

// normalizer is a single record that can validate itself.
type normalizer[T any] interface {
	*T
	Normalize() bool
}

// getOne fetches a single-entity envelope. A record that fails
// normalisation is reported as not found.
func getOne[T any, PT normalizer[T]](ctx context.Context, c *Client, endpoint, path string) (*T, error) {
	body, err := c.get(ctx, endpoint, path, "")
	if err != nil {
		return nil, err
	}

	var env models.RawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if env.IsNull() {
		return nil, &APIError{Status: http.StatusNotFound, Path: path, Message: "empty response"}
	}

	v := new(T)
	if err := json.Unmarshal(env.Data, v); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", endpoint, err)
	}
	if !PT(v).Normalize() {
		return nil, &APIError{Status: http.StatusNotFound, Path: path, Message: "record has no symbol"}
	}
	return v, nil
}

// getList fetches a list envelope and repairs its pagination block.
func getList[T any, PT models.Row[T]](ctx context.Context, c *Client, endpoint, path, query string, page, perPage int) (*models.Page[T], error) {
	body, err := c.get(ctx, endpoint, path, query)
	if err != nil {
		return nil, err
	}

	var env models.ListEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", endpoint, err)
	}

	rows := env.Data
	received := len(rows)
	items := models.NormalizeRows[T, PT](rows)
	if items == nil {
		items = []T{}
	}
	return &models.Page[T]{
		Items: items,
		Meta:  env.Meta.Repair(page, perPage, received),
	}, nil
}

// Health probes the backend's /health route.
func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	body, err := c.get(ctx, "health", "/health", "")
	if err != nil {
		return nil, err
	}
	var h models.Health
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("failed to parse health: %w", err)
	}
	return &h, nil
}
