// Package chart builds the embedded third-party price chart shown on
// detail pages.
package chart

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
)

// Defaults for an embed when the caller leaves a field empty.
const (
	DefaultTheme    = "light"
	DefaultHeight   = 400
	DefaultLocale   = "th_TH"
	DefaultTimezone = "Asia/Bangkok"
	DefaultInterval = "D"
)

// ScriptURL is the provider's advanced chart loader.
const ScriptURL = "https://s3.tradingview.com/external-embedding/embed-widget-advanced-chart.js"

// Params selects what a chart shows.
type Params struct {
	Symbol   string
	Exchange string
	Theme    string
	Height   int
	Locale   string
	Timezone string
	Interval string
}

// Identity is the part of Params that requires a fresh embed when it changes.
type Identity struct {
	Symbol   string
	Exchange string
	Theme    string
	Height   int
}

// WithDefaults fills empty fields.
func (p Params) WithDefaults() Params {
	p.Symbol = strings.ToUpper(strings.TrimSpace(p.Symbol))
	p.Exchange = strings.TrimSpace(p.Exchange)
	if p.Theme != "dark" {
		p.Theme = DefaultTheme
	}
	if p.Height <= 0 {
		p.Height = DefaultHeight
	}
	if p.Locale == "" {
		p.Locale = DefaultLocale
	}
	if p.Timezone == "" {
		p.Timezone = DefaultTimezone
	}
	if p.Interval == "" {
		p.Interval = DefaultInterval
	}
	return p
}

// Identity returns the fields that decide whether a chart must be remounted.
func (p Params) Identity() Identity {
	p = p.WithDefaults()
	return Identity{Symbol: p.Symbol, Exchange: p.Exchange, Theme: p.Theme, Height: p.Height}
}

var exchangeNames = map[string]string{
	"NMS":    "NASDAQ",
	"NGM":    "NASDAQ",
	"NCM":    "NASDAQ",
	"NASDAQ": "NASDAQ",
	"NYQ":    "NYSE",
	"NYSE":   "NYSE",
	"ASE":    "AMEX",
	"AMEX":   "AMEX",
	"PCX":    "AMEX",
	"ARCA":   "AMEX",
}

// TickerID returns "EXCHANGE:SYMBOL" when exchange is known, otherwise the
// bare symbol.
func TickerID(symbol, exchange string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	ex := strings.ToUpper(strings.TrimSpace(exchange))
	if ex == "" {
		return symbol
	}
	if name, ok := exchangeNames[ex]; ok {
		ex = name
	}
	return ex + ":" + symbol
}

// Embed is one mounted chart: a container element and the provider
// script configured to fill it.
type Embed struct {
	ContainerID string
	ScriptURL   string
	Height      int
	Identity    Identity
	Config      map[string]any
}

// ConfigJSON returns the provider config for the page script.
func (e *Embed) ConfigJSON() template.JS {
	b, err := json.Marshal(e.Config)
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(b)
}

// Embedder creates and tears down chart embeds.
type Embedder interface {
	Mount(p Params) (*Embed, error)
	Unmount(e *Embed)
}

// TradingView is the Embedder for the TradingView advanced chart widget.
type TradingView struct{}

// Mount builds an embed with a fresh container id.
func (TradingView) Mount(p Params) (*Embed, error) {
	p = p.WithDefaults()
	if p.Symbol == "" {
		return nil, fmt.Errorf("chart symbol is required")
	}
	return &Embed{
		ContainerID: "tv-chart-" + uuid.NewString(),
		ScriptURL:   ScriptURL,
		Height:      p.Height,
		Identity:    p.Identity(),
		Config: map[string]any{
			"autosize":            true,
			"symbol":              TickerID(p.Symbol, p.Exchange),
			"interval":            p.Interval,
			"timezone":            p.Timezone,
			"theme":               p.Theme,
			"style":               "1",
			"locale":              p.Locale,
			"enable_publishing":   false,
			"allow_symbol_change": true,
			"calendar":            false,
			"support_host":        "https://www.tradingview.com",
		},
	}, nil
}

// Unmount releases nothing server-side; the page script clears the
// container before each injection.
func (TradingView) Unmount(*Embed) {}
