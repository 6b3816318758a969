// Package models holds the typed records returned by the market data backend.
package models

import (
	"slices"

	"github.com/guregu/null/v6"
)

// Stock is the descriptive profile of a listed company.
type Stock struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	NameTH        string   `json:"name_th"`
	Sector        string   `json:"sector"`
	Industry      string   `json:"industry"`
	Description   string   `json:"description"`
	DescriptionTH string   `json:"description_th"`
	LogoURL       string   `json:"logo_url"`
	Website       string   `json:"website"`
	Exchange      string   `json:"exchange"`
	Country       string   `json:"country"`
	CEO           string   `json:"ceo"`
	Employees     null.Int `json:"employees"`
	Headquarters  string   `json:"headquarters"`
	FoundedYear   null.Int `json:"founded_year"`
}

// Normalize upper-cases the symbol and reports whether the record is usable.
func (s *Stock) Normalize() bool {
	s.Symbol = NormalizeSymbol(s.Symbol)
	return s.Symbol != ""
}

// DisplayName prefers the Thai name when present.
func (s *Stock) DisplayName() string {
	if s.NameTH != "" {
		return s.NameTH
	}
	return s.Name
}

// Quote is the latest price and valuation snapshot for a symbol.
type Quote struct {
	Symbol        string     `json:"symbol"`
	Price         null.Float `json:"price"`
	ChangeAmount  null.Float `json:"change_amount"`
	ChangePercent null.Float `json:"change_percent"`
	OpenPrice     null.Float `json:"open_price"`
	HighPrice     null.Float `json:"high_price"`
	LowPrice      null.Float `json:"low_price"`
	Volume        null.Float `json:"volume"`
	MarketCap     null.Float `json:"market_cap"`
	PERatio       null.Float `json:"pe_ratio"`
	EPS           null.Float `json:"eps"`
	Week52High    null.Float `json:"week_52_high"`
	Week52Low     null.Float `json:"week_52_low"`
	AvgVolume10d  null.Float `json:"avg_volume_10d"`
	DividendYield null.Float `json:"dividend_yield"`
	SMA50         null.Float `json:"sma_50"`
	SMA200        null.Float `json:"sma_200"`
	Trend         Trend      `json:"trend"`
	UpdatedAt     string     `json:"updated_at"`
}

// Normalize upper-cases the symbol and reports whether the record is usable.
func (q *Quote) Normalize() bool {
	q.Symbol = NormalizeSymbol(q.Symbol)
	return q.Symbol != ""
}

// StockListItem is one row of a stock list or search result.
type StockListItem struct {
	Symbol        string     `json:"symbol"`
	Name          string     `json:"name"`
	NameTH        string     `json:"name_th"`
	Sector        string     `json:"sector"`
	Price         null.Float `json:"price"`
	ChangePercent null.Float `json:"change_percent"`
	Trend         Trend      `json:"trend"`
}

func (s *StockListItem) Normalize() bool {
	s.Symbol = NormalizeSymbol(s.Symbol)
	return s.Symbol != ""
}

// Key identifies the record within a list.
func (s *StockListItem) Key() string { return s.Symbol }

// PriceBar is one daily OHLCV row of a symbol's history.
type PriceBar struct {
	Date   string     `json:"date"`
	Open   null.Float `json:"open"`
	High   null.Float `json:"high"`
	Low    null.Float `json:"low"`
	Close  null.Float `json:"close"`
	Volume null.Float `json:"volume"`
}

// Periods are the history windows the backend accepts, shortest first.
var Periods = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "max"}

// DefaultPeriod is the history window used when none is requested.
const DefaultPeriod = "1y"

// ValidPeriod reports whether p is a history window the backend accepts.
func ValidPeriod(p string) bool {
	return slices.Contains(Periods, p)
}
