package models

import "github.com/guregu/null/v6"

// Analysis is a published Thai-language research note on a stock or ETF.
type Analysis struct {
	ID           null.Int   `json:"id"`
	Symbol       string     `json:"symbol"`
	SymbolType   string     `json:"symbol_type"`
	Title        string     `json:"title"`
	TitleTH      string     `json:"title_th"`
	SummaryTH    string     `json:"summary_th"`
	ContentTH    string     `json:"content_th"`
	TrendOpinion Trend      `json:"trend_opinion"`
	TargetPrice  null.Float `json:"target_price"`
	Author       string     `json:"author"`
	PublishedAt  string     `json:"published_at"`
}

// Symbol types an analysis can belong to.
const (
	SymbolTypeStock = "stock"
	SymbolTypeETF   = "etf"
)

// Empty reports whether the analysis carries no content. The backend answers
// {"data": null} when nothing is published for a symbol.
func (a *Analysis) Empty() bool {
	return a == nil || (a.ContentTH == "" && a.SummaryTH == "" && a.TitleTH == "" && a.Title == "")
}

// DisplayTitle prefers the Thai title when present.
func (a *Analysis) DisplayTitle() string {
	if a.TitleTH != "" {
		return a.TitleTH
	}
	return a.Title
}
