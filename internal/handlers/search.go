package handlers

import (
	"net/http"

	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/bobmcallan/invest-portal/internal/models"
)

type searchData struct {
	Query     string
	Type      string
	Types     []searchType
	Searched  bool
	Failed    bool
	Stocks    []models.SearchItem
	ETFs      []models.SearchItem
	NoResults bool
}

type searchType struct {
	Value    string
	Label    string
	Selected bool
}

// SearchHandler serves the search page.
type SearchHandler struct {
	pages  *Pages
	market *market.Service
}

// NewSearchHandler creates a new search page handler.
func NewSearchHandler(pages *Pages, svc *market.Service) *SearchHandler {
	return &SearchHandler{pages: pages, market: svc}
}

// ServeHTTP handles GET /search?q=&type=. An empty query renders the prompt
// without calling the backend.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	q := client.NormalizeSearchQuery(r.URL.Query().Get("q"))
	kind := models.ParseSearchType(r.URL.Query().Get("type"))

	data := searchData{Query: q, Type: kind}
	for _, t := range []struct{ value, label string }{
		{models.SearchAll, "ทั้งหมด"},
		{models.SearchStock, "หุ้น"},
		{models.SearchETF, "ETF"},
	} {
		data.Types = append(data.Types, searchType{Value: t.value, Label: t.label, Selected: t.value == kind})
	}

	if q != "" {
		data.Searched = true
		st := h.market.Search(r.Context(), q, kind)
		switch {
		case st.HasData():
			data.Stocks = st.Data.Stocks
			data.ETFs = st.Data.ETFs
			data.NoResults = st.Data.Total() == 0
		default:
			data.Failed = true
		}
	}

	h.pages.Render(w, r, http.StatusOK, "search.html", Page{Active: "search", Query: q, Data: data})
}
