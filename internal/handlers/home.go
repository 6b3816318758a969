package handlers

import (
	"net/http"
	"strconv"

	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/bobmcallan/invest-portal/internal/models"
)

// homeCard is one of the three entry cards on the landing page.
type homeCard struct {
	Title    string
	NameTH   string
	Count    string
	Blurb    string
	Href     string
	Color    string
	Button   string
	TextDark bool
}

type homeData struct {
	Cards []homeCard
}

// HomeHandler serves the landing page.
type HomeHandler struct {
	pages  *Pages
	market *market.Service
}

// NewHomeHandler creates a new landing page handler.
func NewHomeHandler(pages *Pages, svc *market.Service) *HomeHandler {
	return &HomeHandler{pages: pages, market: svc}
}

// ServeHTTP handles GET /. Any other unmatched page path renders not-found.
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.pages.NotFound(w, r)
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	counts := map[string]int{models.IndexSP500: 500, models.IndexNasdaq100: 100}
	if st := h.market.Indices(r.Context()); st.HasData() {
		for _, idx := range st.Data {
			if _, ok := counts[idx.Symbol]; ok && idx.ComponentCount.Valid && idx.ComponentCount.Int64 > 0 {
				counts[idx.Symbol] = int(idx.ComponentCount.Int64)
			}
		}
	}

	data := homeData{Cards: []homeCard{
		{
			Title:  "S&P 500",
			NameTH: "ดัชนี S&P 500",
			Count:  strconv.Itoa(counts[models.IndexSP500]) + " หุ้น",
			Blurb:  "หุ้น 500 บริษัทขนาดใหญ่ที่สุดของสหรัฐ",
			Href:   "/sp500",
			Color:  "bg-primary",
			Button: "btn-light",
		},
		{
			Title:    "Nasdaq 100",
			NameTH:   "ดัชนี Nasdaq 100",
			Count:    strconv.Itoa(counts[models.IndexNasdaq100]) + " หุ้น",
			Blurb:    "หุ้นเทคโนโลยีชั้นนำที่สุดของโลก",
			Href:     "/nasdaq100",
			Color:    "bg-secondary",
			Button:   "btn-dark",
			TextDark: true,
		},
		{
			Title:    "Top 50 ETF",
			NameTH:   "กองทุน ETF ยอดนิยม",
			Count:    strconv.Itoa(client.TopETFCount) + " กองทุน",
			Blurb:    "ETF ที่นักลงทุนทั่วโลกนิยมมากที่สุด",
			Href:     "/etfs",
			Color:    "bg-yellow",
			Button:   "btn-dark",
			TextDark: true,
		},
	}}

	h.pages.Render(w, r, http.StatusOK, "home.html", Page{Active: "home", Data: data})
}
