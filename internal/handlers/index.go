package handlers

import (
	"net/http"

	"github.com/bobmcallan/invest-portal/internal/client"
	"github.com/bobmcallan/invest-portal/internal/common"
	"github.com/bobmcallan/invest-portal/internal/listing"
	"github.com/bobmcallan/invest-portal/internal/market"
	"github.com/bobmcallan/invest-portal/internal/models"
	"github.com/bobmcallan/invest-portal/internal/query"
)

// IndexPage describes one index component listing page.
type IndexPage struct {
	Symbol              string
	Path                string
	Title               string
	FallbackName        string
	FallbackDescription string
	Color               string
	ViewToggle          bool
}

// SP500Page and Nasdaq100Page are the two index listings.
var (
	SP500Page = IndexPage{
		Symbol:              models.IndexSP500,
		Path:                "/sp500",
		Title:               "S&P 500",
		FallbackName:        "ดัชนี S&P 500",
		FallbackDescription: "ดัชนีหุ้น 500 บริษัทขนาดใหญ่ที่สุดของสหรัฐอเมริกา",
		Color:               "bg-primary",
	}
	Nasdaq100Page = IndexPage{
		Symbol:              models.IndexNasdaq100,
		Path:                "/nasdaq100",
		Title:               "Nasdaq 100",
		FallbackName:        "ดัชนี Nasdaq 100",
		FallbackDescription: "ดัชนีหุ้น 100 บริษัทเทคโนโลยีชั้นนำที่จดทะเบียนใน Nasdaq",
		Color:               "bg-secondary",
		ViewToggle:          true,
	}
)

type sortChoice struct {
	Value    string
	Label    string
	Selected bool
}

type sectorChoice struct {
	Value    string
	Selected bool
}

type indexData struct {
	Page       IndexPage
	Name       string
	Desc       string
	State      listing.State
	Sorts      []sortChoice
	Sectors    []sectorChoice
	Items      []models.IndexComponent
	Total      int
	Failed     bool
	Pagination listing.Pagination
	ListURL    string
	CardURL    string
}

// IndexHandler serves an index component listing with sort, sector filter,
// pagination and, where enabled, a list/card view toggle.
type IndexHandler struct {
	pages  *Pages
	market *market.Service
	logger *common.Logger
	index  IndexPage
}

// NewIndexHandler creates a listing handler for idx.
func NewIndexHandler(pages *Pages, svc *market.Service, logger *common.Logger, idx IndexPage) *IndexHandler {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &IndexHandler{pages: pages, market: svc, logger: logger, index: idx}
}

// ServeHTTP handles GET /sp500 and GET /nasdaq100. The query string is
// forwarded to the backend as-is; returned rows are never re-sorted.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()
	state := listing.Parse(r.URL.Query())
	if !h.index.ViewToggle {
		state.View = listing.ViewList
	}
	q := state.Query(client.DefaultComponentsPerPage)

	components := query.NewObserver[*models.Page[models.IndexComponent]](h.market.Queries())
	defer components.Close()
	components.Observe(ctx, market.ComponentsKey(h.index.Symbol, q), h.market.ComponentsFetcher(h.index.Symbol, q))

	idx := h.market.Index(ctx, h.index.Symbol)
	st := components.Wait(ctx)

	data := indexData{
		Page:    h.index,
		Name:    h.index.FallbackName,
		Desc:    h.index.FallbackDescription,
		State:   state,
		ListURL: state.WithView(listing.ViewList).URL(h.index.Path),
		CardURL: state.WithView(listing.ViewCard).URL(h.index.Path),
	}
	if idx.HasData() {
		if idx.Data.NameTH != "" {
			data.Name = idx.Data.NameTH
		}
		if idx.Data.DescriptionTH != "" {
			data.Desc = idx.Data.DescriptionTH
		}
	}
	for _, o := range listing.SortOptions {
		data.Sorts = append(data.Sorts, sortChoice{Value: o.Value, Label: o.Label, Selected: o.Value == state.Sort})
	}
	for _, s := range listing.Sectors {
		data.Sectors = append(data.Sectors, sectorChoice{Value: s, Selected: s == state.Sector})
	}

	if st.HasData() {
		data.Items = st.Data.Items
		data.Total = st.Data.Meta.Total
		data.Pagination = listing.NewPagination(st.Data.Meta, state, h.index.Path)
	} else {
		data.Failed = true
		h.logger.Warn().Str("index", h.index.Symbol).Str("key", st.Key.String()).Err(st.Err).Msg("components unavailable")
	}

	h.pages.Render(w, r, http.StatusOK, "index.html", Page{
		Title:  h.index.Title + " | " + SiteTitle,
		Active: h.index.Path,
		Data:   data,
	})
}
