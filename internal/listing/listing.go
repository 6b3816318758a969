// Package listing holds the paging, sorting and filtering state of the
// index component lists and renders it to and from URLs.
package listing

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/bobmcallan/invest-portal/internal/client"
)

// SortOption is one entry of the sort selector.
type SortOption struct {
	Value string
	Label string
	Sort  string
	Order string
}

// SortOptions is the closed set of sort choices, default first.
var SortOptions = []SortOption{
	{"weight_desc", "Market Cap (High-Low)", "weight", "desc"},
	{"name_asc", "Alphabet (A-Z)", "name", "asc"},
	{"change_desc", "Price Change (Best)", "change", "desc"},
	{"change_asc", "Price Change (Worst)", "change", "asc"},
	{"trend_desc", "Trend", "trend", "desc"},
}

// DefaultSort is the option used when none or an unknown one is given.
const DefaultSort = "weight_desc"

// LookupSort returns the option for value, falling back to the default.
func LookupSort(value string) SortOption {
	for _, o := range SortOptions {
		if o.Value == value {
			return o
		}
	}
	return SortOptions[0]
}

// Sectors are the sector filters offered on list pages.
var Sectors = []string{
	"Technology",
	"Healthcare",
	"Financial Services",
	"Consumer Cyclical",
	"Consumer Defensive",
	"Energy",
	"Utilities",
	"Real Estate",
	"Communication Services",
	"Industrials",
	"Basic Materials",
}

// ValidSector reports whether s is one of Sectors.
func ValidSector(s string) bool {
	for _, v := range Sectors {
		if v == s {
			return true
		}
	}
	return false
}

// List views.
const (
	ViewList = "list"
	ViewCard = "card"
)

// State is the list position a page was asked for.
type State struct {
	Page   int
	Sort   string
	Sector string
	View   string
}

// Default returns the initial list state.
func Default() State {
	return State{Page: 1, Sort: DefaultSort, View: ViewList}
}

// Parse reads state from URL query values. Invalid values fall back to
// their defaults.
func Parse(q url.Values) State {
	s := Default()
	if p, err := strconv.Atoi(strings.TrimSpace(q.Get("page"))); err == nil && p > 0 {
		s.Page = p
	}
	s.Sort = LookupSort(q.Get("sort")).Value
	if sector := q.Get("sector"); ValidSector(sector) {
		s.Sector = sector
	}
	if q.Get("view") == ViewCard {
		s.View = ViewCard
	}
	return s
}

// WithSort changes the sort and returns to the first page.
func (s State) WithSort(value string) State {
	s.Sort = LookupSort(value).Value
	s.Page = 1
	return s
}

// WithSector changes the sector filter and returns to the first page.
// An unknown sector clears the filter.
func (s State) WithSector(sector string) State {
	if !ValidSector(sector) {
		sector = ""
	}
	s.Sector = sector
	s.Page = 1
	return s
}

// WithPage moves to page p, never below 1.
func (s State) WithPage(p int) State {
	if p < 1 {
		p = 1
	}
	s.Page = p
	return s
}

// WithView switches between list and card views.
func (s State) WithView(v string) State {
	if v != ViewCard {
		v = ViewList
	}
	s.View = v
	return s
}

// SortOption returns the selected sort.
func (s State) SortOption() SortOption { return LookupSort(s.Sort) }

// Query is the backend request for this state.
func (s State) Query(perPage int) client.ComponentsQuery {
	o := s.SortOption()
	return client.ComponentsQuery{
		Page:    s.Page,
		PerPage: perPage,
		Sort:    o.Sort,
		Order:   o.Order,
		Sector:  s.Sector,
	}
}

// URL renders a link to base for this state. Default values are omitted.
func (s State) URL(base string) string {
	v := url.Values{}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	if s.Sort != "" && s.Sort != DefaultSort {
		v.Set("sort", s.Sort)
	}
	if s.Sector != "" {
		v.Set("sector", s.Sector)
	}
	if s.View == ViewCard {
		v.Set("view", ViewCard)
	}
	if len(v) == 0 {
		return base
	}
	return base + "?" + v.Encode()
}
