package models

import "encoding/json"

// Envelope is the backend's single-entity response: {success, data}.
type Envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// ListEnvelope is the backend's paginated response: {success, data, meta}.
type ListEnvelope[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
	Meta    Meta `json:"meta"`
}

// RawEnvelope defers decoding of data so null can be told apart from a value.
type RawEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// IsNull reports whether data was absent or JSON null.
func (e *RawEnvelope) IsNull() bool {
	return len(e.Data) == 0 || string(e.Data) == "null"
}

// Meta is the pagination block of a list response.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// Repair fills in a meta block the backend omitted or left inconsistent,
// using the request's page and per-page values and the number of rows received.
func (m Meta) Repair(page, perPage, rows int) Meta {
	if m.Page < 1 {
		m.Page = page
	}
	if m.Page < 1 {
		m.Page = 1
	}
	if m.PerPage < 1 {
		m.PerPage = perPage
	}
	if m.Total < 0 {
		m.Total = 0
	}
	if m.Total == 0 && rows > 0 {
		m.Total = (m.Page-1)*m.PerPage + rows
	}
	if m.TotalPages < 1 && m.Total > 0 && m.PerPage > 0 {
		m.TotalPages = (m.Total + m.PerPage - 1) / m.PerPage
	}
	if m.TotalPages < 0 {
		m.TotalPages = 0
	}
	return m
}

// Page is one normalised page of a list.
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// Empty reports whether the page has no rows.
func (p *Page[T]) Empty() bool {
	return p == nil || len(p.Items) == 0
}

// Health is the backend's /health response.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}
