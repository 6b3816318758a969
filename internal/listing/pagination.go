package listing

import (
	"fmt"

	"github.com/bobmcallan/invest-portal/internal/models"
)

// Pagination is the prev/next control under a list.
type Pagination struct {
	Visible      bool
	Page         int
	TotalPages   int
	Total        int
	Label        string
	PrevDisabled bool
	NextDisabled bool
	PrevURL      string
	NextURL      string
}

// NewPagination builds the control for meta as seen from state. The
// control is hidden when there is at most one page.
func NewPagination(meta models.Meta, s State, base string) Pagination {
	page := meta.Page
	if page < 1 {
		page = s.Page
	}
	if page < 1 {
		page = 1
	}

	p := Pagination{
		Visible:      meta.TotalPages > 1,
		Page:         page,
		TotalPages:   meta.TotalPages,
		Total:        meta.Total,
		Label:        fmt.Sprintf("หน้า %d จาก %d", page, meta.TotalPages),
		PrevDisabled: page == 1,
		NextDisabled: page >= meta.TotalPages,
	}
	if !p.PrevDisabled {
		p.PrevURL = s.WithPage(page - 1).URL(base)
	}
	if !p.NextDisabled {
		p.NextURL = s.WithPage(page + 1).URL(base)
	}
	return p
}
