package pagination

// Metadata describes the page a shaped list was cut to.
type Metadata struct {
	Total      int  `json:"total"`       // Items after filtering, across all pages
	Page       int  `json:"page"`        // Current page number after clamping
	Limit      int  `json:"limit"`       // Items per page
	TotalPages int  `json:"total_pages"` // Never less than 1
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// NewMetadata computes metadata for a list of total items requested at page.
func NewMetadata(total, page, limit int) Metadata {
	pages := CalculateTotalPages(total, limit)
	page = ClampPage(page, pages)
	return Metadata{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
	}
}

// Pages lists the page numbers 1..TotalPages for rendering pager links.
func (m Metadata) Pages() []int {
	out := make([]int, m.TotalPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
