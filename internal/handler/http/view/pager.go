package view

import (
	"net/url"

	"newspress/internal/common/pagination"
)

// Pager is the rendered navigation of one paginated list.
type Pager struct {
	Prev  string
	Next  string
	Links []PagerLink
}

// PagerLink is one numbered page.
type PagerLink struct {
	Number  int
	URL     string
	Current bool
}

// Show reports whether there is more than one page.
func (p Pager) Show() bool { return len(p.Links) > 1 }

// NewPager builds the links for meta, keeping the rest of q. key names the
// page parameter, so several lists can page independently on one screen.
func NewPager(path string, q url.Values, key string, meta pagination.Metadata) Pager {
	p := Pager{Links: make([]PagerLink, 0, meta.TotalPages)}
	for _, n := range meta.Pages() {
		p.Links = append(p.Links, PagerLink{Number: n, URL: PageURL(path, q, key, n), Current: n == meta.Page})
	}
	if meta.HasPrev {
		p.Prev = PageURL(path, q, key, meta.Page-1)
	}
	if meta.HasNext {
		p.Next = PageURL(path, q, key, meta.Page+1)
	}
	return p
}
