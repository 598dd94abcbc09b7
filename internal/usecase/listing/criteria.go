// Package listing shapes in-memory lists for display: filter, order and
// paginate. It performs no I/O; every call site supplies its own Criteria
// and page descriptor, so no view state is shared between pages.
package listing

import (
	"net/url"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used by the date filter (UTC).
const DateLayout = "2006-01-02"

// Order is the direction of the list ordering. The zero value is descending.
type Order int

const (
	Desc Order = iota
	Asc
)

// ParseOrder maps the "sort" query value onto Order; anything but "asc" is Desc.
func ParseOrder(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), "asc") {
		return Asc
	}
	return Desc
}

func (o Order) String() string {
	if o == Asc {
		return "asc"
	}
	return "desc"
}

// SortKey selects the field the list is ordered by.
type SortKey int

const (
	// ByCreated orders by creation timestamp.
	ByCreated SortKey = iota
	// ByCounter orders by the numeric counter (view count for articles).
	ByCounter
)

// Criteria is the set of active filters and the ordering for one list.
// Empty string fields and false flags are inactive and always satisfied.
type Criteria struct {
	Category     string // category slug equality
	Search       string // case-insensitive substring over the searchable fields
	Date         string // YYYY-MM-DD, compared against the UTC creation day
	ExcludeKey   string // drop the record whose key equals this
	FeaturedOnly bool
	BreakingOnly bool
	Key          SortKey
	Order        Order
}

// Cleared resets every criterion and the ordering in one step.
// Clearing an already cleared Criteria returns the same value.
func (c Criteria) Cleared() Criteria {
	return Criteria{}
}

// IsFiltered reports whether any visitor filter is active.
func (c Criteria) IsFiltered() bool {
	return c.Search != "" || c.Date != "" || c.Order != Desc
}

// day returns the parsed date filter; ok is false when the filter is absent or malformed.
func (c Criteria) day() (string, bool) {
	if c.Date == "" {
		return "", false
	}
	if _, err := time.Parse(DateLayout, c.Date); err != nil {
		return "", false
	}
	return c.Date, true
}

// ParseCriteria reads visitor filters from query values:
// category, q, date (YYYY-MM-DD) and sort (asc|desc).
// A malformed date is dropped.
func ParseCriteria(q url.Values) Criteria {
	c := Criteria{
		Category: strings.TrimSpace(q.Get("category")),
		Search:   strings.TrimSpace(q.Get("q")),
		Date:     strings.TrimSpace(q.Get("date")),
		Order:    ParseOrder(q.Get("sort")),
	}
	if _, ok := c.day(); !ok {
		c.Date = ""
	}
	return c
}

// Query encodes the visitor filters back into query values, omitting defaults.
func (c Criteria) Query() url.Values {
	q := url.Values{}
	if c.Category != "" {
		q.Set("category", c.Category)
	}
	if c.Search != "" {
		q.Set("q", c.Search)
	}
	if c.Date != "" {
		q.Set("date", c.Date)
	}
	if c.Order != Desc {
		q.Set("sort", c.Order.String())
	}
	return q
}
