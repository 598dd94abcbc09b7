package listing

import (
	"cmp"
	"slices"
	"strings"

	"newspress/internal/common/pagination"
)

// Page describes the requested slice: a 1-based number and a fixed size.
// A non-positive Size puts every item on one page.
type Page struct {
	Number int
	Size   int
}

// Result is a shaped list: the visible items, their pagination metadata and
// the criteria that produced them.
type Result[T any] struct {
	Items    []T
	Meta     pagination.Metadata
	Criteria Criteria
}

// Shape filters items conjunctively, orders them stably and cuts the requested
// page. The page is clamped into [1, TotalPages]. The input slice is not modified.
func Shape[T any](items []T, crit Criteria, page Page, acc Accessor[T]) Result[T] {
	filtered := Filter(items, crit, acc)
	Sort(filtered, crit, acc)
	meta := pagination.NewMetadata(len(filtered), page.Number, page.Size)
	return Result[T]{
		Items:    pagination.Slice(filtered, meta.Page, page.Size),
		Meta:     meta,
		Criteria: crit,
	}
}

// Filter returns a new slice with the items satisfying every active criterion,
// in input order.
func Filter[T any](items []T, crit Criteria, acc Accessor[T]) []T {
	m := newMatcher(crit, acc)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if m.match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Sort orders items in place by crit.Key and crit.Order. Equal keys keep their
// relative order in both directions. Without an accessor for the key the
// order is left unchanged.
func Sort[T any](items []T, crit Criteria, acc Accessor[T]) {
	var compare func(a, b T) int
	switch crit.Key {
	case ByCounter:
		if acc.Counter == nil {
			return
		}
		compare = func(a, b T) int { return cmp.Compare(acc.Counter(a), acc.Counter(b)) }
	default:
		if acc.Created == nil {
			return
		}
		compare = func(a, b T) int { return acc.Created(a).Compare(acc.Created(b)) }
	}
	if crit.Order == Desc {
		asc := compare
		compare = func(a, b T) int { return asc(b, a) }
	}
	slices.SortStableFunc(items, compare)
}

type matcher[T any] struct {
	crit   Criteria
	acc    Accessor[T]
	search string
	day    string
	hasDay bool
}

func newMatcher[T any](crit Criteria, acc Accessor[T]) matcher[T] {
	day, ok := crit.day()
	return matcher[T]{
		crit:   crit,
		acc:    acc,
		search: strings.ToLower(crit.Search),
		day:    day,
		hasDay: ok,
	}
}

func (m matcher[T]) match(it T) bool {
	if m.crit.Category != "" && (m.acc.Category == nil || m.acc.Category(it) != m.crit.Category) {
		return false
	}
	if m.crit.ExcludeKey != "" && m.acc.Key != nil && m.acc.Key(it) == m.crit.ExcludeKey {
		return false
	}
	if m.crit.FeaturedOnly && (m.acc.Featured == nil || !m.acc.Featured(it)) {
		return false
	}
	if m.crit.BreakingOnly && (m.acc.Breaking == nil || !m.acc.Breaking(it)) {
		return false
	}
	if m.hasDay && (m.acc.Created == nil || m.acc.Created(it).UTC().Format(DateLayout) != m.day) {
		return false
	}
	if m.search != "" && !m.matchText(it) {
		return false
	}
	return true
}

func (m matcher[T]) matchText(it T) bool {
	for _, field := range m.acc.Text {
		if strings.Contains(strings.ToLower(field(it)), m.search) {
			return true
		}
	}
	return false
}
