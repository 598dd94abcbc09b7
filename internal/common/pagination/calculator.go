package pagination

// CalculateOffset returns the index of the first item on a 1-based page.
//
// Examples:
//   - Page 1, Limit 4 -> Offset 0
//   - Page 3, Limit 4 -> Offset 8
func CalculateOffset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total / limit), never less than 1.
// A non-positive limit means everything fits on one page.
//
// Examples:
//   - Total 0, Limit 4 -> 1 page
//   - Total 4, Limit 4 -> 1 page
//   - Total 5, Limit 4 -> 2 pages
func CalculateTotalPages(total int, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

// ClampPage moves page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case page < 1:
		return 1
	case page > totalPages:
		return totalPages
	default:
		return page
	}
}

// Window returns the half-open [start, end) bounds of page within a list of
// total items. The page is clamped first, so the bounds are always valid.
func Window(total, page, limit int) (start, end int) {
	if total <= 0 {
		return 0, 0
	}
	if limit <= 0 {
		return 0, total
	}
	page = ClampPage(page, CalculateTotalPages(total, limit))
	start = CalculateOffset(page, limit)
	end = min(start+limit, total)
	return start, end
}

// Slice returns the items on page. The result shares its backing array with items.
func Slice[T any](items []T, page, limit int) []T {
	start, end := Window(len(items), page, limit)
	return items[start:end:end]
}
