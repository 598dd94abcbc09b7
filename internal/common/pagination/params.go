package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// ParseQueryParams parses pagination parameters from the request query string.
//
// A missing or non-numeric page falls back to config.DefaultPage and a page
// below 1 becomes 1; the upper bound is applied later against the shaped list.
// The limit must be an integer between 1 and config.MaxLimit.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			params.Page = max(page, 1)
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}
