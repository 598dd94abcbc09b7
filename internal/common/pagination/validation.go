package pagination

import "fmt"

// WithDefaults fills in what the query left out. A page below 1 becomes
// config.DefaultPage and a missing limit becomes config.DefaultLimit; an
// oversized limit is capped at config.MaxLimit. Pages past the end are not
// touched here: the list shaper clamps them once the filtered length is known.
func (p Params) WithDefaults(config Config) Params {
	if p.Page < 1 {
		p.Page = config.DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = config.DefaultLimit
	}
	p.Limit = min(p.Limit, config.MaxLimit)
	return p
}

// Validate guards Params that did not come through ParseQueryParams and
// WithDefaults. Errors carry the same "invalid query parameter" prefix as
// the parser so respond.SafeError shows them to the client.
func (p Params) Validate(config Config) error {
	if p.Page < 1 {
		return fmt.Errorf("invalid query parameter: page must be at least 1")
	}
	if p.Limit < 1 || p.Limit > config.MaxLimit {
		return fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
	}
	return nil
}
