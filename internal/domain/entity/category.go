package entity

import "time"

// Category groups articles; its slug doubles as navigation key and list filter.
type Category struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}

// CanonicalSlug returns the category slug or one derived from its name.
func (c *Category) CanonicalSlug() string {
	if c.Slug != "" {
		return c.Slug
	}
	return Slugify(c.Name)
}
