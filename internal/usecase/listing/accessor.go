package listing

import (
	"time"

	"newspress/internal/domain/entity"
)

// Accessor exposes the fields of T the pipeline needs.
// A criterion whose accessor is nil can never be satisfied, so an active
// filter on an unsupported field yields an empty list rather than everything.
type Accessor[T any] struct {
	Key      func(T) string
	Category func(T) string
	Text     []func(T) string
	Created  func(T) time.Time
	Counter  func(T) int64
	Featured func(T) bool
	Breaking func(T) bool
}

// Articles matches on category slug and title.
func Articles() Accessor[entity.Article] {
	return Accessor[entity.Article]{
		Key:      func(a entity.Article) string { return a.CanonicalSlug() },
		Category: func(a entity.Article) string { return a.CategorySlug() },
		Text:     []func(entity.Article) string{func(a entity.Article) string { return a.Title }},
		Created:  func(a entity.Article) time.Time { return a.CreatedAt },
		Counter:  func(a entity.Article) int64 { return a.ViewCount },
		Featured: func(a entity.Article) bool { return a.IsFeatured },
		Breaking: func(a entity.Article) bool { return a.IsBreaking },
	}
}

// Comments matches on text, the joined post title and the author name.
func Comments() Accessor[entity.Comment] {
	return Accessor[entity.Comment]{
		Key: func(c entity.Comment) string { return c.ID },
		Text: []func(entity.Comment) string{
			func(c entity.Comment) string { return c.Text },
			func(c entity.Comment) string { return c.PostTitle() },
			func(c entity.Comment) string { return c.User.Name },
		},
		Created: func(c entity.Comment) time.Time { return c.CreatedAt },
	}
}

// Users matches on name and email.
func Users() Accessor[entity.User] {
	return Accessor[entity.User]{
		Key: func(u entity.User) string { return u.ID },
		Text: []func(entity.User) string{
			func(u entity.User) string { return u.Name },
			func(u entity.User) string { return u.Email },
		},
		Created: func(u entity.User) time.Time { return u.CreatedAt },
	}
}

// Categories matches on name.
func Categories() Accessor[entity.Category] {
	return Accessor[entity.Category]{
		Key:      func(c entity.Category) string { return c.CanonicalSlug() },
		Category: func(c entity.Category) string { return c.CanonicalSlug() },
		Text:     []func(entity.Category) string{func(c entity.Category) string { return c.Name }},
		Created:  func(c entity.Category) time.Time { return c.CreatedAt },
	}
}
