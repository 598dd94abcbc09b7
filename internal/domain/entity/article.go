// Package entity defines the core domain entities and validation logic for the portal.
// Every entity here is a request-scoped copy of data owned by the remote news API:
// articles, categories, comments and users, along with their form validation rules
// and domain-specific errors.
package entity

import "time"

// Article represents a news article as served by the remote API.
type Article struct {
	ID            string
	Title         string
	Slug          string
	Content       string
	Summary       string
	FeaturedImage string
	VideoURL      string
	ViewCount     int64
	IsBreaking    bool
	IsFeatured    bool
	CreatedAt     time.Time
	CategoryID    string
	Category      *CategoryRef
	Author        *Author
}

// CategoryRef is the denormalized category carried on an article.
type CategoryRef struct {
	ID   string
	Name string
	Slug string
}

// Author is the optional byline of an article.
type Author struct {
	Name  string
	Image string
}

// CanonicalSlug returns the article slug, deriving one from the title when the API
// omitted it.
func (a *Article) CanonicalSlug() string {
	if a.Slug != "" {
		return a.Slug
	}
	return Slugify(a.Title)
}

// CategorySlug returns the slug of the article's category, or "" when uncategorized.
func (a *Article) CategorySlug() string {
	if a.Category == nil {
		return ""
	}
	if a.Category.Slug != "" {
		return a.Category.Slug
	}
	return Slugify(a.Category.Name)
}

// CategoryName returns the denormalized category name, or "" when uncategorized.
func (a *Article) CategoryName() string {
	if a.Category == nil {
		return ""
	}
	return a.Category.Name
}
