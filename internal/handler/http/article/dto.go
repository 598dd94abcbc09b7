// Package article provides the read-only JSON endpoints for news: the shaped
// article list, one article by slug and its comment thread. The browser uses
// them to hydrate pages without a full reload.
package article

import (
	"time"

	"newspress/internal/domain/entity"
	"newspress/internal/utils/text"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID            string       `json:"id" example:"clx9a1"`
	Title         string       `json:"title" example:"Markets rally after rate decision"`
	Slug          string       `json:"slug" example:"markets-rally"`
	Excerpt       string       `json:"excerpt"`
	Content       string       `json:"content,omitempty"`
	FeaturedImage string       `json:"featuredImage,omitempty"`
	VideoURL      string       `json:"videoUrl,omitempty"`
	EmbedURL      string       `json:"embedUrl,omitempty"`
	ViewCount     int64        `json:"viewCount"`
	IsBreaking    bool         `json:"isBreaking"`
	IsFeatured    bool         `json:"isFeatured"`
	CreatedAt     time.Time    `json:"createdAt" example:"2025-10-26T12:00:00Z"`
	Category      *CategoryDTO `json:"category,omitempty"`
	Author        *AuthorDTO   `json:"author,omitempty"`
}

// CategoryDTO is the category summary carried on an article.
type CategoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// AuthorDTO is the byline.
type AuthorDTO struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// CommentDTO is one comment; top-level comments carry their replies.
type CommentDTO struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	ParentID  string       `json:"parentId,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	User      UserDTO      `json:"user"`
	Replies   []CommentDTO `json:"replies,omitempty"`
}

// UserDTO is the public part of a comment author.
type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// ThreadDTO is the comment thread of an article.
type ThreadDTO struct {
	Total    int          `json:"total"`
	Comments []CommentDTO `json:"comments"`
}

// toDTO converts an article; withContent includes the body for the detail endpoint.
func toDTO(a *entity.Article, withContent bool) DTO {
	out := DTO{
		ID:            a.ID,
		Title:         a.Title,
		Slug:          a.CanonicalSlug(),
		Excerpt:       text.Excerpt(a.Summary, a.Content),
		FeaturedImage: a.FeaturedImage,
		VideoURL:      a.VideoURL,
		ViewCount:     a.ViewCount,
		IsBreaking:    a.IsBreaking,
		IsFeatured:    a.IsFeatured,
		CreatedAt:     a.CreatedAt,
	}
	if withContent {
		out.Content = a.Content
		out.EmbedURL = entity.YouTubeEmbedURL(a.VideoURL)
	}
	if a.Category != nil {
		out.Category = &CategoryDTO{ID: a.Category.ID, Name: a.Category.Name, Slug: a.CategorySlug()}
	}
	if a.Author != nil {
		out.Author = &AuthorDTO{Name: a.Author.Name, Image: a.Author.Image}
	}
	return out
}

func toCommentDTO(c *entity.Comment) CommentDTO {
	out := CommentDTO{
		ID:        c.ID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		User:      UserDTO{ID: c.User.ID, Name: c.User.Name, Image: c.User.Image},
	}
	if c.ParentID != nil {
		out.ParentID = *c.ParentID
	}
	for i := range c.Replies {
		out.Replies = append(out.Replies, toCommentDTO(&c.Replies[i]))
	}
	return out
}
