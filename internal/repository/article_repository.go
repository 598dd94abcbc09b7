// Package repository declares the data access boundary of the portal.
// Every implementation talks to the remote news API; nothing is persisted locally.
package repository

import (
	"context"

	"newspress/internal/domain/entity"
)

// ArticleRepository is the news resource of the remote API.
type ArticleRepository interface {
	// List returns every article in the order the API sends them.
	List(ctx context.Context) ([]entity.Article, error)
	// GetBySlug returns entity.ErrNotFound when no article has the slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Article, error)
	Create(ctx context.Context, in entity.ArticleInput) error
	Update(ctx context.Context, id string, in entity.ArticleInput) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository is the categories resource of the remote API.
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	Create(ctx context.Context, in entity.CategoryInput) error
	Update(ctx context.Context, id string, in entity.CategoryInput) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository is the comments resource of the remote API.
type CommentRepository interface {
	// List returns every comment with its post and author joined in (admin only).
	List(ctx context.Context) ([]entity.Comment, error)
	// ListByPost returns the thread of one article, top-level comments first-level nested.
	ListByPost(ctx context.Context, postID string) ([]entity.Comment, error)
	Create(ctx context.Context, in entity.CommentInput) error
	Update(ctx context.Context, id, text string) error
	Delete(ctx context.Context, id string) error
}

// UserRepository is the users resource of the remote API.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	UpdateRole(ctx context.Context, id string, role entity.Role) error
}

// StatsRepository exposes the dashboard summary.
type StatsRepository interface {
	Summary(ctx context.Context) (*entity.Stats, error)
}
