package api

import (
	"context"
	"net/http"
	"net/url"

	"newspress/internal/domain/entity"
	"newspress/internal/repository"
)

var (
	_ repository.ArticleRepository  = (*News)(nil)
	_ repository.CategoryRepository = (*Categories)(nil)
	_ repository.CommentRepository  = (*Comments)(nil)
	_ repository.UserRepository     = (*Users)(nil)
	_ repository.StatsRepository    = (*Stats)(nil)
)

// News is the /news resource.
type News struct{ c *Client }

// List returns every article.
func (n *News) List(ctx context.Context) ([]entity.Article, error) {
	r := call{resource: "news", op: "list", method: http.MethodGet, path: "/news"}
	data, err := n.c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	var dtos []newsDTO
	if _, err := decode(r.name(), data, &dtos); err != nil {
		return nil, err
	}
	out := make([]entity.Article, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toEntity())
	}
	return out, nil
}

// GetBySlug returns the article with slug. A null payload is reported as not found.
func (n *News) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	r := call{resource: "news", op: "get", method: http.MethodGet, path: "/news/slug/" + url.PathEscape(slug)}
	data, err := n.c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	var d newsDTO
	found, err := decode(r.name(), data, &d)
	if err != nil {
		return nil, err
	}
	if !found || d.ID == "" {
		return nil, &Error{Op: r.name(), Kind: KindNotFound, Message: "article not found"}
	}
	a := d.toEntity()
	return &a, nil
}

// Create publishes a new article.
func (n *News) Create(ctx context.Context, in entity.ArticleInput) error {
	_, err := n.c.send(ctx, call{resource: "news", op: "create", method: http.MethodPost, path: "/news/create-news", body: newNewsPayload(in)})
	return err
}

// Update replaces the editable fields of article id.
func (n *News) Update(ctx context.Context, id string, in entity.ArticleInput) error {
	_, err := n.c.send(ctx, call{resource: "news", op: "update", method: http.MethodPatch, path: "/news/update-news/" + url.PathEscape(id), body: newNewsPayload(in)})
	return err
}

// Delete removes article id.
func (n *News) Delete(ctx context.Context, id string) error {
	_, err := n.c.send(ctx, call{resource: "news", op: "delete", method: http.MethodDelete, path: "/news/" + url.PathEscape(id)})
	return err
}

// Categories is the /categories resource.
type Categories struct{ c *Client }

// List returns every category.
func (cs *Categories) List(ctx context.Context) ([]entity.Category, error) {
	r := call{resource: "categories", op: "list", method: http.MethodGet, path: "/categories"}
	data, err := cs.c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	var dtos []categoryDTO
	if _, err := decode(r.name(), data, &dtos); err != nil {
		return nil, err
	}
	out := make([]entity.Category, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toEntity())
	}
	return out, nil
}

// Create adds a category.
func (cs *Categories) Create(ctx context.Context, in entity.CategoryInput) error {
	_, err := cs.c.send(ctx, call{resource: "categories", op: "create", method: http.MethodPost, path: "/categories/create-category", body: categoryPayload{Name: in.Name}})
	return err
}

// Update renames category id and re-derives its slug.
func (cs *Categories) Update(ctx context.Context, id string, in entity.CategoryInput) error {
	body := categoryPayload{Name: in.Name, Slug: in.Slug()}
	_, err := cs.c.send(ctx, call{resource: "categories", op: "update", method: http.MethodPatch, path: "/categories/" + url.PathEscape(id), body: body})
	return err
}

// Delete removes category id.
func (cs *Categories) Delete(ctx context.Context, id string) error {
	_, err := cs.c.send(ctx, call{resource: "categories", op: "delete", method: http.MethodDelete, path: "/categories/" + url.PathEscape(id)})
	return err
}

// Comments is the /comments resource.
type Comments struct{ c *Client }

// List returns every comment with post and author joined in.
func (cs *Comments) List(ctx context.Context) ([]entity.Comment, error) {
	return cs.list(ctx, call{resource: "comments", op: "list", method: http.MethodGet, path: "/comments"})
}

// ListByPost returns the thread of article postID.
func (cs *Comments) ListByPost(ctx context.Context, postID string) ([]entity.Comment, error) {
	return cs.list(ctx, call{resource: "comments", op: "list_by_post", method: http.MethodGet, path: "/comments/post/" + url.PathEscape(postID)})
}

func (cs *Comments) list(ctx context.Context, r call) ([]entity.Comment, error) {
	data, err := cs.c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	var dtos []commentDTO
	if _, err := decode(r.name(), data, &dtos); err != nil {
		return nil, err
	}
	out := make([]entity.Comment, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toEntity())
	}
	return out, nil
}

// Create posts a comment or a reply.
func (cs *Comments) Create(ctx context.Context, in entity.CommentInput) error {
	body := commentPayload{Text: in.Text, PostID: in.PostID, ParentID: in.ParentID}
	_, err := cs.c.send(ctx, call{resource: "comments", op: "create", method: http.MethodPost, path: "/comments", body: body})
	return err
}

// Update replaces the text of comment id.
func (cs *Comments) Update(ctx context.Context, id, text string) error {
	_, err := cs.c.send(ctx, call{resource: "comments", op: "update", method: http.MethodPatch, path: "/comments/" + url.PathEscape(id), body: commentPayload{Text: text}})
	return err
}

// Delete removes comment id.
func (cs *Comments) Delete(ctx context.Context, id string) error {
	_, err := cs.c.send(ctx, call{resource: "comments", op: "delete", method: http.MethodDelete, path: "/comments/" + url.PathEscape(id)})
	return err
}

// Users is the /users resource.
type Users struct{ c *Client }

// List returns every user (admin only).
func (u *Users) List(ctx context.Context) ([]entity.User, error) {
	r := call{resource: "users", op: "list", method: http.MethodGet, path: "/users"}
	data, err := u.c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	var dtos []userDTO
	if _, err := decode(r.name(), data, &dtos); err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toEntity())
	}
	return out, nil
}

// UpdateRole changes the role of user id.
func (u *Users) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	body := map[string]string{"role": role.String()}
	_, err := u.c.send(ctx, call{resource: "users", op: "update_role", method: http.MethodPatch, path: "/users/update-role/" + url.PathEscape(id), body: body})
	return err
}

// Stats is the /stats resource.
type Stats struct{ c *Client }

// Summary returns the dashboard totals.
func (s *Stats) Summary(ctx context.Context) (*entity.Stats, error) {
	r := call{resource: "stats", op: "summary", method: http.MethodGet, path: "/stats/summary"}
	data, err := s.c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	var d statsDTO
	if _, err := decode(r.name(), data, &d); err != nil {
		return nil, err
	}
	return &entity.Stats{
		TotalNews:       d.TotalNews,
		TotalUsers:      d.TotalUsers,
		TotalComments:   d.TotalComments,
		TotalCategories: d.TotalCategories,
	}, nil
}
