package api

import (
	"bytes"
	"encoding/json"
	"time"

	"newspress/internal/domain/entity"
)

// apiTime tolerates the timestamp shapes the API produces: RFC 3339 with or
// without fractional seconds, a bare date, an empty string or null.
type apiTime struct{ time.Time }

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func (t *apiTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	// 不明な形式はゼロ値扱い（一覧全体を落とさない）
	return nil
}

type categoryRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type authorDTO struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type newsDTO struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Content       string          `json:"content"`
	Summary       string          `json:"summary"`
	FeaturedImage string          `json:"featuredImage"`
	VideoURL      string          `json:"videoUrl"`
	ViewCount     int64           `json:"viewCount"`
	IsBreaking    bool            `json:"isBreaking"`
	IsFeatured    bool            `json:"isFeatured"`
	CreatedAt     apiTime         `json:"createdAt"`
	CategoryID    string          `json:"categoryId"`
	Category      *categoryRefDTO `json:"category"`
	Author        *authorDTO      `json:"author"`
}

func (d newsDTO) toEntity() entity.Article {
	a := entity.Article{
		ID:            d.ID,
		Title:         d.Title,
		Slug:          d.Slug,
		Content:       d.Content,
		Summary:       d.Summary,
		FeaturedImage: d.FeaturedImage,
		VideoURL:      d.VideoURL,
		ViewCount:     d.ViewCount,
		IsBreaking:    d.IsBreaking,
		IsFeatured:    d.IsFeatured,
		CreatedAt:     d.CreatedAt.Time,
		CategoryID:    d.CategoryID,
	}
	if d.Category != nil {
		a.Category = &entity.CategoryRef{ID: d.Category.ID, Name: d.Category.Name, Slug: d.Category.Slug}
		if a.CategoryID == "" {
			a.CategoryID = d.Category.ID
		}
	}
	if d.Author != nil {
		a.Author = &entity.Author{Name: d.Author.Name, Image: d.Author.Image}
	}
	return a
}

// newsPayload is the create/update body of the news resource.
type newsPayload struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Summary       string `json:"summary,omitempty"`
	FeaturedImage string `json:"featuredImage"`
	ImageCaption  string `json:"imageCaption,omitempty"`
	VideoURL      string `json:"videoUrl,omitempty"`
	CategoryID    string `json:"categoryId"`
	Status        string `json:"status,omitempty"`
	IsBreaking    bool   `json:"isBreaking"`
	IsFeatured    bool   `json:"isFeatured"`
}

func newNewsPayload(in entity.ArticleInput) newsPayload {
	return newsPayload{
		Title:         in.Title,
		Content:       in.Content,
		Summary:       in.Summary,
		FeaturedImage: in.FeaturedImage,
		ImageCaption:  in.ImageCaption,
		VideoURL:      in.VideoURL,
		CategoryID:    in.CategoryID,
		Status:        in.Status,
		IsBreaking:    in.IsBreaking,
		IsFeatured:    in.IsFeatured,
	}
}

type categoryDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	CreatedAt apiTime `json:"createdAt"`
}

func (d categoryDTO) toEntity() entity.Category {
	return entity.Category{ID: d.ID, Name: d.Name, Slug: d.Slug, CreatedAt: d.CreatedAt.Time}
}

type categoryPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type commentUserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Role  string `json:"role"`
}

type postRefDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type commentDTO struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	PostID    string         `json:"postId"`
	UserID    string         `json:"userId"`
	ParentID  *string        `json:"parentId"`
	CreatedAt apiTime        `json:"createdAt"`
	UpdatedAt apiTime        `json:"updatedAt"`
	User      commentUserDTO `json:"user"`
	Post      *postRefDTO    `json:"post"`
	News      *postRefDTO    `json:"news"`
	Replies   []commentDTO   `json:"replies"`
}

func (d commentDTO) toEntity() entity.Comment {
	c := entity.Comment{
		ID:        d.ID,
		Text:      d.Text,
		PostID:    d.PostID,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt.Time,
		UpdatedAt: d.UpdatedAt.Time,
		User: entity.CommentUser{
			ID:    d.User.ID,
			Name:  d.User.Name,
			Image: d.User.Image,
			Role:  entity.ParseRole(d.User.Role),
		},
	}
	if d.ParentID != nil && *d.ParentID != "" {
		parent := *d.ParentID
		c.ParentID = &parent
	}
	ref := d.Post
	if ref == nil {
		ref = d.News
	}
	if ref != nil {
		c.Post = &entity.PostRef{ID: ref.ID, Title: ref.Title, Slug: ref.Slug}
	}
	if len(d.Replies) > 0 {
		c.Replies = make([]entity.Comment, 0, len(d.Replies))
		for _, r := range d.Replies {
			c.Replies = append(c.Replies, r.toEntity())
		}
	}
	return c
}

type commentPayload struct {
	Text     string `json:"text"`
	PostID   string `json:"postId,omitempty"`
	ParentID string `json:"parentId,omitempty"`
}

type userDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Image     string  `json:"image"`
	Role      string  `json:"role"`
	CreatedAt apiTime `json:"createdAt"`
}

func (d userDTO) toEntity() entity.User {
	return entity.User{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Image:     d.Image,
		Role:      entity.ParseRole(d.Role),
		CreatedAt: d.CreatedAt.Time,
	}
}

type statsDTO struct {
	TotalNews       int64 `json:"totalNews"`
	TotalUsers      int64 `json:"totalUsers"`
	TotalComments   int64 `json:"totalComments"`
	TotalCategories int64 `json:"totalCategories"`
}
