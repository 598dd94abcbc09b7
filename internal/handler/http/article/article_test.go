package article_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspress/internal/common/pagination"
	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/article"
	artUC "newspress/internal/usecase/article"
	commentUC "newspress/internal/usecase/comment"
)

/* ───────── stubs ───────── */

type stubArticles struct {
	data []entity.Article
	err  error
}

func (s *stubArticles) List(context.Context) ([]entity.Article, error) { return s.data, s.err }
func (s *stubArticles) GetBySlug(_ context.Context, slug string) (*entity.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, a := range s.data {
		if a.CanonicalSlug() == slug {
			return &a, nil
		}
	}
	return nil, entity.ErrNotFound
}
func (s *stubArticles) Create(context.Context, entity.ArticleInput) error         { return nil }
func (s *stubArticles) Update(context.Context, string, entity.ArticleInput) error { return nil }
func (s *stubArticles) Delete(context.Context, string) error                      { return nil }

type stubComments struct {
	data []entity.Comment
	err  error
}

func (s *stubComments) List(context.Context) ([]entity.Comment, error) { return s.data, nil }
func (s *stubComments) ListByPost(context.Context, string) ([]entity.Comment, error) {
	return s.data, s.err
}
func (s *stubComments) Create(context.Context, entity.CommentInput) error { return nil }
func (s *stubComments) Update(context.Context, string, string) error      { return nil }
func (s *stubComments) Delete(context.Context, string) error              { return nil }

func fixtures() []entity.Article {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	world := &entity.CategoryRef{ID: "c1", Name: "World News"}
	sports := &entity.CategoryRef{ID: "c2", Name: "Sports", Slug: "sports"}
	out := make([]entity.Article, 0, 15)
	for i := range 15 {
		cat := world
		if i%3 == 0 {
			cat = sports
		}
		out = append(out, entity.Article{
			ID:        fmt.Sprintf("a%02d", i),
			Title:     fmt.Sprintf("Story %02d", i),
			Slug:      fmt.Sprintf("story-%02d", i),
			Summary:   "Summary",
			Content:   "Body",
			Category:  cat,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	out[0].VideoURL = "https://www.youtube.com/watch?v=abc123"
	out[0].Author = &entity.Author{Name: "Hana"}
	return out
}

func newMux(articles *stubArticles, comments *stubComments) *http.ServeMux {
	csvc := &commentUC.Service{Repo: comments}
	svc := &artUC.Service{Articles: articles, Comments: csvc, Pagination: pagination.DefaultConfig()}
	mux := http.NewServeMux()
	article.Register(mux, svc, csvc, pagination.DefaultConfig(), nil)
	return mux
}

func get(t *testing.T, mux http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

/* ───────── GET /api/news ───────── */

func TestList(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantCount int
		wantFirst string
		wantMeta  pagination.Metadata
	}{
		{
			name:      "defaults newest first",
			wantCode:  http.StatusOK,
			wantCount: 12,
			wantFirst: "story-14",
			wantMeta:  pagination.Metadata{Total: 15, Page: 1, Limit: 12, TotalPages: 2, HasNext: true},
		},
		{
			name:      "page clamped to last",
			query:     "?page=9",
			wantCode:  http.StatusOK,
			wantCount: 3,
			wantFirst: "story-02",
			wantMeta:  pagination.Metadata{Total: 15, Page: 2, Limit: 12, TotalPages: 2, HasPrev: true},
		},
		{
			name:      "category and ascending",
			query:     "?category=sports&sort=asc&limit=2",
			wantCode:  http.StatusOK,
			wantCount: 2,
			wantFirst: "story-00",
			wantMeta:  pagination.Metadata{Total: 5, Page: 1, Limit: 2, TotalPages: 3, HasNext: true},
		},
		{
			name:      "search matches nothing",
			query:     "?q=nothing-like-this",
			wantCode:  http.StatusOK,
			wantCount: 0,
			wantMeta:  pagination.Metadata{Total: 0, Page: 1, Limit: 12, TotalPages: 1},
		},
		{
			name:     "bad limit",
			query:    "?limit=0",
			wantCode: http.StatusBadRequest,
		},
	}

	mux := newMux(&stubArticles{data: fixtures()}, &stubComments{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, mux, "/api/news"+tt.query)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp pagination.Response[article.DTO]
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Len(t, resp.Data, tt.wantCount)
			assert.Equal(t, tt.wantMeta, resp.Pagination)
			if tt.wantFirst != "" {
				assert.Equal(t, tt.wantFirst, resp.Data[0].Slug)
				assert.Empty(t, resp.Data[0].Content, "list omits the body")
			}
		})
	}
}

func TestList_UpstreamDown(t *testing.T) {
	mux := newMux(&stubArticles{err: fmt.Errorf("list: %w", entity.ErrUpstream)}, &stubComments{})
	rec := get(t, mux, "/api/news")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	// 内部エラーの詳細は返さない
	assert.NotContains(t, rec.Body.String(), "list:")
	assert.JSONEq(t, `{"error":"Something went wrong, please try again"}`, rec.Body.String())
}

/* ───────── GET /api/news/{slug} ───────── */

func TestGet(t *testing.T) {
	mux := newMux(&stubArticles{data: fixtures()}, &stubComments{})

	rec := get(t, mux, "/api/news/story-00")
	require.Equal(t, http.StatusOK, rec.Code)

	var dto article.DTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "a00", dto.ID)
	assert.Equal(t, "Body", dto.Content)
	assert.Equal(t, "https://www.youtube.com/embed/abc123", dto.EmbedURL)
	require.NotNil(t, dto.Category)
	assert.Equal(t, "sports", dto.Category.Slug)
	require.NotNil(t, dto.Author)
	assert.Equal(t, "Hana", dto.Author.Name)

	rec = get(t, mux, "/api/news/story-01")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Equal(t, "world-news", dto.Category.Slug, "slug derived from the name")
}

func TestGet_Errors(t *testing.T) {
	tests := []struct {
		name     string
		repo     *stubArticles
		path     string
		wantCode int
	}{
		{name: "unknown slug", repo: &stubArticles{data: fixtures()}, path: "/api/news/nope", wantCode: http.StatusNotFound},
		{name: "malformed slug", repo: &stubArticles{data: fixtures()}, path: "/api/news/bad%20slug", wantCode: http.StatusBadRequest},
		{name: "upstream down", repo: &stubArticles{err: entity.ErrUpstream}, path: "/api/news/story-00", wantCode: http.StatusBadGateway},
		{name: "timeout", repo: &stubArticles{err: context.DeadlineExceeded}, path: "/api/news/story-00", wantCode: http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newMux(tt.repo, &stubComments{}), tt.path)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

/* ───────── GET /api/news/{slug}/comments ───────── */

func TestComments(t *testing.T) {
	parent := "c1"
	created := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	comments := &stubComments{data: []entity.Comment{
		{
			ID: "c1", Text: "Great read", PostID: "a00", UserID: "u1", User: entity.CommentUser{ID: "u1", Name: "Hana"}, CreatedAt: created,
			Replies: []entity.Comment{
				{ID: "c2", Text: "Agreed", PostID: "a00", ParentID: &parent, UserID: "u2", User: entity.CommentUser{ID: "u2", Name: "Ken"}, CreatedAt: created},
			},
		},
		{ID: "c3", Text: "Second", PostID: "a00", UserID: "u2", User: entity.CommentUser{ID: "u2", Name: "Ken"}, CreatedAt: created},
	}}
	mux := newMux(&stubArticles{data: fixtures()}, comments)

	rec := get(t, mux, "/api/news/story-00/comments")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var thread article.ThreadDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &thread))
	assert.Equal(t, 3, thread.Total)
	require.Len(t, thread.Comments, 2)
	require.Len(t, thread.Comments[0].Replies, 1)
	assert.Equal(t, "c1", thread.Comments[0].Replies[0].ParentID)
	assert.Equal(t, "Ken", thread.Comments[0].Replies[0].User.Name)
}

func TestComments_Errors(t *testing.T) {
	t.Run("unknown article", func(t *testing.T) {
		rec := get(t, newMux(&stubArticles{data: fixtures()}, &stubComments{}), "/api/news/nope/comments")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no comments yet", func(t *testing.T) {
		rec := get(t, newMux(&stubArticles{data: fixtures()}, &stubComments{err: entity.ErrNotFound}), "/api/news/story-00/comments")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"total":0,"comments":[]}`, rec.Body.String())
	})

	t.Run("upstream down", func(t *testing.T) {
		rec := get(t, newMux(&stubArticles{data: fixtures()}, &stubComments{err: fmt.Errorf("comments: %w", entity.ErrUpstream)}), "/api/news/story-00/comments")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
