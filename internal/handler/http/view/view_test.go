package view

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspress/internal/common/pagination"
	"newspress/internal/config"
	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/auth"
	"newspress/internal/infra/flash"
	"newspress/internal/usecase/article"
	"newspress/internal/usecase/comment"
	"newspress/internal/usecase/listing"
)

func newRenderer(t *testing.T) (*Renderer, *flash.Store) {
	t.Helper()
	nav, err := config.LoadNavigation()
	require.NoError(t, err)
	store := flash.NewStore([]byte("test-secret"), false)
	v, err := New(store, nav)
	require.NoError(t, err)
	return v, store
}

func withViewer(r *http.Request, role entity.Role) *http.Request {
	sess := &entity.Session{User: entity.User{ID: "u1", Name: "Hana", Email: "hana@example.com", Role: role}}
	return r.WithContext(auth.WithSession(r.Context(), sess, r.URL.Path))
}

/* ───────── parsing ───────── */

func TestNew_ParsesEveryPage(t *testing.T) {
	v, _ := newRenderer(t)
	for _, name := range []string{
		"home", "category", "detail", "notfound", "error", "login", "register", "dashboard",
		"admin/overview", "admin/news", "admin/news_form", "admin/categories", "admin/users", "admin/comments",
	} {
		assert.True(t, v.Has(name), name)
	}
	assert.False(t, v.Has("admin/missing"))
}

/* ───────── Render ───────── */

func TestRender_AnonymousLayout(t *testing.T) {
	v, _ := newRenderer(t)
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()

	v.Render(rec, req, http.StatusNotFound, "notfound", Page{
		Title:      "Not found",
		Categories: []entity.Category{{ID: "c1", Name: "World News"}},
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Not found | Newspress</title>")
	assert.Contains(t, body, `href="/login"`)
	assert.Contains(t, body, `href="/category/world-news"`)
	assert.NotContains(t, body, "Sign out")
	assert.NotContains(t, body, `class="sidebar"`)
}

func TestRender_AdminSidebar(t *testing.T) {
	v, _ := newRenderer(t)
	req := withViewer(httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil), entity.RoleAdmin)
	rec := httptest.NewRecorder()

	v.Render(rec, req, http.StatusOK, "admin/overview", Page{Data: &struct {
		Stats          entity.Stats
		RecentNews     []entity.Article
		RecentComments []entity.Comment
	}{Stats: entity.Stats{TotalNews: 42}}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="sidebar"`)
	assert.Contains(t, body, "User Management")
	assert.Contains(t, body, `<a href="/admin-dashboard" aria-current="page">`)
	assert.Contains(t, body, "<strong>42</strong>")
	assert.Contains(t, body, "Sign out")
}

func TestRender_MemberSeesOnlyMemberMenu(t *testing.T) {
	v, _ := newRenderer(t)
	req := withViewer(httptest.NewRequest(http.MethodGet, "/dashboard", nil), entity.RoleUser)
	rec := httptest.NewRecorder()

	v.Render(rec, req, http.StatusOK, "dashboard", Page{})

	body := rec.Body.String()
	assert.Contains(t, body, "My Profile")
	assert.Contains(t, body, "hana@example.com")
	assert.NotContains(t, body, "User Management")
}

func TestRender_PopsFlashOnce(t *testing.T) {
	v, store := newRenderer(t)
	set := httptest.NewRecorder()
	store.Success(set, "Article saved")
	cookie := set.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	v.Render(rec, req, http.StatusOK, "notfound", Page{})

	assert.Contains(t, rec.Body.String(), `class="flash flash-success"`)
	assert.Contains(t, rec.Body.String(), "Article saved")
	// 表示と同時にクッキーを消す
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, flash.CookieName, cleared[0].Name)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestRender_UnknownPage(t *testing.T) {
	v, _ := newRenderer(t)
	rec := httptest.NewRecorder()
	v.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "nope", Page{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRender_SkipsGoneClient(t *testing.T) {
	v, _ := newRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	v.Render(rec, req, http.StatusOK, "notfound", Page{})

	assert.Zero(t, rec.Body.Len())
}

func TestRender_EscapesUserContent(t *testing.T) {
	v, _ := newRenderer(t)
	rec := httptest.NewRecorder()
	v.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusBadGateway, "error",
		Page{Data: `<script>alert(1)</script>`})

	assert.NotContains(t, rec.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

/* ───────── detail page comments ───────── */

type detailData struct {
	Page     *article.DetailPage
	Composer comment.Composer
	LoginURL string
	Query    url.Values
}

func detailFixture() *detailData {
	parent := "c1"
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &detailData{
		Page: &article.DetailPage{
			Article: entity.Article{ID: "a1", Title: "Markets rally", Slug: "markets-rally", Content: "<p>First.</p><p>Second.</p>", CreatedAt: created},
			Thread: comment.Thread{
				Comments: []entity.Comment{{
					ID: "c1", Text: "Great read", UserID: "u1", User: entity.CommentUser{ID: "u1", Name: "Hana"}, CreatedAt: created,
					Replies: []entity.Comment{{ID: "c2", Text: "Agreed", ParentID: &parent, UserID: "u2", User: entity.CommentUser{ID: "u2", Name: "Ken"}, CreatedAt: created}},
				}},
				Total: 2,
			},
			Related: listing.Result[entity.Article]{Meta: pagination.NewMetadata(0, 1, 4)},
		},
		LoginURL: "/login?next=%2Fnews%2Fmarkets-rally",
	}
}

func TestRender_DetailAnonymous(t *testing.T) {
	v, _ := newRenderer(t)
	rec := httptest.NewRecorder()
	v.Render(rec, httptest.NewRequest(http.MethodGet, "/news/markets-rally", nil), http.StatusOK, "detail", Page{Data: detailFixture()})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.Contains(t, body, "Comments (2)")
	assert.Contains(t, body, "<p>First.</p>")
	assert.Contains(t, body, `href="/login?next=%2Fnews%2Fmarkets-rally"`)
	assert.NotContains(t, body, `name="text"`)
	assert.NotContains(t, body, "Delete")
}

func TestRender_DetailComposer(t *testing.T) {
	tests := []struct {
		name     string
		composer comment.Composer
		want     []string
		notWant  []string
	}{
		{
			name:    "idle owner",
			want:    []string{`action="/news/markets-rally/comments"`, "?edit=c1", "/comments/c1/delete"},
			notWant: []string{`name="parentId"`, "?edit=c2", "?reply=c2"},
		},
		{
			name:     "replying",
			composer: comment.Composer{ReplyTo: "c1"},
			want:     []string{`name="parentId" value="c1"`},
		},
		{
			name:     "editing",
			composer: comment.Composer{Editing: "c1"},
			want:     []string{`action="/news/markets-rally/comments/c1"`, ">Great read</textarea>"},
		},
	}
	v, _ := newRenderer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := detailFixture()
			data.Composer = tt.composer
			req := withViewer(httptest.NewRequest(http.MethodGet, "/news/markets-rally", nil), entity.RoleUser)
			rec := httptest.NewRecorder()

			v.Render(rec, req, http.StatusOK, "detail", Page{Data: data})

			body := rec.Body.String()
			for _, s := range tt.want {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, body, s)
			}
		})
	}
}

/* ───────── helpers ───────── */

func TestPageURL(t *testing.T) {
	q := url.Values{"q": {"rates"}, "page": {"3"}}
	assert.Equal(t, "/category/world?q=rates", PageURL("/category/world", q, "page", 1))
	assert.Equal(t, "/category/world?page=2&q=rates", PageURL("/category/world", q, "page", 2))
	assert.Equal(t, "3", q.Get("page"), "input must not be modified")
	assert.Equal(t, "/", PageURL("/", nil, "hero", 0))
}

func TestNewPager(t *testing.T) {
	meta := pagination.NewMetadata(10, 2, 4)
	p := NewPager("/", url.Values{"latest": {"2"}}, "hero", meta)

	require.True(t, p.Show())
	assert.Equal(t, "/?latest=2", p.Prev)
	assert.Equal(t, "/?hero=3&latest=2", p.Next)
	require.Len(t, p.Links, 3)
	assert.True(t, p.Links[1].Current)

	single := NewPager("/", nil, "hero", pagination.NewMetadata(2, 1, 4))
	assert.False(t, single.Show())
	assert.Empty(t, single.Prev)
	assert.Empty(t, single.Next)
}

func TestNewCommentView(t *testing.T) {
	parent := "c1"
	top := entity.Comment{ID: "c1", UserID: "u1"}
	reply := entity.Comment{ID: "c2", UserID: "u2", ParentID: &parent}
	owner := &entity.User{ID: "u1", Role: entity.RoleUser}
	admin := &entity.User{ID: "u9", Role: entity.RoleAdmin}

	cv := NewCommentView(top, owner, comment.Composer{ReplyTo: "c1"}, "s", "")
	assert.True(t, cv.CanEdit)
	assert.True(t, cv.Replying)

	cv = NewCommentView(reply, owner, comment.Composer{ReplyTo: "c2", Editing: "c2"}, "s", "")
	assert.False(t, cv.CanEdit)
	assert.False(t, cv.Replying, "replies cannot be replied to")
	assert.False(t, cv.Editing, "not the author")

	cv = NewCommentView(reply, admin, comment.Composer{Editing: "c2"}, "s", "")
	assert.True(t, cv.Editing)

	cv = NewCommentView(top, nil, comment.Composer{ReplyTo: "c1"}, "s", "")
	assert.False(t, cv.Replying)
}

func TestNewCommentView_Draft(t *testing.T) {
	top := entity.Comment{ID: "c1", UserID: "u1", Text: "original"}
	owner := &entity.User{ID: "u1", Role: entity.RoleUser}

	cv := NewCommentView(top, owner, comment.Composer{ReplyTo: "c1"}, "s", "retry me")
	assert.Equal(t, "retry me", cv.ReplyText)
	assert.Empty(t, cv.EditText)

	cv = NewCommentView(top, owner, comment.Composer{Editing: "c1"}, "s", "")
	assert.Equal(t, "original", cv.EditText)

	// 編集と返信が同時に開いているときは下書きを編集側に入れる
	cv = NewCommentView(top, owner, comment.Composer{ReplyTo: "c1", Editing: "c1"}, "s", "retry me")
	assert.Equal(t, "retry me", cv.EditText)
	assert.Empty(t, cv.ReplyText)

	assert.Empty(t, DraftOf(nil))
	assert.Equal(t, "x", DraftOf(&flash.Notice{Draft: "x"}))
}

func TestStatic(t *testing.T) {
	srv := httptest.NewServer(Static())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/static/site.css")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), ".card"))
}
