package dashboard_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspress/internal/config"
	"newspress/internal/domain/entity"
	"newspress/internal/handler/http/auth"
	"newspress/internal/handler/http/dashboard"
	"newspress/internal/handler/http/view"
	"newspress/internal/infra/flash"
	dashUC "newspress/internal/usecase/dashboard"
)

/* ───────── stubs ───────── */

type stubArticles struct {
	data    []entity.Article
	listErr error
	created []entity.ArticleInput
	updated map[string]entity.ArticleInput
	deleted []string
}

func (s *stubArticles) List(context.Context) ([]entity.Article, error) { return s.data, s.listErr }
func (s *stubArticles) GetBySlug(context.Context, string) (*entity.Article, error) {
	return nil, entity.ErrNotFound
}
func (s *stubArticles) Create(_ context.Context, in entity.ArticleInput) error {
	s.created = append(s.created, in)
	return nil
}
func (s *stubArticles) Update(_ context.Context, id string, in entity.ArticleInput) error {
	if s.updated == nil {
		s.updated = map[string]entity.ArticleInput{}
	}
	s.updated[id] = in
	return nil
}
func (s *stubArticles) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubCategories struct {
	data    []entity.Category
	created []entity.CategoryInput
	renamed map[string]string
	deleted []string
}

func (s *stubCategories) List(context.Context) ([]entity.Category, error) { return s.data, nil }
func (s *stubCategories) Create(_ context.Context, in entity.CategoryInput) error {
	s.created = append(s.created, in)
	return nil
}
func (s *stubCategories) Update(_ context.Context, id string, in entity.CategoryInput) error {
	if s.renamed == nil {
		s.renamed = map[string]string{}
	}
	s.renamed[id] = in.Name
	return nil
}
func (s *stubCategories) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubComments struct {
	data    []entity.Comment
	deleted []string
}

func (s *stubComments) List(context.Context) ([]entity.Comment, error) { return s.data, nil }
func (s *stubComments) ListByPost(context.Context, string) ([]entity.Comment, error) {
	return nil, nil
}
func (s *stubComments) Create(context.Context, entity.CommentInput) error { return nil }
func (s *stubComments) Update(context.Context, string, string) error      { return nil }
func (s *stubComments) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubUsers struct {
	data  []entity.User
	roles map[string]entity.Role
}

func (s *stubUsers) List(context.Context) ([]entity.User, error) { return s.data, nil }
func (s *stubUsers) UpdateRole(_ context.Context, id string, role entity.Role) error {
	if s.roles == nil {
		s.roles = map[string]entity.Role{}
	}
	s.roles[id] = role
	return nil
}

type stubStats struct {
	stats entity.Stats
	err   error
}

func (s *stubStats) Summary(context.Context) (*entity.Stats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.stats, nil
}

type stubImages struct {
	enabled bool
	names   []string
}

func (s *stubImages) Enabled() bool { return s.enabled }
func (s *stubImages) Upload(_ context.Context, name string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	s.names = append(s.names, name)
	return "https://i.ibb.co/x/" + name, nil
}

/* ───────── fixture ───────── */

type fixture struct {
	mux        *http.ServeMux
	store      *flash.Store
	articles   *stubArticles
	categories *stubCategories
	comments   *stubComments
	users      *stubUsers
	stats      *stubStats
	images     *stubImages
}

var admin = &entity.User{ID: "admin-1", Name: "Editor", Email: "editor@example.com", Role: entity.RoleAdmin}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	day := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	f := &fixture{
		articles: &stubArticles{data: []entity.Article{
			{ID: "n1", Title: "Budget passes", Slug: "budget-passes", Content: "The budget passed narrowly.", CategoryID: "c1", CreatedAt: day},
			{ID: "n2", Title: "Storm warning", Slug: "storm-warning", Content: "Heavy rain is expected.", CreatedAt: day.Add(time.Hour)},
		}},
		categories: &stubCategories{data: []entity.Category{{ID: "c1", Name: "Politics", Slug: "politics", CreatedAt: day}}},
		comments: &stubComments{data: []entity.Comment{
			{ID: "k1", Text: "Finally", PostID: "n1", User: entity.CommentUser{Name: "Hana"}, Post: &entity.PostRef{Title: "Budget passes", Slug: "budget-passes"}, CreatedAt: day},
		}},
		users: &stubUsers{data: []entity.User{
			*admin,
			{ID: "u2", Name: "Ken", Email: "ken@example.com", Role: entity.RoleUser, CreatedAt: day},
		}},
		stats:  &stubStats{stats: entity.Stats{TotalNews: 2, TotalUsers: 2, TotalComments: 1, TotalCategories: 1}},
		images: &stubImages{enabled: true},
	}

	nav, err := config.LoadNavigation()
	require.NoError(t, err)
	f.store = flash.NewStore([]byte("dashboard-test"), false)
	v, err := view.New(f.store, nav)
	require.NoError(t, err)

	svc := &dashUC.Service{
		Articles:   f.articles,
		Categories: f.categories,
		Comments:   f.comments,
		Users:      f.users,
		Stats:      f.stats,
		Images:     f.images,
	}
	f.mux = http.NewServeMux()
	dashboard.Register(f.mux, svc, v, f.store)
	return f
}

func (f *fixture) do(req *http.Request, user *entity.User) *httptest.ResponseRecorder {
	if user != nil {
		req = req.WithContext(auth.WithSession(req.Context(), &entity.Session{User: *user}, req.URL.Path))
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) flash(rec *httptest.ResponseRecorder) *flash.Notice {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return f.store.Pop(httptest.NewRecorder(), req)
}

func get(target string) *http.Request { return httptest.NewRequest(http.MethodGet, target, nil) }

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

/* ───────── screens ───────── */

func TestMemberProfile(t *testing.T) {
	f := newFixture(t)
	rec := f.do(get("/dashboard"), &entity.User{ID: "u2", Name: "Ken", Email: "ken@example.com", Role: entity.RoleUser})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ken@example.com")
	assert.Contains(t, rec.Body.String(), "<dd>USER</dd>")
}

func TestOverview(t *testing.T) {
	f := newFixture(t)
	rec := f.do(get("/admin-dashboard"), admin)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Storm warning")
	assert.Contains(t, body, "Finally")
	assert.Contains(t, body, "User Management", "admin sidebar")
}

func TestOverview_StatsDown(t *testing.T) {
	f := newFixture(t)
	f.stats.err = fmt.Errorf("stats: %w", entity.ErrUpstream)

	rec := f.do(get("/admin-dashboard"), admin)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.NotContains(t, rec.Body.String(), "stats:")
}

func TestLists(t *testing.T) {
	tests := []struct {
		target  string
		want    []string
		notWant []string
	}{
		{target: "/admin-dashboard/news", want: []string{"Budget passes", "Storm warning", "/admin-dashboard/news/edit/n1"}},
		{target: "/admin-dashboard/news?q=storm", want: []string{"Storm warning", "Clear filters"}, notWant: []string{"Budget passes"}},
		{target: "/admin-dashboard/categories", want: []string{`value="Politics"`, "politics"}},
		{target: "/admin-dashboard/users?q=ken", want: []string{"ken@example.com"}, notWant: []string{"editor@example.com</td>"}},
		{target: "/admin-dashboard/comments", want: []string{"Finally", `href="/news/budget-passes"`}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			f := newFixture(t)
			rec := f.do(get(tt.target), admin)

			require.Equal(t, http.StatusOK, rec.Code)
			for _, s := range tt.want {
				assert.Contains(t, rec.Body.String(), s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, rec.Body.String(), s)
			}
		})
	}
}

/* ───────── news form ───────── */

func TestNewsCreate_Invalid(t *testing.T) {
	f := newFixture(t)
	rec := f.do(postForm("/admin-dashboard/news/create", url.Values{"title": {"Hi"}, "content": {"short"}}), admin)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Please fix the highlighted fields.")
	assert.Contains(t, body, `value="Hi"`)
	assert.Contains(t, body, `<option value="c1">Politics</option>`)
	assert.Empty(t, f.articles.created)
}

func TestNewsCreate_WithUpload(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"title":      "Harbour reopens",
		"content":    "The harbour reopened after repairs this week.",
		"categoryId": "c1",
		"isBreaking": "true",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("image", "harbour.jpg")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("jpeg"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/admin-dashboard/news/create", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := f.do(req, admin)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin-dashboard/news", rec.Header().Get("Location"))
	assert.Equal(t, []string{"harbour.jpg"}, f.images.names)
	require.Len(t, f.articles.created, 1)
	got := f.articles.created[0]
	assert.Equal(t, "https://i.ibb.co/x/harbour.jpg", got.FeaturedImage)
	assert.True(t, got.IsBreaking)
	assert.False(t, got.IsFeatured)
	assert.Equal(t, "PUBLISHED", got.Status)
	assert.Equal(t, "News created", f.flash(rec).Message)
}

func TestNewsEdit(t *testing.T) {
	f := newFixture(t)

	rec := f.do(get("/admin-dashboard/news/edit/n1"), admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Budget passes"`)
	assert.Contains(t, rec.Body.String(), `<option value="c1" selected>Politics</option>`)

	rec = f.do(get("/admin-dashboard/news/edit/missing"), admin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "News not found", f.flash(rec).Message)

	rec = f.do(postForm("/admin-dashboard/news/edit/n1", url.Values{
		"title":         {"Budget passes again"},
		"content":       {"The budget passed narrowly, again."},
		"categoryId":    {"c1"},
		"featuredImage": {"https://cdn.example.com/budget.jpg"},
	}), admin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, f.articles.updated, "n1")
	assert.Equal(t, "Budget passes again", f.articles.updated["n1"].Title)
}

func TestNewsDelete(t *testing.T) {
	f := newFixture(t)
	req := postForm("/admin-dashboard/news/n2/delete", nil)
	req.Header.Set("Referer", "http://portal.test/admin-dashboard/news?q=storm&page=2")

	rec := f.do(req, admin)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin-dashboard/news?q=storm&page=2", rec.Header().Get("Location"))
	assert.Equal(t, []string{"n2"}, f.articles.deleted)
}

/* ───────── categories, users, comments ───────── */

func TestCategoryWrites(t *testing.T) {
	f := newFixture(t)

	rec := f.do(postForm("/admin-dashboard/categories", url.Values{"name": {"Tv"}}), admin)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Tv"`)
	assert.Empty(t, f.categories.created)

	rec = f.do(postForm("/admin-dashboard/categories", url.Values{"name": {"  Science  "}}), admin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	require.Len(t, f.categories.created, 1)
	assert.Equal(t, "Science", f.categories.created[0].Name)

	rec = f.do(postForm("/admin-dashboard/categories/c1", url.Values{"name": {"World Politics"}}), admin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, map[string]string{"c1": "World Politics"}, f.categories.renamed)

	rec = f.do(postForm("/admin-dashboard/categories/c1/delete", nil), admin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"c1"}, f.categories.deleted)
	assert.Equal(t, "Category deleted", f.flash(rec).Message)
}

func TestUserRole(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		role      string
		wantRoles map[string]entity.Role
		wantLevel flash.Level
		wantMsg   string
	}{
		{
			name:      "promote",
			target:    "/admin-dashboard/users/u2/role",
			role:      "ADMIN",
			wantRoles: map[string]entity.Role{"u2": entity.RoleAdmin},
			wantLevel: flash.LevelSuccess,
		},
		{
			name:      "self demotion",
			target:    "/admin-dashboard/users/admin-1/role",
			role:      "USER",
			wantLevel: flash.LevelError,
			wantMsg:   dashUC.ErrSelfDemotion.Error(),
		},
		{
			name:      "unknown role",
			target:    "/admin-dashboard/users/u2/role",
			role:      "OWNER",
			wantLevel: flash.LevelError,
			wantMsg:   dashUC.ErrInvalidRole.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec := f.do(postForm(tt.target, url.Values{"role": {tt.role}}), admin)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/admin-dashboard/users", rec.Header().Get("Location"))
			assert.Equal(t, tt.wantRoles, f.users.roles)
			n := f.flash(rec)
			require.NotNil(t, n)
			assert.Equal(t, tt.wantLevel, n.Level)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, n.Message)
			}
		})
	}
}

func TestCommentDelete(t *testing.T) {
	f := newFixture(t)
	rec := f.do(postForm("/admin-dashboard/comments/k1/delete", nil), admin)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"k1"}, f.comments.deleted)

	// 不正な id は API に送らない
	rec = f.do(postForm("/admin-dashboard/comments/bad%20id/delete", nil), admin)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"k1"}, f.comments.deleted)
	assert.Equal(t, dashUC.ErrMissingID.Error(), f.flash(rec).Message)
}
