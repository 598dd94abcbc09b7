package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"newspress/internal/common/pagination"
	"newspress/internal/domain/entity"
	"newspress/internal/observability/metrics"
	"newspress/internal/repository"
	"newspress/internal/usecase/listing"
)

// ImageUploader hosts an uploaded image and returns its URL.
type ImageUploader interface {
	Enabled() bool
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// ImageFile is an image submitted with a form.
type ImageFile struct {
	Name string
	Body io.Reader
}

// RecentLimit is the number of rows in each overview panel.
const RecentLimit = 5

// Service provides the administrator dashboard use cases.
type Service struct {
	Articles   repository.ArticleRepository
	Categories repository.CategoryRepository
	Comments   repository.CommentRepository
	Users      repository.UserRepository
	Stats      repository.StatsRepository
	Images     ImageUploader
	Pagination pagination.Config
}

// Overview is the dashboard landing page.
type Overview struct {
	Stats          entity.Stats
	RecentNews     []entity.Article
	RecentComments []entity.Comment
}

// Overview fetches the live summary and the newest articles and comments
// concurrently. The summary is required; the panels degrade to empty.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	out := &Overview{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.Stats.Summary(gctx)
		if err != nil {
			return fmt.Errorf("stats summary: %w", err)
		}
		out.Stats = *stats
		return nil
	})
	g.Go(func() error {
		articles, err := s.Articles.List(gctx)
		if err != nil {
			slog.WarnContext(gctx, "overview: failed to list news", slog.Any("error", err))
			return nil
		}
		out.RecentNews = listing.Shape(articles, listing.Criteria{}, listing.Page{Size: RecentLimit}, listing.Articles()).Items
		return nil
	})
	g.Go(func() error {
		comments, err := s.Comments.List(gctx)
		if err != nil {
			slog.WarnContext(gctx, "overview: failed to list comments", slog.Any("error", err))
			return nil
		}
		out.RecentComments = listing.Shape(comments, listing.Criteria{}, listing.Page{Size: RecentLimit}, listing.Comments()).Items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	metrics.UpdateStats(out.Stats)
	return out, nil
}

/* ───────── news ───────── */

// News lists articles matching the title search, newest first by default.
func (s *Service) News(ctx context.Context, crit listing.Criteria, page int) (listing.Result[entity.Article], error) {
	articles, err := s.Articles.List(ctx)
	if err != nil {
		return listing.Result[entity.Article]{}, fmt.Errorf("list news: %w", err)
	}
	return shape("admin_news", articles, adminCriteria(crit), page, s.pageSize(), listing.Articles()), nil
}

// Article returns the article with id for the edit form. The API has no
// lookup by id, so it is found in the full list.
func (s *Service) Article(ctx context.Context, id string) (*entity.Article, error) {
	articles, err := s.Articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	i := slices.IndexFunc(articles, func(a entity.Article) bool { return a.ID == id })
	if i < 0 {
		return nil, ErrArticleNotFound
	}
	return &articles[i], nil
}

// CreateNews validates in, uploads img when given and creates the article.
func (s *Service) CreateNews(ctx context.Context, in entity.ArticleInput, img *ImageFile) error {
	if err := s.prepareArticle(ctx, &in, img); err != nil {
		return err
	}
	if err := s.Articles.Create(ctx, in); err != nil {
		return fmt.Errorf("create news: %w", err)
	}
	return nil
}

// UpdateNews validates in, uploads img when given and updates article id.
func (s *Service) UpdateNews(ctx context.Context, id string, in entity.ArticleInput, img *ImageFile) error {
	if id == "" {
		return ErrMissingID
	}
	if err := s.prepareArticle(ctx, &in, img); err != nil {
		return err
	}
	if err := s.Articles.Update(ctx, id, in); err != nil {
		return fmt.Errorf("update news: %w", err)
	}
	return nil
}

// DeleteNews removes article id.
func (s *Service) DeleteNews(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	if err := s.Articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	return nil
}

// prepareArticle validates the form first so a doomed submission never
// uploads its image. An uploaded file replaces any pasted image URL.
func (s *Service) prepareArticle(ctx context.Context, in *entity.ArticleInput, img *ImageFile) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Summary = strings.TrimSpace(in.Summary)
	in.FeaturedImage = strings.TrimSpace(in.FeaturedImage)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	if in.Status == "" {
		in.Status = "PUBLISHED"
	}

	err := in.Validate()
	if img == nil {
		return err
	}
	var verrs entity.ValidationErrors
	if err != nil {
		if !errors.As(err, &verrs) {
			return err
		}
		verrs = slices.DeleteFunc(verrs, func(v *entity.ValidationError) bool { return v.Field == "featuredImage" })
		if len(verrs) > 0 {
			return verrs
		}
	}

	if s.Images == nil || !s.Images.Enabled() {
		return entity.ValidationErrors{{Field: "featuredImage", Message: "Image uploads are disabled, paste an image URL instead"}}
	}
	hosted, err := s.Images.Upload(ctx, img.Name, img.Body)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	in.FeaturedImage = hosted
	return in.Validate()
}

/* ───────── categories ───────── */

// CategoryList lists categories matching the name search, newest first.
func (s *Service) CategoryList(ctx context.Context, crit listing.Criteria, page int) (listing.Result[entity.Category], error) {
	cats, err := s.Categories.List(ctx)
	if err != nil {
		return listing.Result[entity.Category]{}, fmt.Errorf("list categories: %w", err)
	}
	return shape("admin_categories", cats, adminCriteria(crit), page, s.pageSize(), listing.Categories()), nil
}

// AllCategories returns every category for the article form's select box.
func (s *Service) AllCategories(ctx context.Context) ([]entity.Category, error) {
	cats, err := s.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// CreateCategory creates a category; its slug is derived from the name.
func (s *Service) CreateCategory(ctx context.Context, in entity.CategoryInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return err
	}
	if err := s.Categories.Create(ctx, in); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// RenameCategory renames category id and re-derives its slug.
func (s *Service) RenameCategory(ctx context.Context, id string, in entity.CategoryInput) error {
	if id == "" {
		return ErrMissingID
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return err
	}
	if err := s.Categories.Update(ctx, id, in); err != nil {
		return fmt.Errorf("rename category: %w", err)
	}
	return nil
}

// DeleteCategory removes category id.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	if err := s.Categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

/* ───────── users ───────── */

// UserList lists users matching the name/email search, newest first.
func (s *Service) UserList(ctx context.Context, crit listing.Criteria, page int) (listing.Result[entity.User], error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return listing.Result[entity.User]{}, fmt.Errorf("list users: %w", err)
	}
	return shape("admin_users", users, adminCriteria(crit), page, s.pageSize(), listing.Users()), nil
}

// ChangeRole sets the role of user id. actor may not demote themself.
func (s *Service) ChangeRole(ctx context.Context, actor *entity.User, id string, role entity.Role) error {
	if id == "" {
		return ErrMissingID
	}
	if !role.IsValid() {
		return ErrInvalidRole
	}
	if actor != nil && actor.ID == id && role != entity.RoleAdmin {
		return ErrSelfDemotion
	}
	if err := s.Users.UpdateRole(ctx, id, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

/* ───────── comments ───────── */

// CommentList lists every comment matching the search (text, article title,
// author name) and the date filter, ordered by creation time.
func (s *Service) CommentList(ctx context.Context, crit listing.Criteria, page int) (listing.Result[entity.Comment], error) {
	comments, err := s.Comments.List(ctx)
	if err != nil {
		return listing.Result[entity.Comment]{}, fmt.Errorf("list comments: %w", err)
	}
	return shape("admin_comments", comments, adminCriteria(crit), page, s.pageSize(), listing.Comments()), nil
}

// DeleteComment removes comment id.
func (s *Service) DeleteComment(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	if err := s.Comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

/* ───────── helpers ───────── */

// adminCriteria keeps only the visitor filters the dashboard lists offer.
func adminCriteria(c listing.Criteria) listing.Criteria {
	return listing.Criteria{Search: c.Search, Date: c.Date, Order: c.Order}
}

func shape[T any](list string, items []T, crit listing.Criteria, page, size int, acc listing.Accessor[T]) listing.Result[T] {
	res := listing.Shape(items, crit, listing.Page{Number: page, Size: size}, acc)
	if page < 1 {
		page = 1
	}
	pagination.RecordPage(list, page, res.Meta)
	return res
}

func (s *Service) pageSize() int {
	if s.Pagination.DefaultLimit > 0 {
		return s.Pagination.DefaultLimit
	}
	return pagination.DefaultConfig().DefaultLimit
}
