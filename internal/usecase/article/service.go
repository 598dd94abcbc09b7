package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"newspress/internal/common/pagination"
	"newspress/internal/domain/entity"
	"newspress/internal/repository"
	"newspress/internal/usecase/comment"
	"newspress/internal/usecase/listing"
)

// Fixed page sizes of the page sections.
const (
	HeroPageSize     = 3
	RailPageSize     = 4
	RelatedPageSize  = 4
	FeaturedSidebar  = 5
	CategoryNavLimit = 6
)

// Service provides the public page use cases.
type Service struct {
	Articles   repository.ArticleRepository
	Categories repository.CategoryRepository
	Comments   *comment.Service
	Pagination pagination.Config
}

// HomeQuery carries the requested page of each home rail.
type HomeQuery struct {
	HeroPage    int
	LatestPage  int
	PopularPage int
}

// HomePage is everything the home page renders.
type HomePage struct {
	Breaking   []entity.Article
	Hero       listing.Result[entity.Article]
	Latest     listing.Result[entity.Article]
	MostRead   listing.Result[entity.Article]
	Categories []entity.Category
}

// Home fetches articles and categories concurrently and shapes the rails.
// A category failure only empties the navigation; an article failure fails
// the page.
func (s *Service) Home(ctx context.Context, q HomeQuery) (*HomePage, error) {
	var (
		articles   []entity.Article
		categories []entity.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = s.Articles.List(gctx)
		if err != nil {
			return fmt.Errorf("list articles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		categories = s.categories(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	acc := listing.Articles()
	page := &HomePage{
		Breaking: listing.Shape(articles, listing.Criteria{BreakingOnly: true}, listing.Page{}, acc).Items,
		Hero: s.shape("home_hero", articles,
			listing.Criteria{FeaturedOnly: true},
			listing.Page{Number: q.HeroPage, Size: HeroPageSize}),
		Latest: s.shape("home_latest", articles,
			listing.Criteria{},
			listing.Page{Number: q.LatestPage, Size: RailPageSize}),
		MostRead: s.shape("home_most_read", articles,
			listing.Criteria{Key: listing.ByCounter},
			listing.Page{Number: q.PopularPage, Size: RailPageSize}),
		Categories: categories,
	}
	return page, nil
}

// CategoryPage is the listing of one category.
type CategoryPage struct {
	Slug    string
	Heading string
	Result  listing.Result[entity.Article]
	// Categories feeds the navigation bar.
	Categories []entity.Category
}

// Category lists the articles of slug with the visitor's search, date and
// sort filters. The heading is the category name from the first matching
// article, else the slug with hyphens turned into spaces.
func (s *Service) Category(ctx context.Context, slug string, crit listing.Criteria, page int) (*CategoryPage, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	var (
		articles   []entity.Article
		categories []entity.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		articles, err = s.Articles.List(gctx)
		if err != nil {
			return fmt.Errorf("list articles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		categories = s.categories(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	crit.Category = slug
	crit.Key = listing.ByCreated
	return &CategoryPage{
		Slug:       slug,
		Heading:    categoryHeading(articles, slug),
		Result:     s.shape("category", articles, crit, listing.Page{Number: page, Size: s.pageSize()}),
		Categories: categories,
	}, nil
}

// Search shapes the full article list for the JSON API with the same
// criteria the category page accepts.
func (s *Service) Search(ctx context.Context, crit listing.Criteria, page, size int) (listing.Result[entity.Article], error) {
	articles, err := s.Articles.List(ctx)
	if err != nil {
		return listing.Result[entity.Article]{}, fmt.Errorf("list articles: %w", err)
	}
	if size <= 0 {
		size = s.pageSize()
	}
	if limit := s.Pagination.MaxLimit; limit > 0 && size > limit {
		size = limit
	}
	crit.Key = listing.ByCreated
	return s.shape("api_news", articles, crit, listing.Page{Number: page, Size: size}), nil
}

// DetailPage is an article with its surroundings.
type DetailPage struct {
	Article  entity.Article
	EmbedURL string
	Related  listing.Result[entity.Article]
	Featured []entity.Article
	Thread   comment.Thread
	// ThreadErr is set when the comments could not be loaded; the article
	// still renders.
	ThreadErr error
}

// Get returns the article with slug.
func (s *Service) Get(ctx context.Context, slug string) (*entity.Article, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}
	a, err := s.Articles.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	if a == nil {
		return nil, ErrArticleNotFound
	}
	return a, nil
}

// Detail fetches the article and the full list concurrently, then the
// comment thread. relatedPage selects the page of related stories.
func (s *Service) Detail(ctx context.Context, slug string, relatedPage int) (*DetailPage, error) {
	var (
		art *entity.Article
		all []entity.Article
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		art, err = s.Get(gctx, slug)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = s.Articles.List(gctx)
		if err != nil {
			return fmt.Errorf("list articles: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	current := art.CanonicalSlug()
	acc := listing.Articles()
	page := &DetailPage{
		Article:  *art,
		EmbedURL: entity.YouTubeEmbedURL(art.VideoURL),
		Related: s.shape("related", all,
			listing.Criteria{ExcludeKey: current},
			listing.Page{Number: relatedPage, Size: RelatedPageSize}),
		Featured: firstN(listing.Filter(all, listing.Criteria{FeaturedOnly: true, ExcludeKey: current}, acc), FeaturedSidebar),
	}

	if s.Comments != nil && art.ID != "" {
		thread, err := s.Comments.Thread(ctx, art.ID)
		if err != nil {
			slog.WarnContext(ctx, "failed to load comments",
				slog.String("slug", current),
				slog.Any("error", err))
			page.ThreadErr = err
			thread = comment.Thread{Comments: []entity.Comment{}}
		}
		page.Thread = thread
	}
	return page, nil
}

// NavCategories returns the categories shown in the site navigation.
func (s *Service) NavCategories(ctx context.Context) []entity.Category {
	return s.categories(ctx)
}

func (s *Service) categories(ctx context.Context) []entity.Category {
	if s.Categories == nil {
		return nil
	}
	cats, err := s.Categories.List(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to load categories", slog.Any("error", err))
		return nil
	}
	return cats
}

func (s *Service) shape(list string, items []entity.Article, crit listing.Criteria, page listing.Page) listing.Result[entity.Article] {
	res := listing.Shape(items, crit, page, listing.Articles())
	requested := page.Number
	if requested < 1 {
		requested = 1
	}
	pagination.RecordPage(list, requested, res.Meta)
	return res
}

func (s *Service) pageSize() int {
	if s.Pagination.DefaultLimit > 0 {
		return s.Pagination.DefaultLimit
	}
	return pagination.DefaultConfig().DefaultLimit
}

func categoryHeading(articles []entity.Article, slug string) string {
	i := slices.IndexFunc(articles, func(a entity.Article) bool {
		return a.CategorySlug() == slug && a.CategoryName() != ""
	})
	if i >= 0 {
		return articles[i].CategoryName()
	}
	return strings.ReplaceAll(slug, "-", " ")
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
